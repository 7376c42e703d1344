package game

import "testing"

func TestAdjacent_SymmetricAndIrreflexive(t *testing.T) {
	s, _, _ := newTestSession("A", "B")
	if err := s.StartGame(); err != nil {
		t.Fatal(err)
	}

	ids := make([]string, 0, len(s.Territories()))
	for id := range s.Territories() {
		ids = append(ids, id)
	}

	for _, a := range ids {
		if s.Adjacent(a, a) {
			t.Fatalf("territory %s adjacent to itself", a)
		}
		for _, b := range ids {
			if s.Adjacent(a, b) != s.Adjacent(b, a) {
				t.Fatalf("adjacency not symmetric for %s and %s", a, b)
			}
		}
	}
}

func TestAdjacent_ChebyshevOne(t *testing.T) {
	s, _, _ := newTestSession("A", "B")
	if err := s.StartGame(); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		a, b string
		want bool
	}{
		{TerritoryID(2, 2), TerritoryID(3, 3), true},  // diagonal
		{TerritoryID(2, 2), TerritoryID(2, 3), true},  // orthogonal
		{TerritoryID(2, 2), TerritoryID(4, 2), false}, // two apart
		{TerritoryID(2, 2), TerritoryID(4, 4), false},
		{TerritoryID(0, 0), "t-99-99", false}, // unknown id
	}
	for _, c := range cases {
		if got := s.Adjacent(c.a, c.b); got != c.want {
			t.Errorf("Adjacent(%s, %s) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestTransfer_ConservesOwnership(t *testing.T) {
	s, _, _ := newTestSession("A", "B")
	if err := s.StartGame(); err != nil {
		t.Fatal(err)
	}

	total := GridWidth * GridHeight
	target := firstEnemyBorderTerritory(t, s, "A")

	s.Transfer(target, "A")

	held, unowned := s.ownedCount()
	if held+unowned != total {
		t.Fatalf("after transfer: held %d + unowned %d != %d", held, unowned, total)
	}
	if s.Territory(target).Owner != "A" {
		t.Errorf("territory %s owner = %s, want A", target, s.Territory(target).Owner)
	}
	if !s.Player("A").OwnsTerritory(target) {
		t.Error("territory missing from new owner's set")
	}
	if s.Player("B").OwnsTerritory(target) {
		t.Error("territory still in previous owner's set")
	}
}

func TestTransfer_IsIdempotentForSameOwner(t *testing.T) {
	s, _, _ := newTestSession("A", "B")
	if err := s.StartGame(); err != nil {
		t.Fatal(err)
	}

	target := firstEnemyBorderTerritory(t, s, "A")
	before := len(s.Player("A").Territories)

	s.Transfer(target, "A")
	s.Transfer(target, "A")

	if got := len(s.Player("A").Territories); got != before+1 {
		t.Errorf("double transfer duplicated territory: %d, want %d", got, before+1)
	}
}

func TestTransfer_DowngradesCapital(t *testing.T) {
	s, _, _ := newTestSession("A", "B")
	if err := s.StartGame(); err != nil {
		t.Fatal(err)
	}

	bCapital := s.Player("B").Capital
	s.Transfer(bCapital, "A")

	if s.Territory(bCapital).IsCapital {
		t.Error("captured capital must lose capital status")
	}
	if s.Territory(bCapital).Owner != "A" {
		t.Error("captured capital must transfer ownership")
	}
	// The loser's recorded capital id stays; only the tile's flag is gone.
	if s.Player("B").Capital != bCapital {
		t.Error("player's capital record should be untouched")
	}
}

func TestTransfer_UnknownTerritoryPanics(t *testing.T) {
	s, _, _ := newTestSession("A", "B")

	defer func() {
		if recover() == nil {
			t.Error("expected panic for nonexistent territory")
		}
	}()
	s.Transfer("t-99-99", "A")
}

func TestVacateAll_ReleasesEverythingButThePrize(t *testing.T) {
	s, _, _ := newTestSession("A", "B")
	s.addCell(0, 0, "B", true)
	s.addCell(0, 1, "B", false)
	s.addCell(1, 0, "B", false)
	s.addCell(5, 5, "A", true)
	s.beginBattle("A")

	// A captures B's capital, then B is vacated.
	s.Transfer(TerritoryID(0, 0), "A")
	s.VacateAll("B", TerritoryID(0, 0))

	if got := len(s.Player("B").Territories); got != 0 {
		t.Errorf("vacated player still holds %d territories", got)
	}
	for _, id := range []string{TerritoryID(0, 1), TerritoryID(1, 0)} {
		cell := s.Territory(id)
		if cell.Owner != "" || cell.IsCapital {
			t.Errorf("territory %s not released: owner=%q capital=%v", id, cell.Owner, cell.IsCapital)
		}
	}
	if s.Territory(TerritoryID(0, 0)).Owner != "A" {
		t.Error("the excepted prize territory must stay with the capturer")
	}
}
