package game

import "fmt"

// The ownership ledger: every territory has at most one owner, and a
// territory id appears in at most one player's set. All mutations go through
// Transfer and VacateAll so those two facts stay true.

// Adjacent reports whether the two territories touch (8-directional).
// Unknown ids and a == b are both false.
func (s *Session) Adjacent(aID, bID string) bool {
	a, b := s.territories[aID], s.territories[bID]
	if a == nil || b == nil {
		return false
	}
	return a.AdjacentTo(b)
}

// Transfer gives the territory to the player, removing it from the previous
// owner's set if there was one. Capturing a capital permanently downgrades it
// to an ordinary territory; capital status is never inherited.
//
// Referencing a nonexistent territory is a contract violation and panics.
func (s *Session) Transfer(territoryID, toPlayerID string) {
	t := s.territories[territoryID]
	if t == nil {
		panic(fmt.Sprintf("game: transfer of nonexistent territory %q", territoryID))
	}

	if t.Owner != "" && t.Owner != toPlayerID {
		if prev := s.players[t.Owner]; prev != nil {
			prev.removeTerritory(territoryID)
		}
	}

	t.Owner = toPlayerID
	t.IsCapital = false

	if next := s.players[toPlayerID]; next != nil {
		next.addTerritory(territoryID)
	}
}

// TerritoriesOwnedBy returns the ids of every territory in the player's set.
func (s *Session) TerritoriesOwnedBy(playerID string) []string {
	p := s.players[playerID]
	if p == nil {
		return nil
	}
	out := make([]string, len(p.Territories))
	copy(out, p.Territories)
	return out
}

// VacateAll releases every territory the player owns except the given one,
// clearing ownership and capital status, and empties the player's set. The
// excepted territory (typically the capturer's newly won prize) is left
// untouched. Used on elimination.
func (s *Session) VacateAll(playerID, exceptTerritoryID string) {
	p := s.players[playerID]
	if p == nil {
		return
	}

	for _, tid := range p.Territories {
		if tid == exceptTerritoryID {
			continue
		}
		if t := s.territories[tid]; t != nil {
			t.Owner = ""
			t.IsCapital = false
		}
	}
	p.Territories = []string{}
}
