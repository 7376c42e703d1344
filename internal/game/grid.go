package game

import "sort"

// Board dimensions and per-cell value range.
const (
	GridWidth  = 6
	GridHeight = 6

	minTerritoryValue = 1
	maxTerritoryValue = 3
)

type gridPos struct {
	X, Y int
}

// capitalLayouts fixes each player's capital position for the supported
// player counts: opposite corners for two, two corners plus the center of
// the far edge for three, all four corners for four. Other counts fall back
// to evenly spaced positions along the middle row.
var capitalLayouts = map[int][]gridPos{
	2: {{0, 0}, {GridWidth - 1, GridHeight - 1}},
	3: {{0, 0}, {GridWidth - 1, 0}, {GridWidth / 2, GridHeight - 1}},
	4: {{0, 0}, {GridWidth - 1, 0}, {0, GridHeight - 1}, {GridWidth - 1, GridHeight - 1}},
}

// generateGrid builds a fresh board and seeds every player's starting region.
// Each player gets their capital plus an equal share of the remaining cells,
// grown outward from the capital. Cells no region could reach stay unclaimed.
func (s *Session) generateGrid() {
	s.territories = make(map[string]*Territory, GridWidth*GridHeight)
	for x := 0; x < GridWidth; x++ {
		for y := 0; y < GridHeight; y++ {
			id := TerritoryID(x, y)
			s.territories[id] = &Territory{
				ID:    id,
				X:     x,
				Y:     y,
				Value: minTerritoryValue + s.rng.Intn(maxTerritoryValue-minTerritoryValue+1),
			}
		}
	}

	n := len(s.order)
	positions := capitalLayouts[n]
	if positions == nil {
		positions = fallbackCapitals(n)
	}

	// Equal share of the non-capital cells, remainder to the earliest joiners.
	total := GridWidth*GridHeight - n
	share := total / n
	remainder := total % n

	for i, playerID := range s.order {
		player := s.players[playerID]

		capital := s.nearestUnclaimed(positions[i].X, positions[i].Y)
		capital.Owner = playerID
		capital.IsCapital = true
		player.Capital = capital.ID
		player.Territories = []string{capital.ID}

		quota := share
		if i < remainder {
			quota++
		}
		s.growRegion(player, capital, quota)
	}
}

// fallbackCapitals spaces capitals along the middle row for player counts
// without a fixed layout.
func fallbackCapitals(n int) []gridPos {
	positions := make([]gridPos, n)
	for i := 0; i < n; i++ {
		x := (GridWidth*i)/n + GridWidth/(2*n)
		if x >= GridWidth {
			x = GridWidth - 1
		}
		positions[i] = gridPos{x, GridHeight / 2}
	}
	return positions
}

// nearestUnclaimed returns the unclaimed territory closest to (x, y).
func (s *Session) nearestUnclaimed(x, y int) *Territory {
	var best *Territory
	bestDist := -1
	for tx := 0; tx < GridWidth; tx++ {
		for ty := 0; ty < GridHeight; ty++ {
			t := s.territories[TerritoryID(tx, ty)]
			if t.Owner != "" {
				continue
			}
			d := abs(tx-x) + abs(ty-y)
			if best == nil || d < bestDist {
				best = t
				bestDist = d
			}
		}
	}
	return best
}

// growRegion claims up to quota unclaimed cells for the player, breadth-first
// from the capital, visiting neighbors closest to the capital first so the
// region stays compact.
func (s *Session) growRegion(player *Player, capital *Territory, quota int) {
	if quota <= 0 {
		return
	}

	queue := []*Territory{capital}
	for len(queue) > 0 && quota > 0 {
		current := queue[0]
		queue = queue[1:]

		neighbors := s.unclaimedNeighbors(current)
		sort.Slice(neighbors, func(i, j int) bool {
			di := abs(neighbors[i].X-capital.X) + abs(neighbors[i].Y-capital.Y)
			dj := abs(neighbors[j].X-capital.X) + abs(neighbors[j].Y-capital.Y)
			return di < dj
		})

		for _, next := range neighbors {
			if quota <= 0 {
				break
			}
			if next.Owner != "" {
				continue // claimed earlier in this pass
			}
			next.Owner = player.ID
			player.addTerritory(next.ID)
			queue = append(queue, next)
			quota--
		}
	}
}

// unclaimedNeighbors returns the unowned cells among t's eight neighbors.
func (s *Session) unclaimedNeighbors(t *Territory) []*Territory {
	var out []*Territory
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := t.X+dx, t.Y+dy
			if x < 0 || x >= GridWidth || y < 0 || y >= GridHeight {
				continue
			}
			n := s.territories[TerritoryID(x, y)]
			if n.Owner == "" {
				out = append(out, n)
			}
		}
	}
	return out
}
