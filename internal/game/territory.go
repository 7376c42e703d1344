package game

import "fmt"

// Territory represents a single grid cell, the unit of ownership and combat.
type Territory struct {
	ID        string `json:"id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Value     int    `json:"value"`
	Owner     string `json:"owner,omitempty"` // Player ID, empty if unclaimed
	IsCapital bool   `json:"isCapital"`
}

// TerritoryID builds the canonical id for a grid position.
func TerritoryID(x, y int) string {
	return fmt.Sprintf("t-%d-%d", x, y)
}

// AdjacentTo reports whether o is one of the eight cells surrounding t.
// A territory is never adjacent to itself.
func (t *Territory) AdjacentTo(o *Territory) bool {
	dx := abs(t.X - o.X)
	dy := abs(t.Y - o.Y)
	return dx <= 1 && dy <= 1 && !(dx == 0 && dy == 0)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
