package game

// Player represents a connected player.
type Player struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Territories []string `json:"territories"`
	Capital     string   `json:"capital,omitempty"`
	Eliminated  bool     `json:"eliminated"`
}

// NewPlayer creates a player with an empty territory set.
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:          id,
		Name:        name,
		Territories: []string{},
	}
}

// OwnsTerritory reports whether the player's set contains the territory.
func (p *Player) OwnsTerritory(territoryID string) bool {
	for _, id := range p.Territories {
		if id == territoryID {
			return true
		}
	}
	return false
}

// addTerritory appends the territory id, skipping duplicates.
func (p *Player) addTerritory(territoryID string) {
	if p.OwnsTerritory(territoryID) {
		return
	}
	p.Territories = append(p.Territories, territoryID)
}

// removeTerritory drops the territory id from the player's set.
func (p *Player) removeTerritory(territoryID string) {
	for i, id := range p.Territories {
		if id == territoryID {
			p.Territories = append(p.Territories[:i], p.Territories[i+1:]...)
			return
		}
	}
}
