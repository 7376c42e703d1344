package database

import "time"

// MatchRecord is one finished game.
type MatchRecord struct {
	ID         int64     `json:"id"`
	WinnerID   string    `json:"winnerId"`
	WinnerName string    `json:"winnerName"`
	Reason     string    `json:"reason"`
	StartedAt  time.Time `json:"startedAt"`
	EndedAt    time.Time `json:"endedAt"`
}

// DuelRecord is one resolved duel.
type DuelRecord struct {
	ID             int64     `json:"id"`
	TerritoryID    string    `json:"territoryId"`
	AttackerID     string    `json:"attackerId"`
	DefenderID     string    `json:"defenderId"`
	Winner         string    `json:"winner"`
	Reason         string    `json:"reason"`
	AttackerTimeMs int64     `json:"attackerTimeMs"`
	DefenderTimeMs int64     `json:"defenderTimeMs"`
	ResolvedAt     time.Time `json:"resolvedAt"`
}

// RecordMatch stores a finished game.
func (db *DB) RecordMatch(m MatchRecord) error {
	_, err := db.conn.Exec(`
		INSERT INTO matches (winner_id, winner_name, reason, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.WinnerID, m.WinnerName, m.Reason, m.StartedAt, m.EndedAt)
	return err
}

// RecordDuel stores a resolved duel.
func (db *DB) RecordDuel(d DuelRecord) error {
	_, err := db.conn.Exec(`
		INSERT INTO duels (territory_id, attacker_id, defender_id, winner, reason, attacker_time_ms, defender_time_ms, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, d.TerritoryID, d.AttackerID, d.DefenderID, d.Winner, d.Reason, d.AttackerTimeMs, d.DefenderTimeMs, time.Now())
	return err
}

// RecentMatches returns the most recently finished games, newest first.
func (db *DB) RecentMatches(limit int) ([]*MatchRecord, error) {
	rows, err := db.conn.Query(`
		SELECT id, winner_id, winner_name, reason, started_at, ended_at
		FROM matches
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*MatchRecord
	for rows.Next() {
		m := &MatchRecord{}
		if err := rows.Scan(&m.ID, &m.WinnerID, &m.WinnerName, &m.Reason, &m.StartedAt, &m.EndedAt); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// RecentDuels returns the most recently resolved duels, newest first.
func (db *DB) RecentDuels(limit int) ([]*DuelRecord, error) {
	rows, err := db.conn.Query(`
		SELECT id, territory_id, attacker_id, defender_id, winner, reason, attacker_time_ms, defender_time_ms, resolved_at
		FROM duels
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var duels []*DuelRecord
	for rows.Next() {
		d := &DuelRecord{}
		if err := rows.Scan(&d.ID, &d.TerritoryID, &d.AttackerID, &d.DefenderID, &d.Winner, &d.Reason, &d.AttackerTimeMs, &d.DefenderTimeMs, &d.ResolvedAt); err != nil {
			return nil, err
		}
		duels = append(duels, d)
	}
	return duels, rows.Err()
}
