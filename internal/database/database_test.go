package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	db, err := New(path)
	require.NoError(t, err)
	defer db.Close()
}

func TestNew_ReopenSkipsAppliedMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := New(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()
}

func TestRecordMatch_RoundTrip(t *testing.T) {
	db := newTestDB(t)

	started := time.Now().Add(-10 * time.Minute).UTC().Truncate(time.Second)
	ended := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, db.RecordMatch(MatchRecord{
		WinnerID:   "p1",
		WinnerName: "Alice",
		Reason:     "All capitals captured",
		StartedAt:  started,
		EndedAt:    ended,
	}))
	require.NoError(t, db.RecordMatch(MatchRecord{
		WinnerName: "Bob",
		Reason:     "Last wizard standing!",
		StartedAt:  started,
		EndedAt:    ended,
	}))

	matches, err := db.RecentMatches(10)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Newest first.
	assert.Equal(t, "Bob", matches[0].WinnerName)
	assert.Equal(t, "Alice", matches[1].WinnerName)
	assert.Equal(t, "p1", matches[1].WinnerID)
	assert.Equal(t, "All capitals captured", matches[1].Reason)
	assert.True(t, matches[1].StartedAt.Equal(started))
}

func TestRecordDuel_RoundTrip(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.RecordDuel(DuelRecord{
		TerritoryID:    "t-1-1",
		AttackerID:     "p1",
		DefenderID:     "p2",
		Winner:         "attacker",
		Reason:         "Both answered correctly, but attacker was faster",
		AttackerTimeMs: 300,
		DefenderTimeMs: 400,
	}))

	duels, err := db.RecentDuels(10)
	require.NoError(t, err)
	require.Len(t, duels, 1)

	d := duels[0]
	assert.Equal(t, "t-1-1", d.TerritoryID)
	assert.Equal(t, "attacker", d.Winner)
	assert.Equal(t, int64(300), d.AttackerTimeMs)
	assert.Equal(t, int64(400), d.DefenderTimeMs)
	assert.False(t, d.ResolvedAt.IsZero())
}

func TestRecentDuels_RespectsLimit(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.RecordDuel(DuelRecord{
			TerritoryID: "t-0-0",
			AttackerID:  "p1",
			DefenderID:  "p2",
			Winner:      "defender",
			Reason:      "Neither answered correctly, territory stays with defender",
		}))
	}

	duels, err := db.RecentDuels(3)
	require.NoError(t, err)
	assert.Len(t, duels, 3)
}
