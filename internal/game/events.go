package game

import (
	"time"

	"trivia-conquest/internal/questions"
)

// Role identifies a duel participant's side.
type Role string

const (
	RoleAttacker Role = "attacker"
	RoleDefender Role = "defender"
)

// Challenge is the question delivery for one duel participant. The question
// carries its correct-answer index; transports must strip it before sending
// to clients.
type Challenge struct {
	TerritoryID string
	Question    questions.Question
	Role        Role
}

// DuelStatus is broadcast to everyone when a participant answers.
type DuelStatus struct {
	TerritoryID    string
	PlayerID       string
	PlayerName     string
	Role           Role
	ResponseTimeMs int64
}

// DuelResult is the outcome of a resolved duel.
type DuelResult struct {
	TerritoryID     string
	Winner          string // "attacker", "defender" or "none"
	Reason          string
	AttackerID      string
	DefenderID      string
	AttackerCorrect bool
	DefenderCorrect bool
	AttackerTimeMs  int64
	DefenderTimeMs  int64
	CorrectAnswer   int
	Question        string
	AnswerText      string
}

// Notifier receives every outward-facing event the session produces.
// The server layer maps these onto protocol broadcasts; tests record them.
// All methods are invoked on the session's serialized event loop and must
// not call back into the session.
type Notifier interface {
	// RosterChanged fires on join, leave and every ownership change.
	RosterChanged(players []*Player)

	// GameStarted fires once per game start with the freshly generated board.
	GameStarted(territories map[string]*Territory, players []*Player, currentTurn string)

	// TerritoriesChanged carries a full board snapshot, never a delta.
	TerritoriesChanged(territories map[string]*Territory)

	// TurnChanged announces the new turn holder.
	TurnChanged(playerID string)

	// ChallengePlayer delivers a duel question to one participant. It returns
	// false if the player is not reachable, in which case the duel proceeds
	// undefended.
	ChallengePlayer(playerID string, c Challenge) bool

	// DuelComplete tells a participant both answers are in, so their
	// presentation layer can close any challenge prompt.
	DuelComplete(playerID, territoryID string)

	DuelStatus(s DuelStatus)
	DuelResult(r DuelResult)
	PlayerEliminated(playerID, playerName string)
	GameOver(winner *Player, reason string)
	GameLog(text string)

	// Info is a requester-only status acknowledgement.
	Info(playerID, text string)
}

// CancelFunc cancels a scheduled task. Safe to call after the task has run.
type CancelFunc func()

// Scheduler defers a task. Implementations must run fn on the same
// goroutine/loop that drives the session, after roughly d has elapsed.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) CancelFunc
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, fn func()) CancelFunc

// Schedule implements Scheduler.
func (f SchedulerFunc) Schedule(d time.Duration, fn func()) CancelFunc {
	return f(d, fn)
}
