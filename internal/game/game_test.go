package game

import (
	"testing"
	"time"

	"trivia-conquest/internal/questions"
)

// recordingNotifier captures every event the session emits, in order.
type recordingNotifier struct {
	rosterChanges    int
	started          int
	territoryUpdates int
	turns            []string
	challenged       []string
	challenges       []Challenge
	unreachable      map[string]bool
	completes        []string
	statuses         []DuelStatus
	results          []DuelResult
	eliminated       []string
	gameOverWinners  []string // "" for no winner
	gameOverReasons  []string
	logs             []string
	infos            []string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{unreachable: make(map[string]bool)}
}

func (n *recordingNotifier) RosterChanged([]*Player) { n.rosterChanges++ }

func (n *recordingNotifier) GameStarted(map[string]*Territory, []*Player, string) { n.started++ }

func (n *recordingNotifier) TerritoriesChanged(map[string]*Territory) { n.territoryUpdates++ }

func (n *recordingNotifier) TurnChanged(playerID string) { n.turns = append(n.turns, playerID) }

func (n *recordingNotifier) ChallengePlayer(playerID string, c Challenge) bool {
	if n.unreachable[playerID] {
		return false
	}
	n.challenged = append(n.challenged, playerID)
	n.challenges = append(n.challenges, c)
	return true
}

func (n *recordingNotifier) DuelComplete(playerID, territoryID string) {
	n.completes = append(n.completes, playerID)
}

func (n *recordingNotifier) DuelStatus(s DuelStatus) { n.statuses = append(n.statuses, s) }

func (n *recordingNotifier) DuelResult(r DuelResult) { n.results = append(n.results, r) }

func (n *recordingNotifier) PlayerEliminated(playerID, playerName string) {
	n.eliminated = append(n.eliminated, playerID)
}

func (n *recordingNotifier) GameOver(winner *Player, reason string) {
	id := ""
	if winner != nil {
		id = winner.ID
	}
	n.gameOverWinners = append(n.gameOverWinners, id)
	n.gameOverReasons = append(n.gameOverReasons, reason)
}

func (n *recordingNotifier) GameLog(text string) { n.logs = append(n.logs, text) }

func (n *recordingNotifier) Info(playerID, text string) { n.infos = append(n.infos, text) }

// manualScheduler collects deferred tasks so tests control when the settle
// delay "elapses".
type manualScheduler struct {
	tasks     []func()
	cancelled int
}

func (m *manualScheduler) Schedule(d time.Duration, fn func()) CancelFunc {
	m.tasks = append(m.tasks, fn)
	return func() { m.cancelled++ }
}

// runAll fires every pending task once, in scheduling order.
func (m *manualScheduler) runAll() {
	tasks := m.tasks
	m.tasks = nil
	for _, fn := range tasks {
		fn()
	}
}

// The question every test duel uses: correct answer is index 2.
const testCorrectChoice = 2

func testBank() *questions.Bank {
	return questions.NewBank([]questions.Question{{
		ID:            1,
		Question:      "Which house does the Sorting Hat favor for the bold?",
		Answers:       []string{"Ravenclaw", "Hufflepuff", "Gryffindor", "Slytherin"},
		CorrectAnswer: testCorrectChoice,
	}})
}

// newTestSession builds a session with the given players already joined.
// Ids are used as both id and a readable name.
func newTestSession(ids ...string) (*Session, *recordingNotifier, *manualScheduler) {
	n := newRecordingNotifier()
	sched := &manualScheduler{}
	s := NewSession(testBank(), n, sched, WithSeed(7))
	for _, id := range ids {
		s.Join(id, id)
	}
	return s, n, sched
}

// addCell places a territory directly, bypassing generation, for fixtures
// that need exact ownership layouts.
func (s *Session) addCell(x, y int, owner string, capital bool) *Territory {
	t := &Territory{ID: TerritoryID(x, y), X: x, Y: y, Value: 1, Owner: owner, IsCapital: capital}
	s.territories[t.ID] = t
	if owner != "" {
		if p := s.players[owner]; p != nil {
			p.addTerritory(t.ID)
			if capital {
				p.Capital = t.ID
			}
		}
	}
	return t
}

// beginBattle puts a fixture session into play without generating a grid.
func (s *Session) beginBattle(firstTurn string) {
	s.phase = PhaseInProgress
	s.currentTurn = firstTurn
}

// firstEnemyBorderTerritory finds a territory owned by another player that is
// adjacent to at least one of attackerID's territories.
func firstEnemyBorderTerritory(t *testing.T, s *Session, attackerID string) string {
	t.Helper()
	attacker := s.Player(attackerID)
	for _, ownedID := range attacker.Territories {
		owned := s.Territory(ownedID)
		for _, candidate := range s.territories {
			if candidate.Owner == "" || candidate.Owner == attackerID {
				continue
			}
			if owned.AdjacentTo(candidate) {
				return candidate.ID
			}
		}
	}
	t.Fatal("no enemy border territory found")
	return ""
}

// ownedCount sums player-held and unowned territories for conservation checks.
func (s *Session) ownedCount() (held, unowned int) {
	for _, t := range s.territories {
		if t.Owner == "" {
			unowned++
		}
	}
	for _, p := range s.players {
		held += len(p.Territories)
	}
	return held, unowned
}
