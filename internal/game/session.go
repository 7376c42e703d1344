// Package game contains the authoritative game state and the turn-and-duel
// resolution engine. The package has no transport dependencies; it reports
// everything outward through a Notifier.
//
// A Session is not safe for concurrent use. The server drives it from a
// single event loop: each incoming message is processed to completion,
// including its broadcasts, before the next one is handled. The only deferred
// work is the duel settle callback, which the Scheduler must deliver back
// onto the same loop.
package game

import (
	"math/rand"
	"time"

	"trivia-conquest/internal/questions"
)

// Phase is the session's lifecycle state.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseInProgress
	PhaseConcluded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "Lobby"
	case PhaseInProgress:
		return "In Progress"
	case PhaseConcluded:
		return "Concluded"
	default:
		return "Unknown"
	}
}

// SettleDelay is how long resolution waits after the final answer arrives,
// so clients can finish closing their challenge prompts before state
// changes land.
const SettleDelay = 1000 * time.Millisecond

// Session is one game's authoritative state. Sessions are created explicitly
// and passed by handle; nothing in this package is global, so a future server
// may key multiple sessions by id.
type Session struct {
	players     map[string]*Player
	order       []string // stable join order; never re-sorted mid-game
	territories map[string]*Territory
	currentTurn string
	phase       Phase
	duels       map[string]*Duel
	pending     map[string]CancelFunc // settle timers keyed by territory

	bank   *questions.Bank
	notify Notifier
	sched  Scheduler
	rng    *rand.Rand
	now    func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithSeed makes grid values and question selection deterministic.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithClock overrides the session's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates an empty session awaiting players.
func NewSession(bank *questions.Bank, notify Notifier, sched Scheduler, opts ...Option) *Session {
	s := &Session{
		players:     make(map[string]*Player),
		territories: make(map[string]*Territory),
		duels:       make(map[string]*Duel),
		pending:     make(map[string]CancelFunc),
		bank:        bank,
		notify:      notify,
		sched:       sched,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase returns the session's lifecycle state.
func (s *Session) Phase() Phase {
	return s.phase
}

// Player returns the player with the given id, or nil.
func (s *Session) Player(id string) *Player {
	return s.players[id]
}

// Players returns all players in stable join order.
func (s *Session) Players() []*Player {
	out := make([]*Player, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.players[id])
	}
	return out
}

// Territories returns the live territory map. Callers must not mutate it.
func (s *Session) Territories() map[string]*Territory {
	return s.territories
}

// Territory returns the territory with the given id, or nil.
func (s *Session) Territory(id string) *Territory {
	return s.territories[id]
}

// Join adds a player to the session and broadcasts the updated roster.
// Joining with an id already present replaces that player's name only.
func (s *Session) Join(id, name string) {
	if p, ok := s.players[id]; ok {
		p.Name = name
	} else {
		s.players[id] = NewPlayer(id, name)
		s.order = append(s.order, id)
	}
	s.notify.RosterChanged(s.Players())
}

// Leave removes a player and broadcasts the updated roster. Leaving is not
// elimination: the departed player's territories keep their owner id and no
// turn advance happens. A stale turn pointer is tolerated by advanceTurn.
func (s *Session) Leave(id string) {
	if _, ok := s.players[id]; !ok {
		return
	}
	delete(s.players, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.notify.RosterChanged(s.Players())
}

// StartGame generates a fresh board and begins play. Any previous game's
// territories, duels and pending resolutions are discarded first, so a stale
// settle callback can never fire into the new game.
func (s *Session) StartGame() error {
	if len(s.order) < 2 {
		return ErrNotEnoughPlayers
	}

	for _, cancel := range s.pending {
		cancel()
	}
	s.pending = make(map[string]CancelFunc)
	s.duels = make(map[string]*Duel)

	for _, p := range s.players {
		p.Territories = []string{}
		p.Capital = ""
		p.Eliminated = false
	}

	s.generateGrid()
	s.currentTurn = s.order[0]
	s.phase = PhaseInProgress

	s.notify.GameStarted(s.territories, s.Players(), s.currentTurn)
	return nil
}

// conclude ends the game: the phase moves to Concluded, every pending settle
// timer is cancelled and every active duel is discarded, so nothing resolves
// or mutates ownership after game over. Then the winner is announced.
func (s *Session) conclude(winner *Player, reason string) {
	for _, cancel := range s.pending {
		cancel()
	}
	s.pending = make(map[string]CancelFunc)
	s.duels = make(map[string]*Duel)
	s.phase = PhaseConcluded
	s.notify.GameOver(winner, reason)
}

// Teardown cancels all pending duel resolutions. Used on server shutdown so
// no resolution fires into a dismantled session.
func (s *Session) Teardown() {
	for _, cancel := range s.pending {
		cancel()
	}
	s.pending = make(map[string]CancelFunc)
	s.duels = make(map[string]*Duel)
	s.phase = PhaseConcluded
}
