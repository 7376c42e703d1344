package game

import (
	"time"

	"trivia-conquest/internal/questions"
)

// Answer is one participant's recorded response. ResponseTimeMs is the
// client-reported answer speed and is what the tie-break trusts; ReceivedAt
// is the server-side receipt time, recorded so anomalous clients can be
// spotted after the fact, but deliberately not used for resolution.
type Answer struct {
	Choice         int
	ResponseTimeMs int64
	ReceivedAt     time.Time
}

// Duel is one contested territory's trivia contest. It exists only while
// answers are being collected; resolution removes it before the turn
// advances, so a duplicate late trigger finds nothing to resolve.
type Duel struct {
	TerritoryID string
	AttackerID  string
	DefenderID  string // empty when the territory was unowned
	Question    questions.Question
	Answers     map[string]*Answer
	CreatedAt   time.Time

	// Undefended is set when there is no defender to hear the challenge:
	// either the territory is unowned or its owner's connection is gone.
	// The attacker's correctness alone then decides the outcome.
	Undefended bool
}

// snapshot deep-copies the duel at the moment both answers arrived, so the
// deferred resolution operates on settled data no matter what else the loop
// processes during the settle delay.
func (d *Duel) snapshot() *Duel {
	answers := make(map[string]*Answer, len(d.Answers))
	for id, a := range d.Answers {
		copied := *a
		answers[id] = &copied
	}
	c := *d
	c.Answers = answers
	return &c
}

// ActiveDuel returns the duel contesting the territory, or nil.
func (s *Session) ActiveDuel(territoryID string) *Duel {
	return s.duels[territoryID]
}

// Attack opens a duel for the territory. Every precondition failure is a
// distinct error for the requester and leaves the session untouched.
func (s *Session) Attack(attackerID, territoryID string) error {
	attacker := s.players[attackerID]
	if attacker == nil {
		return ErrUnknownPlayer
	}
	switch s.phase {
	case PhaseLobby:
		return ErrGameNotStarted
	case PhaseConcluded:
		return ErrGameOver
	}

	if s.currentTurn != attackerID {
		return ErrNotYourTurn
	}
	target := s.territories[territoryID]
	if target == nil {
		return ErrUnknownTerritory
	}
	if len(attacker.Territories) == 0 {
		return ErrNoTerritories
	}
	if target.Owner == attackerID {
		return ErrOwnTerritory
	}
	if !s.ownsAdjacent(attacker, target) {
		return ErrNotAdjacent
	}
	if s.duels[territoryID] != nil {
		return ErrTerritoryContested
	}

	question, ok := s.bank.Random(s.rng)
	if !ok {
		return ErrNoQuestions
	}

	duel := &Duel{
		TerritoryID: territoryID,
		AttackerID:  attackerID,
		DefenderID:  target.Owner,
		Question:    question,
		Answers:     make(map[string]*Answer),
		CreatedAt:   s.now(),
	}
	s.duels[territoryID] = duel

	s.notify.ChallengePlayer(attackerID, Challenge{
		TerritoryID: territoryID,
		Question:    question,
		Role:        RoleAttacker,
	})

	if duel.DefenderID == "" {
		duel.Undefended = true
	} else {
		delivered := s.notify.ChallengePlayer(duel.DefenderID, Challenge{
			TerritoryID: territoryID,
			Question:    question,
			Role:        RoleDefender,
		})
		if !delivered {
			duel.Undefended = true
		}
	}

	return nil
}

// ownsAdjacent reports whether any of the attacker's territories touches
// the target.
func (s *Session) ownsAdjacent(attacker *Player, target *Territory) bool {
	for _, tid := range attacker.Territories {
		if owned := s.territories[tid]; owned != nil && owned.AdjacentTo(target) {
			return true
		}
	}
	return false
}

// SubmitAnswer records one participant's answer. When the last required
// answer arrives, both participants are told the duel is complete and
// resolution is scheduled after the settle delay, working on a snapshot
// taken now.
func (s *Session) SubmitAnswer(playerID, territoryID string, choice int, responseTimeMs int64) error {
	player := s.players[playerID]
	if player == nil {
		return ErrUnknownPlayer
	}
	if s.phase == PhaseConcluded {
		return ErrGameOver
	}
	duel := s.duels[territoryID]
	if duel == nil {
		return ErrDuelNotActive
	}
	if playerID != duel.AttackerID && playerID != duel.DefenderID {
		return ErrNotInDuel
	}
	if duel.Answers[playerID] != nil {
		return ErrAlreadyAnswered
	}

	duel.Answers[playerID] = &Answer{
		Choice:         choice,
		ResponseTimeMs: responseTimeMs,
		ReceivedAt:     s.now(),
	}

	role := RoleDefender
	if playerID == duel.AttackerID {
		role = RoleAttacker
	}
	s.notify.DuelStatus(DuelStatus{
		TerritoryID:    territoryID,
		PlayerID:       playerID,
		PlayerName:     player.Name,
		Role:           role,
		ResponseTimeMs: responseTimeMs,
	})

	if !s.duelComplete(duel) {
		s.notify.Info(playerID, "Your answer has been submitted. Waiting for "+s.waitingOn(duel)+" to answer.")
		return nil
	}

	s.notify.DuelComplete(duel.AttackerID, territoryID)
	if duel.DefenderID != "" {
		s.notify.DuelComplete(duel.DefenderID, territoryID)
	}

	settled := duel.snapshot()
	s.pending[territoryID] = s.sched.Schedule(SettleDelay, func() {
		s.resolveDuel(settled)
	})

	return nil
}

// duelComplete reports whether every required answer is in. The attacker's
// answer is always required; the defender's only when the duel is defended.
func (s *Session) duelComplete(d *Duel) bool {
	if d.Answers[d.AttackerID] == nil {
		return false
	}
	if d.DefenderID == "" || d.Undefended {
		return true
	}
	return d.Answers[d.DefenderID] != nil
}

// waitingOn names the participant who hasn't answered yet.
func (s *Session) waitingOn(d *Duel) string {
	missing := d.AttackerID
	if d.Answers[d.AttackerID] != nil {
		missing = d.DefenderID
	}
	if p := s.players[missing]; p != nil {
		return p.Name
	}
	return "your opponent"
}

// resolveDuel applies the settled duel's outcome: exactly one ownership
// mutation and one broadcast sequence per duel, in the fixed order
// result, territories, roster, elimination, game over, turn. The duel is
// removed from the active set strictly before the turn advances.
func (s *Session) resolveDuel(d *Duel) {
	delete(s.pending, d.TerritoryID)

	// Load-bearing guard: a duplicate trigger, a restart or a game
	// conclusion in the settle window removes the duel first, and a removed
	// duel must never resolve.
	if s.duels[d.TerritoryID] == nil {
		return
	}

	outcome := decideWinner(d)

	var eliminated *Player
	if outcome.Winner == string(RoleAttacker) {
		target := s.territories[d.TerritoryID]
		capitalOwner := ""
		if target.IsCapital && target.Owner != "" {
			capitalOwner = target.Owner
		}

		s.Transfer(d.TerritoryID, d.AttackerID)

		// Losing your capital is immediate elimination: the rest of the
		// loser's realm reverts to unclaimed wilderness.
		if capitalOwner != "" {
			if loser := s.players[capitalOwner]; loser != nil && !loser.Eliminated {
				loser.Eliminated = true
				s.VacateAll(loser.ID, d.TerritoryID)
				eliminated = loser
			}
		}
	}

	s.notify.DuelResult(outcome)
	s.notify.TerritoriesChanged(s.territories)
	s.notify.RosterChanged(s.Players())

	if eliminated != nil {
		s.notify.PlayerEliminated(eliminated.ID, eliminated.Name)
		s.notify.GameLog(eliminated.Name + " has been eliminated from the game!")
	}
	if outcome.Winner == string(RoleAttacker) {
		s.checkWinCondition()
	}

	delete(s.duels, d.TerritoryID)

	if s.phase != PhaseInProgress {
		return
	}
	s.advanceTurn()
	if s.phase != PhaseInProgress {
		return
	}
	s.notify.TurnChanged(s.currentTurn)
	if next := s.players[s.currentTurn]; next != nil {
		s.notify.GameLog("It's now " + next.Name + "'s turn.")
	}
}

// decideWinner evaluates the duel on its settled data.
//
// Undefended: the attacker's correctness alone decides; a miss leaves
// ownership unchanged. Defended: correctness first, then the strictly lower
// response time. A speed tie goes to the defender.
func decideWinner(d *Duel) DuelResult {
	attackerAnswer := d.Answers[d.AttackerID]
	attackerCorrect := attackerAnswer.Choice == d.Question.CorrectAnswer

	r := DuelResult{
		TerritoryID:     d.TerritoryID,
		AttackerID:      d.AttackerID,
		DefenderID:      d.DefenderID,
		AttackerCorrect: attackerCorrect,
		AttackerTimeMs:  attackerAnswer.ResponseTimeMs,
		CorrectAnswer:   d.Question.CorrectAnswer,
		Question:        d.Question.Question,
		AnswerText:      d.Question.Answers[d.Question.CorrectAnswer],
	}

	if d.DefenderID == "" || d.Undefended {
		if attackerCorrect {
			r.Winner = string(RoleAttacker)
			r.Reason = "Attacker answered correctly and claimed undefended territory"
		} else {
			r.Winner = "none"
			r.Reason = "Attacker answered incorrectly, territory remains unclaimed"
		}
		return r
	}

	defenderAnswer := d.Answers[d.DefenderID]
	defenderCorrect := defenderAnswer.Choice == d.Question.CorrectAnswer
	r.DefenderCorrect = defenderCorrect
	r.DefenderTimeMs = defenderAnswer.ResponseTimeMs

	switch {
	case attackerCorrect && defenderCorrect:
		if attackerAnswer.ResponseTimeMs < defenderAnswer.ResponseTimeMs {
			r.Winner = string(RoleAttacker)
			r.Reason = "Both answered correctly, but attacker was faster"
		} else {
			r.Winner = string(RoleDefender)
			r.Reason = "Both answered correctly, but defender was faster"
		}
	case attackerCorrect:
		r.Winner = string(RoleAttacker)
		r.Reason = "Attacker answered correctly, defender did not"
	case defenderCorrect:
		r.Winner = string(RoleDefender)
		r.Reason = "Defender answered correctly, attacker did not"
	default:
		r.Winner = string(RoleDefender)
		r.Reason = "Neither answered correctly, territory stays with defender"
	}
	return r
}
