package game

// Turn sequencing and elimination. Player order is the stable join order and
// is never re-sorted mid-game; both the initial turn and wraparound follow it.

// CurrentTurn returns the id of the player whose turn it is, or "" before
// the game starts.
func (s *Session) CurrentTurn() string {
	return s.currentTurn
}

// advanceTurn hands the turn to the next player in join order who still owns
// territory. Players found with nothing left are flagged eliminated on the
// way past (lazy elimination) and skipped from then on. If a single pass
// finds nobody, the game concludes with no winner.
//
// Callers broadcast the turn change themselves, after their own notifications.
func (s *Session) advanceTurn() {
	n := len(s.order)
	if n == 0 {
		return
	}

	// A departed turn holder leaves index -1, which restarts the scan at 0.
	idx := -1
	for i, id := range s.order {
		if id == s.currentTurn {
			idx = i
			break
		}
	}

	for step := 0; step < n; step++ {
		idx = (idx + 1) % n
		candidate := s.players[s.order[idx]]

		if candidate.Eliminated {
			continue
		}
		if len(candidate.Territories) > 0 {
			s.currentTurn = candidate.ID
			s.checkLastStanding()
			return
		}

		candidate.Eliminated = true
		s.notify.PlayerEliminated(candidate.ID, candidate.Name)
		s.notify.GameLog(candidate.Name + " has been eliminated from the game!")
	}

	s.conclude(nil, "No wizards remain")
}

// checkLastStanding concludes the game if elimination bookkeeping has
// reduced the field to a single player.
func (s *Session) checkLastStanding() {
	if s.phase != PhaseInProgress {
		return
	}

	var last *Player
	for _, id := range s.order {
		p := s.players[id]
		if p.Eliminated || len(p.Territories) == 0 {
			continue
		}
		if last != nil {
			return
		}
		last = p
	}
	if last == nil {
		return
	}

	s.conclude(last, "Last wizard standing!")
}

// checkWinCondition concludes the game if any player holds every opponent's
// capital, or if only one non-eliminated player remains. It runs after every
// ownership mutation, not just at turn boundaries, because a capital capture
// can end the game mid-resolution.
func (s *Session) checkWinCondition() {
	if s.phase != PhaseInProgress {
		return
	}

	for _, id := range s.order {
		candidate := s.players[id]
		if s.holdsAllOpposingCapitals(candidate) {
			s.conclude(candidate, "All capitals captured")
			return
		}
	}

	s.checkLastStanding()
}

// holdsAllOpposingCapitals reports whether the player's territory set
// contains every other player's capital. A player with no recorded capital
// (joined after the game started) blocks this victory.
func (s *Session) holdsAllOpposingCapitals(candidate *Player) bool {
	for _, id := range s.order {
		if id == candidate.ID {
			continue
		}
		other := s.players[id]
		if other.Capital == "" || !candidate.OwnsTerritory(other.Capital) {
			return false
		}
	}
	return len(s.order) > 1
}
