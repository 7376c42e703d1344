package game

import "errors"

// Game errors. All of these are precondition or resource failures reported to
// the single requester; none of them mutate session state.
var (
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrUnknownTerritory   = errors.New("territory does not exist")
	ErrNoTerritories      = errors.New("you don't have any territories")
	ErrOwnTerritory       = errors.New("you already own this territory")
	ErrNotAdjacent        = errors.New("you can only attack adjacent territories")
	ErrTerritoryContested = errors.New("this territory is already being contested")
	ErrNoQuestions        = errors.New("no questions available")
	ErrDuelNotActive      = errors.New("this territory isn't being contested")
	ErrNotInDuel          = errors.New("you are not part of this duel")
	ErrAlreadyAnswered    = errors.New("you've already answered this question")
	ErrNotEnoughPlayers   = errors.New("need at least 2 players to start")
	ErrGameNotStarted     = errors.New("game has not started")
	ErrGameOver           = errors.New("game is over")
	ErrUnknownPlayer      = errors.New("player not found in game state")
)
