package protocol

// WelcomePayload is sent when a client first connects.
type WelcomePayload struct {
	ServerVersion string `json:"serverVersion"`
	PlayerID      string `json:"playerId"`
}

// JoinPayload is sent by a client to enter the lobby.
type JoinPayload struct {
	Name string `json:"name"`
}

// PlayerInfo describes one player in a roster snapshot.
type PlayerInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Territories []string `json:"territories"`
	Capital     string   `json:"capital,omitempty"`
	Eliminated  bool     `json:"eliminated"`
}

// RosterPayload is the full player list, broadcast on every roster change.
type RosterPayload struct {
	Players []PlayerInfo `json:"players"`
}

// TerritoryInfo describes one grid cell.
type TerritoryInfo struct {
	ID        string `json:"id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Value     int    `json:"value"`
	Owner     string `json:"owner,omitempty"`
	IsCapital bool   `json:"isCapital"`
}

// TerritoryUpdatePayload is a full board snapshot. Clients must treat it as
// authoritative replacement state, never as a delta.
type TerritoryUpdatePayload struct {
	Territories map[string]TerritoryInfo `json:"territories"`
}

// GameStartedPayload carries the initial board, roster and turn holder.
type GameStartedPayload struct {
	Territories map[string]TerritoryInfo `json:"territories"`
	Players     []PlayerInfo             `json:"players"`
	CurrentTurn string                   `json:"currentTurn"`
}

// TurnUpdatePayload announces the new turn holder.
type TurnUpdatePayload struct {
	PlayerID string `json:"playerId"`
}

// AttackPayload is sent by a client to contest a territory.
type AttackPayload struct {
	TerritoryID string `json:"territoryId"`
}

// QuestionView is the client-facing form of a trivia question. The correct
// answer index is deliberately absent.
type QuestionView struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
}

// QuestionChallengePayload delivers the duel question to a participant.
type QuestionChallengePayload struct {
	TerritoryID string       `json:"territoryId"`
	Question    QuestionView `json:"question"`
	Role        string       `json:"role"` // "attacker" or "defender"
}

// AnswerPayload is sent by a duel participant.
type AnswerPayload struct {
	TerritoryID    string `json:"territoryId"`
	Answer         int    `json:"answer"`
	ResponseTimeMs int64  `json:"responseTime"`
}

// DuelStatusPayload is broadcast whenever a participant answers, so observers
// can watch the duel progress.
type DuelStatusPayload struct {
	TerritoryID    string `json:"territoryId"`
	PlayerID       string `json:"playerId"`
	PlayerName     string `json:"playerName"`
	Role           string `json:"role"`
	ResponseTimeMs int64  `json:"responseTime"`
}

// DuelCompletePayload tells a participant to close their challenge prompt.
type DuelCompletePayload struct {
	TerritoryID string `json:"territoryId"`
}

// DuelResultPayload is broadcast once a duel resolves.
type DuelResultPayload struct {
	TerritoryID     string `json:"territoryId"`
	Winner          string `json:"winner"` // "attacker", "defender" or "none"
	Reason          string `json:"reason"`
	AttackerID      string `json:"attackerId"`
	DefenderID      string `json:"defenderId,omitempty"`
	AttackerCorrect bool   `json:"attackerCorrect"`
	DefenderCorrect bool   `json:"defenderCorrect"`
	AttackerTimeMs  int64  `json:"attackerTime"`
	DefenderTimeMs  int64  `json:"defenderTime,omitempty"`
	CorrectAnswer   int    `json:"correctAnswer"`
	Question        string `json:"question"`
	AnswerText      string `json:"answerText"`
}

// PlayerEliminatedPayload announces an elimination.
type PlayerEliminatedPayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// GameOverPayload announces the winner.
type GameOverPayload struct {
	Winner PlayerInfo `json:"winner"`
	Reason string     `json:"reason"`
}

// GameLogPayload is a free-text log line for client game logs.
type GameLogPayload struct {
	Text string `json:"text"`
}

// InfoPayload is a requester-only status acknowledgement.
type InfoPayload struct {
	Text string `json:"text"`
}
