package server

import (
	"errors"
	"time"

	"trivia-conquest/internal/database"
	"trivia-conquest/internal/game"
	"trivia-conquest/internal/protocol"

	"github.com/rs/zerolog/log"
)

// Handlers processes incoming messages and, as the session's Notifier,
// translates game events into protocol broadcasts. Everything here runs on
// the hub loop.
type Handlers struct {
	hub *Hub

	gameStartedAt time.Time
}

// NewHandlers creates the handler set.
func NewHandlers(hub *Hub) *Handlers {
	return &Handlers{hub: hub}
}

// Handle routes a message to the appropriate handler.
func (h *Handlers) Handle(client *Client, msg *protocol.Message) {
	var err error

	switch msg.Type {
	case protocol.TypeJoin:
		err = h.handleJoin(client, msg)
	case protocol.TypeStartGame:
		err = h.handleStartGame(client, msg)
	case protocol.TypeAttack:
		err = h.handleAttack(client, msg)
	case protocol.TypeAnswer:
		err = h.handleAnswer(client, msg)
	default:
		err = errors.New("unknown message type")
	}

	if err != nil {
		h.sendError(client, msg.ID, err)
	}
}

// handleJoin adds the connection's player to the session roster.
func (h *Handlers) handleJoin(client *Client, msg *protocol.Message) error {
	var payload protocol.JoinPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	if payload.Name == "" {
		payload.Name = "Wizard"
	}

	client.Name = payload.Name
	client.Joined = true
	h.hub.session.Join(client.PlayerID, payload.Name)

	log.Info().Str("player", client.PlayerID).Str("name", payload.Name).Msg("player joined")
	return nil
}

// handleStartGame starts a new game for everyone in the lobby.
func (h *Handlers) handleStartGame(client *Client, msg *protocol.Message) error {
	if err := h.hub.session.StartGame(); err != nil {
		return err
	}
	h.gameStartedAt = time.Now()
	log.Info().Int("players", len(h.hub.session.Players())).Msg("game started")
	return nil
}

// handleAttack opens a duel for the requested territory.
func (h *Handlers) handleAttack(client *Client, msg *protocol.Message) error {
	var payload protocol.AttackPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return h.hub.session.Attack(client.PlayerID, payload.TerritoryID)
}

// handleAnswer records a duel answer.
func (h *Handlers) handleAnswer(client *Client, msg *protocol.Message) error {
	var payload protocol.AnswerPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return h.hub.session.SubmitAnswer(client.PlayerID, payload.TerritoryID, payload.Answer, payload.ResponseTimeMs)
}

// sendError reports a failure to the single requester. Precondition failures
// never reach the other players.
func (h *Handlers) sendError(client *Client, msgID string, err error) {
	payload := protocol.ErrorPayload{
		Code:    errorCode(err),
		Message: err.Error(),
	}
	msg, _ := protocol.NewMessage(protocol.TypeError, payload)
	msg.ID = msgID
	client.Send(msg)
}

// errorCode maps game sentinel errors onto protocol error codes.
func errorCode(err error) protocol.ErrorCode {
	switch {
	case errors.Is(err, game.ErrNotYourTurn):
		return protocol.ErrCodeNotYourTurn
	case errors.Is(err, game.ErrUnknownTerritory):
		return protocol.ErrCodeUnknownTerritory
	case errors.Is(err, game.ErrNoTerritories):
		return protocol.ErrCodeNoTerritories
	case errors.Is(err, game.ErrOwnTerritory):
		return protocol.ErrCodeOwnTerritory
	case errors.Is(err, game.ErrNotAdjacent):
		return protocol.ErrCodeNotAdjacent
	case errors.Is(err, game.ErrTerritoryContested):
		return protocol.ErrCodeContested
	case errors.Is(err, game.ErrNoQuestions):
		return protocol.ErrCodeNoQuestions
	case errors.Is(err, game.ErrDuelNotActive), errors.Is(err, game.ErrNotInDuel):
		return protocol.ErrCodeNotInDuel
	case errors.Is(err, game.ErrAlreadyAnswered):
		return protocol.ErrCodeAlreadyAnswered
	case errors.Is(err, game.ErrNotEnoughPlayers):
		return protocol.ErrCodeNotEnoughPlayers
	case errors.Is(err, game.ErrGameNotStarted):
		return protocol.ErrCodeGameNotStarted
	case errors.Is(err, game.ErrGameOver):
		return protocol.ErrCodeGameOver
	case errors.Is(err, game.ErrUnknownPlayer):
		return protocol.ErrCodeUnknownPlayer
	default:
		return protocol.ErrCodeInternalError
	}
}

// --- game.Notifier implementation ---

// RosterChanged broadcasts the full player list.
func (h *Handlers) RosterChanged(players []*game.Player) {
	h.hub.broadcast(protocol.TypeRoster, protocol.RosterPayload{Players: playerInfos(players)})
}

// GameStarted broadcasts the fresh board, roster and first turn holder.
func (h *Handlers) GameStarted(territories map[string]*game.Territory, players []*game.Player, currentTurn string) {
	h.hub.broadcast(protocol.TypeGameStarted, protocol.GameStartedPayload{
		Territories: territoryInfos(territories),
		Players:     playerInfos(players),
		CurrentTurn: currentTurn,
	})
}

// TerritoriesChanged broadcasts a full board snapshot.
func (h *Handlers) TerritoriesChanged(territories map[string]*game.Territory) {
	h.hub.broadcast(protocol.TypeTerritoryUpdate, protocol.TerritoryUpdatePayload{
		Territories: territoryInfos(territories),
	})
}

// TurnChanged broadcasts the new turn holder.
func (h *Handlers) TurnChanged(playerID string) {
	h.hub.broadcast(protocol.TypeTurnUpdate, protocol.TurnUpdatePayload{PlayerID: playerID})
}

// ChallengePlayer delivers the duel question to one participant. The correct
// answer index stays server-side.
func (h *Handlers) ChallengePlayer(playerID string, c game.Challenge) bool {
	return h.hub.sendToPlayer(playerID, protocol.TypeQuestionChallenge, protocol.QuestionChallengePayload{
		TerritoryID: c.TerritoryID,
		Question: protocol.QuestionView{
			ID:       c.Question.ID,
			Question: c.Question.Question,
			Answers:  c.Question.Answers,
		},
		Role: string(c.Role),
	})
}

// DuelComplete tells a participant to close their challenge prompt.
func (h *Handlers) DuelComplete(playerID, territoryID string) {
	h.hub.sendToPlayer(playerID, protocol.TypeDuelComplete, protocol.DuelCompletePayload{TerritoryID: territoryID})
}

// DuelStatus broadcasts answer progress to everyone, observers included.
func (h *Handlers) DuelStatus(s game.DuelStatus) {
	h.hub.broadcast(protocol.TypeDuelStatus, protocol.DuelStatusPayload{
		TerritoryID:    s.TerritoryID,
		PlayerID:       s.PlayerID,
		PlayerName:     s.PlayerName,
		Role:           string(s.Role),
		ResponseTimeMs: s.ResponseTimeMs,
	})
}

// DuelResult broadcasts the outcome and records it in the history database.
func (h *Handlers) DuelResult(r game.DuelResult) {
	h.hub.broadcast(protocol.TypeDuelResult, protocol.DuelResultPayload{
		TerritoryID:     r.TerritoryID,
		Winner:          r.Winner,
		Reason:          r.Reason,
		AttackerID:      r.AttackerID,
		DefenderID:      r.DefenderID,
		AttackerCorrect: r.AttackerCorrect,
		DefenderCorrect: r.DefenderCorrect,
		AttackerTimeMs:  r.AttackerTimeMs,
		DefenderTimeMs:  r.DefenderTimeMs,
		CorrectAnswer:   r.CorrectAnswer,
		Question:        r.Question,
		AnswerText:      r.AnswerText,
	})

	if err := h.hub.server.db.RecordDuel(database.DuelRecord{
		TerritoryID:    r.TerritoryID,
		AttackerID:     r.AttackerID,
		DefenderID:     r.DefenderID,
		Winner:         r.Winner,
		Reason:         r.Reason,
		AttackerTimeMs: r.AttackerTimeMs,
		DefenderTimeMs: r.DefenderTimeMs,
	}); err != nil {
		log.Error().Err(err).Msg("failed to record duel")
	}
}

// PlayerEliminated broadcasts an elimination notice.
func (h *Handlers) PlayerEliminated(playerID, playerName string) {
	h.hub.broadcast(protocol.TypePlayerEliminated, protocol.PlayerEliminatedPayload{
		PlayerID:   playerID,
		PlayerName: playerName,
	})
}

// GameOver broadcasts the winner and records the match.
func (h *Handlers) GameOver(winner *game.Player, reason string) {
	var info protocol.PlayerInfo
	record := database.MatchRecord{
		Reason:    reason,
		StartedAt: h.gameStartedAt,
		EndedAt:   time.Now(),
	}
	if winner != nil {
		info = playerInfo(winner)
		record.WinnerID = winner.ID
		record.WinnerName = winner.Name
	}

	h.hub.broadcast(protocol.TypeGameOver, protocol.GameOverPayload{Winner: info, Reason: reason})

	if err := h.hub.server.db.RecordMatch(record); err != nil {
		log.Error().Err(err).Msg("failed to record match")
	}
	log.Info().Str("winner", record.WinnerName).Str("reason", reason).Msg("game over")
}

// GameLog broadcasts a free-text log line.
func (h *Handlers) GameLog(text string) {
	h.hub.broadcast(protocol.TypeGameLog, protocol.GameLogPayload{Text: text})
}

// Info sends a status acknowledgement to a single player.
func (h *Handlers) Info(playerID, text string) {
	h.hub.sendToPlayer(playerID, protocol.TypeInfo, protocol.InfoPayload{Text: text})
}

// --- payload conversion ---

func playerInfo(p *game.Player) protocol.PlayerInfo {
	territories := make([]string, len(p.Territories))
	copy(territories, p.Territories)
	return protocol.PlayerInfo{
		ID:          p.ID,
		Name:        p.Name,
		Territories: territories,
		Capital:     p.Capital,
		Eliminated:  p.Eliminated,
	}
}

func playerInfos(players []*game.Player) []protocol.PlayerInfo {
	out := make([]protocol.PlayerInfo, len(players))
	for i, p := range players {
		out[i] = playerInfo(p)
	}
	return out
}

func territoryInfos(territories map[string]*game.Territory) map[string]protocol.TerritoryInfo {
	out := make(map[string]protocol.TerritoryInfo, len(territories))
	for id, t := range territories {
		out[id] = protocol.TerritoryInfo{
			ID:        t.ID,
			X:         t.X,
			Y:         t.Y,
			Value:     t.Value,
			Owner:     t.Owner,
			IsCapital: t.IsCapital,
		}
	}
	return out
}
