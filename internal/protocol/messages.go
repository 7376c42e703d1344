// Package protocol defines the network message types for client-server communication.
package protocol

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MessageType identifies the type of message.
type MessageType string

// Client-to-server message types
const (
	TypeJoin      MessageType = "join"
	TypeStartGame MessageType = "start_game"
	TypeAttack    MessageType = "attack"
	TypeAnswer    MessageType = "answer"
)

// Broadcast message types
const (
	TypeRoster           MessageType = "roster"
	TypeGameStarted      MessageType = "game_started"
	TypeTerritoryUpdate  MessageType = "territory_update"
	TypeTurnUpdate       MessageType = "turn_update"
	TypeDuelStatus       MessageType = "duel_status"
	TypeDuelResult       MessageType = "duel_result"
	TypePlayerEliminated MessageType = "player_eliminated"
	TypeGameOver         MessageType = "game_over"
	TypeGameLog          MessageType = "game_log"
)

// Duel participant message types
const (
	TypeQuestionChallenge MessageType = "question_challenge"
	TypeDuelComplete      MessageType = "duel_complete"
)

// System message types
const (
	TypeWelcome MessageType = "welcome"
	TypeError   MessageType = "error"
	TypeInfo    MessageType = "info"
)

// Message is the envelope for all messages.
type Message struct {
	Type      MessageType     `json:"type"`
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewMessage creates a new message with the given type and payload.
func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		ID:        uuid.New().String(),
		Timestamp: time.Now().UnixMilli(),
		Payload:   data,
	}, nil
}

// ParsePayload unmarshals the payload into the given type.
func (m *Message) ParsePayload(v interface{}) error {
	return json.Unmarshal(m.Payload, v)
}

// ErrorCode represents an error type.
type ErrorCode string

const (
	ErrCodeNotYourTurn      ErrorCode = "not_your_turn"
	ErrCodeUnknownTerritory ErrorCode = "unknown_territory"
	ErrCodeNoTerritories    ErrorCode = "no_territories"
	ErrCodeOwnTerritory     ErrorCode = "own_territory"
	ErrCodeNotAdjacent      ErrorCode = "not_adjacent"
	ErrCodeContested        ErrorCode = "already_contested"
	ErrCodeNoQuestions      ErrorCode = "no_questions"
	ErrCodeNotInDuel        ErrorCode = "not_in_duel"
	ErrCodeAlreadyAnswered  ErrorCode = "already_answered"
	ErrCodeNotEnoughPlayers ErrorCode = "not_enough_players"
	ErrCodeGameNotStarted   ErrorCode = "game_not_started"
	ErrCodeGameOver         ErrorCode = "game_over"
	ErrCodeUnknownPlayer    ErrorCode = "unknown_player"
	ErrCodeInternalError    ErrorCode = "internal_error"
)

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}
