// Package questions loads and serves the trivia question bank.
package questions

import (
	"encoding/json"
	"math/rand"
	"os"
)

// Question is a single trivia item. CorrectAnswer indexes into Answers.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Answers       []string `json:"answers"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Bank is an ordered, read-only collection of questions.
type Bank struct {
	items []Question
}

// NewBank creates a bank from a slice of questions, dropping entries whose
// correct-answer index is out of range.
func NewBank(items []Question) *Bank {
	valid := make([]Question, 0, len(items))
	for _, q := range items {
		if len(q.Answers) == 0 || q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Answers) {
			continue
		}
		valid = append(valid, q)
	}
	return &Bank{items: valid}
}

// Load reads a question bank from a JSON file. An absent or malformed file
// yields an empty bank and the error; callers are expected to log it and
// carry on, in which case every attack fails for lack of questions.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Bank{}, err
	}

	var items []Question
	if err := json.Unmarshal(data, &items); err != nil {
		return &Bank{}, err
	}

	return NewBank(items), nil
}

// Len returns the number of usable questions.
func (b *Bank) Len() int {
	return len(b.items)
}

// Random picks one question uniformly at random, with replacement across
// calls. Returns false if the bank is empty.
func (b *Bank) Random(rng *rand.Rand) (Question, bool) {
	if len(b.items) == 0 {
		return Question{}, false
	}
	return b.items[rng.Intn(len(b.items))], true
}
