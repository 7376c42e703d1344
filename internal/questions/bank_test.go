package questions

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBankFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeBankFile(t, `[
		{"id": 1, "question": "What is the capital of France?", "answers": ["Lyon", "Paris", "Nice", "Lille"], "correctAnswer": 1},
		{"id": 2, "question": "2 + 2 = ?", "answers": ["3", "4", "5", "6"], "correctAnswer": 1}
	]`)

	bank, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bank.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	bank, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
	require.NotNil(t, bank)
	assert.Equal(t, 0, bank.Len())
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeBankFile(t, `{"not": "an array"}`)

	bank, err := Load(path)
	assert.Error(t, err)
	require.NotNil(t, bank)
	assert.Equal(t, 0, bank.Len())
}

func TestNewBank_DropsBrokenEntries(t *testing.T) {
	bank := NewBank([]Question{
		{ID: 1, Question: "ok", Answers: []string{"a", "b"}, CorrectAnswer: 1},
		{ID: 2, Question: "index too high", Answers: []string{"a", "b"}, CorrectAnswer: 2},
		{ID: 3, Question: "negative index", Answers: []string{"a", "b"}, CorrectAnswer: -1},
		{ID: 4, Question: "no answers", Answers: nil, CorrectAnswer: 0},
	})

	assert.Equal(t, 1, bank.Len())
	q, ok := bank.Random(rand.New(rand.NewSource(1)))
	require.True(t, ok)
	assert.Equal(t, 1, q.ID)
}

func TestRandom_EmptyBank(t *testing.T) {
	_, ok := NewBank(nil).Random(rand.New(rand.NewSource(1)))
	assert.False(t, ok)
}

func TestRandom_SeededSequenceIsDeterministic(t *testing.T) {
	items := []Question{
		{ID: 1, Question: "a", Answers: []string{"x"}, CorrectAnswer: 0},
		{ID: 2, Question: "b", Answers: []string{"x"}, CorrectAnswer: 0},
		{ID: 3, Question: "c", Answers: []string{"x"}, CorrectAnswer: 0},
	}
	bank := NewBank(items)

	draw := func() []int {
		rng := rand.New(rand.NewSource(42))
		ids := make([]int, 0, 10)
		for i := 0; i < 10; i++ {
			q, ok := bank.Random(rng)
			require.True(t, ok)
			ids = append(ids, q.ID)
		}
		return ids
	}

	assert.Equal(t, draw(), draw())
}
