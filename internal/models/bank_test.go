package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadQuestionSetCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "spsrq_questions.csv", "id,question,type\n"+
		"1,Do you often refrain from doing something because you are afraid of it being illegal?,punishment\n"+
		"2,Does the good prospect of obtaining money motivate you strongly to do some things?,Reward\n")

	questions, err := LoadQuestionSet(SetSPSRQ, path)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, 1, questions[0].ID)
	assert.Equal(t, CategoryPunishment, questions[0].Category)
	assert.Equal(t, CategoryReward, questions[1].Category)
	assert.Equal(t, "Q2", questions[1].QualifiedID(SetSPSRQ))
}

func TestLoadQuestionSetYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "rss.yaml", `questions:
  - id: 4
    question: Listening to music
  - id: 9
    question: Time with friends
`)

	questions, err := LoadQuestionSet(SetRSS, path)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "Listening to music", questions[0].Text)
	assert.Equal(t, CategoryNone, questions[0].Category)
	assert.Equal(t, "RSS_9", questions[1].QualifiedID(SetRSS))
}

func TestLoadQuestionSetErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is data unavailable", func(t *testing.T) {
		_, err := LoadQuestionSet(SetASQ, filepath.Join(dir, "asq_questions.csv"))
		assert.ErrorIs(t, err, ErrDataUnavailable)
	})

	tests := []struct {
		name    string
		set     QuestionSet
		file    string
		content string
	}{
		{"duplicate id", SetRSS, "dup.csv", "id,question\n1,A\n1,B\n"},
		{"empty text", SetRSS, "empty.csv", "id,question\n1,  \n"},
		{"spsrq without category", SetSPSRQ, "nocat.csv", "id,question,type\n1,A,\n"},
		{"unknown extension", SetRSS, "questions.txt", "1,A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := LoadQuestionSet(tt.set, path)
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrDataUnavailable)
		})
	}
}

func TestBankRecordsPerSetFailures(t *testing.T) {
	dir := t.TempDir()
	spsrq := writeFile(t, dir, "spsrq.csv", "id,question,type\n1,A,reward\n2,B,punishment\n")
	rss := writeFile(t, dir, "rss.csv", "id,question\n1,Music\n")

	bank := NewBank(map[QuestionSet]string{
		SetSPSRQ: spsrq,
		SetRSS:   rss,
		SetASQ:   filepath.Join(dir, "missing.csv"),
	})

	questions, err := bank.Questions(SetSPSRQ)
	require.NoError(t, err)
	assert.Len(t, questions, 2)

	_, err = bank.Questions(SetASQ)
	assert.ErrorIs(t, err, ErrDataUnavailable)
	assert.Len(t, bank.Errors(), 1)

	// callers get a copy
	questions[0].Text = "changed"
	again, _ := bank.Questions(SetSPSRQ)
	assert.Equal(t, "A", again[0].Text)
}
