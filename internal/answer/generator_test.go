package answer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eryajf/servicebot/internal/model"
)

func TestGenerator_ShortAndLongBudgets(t *testing.T) {
	tests := []struct {
		answerType model.AnswerType
		system     string
		maxTokens  int
	}{
		{model.AnswerShort, "Give a short, clear answer in 1–3 sentences.", 200},
		{model.AnswerLong, "Give a long, structured answer with headings and bullet points.", 600},
	}

	for _, tt := range tests {
		t.Run(string(tt.answerType), func(t *testing.T) {
			f := &fakeCompleter{reply: "A DBMS is software for managing databases."}

			out, err := NewGenerator(f).Generate(context.Background(), "What is DBMS?", "- snippet", tt.answerType)
			require.NoError(t, err)
			assert.Equal(t, "A DBMS is software for managing databases.", out)

			require.Len(t, f.calls, 1)
			assert.Equal(t, tt.system, f.calls[0].system)
			assert.Equal(t, tt.maxTokens, f.calls[0].maxTokens)
			assert.Equal(t, "Question: What is DBMS?\n\nContext:\n- snippet\n\nAnswer:", f.calls[0].user)
		})
	}
}

func TestGenerator_EmptyContext(t *testing.T) {
	f := &fakeCompleter{reply: "answer"}

	_, err := NewGenerator(f).Generate(context.Background(), "q", "", model.AnswerShort)
	require.NoError(t, err)
	assert.Equal(t, "Question: q\n\nContext:\n\n\nAnswer:", f.calls[0].user)
}

func TestGenerator_Failures(t *testing.T) {
	_, err := NewGenerator(&fakeCompleter{err: errors.New("upstream down")}).
		Generate(context.Background(), "q", "", model.AnswerShort)
	assert.EqualError(t, err, "upstream down")

	_, err = NewGenerator(&fakeCompleter{reply: "  \n "}).
		Generate(context.Background(), "q", "", model.AnswerShort)
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}
