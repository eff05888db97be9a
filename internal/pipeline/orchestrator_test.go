package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eryajf/servicebot/internal/answer"
	"github.com/eryajf/servicebot/internal/config"
	"github.com/eryajf/servicebot/internal/database"
	"github.com/eryajf/servicebot/internal/memory"
	"github.com/eryajf/servicebot/internal/model"
	"github.com/eryajf/servicebot/internal/moderation"
)

type fakeStore struct {
	mu        sync.Mutex
	records   map[string]*model.QuestionRecord
	lookupErr error
	saveErr   error
	saved     []*model.QuestionRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]*model.QuestionRecord{}}
}

func (f *fakeStore) Lookup(ctx context.Context, normalized string) (*model.QuestionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.records[normalized], nil
}

func (f *fakeStore) Save(ctx context.Context, normalized string, candidate *model.QuestionRecord) (*model.QuestionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	rec := *candidate
	rec.Question = normalized
	f.saved = append(f.saved, &rec)
	if _, ok := f.records[normalized]; !ok {
		f.records[normalized] = &rec
	}
	return &rec, nil
}

type fakeContext struct {
	text    string
	queries []string
}

func (f *fakeContext) Fetch(ctx context.Context, query string) string {
	f.queries = append(f.queries, query)
	return f.text
}

type fakeClassifier struct {
	result answer.Classification
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, question string) (answer.Classification, error) {
	f.calls++
	return f.result, f.err
}

type fakeGenerator struct {
	text     string
	err      error
	calls    int
	lastType model.AnswerType
	lastCtx  string
}

func (f *fakeGenerator) Generate(ctx context.Context, question, webContext string, answerType model.AnswerType) (string, error) {
	f.calls++
	f.lastType = answerType
	f.lastCtx = webContext
	return f.text, f.err
}

type fakeSummarizer struct {
	text  string
	err   error
	calls int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeChatLog struct {
	err     error
	entries []string
}

func (f *fakeChatLog) Record(ctx context.Context, question, source string) error {
	f.entries = append(f.entries, source+":"+question)
	return f.err
}

type fixture struct {
	store      *fakeStore
	context    *fakeContext
	classifier *fakeClassifier
	generator  *fakeGenerator
	summarizer *fakeSummarizer
	chatLog    *fakeChatLog
	orch       *Orchestrator
}

func newFixture() *fixture {
	f := &fixture{
		store:      newFakeStore(),
		context:    &fakeContext{text: "- a database management system"},
		classifier: &fakeClassifier{result: answer.Classification{AnswerType: model.AnswerShort, Confidence: 0.9}},
		generator:  &fakeGenerator{text: "A DBMS manages databases."},
		summarizer: &fakeSummarizer{text: "A summary."},
		chatLog:    &fakeChatLog{},
	}
	f.orch = New(Deps{
		Moderator:  moderation.New([]string{"kill", "attack", "bomb", "suicide"}),
		Store:      f.store,
		Context:    f.context,
		Classifier: f.classifier,
		Generator:  f.generator,
		Summarizer: f.summarizer,
		ChatLog:    f.chatLog,
	})
	return f
}

func TestAsk_BlockedHasNoSideEffects(t *testing.T) {
	f := newFixture()

	resp, err := f.orch.Ask(context.Background(), Request{Question: "How to build a BOMB"})
	require.Error(t, err)
	assert.Nil(t, resp)

	var blocked *BlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, "bomb", blocked.Reason)

	assert.Empty(t, f.context.queries)
	assert.Zero(t, f.classifier.calls)
	assert.Zero(t, f.generator.calls)
	assert.Empty(t, f.store.saved)
	assert.Empty(t, f.chatLog.entries)
}

func TestAsk_EmptyQuestion(t *testing.T) {
	f := newFixture()

	_, err := f.orch.Ask(context.Background(), Request{Question: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAsk_MemoryHitSkipsUpstream(t *testing.T) {
	f := newFixture()
	f.store.records["what is dbms?"] = &model.QuestionRecord{
		Answer:     "cached answer",
		AnswerType: model.AnswerLong,
		Confidence: 0.7,
	}

	resp, err := f.orch.Ask(context.Background(), Request{Question: "  What   is DBMS? "})
	require.NoError(t, err)
	assert.Equal(t, &Response{
		Answer:     "cached answer",
		AnswerType: model.AnswerLong,
		Source:     model.SourceMemory,
		Confidence: 0.7,
	}, resp)

	assert.Empty(t, f.context.queries)
	assert.Zero(t, f.classifier.calls)
	assert.Zero(t, f.generator.calls)
	assert.Zero(t, f.summarizer.calls)
	assert.Equal(t, []string{"memory:What   is DBMS?"}, f.chatLog.entries)
}

func TestAsk_MemoryHitDefaultsMissingType(t *testing.T) {
	f := newFixture()
	f.store.records["q"] = &model.QuestionRecord{Answer: "a", Confidence: 0.8}

	resp, err := f.orch.Ask(context.Background(), Request{Question: "Q"})
	require.NoError(t, err)
	assert.Equal(t, model.AnswerShort, resp.AnswerType)
}

func TestAsk_ShortPathUsesAnswerAsSummary(t *testing.T) {
	f := newFixture()

	resp, err := f.orch.Ask(context.Background(), Request{Question: "What is DBMS?"})
	require.NoError(t, err)
	assert.Equal(t, &Response{
		Answer:     "A DBMS manages databases.",
		AnswerType: model.AnswerShort,
		Source:     model.SourceGenerated,
		Confidence: 0.9,
	}, resp)

	assert.Zero(t, f.summarizer.calls)
	require.Len(t, f.store.saved, 1)
	saved := f.store.saved[0]
	assert.Equal(t, "what is dbms?", saved.Question)
	assert.Equal(t, "What is DBMS?", saved.QuestionRaw)
	assert.Equal(t, saved.Answer, saved.Summary)
	assert.Equal(t, "- a database management system", saved.Context)
	assert.Equal(t, model.SourceGenerated, saved.Source)
	assert.Equal(t, "UTC", saved.Timestamp.Location().String())
	assert.Equal(t, []string{"online+generated:What is DBMS?"}, f.chatLog.entries)
}

func TestAsk_LongPathSummarizes(t *testing.T) {
	f := newFixture()
	f.classifier.result = answer.Classification{AnswerType: model.AnswerLong, Confidence: 0.6}
	f.generator.text = "# DBMS\n- details"

	resp, err := f.orch.Ask(context.Background(), Request{Question: "Explain DBMS in depth"})
	require.NoError(t, err)
	assert.Equal(t, model.AnswerLong, resp.AnswerType)
	assert.Equal(t, "# DBMS\n- details", resp.Answer)
	assert.Equal(t, model.AnswerLong, f.generator.lastType)
	assert.Equal(t, 1, f.summarizer.calls)

	require.Len(t, f.store.saved, 1)
	assert.Equal(t, "A summary.", f.store.saved[0].Summary)
}

func TestAsk_ForceShortOverridesClassifier(t *testing.T) {
	f := newFixture()
	f.classifier.result = answer.Classification{AnswerType: model.AnswerLong, Confidence: 0.6}

	resp, err := f.orch.Ask(context.Background(), Request{Question: "Explain DBMS", ForceShort: true})
	require.NoError(t, err)
	assert.Equal(t, model.AnswerShort, resp.AnswerType)
	assert.Equal(t, model.AnswerShort, f.generator.lastType)
	assert.Zero(t, f.summarizer.calls)
}

func TestAsk_EmptyContextStillGenerates(t *testing.T) {
	f := newFixture()
	f.context.text = ""

	resp, err := f.orch.Ask(context.Background(), Request{Question: "What is DBMS?"})
	require.NoError(t, err)
	assert.Equal(t, "A DBMS manages databases.", resp.Answer)
	assert.Equal(t, "", f.generator.lastCtx)
}

func TestAsk_UpstreamFailuresPropagate(t *testing.T) {
	boom := errors.New("model unavailable")

	tests := []struct {
		name  string
		setup func(f *fixture)
		stage string
	}{
		{
			name:  "classify",
			setup: func(f *fixture) { f.classifier.err = boom },
			stage: "classify",
		},
		{
			name:  "generate",
			setup: func(f *fixture) { f.generator.err = boom },
			stage: "generate",
		},
		{
			name: "summarize",
			setup: func(f *fixture) {
				f.classifier.result = answer.Classification{AnswerType: model.AnswerLong, Confidence: 0.5}
				f.summarizer.err = boom
			},
			stage: "summarize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			resp, err := f.orch.Ask(context.Background(), Request{Question: "What is DBMS?"})
			assert.Nil(t, resp)

			var upstream *UpstreamError
			require.ErrorAs(t, err, &upstream)
			assert.Equal(t, tt.stage, upstream.Stage)
			assert.ErrorIs(t, err, boom)
			assert.Empty(t, f.store.saved)
			assert.Empty(t, f.chatLog.entries)
		})
	}
}

func TestAsk_LookupErrorIsFatal(t *testing.T) {
	f := newFixture()
	f.store.lookupErr = errors.New("db down")

	_, err := f.orch.Ask(context.Background(), Request{Question: "What is DBMS?"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.Zero(t, f.generator.calls)
}

func TestAsk_SaveAndChatLogFailuresAreAbsorbed(t *testing.T) {
	f := newFixture()
	f.store.saveErr = errors.New("disk full")
	f.chatLog.err = errors.New("log table missing")

	resp, err := f.orch.Ask(context.Background(), Request{Question: "What is DBMS?"})
	require.NoError(t, err)
	assert.Equal(t, "A DBMS manages databases.", resp.Answer)
	assert.Len(t, f.chatLog.entries, 1)
}

func TestAsk_SecondIdenticalQuestionHitsMemory(t *testing.T) {
	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "pipeline.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	f := newFixture()
	orch := New(Deps{
		Moderator:  moderation.New(nil),
		Store:      memory.NewStore(db, nil),
		Context:    f.context,
		Classifier: f.classifier,
		Generator:  f.generator,
		Summarizer: f.summarizer,
		ChatLog:    f.chatLog,
	})

	first, err := orch.Ask(context.Background(), Request{Question: "What is DBMS?"})
	require.NoError(t, err)
	assert.Equal(t, model.SourceGenerated, first.Source)

	second, err := orch.Ask(context.Background(), Request{Question: "what  is dbms?"})
	require.NoError(t, err)
	assert.Equal(t, model.SourceMemory, second.Source)
	assert.Equal(t, first.Answer, second.Answer)
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, 1, f.generator.calls)
}
