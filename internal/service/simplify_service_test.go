package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"babysimple/internal/model"
	"babysimple/internal/provider"
	"babysimple/internal/repository"
	"babysimple/internal/usage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	out     string
	err     error
	calls   int
	lastReq model.SimplificationRequest
}

func (f *fakeChat) Simplify(ctx context.Context, req model.SimplificationRequest, apiKey string) (string, error) {
	f.calls++
	f.lastReq = req
	return f.out, f.err
}

func (f *fakeChat) Vendor() string { return "Groq (Llama-3)" }

type fakeGemini struct {
	res        *provider.GeminiResult
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeGemini) Generate(ctx context.Context, apiKey, prompt string) (*provider.GeminiResult, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.res, f.err
}

type simplifyFixture struct {
	svc     *SimplifyService
	chat    *fakeChat
	gemini  *fakeGemini
	counter *usage.Counter
	history *HistoryService
}

func newSimplifyFixture(t *testing.T, chat *fakeChat, gemini *fakeGemini, chatKey, geminiKey string) *simplifyFixture {
	t.Helper()
	counter := usage.NewCounter(usage.NewMemoryStore())
	history := NewHistoryService(repository.NewMemoryHistory(), nil, zerolog.Nop())
	svc := NewSimplifyService(chat, gemini, chatKey, geminiKey, counter, history, nil, zerolog.Nop())
	return &simplifyFixture{svc: svc, chat: chat, gemini: gemini, counter: counter, history: history}
}

func TestSimplifyRejectsEmptyInput(t *testing.T) {
	f := newSimplifyFixture(t, &fakeChat{}, &fakeGemini{}, "ck", "gk")

	_, err := f.svc.Simplify(context.Background(), model.SimplificationRequest{}, model.TierStarter, "s1", "")
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Zero(t, f.chat.calls)
	assert.Zero(t, f.gemini.calls)
}

func TestSimplifyEnforcesCharLimitBeforeProviders(t *testing.T) {
	f := newSimplifyFixture(t, &fakeChat{out: "ok"}, &fakeGemini{}, "ck", "gk")

	req := model.SimplificationRequest{Text: strings.Repeat("x", 801)}
	_, err := f.svc.Simplify(context.Background(), req, model.TierStarter, "s1", "")

	var limitErr *LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, LimitCharacters, limitErr.Kind)
	assert.Equal(t, 800, limitErr.Limit)
	assert.Zero(t, f.chat.calls)
	assert.Zero(t, f.gemini.calls)
}

func TestSimplifyCharLimitScalesWithTier(t *testing.T) {
	f := newSimplifyFixture(t, &fakeChat{out: "ok"}, &fakeGemini{}, "ck", "gk")

	// 801 characters is over Starter's limit but well inside Pro's.
	req := model.SimplificationRequest{Text: strings.Repeat("x", 801)}
	_, err := f.svc.Simplify(context.Background(), req, model.TierPro, "s1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, f.chat.calls)
}

func TestSimplifyEnforcesDailyCapBeforeProviders(t *testing.T) {
	f := newSimplifyFixture(t, &fakeChat{out: "ok"}, &fakeGemini{}, "ck", "gk")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.counter.RecordUse(ctx, "s1")
		require.NoError(t, err)
	}

	_, err := f.svc.Simplify(ctx, model.SimplificationRequest{Text: "some jargon text"}, model.TierStarter, "s1", "")

	var limitErr *LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, LimitDailyCap, limitErr.Kind)
	assert.Equal(t, 5, limitErr.Limit)
	assert.Zero(t, f.chat.calls, "capped request must not reach any provider")
	assert.Zero(t, f.gemini.calls)
}

func TestSimplifyChatProviderGoesFirst(t *testing.T) {
	f := newSimplifyFixture(t, &fakeChat{out: "plain words"}, &fakeGemini{res: &provider.GeminiResult{Text: "unused"}}, "ck", "gk")
	ctx := context.Background()

	res, err := f.svc.Simplify(ctx, model.SimplificationRequest{Text: "some jargon text here"}, model.TierStarter, "s1", "")

	require.NoError(t, err)
	assert.Equal(t, "plain words", res.Text)
	assert.Equal(t, "Groq (Llama-3)", res.ModelUsed)
	assert.Equal(t, 1, f.chat.calls)
	assert.Zero(t, f.gemini.calls, "primary must not be called when chat succeeds")
	require.Len(t, res.Attempts, 1)
	assert.Empty(t, res.Attempts[0].Err)

	count, err := f.counter.CurrentCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSimplifyFallsBackToGemini(t *testing.T) {
	chat := &fakeChat{err: errors.New("rate limited")}
	gemini := &fakeGemini{res: &provider.GeminiResult{Text: "plain words", Model: "models/gemini-1.5-flash"}}
	f := newSimplifyFixture(t, chat, gemini, "ck", "gk")

	res, err := f.svc.Simplify(context.Background(), model.SimplificationRequest{Text: "some jargon text here"}, model.TierPro, "s1", "")

	require.NoError(t, err)
	assert.Equal(t, "plain words", res.Text)
	assert.Equal(t, "models/gemini-1.5-flash", res.ModelUsed)
	require.Len(t, res.Attempts, 2)
	assert.Equal(t, "Groq (Llama-3)", res.Attempts[0].Provider)
	assert.Contains(t, res.Attempts[0].Err, "rate limited")
	assert.Equal(t, "Gemini", res.Attempts[1].Provider)
	assert.Empty(t, res.Attempts[1].Err)
}

func TestSimplifySkipsChatWithoutCredential(t *testing.T) {
	chat := &fakeChat{out: "unused"}
	gemini := &fakeGemini{res: &provider.GeminiResult{Text: "plain words", Model: "models/gemini-1.5-flash"}}
	f := newSimplifyFixture(t, chat, gemini, "", "gk")

	res, err := f.svc.Simplify(context.Background(), model.SimplificationRequest{Text: "some jargon text here"}, model.TierPro, "s1", "")

	require.NoError(t, err)
	assert.Zero(t, chat.calls)
	assert.Equal(t, 1, gemini.calls)
	require.Len(t, res.Attempts, 1)
}

func TestSimplifyAuthErrorSurfaces(t *testing.T) {
	gemini := &fakeGemini{err: &provider.AuthError{Vendor: "Gemini", Msg: "API_KEY_INVALID"}}
	f := newSimplifyFixture(t, &fakeChat{err: errors.New("down")}, gemini, "ck", "gk")

	_, err := f.svc.Simplify(context.Background(), model.SimplificationRequest{Text: "some jargon text here"}, model.TierPro, "s1", "")

	var authErr *provider.AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestSimplifyAllProvidersFailed(t *testing.T) {
	chat := &fakeChat{err: errors.New("chat down")}
	gemini := &fakeGemini{err: &provider.ExhaustedError{LastErr: "model not found"}}
	f := newSimplifyFixture(t, chat, gemini, "ck", "gk")

	_, err := f.svc.Simplify(context.Background(), model.SimplificationRequest{Text: "some jargon text here"}, model.TierPro, "s1", "")

	var failedErr *AllProvidersFailedError
	require.ErrorAs(t, err, &failedErr)
	require.Len(t, failedErr.Attempts, 2)
	assert.Contains(t, failedErr.Attempts[0].Err, "chat down")
	assert.Contains(t, failedErr.Attempts[1].Err, "model not found")
}

func TestSimplifyNoCredentialsAtAll(t *testing.T) {
	f := newSimplifyFixture(t, &fakeChat{}, &fakeGemini{}, "", "")

	_, err := f.svc.Simplify(context.Background(), model.SimplificationRequest{Text: "some jargon text here"}, model.TierPro, "s1", "")
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestSimplifyChatOnlyFailureWithoutGeminiKey(t *testing.T) {
	f := newSimplifyFixture(t, &fakeChat{err: errors.New("chat down")}, &fakeGemini{}, "ck", "")

	_, err := f.svc.Simplify(context.Background(), model.SimplificationRequest{Text: "some jargon text here"}, model.TierPro, "s1", "")

	var failedErr *AllProvidersFailedError
	require.ErrorAs(t, err, &failedErr)
	assert.Zero(t, f.gemini.calls)
}

func TestSimplifyDefaultsTargetLanguage(t *testing.T) {
	chat := &fakeChat{out: "ok"}
	f := newSimplifyFixture(t, chat, &fakeGemini{}, "ck", "gk")

	_, err := f.svc.Simplify(context.Background(), model.SimplificationRequest{Text: "some jargon text here"}, model.TierPro, "s1", "")
	require.NoError(t, err)
	assert.Equal(t, "English", chat.lastReq.TargetLanguage)
}

func TestSimplifyPaidTiersAreNotCounted(t *testing.T) {
	f := newSimplifyFixture(t, &fakeChat{out: "ok"}, &fakeGemini{}, "ck", "gk")
	ctx := context.Background()

	_, err := f.svc.Simplify(ctx, model.SimplificationRequest{Text: "some jargon text here"}, model.TierEnterprise, "s1", "")
	require.NoError(t, err)

	count, err := f.counter.CurrentCount(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSimplifyRecordsHistory(t *testing.T) {
	f := newSimplifyFixture(t, &fakeChat{out: "plain words"}, &fakeGemini{}, "ck", "gk")
	ctx := context.Background()

	_, err := f.svc.Simplify(ctx, model.SimplificationRequest{Text: "some jargon text here", Niche: "Legal", Tone: "Standard"}, model.TierPro, "s1", "")
	require.NoError(t, err)

	items, err := f.history.List(ctx, "s1", "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "some jargon text here", items[0].Input)
	assert.Equal(t, "plain words", items[0].Output)
	assert.Equal(t, "Legal", items[0].Niche)
}
