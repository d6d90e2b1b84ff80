package tutor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakflow/internal/provider"
	"speakflow/internal/store"
)

// fakeClient returns scripted responses and counts calls.
type fakeClient struct {
	responses []string
	errs      []error
	calls     int

	lastSystem   string
	lastMessages []provider.Message
}

func (f *fakeClient) next() (string, error) {
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var resp string
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func (f *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	return f.CompleteWithSystem(ctx, "", prompt)
}

func (f *fakeClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastSystem = systemPrompt
	return f.next()
}

func (f *fakeClient) Chat(ctx context.Context, systemPrompt string, messages []provider.Message) (string, error) {
	f.lastSystem = systemPrompt
	f.lastMessages = messages
	return f.next()
}

func newTestPipeline(t *testing.T, clients ...*fakeClient) (*Pipeline, *VerseCache) {
	t.Helper()
	entries := make([]provider.Entry, len(clients))
	for i, c := range clients {
		entries[i] = provider.Entry{
			Config: provider.Config{ID: string(rune('a' + i))},
			Client: c,
		}
	}
	registry, err := provider.NewRegistryFromEntries(entries)
	require.NoError(t, err)

	cache := NewVerseCache(store.NewMemoryBackend())
	return NewPipeline(registry, cache, nil), cache
}

const goodVerseLine = "Cast your cares.|Psalm 55:22|네 짐을.|평안하세요."

func TestDailyVerseFirstProviderSucceeds(t *testing.T) {
	first := &fakeClient{responses: []string{goodVerseLine}}
	second := &fakeClient{}
	p, cache := newTestPipeline(t, first, second)

	v, err := p.DailyVerse(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "Psalm 55:22", v.Reference)
	assert.Equal(t, 1, first.calls)
	assert.Zero(t, second.calls, "no rotation on success")

	cached, ok, err := cache.Last()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, v, cached)

	history, err := cache.History()
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestDailyVerseRotatesOnTransportFailure(t *testing.T) {
	first := &fakeClient{errs: []error{&provider.TransportError{Provider: "a", Status: 500}}}
	second := &fakeClient{responses: []string{goodVerseLine}}
	p, _ := newTestPipeline(t, first, second)

	v, err := p.DailyVerse(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "Psalm 55:22", v.Reference)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestDailyVerseRotatesOnValidationFailure(t *testing.T) {
	// Parses as text but violates the format contract.
	first := &fakeClient{responses: []string{"not a verse at all"}}
	second := &fakeClient{responses: []string{goodVerseLine}}
	p, _ := newTestPipeline(t, first, second)

	v, err := p.DailyVerse(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "Cast your cares.", v.Verse)
}

func TestDailyVerseRotatesOnRateLimit(t *testing.T) {
	first := &fakeClient{errs: []error{&provider.RateLimitError{Provider: "a"}}}
	second := &fakeClient{responses: []string{goodVerseLine}}
	p, _ := newTestPipeline(t, first, second)

	_, err := p.DailyVerse(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, second.calls)
}

func TestDailyVerseExhaustsBudget(t *testing.T) {
	bad := &provider.TransportError{Provider: "a", Status: 503}
	first := &fakeClient{errs: []error{bad, bad, bad, bad}}
	second := &fakeClient{errs: []error{bad, bad, bad, bad}}
	p, cache := newTestPipeline(t, first, second)

	_, err := p.DailyVerse(context.Background(), 0)
	require.ErrorIs(t, err, ErrVerseUnavailable)

	// Default budget is twice the provider count, alternating providers.
	assert.Equal(t, 2, first.calls)
	assert.Equal(t, 2, second.calls)

	_, ok, err := cache.Last()
	require.NoError(t, err)
	assert.False(t, ok, "nothing cached on failure")
}

func TestDailyVerseExplicitBudget(t *testing.T) {
	bad := &provider.TransportError{Provider: "a", Status: 503}
	first := &fakeClient{errs: []error{bad, bad, bad}}
	second := &fakeClient{errs: []error{bad, bad, bad}}
	p, _ := newTestPipeline(t, first, second)

	_, err := p.DailyVerse(context.Background(), 3)
	require.ErrorIs(t, err, ErrVerseUnavailable)
	assert.Equal(t, 3, first.calls+second.calls)
}

func TestDailyVerseStopsOnCancelledContext(t *testing.T) {
	first := &fakeClient{}
	p, _ := newTestPipeline(t, first)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.DailyVerse(ctx, 0)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, first.calls)
}

func TestDailyVerseDoesNotRequestJSON(t *testing.T) {
	client := &fakeClient{responses: []string{goodVerseLine}}
	p, _ := newTestPipeline(t, client)

	_, err := p.DailyVerse(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "You are a Bible Verse generator.", client.lastSystem)
}

func TestReplyParsesStructuredResponse(t *testing.T) {
	body := `{"english":"Great job!","korean":"잘했어요!","correction":"I went to school.","suggestions":[{"english":"Thanks","korean":"감사"}]}`
	client := &fakeClient{responses: []string{body}}
	p, _ := newTestPipeline(t, client)

	reply := p.Reply(context.Background(), "I goed to school", nil)

	assert.Equal(t, "Great job!", reply.English)
	assert.Equal(t, "잘했어요!", reply.Korean)
	assert.Equal(t, "I went to school.", reply.Correction)
	require.Len(t, reply.Suggestions, 1)
	assert.False(t, reply.Degraded)
}

func TestReplyStripsFencesAroundJSON(t *testing.T) {
	body := "```json\n{\"english\":\"Hi!\",\"korean\":\"안녕!\"}\n```"
	client := &fakeClient{responses: []string{body}}
	p, _ := newTestPipeline(t, client)

	reply := p.Reply(context.Background(), "hello", nil)
	assert.Equal(t, "Hi!", reply.English)
	assert.False(t, reply.Degraded)
}

func TestReplyDegradesOnMalformedJSON(t *testing.T) {
	client := &fakeClient{responses: []string{"Sure! Here is my answer."}}
	p, _ := newTestPipeline(t, client)

	reply := p.Reply(context.Background(), "hello", nil)

	assert.True(t, reply.Degraded)
	assert.Equal(t, "Sure! Here is my answer.", reply.English)
	assert.NotEmpty(t, reply.Korean)
}

func TestReplyOfflineOnTransportFailure(t *testing.T) {
	first := &fakeClient{errs: []error{&provider.TransportError{Provider: "a", Status: 500}}}
	second := &fakeClient{}
	p, _ := newTestPipeline(t, first, second)

	reply := p.Reply(context.Background(), "hello", nil)

	assert.True(t, reply.Degraded)
	assert.Equal(t, offlineReply, reply)
	assert.Zero(t, second.calls, "chat failures never rotate providers")
	assert.Equal(t, "a", p.reg().Current().Config.ID)
}

func TestReplySerializesHistory(t *testing.T) {
	client := &fakeClient{responses: []string{`{"english":"ok","korean":"네"}`}}
	p, _ := newTestPipeline(t, client)

	history := []Turn{
		{Role: RoleUser, English: "Hi"},
		{Role: RoleAssistant, English: "Hello!", Korean: "안녕하세요!", Suggestions: []Suggestion{{English: "How are you?", Korean: "어떻게 지내세요?"}}},
	}
	p.Reply(context.Background(), "I am fine", history)

	require.Len(t, client.lastMessages, 3)
	assert.Equal(t, provider.Message{Role: "user", Content: "Hi"}, client.lastMessages[0])

	// Assistant turns are re-marshalled to the JSON reply contract.
	assert.Equal(t, "assistant", client.lastMessages[1].Role)
	var prior Reply
	require.NoError(t, json.Unmarshal([]byte(client.lastMessages[1].Content), &prior))
	assert.Equal(t, "Hello!", prior.English)
	require.Len(t, prior.Suggestions, 1)

	assert.Equal(t, provider.Message{Role: "user", Content: "I am fine"}, client.lastMessages[2])
}

func TestSwapRegistryResetsRotation(t *testing.T) {
	old := &fakeClient{errs: []error{&provider.TransportError{Provider: "a", Status: 500}}}
	p, _ := newTestPipeline(t, old)

	replacement := &fakeClient{responses: []string{goodVerseLine}}
	registry, err := provider.NewRegistryFromEntries([]provider.Entry{
		{Config: provider.Config{ID: "new"}, Client: replacement},
	})
	require.NoError(t, err)
	p.SwapRegistry(registry)

	v, err := p.DailyVerse(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "Psalm 55:22", v.Reference)
	assert.Zero(t, old.calls)
}
