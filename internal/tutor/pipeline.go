package tutor

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"speakflow/internal/provider"
)

// Pipeline orchestrates tutor replies and verse generation against the
// provider registry.
type Pipeline struct {
	mu       sync.RWMutex
	registry *provider.Registry

	cache  *VerseCache
	logger *zap.Logger
	seed   func() int64

	verseGroup singleflight.Group
}

// NewPipeline creates a response pipeline. cache may be nil when verse
// caching is not wanted (tests).
func NewPipeline(registry *provider.Registry, cache *VerseCache, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		registry: registry,
		cache:    cache,
		logger:   logger,
		seed:     func() int64 { return time.Now().UnixMilli() },
	}
}

// SetSeed overrides the verse prompt seed source. Intended for tests.
func (p *Pipeline) SetSeed(seed func() int64) {
	p.seed = seed
}

// SwapRegistry replaces the provider registry. Used on config reload; the
// rotation cursor restarts at the first provider.
func (p *Pipeline) SwapRegistry(registry *provider.Registry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registry = registry
}

func (p *Pipeline) reg() *provider.Registry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry
}

// Reply sends one user utterance with its conversation history to the
// current provider and returns a structured tutor reply.
//
// Failure handling is deliberately local: a malformed JSON body degrades
// to an apologetic reply built from the raw text, and a transport or
// rate-limit failure returns a static offline reply. Neither engages
// provider rotation; keeping conversational latency low wins over retry
// coverage here, unlike the verse path.
func (p *Pipeline) Reply(ctx context.Context, userText string, history []Turn) Reply {
	entry := p.reg().Current()

	messages := make([]provider.Message, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, serializeTurn(turn))
	}
	messages = append(messages, provider.Message{Role: RoleUser, Content: userText})

	raw, err := entry.Client.Chat(ctx, chatSystemPrompt, messages)
	if err != nil {
		p.logger.Warn("tutor reply failed",
			zap.String("provider", entry.Config.ID),
			zap.Error(err))
		return offlineReply
	}

	var reply Reply
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &reply); err != nil || reply.English == "" {
		p.logger.Warn("tutor reply violated JSON contract",
			zap.String("provider", entry.Config.ID))
		return Reply{
			English:  strings.TrimSpace(raw),
			Korean:   parseFailureKorean,
			Degraded: true,
		}
	}
	return reply
}

// serializeTurn maps an internal turn to the provider role/content shape.
// Assistant turns are re-marshalled to the JSON reply contract so the
// model sees its own prior output in the format it must produce.
func serializeTurn(turn Turn) provider.Message {
	if turn.Role == RoleUser {
		return provider.Message{Role: RoleUser, Content: turn.English}
	}

	suggestions := turn.Suggestions
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	content, err := json.Marshal(Reply{
		English:     turn.English,
		Korean:      turn.Korean,
		Correction:  turn.Correction,
		Suggestions: suggestions,
	})
	if err != nil {
		return provider.Message{Role: RoleAssistant, Content: turn.English}
	}
	return provider.Message{Role: RoleAssistant, Content: string(content)}
}

// DailyVerse requests a validated verse, rotating providers on every
// failure up to retryBudget attempts. A budget of zero or less means twice
// the provider count. Exhausting the budget returns ErrVerseUnavailable.
// Concurrent callers share one in-flight request.
func (p *Pipeline) DailyVerse(ctx context.Context, retryBudget int) (DailyVerse, error) {
	if retryBudget <= 0 {
		retryBudget = p.reg().Len() * 2
	}

	v, err, _ := p.verseGroup.Do("daily-verse", func() (interface{}, error) {
		return p.fetchVerse(ctx, retryBudget)
	})
	if err != nil {
		return DailyVerse{}, err
	}
	return v.(DailyVerse), nil
}

func (p *Pipeline) fetchVerse(ctx context.Context, retryBudget int) (DailyVerse, error) {
	userPrompt := verseUserPrompt(p.seed())

	for attempt := 0; attempt < retryBudget; attempt++ {
		if err := ctx.Err(); err != nil {
			return DailyVerse{}, err
		}

		entry := p.reg().Current()
		raw, err := entry.Client.CompleteWithSystem(ctx, verseSystemPrompt, userPrompt)
		if err == nil {
			var verse DailyVerse
			verse, err = parseVerseLine(raw)
			if err == nil {
				p.saveVerse(verse)
				return verse, nil
			}
		}

		p.logger.Warn("verse attempt failed, rotating provider",
			zap.String("provider", entry.Config.ID),
			zap.Int("attempt", attempt+1),
			zap.Bool("rate_limited", provider.IsRateLimited(err)),
			zap.Error(err))
		p.reg().Advance()
	}

	p.logger.Warn("verse retry budget exhausted", zap.Int("budget", retryBudget))
	return DailyVerse{}, ErrVerseUnavailable
}

func (p *Pipeline) saveVerse(v DailyVerse) {
	if p.cache == nil {
		return
	}
	if err := p.cache.SaveLast(v); err != nil {
		p.logger.Warn("failed to cache verse", zap.Error(err))
	}
	if err := p.cache.AppendHistory(v); err != nil {
		p.logger.Warn("failed to record verse history", zap.Error(err))
	}
}
