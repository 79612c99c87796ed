// Package advisor asks the text model to explain, refine and draft business plan content.
// Every operation degrades instead of failing: explanations and ideas fall back to fixed
// Spanish texts, field and plan drafts report absence.
package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/llm"
	"github.com/jonathan/eduplan/internal/prompts"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	// ExplanationFallback is shown when no explanation could be produced
	ExplanationFallback = "Lo siento, no pude obtener una explicación en este momento."
	// IdeaFallback replaces the idea when refinement fails
	IdeaFallback = "Plataforma de micro-certificaciones con IA para el sector industrial."
	// ExampleIdea illustrates explanations when the draft has no idea yet
	ExampleIdea = "una cafetería orgánica"

	// ExplanationTTL bounds how long a successful explanation is reused
	ExplanationTTL = 30 * time.Minute
	cacheCleanup   = 10 * time.Minute

	// minRefineLength is the trimmed idea length above which an idea is elevated rather than replaced
	minRefineLength = 3
)

// Advisor wraps an llm.Client with the plan prompts and fallback policy
type Advisor struct {
	client       llm.Client
	explanations *cache.Cache
	logger       *zap.Logger
}

// New creates an advisor. A nil logger discards output.
func New(client llm.Client, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{
		client:       client,
		explanations: cache.New(ExplanationTTL, cacheCleanup),
		logger:       logger,
	}
}

// ExplainSection returns a short teaching explanation of a section, illustrated with the idea.
// It never fails: on any oracle problem the apology text is returned.
func (a *Advisor) ExplainSection(ctx context.Context, title string, m catalog.Methodology, idea string) string {
	if strings.TrimSpace(idea) == "" {
		idea = ExampleIdea
	}

	key := explanationKey(title, m, idea)
	if cached, ok := a.explanations.Get(key); ok {
		return cached.(string)
	}

	prompt, err := prompts.Render(prompts.Advisor, prompts.KeyExplainSection, map[string]string{
		"SectionTitle": title,
		"PlanType":     string(m),
		"BusinessIdea": idea,
	})
	if err != nil {
		a.logger.Error("explanation prompt unavailable", zap.Error(err))
		return ExplanationFallback
	}

	text, err := a.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		a.warn(&OracleError{Operation: "explain section", Cause: err}, zap.String("section", title))
		return ExplanationFallback
	}

	text = strings.TrimSpace(text)
	if text == "" {
		a.warn(&ParseError{Operation: "explain section", Message: "empty response"}, zap.String("section", title))
		return ExplanationFallback
	}

	a.explanations.SetDefault(key, text)
	return text
}

// RefineIdea elevates the current idea, or invents a new EdTech/SaaS idea when the current one
// is too short to work with. Quotes are stripped from the result. It never fails.
func (a *Advisor) RefineIdea(ctx context.Context, current string) string {
	var (
		prompt string
		err    error
	)
	if len([]rune(strings.TrimSpace(current))) > minRefineLength {
		prompt, err = prompts.Render(prompts.Advisor, prompts.KeyRefineIdea, map[string]string{
			"CurrentIdea": current,
		})
	} else {
		prompt, err = prompts.Render(prompts.Advisor, prompts.KeyGenerateIdea, nil)
	}
	if err != nil {
		a.logger.Error("idea prompt unavailable", zap.Error(err))
		return IdeaFallback
	}

	text, err := a.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		a.warn(&OracleError{Operation: "refine idea", Cause: err})
		return IdeaFallback
	}

	idea := strings.TrimSpace(stripQuotes(text))
	if idea == "" {
		a.warn(&ParseError{Operation: "refine idea", Message: "empty response"})
		return IdeaFallback
	}
	return idea
}

// FillField drafts the text of one profile field. The bool is false when nothing usable came back.
func (a *Advisor) FillField(ctx context.Context, idea, label, description string) (string, bool) {
	prompt, err := prompts.Render(prompts.Advisor, prompts.KeyFillField, map[string]string{
		"BusinessIdea":     idea,
		"FieldName":        label,
		"FieldDescription": description,
	})
	if err != nil {
		a.logger.Error("field prompt unavailable", zap.Error(err))
		return "", false
	}

	text, err := a.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		a.warn(&OracleError{Operation: "fill field", Cause: err}, zap.String("field", label))
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		a.warn(&ParseError{Operation: "fill field", Message: "empty response"}, zap.String("field", label))
		return "", false
	}
	return text, true
}

// ForgetExplanations drops every cached explanation
func (a *Advisor) ForgetExplanations() {
	a.explanations.Flush()
}

func (a *Advisor) warn(err error, fields ...zap.Field) {
	// Cancellation is the caller walking away, not an oracle fault.
	if errors.Is(err, context.Canceled) {
		a.logger.Debug("advisor request cancelled", append(fields, zap.Error(err))...)
		return
	}
	a.logger.Warn("advisor request degraded", append(fields, zap.Error(err))...)
}

func explanationKey(title string, m catalog.Methodology, idea string) string {
	return string(m) + "\x00" + title + "\x00" + idea
}

func stripQuotes(s string) string {
	return strings.NewReplacer(`"`, "", "'", "").Replace(s)
}
