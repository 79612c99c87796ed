package planner

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/jonathan/eduplan/internal/advisor"
	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/llm"
	"github.com/jonathan/eduplan/internal/storage"
	"github.com/jonathan/eduplan/internal/types"
)

// MockAdvisor is a function-field implementation of Advisor
type MockAdvisor struct {
	ExplainSectionFunc func(ctx context.Context, title string, m catalog.Methodology, idea string) string
	RefineIdeaFunc     func(ctx context.Context, current string) string
	FillFieldFunc      func(ctx context.Context, idea, label, description string) (string, bool)
	FillPlanFunc       func(ctx context.Context, idea string, m catalog.Methodology, sections []catalog.SectionRef) (*advisor.PlanDraft, bool)
}

func (m *MockAdvisor) ExplainSection(ctx context.Context, title string, methodology catalog.Methodology, idea string) string {
	if m.ExplainSectionFunc != nil {
		return m.ExplainSectionFunc(ctx, title, methodology, idea)
	}
	return "explicación: " + title
}

func (m *MockAdvisor) RefineIdea(ctx context.Context, current string) string {
	if m.RefineIdeaFunc != nil {
		return m.RefineIdeaFunc(ctx, current)
	}
	return "idea refinada"
}

func (m *MockAdvisor) FillField(ctx context.Context, idea, label, description string) (string, bool) {
	if m.FillFieldFunc != nil {
		return m.FillFieldFunc(ctx, idea, label, description)
	}
	return "borrador " + label, true
}

func (m *MockAdvisor) FillPlan(ctx context.Context, idea string, methodology catalog.Methodology, sections []catalog.SectionRef) (*advisor.PlanDraft, bool) {
	if m.FillPlanFunc != nil {
		return m.FillPlanFunc(ctx, idea, methodology, sections)
	}
	return nil, false
}

// MockLLMClient is a function-field implementation of llm.Client
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GetModel(llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

type countingNarrator struct {
	stops atomic.Int32
	state types.PlaybackState
}

func (n *countingNarrator) Stop() {
	n.stops.Add(1)
}

func (n *countingNarrator) State() types.PlaybackState {
	if n.state == "" {
		return types.PlaybackIdle
	}
	return n.state
}

type fixture struct {
	controller *Controller
	backend    *storage.MemoryBackend
	store      *storage.Store
	narrator   *countingNarrator
}

func newFixture(t *testing.T, adv Advisor) *fixture {
	t.Helper()
	backend := storage.NewMemoryBackend()
	store := storage.New(backend, nil)
	narrator := &countingNarrator{}
	c := New(context.Background(), store, adv, narrator, nil)
	t.Cleanup(c.Close)
	return &fixture{controller: c, backend: backend, store: store, narrator: narrator}
}

// reload reads back what the controller persisted
func (f *fixture) reload() types.Snapshot {
	return f.store.Load(context.Background())
}
