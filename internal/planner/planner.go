// Package planner owns the state of the plan being authored: methodology, selection, view mode,
// the persisted draft (idea, section contents, company profile) and the in-flight advisor requests.
package planner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonathan/eduplan/internal/advisor"
	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/types"
	"go.uber.org/zap"
)

var (
	// ErrIdeaRequired is returned when a drafting request is made without a business idea
	ErrIdeaRequired = errors.New("define una idea primero")
	// ErrFieldBusy is returned when a field already has a fill in flight
	ErrFieldBusy = errors.New("field is already being drafted")
	// ErrPlanBusy is returned when a whole-plan draft is already in flight
	ErrPlanBusy = errors.New("plan is already being drafted")
	// ErrIdeaBusy is returned when an idea refinement is already in flight
	ErrIdeaBusy = errors.New("idea is already being refined")
	// ErrUnknownSection is returned for a section id outside the catalogs
	ErrUnknownSection = errors.New("unknown section")
	// ErrUnknownField is returned for a profile field key that does not exist
	ErrUnknownField = errors.New("unknown profile field")
	// ErrProfileSection is returned when writing Traditional section "2" as plain content
	ErrProfileSection = errors.New("section 2 of a traditional plan is edited through the company profile")
	// ErrStale is returned when the selection or methodology changed while a request was in flight;
	// its result was discarded.
	ErrStale = errors.New("result discarded: the plan moved on while it was being produced")
	// ErrNoResult is returned when the advisor produced nothing usable; state is unchanged
	ErrNoResult = errors.New("the advisor returned no usable result")
)

const saveTimeout = 5 * time.Second

// Store persists the draft snapshot
type Store interface {
	Load(ctx context.Context) types.Snapshot
	Save(ctx context.Context, snap types.Snapshot) error
}

// Advisor produces explanations and drafts
type Advisor interface {
	ExplainSection(ctx context.Context, title string, m catalog.Methodology, idea string) string
	RefineIdea(ctx context.Context, current string) string
	FillField(ctx context.Context, idea, label, description string) (string, bool)
	FillPlan(ctx context.Context, idea string, m catalog.Methodology, sections []catalog.SectionRef) (*advisor.PlanDraft, bool)
}

// Narrator is the playback the controller stops on navigation
type Narrator interface {
	Stop()
	State() types.PlaybackState
}

// Controller holds all plan state. It is safe for concurrent use; advisor calls run outside the lock.
type Controller struct {
	store    Store
	advisor  Advisor
	narrator Narrator
	logger   *zap.Logger

	mu          sync.Mutex
	methodology catalog.Methodology
	selected    string
	viewMode    types.ViewMode

	idea     string
	contents types.SectionContent
	profile  types.CompanyProfile

	loadingFields      map[types.ProfileField]bool
	loadingPlan        bool
	loadingExplanation bool
	refiningIdea       bool
	explanation        string

	// methodScope lives until the methodology changes; selectScope until the selection changes.
	// selectScope is derived from methodScope.
	methodScope  context.Context
	methodCancel context.CancelFunc
	selectScope  context.Context
	selectCancel context.CancelFunc
}

// New restores the persisted draft and returns a controller in its initial UI state:
// Traditional methodology, nothing selected, Edit view.
func New(ctx context.Context, store Store, adv Advisor, narrator Narrator, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if narrator == nil {
		narrator = silentNarrator{}
	}

	snap := store.Load(ctx)
	c := &Controller{
		store:         store,
		advisor:       adv,
		narrator:      narrator,
		logger:        logger,
		methodology:   catalog.Traditional,
		viewMode:      types.ViewEdit,
		idea:          snap.Idea,
		contents:      snap.Contents.Clone(),
		profile:       snap.Profile,
		loadingFields: make(map[types.ProfileField]bool),
	}
	c.resetMethodScopeLocked()
	return c
}

// Close cancels every in-flight request
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.methodCancel()
}

// Snapshot returns a copy of the persisted part of the state
func (c *Controller) Snapshot() types.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() types.Snapshot {
	return types.Snapshot{
		Idea:     c.idea,
		Contents: c.contents.Clone(),
		Profile:  c.profile,
	}
}

// persistLocked writes the full snapshot. Failures are logged and otherwise ignored.
func (c *Controller) persistLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := c.store.Save(ctx, c.snapshotLocked()); err != nil {
		c.logger.Warn("draft not saved", zap.Error(err))
	}
}

func (c *Controller) resetMethodScopeLocked() {
	if c.methodCancel != nil {
		c.methodCancel()
	}
	c.methodScope, c.methodCancel = context.WithCancel(context.Background())
	c.resetSelectScopeLocked()
}

func (c *Controller) resetSelectScopeLocked() {
	if c.selectCancel != nil {
		c.selectCancel()
	}
	c.selectScope, c.selectCancel = context.WithCancel(c.methodScope)
}

// scoped derives a request context from the caller's ctx that is also cancelled when scope ends
func scoped(ctx, scope context.Context) (context.Context, context.CancelFunc) {
	reqCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(scope, cancel)
	return reqCtx, func() {
		stop()
		cancel()
	}
}

// settle decides the fate of a finished request: ErrStale if its scope ended, the caller's
// error if the caller gave up, nil if the result may be applied.
func settle(ctx, scope context.Context) error {
	if scope.Err() != nil {
		return ErrStale
	}
	return ctx.Err()
}

type silentNarrator struct{}

func (silentNarrator) Stop() {}

func (silentNarrator) State() types.PlaybackState { return types.PlaybackIdle }
