package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// fillConcurrency bounds FillEmptyFields
const fillConcurrency = 4

// RefineIdea asks the advisor for a better idea and stores it. The advisor never fails, so the
// idea is always replaced unless the caller gives up first.
func (c *Controller) RefineIdea(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.refiningIdea {
		c.mu.Unlock()
		return "", ErrIdeaBusy
	}
	c.refiningIdea = true
	current := c.idea
	c.mu.Unlock()

	idea := c.advisor.RefineIdea(ctx, current)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.refiningIdea = false
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.idea = idea
	c.persistLocked()
	return idea, nil
}

// FillField drafts one profile field. The request belongs to the current selection: if the
// selection or methodology changes before it completes, the result is dropped with ErrStale.
func (c *Controller) FillField(ctx context.Context, field types.ProfileField) (string, error) {
	spec, ok := types.LookupField(string(field))
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	c.mu.Lock()
	if strings.TrimSpace(c.idea) == "" {
		c.mu.Unlock()
		return "", ErrIdeaRequired
	}
	if c.loadingFields[field] {
		c.mu.Unlock()
		return "", ErrFieldBusy
	}
	c.loadingFields[field] = true
	idea := c.idea
	scope := c.selectScope
	c.mu.Unlock()

	reqCtx, done := scoped(ctx, scope)
	defer done()
	text, found := c.advisor.FillField(reqCtx, idea, spec.HintLabel, spec.HintDescription)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.loadingFields, field)

	if err := settle(ctx, scope); err != nil {
		return "", err
	}
	if !found {
		return "", ErrNoResult
	}
	if err := c.profile.Set(field, text); err != nil {
		return "", err
	}
	c.persistLocked()
	return text, nil
}

// FillPlan drafts every section of the active outline and merges the draft into the plan.
// The request belongs to the current methodology; a switch drops the result with ErrStale.
func (c *Controller) FillPlan(ctx context.Context) error {
	c.mu.Lock()
	if strings.TrimSpace(c.idea) == "" {
		c.mu.Unlock()
		return ErrIdeaRequired
	}
	if c.loadingPlan {
		c.mu.Unlock()
		return ErrPlanBusy
	}
	c.loadingPlan = true
	idea := c.idea
	methodology := c.methodology
	scope := c.methodScope
	c.mu.Unlock()

	reqCtx, done := scoped(ctx, scope)
	defer done()
	draft, found := c.advisor.FillPlan(reqCtx, idea, methodology, catalog.Refs(methodology))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadingPlan = false

	if err := settle(ctx, scope); err != nil {
		return err
	}
	if !found || draft == nil {
		return ErrNoResult
	}

	c.mergeDraftLocked(draft, methodology, idea)
	c.persistLocked()
	c.logger.Info("plan drafted",
		zap.String("methodology", string(methodology)),
		zap.Int("sections", len(draft.Sections)),
		zap.Bool("profile", draft.Profile != nil))
	return nil
}

// FieldResult reports the outcome of one field drafted by FillEmptyFieldsNotify
type FieldResult struct {
	Field types.ProfileField `json:"field"`
	Value string             `json:"value,omitempty"`
	Err   error              `json:"-"`
}

// FillEmptyFields drafts every empty profile field that is not already being drafted,
// concurrently. It returns the fields that were filled, in profile order. Fields the advisor
// could not draft are skipped; a stale or cancelled request stops the rest.
func (c *Controller) FillEmptyFields(ctx context.Context) ([]types.ProfileField, error) {
	return c.FillEmptyFieldsNotify(ctx, nil)
}

// FillEmptyFieldsNotify is FillEmptyFields with a callback invoked as each field settles.
// notify may be called from several goroutines at once.
func (c *Controller) FillEmptyFieldsNotify(ctx context.Context, notify func(FieldResult)) ([]types.ProfileField, error) {
	c.mu.Lock()
	if strings.TrimSpace(c.idea) == "" {
		c.mu.Unlock()
		return nil, ErrIdeaRequired
	}
	var pending []types.ProfileField
	for _, spec := range types.AllFields() {
		if c.profile.IsEmpty(spec.Field) && !c.loadingFields[spec.Field] {
			pending = append(pending, spec.Field)
		}
	}
	c.mu.Unlock()

	filled := make([]bool, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fillConcurrency)
	for i, field := range pending {
		g.Go(func() error {
			value, err := c.FillField(gctx, field)
			if notify != nil {
				notify(FieldResult{Field: field, Value: value, Err: err})
			}
			switch {
			case err == nil:
				filled[i] = true
				return nil
			case errors.Is(err, ErrNoResult), errors.Is(err, ErrFieldBusy):
				return nil
			default:
				return err
			}
		})
	}
	err := g.Wait()

	var out []types.ProfileField
	for i, field := range pending {
		if filled[i] {
			out = append(out, field)
		}
	}
	return out, err
}
