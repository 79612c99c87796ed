package planner

import (
	"context"
	"fmt"

	"github.com/jonathan/eduplan/internal/catalog"
	"github.com/jonathan/eduplan/internal/types"
	"go.uber.org/zap"
)

// SetMethodology switches the active outline. Content is kept; narration stops. A real change
// also clears the selection and discards every request in flight for the previous outline.
func (c *Controller) SetMethodology(m catalog.Methodology) error {
	if !m.Valid() {
		return fmt.Errorf("unknown methodology: %q", m)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.narrator.Stop()
	if m == c.methodology {
		return nil
	}

	c.methodology = m
	c.resetMethodScopeLocked()
	c.clearSelectionLocked()
	c.logger.Debug("methodology changed", zap.String("methodology", string(m)))
	return nil
}

// SelectSection focuses a section of the active outline, switches to the Edit view, stops
// narration and fetches a teaching explanation for it. The explanation is kept only if the
// section is still selected when it arrives; otherwise ErrStale is returned.
func (c *Controller) SelectSection(ctx context.Context, id string) (string, error) {
	c.mu.Lock()
	section, ok := catalog.Find(c.methodology, id)
	if !ok {
		c.mu.Unlock()
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}

	c.resetSelectScopeLocked()
	c.selected = id
	c.viewMode = types.ViewEdit
	c.narrator.Stop()
	c.explanation = ""
	c.loadingExplanation = true

	scope := c.selectScope
	methodology := c.methodology
	idea := c.idea
	c.mu.Unlock()

	reqCtx, done := scoped(ctx, scope)
	defer done()
	text := c.advisor.ExplainSection(reqCtx, section.Title, methodology, idea)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := settle(ctx, scope); err != nil {
		if err != ErrStale {
			c.loadingExplanation = false
		}
		return "", err
	}
	c.explanation = text
	c.loadingExplanation = false
	return text, nil
}

// ClearSelection removes the focus and discards a pending explanation
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetSelectScopeLocked()
	c.clearSelectionLocked()
}

func (c *Controller) clearSelectionLocked() {
	c.selected = ""
	c.explanation = ""
	c.loadingExplanation = false
}

// SetViewMode switches between editor and document preview. Leaving the preview stops narration.
func (c *Controller) SetViewMode(mode types.ViewMode) error {
	if _, err := types.ParseViewMode(string(mode)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setViewModeLocked(mode)
	return nil
}

// ToggleViewMode flips between Edit and Preview and returns the new mode
func (c *Controller) ToggleViewMode() types.ViewMode {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := types.ViewPreview
	if c.viewMode == types.ViewPreview {
		next = types.ViewEdit
	}
	c.setViewModeLocked(next)
	return next
}

func (c *Controller) setViewModeLocked(mode types.ViewMode) {
	if c.viewMode == types.ViewPreview && mode != types.ViewPreview {
		c.narrator.Stop()
	}
	c.viewMode = mode
}
