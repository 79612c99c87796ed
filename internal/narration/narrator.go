package narration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/eduplan/internal/types"
	"go.uber.org/zap"
)

const (
	// Locale is the only spoken language
	Locale = "es-ES"
	// Rate is normal speaking speed
	Rate = 1.0
)

// ErrEmptyScript is returned when asked to speak nothing
var ErrEmptyScript = errors.New("nothing to narrate")

// Utterance is one script handed to a synthesizer
type Utterance struct {
	ID     string
	Text   string
	Locale string
	Rate   float64
}

// Synthesizer turns an utterance into speech
type Synthesizer interface {
	Speak(u Utterance) (Playback, error)
}

// Playback controls one utterance being spoken
type Playback interface {
	Pause() error
	Resume() error
	Cancel() error
	// Done is closed when the utterance ends, naturally or by Cancel
	Done() <-chan struct{}
}

// Status is a snapshot of the narrator
type Status struct {
	State       types.PlaybackState `json:"state"`
	UtteranceID string              `json:"utterance_id,omitempty"`
}

// Narrator speaks at most one utterance at a time
type Narrator struct {
	synth  Synthesizer
	logger *zap.Logger

	mu      sync.Mutex
	state   types.PlaybackState
	current string
	active  Playback
	watches sync.WaitGroup
}

// NewNarrator creates an idle narrator
func NewNarrator(synth Synthesizer, logger *zap.Logger) *Narrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Narrator{synth: synth, logger: logger, state: types.PlaybackIdle}
}

// Start cancels whatever is playing and speaks script. It returns the new utterance id.
func (n *Narrator) Start(script string) (string, error) {
	if strings.TrimSpace(script) == "" {
		return "", ErrEmptyScript
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopLocked()

	u := Utterance{ID: uuid.NewString(), Text: script, Locale: Locale, Rate: Rate}
	playback, err := n.synth.Speak(u)
	if err != nil {
		return "", fmt.Errorf("failed to start narration: %w", err)
	}

	n.current = u.ID
	n.active = playback
	n.state = types.PlaybackSpeaking
	n.watches.Add(1)
	go n.watch(u.ID, playback)

	n.logger.Debug("narration started", zap.String("utterance", u.ID), zap.Int("chars", len(script)))
	return u.ID, nil
}

// watch returns the narrator to idle when the utterance ends on its own.
// The end of a superseded utterance is ignored.
func (n *Narrator) watch(id string, playback Playback) {
	defer n.watches.Done()
	<-playback.Done()

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != id {
		return
	}
	n.current = ""
	n.active = nil
	n.state = types.PlaybackIdle
	n.logger.Debug("narration finished", zap.String("utterance", id))
}

// Toggle pauses a speaking narrator or resumes a paused one. Idle stays idle.
func (n *Narrator) Toggle() (types.PlaybackState, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch n.state {
	case types.PlaybackSpeaking:
		if err := n.active.Pause(); err != nil {
			return n.state, fmt.Errorf("failed to pause narration: %w", err)
		}
		n.state = types.PlaybackPaused
	case types.PlaybackPaused:
		if err := n.active.Resume(); err != nil {
			return n.state, fmt.Errorf("failed to resume narration: %w", err)
		}
		n.state = types.PlaybackSpeaking
	}
	return n.state, nil
}

// Stop cancels the current utterance, if any
func (n *Narrator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
}

func (n *Narrator) stopLocked() {
	if n.active != nil {
		if err := n.active.Cancel(); err != nil {
			n.logger.Warn("failed to cancel narration", zap.String("utterance", n.current), zap.Error(err))
		}
	}
	n.current = ""
	n.active = nil
	n.state = types.PlaybackIdle
}

// State returns the playback state
func (n *Narrator) State() types.PlaybackState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Status returns the playback state and the active utterance id
func (n *Narrator) Status() Status {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Status{State: n.state, UtteranceID: n.current}
}

// Wait blocks until the current utterance ends or ctx is done. It returns at once when idle.
func (n *Narrator) Wait(ctx context.Context) error {
	n.mu.Lock()
	active := n.active
	n.mu.Unlock()
	if active == nil {
		return nil
	}

	select {
	case <-active.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops playback and waits for every utterance watcher to exit
func (n *Narrator) Close() {
	n.Stop()
	n.watches.Wait()
}
