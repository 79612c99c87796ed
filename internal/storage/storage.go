// Package storage persists the plan draft as three named string slots.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/eduplan/internal/types"
)

// Slot keys for the persisted draft
const (
	SlotIdea     = "eduplan_idea"
	SlotContents = "eduplan_contents"
	SlotProfile  = "eduplan_company_details"
)

// SlotKeys lists every slot in a stable order
var SlotKeys = []string{SlotIdea, SlotContents, SlotProfile}

// Backend reads and writes raw slot values.
// WriteSlots must apply all values or none.
type Backend interface {
	ReadSlots(ctx context.Context, keys []string) (map[string]string, error)
	WriteSlots(ctx context.Context, slots map[string]string) error
	Close() error
}

// CorruptSlotError reports a slot whose stored value could not be decoded
type CorruptSlotError struct {
	Slot  string
	Cause error
}

func (e *CorruptSlotError) Error() string {
	return fmt.Sprintf("corrupt slot %s: %v", e.Slot, e.Cause)
}

func (e *CorruptSlotError) Unwrap() error {
	return e.Cause
}

// Store encodes snapshots into slots on top of a Backend
type Store struct {
	backend Backend
	logger  *zap.Logger
}

// New creates a Store over the given backend
func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger}
}

// Load reads the persisted draft. It never fails: an unreadable backend yields the
// default snapshot, and each absent or malformed slot falls back to its default.
func (s *Store) Load(ctx context.Context) types.Snapshot {
	snap := types.DefaultSnapshot()

	slots, err := s.backend.ReadSlots(ctx, SlotKeys)
	if err != nil {
		s.logger.Warn("failed to read stored draft, using defaults", zap.Error(err))
		return snap
	}

	decoded, errs := Decode(slots)
	for _, e := range errs {
		s.logger.Warn("ignoring stored slot", zap.Error(e))
	}
	return decoded
}

// Save writes the full snapshot
func (s *Store) Save(ctx context.Context, snap types.Snapshot) error {
	slots, err := Encode(snap)
	if err != nil {
		return err
	}
	if err := s.backend.WriteSlots(ctx, slots); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	return nil
}

// Close releases the backend
func (s *Store) Close() error {
	return s.backend.Close()
}

// Encode turns a snapshot into slot values
func Encode(snap types.Snapshot) (map[string]string, error) {
	contents := snap.Contents
	if contents == nil {
		contents = types.SectionContent{}
	}
	contentsJSON, err := json.Marshal(contents)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal section contents: %w", err)
	}
	profileJSON, err := json.Marshal(snap.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal company profile: %w", err)
	}
	return map[string]string{
		SlotIdea:     snap.Idea,
		SlotContents: string(contentsJSON),
		SlotProfile:  string(profileJSON),
	}, nil
}

// Decode rebuilds a snapshot from slot values. Missing slots keep their defaults;
// malformed slots keep their defaults and are reported in the returned errors.
// An empty idea slot counts as missing.
func Decode(slots map[string]string) (types.Snapshot, []error) {
	snap := types.DefaultSnapshot()
	var errs []error

	if idea := slots[SlotIdea]; idea != "" {
		snap.Idea = idea
	}

	if raw, ok := slots[SlotContents]; ok && raw != "" {
		var contents types.SectionContent
		if err := json.Unmarshal([]byte(raw), &contents); err != nil {
			errs = append(errs, &CorruptSlotError{Slot: SlotContents, Cause: err})
		} else if contents != nil {
			snap.Contents = contents
		}
	}

	if raw, ok := slots[SlotProfile]; ok && raw != "" {
		var profile types.CompanyProfile
		if err := json.Unmarshal([]byte(raw), &profile); err != nil {
			errs = append(errs, &CorruptSlotError{Slot: SlotProfile, Cause: err})
		} else {
			snap.Profile = profile
		}
	}

	return snap, errs
}
