package types

import "fmt"

// ViewMode toggles between the editor and the final document preview
type ViewMode string

const (
	// ViewEdit shows the section editor
	ViewEdit ViewMode = "EDIT"
	// ViewPreview shows the printable document
	ViewPreview ViewMode = "PREVIEW"
)

// ParseViewMode validates a view mode string
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewEdit, ViewPreview:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("unknown view mode: %q", s)
}

// PlaybackState is the narration state machine position
type PlaybackState string

// Playback states
const (
	PlaybackIdle     PlaybackState = "idle"
	PlaybackSpeaking PlaybackState = "speaking"
	PlaybackPaused   PlaybackState = "paused"
)
