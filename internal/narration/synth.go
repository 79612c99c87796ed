package narration

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"syscall"
)

// DefaultSpeechCommand is the text-to-speech binary used by ProcessSynthesizer
const DefaultSpeechCommand = "espeak-ng"

// baseWordsPerMinute is espeak-ng's normal speed, scaled by the utterance rate
const baseWordsPerMinute = 175

// ProcessSynthesizer speaks through an external espeak-compatible binary reading the text on stdin.
// Pause and resume stop and continue the process; cancel kills it.
type ProcessSynthesizer struct {
	Command string
}

// NewProcessSynthesizer returns a synthesizer for command, or DefaultSpeechCommand when empty
func NewProcessSynthesizer(command string) *ProcessSynthesizer {
	if command == "" {
		command = DefaultSpeechCommand
	}
	return &ProcessSynthesizer{Command: command}
}

// Available reports whether the command can be found
func (s *ProcessSynthesizer) Available() bool {
	_, err := exec.LookPath(s.Command)
	return err == nil
}

// Speak starts the speech process
func (s *ProcessSynthesizer) Speak(u Utterance) (Playback, error) {
	cmd := exec.Command(s.Command, speechArgs(u)...)
	cmd.Stdin = strings.NewReader(u.Text)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", s.Command, err)
	}

	p := &processPlayback{cmd: cmd, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

func speechArgs(u Utterance) []string {
	voice := strings.ToLower(u.Locale)
	if voice == "" {
		voice = strings.ToLower(Locale)
	}
	rate := u.Rate
	if rate <= 0 {
		rate = Rate
	}
	return []string{
		"-v", voice,
		"-s", strconv.Itoa(int(baseWordsPerMinute * rate)),
		"--stdin",
	}
}

type processPlayback struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func (p *processPlayback) Pause() error {
	return p.cmd.Process.Signal(syscall.SIGSTOP)
}

func (p *processPlayback) Resume() error {
	return p.cmd.Process.Signal(syscall.SIGCONT)
}

func (p *processPlayback) Cancel() error {
	select {
	case <-p.done:
		return nil
	default:
	}
	if err := p.cmd.Process.Kill(); err != nil {
		select {
		case <-p.done:
			return nil
		default:
			return err
		}
	}
	<-p.done
	return nil
}

func (p *processPlayback) Done() <-chan struct{} {
	return p.done
}

// NopSynthesizer accepts utterances without producing sound. Its utterances never finish on
// their own; they end only when cancelled.
type NopSynthesizer struct{}

// Speak returns a silent playback
func (NopSynthesizer) Speak(Utterance) (Playback, error) {
	return &silentPlayback{done: make(chan struct{})}, nil
}

type silentPlayback struct {
	once sync.Once
	done chan struct{}
}

func (p *silentPlayback) Pause() error  { return nil }
func (p *silentPlayback) Resume() error { return nil }

func (p *silentPlayback) Cancel() error {
	p.once.Do(func() { close(p.done) })
	return nil
}

func (p *silentPlayback) Done() <-chan struct{} {
	return p.done
}
