package assistant

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/Rrens/assistant-cli/internal/client"
	"github.com/rs/zerolog"
)

// PlaybackError wraps a speech synthesis or playback failure.
type PlaybackError struct {
	Err error
}

func (e *PlaybackError) Error() string {
	return "Failed to play audio: " + e.Err.Error()
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}

// Speaker fetches synthesized speech and plays it through a local player
// binary. Playback is fire-and-forget: a second concurrent call spawns an
// independent player, with no queuing or mixing policy.
type Speaker struct {
	client  *client.Client
	player  string
	machine *Machine
	logger  zerolog.Logger
}

// NewSpeaker creates a speaker that launches the given player binary.
func NewSpeaker(c *client.Client, player string, machine *Machine, logger zerolog.Logger) *Speaker {
	return &Speaker{
		client:  c,
		player:  player,
		machine: machine,
		logger:  logger,
	}
}

// Speak synthesizes text and starts playback immediately. Failures are
// recorded in the error store and returned; there is no retry.
func (s *Speaker) Speak(ctx context.Context, text string) error {
	audio, err := s.client.Synthesize(ctx, text)
	if err != nil {
		return s.fail(err)
	}

	f, err := os.CreateTemp("", "assistant-tts-*.mp3")
	if err != nil {
		return s.fail(fmt.Errorf("failed to stage audio: %w", err))
	}
	if _, err := f.Write(audio); err != nil {
		f.Close()
		os.Remove(f.Name())
		return s.fail(fmt.Errorf("failed to stage audio: %w", err))
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return s.fail(fmt.Errorf("failed to stage audio: %w", err))
	}

	cmd := exec.Command(s.player, f.Name())
	if err := cmd.Start(); err != nil {
		os.Remove(f.Name())
		return s.fail(fmt.Errorf("failed to start player %q: %w", s.player, err))
	}

	s.logger.Debug().Str("player", s.player).Str("file", f.Name()).Msg("playback started")

	go func() {
		cmd.Wait()
		os.Remove(f.Name())
	}()
	return nil
}

func (s *Speaker) fail(err error) error {
	perr := &PlaybackError{Err: err}
	s.machine.Error().Set(perr.Error())
	s.logger.Error().Err(err).Msg("playback failed")
	return perr
}
