package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rrens/assistant-cli/internal/assistant"
	"github.com/spf13/cobra"
)

var askSessionID string

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask a text question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openRequestedSession(cmd, askSessionID); err != nil {
			return err
		}

		unsubscribe := watchStages()
		defer unsubscribe()

		resp, err := a.orchestrator.AskText(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(resp.Answer)
		return nil
	},
}

var voiceCmd = &cobra.Command{
	Use:   "voice <audio-file>",
	Short: "Ask a question from a recorded audio file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		audio, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read audio file: %w", err)
		}

		if err := openRequestedSession(cmd, askSessionID); err != nil {
			return err
		}

		unsubscribe := watchStages()
		defer unsubscribe()

		resp, err := a.orchestrator.AskVoice(cmd.Context(), audio, filepath.Ext(args[0]))
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("You said: %s\n", resp.Question)
		fmt.Println(resp.Answer)
		return nil
	},
}

var speakCmd = &cobra.Command{
	Use:   "speak <text...>",
	Short: "Synthesize text to speech and play it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return a.speaker.Speak(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	askCmd.Flags().StringVarP(&askSessionID, "session", "s", "", "continue an existing session")
	voiceCmd.Flags().StringVarP(&askSessionID, "session", "s", "", "continue an existing session")
}

// openRequestedSession makes the given session active before asking.
func openRequestedSession(cmd *cobra.Command, id string) error {
	if id == "" {
		return nil
	}
	return a.orchestrator.OpenSession(cmd.Context(), id)
}

// watchStages prints stage transitions as the machine moves through the
// pipeline. Only the latest value is delivered; fast transitions may
// overwrite each other for slow terminals, which is fine here.
func watchStages() func() {
	var last assistant.StageID
	return a.machine.Stage().Subscribe(func(s assistant.Stage) {
		if s.ID == last || s.ID == assistant.StageIdle {
			return
		}
		last = s.ID
		fmt.Printf("%s %s\n", s.Icon, s.Label)
	})
}
