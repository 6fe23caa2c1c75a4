package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Rrens/assistant-cli/internal/assistant"
	"github.com/Rrens/assistant-cli/internal/client"
	"github.com/Rrens/assistant-cli/internal/config"
	"github.com/Rrens/assistant-cli/internal/kvstore"
	"github.com/Rrens/assistant-cli/internal/logger"
	"github.com/Rrens/assistant-cli/internal/store"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app holds the wired components shared by all commands.
type app struct {
	cfg          *config.Config
	log          zerolog.Logger
	kv           kvstore.Store
	auth         *store.AuthStore
	chat         *store.ChatStore
	machine      *assistant.Machine
	orchestrator *assistant.Orchestrator
	speaker      *assistant.Speaker
}

var a app

var rootCmd = &cobra.Command{
	Use:           "assistant",
	Short:         "Terminal client for the multi-agent voice assistant",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return a.init()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if a.kv != nil {
			a.kv.Close()
		}
	},
}

// init loads configuration, restores the stored identity and wires the
// stores, client and orchestrator together.
func (a *app) init() error {
	// Load .env if present; config falls back to defaults otherwise
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}
	a.log = log

	if dir := filepath.Dir(cfg.Storage.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	kv, err := kvstore.NewSQLite(cfg.Storage.Path)
	if err != nil {
		return err
	}
	a.kv = kv

	a.auth = store.NewAuthStore(kv)
	if a.auth.Init() {
		log.Debug().Msg("restored stored identity")
	}

	a.chat = store.NewChatStore()
	a.machine = assistant.NewMachine()

	apiClient := client.New(cfg.API, a.auth.Token, log)
	a.orchestrator = assistant.NewOrchestrator(apiClient, a.auth, a.chat, a.machine, cfg.Stages, log)
	a.speaker = assistant.NewSpeaker(apiClient, cfg.Playback.Player, a.machine, log)
	return nil
}

func main() {
	rootCmd.AddCommand(
		signupCmd,
		loginCmd,
		logoutCmd,
		whoamiCmd,
		askCmd,
		voiceCmd,
		speakCmd,
		sessionsCmd,
		agentsCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
