package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage chat sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := a.orchestrator.LoadSessions(cmd.Context()); err != nil {
			return err
		}

		sessions := a.chat.Sessions().Get()
		if len(sessions) == 0 {
			fmt.Println("No sessions")
			return nil
		}
		for _, s := range sessions {
			fmt.Printf("%s  %s  (updated %s)\n", s.ID, s.Title, s.UpdatedAt)
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a session's message history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := a.orchestrator.OpenSession(cmd.Context(), args[0]); err != nil {
			return err
		}

		for _, m := range a.chat.Messages().Get() {
			role := strings.ToUpper(string(m.Role))
			fmt.Printf("[%s] %s\n", role, m.Content)
			if m.AgentUsed != "" {
				fmt.Printf("       agent: %s\n", m.AgentUsed)
			}
		}
		return nil
	},
}

var sessionsNewCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := ""
		if len(args) == 1 {
			title = args[0]
		}

		s, err := a.orchestrator.CreateSession(cmd.Context(), title)
		if err != nil {
			return err
		}
		fmt.Printf("Created session %s (%s)\n", s.ID, s.Title)
		return nil
	},
}

var sessionsRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Rename a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return a.orchestrator.RenameSession(cmd.Context(), args[0], args[1])
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return a.orchestrator.DeleteSession(cmd.Context(), args[0])
	},
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the backend's agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		agents, err := a.orchestrator.ListAgents(cmd.Context())
		if err != nil {
			return err
		}
		for _, agent := range agents {
			fmt.Printf("%-14s %s\n", agent.Name, agent.Description)
		}
		return nil
	},
}

func init() {
	sessionsCmd.AddCommand(
		sessionsListCmd,
		sessionsShowCmd,
		sessionsNewCmd,
		sessionsRenameCmd,
		sessionsDeleteCmd,
	)
}
