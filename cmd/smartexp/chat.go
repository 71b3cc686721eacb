package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/steezy2401/smartexp/internal/bot"
	"github.com/steezy2401/smartexp/internal/chat"
	"github.com/steezy2401/smartexp/internal/templates"
)

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Run the assistant as an interactive console conversation.

Type messages as you would in a chat; keyboard buttons are selected
by typing their label.`,
		RunE: runChat,
	}

	cmd.Flags().Int64("user-id", 1, "User identifier for this conversation")
	_ = viper.BindPFlag("chat.user-id", cmd.Flags().Lookup("user-id"))

	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	sessions, err := initSessions()
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	catalog, err := templates.Load()
	if err != nil {
		return fmt.Errorf("failed to load message catalog: %w", err)
	}

	userID := viper.GetInt64("chat.user-id")
	router := bot.New(sessions, store, store, catalog)
	console := chat.NewConsole(router, os.Stdin, os.Stdout,
		fmt.Sprintf("console-%d", userID), userID)

	return console.Run(ctx)
}
