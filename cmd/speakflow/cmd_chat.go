package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"speakflow/cmd/speakflow/ui"
	"speakflow/internal/config"
	"speakflow/internal/content"
	"speakflow/internal/provider"
	"speakflow/internal/store"
	"speakflow/internal/tutor"
)

var (
	chatScenarioID string
	chatOnce       string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive tutoring session",
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	var history []tutor.Turn
	title := "Free Talk"
	if chatScenarioID != "" {
		scenario, ok := content.ScenarioByID(chatScenarioID)
		if !ok {
			return fmt.Errorf("unknown scenario: %s", chatScenarioID)
		}
		title = fmt.Sprintf("%s — you are the %s", scenario.Title, scenario.UserRole)
		history = append(history, scenario.Initial)
	}

	// One-shot mode for scripting and quick checks.
	if chatOnce != "" {
		reply := a.pipeline.Reply(context.Background(), chatOnce, history)
		if _, err := a.profiles.RecordSpeakingEvent(1); err != nil {
			logger.Warn("failed to record speaking event", zap.Error(err))
		}
		fmt.Println(reply.English)
		fmt.Println(reply.Korean)
		if reply.Correction != "" {
			fmt.Println("Correction:", reply.Correction)
		}
		return nil
	}

	// Rebuild the provider registry when the config file changes.
	watchPath := configPath
	if watchPath == "" {
		watchPath = config.DefaultConfigPath()
	}
	watcher, err := config.Watch(watchPath, logger, func(cfg *config.Config) {
		registry, err := provider.NewRegistry(cfg.Providers, cfg.ProviderTimeout())
		if err != nil {
			logger.Warn("ignoring reloaded config", zap.Error(err))
			return
		}
		a.pipeline.SwapRegistry(registry)
	})
	if err != nil {
		logger.Warn("config watching unavailable", zap.Error(err))
	} else {
		defer watcher.Close()
	}

	active, err := a.profiles.Active()
	if err != nil {
		return err
	}

	model := ui.NewChat(ui.ChatDeps{
		Title:     title,
		Profile:   active,
		Profiles:  a.profiles,
		Pipeline:  a.pipeline,
		Bookmarks: store.NewBookmarkStore(a.backend),
		History:   history,
	})
	program := tea.NewProgram(model)
	_, err = program.Run()
	return err
}

func init() {
	chatCmd.Flags().StringVar(&chatScenarioID, "scenario", "", "start a role-play scenario by id")
	chatCmd.Flags().StringVar(&chatOnce, "once", "", "send a single utterance and exit")
}
