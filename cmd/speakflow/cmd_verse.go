package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"speakflow/internal/content"
	"speakflow/internal/tutor"
)

var verseCachedOnly bool

var verseCmd = &cobra.Command{
	Use:   "verse",
	Short: "Fetch the daily verse",
	Long: `Fetches a fresh daily verse through the provider pipeline.

When every provider fails, falls back to the offline verse pool and marks
the output accordingly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if verseCachedOnly {
			v, ok, err := a.cache.Last()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no cached verse yet")
			}
			printVerse(v, "")
			return nil
		}

		v, err := a.pipeline.DailyVerse(context.Background(), a.cfg.Pipeline.RetryBudget)
		if err != nil {
			if !errors.Is(err, tutor.ErrVerseUnavailable) {
				return err
			}
			logger.Warn("all providers exhausted, using offline pool", zap.Error(err))
			history, _ := a.cache.History()
			fallback := content.RandomVerse(history)
			if err := a.cache.SaveLast(fallback); err != nil {
				logger.Warn("failed to cache fallback verse", zap.Error(err))
			}
			printVerse(fallback, "offline / fallback")
			return nil
		}
		printVerse(v, "")
		return nil
	},
}

func printVerse(v tutor.DailyVerse, badge string) {
	if badge != "" {
		fmt.Printf("[%s]\n", badge)
	}
	fmt.Printf("\"%s\"\n", v.Verse)
	fmt.Printf("- %s\n\n", v.Reference)
	fmt.Println(v.Korean)
	if v.Reflection != "" {
		fmt.Printf("\n%s\n", v.Reflection)
	}
}

func init() {
	verseCmd.Flags().BoolVar(&verseCachedOnly, "cached", false, "show the last cached verse without calling providers")
}
