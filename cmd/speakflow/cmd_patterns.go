package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"speakflow/internal/content"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Print a random sentence pattern to drill",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := content.RandomPattern()
		fmt.Printf("%s  (%s)\n\n", p.Pattern, p.Meaning)
		for _, ex := range p.Examples {
			fmt.Printf("  %s\n  %s\n\n", ex.English, ex.Korean)
		}
		return nil
	},
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List role-play scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range content.Scenarios {
			fmt.Printf("%-10s %-16s [%s] %s\n", s.ID, s.Title, s.Difficulty, s.Mission)
		}
		fmt.Println("\nStart one with: speakflow chat --scenario <id>")
		return nil
	},
}
