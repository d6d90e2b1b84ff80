package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"speakflow/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage learner profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		p, err := a.profiles.Active()
		if err != nil {
			return err
		}
		printProfile(p)
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		active, err := a.profiles.Active()
		if err != nil {
			return err
		}
		profiles, err := a.profiles.List()
		if err != nil {
			return err
		}
		for _, p := range profiles {
			marker := " "
			if p.ID == active.ID {
				marker = "*"
			}
			fmt.Printf("%s %-20s lvl %-3d streak %-3d id=%s\n", marker, p.Name, p.Level, p.Stats.DaysStreak, p.ID)
		}
		return nil
	},
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a profile and make it active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		p, err := a.profiles.Create(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created profile %q (%s)\n", p.Name, p.ID)
		return nil
	},
}

var profileSwitchCmd = &cobra.Command{
	Use:   "switch <id>",
	Short: "Switch the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ok, err := a.profiles.SwitchActive(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no profile with id %s", args[0])
		}
		fmt.Println("Switched.")
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ok, err := a.profiles.Delete(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("cannot delete: profile not found or it is the last one")
		}
		fmt.Println("Deleted.")
		return nil
	},
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the active profile's progression",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		p, err := a.profiles.Reset()
		if err != nil {
			return err
		}
		fmt.Printf("Progress reset for %q.\n", p.Name)
		return nil
	},
}

func printProfile(p profile.Profile) {
	fmt.Printf("%s (level %d)\n", p.Name, p.Level)
	fmt.Printf("  XP:     %d / %d\n", p.XP, p.NextLevelXP)
	fmt.Printf("  Streak: %d day(s)\n", p.Stats.DaysStreak)
	fmt.Printf("  Today:  %d / %d speaking events\n", p.Daily.Count, p.Daily.Target)
	fmt.Printf("  Total:  %d speaking events\n", p.Stats.TotalSpeakingCount)
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileSwitchCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileResetCmd)
}
