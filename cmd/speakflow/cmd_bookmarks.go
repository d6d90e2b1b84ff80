package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"speakflow/internal/store"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List starred sentences",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		bookmarks, err := store.NewBookmarkStore(a.backend).List()
		if err != nil {
			return err
		}
		if len(bookmarks) == 0 {
			fmt.Println("No bookmarks yet. Press ctrl+b in chat to star a sentence.")
			return nil
		}
		for _, b := range bookmarks {
			fmt.Printf("%d  %s\n", b.ID, b.English)
			if b.Korean != "" {
				fmt.Printf("    %s\n", b.Korean)
			}
		}
		return nil
	},
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a bookmark by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid bookmark id: %s", args[0])
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		return store.NewBookmarkStore(a.backend).Remove(id)
	},
}

func init() {
	bookmarksCmd.AddCommand(bookmarksRemoveCmd)
}
