package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		res, err := store.Delete(ctx, id)
		if err != nil {
			_ = closeStore(ctx, store)
			return err
		}

		if err := closeStore(ctx, store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d (%s)\n", okColor.Sprint("deleted"), res.Note.ID, res.Note.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
