package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/pkg/core"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single note",
	Args:  cobra.ExactArgs(1),
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
		defer store.Close(ctx)

		note, ok := store.Get(id)
		if !ok {
			return fmt.Errorf("%w: %d", core.ErrNotFound, id)
		}
		printNote(cmd.OutOrStdout(), note)
		return nil
	},
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", arg)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
