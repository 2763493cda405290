package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/pkg/core"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showFiltered(cmd, "")
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "List notes whose title or description contains query (case-insensitive)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showFiltered(cmd, args[0])
	},
}

func showFiltered(cmd *cobra.Command, query string) error {
	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	view := core.NewView(store)
	view.SetQuery(query)
	notes := view.Visible()

	if listJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(notes)
	}
	printNotes(cmd.OutOrStdout(), notes)
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd, searchCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	searchCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
