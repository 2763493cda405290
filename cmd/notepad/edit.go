package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/pkg/session"
)

var (
	editTitle       string
	editDescription string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the title and/or description of a note",
	Long: `Opens the note in an edit session, applies the given fields on top of its
current values and submits. Fields that are not given keep their value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		titleSet := cmd.Flags().Changed("title")
		descriptionSet := cmd.Flags().Changed("description")
		if !titleSet && !descriptionSet {
			return fmt.Errorf("nothing to change: pass --title and/or --description")
		}

		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		s := session.New(store, nil)
		if err := s.OpenEdit(id); err != nil {
			_ = closeStore(ctx, store)
			return err
		}

		form := s.Form()
		if titleSet {
			form.Title = editTitle
		}
		if descriptionSet {
			form.Description = editDescription
		}
		res, err := s.Submit(ctx, form)
		if err != nil {
			_ = closeStore(ctx, store)
			return err
		}

		if err := closeStore(ctx, store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s ", okColor.Sprint("updated"))
		printNote(cmd.OutOrStdout(), res.Note)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description")
}
