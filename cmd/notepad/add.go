package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/pkg/session"
)

var addDescription string

var addCmd = &cobra.Command{
	Use:   "add <title> [description...]",
	Short: "Create a note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		description := addDescription
		if description == "" && len(args) > 1 {
			description = strings.Join(args[1:], " ")
		}

		s := session.New(store, nil)
		if err := s.OpenCreate(); err != nil {
			return err
		}
		res, err := s.Submit(ctx, session.Form{Title: args[0], Description: description})
		if err != nil {
			_ = closeStore(ctx, store)
			return err
		}

		if err := closeStore(ctx, store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s ", okColor.Sprint("created"))
		printNote(cmd.OutOrStdout(), res.Note)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Note description")
}
