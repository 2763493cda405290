package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/aretw0/notepad/pkg/core"
)

var (
	idColor    = color.New(color.FgCyan)
	titleColor = color.New(color.Bold)
	okColor    = color.New(color.FgGreen)
)

func printNote(w io.Writer, n core.Note) {
	fmt.Fprintf(w, "%s %s\n", idColor.Sprintf("[%d]", n.ID), titleColor.Sprint(n.Title))
	if n.Description != "" {
		fmt.Fprintf(w, "    %s\n", n.Description)
	}
}

func printNotes(w io.Writer, notes core.Collection) {
	if len(notes) == 0 {
		fmt.Fprintln(w, color.New(color.FgYellow).Sprint("(no notes)"))
		return
	}
	for _, n := range notes {
		printNote(w, n)
	}
}
