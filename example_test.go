package notepad_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/pkg/session"
)

// Example_basic creates, searches and reloads notes on the filesystem backend.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "notepad-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	store, err := notepad.Open(ctx, notepad.WithPath(tmpDir))
	if err != nil {
		log.Fatal(err)
	}

	_, _ = store.Create(ctx, "Milk", "buy")
	_, _ = store.Create(ctx, "Eggs", "dozen")
	if err := store.Close(ctx); err != nil {
		log.Fatal(err)
	}

	reopened, err := notepad.Open(ctx, notepad.WithPath(tmpDir))
	if err != nil {
		log.Fatal(err)
	}
	for _, n := range notepad.Filter(reopened.Notes(), "EGG") {
		fmt.Printf("%d %s: %s\n", n.ID, n.Title, n.Description)
	}
	// Output:
	// 2 Eggs: dozen
}

// ExampleNewSession walks the edit session through an edit.
func ExampleNewSession() {
	ctx := context.Background()
	store, err := notepad.Open(ctx, notepad.WithBackend(notepad.BackendMemory))
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close(ctx)

	res, _ := store.Create(ctx, "Milk", "buy")

	s := notepad.NewSession(store, nil)
	_ = s.OpenEdit(res.Note.ID)
	fmt.Println(s.State(), s.Form().Description)

	_, _ = s.Submit(ctx, session.Form{Title: "Milk", Description: "buy 2 liters"})
	note, _ := store.Get(res.Note.ID)
	fmt.Println(s.State(), note.Description)
	// Output:
	// editing(1) buy
	// idle buy 2 liters
}
