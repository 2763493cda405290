// Package notepad is the composition root of the notepad note store.
//
// It connects the core (the in-memory note collection, search and the edit
// session) with a persistence backend chosen by options or a notepad.yaml file.
//
// The store owns the authoritative collection. Every mutation is applied in
// memory first and then saved asynchronously as one JSON blob under a single
// key; a failed save is reported but never rolls the mutation back.
//
// Backends:
//
//   - memory: in-process, for tests.
//   - fs (default): one JSON file per key under .notepad/.
//   - sqlite: a kv table in a pure-Go SQLite database.
//   - s3: one object per key in an S3-compatible bucket.
//
// Usage:
//
//	store, err := notepad.Open(ctx, notepad.WithBackend("sqlite"), notepad.WithPath("notes.db"))
//	if err != nil {
//		return err
//	}
//	defer store.Close(ctx)
//
//	res, err := store.Create(ctx, "Milk", "buy 2 liters")
//	visible := notepad.Filter(store.Notes(), "milk")
package notepad
