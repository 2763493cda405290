package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"
)

// SaveTask is the handle of one asynchronous save of the collection.
// The mutation that dispatched it has already been applied in memory; the task
// only reports whether the snapshot reached the backend.
type SaveTask struct {
	ID   string // unique, for log correlation
	Seq  uint64 // dispatch order within the store, starting at 1
	done chan struct{}
	once sync.Once
	err  error
}

func newSaveTask(seq uint64) *SaveTask {
	return &SaveTask{
		ID:   uuid.NewString(),
		Seq:  seq,
		done: make(chan struct{}),
	}
}

// Done is closed when the save has completed, successfully or not.
func (t *SaveTask) Done() <-chan struct{} {
	return t.done
}

// Err returns the save error once the task is done, nil before that.
func (t *SaveTask) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the save completes or ctx is done.
// Giving up on the wait does not cancel the save.
func (t *SaveTask) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *SaveTask) complete(err error) {
	t.once.Do(func() {
		t.err = err
		close(t.done)
	})
}

// dispatchSave starts saving snapshot in the background. Callers must hold s.mu.
//
// The save is detached from ctx cancellation and has no timeout: a hanging
// backend never blocks in-memory operations.
func (s *Store) dispatchSave(ctx context.Context, snapshot Collection) *SaveTask {
	s.seq++
	task := newSaveTask(s.seq)
	prev := s.lastSave
	s.lastSave = task
	s.inflight[task] = struct{}{}

	ordered := s.config.OrderedSaves
	runCtx := context.WithoutCancel(ctx)

	s.logger.Debug("save dispatched", "seq", task.Seq, "task", task.ID, "notes", len(snapshot))

	lifecycle.Go(runCtx, func(ctx context.Context) error {
		if ordered && prev != nil {
			<-prev.Done()
		}
		s.finishSave(task, s.gateway.Save(ctx, snapshot))
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		s.finishSave(task, fmt.Errorf("save panic: %w", err))
	}))

	return task
}

func (s *Store) finishSave(task *SaveTask, err error) {
	if err != nil && !IsPersistence(err) {
		err = &PersistenceError{Op: "save", Err: err}
	}

	s.mu.Lock()
	if _, ok := s.inflight[task]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.inflight, task)
	if err != nil {
		s.failedSaves++
		s.lastSaveErr = err
	} else {
		s.completedSaves++
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("save failed", "kind", "persistence", "seq", task.Seq, "task", task.ID, "error", err)
		s.publish(Event{Type: EventSaveFailed, ID: int64(task.Seq), Timestamp: now()})
	} else {
		s.logger.Debug("save completed", "seq", task.Seq, "task", task.ID)
		s.publish(Event{Type: EventSaved, ID: int64(task.Seq), Timestamp: now()})
	}

	if s.config.OnSave != nil {
		s.config.OnSave(task)
	}

	// Last, so that waiters observe everything above.
	task.complete(err)
}

// Flush waits for every save dispatched so far and returns the error of the
// most recent one. Older failures were superseded by newer snapshots.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	tasks := make([]*SaveTask, 0, len(s.inflight))
	for t := range s.inflight {
		tasks = append(tasks, t)
	}
	last := s.lastSave
	s.mu.RUnlock()

	for _, t := range tasks {
		select {
		case <-t.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if last == nil {
		return nil
	}
	return last.Wait(ctx)
}
