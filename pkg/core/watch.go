package core

import (
	"context"

	"github.com/aretw0/lifecycle"
)

// Watch observes changes in the store until ctx is done, then closes the channel.
// Events are dropped for a watcher whose buffer is full.
func (s *Store) Watch(ctx context.Context) <-chan Event {
	ch := make(chan Event, s.config.EventBuffer)

	s.watchMu.Lock()
	s.watchers[ch] = struct{}{}
	s.watchMu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		s.watchMu.Lock()
		delete(s.watchers, ch)
		close(ch)
		s.watchMu.Unlock()
		return nil
	})

	return ch
}

func (s *Store) publish(e Event) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	for ch := range s.watchers {
		select {
		case ch <- e:
		default:
			s.logger.Debug("watcher buffer full, dropping event", "event", e.String())
		}
	}
}
