package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StartJanitor prunes sessions idle longer than ttl every interval until ctx
// is cancelled. The returned channel is closed once the goroutine exits.
func StartJanitor(ctx context.Context, st Store, ttl, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				n, err := st.Prune(ctx, now.Add(-ttl))
				if err != nil {
					log.Warn().Err(err).Msg("prune sessions")
					continue
				}
				if n > 0 {
					log.Debug().Int("pruned", n).Msg("expired sessions removed")
				}
			}
		}
	}()
	return done
}
