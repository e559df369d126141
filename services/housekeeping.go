package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const staleTokenAge = 180 * 24 * time.Hour

// StartHousekeeping runs the background sweeps: every minute expired rooms
// are cancelled, and once a day push tokens unseen for six months are
// dropped. The returned scheduler is already started.
func StartHousekeeping(duels *DuelService, push *PushService) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	sched.Start()

	// Every minute: cancel rooms past their expiry
	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			n, err := duels.ExpireStale(ctx)
			if err != nil {
				log.Printf("[housekeeping] room expiry sweep failed: %v", err)
				return
			}
			if n > 0 {
				log.Printf("[housekeeping] expired %d duel rooms", n)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	// Once a day: drop push tokens not seen for six months
	_, err = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			n, err := push.PruneStaleTokens(ctx, time.Now().Add(-staleTokenAge))
			if err != nil {
				log.Printf("[housekeeping] token prune failed: %v", err)
				return
			}
			if n > 0 {
				log.Printf("[housekeeping] pruned %d stale push tokens", n)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	return sched, nil
}
