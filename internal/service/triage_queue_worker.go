package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"locali/internal/domain"
	"locali/internal/port"
)

// TriageQueueConfig holds settings for the re-triage queue worker.
type TriageQueueConfig struct {
	PollInterval time.Duration
	Concurrency  int
	Timeout      time.Duration
}

// TriageQueueWorker polls for listings whose content changed since their last
// verdict and re-runs triage on them.
type TriageQueueWorker struct {
	listingRepo port.ListingRepository
	triageSvc   TriageService
	cfg         TriageQueueConfig
	wg          sync.WaitGroup

	mu          sync.Mutex
	pausedUntil time.Time
}

// NewTriageQueueWorker creates a new TriageQueueWorker.
func NewTriageQueueWorker(listingRepo port.ListingRepository, triageSvc TriageService, cfg TriageQueueConfig) *TriageQueueWorker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	return &TriageQueueWorker{
		listingRepo: listingRepo,
		triageSvc:   triageSvc,
		cfg:         cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight triage goroutines have finished.
func (w *TriageQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)
	// A claim left by a crashed worker becomes reclaimable after two attempts' worth of time.
	staleAfter := 2 * w.cfg.Timeout

	log.Printf("triageQueueWorker: started (poll=%s, concurrency=%d, timeout=%s)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.Timeout)

	for {
		select {
		case <-ctx.Done():
			log.Printf("triageQueueWorker: shutting down, waiting for in-flight triage...")
			w.wg.Wait()
			log.Printf("triageQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			if w.paused() {
				continue
			}
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			listings, err := w.listingRepo.ClaimPendingTriage(ctx, available, staleAfter)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("triageQueueWorker: ClaimPendingTriage error: %v", err)
				continue
			}

			for i := range listings {
				listing := listings[i]

				sem <- struct{}{}
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }()

					// Detached from the poll context so a claimed listing is
					// finished even during shutdown.
					triageCtx, cancel := context.WithTimeout(context.Background(), w.cfg.Timeout)
					defer cancel()

					verdict, err := w.triageSvc.TriageListing(triageCtx, &listing)
					if err != nil {
						var throttled *TriageThrottledError
						switch {
						case errors.As(err, &throttled):
							w.pause(throttled.Backoff)
							log.Printf("triageQueueWorker: listing %s deferred, classifier throttled; pausing claims for %s",
								listing.ID, throttled.Backoff)
						case errors.Is(err, domain.ErrTriageSuperseded):
							log.Printf("triageQueueWorker: listing %s edited during triage, verdict dropped", listing.ID)
						default:
							log.Printf("triageQueueWorker: listing %s: %v", listing.ID, err)
						}
						return
					}
					log.Printf("triageQueueWorker: listing %s triaged as %s", listing.ID, verdict.Status)
				}()
			}
		}
	}
}

// pause stops new claims for d. Overlapping pauses keep the later deadline.
func (w *TriageQueueWorker) pause(d time.Duration) {
	until := time.Now().Add(d)
	w.mu.Lock()
	defer w.mu.Unlock()
	if until.After(w.pausedUntil) {
		w.pausedUntil = until
	}
}

func (w *TriageQueueWorker) paused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return time.Now().Before(w.pausedUntil)
}
