/*
scheduler.go - Automated ledger derivation scheduler

PURPOSE:
  Periodically runs the ledger deriver so payroll entries appear without
  a manual trigger. The upstream system ran this twice a day (6 AM and
  6 PM); the default interval of 12 hours matches that cadence.

DESIGN:
  - Runs a background goroutine with a configurable interval
  - Derivation is idempotent, so an extra run is always safe
  - A failed run logs and waits for the next tick; it never crashes
    the server

CONFIGURATION:
  - Interval: How often to derive (default: 12 hours)
  - Enabled:  Whether the scheduler is active (default: true)

USAGE:
  scheduler := NewDerivationScheduler(deriver, log)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: DeriveLedger endpoint (manual trigger)
  - payroll/deriver.go: The derivation itself
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/payroll-engine/payroll"
)

// DerivationScheduler handles periodic ledger derivation.
type DerivationScheduler struct {
	Deriver  *payroll.Deriver
	Interval time.Duration
	Enabled  bool

	log    *logrus.Logger
	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewDerivationScheduler creates a new scheduler.
func NewDerivationScheduler(deriver *payroll.Deriver, log *logrus.Logger) *DerivationScheduler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DerivationScheduler{
		Deriver:  deriver,
		Interval: 12 * time.Hour,
		Enabled:  true,
		log:      log,
		stop:     make(chan bool),
	}
}

// Start begins the scheduler.
func (ds *DerivationScheduler) Start() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.Enabled {
		ds.log.Info("derivation scheduler disabled, not starting")
		return
	}

	ds.ticker = time.NewTicker(ds.Interval)
	ds.wg.Add(1)

	go ds.run()

	ds.log.WithField("interval", ds.Interval).Info("derivation scheduler started")
}

// Stop stops the scheduler.
func (ds *DerivationScheduler) Stop() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.ticker != nil {
		ds.ticker.Stop()
		close(ds.stop)
		ds.wg.Wait()
		ds.log.Info("derivation scheduler stopped")
	}
}

func (ds *DerivationScheduler) run() {
	defer ds.wg.Done()

	// Run immediately on start
	ds.derive()

	for {
		select {
		case <-ds.ticker.C:
			ds.derive()
		case <-ds.stop:
			return
		}
	}
}

func (ds *DerivationScheduler) derive() {
	res, err := ds.Deriver.Derive(context.Background())
	if err != nil {
		ds.log.WithError(err).Error("scheduled derivation failed")
		return
	}

	ds.log.WithFields(logrus.Fields{
		"entries_generated": res.EntriesGenerated,
		"coerced_fields":    res.Coerced,
	}).Info("scheduled derivation complete")
}
