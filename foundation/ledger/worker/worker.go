// Package worker implements the background mining workflow for the
// ledger. Mining is the only operation that can run for an unbounded
// amount of time, so it gets a dedicated goroutine with cancel support
// instead of blocking the caller.
package worker

import (
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger"
)

// Worker manages the mining workflow for the ledger.
type Worker struct {
	ledger       *ledger.Ledger
	minerLabel   string
	mineTimeout  time.Duration
	wg           sync.WaitGroup
	shut         chan struct{}
	startMining  chan bool
	cancelMining chan chan struct{}
	evHandler    ledger.EventHandler
}

// Run creates a worker and starts the goroutine that waits for mining
// signals. The mineTimeout bounds each search; zero means no bound.
func Run(lgr *ledger.Ledger, minerLabel string, mineTimeout time.Duration, evHandler ledger.EventHandler) *Worker {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	w := Worker{
		ledger:       lgr,
		minerLabel:   minerLabel,
		mineTimeout:  mineTimeout,
		shut:         make(chan struct{}),
		startMining:  make(chan bool, 1),
		cancelMining: make(chan chan struct{}, 1),
		evHandler:    ev,
	}

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.miningOperations()
	}()

	<-hasStarted

	return &w
}

// Shutdown terminates the goroutine performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.evHandler("worker: shutdown: signal cancel mining")
	done := w.SignalCancelMining()
	done()

	w.evHandler("worker: shutdown: terminate goroutine")
	close(w.shut)
	w.wg.Wait()
}

// SignalStartMining starts a mining operation. If there is already a
// signal pending in the channel, just return since a mining operation
// will start.
func (w *Worker) SignalStartMining() {
	select {
	case w.startMining <- true:
	default:
	}
	w.evHandler("worker: signalStartMining: mining signaled")
}

// SignalCancelMining signals the G executing the runMiningOperation
// function to stop immediately. That G will not return from the function
// until done is called, which lets the caller finish its own state
// changes before a new mining operation takes place.
func (w *Worker) SignalCancelMining() (done func()) {
	wait := make(chan struct{})

	select {
	case w.cancelMining <- wait:
	default:
	}
	w.evHandler("worker: signalCancelMining: cancel mining signaled")

	return func() { close(wait) }
}
