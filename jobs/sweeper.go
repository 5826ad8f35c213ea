// Package jobs runs the background maintenance work: a wall-clock driven
// sweep that purges expired rooms and files, independent of any relay
// traffic.
package jobs

import (
	"log"
	"time"

	"github.com/driftroom/backend/database"
)

// Sweeper periodically deletes expired rooms and files.
type Sweeper struct {
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewSweeper(interval time.Duration) *Sweeper {
	return &Sweeper{
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine.
func (s *Sweeper) Start() {
	go s.run()
}

// Stop shuts the loop down and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			Sweep()
		case <-s.stop:
			return
		}
	}
}

// Sweep purges expired files, then expired rooms. Both deletes are
// idempotent, so a failure here is logged and simply retried on the next
// tick; partial progress is fine.
func Sweep() {
	if err := database.DeleteExpiredFiles(); err != nil {
		log.Printf("sweep: deleting expired files: %v", err)
	}
	if err := database.DeleteExpiredRooms(); err != nil {
		log.Printf("sweep: deleting expired rooms: %v", err)
	}
}
