// Package scheduler runs the periodic background jobs: the cart-expiry sweep
// and the daily timetable extension.
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"train-booking/cart"
	"train-booking/services"
)

// Scheduler wraps a cron runner with the jobs this system needs.
type Scheduler struct {
	cron      *cron.Cron
	carts     *cart.Manager
	generator *services.TripGenerator
	horizon   int
	isRunning bool
}

// New builds a scheduler. horizonDays is the number of days of timetable the
// daily job keeps generated ahead of today.
func New(carts *cart.Manager, generator *services.TripGenerator, horizonDays int) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		carts:     carts,
		generator: generator,
		horizon:   horizonDays,
	}
}

// Start registers the jobs and launches the cron loop.
func (s *Scheduler) Start() error {
	// Expired carts release their seats once a minute.
	if _, err := s.cron.AddFunc("* * * * *", func() {
		s.carts.SweepExpired()
	}); err != nil {
		return err
	}

	// Each night the timetable gains the day that just entered the horizon.
	if _, err := s.cron.AddFunc("0 3 * * *", func() {
		date := time.Now().AddDate(0, 0, s.horizon)
		if _, err := s.generator.GenerateDay(date); err != nil {
			log.Printf("Scheduler: timetable extension failed: %v", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Scheduler: started (cart sweep every minute, timetable extension daily)")
	return nil
}

// Stop halts the cron loop.
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: stopped")
	}
}
