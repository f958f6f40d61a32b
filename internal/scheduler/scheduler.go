package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/catalog"
	"github.com/KhoTheProgrammer/smart-farmer-backend/internal/season"
)

// perVillageTimeout bounds one village's rainfall fetch and analysis.
const perVillageTimeout = 2 * time.Minute

// Scheduler periodically recalculates planting windows for every known
// village so farmer queries hit warm caches.
type Scheduler struct {
	scheduler *gocron.Scheduler
	calendar  *season.CalendarService
	locations *catalog.LocationRepository
	interval  time.Duration
}

// New creates a Scheduler.
func New(locations *catalog.LocationRepository, calendar *season.CalendarService, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		calendar:  calendar,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic recalculation job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	hours := int(s.interval.Hours())
	if hours <= 0 {
		hours = 24
	}

	_, err := s.scheduler.Every(hours).Hours().Do(func() {
		s.recalculateAll()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// recalculateAll refreshes the general planting window of every village.
// Villages share cache cells at 2-decimal precision, so most villages in a
// district reuse one upstream fetch.
func (s *Scheduler) recalculateAll() {
	villages := s.locations.ListAllVillages()
	if len(villages) == 0 {
		log.Println("scheduler: no villages configured; nothing to recalculate")
		return
	}

	log.Printf("scheduler: recalculating planting windows for %d villages", len(villages))

	var failed int
	for _, village := range villages {
		ctx, cancel := context.WithTimeout(context.Background(), perVillageTimeout)
		_, err := s.calendar.WindowForVillage(ctx, village.ID, nil, true)
		cancel()
		if err != nil {
			failed++
			log.Printf("scheduler: recalculation failed for %s: %v", village.Name, err)
		}
	}

	log.Printf("scheduler: completed planting window recalculation (%d failed)", failed)
}
