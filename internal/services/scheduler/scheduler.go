package scheduler

import "github.com/robfig/cron/v3"

// Provider is the interface for the cron-like job scheduler.
type Provider interface {
	// Schedule registers a job to run on the given cron spec and
	// returns an identifier to unschedule it again.
	Schedule(spec string, job func()) (id interface{}, err error)

	// Unschedule removes a scheduled job.
	Unschedule(id interface{}) error

	// Start starts the scheduler loop.
	Start()

	// Stop stops the scheduler loop.
	Stop()
}

// CronScheduler wraps robfig/cron as a Provider.
type CronScheduler struct {
	C *cron.Cron
}

var _ Provider = (*CronScheduler)(nil)

func (s *CronScheduler) Schedule(spec string, job func()) (interface{}, error) {
	return s.C.AddFunc(spec, job)
}

func (s *CronScheduler) Unschedule(id interface{}) error {
	s.C.Remove(id.(cron.EntryID))
	return nil
}

func (s *CronScheduler) Start() {
	s.C.Start()
}

func (s *CronScheduler) Stop() {
	s.C.Stop()
}
