// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job is a unit of background work. An empty Schedule registers the job
// as on-demand only.
type Job interface {
	Name() string
	Schedule() string
	Run(ctx context.Context) error
}

type Scheduler struct {
	cron *cron.Cron
	mu   sync.RWMutex
	jobs []Job
}

// New builds a scheduler. Options are passed to cron, e.g. WithLocation so
// specs fire in the club's time zone.
func New(opts ...cron.Option) *Scheduler {
	return &Scheduler{
		cron: cron.New(opts...),
		jobs: make([]Job, 0),
	}
}

// RegisterJob adds a job and schedules it when it declares a cron spec.
func (s *Scheduler) RegisterJob(job Job) error {
	if spec := job.Schedule(); spec != "" {
		_, err := s.cron.AddFunc(spec, func() {
			s.run(context.Background(), job)
		})
		if err != nil {
			return fmt.Errorf("schedule job %s: %w", job.Name(), err)
		}
		log.Info().Str("job", job.Name()).Str("cron", spec).Msg("job scheduled")
	} else {
		log.Info().Str("job", job.Name()).Msg("job registered as on-demand")
	}

	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()
	return nil
}

func (s *Scheduler) run(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("job", job.Name()).Msg("job panicked")
		}
	}()

	log.Info().Str("job", job.Name()).Msg("job started")
	if err := job.Run(ctx); err != nil {
		log.Error().Err(err).Str("job", job.Name()).Msg("job failed")
		return
	}
	log.Info().Str("job", job.Name()).Msg("job completed")
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("jobs", len(s.RegisteredJobs())).Msg("scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunJobByName executes a registered job immediately.
func (s *Scheduler) RunJobByName(ctx context.Context, name string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.jobs {
		if job.Name() == name {
			return job.Run(ctx)
		}
	}
	return fmt.Errorf("job %q not found", name)
}

func (s *Scheduler) RegisteredJobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.jobs))
	for i, job := range s.jobs {
		names[i] = job.Name()
	}
	return names
}
