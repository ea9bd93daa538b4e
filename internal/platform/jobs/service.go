package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const JobAutoPopulate = "tasks_autopopulate"

// Populator creates today's template tasks and reports how many it created.
type Populator interface {
	AutoPopulate(ctx context.Context) (int, error)
}

type Recorder interface {
	RecordAutoPopulate(created int)
}

type Service struct {
	Tasks    Populator
	Metrics  Recorder
	Log      *zap.Logger
	Interval time.Duration
	queue    chan job
	wg       sync.WaitGroup
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(tasks Populator, metrics Recorder, log *zap.Logger, interval time.Duration) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		Tasks:    tasks,
		Metrics:  metrics,
		Log:      log.Named("jobs"),
		Interval: interval,
		queue:    make(chan job, 32),
	}
}

// Start runs auto-population once, then launches the worker and the
// scheduler. Both stop when ctx is cancelled; Wait blocks until they have.
func (s *Service) Start(ctx context.Context) {
	if _, err := s.RunNow(ctx, JobAutoPopulate, s.autoPopulate); err != nil {
		s.Log.Warn("startup auto-populate failed", zap.Error(err))
	}
	s.wg.Add(1)
	go s.worker(ctx)
	if s.Interval > 0 {
		s.wg.Add(1)
		go s.scheduleAutoPopulate(ctx, s.Interval)
	}
}

func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		s.Log.Warn("job queue full", zap.String("jobType", jobType))
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				s.Log.Warn("job run failed", zap.String("jobType", j.Type), zap.Error(err))
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	started := time.Now()
	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	s.Log.Debug("job run",
		zap.String("jobType", j.Type),
		zap.String("status", status),
		zap.Any("details", details),
		zap.Int64("durationMs", time.Since(started).Milliseconds()),
	)
	return details, err
}

func (s *Service) autoPopulate(ctx context.Context) (any, error) {
	created, err := s.Tasks.AutoPopulate(ctx)
	if err != nil {
		return nil, err
	}
	if s.Metrics != nil {
		s.Metrics.RecordAutoPopulate(created)
	}
	return map[string]any{"created": created}, nil
}

func (s *Service) scheduleAutoPopulate(ctx context.Context, interval time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobAutoPopulate, s.autoPopulate)
		}
	}
}
