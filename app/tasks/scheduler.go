package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bbz662/english-teacher/app/cfg"
	"github.com/bbz662/english-teacher/app/metrics"
)

const taskQueueSize = 10

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	newRunner   RunnerFactory
	interval    time.Duration
	workerCount int
	taskTimeout time.Duration
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(c *cfg.Cfg, newRunner RunnerFactory) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		newRunner:   newRunner,
		interval:    c.GetSchedulerInterval(),
		workerCount: max(c.WorkerCount, 1),
		taskTimeout: c.GetTaskTimeout(),
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, taskQueueSize),
	}
}

// Start launches the workers and, unless the interval is zero, the ticker.
// The first scheduled check happens one interval after start.
func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	if s.interval <= 0 {
		slog.Info("Scheduled feed checks disabled")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueCheck()
			}
		}
	}()

	slog.Info("Scheduler started", "interval", s.interval, "workers", s.workerCount)
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}

	select {
	case s.taskQueue <- task:
		metrics.TasksQueued.Inc()
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueCheck() {
	task := NewCheckFeedTask(s.newRunner())
	if err := s.EnqueueTask(task); err != nil {
		slog.Warn("Failed to enqueue CheckFeedTask", "id", task.GetID(), "error", err)
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task := <-s.taskQueue:
			metrics.TasksQueued.Dec()
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, s.taskTimeout)
	defer cancel()

	if err := task.Execute(taskCtx); err != nil {
		metrics.TasksTotal.WithLabelValues(string(task.GetType()), metrics.OutcomeFailure).Inc()
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "duration", task.GetDuration(), "error", err)
		return
	}

	metrics.TasksTotal.WithLabelValues(string(task.GetType()), metrics.OutcomeSuccess).Inc()
}
