package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"weather-dashboard/internal/domain/usecase/dashboard"
	"weather-dashboard/pkg/log"
	"weather-dashboard/pkg/redis"
)

// RefreshSchedulerConfig holds configuration for the refresh scheduler
type RefreshSchedulerConfig struct {
	CronExpression  string
	LockTTL         time.Duration
	RefreshInterval time.Duration
}

// RefreshScheduler periodically enqueues every saved location for a weather
// refresh. A distributed lock makes sure only one instance runs the schedule.
type RefreshScheduler struct {
	cron        *cron.Cron
	useCase     dashboard.UseCase
	redisClient *redis.Client
	config      *RefreshSchedulerConfig
}

// NewRefreshScheduler creates a new refresh scheduler with distributed locking support
func NewRefreshScheduler(useCase dashboard.UseCase, redisClient *redis.Client, cronExpression string, lockTTL int, refreshInterval int) *RefreshScheduler {
	return &RefreshScheduler{
		cron:        cron.New(),
		useCase:     useCase,
		redisClient: redisClient,
		config: &RefreshSchedulerConfig{
			CronExpression:  cronExpression,
			LockTTL:         time.Duration(lockTTL) * time.Second,
			RefreshInterval: time.Duration(refreshInterval) * time.Second,
		},
	}
}

// InitRefreshScheduleTasks initializes the refresh schedule with distributed locking
func (s *RefreshScheduler) InitRefreshScheduleTasks(ctx context.Context) {
	go func() {
		lock := redis.NewScheduledTaskLock(
			s.redisClient,
			"location_refresh_scheduler",
			s.getLockTTL(),
			s.getRefreshInterval(),
			"refresh_schedules",
		)

		err := lock.Lock(ctx)
		if err != nil {
			log.Errorf("Failed to acquire distributed lock, refresh scheduler will not be initialized: %v", err)
			return
		}

		// Keep the lock held for as long as this instance is the scheduler
		refreshErrChan := lock.AutoRefresh(ctx)

		cronExpression := s.config.CronExpression

		_, err = s.cron.AddFunc(cronExpression, s.ExecuteScheduledTask)
		if err != nil {
			log.Errorf("Failed to initialize refresh scheduler, cron will not be started: %v", err)
			return
		}

		s.cron.Start()
		log.Infof("Location refresh scheduler started successfully with cron expression: %s", cronExpression)

		// Stop the scheduler when the lock refresh fails or the context ends
		err = <-refreshErrChan

		if s.cron != nil {
			cronCtx := s.cron.Stop()
			<-cronCtx.Done()
		}

		if err != nil {
			log.Errorf("Location refresh scheduler stopped due to auto-refresh failure: %v", err)
		} else {
			log.Info("Location refresh scheduler stopped gracefully")
		}
	}()
}

// ExecuteScheduledTask enqueues every saved location for refresh
func (s *RefreshScheduler) ExecuteScheduledTask() {
	requestID := uuid.New().String()

	log.Info("Location refresh scheduled task triggered", zap.String("request_id", requestID))

	if err := s.useCase.EnqueueAllLocationsScheduled(requestID); err != nil {
		log.Error("Failed to execute scheduled location refresh", zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Info("Scheduled location refresh completed successfully", zap.String("request_id", requestID))
}

// Stop gracefully stops the scheduler
func (s *RefreshScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *RefreshScheduler) getLockTTL() time.Duration {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 10 * time.Minute
}

func (s *RefreshScheduler) getRefreshInterval() time.Duration {
	if s.config.RefreshInterval > 0 {
		return s.config.RefreshInterval
	}
	return 1 * time.Minute
}
