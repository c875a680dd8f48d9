package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/fi-dashboard/internal/config"
	"github.com/vfg2006/fi-dashboard/internal/usecases/loading"
	"github.com/vfg2006/fi-dashboard/pkg/log"
)

// DatasetReloadConfig holds the schedule of the dataset reload job
type DatasetReloadConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DatasetReloadService re-reads the enriched dataset on a cron schedule and on demand
type DatasetReloadService struct {
	scheduler           *gocron.Scheduler
	config              DatasetReloadConfig
	loader              loading.Loader
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncErr         error
	runs                int
}

func NewDatasetReloadService(loader loading.Loader, appConfig *config.Config) *DatasetReloadService {
	reloadConfig := DatasetReloadConfig{
		CronSchedule: appConfig.Dataset.ReloadCron,
		SyncEnabled:  appConfig.Dataset.ReloadEnabled,
	}

	log.L.WithFields(log.Fields{
		"cron_schedule": reloadConfig.CronSchedule,
		"sync_enabled":  reloadConfig.SyncEnabled,
	}).Info("dataset-reload: configuration loaded")

	return &DatasetReloadService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    reloadConfig,
		loader:    loader,
	}
}

// Start schedules the reload job until ctx is cancelled. It is a no-op when the job is disabled.
func (s *DatasetReloadService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.Info("dataset-reload: scheduled reload disabled by configuration")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("dataset-reload: starting scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.reload(ctx)
	})
	if err != nil {
		return fmt.Errorf("dataset-reload: schedule %q: %w", s.config.CronSchedule, err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("dataset-reload: stopping scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// Reload runs the job synchronously; overlapping runs are skipped
func (s *DatasetReloadService) Reload(ctx context.Context) {
	s.reload(ctx)
}

// TriggerManualSync starts a reload in the background unless one is already running.
// It reports whether a run was started.
func (s *DatasetReloadService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("dataset-reload: reload already running, ignoring manual trigger")
		return false
	}
	s.syncMutex.Unlock()

	log.L.Info("dataset-reload: manual reload requested")
	go s.reload(context.WithoutCancel(ctx))
	return true
}

func (s *DatasetReloadService) reload(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("dataset-reload: reload already running, skipping")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	snapshot, err := s.loader.Reload(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncErr = err
	s.runs++
	s.syncMutex.Unlock()

	if err != nil {
		log.L.WithError(err).Error("dataset-reload: reload failed, previous dataset kept")
		return
	}

	log.L.WithFields(log.Fields{
		"duration": time.Since(startTime).String(),
		"version":  snapshot.Version,
	}).Info("dataset-reload: reload completed")
}

// GetStatus reports the schedule, the last run and the dataset currently served
func (s *DatasetReloadService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"runs":                   s.runs,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"dataset":                s.loader.Status(),
	}
	if s.lastSyncErr != nil {
		status["last_sync_error"] = s.lastSyncErr.Error()
	}
	return status
}
