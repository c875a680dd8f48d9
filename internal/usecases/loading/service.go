package loading

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vfg2006/fi-dashboard/infrastructure/filesource"
	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/pkg/log"
	"github.com/vfg2006/fi-dashboard/pkg/utils"
)

// Snapshot is one successfully loaded version of the dataset. It is never mutated after
// it is published, so readers can hold on to it without locking.
type Snapshot struct {
	Dataset  *domain.Dataset
	Version  string
	LoadedAt time.Time
}

type Loader interface {
	Reload(ctx context.Context) (*Snapshot, error)
	Current() (*Snapshot, error)
	Status() domain.DatasetStatus
}

type Service struct {
	reader filesource.DatasetReader
	now    func() time.Time

	mu      sync.RWMutex
	current *Snapshot
	lastErr error
}

func NewService(reader filesource.DatasetReader) *Service {
	return &Service{
		reader: reader,
		now:    time.Now,
	}
}

// Reload reads the dataset again. On failure the previous snapshot stays current and the
// error is kept for Status.
func (s *Service) Reload(ctx context.Context) (*Snapshot, error) {
	logger := log.ForContext(ctx).WithField("path", s.reader.Path())

	dataset, err := s.reader.Read(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		hasPrevious := s.current != nil
		s.mu.Unlock()

		logger.WithError(err).WithField("kept_previous", hasPrevious).Error("dataset-load: reload failed")
		return nil, newLoadError(err, s.reader.Path())
	}

	version, err := utils.GenerateID()
	if err != nil {
		return nil, newLoadError(err, s.reader.Path())
	}

	snapshot := &Snapshot{
		Dataset:  dataset,
		Version:  version,
		LoadedAt: s.now(),
	}

	s.mu.Lock()
	s.current = snapshot
	s.lastErr = nil
	s.mu.Unlock()

	logger.WithFields(log.Fields{
		"version": version,
		"rows":    dataset.Len(),
		"columns": len(dataset.Header),
	}).Info("dataset-load: dataset loaded")

	return snapshot, nil
}

// Current returns the latest good snapshot
func (s *Service) Current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current != nil {
		return s.current, nil
	}

	err := s.lastErr
	if err == nil {
		err = errors.New("dataset not loaded yet")
	}
	return nil, newLoadError(err, s.reader.Path())
}

func (s *Service) Status() domain.DatasetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := domain.DatasetStatus{Path: s.reader.Path()}
	if s.current != nil {
		status.Version = s.current.Version
		status.LoadedAt = s.current.LoadedAt
		status.Rows = s.current.Dataset.Len()
		status.Columns = len(s.current.Dataset.Header)
	}
	if s.lastErr != nil {
		status.Error = s.lastErr.Error()
	}
	return status
}
