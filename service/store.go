package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/pricingxol/claimlens/config"
	"github.com/pricingxol/claimlens/model"
)

// DatasetStore is an in-memory store for uploaded datasets. Datasets live
// for the duration of the process only; restarts start empty by design.
type DatasetStore struct {
	datasets    map[string]*model.Dataset
	mu          sync.RWMutex
	maxDatasets int // Maximum datasets to keep, 0 = unlimited
}

var (
	globalStore *DatasetStore
	storeOnce   sync.Once
)

// InitDatasetStore initializes the global dataset store with configuration
func InitDatasetStore(cfg *config.StoreConfig) {
	storeOnce.Do(func() {
		maxDatasets := cfg.MaxDatasets
		if maxDatasets < 0 {
			maxDatasets = 0
		}
		globalStore = &DatasetStore{
			datasets:    make(map[string]*model.Dataset),
			maxDatasets: maxDatasets,
		}
		slog.Info("dataset store initialized", "max_datasets", maxDatasets)
	})
}

// GetDatasetStore returns the global dataset store
func GetDatasetStore() *DatasetStore {
	if globalStore == nil {
		// Fallback initialization with default settings
		globalStore = &DatasetStore{
			datasets:    make(map[string]*model.Dataset),
			maxDatasets: 20,
		}
	}
	return globalStore
}

func (s *DatasetStore) Save(ds *model.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds.UpdatedAt = time.Now()
	s.datasets[ds.ID] = ds

	s.cleanupIfNeeded()
}

func (s *DatasetStore) Get(id string) *model.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.datasets[id]
}

// List returns all datasets, newest first.
func (s *DatasetStore) List() []*model.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Dataset, 0, len(s.datasets))
	for _, ds := range s.datasets {
		result = append(result, ds)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *DatasetStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.datasets, id)
}

func (s *DatasetStore) UpdateStatus(id, status string, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ds, ok := s.datasets[id]; ok {
		ds.Status = status
		ds.ErrorMsg = errMsg
		ds.UpdatedAt = time.Now()
	}
}

// SetResult stores a completed pipeline run. The claims slice must not be
// mutated afterwards; readers filter into fresh slices.
func (s *DatasetStore) SetResult(id string, claims []model.Claim, quality model.QualityCounts) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ds, ok := s.datasets[id]; ok {
		ds.Claims = claims
		ds.Quality = quality
		ds.Status = model.StatusCompleted
		ds.UpdatedAt = time.Now()
	}
}

// cleanupIfNeeded removes oldest datasets if store exceeds maxDatasets
// Must be called with lock held
func (s *DatasetStore) cleanupIfNeeded() {
	if s.maxDatasets <= 0 {
		return // Unlimited
	}

	if len(s.datasets) <= s.maxDatasets {
		return
	}

	datasets := make([]*model.Dataset, 0, len(s.datasets))
	for _, ds := range s.datasets {
		datasets = append(datasets, ds)
	}
	sort.Slice(datasets, func(i, j int) bool {
		return datasets[i].CreatedAt.Before(datasets[j].CreatedAt)
	})

	removeCount := len(datasets) - s.maxDatasets
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old dataset",
			"dataset_id", datasets[i].ID,
			"created_at", datasets[i].CreatedAt,
		)
		delete(s.datasets, datasets[i].ID)
	}
}

// Count returns the number of datasets in the store
func (s *DatasetStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}
