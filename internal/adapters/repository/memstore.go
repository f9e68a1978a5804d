package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/gully/internal/dataset"
	"github.com/okian/gully/pkg/metrics"
)

// In-memory, memoize-on-first-read Store implementation.
//
// The loaded dataset is published through an atomic pointer so readers
// never block on a reload. Loads and refreshes serialize on a mutex; a
// refresh swaps the pointer only after the replacement dataset is fully
// built, so readers always see either the old or the new dataset, never a
// partial one.

// snapshot pairs a loaded dataset with the fingerprints of the source
// files it was read from.
type snapshot struct {
	ds          *dataset.Dataset
	matchesSum  uint64
	deliverySum uint64
}

// MemStore is the in-memory dataset store.
type MemStore struct {
	src                   dataset.Sources
	metricsUpdateInterval time.Duration

	mu      sync.Mutex // serializes loads and refreshes
	current atomic.Pointer[snapshot]

	// Background metrics management
	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewMemStore constructs a dataset store with configuration options.
func NewMemStore(ctx context.Context, src dataset.Sources, opts ...Option) *MemStore {
	s := &MemStore{
		src:                   src,
		metricsUpdateInterval: 5 * time.Second, // default metrics update interval
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	// Initialize stop channel and start the metrics updater
	s.stopChan = make(chan struct{})
	s.startMetricsUpdater(ctx)

	return s
}

// Dataset implements Store.Dataset. The first call reads both sources;
// later calls return the memoized dataset.
func (s *MemStore) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	if snap := s.current.Load(); snap != nil {
		return snap.ds, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the lock; another caller may have loaded meanwhile.
	if snap := s.current.Load(); snap != nil {
		return snap.ds, nil
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.current.Store(snap)
	return snap.ds, nil
}

// Refresh implements Store.Refresh. When nothing is loaded yet, it behaves
// like a first load and reports a reload.
func (s *MemStore) Refresh(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	if cur == nil {
		snap, err := s.load(ctx)
		if err != nil {
			return false, err
		}
		s.current.Store(snap)
		metrics.RecordDatasetRefresh()
		return true, nil
	}

	matchesSum, err := dataset.Fingerprint(s.src.MatchesPath)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "fingerprint_failed")
		return false, err
	}
	deliverySum, err := dataset.Fingerprint(s.src.DeliveriesPath)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "fingerprint_failed")
		return false, err
	}
	if matchesSum == cur.matchesSum && deliverySum == cur.deliverySum {
		metrics.RecordDatasetRefreshNoop()
		return false, nil
	}

	snap, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	s.current.Store(snap)
	metrics.RecordDatasetRefresh()
	return true, nil
}

// Stats implements Store.Stats from the current snapshot, without touching
// the source files.
func (s *MemStore) Stats(_ context.Context) (Stats, error) {
	snap := s.current.Load()
	if snap == nil {
		metrics.RecordErrorByComponent("repository", "not_loaded")
		return Stats{}, ErrNotLoaded
	}
	return Stats{
		Matches:           snap.ds.Matches.Len(),
		Deliveries:        snap.ds.Deliveries.Len(),
		MatchesSkipped:    snap.ds.Matches.Skipped,
		DeliveriesSkipped: snap.ds.Deliveries.Skipped,
		LoadedAt:          snap.ds.LoadedAt,
	}, nil
}

// Close gracefully shuts down the background metrics goroutine.
func (s *MemStore) Close() error {
	// Signal all goroutines to stop
	select {
	case <-s.stopChan:
		// Channel already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// load reads both sources and fingerprints them. Callers hold s.mu.
func (s *MemStore) load(ctx context.Context) (*snapshot, error) {
	start := time.Now()

	ds, err := dataset.Load(ctx, s.src)
	if err != nil {
		metrics.RecordDatasetLoadError()
		metrics.RecordErrorByComponent("repository", "load_failed")
		return nil, err
	}

	matchesSum, err := dataset.Fingerprint(s.src.MatchesPath)
	if err != nil {
		metrics.RecordDatasetLoadError()
		return nil, err
	}
	deliverySum, err := dataset.Fingerprint(s.src.DeliveriesPath)
	if err != nil {
		metrics.RecordDatasetLoadError()
		return nil, err
	}

	metrics.RecordDatasetLoad()
	metrics.RecordDatasetLoadDuration(float64(time.Since(start).Milliseconds()))
	publishDatasetMetrics(ds)

	return &snapshot{ds: ds, matchesSum: matchesSum, deliverySum: deliverySum}, nil
}

// startMetricsUpdater starts a background goroutine that republishes
// dataset gauges at the configured interval.
func (s *MemStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				if snap := s.current.Load(); snap != nil {
					publishDatasetMetrics(snap.ds)
				}
			}
		}
	}()
}

// publishDatasetMetrics updates the per-table gauges for a loaded dataset.
func publishDatasetMetrics(ds *dataset.Dataset) {
	for _, t := range []*dataset.Table{ds.Matches, ds.Deliveries} {
		metrics.UpdateDatasetRows(t.Name, t.Len())
		metrics.UpdateDatasetSkippedRows(t.Name, t.Skipped)
	}
	metrics.UpdateDatasetLastLoadUnix(ds.LoadedAt.Unix())
}
