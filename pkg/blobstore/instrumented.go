package blobstore

import (
	"context"
	"time"

	"github.com/ordinacija/patients-api/pkg/metrics"
)

// InstrumentedStore decorates a Store with prometheus counters and latency
// histograms per operation.
type InstrumentedStore struct {
	next    Store
	metrics *metrics.Metrics
}

func NewInstrumentedStore(next Store, m *metrics.Metrics) *InstrumentedStore {
	return &InstrumentedStore{next: next, metrics: m}
}

func (s *InstrumentedStore) Put(ctx context.Context, key string, data []byte, contentType string, allowOverwrite bool) error {
	start := time.Now()
	err := s.next.Put(ctx, key, data, contentType, allowOverwrite)
	s.observe("put", start, err)
	return err
}

func (s *InstrumentedStore) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Remove(ctx, key)
	s.observe("remove", start, err)
	return err
}

func (s *InstrumentedStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	start := time.Now()
	url, err := s.next.SignedURL(ctx, key, ttl)
	s.observe("signed_url", start, err)
	return url, err
}

func (s *InstrumentedStore) PublicURL(key string) string {
	return s.next.PublicURL(key)
}

func (s *InstrumentedStore) observe(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.StorageOperations.WithLabelValues(operation, status).Inc()
	s.metrics.StorageLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
