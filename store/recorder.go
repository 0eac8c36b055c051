// Package store archives resampled supply curves, so that successive exports can be compared over time.
package store

import "github.com/etnz/supplycurve"

// Recorder persists resampled supply curves.
type Recorder interface {
	RecordResampled(res *supplycurve.Resampled) error
	Close() error
}

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordResampled(_ *supplycurve.Resampled) error { return nil }
func (n *NoopRecorder) Close() error                                   { return nil }
