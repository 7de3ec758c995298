package sink

import (
	"strings"

	"github.com/pkg/errors"

	"complyd/internal/models"
)

// MultiSink fans each snapshot out to several sinks. A failing child never
// prevents delivery to the others; the combined errors are returned for
// logging.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink bundles the given sinks. Nil entries are dropped.
func NewMultiSink(sinks ...Sink) *MultiSink {
	m := &MultiSink{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Record delivers the snapshot to every child sink.
func (m *MultiSink) Record(snapshot *models.Snapshot) error {
	var failures []string
	for _, s := range m.sinks {
		if err := s.Record(snapshot); err != nil {
			failures = append(failures, err.Error())
		}
	}
	if len(failures) > 0 {
		return errors.Errorf("sink failures: %s", strings.Join(failures, "; "))
	}
	return nil
}

// Close closes every child sink, returning the first error seen.
func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
