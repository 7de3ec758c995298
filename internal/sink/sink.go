// Package sink delivers completed snapshots to their destinations. The
// scheduler treats every sink as best-effort: a Record error is logged and
// dropped, never propagated into the polling loop.
package sink

import "complyd/internal/models"

// Sink receives one call per completed snapshot.
type Sink interface {
	Record(snapshot *models.Snapshot) error
	Close() error
}
