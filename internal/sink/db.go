package sink

import (
	"github.com/pkg/errors"

	"complyd/internal/database"
	"complyd/internal/models"
)

// DBSink persists snapshots through the gorm repository.
type DBSink struct {
	repo *database.Repository
	db   *database.DB
}

// NewDBSink wraps an initialized database as a snapshot sink.
func NewDBSink(db *database.DB) *DBSink {
	return &DBSink{repo: database.NewRepository(db), db: db}
}

// Record inserts the snapshot.
func (s *DBSink) Record(snapshot *models.Snapshot) error {
	if err := s.repo.Create(snapshot); err != nil {
		return errors.Wrap(err, "db sink")
	}
	return nil
}

// Close closes the underlying database handle.
func (s *DBSink) Close() error {
	return s.db.Close()
}
