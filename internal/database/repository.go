package database

import (
	"time"

	"complyd/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// Repository handles all database operations for snapshots
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new snapshot into the database
func (r *Repository) Create(snapshot *models.Snapshot) error {
	result := r.db.Create(snapshot)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert snapshot")
	}
	return nil
}

// GetByID retrieves a snapshot by its ID
func (r *Repository) GetByID(id uint) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	result := r.db.First(&snapshot, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to get snapshot")
	}
	return &snapshot, nil
}

// GetRecent retrieves the most recent n snapshots, newest first
func (r *Repository) GetRecent(n int) ([]*models.Snapshot, error) {
	var snapshots []*models.Snapshot
	result := r.db.Order("timestamp DESC").Limit(n).Find(&snapshots)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query recent snapshots")
	}
	return snapshots, nil
}

// GetSince retrieves all snapshots captured since a given time
func (r *Repository) GetSince(since time.Time) ([]*models.Snapshot, error) {
	var snapshots []*models.Snapshot
	result := r.db.Where("timestamp >= ?", since).Order("timestamp ASC").Find(&snapshots)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query snapshots")
	}
	return snapshots, nil
}

// CountSince returns the number of snapshots captured since a given time
func (r *Repository) CountSince(since time.Time) (int64, error) {
	var count int64
	result := r.db.Model(&models.Snapshot{}).Where("timestamp >= ?", since).Count(&count)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to count snapshots")
	}
	return count, nil
}

// DeleteOlderThan deletes snapshots older than a specified date (soft delete)
func (r *Repository) DeleteOlderThan(before time.Time) (int64, error) {
	result := r.db.Where("timestamp < ?", before).Delete(&models.Snapshot{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete old snapshots")
	}
	return result.RowsAffected, nil
}

// CreateProbeError records a recovered probe fault
func (r *Repository) CreateProbeError(probeErr *models.ProbeError) error {
	result := r.db.Create(probeErr)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert probe error")
	}
	return nil
}

// Clear removes all snapshots and probe errors from the database
func (r *Repository) Clear() error {
	if result := r.db.Exec("DELETE FROM snapshots"); result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear snapshots")
	}
	if result := r.db.Exec("DELETE FROM probe_errors"); result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear probe errors")
	}
	return nil
}
