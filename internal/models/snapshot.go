package models

import (
	"time"

	"gorm.io/gorm"
)

// Snapshot is one complete capture cycle: the four probe payloads with the
// capture's position in the session. Immutable once assembled by the
// scheduler.
type Snapshot struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Sequence     uint64         `gorm:"not null;index" json:"sequence"`
	ElapsedMS    int64          `gorm:"not null" json:"elapsed_ms"`
	Timestamp    time.Time      `gorm:"not null;index" json:"timestamp"`
	BrowserInfo  string         `gorm:"not null" json:"browser_info"`
	BrowserStats string         `gorm:"not null" json:"browser_stats"`
	NetworkInfo  string         `gorm:"not null" json:"network_info"`
	ProgramsInfo string         `gorm:"not null" json:"programs_info"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProbeError records a recovered probe fault for later inspection.
type ProbeError struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Probe     string         `gorm:"not null;index" json:"probe"`
	ErrorMsg  string         `gorm:"not null" json:"error_msg"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
