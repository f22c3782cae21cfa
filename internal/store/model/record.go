// Package model holds the persistence models shared by the journal backends.
package model

import (
	"time"

	"gorm.io/datatypes"
)

// RequestRecord is one served map request.
type RequestRecord struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	Kind        string         `gorm:"size:16;index" json:"kind"` // map | batch_item | frame
	Epoch       string         `gorm:"size:40" json:"epoch"`
	JD          float64        `json:"jd"`
	Fingerprint string         `gorm:"size:64;index" json:"fingerprint"`
	BodyCount   int            `json:"body_count"`
	Features    int            `json:"features"`
	CacheHit    bool           `json:"cache_hit"`
	DurationMs  float64        `json:"duration_ms"`
	Status      string         `gorm:"size:16" json:"status"` // ok | error
	Error       string         `gorm:"type:text" json:"error,omitempty"`
	Options     datatypes.JSON `json:"options,omitempty"`
}

// TableName keeps both backends on the same table.
func (RequestRecord) TableName() string {
	return "request_journal"
}
