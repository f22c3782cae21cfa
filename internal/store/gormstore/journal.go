// Package gormstore is the gorm-backed journal backend. It shares the table
// layout with the plain sqlite backend via the model's gorm tags.
package gormstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"astromap/internal/store/model"
)

// Journal is the gorm implementation of store.Journal.
type Journal struct {
	db *gorm.DB
}

// NewJournal opens (or creates) the journal database at path and migrates
// the schema.
func NewJournal(path string) (*Journal, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("journal path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.RequestRecord{}); err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		// SQLite + WAL: keep lock contention low while serving concurrent reads.
		sqlDB.SetMaxOpenConns(2)
		sqlDB.SetMaxIdleConns(2)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Record(ctx context.Context, rec *model.RequestRecord) error {
	if rec == nil {
		return fmt.Errorf("nil journal record")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	return j.db.WithContext(ctx).Create(rec).Error
}

func (j *Journal) Recent(ctx context.Context, limit int) ([]model.RequestRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []model.RequestRecord
	err := j.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
