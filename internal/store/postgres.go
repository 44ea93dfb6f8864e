package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"
)

const defaultPostgresDSN = "postgres://localhost/hr_portal?sslmode=disable"

type stateRow struct {
	Bucket    string         `gorm:"column:bucket;primaryKey"`
	Payload   datatypes.JSON `gorm:"column:payload;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (stateRow) TableName() string { return "portal_state" }

// PostgresBackend stores each key as a JSONB row through gorm.
type PostgresBackend struct {
	db *gorm.DB
}

func NewPostgresBackend(dsn string) (*PostgresBackend, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&stateRow{}); err != nil {
		return nil, fmt.Errorf("migrate state table: %w", err)
	}
	return &PostgresBackend{db: db}, nil
}

func (p *PostgresBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row stateRow
	err := p.db.WithContext(ctx).First(&row, "bucket = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select %s: %w", key, err)
	}
	return []byte(row.Payload), true, nil
}

func (p *PostgresBackend) Set(ctx context.Context, key string, value []byte) error {
	return upsertState(p.db.WithContext(ctx), key, value)
}

func (p *PostgresBackend) SetMany(ctx context.Context, values map[string][]byte) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for k, v := range values {
			if err := upsertState(tx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertState(db *gorm.DB, key string, value []byte) error {
	row := stateRow{Bucket: key, Payload: datatypes.JSON(value), UpdatedAt: time.Now()}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "bucket"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (p *PostgresBackend) Delete(ctx context.Context, key string) error {
	if err := p.db.WithContext(ctx).Delete(&stateRow{}, "bucket = ?", key).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (p *PostgresBackend) Close(context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (p *PostgresBackend) Driver() string { return DriverPostgres }
