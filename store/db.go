package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRecord is the single table backing the database store: one row per
// collection key, the JSON-encoded collection as the value.
type KVRecord struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value []byte `gorm:"column:value"`
}

func (KVRecord) TableName() string { return "kv_records" }

// DB persists collections as rows in a relational database. Works against
// sqlite for a single-node deployment and postgres when a DSN is configured.
type DB struct {
	db *gorm.DB
}

func NewDB(db *gorm.DB) (*DB, error) {
	if err := db.AutoMigrate(&KVRecord{}); err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

func (s *DB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var record KVRecord
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return record.Value, true, nil
}

func (s *DB) Put(ctx context.Context, key string, value []byte) error {
	record := KVRecord{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&record).Error
}

func (s *DB) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&KVRecord{}).Error
}
