package storage

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zaqqye/evaluasi_backend/internal/models"
)

// DBStore keeps blobs in the roster_snapshots table.
type DBStore struct {
	DB *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{DB: db}
}

func (s *DBStore) Get(ctx context.Context, key string) ([]byte, error) {
	var snap models.RosterSnapshot
	if err := s.DB.WithContext(ctx).Where("key = ?", key).First(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(snap.Payload), nil
}

func (s *DBStore) Put(ctx context.Context, key string, data []byte) error {
	snap := models.RosterSnapshot{Key: key, Payload: datatypes.JSON(data)}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snap).Error
}
