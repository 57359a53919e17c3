package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/valpere/pohoda/internal/models"
)

// GormBackend stores the city as one row of the preferences table
type GormBackend struct {
	db  *gorm.DB
	key string
}

func NewGormBackend(db *gorm.DB, key string) *GormBackend {
	return &GormBackend{
		db:  db,
		key: key,
	}
}

func (b *GormBackend) Load(ctx context.Context) (string, bool, error) {
	var pref models.Preference
	err := b.db.WithContext(ctx).Where("key = ?", b.key).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", b.key, err)
	}
	return pref.Value, true, nil
}

func (b *GormBackend) Save(ctx context.Context, city string) error {
	pref := models.Preference{
		Key:       b.key,
		Value:     city,
		UpdatedAt: time.Now().UTC(),
	}

	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		return fmt.Errorf("failed to write preference %s: %w", b.key, err)
	}
	return nil
}

func (b *GormBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
