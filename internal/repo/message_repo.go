// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Message
// model.
//
// Error semantics:
//   - When a row is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cbouguerba/portfolio-backend/internal/domain"
)

// ErrNotFound aliases gorm.ErrRecordNotFound for callers that prefer not to
// import gorm directly.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateMessage inserts a new contact message row. The CreatedAt timestamp
// is set here, in UTC, and is immutable afterwards.
func CreateMessage(db *gorm.DB, m *domain.Message) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return db.Create(m).Error
}

// ListRecentMessages returns the most recent messages ordered newest first
// (CreatedAt DESC, ID DESC as tiebreaker).
func ListRecentMessages(ctx context.Context, db *gorm.DB, limit int) ([]domain.Message, error) {
	var out []domain.Message
	q := db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountMessages uses a raw COUNT so a missing table surfaces as an error.
func CountMessages(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw("SELECT COUNT(*) FROM messages").Scan(&total).Error
	return total, err
}

// CountUnreadMessages returns the number of messages not yet marked read.
func CountUnreadMessages(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Message{}).
		Where("is_read = ?", false).
		Count(&total).Error
	return total, err
}

// MarkMessageRead flips the read flag on a single message. This is the only
// permitted mutation of a stored message.
func MarkMessageRead(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Model(&domain.Message{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllMessages removes every message row and returns how many were
// deleted. It is used by the administrative bulk-clear command only.
func DeleteAllMessages(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Message{}).Count(&count).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&domain.Message{}).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetMessage fetches a message by ID.
func GetMessage(ctx context.Context, db *gorm.DB, id uint) (*domain.Message, error) {
	var m domain.Message
	if err := db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
