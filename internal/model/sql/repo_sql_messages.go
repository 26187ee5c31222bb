package sql

import (
	"context"
	"fmt"

	"recruit/internal/access"
	"recruit/internal/entity"

	"gorm.io/gorm"
)

var messageSearchColumns = []string{"name", "email", "message"}

// CreateMessage stores a guest message. UserID may be nil for anonymous visitors.
func (r *GormRepository) CreateMessage(ctx context.Context, message *entity.DbMessage) error {
	if err := r.ready(); err != nil {
		return err
	}
	if message == nil {
		return fmt.Errorf("message is nil")
	}
	return r.db.WithContext(ctx).Create(message).Error
}

// GetMessage loads a message with its author, if any.
func (r *GormRepository) GetMessage(ctx context.Context, id uint) (*entity.DbMessage, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var message entity.DbMessage
	if err := r.db.WithContext(ctx).Preload("User").First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListMessages returns one page of messages and the number of matching rows.
func (r *GormRepository) ListMessages(ctx context.Context, query access.ScopedQuery) ([]entity.DbMessage, int64, error) {
	if err := r.ready(); err != nil {
		return nil, 0, err
	}

	tx := applyScope(r.db.WithContext(ctx).Model(&entity.DbMessage{}), query, "user_id", messageSearchColumns)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	messages, err := findPage(tx, query, func(row *entity.DbMessage) uint { return row.ID }, "User")
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// UpdateMessage sets the read flag and/or the reply.
func (r *GormRepository) UpdateMessage(ctx context.Context, id uint, updates entity.MessageUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}
	if updates.IsEmpty() {
		var count int64
		if err := r.db.WithContext(ctx).Model(&entity.DbMessage{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbMessage{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteMessage removes a message by ID.
func (r *GormRepository) DeleteMessage(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbMessage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountMessages returns the total message count.
func (r *GormRepository) CountMessages(ctx context.Context) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbMessage{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
