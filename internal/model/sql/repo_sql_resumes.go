package sql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"recruit/internal/access"
	"recruit/internal/entity"

	"gorm.io/gorm"
)

var resumeSearchColumns = []string{"name", "email", "phone", "position"}

// CreateResume persists a new resume.
func (r *GormRepository) CreateResume(ctx context.Context, resume *entity.DbResume) error {
	if err := r.ready(); err != nil {
		return err
	}
	if resume == nil {
		return fmt.Errorf("resume is nil")
	}
	if resume.UserID == 0 {
		return fmt.Errorf("resume owner is required")
	}
	if resume.Status == "" {
		resume.Status = entity.ResumeStatusPending
	}
	return r.db.WithContext(ctx).Create(resume).Error
}

// GetResume loads a resume with its submitter.
func (r *GormRepository) GetResume(ctx context.Context, id uint) (*entity.DbResume, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var resume entity.DbResume
	if err := r.db.WithContext(ctx).Preload("User").First(&resume, id).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}

// ListResumes returns one page of resumes and the number of matching rows.
func (r *GormRepository) ListResumes(ctx context.Context, query access.ScopedQuery) ([]entity.DbResume, int64, error) {
	if err := r.ready(); err != nil {
		return nil, 0, err
	}

	tx := applyScope(r.db.WithContext(ctx).Model(&entity.DbResume{}), query, "user_id", resumeSearchColumns)
	if query.Position != "" {
		tx = tx.Where("position = ?", query.Position)
	}
	if query.Status != "" {
		tx = tx.Where("status = ?", query.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	resumes, err := findPage(tx, query, func(row *entity.DbResume) uint { return row.ID }, "User")
	if err != nil {
		return nil, 0, err
	}
	return resumes, total, nil
}

// UpdateResume applies review fields. The owner is never touched.
func (r *GormRepository) UpdateResume(ctx context.Context, id uint, updates entity.ResumeUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}
	if updates.IsEmpty() {
		var count int64
		if err := r.db.WithContext(ctx).Model(&entity.DbResume{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbResume{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteResume removes a resume by ID.
func (r *GormRepository) DeleteResume(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbResume{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountResumes returns the total resume count.
func (r *GormRepository) CountResumes(ctx context.Context) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbResume{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type groupCount struct {
	GroupKey string
	Count    int64
}

// ResumeStats aggregates the dashboard numbers. since marks the start of "today".
func (r *GormRepository) ResumeStats(ctx context.Context, since time.Time) (*entity.ResumeStats, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)
	stats := &entity.ResumeStats{Positions: []entity.PositionCount{}}

	if err := db.Model(&entity.DbResume{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var byStatus []groupCount
	if err := db.Model(&entity.DbResume{}).
		Select("status AS group_key, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		switch row.GroupKey {
		case entity.ResumeStatusPending:
			stats.StatusCounts.Pending = row.Count
		case entity.ResumeStatusReviewing:
			stats.StatusCounts.Reviewing = row.Count
		case entity.ResumeStatusAccepted:
			stats.StatusCounts.Accepted = row.Count
		case entity.ResumeStatusRejected:
			stats.StatusCounts.Rejected = row.Count
		}
	}

	if err := db.Model(&entity.DbResume{}).Where("created_at >= ?", since).Count(&stats.TodayCount).Error; err != nil {
		return nil, err
	}

	var byPosition []groupCount
	if err := db.Model(&entity.DbResume{}).
		Select("position AS group_key, COUNT(*) AS count").
		Group("position").
		Scan(&byPosition).Error; err != nil {
		return nil, err
	}
	// 数量降序，数量相同按职位名称排序
	col := newNameCollator()
	sort.SliceStable(byPosition, func(i, j int) bool {
		if byPosition[i].Count != byPosition[j].Count {
			return byPosition[i].Count > byPosition[j].Count
		}
		return col.CompareString(byPosition[i].GroupKey, byPosition[j].GroupKey) < 0
	})
	for _, row := range byPosition {
		stats.Positions = append(stats.Positions, entity.PositionCount{Position: row.GroupKey, Count: row.Count})
	}
	return stats, nil
}
