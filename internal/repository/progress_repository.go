package repository

import (
	"errors"
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// FindByUser 没有记录时返回零值档案，不落库
func (r *ProgressRepository) FindByUser(userID string) (*model.StudentProgress, error) {
	var p model.StudentProgress
	err := r.DB.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.StudentProgress{
			UserID:             userID,
			SubjectPerformance: map[string]model.SubjectPerformance{},
			ImprovementTrend:   []model.TrendPoint{},
			RecentResults:      []model.RecentResult{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) Create(p *model.StudentProgress) error {
	return r.DB.Create(p).Error
}

// UpdateWithVersion 乐观锁更新，版本不匹配时返回 false，由调用方重试
func (r *ProgressRepository) UpdateWithVersion(p *model.StudentProgress, expectedVersion int64) (bool, error) {
	res := r.DB.Model(&model.StudentProgress{}).
		Where("user_id = ? AND version = ?", p.UserID, expectedVersion).
		Updates(map[string]interface{}{
			"total_tests":         p.TotalTests,
			"average_score":       p.AverageScore,
			"average_accuracy":    p.AverageAccuracy,
			"score_sum":           p.ScoreSum,
			"accuracy_sum":        p.AccuracySum,
			"subject_performance": p.SubjectPerformance,
			"improvement_trend":   p.ImprovementTrend,
			"recent_results":      p.RecentResults,
			"version":             expectedVersion + 1,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
