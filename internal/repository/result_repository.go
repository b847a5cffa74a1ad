package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) Create(result *model.TestResult) error {
	return r.DB.Create(result).Error
}

func (r *ResultRepository) FindByID(id string) (*model.TestResult, error) {
	var result model.TestResult
	err := r.DB.First(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) FindBySessionID(sessionID string) (*model.TestResult, error) {
	var result model.TestResult
	err := r.DB.First(&result, "session_id = ?", sessionID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) ListByUser(userID string, limit int) ([]model.TestResult, error) {
	var results []model.TestResult
	q := r.DB.Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&results).Error
	return results, err
}
