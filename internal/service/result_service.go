package service

import (
	"context"
	"encoding/json"
	"errors"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type ResultService struct {
	Repo *repository.ResultRepository

	rdb *redis.Client
}

func NewResultService(repo *repository.ResultRepository, rdb *redis.Client) *ResultService {
	return &ResultService{Repo: repo, rdb: rdb}
}

// GetResult 成绩不可变，放心缓存。学生只能看自己的，教师和管理员不受限。
func (s *ResultService) GetResult(resultID, requesterID string, role model.UserRole) (*model.TestResult, error) {
	result, err := s.fetch(resultID)
	if err != nil {
		return nil, err
	}
	if role == model.Student && result.UserID != requesterID {
		return nil, util.ErrPermissionDenied
	}
	return result, nil
}

func (s *ResultService) fetch(resultID string) (*model.TestResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := resultCacheKey(resultID)
	if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var cached model.TestResult
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return &cached, nil
		}
	}

	result, err := s.Repo.FindByID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, err
	}

	if raw, err := json.Marshal(result); err == nil {
		s.rdb.Set(ctx, key, raw, 10*time.Minute)
	}
	return result, nil
}

func (s *ResultService) ListMyResults(userID string) ([]model.TestResult, error) {
	return s.Repo.ListByUser(userID, 100)
}

func resultCacheKey(resultID string) string {
	return "exam:result:" + resultID
}
