package service

import (
	"context"
	"encoding/json"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"exam_prep_backend/pkg/monitoring"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ProgressService 把每份新成绩折叠进学生的累计档案。
// 并发提交（多设备、不同试卷同时交卷）用版本号乐观锁串行化，
// 有限次重试后放弃并报冲突，绝不写出半份更新。
type ProgressService struct {
	Repo *repository.ProgressRepository

	rdb *redis.Client
	cfg atomic.Pointer[config.Config]
}

func NewProgressService(repo *repository.ProgressRepository, rdb *redis.Client, cfg *config.Config) *ProgressService {
	s := &ProgressService{Repo: repo, rdb: rdb}
	s.cfg.Store(cfg)
	return s
}

func (s *ProgressService) UpdateConfig(cfg *config.Config) {
	s.cfg.Store(cfg)
}

func (s *ProgressService) progressCfg() config.ProgressConfig {
	return s.cfg.Load().Progress
}

// Record 单份成绩的原子折叠
func (s *ProgressService) Record(result *model.TestResult) error {
	pc := s.progressCfg()
	maxRetries := pc.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			monitoring.ProgressRetries.Inc()
			time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
		}

		progress, err := s.Repo.FindByUser(result.UserID)
		if err != nil {
			return err
		}

		isNew := progress.ID == ""
		expectedVersion := progress.Version
		applyResult(progress, result, pc.TrendSize, pc.RecentSize)

		if isNew {
			progress.Version = 1
			if err := s.Repo.Create(progress); err != nil {
				// 两个首份成绩撞在一起，只有一个 insert 成功，输家重读重试
				logger.Log.Debug("progress create conflict, retrying",
					zap.String("user_id", result.UserID), zap.Error(err))
				continue
			}
			s.invalidate(result.UserID)
			return nil
		}

		ok, err := s.Repo.UpdateWithVersion(progress, expectedVersion)
		if err != nil {
			return err
		}
		if ok {
			s.invalidate(result.UserID)
			return nil
		}
	}

	return util.ErrProgressConflict
}

// GetProgress 读取档案，热路径走 Redis
func (s *ProgressService) GetProgress(userID string) (*model.StudentProgress, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := progressCacheKey(userID)
	if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var cached model.StudentProgress
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return &cached, nil
		}
	}

	progress, err := s.Repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(progress); err == nil {
		s.rdb.Set(ctx, key, raw, 5*time.Minute)
	}
	return progress, nil
}

func (s *ProgressService) invalidate(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.rdb.Del(ctx, progressCacheKey(userID))
}

func progressCacheKey(userID string) string {
	return "exam:progress:" + userID
}

// applyResult 纯折叠：均值基于全量累加值而非截断窗口，
// 趋势保留最近 trendCap 条（旧→新），最近成绩保留 recentCap 条（新→旧）。
func applyResult(p *model.StudentProgress, r *model.TestResult, trendCap, recentCap int) {
	p.TotalTests++
	p.ScoreSum += r.Score
	p.AccuracySum += r.Accuracy
	n := float64(p.TotalTests)
	p.AverageScore = Round2(p.ScoreSum / n)
	p.AverageAccuracy = Round2(p.AccuracySum / n)

	if p.SubjectPerformance == nil {
		p.SubjectPerformance = make(map[string]model.SubjectPerformance)
	}
	for subject, sw := range r.SubjectWise {
		sp := p.SubjectPerformance[subject]
		sp.Total += sw.Total
		sp.Correct += sw.Correct
		sp.Tests++
		if sp.Total > 0 {
			sp.Accuracy = Round2(float64(sp.Correct) / float64(sp.Total) * 100)
		}
		p.SubjectPerformance[subject] = sp
	}

	p.ImprovementTrend = append(p.ImprovementTrend, model.TrendPoint{
		Date:     r.CreatedAt,
		Score:    r.Score,
		Accuracy: r.Accuracy,
	})
	if trendCap > 0 && len(p.ImprovementTrend) > trendCap {
		p.ImprovementTrend = p.ImprovementTrend[len(p.ImprovementTrend)-trendCap:]
	}

	p.RecentResults = append([]model.RecentResult{{
		ResultID:   r.ID,
		PaperID:    r.PaperID,
		PaperTitle: r.PaperTitle,
		Subject:    r.Subject,
		Score:      r.Score,
		Accuracy:   r.Accuracy,
		CreatedAt:  r.CreatedAt,
	}}, p.RecentResults...)
	if recentCap > 0 && len(p.RecentResults) > recentCap {
		p.RecentResults = p.RecentResults[:recentCap]
	}
}
