package service

import (
	"exam_prep_backend/internal/model"
	"fmt"
	"testing"
	"time"
)

func resultWith(score, accuracy float64, created time.Time) *model.TestResult {
	r := &model.TestResult{
		PaperID:    "paper-1",
		PaperTitle: "Algebra Mock 1",
		Subject:    "Mathematics",
		Score:      score,
		Accuracy:   accuracy,
	}
	r.ID = fmt.Sprintf("res-%v-%v", score, accuracy)
	r.CreatedAt = created
	return r
}

func TestApplyResultRunningAverages(t *testing.T) {
	p := &model.StudentProgress{}
	now := time.Now()

	applyResult(p, resultWith(5, 50, now), 20, 10)
	applyResult(p, resultWith(8, 80, now.Add(time.Hour)), 20, 10)

	if p.TotalTests != 2 {
		t.Errorf("TotalTests = %d, want 2", p.TotalTests)
	}
	if p.AverageScore != 6.5 {
		t.Errorf("AverageScore = %v, want 6.5", p.AverageScore)
	}
	if p.AverageAccuracy != 65 {
		t.Errorf("AverageAccuracy = %v, want 65", p.AverageAccuracy)
	}
}

func TestApplyResultTrendOrderAndCap(t *testing.T) {
	p := &model.StudentProgress{}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		applyResult(p, resultWith(float64(i), 50, base.AddDate(0, 0, i)), 20, 10)
	}

	if len(p.ImprovementTrend) != 20 {
		t.Fatalf("trend length = %d, want 20", len(p.ImprovementTrend))
	}
	// 裁掉最旧的 5 条，剩下 5..24，旧→新
	if p.ImprovementTrend[0].Score != 5 {
		t.Errorf("oldest trend score = %v, want 5", p.ImprovementTrend[0].Score)
	}
	if p.ImprovementTrend[19].Score != 24 {
		t.Errorf("newest trend score = %v, want 24", p.ImprovementTrend[19].Score)
	}

	// 均值仍基于全部 25 份成绩，不受窗口裁剪影响
	if p.AverageScore != 12 {
		t.Errorf("AverageScore = %v, want 12 (mean of 0..24)", p.AverageScore)
	}
}

func TestApplyResultRecentNewestFirst(t *testing.T) {
	p := &model.StudentProgress{}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		applyResult(p, resultWith(float64(i), 50, base.AddDate(0, 0, i)), 20, 10)
	}

	if len(p.RecentResults) != 10 {
		t.Fatalf("recent length = %d, want 10", len(p.RecentResults))
	}
	if p.RecentResults[0].Score != 11 {
		t.Errorf("newest recent score = %v, want 11", p.RecentResults[0].Score)
	}
	if p.RecentResults[9].Score != 2 {
		t.Errorf("oldest kept recent score = %v, want 2", p.RecentResults[9].Score)
	}
}

func TestApplyResultSubjectMerge(t *testing.T) {
	p := &model.StudentProgress{}
	now := time.Now()

	first := resultWith(2, 66.67, now)
	first.SubjectWise = map[string]model.SubjectScore{
		"Physics": {Total: 3, Correct: 2, Wrong: 1},
	}
	second := resultWith(1, 50, now.Add(time.Hour))
	second.SubjectWise = map[string]model.SubjectScore{
		"Physics":   {Total: 2, Correct: 1, Wrong: 1},
		"Chemistry": {Total: 4, Correct: 4, Wrong: 0},
	}

	applyResult(p, first, 20, 10)
	applyResult(p, second, 20, 10)

	physics := p.SubjectPerformance["Physics"]
	if physics.Total != 5 || physics.Correct != 3 || physics.Tests != 2 {
		t.Errorf("Physics = %+v, want Total 5, Correct 3, Tests 2", physics)
	}
	if physics.Accuracy != 60 {
		t.Errorf("Physics.Accuracy = %v, want 60", physics.Accuracy)
	}

	chemistry := p.SubjectPerformance["Chemistry"]
	if chemistry.Total != 4 || chemistry.Correct != 4 || chemistry.Tests != 1 {
		t.Errorf("Chemistry = %+v, want Total 4, Correct 4, Tests 1", chemistry)
	}
	if chemistry.Accuracy != 100 {
		t.Errorf("Chemistry.Accuracy = %v, want 100", chemistry.Accuracy)
	}
}

func TestApplyResultFirstResult(t *testing.T) {
	p := &model.StudentProgress{}
	now := time.Now()

	applyResult(p, resultWith(7, 70, now), 20, 10)

	if p.TotalTests != 1 || p.AverageScore != 7 || p.AverageAccuracy != 70 {
		t.Errorf("first fold: %+v", p)
	}
	if len(p.ImprovementTrend) != 1 || len(p.RecentResults) != 1 {
		t.Errorf("trend/recent lengths = %d/%d, want 1/1",
			len(p.ImprovementTrend), len(p.RecentResults))
	}
}
