package model

import "time"

// SubjectPerformance 跨试卷累计的单科表现
type SubjectPerformance struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Tests    int     `json:"tests"`
	Accuracy float64 `json:"accuracy"`
}

// TrendPoint 提升趋势中的一个点
type TrendPoint struct {
	Date     time.Time `json:"date"`
	Score    float64   `json:"score"`
	Accuracy float64   `json:"accuracy"`
}

// RecentResult 最近成绩的精简视图
type RecentResult struct {
	ResultID   string    `json:"resultId"`
	PaperID    string    `json:"paperId"`
	PaperTitle string    `json:"paperTitle"`
	Subject    string    `json:"subject"`
	Score      float64   `json:"score"`
	Accuracy   float64   `json:"accuracy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// swagger:model StudentProgress
type StudentProgress struct {
	UUIDBase
	UserID string `gorm:"uniqueIndex;type:varchar(36);not null" json:"userId"`

	TotalTests      int     `gorm:"default:0" json:"totalTests"`
	AverageScore    float64 `gorm:"default:0" json:"averageScore"`
	AverageAccuracy float64 `gorm:"default:0" json:"averageAccuracy"`

	// 全量累加值，均值由它们推导，窗口裁剪不影响均值
	ScoreSum    float64 `gorm:"default:0" json:"-"`
	AccuracySum float64 `gorm:"default:0" json:"-"`

	SubjectPerformance map[string]SubjectPerformance `gorm:"serializer:json;type:json" json:"subjectPerformance"`
	ImprovementTrend   []TrendPoint                  `gorm:"serializer:json;type:json" json:"improvementTrend"` // 旧→新
	RecentResults      []RecentResult                `gorm:"serializer:json;type:json" json:"recentResults"`    // 新→旧

	// 乐观锁版本号，并发写入时丢失更新靠它兜底
	Version int64 `gorm:"default:0" json:"-"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}
