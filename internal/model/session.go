package model

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionSubmitted SessionStatus = "submitted"
	SessionExpired   SessionStatus = "expired"
)

// swagger:model ExamSession
type ExamSession struct {
	UUIDBase
	PaperID   string        `gorm:"index;type:varchar(36);not null" json:"paperId"`
	UserID    string        `gorm:"index;type:varchar(36);not null" json:"userId"`
	StartedAt time.Time     `gorm:"not null" json:"startedAt"`
	Deadline  time.Time     `gorm:"not null" json:"deadline"` // 创建时一次性计算，之后不再改动
	Status    SessionStatus `gorm:"size:20;default:'active';index" json:"status"`
	ResultID  string        `gorm:"size:36" json:"resultId,omitempty"`

	// 固化的试卷快照，判分只读这里
	Snapshot PaperSnapshot `gorm:"serializer:json;type:json" json:"-"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}

// Remaining 剩余秒数，终态恒为 0
func (s *ExamSession) Remaining(now time.Time) int {
	if s.Status != SessionActive {
		return 0
	}
	remaining := int(s.Deadline.Sub(now).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}
