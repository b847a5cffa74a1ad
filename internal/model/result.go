package model

// SubjectScore 单科答题统计
type SubjectScore struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// swagger:model TestResult
type TestResult struct {
	UUIDBase
	SessionID  string `gorm:"uniqueIndex;type:varchar(36);not null" json:"sessionId"`
	PaperID    string `gorm:"index;type:varchar(36);not null" json:"paperId"`
	UserID     string `gorm:"index;type:varchar(36);not null" json:"userId"`
	PaperTitle string `gorm:"size:255" json:"paperTitle"`
	ExamType   string `gorm:"size:50" json:"examType"`
	Subject    string `gorm:"size:100" json:"subject"`

	TotalQuestions int `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers int `gorm:"not null" json:"correctAnswers"`
	WrongAnswers   int `gorm:"not null" json:"wrongAnswers"`
	Unattempted    int `gorm:"not null" json:"unattempted"`

	Score     float64 `gorm:"not null" json:"score"`
	Accuracy  float64 `gorm:"not null" json:"accuracy"` // 百分比，保留两位小数
	TimeTaken int     `gorm:"not null" json:"timeTaken"`

	SubjectWise map[string]SubjectScore `gorm:"serializer:json;type:json" json:"subjectWise"`
}

func (TestResult) TableName() string {
	return "test_results"
}
