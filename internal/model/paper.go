package model

// Difficulty 题目难度
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// OptionLabels 选项标签的封闭集合，录入时强制校验
var OptionLabels = []string{"A", "B", "C", "D"}

// swagger:model Paper
type Paper struct {
	UUIDBase
	Title      string `gorm:"size:255;not null" json:"title"`
	Subject    string `gorm:"size:100;not null;index" json:"subject"`
	ExamType   string `gorm:"size:50;not null;index" json:"examType"`
	SubType    string `gorm:"size:50" json:"subType,omitempty"`
	ClassLevel string `gorm:"size:50" json:"classLevel,omitempty"`
	Year       string `gorm:"size:10" json:"year,omitempty"`
	Language   string `gorm:"size:50;default:'English'" json:"language"`
	CreatedBy  string `gorm:"size:36;index" json:"createdBy"`
	SourceFile string `gorm:"size:512" json:"sourceFile,omitempty"` // 原始上传文件的存档地址

	Questions []Question `gorm:"foreignKey:PaperID;references:ID" json:"questions,omitempty"`
}

func (Paper) TableName() string {
	return "papers"
}

// swagger:model Question
type Question struct {
	UUIDBase
	PaperID       string            `gorm:"index;type:varchar(36);not null" json:"paperId"`
	Position      int               `gorm:"not null" json:"position"`
	QuestionText  string            `gorm:"type:text;not null" json:"questionText"`
	Options       map[string]string `gorm:"serializer:json;type:json" json:"options"`
	CorrectAnswer string            `gorm:"size:5;not null" json:"correctAnswer"`
	Difficulty    Difficulty        `gorm:"size:20;default:'Medium'" json:"difficulty"`
	Subject       string            `gorm:"size:100" json:"subject,omitempty"` // 为空时继承试卷 subject
	Explanation   string            `gorm:"type:text" json:"explanation,omitempty"`
}

func (Question) TableName() string {
	return "paper_questions"
}

// PaperSnapshot 会话创建时固化的试卷快照，判分只依赖快照，
// 试卷后续被修改不影响已开始的会话。
type PaperSnapshot struct {
	PaperID   string             `json:"paperId"`
	Title     string             `json:"title"`
	Subject   string             `json:"subject"`
	ExamType  string             `json:"examType"`
	Language  string             `json:"language"`
	Questions []SnapshotQuestion `json:"questions"`
}

type SnapshotQuestion struct {
	QuestionID    string            `json:"questionId"`
	Position      int               `json:"position"`
	QuestionText  string            `json:"questionText"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
	Difficulty    Difficulty        `json:"difficulty"`
	Subject       string            `json:"subject,omitempty"`
	Explanation   string            `json:"explanation,omitempty"`
}

// EffectiveSubject 题目科目，缺省回落到试卷科目
func (q *SnapshotQuestion) EffectiveSubject(paperSubject string) string {
	if q.Subject != "" {
		return q.Subject
	}
	return paperSubject
}

// Snapshot 固化当前试卷内容
func (p *Paper) Snapshot() *PaperSnapshot {
	snap := &PaperSnapshot{
		PaperID:   p.ID,
		Title:     p.Title,
		Subject:   p.Subject,
		ExamType:  p.ExamType,
		Language:  p.Language,
		Questions: make([]SnapshotQuestion, len(p.Questions)),
	}
	for i, q := range p.Questions {
		options := make(map[string]string, len(q.Options))
		for k, v := range q.Options {
			options[k] = v
		}
		snap.Questions[i] = SnapshotQuestion{
			QuestionID:    q.ID,
			Position:      q.Position,
			QuestionText:  q.QuestionText,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
			Difficulty:    q.Difficulty,
			Subject:       q.Subject,
			Explanation:   q.Explanation,
		}
	}
	return snap
}
