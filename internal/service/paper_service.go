package service

import (
	"context"
	"errors"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/util"
	"fmt"
	"io"

	"gorm.io/gorm"
)

type PaperService struct {
	Repo    *repository.PaperRepository
	Storage *StorageService
}

func NewPaperService(repo *repository.PaperRepository, storage *StorageService) *PaperService {
	return &PaperService{Repo: repo, Storage: storage}
}

type PaperQuestionReq struct {
	QuestionText  string            `json:"questionText" binding:"required"`
	Options       map[string]string `json:"options" binding:"required"`
	CorrectAnswer string            `json:"correctAnswer" binding:"required"`
	Difficulty    string            `json:"difficulty"`
	Subject       string            `json:"subject"`
	Explanation   string            `json:"explanation"`
}

type PaperCreateReq struct {
	Title      string             `json:"title" binding:"required"`
	Subject    string             `json:"subject" binding:"required"`
	ExamType   string             `json:"examType" binding:"required"`
	SubType    string             `json:"subType"`
	ClassLevel string             `json:"classLevel"`
	Year       string             `json:"year"`
	Language   string             `json:"language"`
	Questions  []PaperQuestionReq `json:"questions" binding:"required"`
}

// validatePaper 录入即校验：标签集、答案键、难度枚举在这里挡住，
// 判分引擎假设试卷已通过校验，不再防御性复查。
func validatePaper(req *PaperCreateReq) error {
	if len(req.Questions) == 0 {
		return errors.New("paper must contain at least one question")
	}

	validLabels := make(map[string]bool, len(model.OptionLabels))
	for _, l := range model.OptionLabels {
		validLabels[l] = true
	}

	for i, q := range req.Questions {
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: at least two options required", i+1)
		}
		for label := range q.Options {
			if !validLabels[label] {
				return fmt.Errorf("question %d: option label %q outside allowed set %v", i+1, label, model.OptionLabels)
			}
		}
		if _, ok := q.Options[q.CorrectAnswer]; !ok {
			return fmt.Errorf("question %d: correct answer %q is not one of its option labels", i+1, q.CorrectAnswer)
		}
		switch model.Difficulty(q.Difficulty) {
		case model.Easy, model.Medium, model.Hard, "":
		default:
			return fmt.Errorf("question %d: invalid difficulty %q", i+1, q.Difficulty)
		}
	}
	return nil
}

func (s *PaperService) CreatePaper(creatorID string, req PaperCreateReq) (*model.Paper, error) {
	if err := validatePaper(&req); err != nil {
		return nil, err
	}

	language := req.Language
	if language == "" {
		language = "English"
	}

	paper := &model.Paper{
		Title:      req.Title,
		Subject:    req.Subject,
		ExamType:   req.ExamType,
		SubType:    req.SubType,
		ClassLevel: req.ClassLevel,
		Year:       req.Year,
		Language:   language,
		CreatedBy:  creatorID,
		Questions:  make([]model.Question, len(req.Questions)),
	}

	for i, q := range req.Questions {
		difficulty := model.Difficulty(q.Difficulty)
		if difficulty == "" {
			difficulty = model.Medium
		}
		paper.Questions[i] = model.Question{
			UUIDBase:      model.UUIDBase{ID: model.GenerateUUID()},
			Position:      i,
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Difficulty:    difficulty,
			Subject:       q.Subject,
			Explanation:   q.Explanation,
		}
	}

	if err := s.Repo.Create(paper); err != nil {
		return nil, err
	}
	return paper, nil
}

// ArchiveSource 把原始上传文档（PDF/扫描件）存档到对象存储
func (s *PaperService) ArchiveSource(ctx context.Context, paperID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	paper, err := s.Repo.FindByID(paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrPaperNotFound
		}
		return "", err
	}

	url, err := s.Storage.Upload(ctx, "papers/"+paperID+"/"+filename, reader, size, contentType)
	if err != nil {
		return "", err
	}

	paper.SourceFile = url
	if err := s.Repo.DB.Model(&model.Paper{}).Where("id = ?", paperID).Update("source_file", url).Error; err != nil {
		return "", err
	}
	return url, nil
}

// StudentQuestionView 学生端题目视图，不含答案键和解析
type StudentQuestionView struct {
	QuestionID   string            `json:"questionId"`
	Position     int               `json:"position"`
	QuestionText string            `json:"questionText"`
	Options      map[string]string `json:"options"`
	Difficulty   model.Difficulty  `json:"difficulty"`
	Subject      string            `json:"subject,omitempty"`
}

type StudentPaperView struct {
	PaperID       string                `json:"paperId"`
	Title         string                `json:"title"`
	Subject       string                `json:"subject"`
	ExamType      string                `json:"examType"`
	SubType       string                `json:"subType,omitempty"`
	ClassLevel    string                `json:"classLevel,omitempty"`
	Year          string                `json:"year,omitempty"`
	Language      string                `json:"language"`
	QuestionCount int                   `json:"questionCount"`
	Questions     []StudentQuestionView `json:"questions,omitempty"`
}

func (s *PaperService) GetStudentView(paperID string) (*StudentPaperView, error) {
	paper, err := s.Repo.FindByID(paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPaperNotFound
		}
		return nil, err
	}

	view := &StudentPaperView{
		PaperID:       paper.ID,
		Title:         paper.Title,
		Subject:       paper.Subject,
		ExamType:      paper.ExamType,
		SubType:       paper.SubType,
		ClassLevel:    paper.ClassLevel,
		Year:          paper.Year,
		Language:      paper.Language,
		QuestionCount: len(paper.Questions),
		Questions:     make([]StudentQuestionView, len(paper.Questions)),
	}
	for i, q := range paper.Questions {
		view.Questions[i] = StudentQuestionView{
			QuestionID:   q.ID,
			Position:     q.Position,
			QuestionText: q.QuestionText,
			Options:      q.Options,
			Difficulty:   q.Difficulty,
			Subject:      q.Subject,
		}
	}
	return view, nil
}

func (s *PaperService) List(page, limit int, subject, examType string) ([]repository.PaperListRow, int64, error) {
	return s.Repo.List(page, limit, subject, examType)
}

func (s *PaperService) GetFull(paperID string) (*model.Paper, error) {
	paper, err := s.Repo.FindByID(paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPaperNotFound
		}
		return nil, err
	}
	return paper, nil
}

func (s *PaperService) Delete(paperID string) error {
	return s.Repo.Delete(paperID)
}
