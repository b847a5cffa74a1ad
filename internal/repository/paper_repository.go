package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type PaperRepository struct {
	DB *gorm.DB
}

func NewPaperRepository(db *gorm.DB) *PaperRepository {
	return &PaperRepository{DB: db}
}

func (r *PaperRepository) Create(paper *model.Paper) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		questions := paper.Questions
		paper.Questions = nil
		if err := tx.Create(paper).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].PaperID = paper.ID
			questions[i].Position = i
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		paper.Questions = questions
		return nil
	})
}

// FindByID 返回试卷及按顺序排列的题目
func (r *PaperRepository) FindByID(id string) (*model.Paper, error) {
	var paper model.Paper
	if err := r.DB.First(&paper, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Where("paper_id = ?", id).Order("position asc").Find(&paper.Questions).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

type PaperListRow struct {
	model.Paper
	QuestionCount int `json:"questionCount"`
}

func (r *PaperRepository) List(page, limit int, subject, examType string) ([]PaperListRow, int64, error) {
	query := r.DB.Model(&model.Paper{})
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if examType != "" {
		query = query.Where("exam_type = ?", examType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var papers []PaperListRow
	dbQuery := r.DB.Table("papers p").
		Select("p.*, (SELECT COUNT(*) FROM paper_questions q WHERE q.paper_id = p.id AND q.deleted_at IS NULL) as question_count").
		Where("p.deleted_at IS NULL")
	if subject != "" {
		dbQuery = dbQuery.Where("p.subject = ?", subject)
	}
	if examType != "" {
		dbQuery = dbQuery.Where("p.exam_type = ?", examType)
	}

	if limit > 0 {
		offset := (page - 1) * limit
		dbQuery = dbQuery.Offset(offset).Limit(limit)
	}

	err := dbQuery.Order("p.created_at desc").Scan(&papers).Error
	return papers, total, err
}

func (r *PaperRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("paper_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Paper{}, "id = ?", id).Error
	})
}
