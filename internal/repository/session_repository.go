package repository

import (
	"exam_prep_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.ExamSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id string) (*model.ExamSession, error) {
	var s model.ExamSession
	err := r.DB.First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindActiveByUserAndPaper 同一用户同一试卷最多一个进行中的会话
func (r *SessionRepository) FindActiveByUserAndPaper(userID, paperID string) (*model.ExamSession, error) {
	var s model.ExamSession
	err := r.DB.Where("user_id = ? AND paper_id = ? AND status = ?", userID, paperID, model.SessionActive).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindActive 进程重启后恢复用，加载所有仍标记为进行中的会话
func (r *SessionRepository) FindActive() ([]model.ExamSession, error) {
	var sessions []model.ExamSession
	err := r.DB.Where("status = ?", model.SessionActive).Find(&sessions).Error
	return sessions, err
}

// MarkTerminal 数据库侧的 compare-and-set：只有 active→终态的那一次更新
// 会生效，并发到达的第二个终态请求 RowsAffected 为 0。
func (r *SessionRepository) MarkTerminal(id string, status model.SessionStatus, resultID string) (bool, error) {
	res := r.DB.Model(&model.ExamSession{}).
		Where("id = ? AND status = ?", id, model.SessionActive).
		Updates(map[string]interface{}{"status": status, "result_id": resultID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
