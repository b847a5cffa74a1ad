package service

import (
	"context"
	"encoding/json"
	"errors"
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
	"gorm.io/gorm"
)

// SessionService 掌管考试会话的生命周期：创建、作答、截止和判分。
// 截止时刻在创建时一次性算死（每题时长 × 题数），之后只读；
// 客户端上报的耗时只存档展示，永远不参与过期判断。
type SessionService struct {
	Papers   *repository.PaperRepository
	Sessions *repository.SessionRepository
	Results  *repository.ResultRepository
	Progress *ProgressService

	rdb      *redis.Client
	registry *sessionRegistry
	cfg      atomic.Pointer[config.Config]
}

func NewSessionService(
	papers *repository.PaperRepository,
	sessions *repository.SessionRepository,
	results *repository.ResultRepository,
	progress *ProgressService,
	rdb *redis.Client,
	cfg *config.Config,
) *SessionService {
	s := &SessionService{
		Papers:   papers,
		Sessions: sessions,
		Results:  results,
		Progress: progress,
		rdb:      rdb,
		registry: newSessionRegistry(),
	}
	s.cfg.Store(cfg)
	return s
}

// UpdateConfig 配置热更新回调
func (s *SessionService) UpdateConfig(cfg *config.Config) {
	s.cfg.Store(cfg)
}

func (s *SessionService) examCfg() config.ExamConfig {
	return s.cfg.Load().Exam
}

func (s *SessionService) scheme() ScoringScheme {
	exam := s.examCfg()
	return ScoringScheme{CorrectPoints: exam.CorrectPoints, WrongPenalty: exam.WrongPenalty}
}

// sessionDuration 整场时长 = 每题时长 × 题数，创建时算一次即为最终截止
func sessionDuration(secondsPerQuestion, questionCount int) time.Duration {
	return time.Duration(secondsPerQuestion*questionCount) * time.Second
}

// SessionQuestionView 考生视角的题目，不含答案和解析
type SessionQuestionView struct {
	QuestionID   string            `json:"questionId"`
	Position     int               `json:"position"`
	QuestionText string            `json:"questionText"`
	Options      map[string]string `json:"options"`
	Difficulty   model.Difficulty  `json:"difficulty"`
	Subject      string            `json:"subject,omitempty"`
}

type StartSessionResp struct {
	SessionID       string                `json:"sessionId"`
	PaperID         string                `json:"paperId"`
	Title           string                `json:"title"`
	Subject         string                `json:"subject"`
	ExamType        string                `json:"examType"`
	Language        string                `json:"language"`
	StartedAt       time.Time             `json:"startedAt"`
	Deadline        time.Time             `json:"deadline"`
	DeadlineSeconds int                   `json:"deadlineSeconds"`
	Questions       []SessionQuestionView `json:"questions"`
}

type SessionStateResp struct {
	SessionID     string              `json:"sessionId"`
	Status        model.SessionStatus `json:"status"`
	Remaining     int                 `json:"remaining"`
	AnsweredCount int                 `json:"answeredCount"`
	MarkedCount   int                 `json:"markedCount"`
	ResultID      string              `json:"resultId,omitempty"`
}

type SubmitResp struct {
	ResultID  string `json:"resultId"`
	Duplicate bool   `json:"duplicate"`
}

// StartSession 固化试卷快照并开启倒计时
func (s *SessionService) StartSession(paperID, userID string) (*StartSessionResp, error) {
	if e := s.registry.activeFor(userID, paperID); e != nil {
		return nil, util.ErrSessionAlreadyActive
	}

	// 数据库兜底检查，覆盖进程刚启动、恢复还没跑完的窗口
	if existing, err := s.Sessions.FindActiveByUserAndPaper(userID, paperID); err == nil && existing != nil {
		if s.registry.get(existing.ID) == nil {
			s.rehydrate(existing)
		}
		return nil, util.ErrSessionAlreadyActive
	}

	paper, err := s.Papers.FindByID(paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPaperNotFound
		}
		return nil, err
	}

	exam := s.examCfg()
	now := time.Now()
	duration := sessionDuration(exam.SecondsPerQuestion, len(paper.Questions))
	snap := paper.Snapshot()

	entry := newSessionEntry(model.GenerateUUID(), userID, snap, now, now.Add(duration))
	if _, ok := s.registry.register(entry, s.onDeadline); !ok {
		return nil, util.ErrSessionAlreadyActive
	}

	session := &model.ExamSession{
		UUIDBase:  model.UUIDBase{ID: entry.id},
		PaperID:   paperID,
		UserID:    userID,
		StartedAt: now,
		Deadline:  entry.deadline,
		Status:    model.SessionActive,
		Snapshot:  *snap,
	}
	if err := s.Sessions.Create(session); err != nil {
		s.registry.remove(entry)
		return nil, err
	}

	monitoring.ActiveSessions.Inc()
	logger.Log.Info("exam session started",
		zap.String("session_id", entry.id),
		zap.String("paper_id", paperID),
		zap.String("user_id", userID),
		zap.Int("questions", len(snap.Questions)),
		zap.Time("deadline", entry.deadline))

	return s.startResp(entry), nil
}

func (s *SessionService) startResp(entry *sessionEntry) *StartSessionResp {
	questions := make([]SessionQuestionView, len(entry.snapshot.Questions))
	for i, q := range entry.snapshot.Questions {
		questions[i] = SessionQuestionView{
			QuestionID:   q.QuestionID,
			Position:     q.Position,
			QuestionText: q.QuestionText,
			Options:      q.Options,
			Difficulty:   q.Difficulty,
			Subject:      q.Subject,
		}
	}
	return &StartSessionResp{
		SessionID:       entry.id,
		PaperID:         entry.paperID,
		Title:           entry.snapshot.Title,
		Subject:         entry.snapshot.Subject,
		ExamType:        entry.snapshot.ExamType,
		Language:        entry.snapshot.Language,
		StartedAt:       entry.startedAt,
		Deadline:        entry.deadline,
		DeadlineSeconds: int(entry.deadline.Sub(entry.startedAt).Seconds()),
		Questions:       questions,
	}
}

// GetState 只读，不触发任何状态转换
func (s *SessionService) GetState(sessionID, userID string) (*SessionStateResp, error) {
	if entry := s.registry.get(sessionID); entry != nil {
		if entry.userID != userID {
			return nil, util.ErrPermissionDenied
		}
		if entry.isActive() {
			answered, marked := entry.counts()
			return &SessionStateResp{
				SessionID:     sessionID,
				Status:        model.SessionActive,
				Remaining:     entry.remaining(time.Now()),
				AnsweredCount: answered,
				MarkedCount:   marked,
			}, nil
		}
		// 终态转换进行中：等胜者落库完成后按终态返回，
		// 不能回落到数据库行，那里可能还写着 active
		<-entry.done
		if entry.finalErr == nil {
			return &SessionStateResp{
				SessionID: sessionID,
				Status:    entry.currentStatus(),
				ResultID:  entry.resultID,
			}, nil
		}
	}

	session, err := s.loadSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return &SessionStateResp{
		SessionID: sessionID,
		Status:    session.Status,
		Remaining: session.Remaining(time.Now()),
		ResultID:  session.ResultID,
	}, nil
}

// AnswerStateResp 单题作答状态
type AnswerStateResp struct {
	QuestionID string `json:"questionId"`
	Selected   string `json:"selected,omitempty"`
	Marked     bool   `json:"marked"`
}

// SetAnswer 校验选项属于该题标签集后记录，幂等
func (s *SessionService) SetAnswer(sessionID, userID, questionID, option string) (*AnswerStateResp, error) {
	entry, err := s.activeEntry(sessionID, userID)
	if err != nil {
		return nil, err
	}
	st, err := entry.setAnswer(questionID, option)
	if err != nil {
		return nil, err
	}
	s.cacheAnswer(entry.id, questionID, st)
	return &AnswerStateResp{QuestionID: questionID, Selected: st.Selected, Marked: st.Marked}, nil
}

func (s *SessionService) ClearAnswer(sessionID, userID, questionID string) (*AnswerStateResp, error) {
	entry, err := s.activeEntry(sessionID, userID)
	if err != nil {
		return nil, err
	}
	st, err := entry.clearAnswer(questionID)
	if err != nil {
		return nil, err
	}
	s.cacheAnswer(entry.id, questionID, st)
	return &AnswerStateResp{QuestionID: questionID, Selected: st.Selected, Marked: st.Marked}, nil
}

func (s *SessionService) ToggleMarkForReview(sessionID, userID, questionID string) (*AnswerStateResp, error) {
	entry, err := s.activeEntry(sessionID, userID)
	if err != nil {
		return nil, err
	}
	st, err := entry.toggleMark(questionID)
	if err != nil {
		return nil, err
	}
	s.cacheAnswer(entry.id, questionID, st)
	return &AnswerStateResp{QuestionID: questionID, Selected: st.Selected, Marked: st.Marked}, nil
}

// ClassifyForPalette 单题面板状态
func (s *SessionService) ClassifyForPalette(sessionID, userID, questionID string, currentIndex int) (PaletteStatus, error) {
	entry, err := s.activeEntry(sessionID, userID)
	if err != nil {
		return "", err
	}
	return entry.classify(questionID, currentIndex)
}

// GetPalette 整卷面板状态，按题目顺序
func (s *SessionService) GetPalette(sessionID, userID string, currentIndex int) ([]PaletteStatus, error) {
	entry, err := s.activeEntry(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return entry.palette(currentIndex), nil
}

// Submit 手动交卷。answers 整体覆盖已有作答，elapsedSeconds 仅存档。
// 会话已是终态时不报错，直接返回已有 result_id（幂等重放）。
func (s *SessionService) Submit(sessionID, userID string, answers map[string]string, elapsedSeconds int) (*SubmitResp, error) {
	entry := s.registry.get(sessionID)
	if entry == nil {
		session, err := s.loadSession(sessionID, userID)
		if err != nil {
			return nil, err
		}
		if session.Status != model.SessionActive {
			return &SubmitResp{ResultID: session.ResultID, Duplicate: true}, nil
		}
		entry = s.rehydrate(session)
	}
	if entry.userID != userID {
		return nil, util.ErrPermissionDenied
	}

	exam := s.examCfg()
	now := time.Now()
	grace := time.Duration(exam.GraceSeconds) * time.Second
	if now.After(entry.deadline.Add(grace)) {
		// 宽限期外：走过期路径兜底（定时器延迟未触发时），拒绝本次手动交卷
		s.expireEntry(entry)
		return nil, util.ErrSessionExpired
	}

	// 整体校验后合并，任何一条不合法则整次拒绝且不改状态
	for qid, option := range answers {
		if err := entry.validateAnswer(qid, option); err != nil {
			return nil, err
		}
	}
	for qid, option := range answers {
		if st, err := entry.setAnswer(qid, option); err == nil {
			s.cacheAnswer(entry.id, qid, st)
		}
	}

	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	return s.finalize(entry, model.SessionSubmitted, elapsedSeconds, "manual")
}

// onDeadline 定时器回调，整场时长作为耗时入档
func (s *SessionService) onDeadline(entry *sessionEntry) {
	s.expireEntry(entry)
}

func (s *SessionService) expireEntry(entry *sessionEntry) {
	duration := int(entry.deadline.Sub(entry.startedAt).Seconds())
	resp, err := s.finalize(entry, model.SessionExpired, duration, "auto")
	if err != nil {
		logger.Log.Error("auto-expiry grading failed",
			zap.String("session_id", entry.id), zap.Error(err))
		return
	}
	if !resp.Duplicate {
		logger.Log.Info("session auto-expired",
			zap.String("session_id", entry.id),
			zap.String("result_id", resp.ResultID))
	}
}

// finalize 终态转换的唯一入口。内存 CAS 决出胜者，只有胜者判分落库；
// 输家等待胜者完成后复用同一个 result_id，保证一场会话恰好产生一份成绩。
func (s *SessionService) finalize(entry *sessionEntry, status model.SessionStatus, timeTaken int, trigger string) (*SubmitResp, error) {
	target := entrySubmitted
	if status == model.SessionExpired {
		target = entryExpired
	}

	if !entry.claim(target) {
		<-entry.done
		if entry.finalErr != nil {
			return nil, entry.finalErr
		}
		return &SubmitResp{ResultID: entry.resultID, Duplicate: true}, nil
	}

	entry.stopTimer()

	result := GradeSnapshot(entry.snapshot, entry.selectedAnswers(), timeTaken, s.scheme())
	result.ID = model.GenerateUUID()
	result.SessionID = entry.id
	result.UserID = entry.userID

	err := s.Results.Create(result)
	if err == nil {
		var won bool
		won, err = s.Sessions.MarkTerminal(entry.id, status, result.ID)
		if err == nil && !won {
			// 内存 CAS 赢了但数据库行已是终态，只可能是多实例部署踩到同一会话
			logger.Log.Warn("session row already terminal", zap.String("session_id", entry.id))
		}
	}

	if err != nil {
		entry.finalErr = err
		close(entry.done)
		s.registry.remove(entry)
		monitoring.ActiveSessions.Dec()
		return nil, err
	}

	entry.resultID = result.ID
	close(entry.done)
	s.registry.remove(entry)
	s.dropAnswerCache(entry.id)

	monitoring.ActiveSessions.Dec()
	monitoring.SessionsGraded.WithLabelValues(trigger).Inc()

	// 成绩是第一产物，进度折叠失败只记录，不回滚已产生的成绩
	if perr := s.Progress.Record(result); perr != nil {
		logger.Log.Error("progress update failed",
			zap.String("user_id", entry.userID),
			zap.String("result_id", result.ID),
			zap.Error(perr))
	}

	logger.Log.Info("session graded",
		zap.String("session_id", entry.id),
		zap.String("result_id", result.ID),
		zap.String("trigger", trigger),
		zap.Float64("score", result.Score))

	return &SubmitResp{ResultID: result.ID, Duplicate: false}, nil
}

// RecoverActiveSessions 重启后恢复仍在进行的会话，截止已过的立即过期
func (s *SessionService) RecoverActiveSessions() error {
	sessions, err := s.Sessions.FindActive()
	if err != nil {
		return err
	}
	for i := range sessions {
		s.rehydrate(&sessions[i])
	}
	if len(sessions) > 0 {
		logger.Log.Info("recovered active sessions", zap.Int("count", len(sessions)))
	}
	return nil
}

// rehydrate 从会话行重建内存条目，作答状态从 Redis 回读
func (s *SessionService) rehydrate(session *model.ExamSession) *sessionEntry {
	snap := session.Snapshot
	entry := newSessionEntry(session.ID, session.UserID, &snap, session.StartedAt, session.Deadline)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if cached, err := s.rdb.HGetAll(ctx, answerCacheKey(session.ID)).Result(); err == nil {
		for qid, raw := range cached {
			var st answerState
			if json.Unmarshal([]byte(raw), &st) == nil {
				entry.answers[qid] = &st
			}
		}
	}

	registered, ok := s.registry.register(entry, s.onDeadline)
	if !ok {
		return registered
	}
	monitoring.ActiveSessions.Inc()
	return entry
}

// activeEntry 作答操作的入口：必须是本人、必须仍在进行中
func (s *SessionService) activeEntry(sessionID, userID string) (*sessionEntry, error) {
	entry := s.registry.get(sessionID)
	if entry == nil {
		session, err := s.loadSession(sessionID, userID)
		if err != nil {
			return nil, err
		}
		if session.Status != model.SessionActive {
			return nil, util.ErrSessionTerminal
		}
		entry = s.rehydrate(session)
	}
	if entry.userID != userID {
		return nil, util.ErrPermissionDenied
	}
	if !entry.isActive() {
		return nil, util.ErrSessionTerminal
	}
	return entry, nil
}

func (s *SessionService) loadSession(sessionID, userID string) (*model.ExamSession, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return session, nil
}

func answerCacheKey(sessionID string) string {
	return "exam:session:" + sessionID + ":answers"
}

// cacheAnswer 作答状态透写 Redis，进程崩溃后 rehydrate 时回读
func (s *SessionService) cacheAnswer(sessionID, questionID string, st *answerState) {
	raw, err := json.Marshal(st)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	key := answerCacheKey(sessionID)
	if err := s.rdb.HSet(ctx, key, questionID, raw).Err(); err != nil {
		logger.Log.Warn("answer cache write failed",
			zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	s.rdb.Expire(ctx, key, 24*time.Hour)
}

func (s *SessionService) dropAnswerCache(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.rdb.Del(ctx, answerCacheKey(sessionID))
}
