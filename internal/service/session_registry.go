package service

import (
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/util"
	"sync"
	"sync/atomic"
	"time"
)

const (
	entryActive int32 = iota
	entrySubmitted
	entryExpired
)

// PaletteStatus 题目面板状态，优先级 current > marked > answered > unanswered
type PaletteStatus string

const (
	PaletteCurrent    PaletteStatus = "current"
	PaletteMarked     PaletteStatus = "marked"
	PaletteAnswered   PaletteStatus = "answered"
	PaletteUnanswered PaletteStatus = "unanswered"
)

// answerState 单题作答状态，首次触碰时惰性创建
type answerState struct {
	Selected string `json:"selected,omitempty"`
	Marked   bool   `json:"marked"`
}

// sessionEntry 一个进行中会话的内存态：固化快照、作答记录、
// 原子状态字和截止定时器。状态字上的 CAS 是 exactly-once 判分的根基：
// 手动交卷和到时自动交卷谁先抢到 active→终态，谁负责判分。
type sessionEntry struct {
	id        string
	userID    string
	paperID   string
	snapshot  *model.PaperSnapshot
	questions map[string]*model.SnapshotQuestion
	startedAt time.Time
	deadline  time.Time

	status int32 // atomic, entryActive/entrySubmitted/entryExpired

	mu      sync.Mutex
	answers map[string]*answerState
	timer   *time.Timer // mu 保护：截止已过时回调会和 register 并发跑

	// 胜者判分完毕后填充 resultID/finalErr 并 close(done)，
	// 输掉竞争的一方在 done 上等待后直接复用结果。
	done     chan struct{}
	resultID string
	finalErr error
}

func newSessionEntry(id, userID string, snap *model.PaperSnapshot, startedAt, deadline time.Time) *sessionEntry {
	questions := make(map[string]*model.SnapshotQuestion, len(snap.Questions))
	for i := range snap.Questions {
		questions[snap.Questions[i].QuestionID] = &snap.Questions[i]
	}
	return &sessionEntry{
		id:        id,
		userID:    userID,
		paperID:   snap.PaperID,
		snapshot:  snap,
		questions: questions,
		startedAt: startedAt,
		deadline:  deadline,
		answers:   make(map[string]*answerState),
		done:      make(chan struct{}),
	}
}

// claim active→终态的一次性转换
func (e *sessionEntry) claim(to int32) bool {
	return atomic.CompareAndSwapInt32(&e.status, entryActive, to)
}

func (e *sessionEntry) isActive() bool {
	return atomic.LoadInt32(&e.status) == entryActive
}

func (e *sessionEntry) currentStatus() model.SessionStatus {
	switch atomic.LoadInt32(&e.status) {
	case entrySubmitted:
		return model.SessionSubmitted
	case entryExpired:
		return model.SessionExpired
	default:
		return model.SessionActive
	}
}

func (e *sessionEntry) remaining(now time.Time) int {
	r := int(e.deadline.Sub(now).Seconds())
	if r < 0 {
		return 0
	}
	return r
}

func (e *sessionEntry) stopTimer() {
	e.mu.Lock()
	t := e.timer
	e.mu.Unlock()
	if t != nil {
		t.Stop()
	}
}

func (e *sessionEntry) validateAnswer(questionID, option string) error {
	q, ok := e.questions[questionID]
	if !ok {
		return util.ErrUnknownQuestion
	}
	if _, ok := q.Options[option]; !ok {
		return util.ErrInvalidOption
	}
	return nil
}

// setAnswer 幂等：重复写入相同选项状态不变
func (e *sessionEntry) setAnswer(questionID, option string) (*answerState, error) {
	if err := e.validateAnswer(questionID, option); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.touchLocked(questionID)
	st.Selected = option
	return &answerState{Selected: st.Selected, Marked: st.Marked}, nil
}

// clearAnswer 只清选项，标记保持不动
func (e *sessionEntry) clearAnswer(questionID string) (*answerState, error) {
	if _, ok := e.questions[questionID]; !ok {
		return nil, util.ErrUnknownQuestion
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.touchLocked(questionID)
	st.Selected = ""
	return &answerState{Selected: st.Selected, Marked: st.Marked}, nil
}

func (e *sessionEntry) toggleMark(questionID string) (*answerState, error) {
	if _, ok := e.questions[questionID]; !ok {
		return nil, util.ErrUnknownQuestion
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.touchLocked(questionID)
	st.Marked = !st.Marked
	return &answerState{Selected: st.Selected, Marked: st.Marked}, nil
}

func (e *sessionEntry) touchLocked(questionID string) *answerState {
	st, ok := e.answers[questionID]
	if !ok {
		st = &answerState{}
		e.answers[questionID] = st
	}
	return st
}

func (e *sessionEntry) classify(questionID string, currentIndex int) (PaletteStatus, error) {
	q, ok := e.questions[questionID]
	if !ok {
		return "", util.ErrUnknownQuestion
	}
	if q.Position == currentIndex {
		return PaletteCurrent, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.answers[questionID]
	switch {
	case st == nil:
		return PaletteUnanswered, nil
	case st.Marked:
		return PaletteMarked, nil
	case st.Selected != "":
		return PaletteAnswered, nil
	default:
		return PaletteUnanswered, nil
	}
}

// palette 按题目顺序给出整卷面板状态
func (e *sessionEntry) palette(currentIndex int) []PaletteStatus {
	statuses := make([]PaletteStatus, len(e.snapshot.Questions))
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.snapshot.Questions {
		q := &e.snapshot.Questions[i]
		st := e.answers[q.QuestionID]
		switch {
		case q.Position == currentIndex:
			statuses[i] = PaletteCurrent
		case st == nil:
			statuses[i] = PaletteUnanswered
		case st.Marked:
			statuses[i] = PaletteMarked
		case st.Selected != "":
			statuses[i] = PaletteAnswered
		default:
			statuses[i] = PaletteUnanswered
		}
	}
	return statuses
}

// selectedAnswers 判分用的选项映射副本
func (e *sessionEntry) selectedAnswers() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	answers := make(map[string]string, len(e.answers))
	for qid, st := range e.answers {
		if st.Selected != "" {
			answers[qid] = st.Selected
		}
	}
	return answers
}

func (e *sessionEntry) counts() (answered, marked int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, st := range e.answers {
		if st.Selected != "" {
			answered++
		}
		if st.Marked {
			marked++
		}
	}
	return
}

// sessionRegistry 进行中会话的注册表。每个会话独立持有自己的
// 截止定时器，终态转换时取消，定时器不会比会话活得久。
type sessionRegistry struct {
	mu          sync.RWMutex
	byID        map[string]*sessionEntry
	byUserPaper map[string]*sessionEntry
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		byID:        make(map[string]*sessionEntry),
		byUserPaper: make(map[string]*sessionEntry),
	}
}

func userPaperKey(userID, paperID string) string {
	return userID + "|" + paperID
}

// register 原子登记，同一用户同一试卷已有会话时登记失败并返回已有条目。
// onExpire 在截止时刻触发，恰好一次。
func (r *sessionRegistry) register(entry *sessionEntry, onExpire func(*sessionEntry)) (*sessionEntry, bool) {
	key := userPaperKey(entry.userID, entry.paperID)

	r.mu.Lock()
	if existing, ok := r.byUserPaper[key]; ok {
		r.mu.Unlock()
		return existing, false
	}
	if existing, ok := r.byID[entry.id]; ok {
		r.mu.Unlock()
		return existing, false
	}
	r.byID[entry.id] = entry
	r.byUserPaper[key] = entry
	r.mu.Unlock()

	// 恢复截止已过的会话时回调立刻在新 goroutine 里跑起来，
	// 先持锁发布 timer，回调里的 stopTimer 会等发布完成
	entry.mu.Lock()
	entry.timer = time.AfterFunc(time.Until(entry.deadline), func() {
		onExpire(entry)
	})
	entry.mu.Unlock()
	return entry, true
}

func (r *sessionRegistry) get(id string) *sessionEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

func (r *sessionRegistry) activeFor(userID, paperID string) *sessionEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byUserPaper[userPaperKey(userID, paperID)]
}

// remove 终态后摘除条目并取消定时器
func (r *sessionRegistry) remove(entry *sessionEntry) {
	entry.stopTimer()
	r.mu.Lock()
	delete(r.byID, entry.id)
	key := userPaperKey(entry.userID, entry.paperID)
	if r.byUserPaper[key] == entry {
		delete(r.byUserPaper, key)
	}
	r.mu.Unlock()
}

func (r *sessionRegistry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
