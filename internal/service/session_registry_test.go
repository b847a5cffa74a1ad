package service

import (
	"errors"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/util"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestEntry(t *testing.T, questions ...model.SnapshotQuestion) *sessionEntry {
	t.Helper()
	snap := snapshotWith(questions...)
	now := time.Now()
	return newSessionEntry("sess-1", "user-1", snap, now, now.Add(9*time.Minute))
}

func TestSetAnswerValidation(t *testing.T) {
	e := newTestEntry(t, question("q1", 0, "A", ""))

	if _, err := e.setAnswer("nope", "A"); !errors.Is(err, util.ErrUnknownQuestion) {
		t.Errorf("unknown question: got %v, want ErrUnknownQuestion", err)
	}
	if _, err := e.setAnswer("q1", "E"); !errors.Is(err, util.ErrInvalidOption) {
		t.Errorf("invalid option: got %v, want ErrInvalidOption", err)
	}

	st, err := e.setAnswer("q1", "B")
	if err != nil {
		t.Fatalf("setAnswer: %v", err)
	}
	if st.Selected != "B" {
		t.Errorf("Selected = %q, want B", st.Selected)
	}
}

func TestSetAnswerIdempotentAndOverwrite(t *testing.T) {
	e := newTestEntry(t, question("q1", 0, "A", ""))

	e.setAnswer("q1", "B")
	st, _ := e.setAnswer("q1", "B")
	if st.Selected != "B" || st.Marked {
		t.Errorf("repeated set changed state: %+v", st)
	}

	st, _ = e.setAnswer("q1", "C")
	if st.Selected != "C" {
		t.Errorf("overwrite: Selected = %q, want C", st.Selected)
	}
}

func TestClearAnswerKeepsMark(t *testing.T) {
	e := newTestEntry(t, question("q1", 0, "A", ""))

	e.setAnswer("q1", "B")
	e.toggleMark("q1")

	st, err := e.clearAnswer("q1")
	if err != nil {
		t.Fatalf("clearAnswer: %v", err)
	}
	if st.Selected != "" {
		t.Errorf("Selected = %q, want empty", st.Selected)
	}
	if !st.Marked {
		t.Error("clear answer must not drop the review mark")
	}

	// 清除未作答的题也合法
	if _, err := e.clearAnswer("q1"); err != nil {
		t.Errorf("second clear: %v", err)
	}
}

func TestToggleMarkIndependentOfAnswer(t *testing.T) {
	e := newTestEntry(t, question("q1", 0, "A", ""))

	st, _ := e.toggleMark("q1")
	if !st.Marked || st.Selected != "" {
		t.Errorf("mark without answer: %+v", st)
	}
	st, _ = e.toggleMark("q1")
	if st.Marked {
		t.Error("second toggle should unmark")
	}
}

func TestPalettePrecedence(t *testing.T) {
	e := newTestEntry(t,
		question("q0", 0, "A", ""),
		question("q1", 1, "A", ""),
		question("q2", 2, "A", ""),
		question("q3", 3, "A", ""),
		question("q4", 4, "A", ""),
	)

	e.setAnswer("q1", "B")
	e.toggleMark("q2")
	// 已作答且已标记的题按标记显示
	e.setAnswer("q3", "C")
	e.toggleMark("q3")
	// 当前题即使已作答也按 current 显示
	e.setAnswer("q0", "A")

	got := e.palette(0)
	want := []PaletteStatus{PaletteCurrent, PaletteAnswered, PaletteMarked, PaletteMarked, PaletteUnanswered}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("palette = %v, want %v", got, want)
	}

	status, err := e.classify("q3", 0)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if status != PaletteMarked {
		t.Errorf("classify(q3) = %v, want marked", status)
	}

	status, _ = e.classify("q3", 3)
	if status != PaletteCurrent {
		t.Errorf("classify(q3, current) = %v, want current", status)
	}
}

func TestSelectedAnswersSkipsCleared(t *testing.T) {
	e := newTestEntry(t,
		question("q1", 0, "A", ""),
		question("q2", 1, "A", ""),
	)

	e.setAnswer("q1", "B")
	e.setAnswer("q2", "C")
	e.clearAnswer("q2")

	got := e.selectedAnswers()
	want := map[string]string{"q1": "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("selectedAnswers = %v, want %v", got, want)
	}

	answered, marked := e.counts()
	if answered != 1 || marked != 0 {
		t.Errorf("counts = (%d, %d), want (1, 0)", answered, marked)
	}
}

func TestClaimExactlyOnce(t *testing.T) {
	e := newTestEntry(t, question("q1", 0, "A", ""))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		to := entrySubmitted
		if i%2 == 1 {
			to = entryExpired
		}
		wg.Add(1)
		go func(to int32) {
			defer wg.Done()
			if e.claim(to) {
				atomic.AddInt32(&wins, 1)
			}
		}(to)
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("claim won %d times, want exactly 1", wins)
	}
	if e.isActive() {
		t.Error("entry still active after claim")
	}
}

func TestRemainingClampsToZero(t *testing.T) {
	snap := snapshotWith(question("q1", 0, "A", ""))
	now := time.Now()
	e := newSessionEntry("sess-1", "user-1", snap, now.Add(-10*time.Minute), now.Add(-time.Minute))

	if r := e.remaining(time.Now()); r != 0 {
		t.Errorf("remaining past deadline = %d, want 0", r)
	}
}

func TestRegistryRejectsDuplicateUserPaper(t *testing.T) {
	r := newSessionRegistry()
	snap := snapshotWith(question("q1", 0, "A", ""))
	now := time.Now()

	first := newSessionEntry("sess-1", "user-1", snap, now, now.Add(time.Hour))
	second := newSessionEntry("sess-2", "user-1", snap, now, now.Add(time.Hour))

	if _, ok := r.register(first, func(*sessionEntry) {}); !ok {
		t.Fatal("first register failed")
	}
	existing, ok := r.register(second, func(*sessionEntry) {})
	if ok {
		t.Fatal("second register for same user and paper must fail")
	}
	if existing != first {
		t.Error("register should hand back the existing entry")
	}

	if got := r.activeFor("user-1", snap.PaperID); got != first {
		t.Error("activeFor should return the registered entry")
	}
	if r.size() != 1 {
		t.Errorf("size = %d, want 1", r.size())
	}
}

func TestRegistryTimerFiresOnce(t *testing.T) {
	r := newSessionRegistry()
	snap := snapshotWith(question("q1", 0, "A", ""))
	now := time.Now()
	e := newSessionEntry("sess-1", "user-1", snap, now, now.Add(20*time.Millisecond))

	var fired int32
	r.register(e, func(entry *sessionEntry) {
		if entry.claim(entryExpired) {
			atomic.AddInt32(&fired, 1)
		}
	})

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("expiry fired %d times, want 1", got)
	}
}

func TestRegisterPastDeadlineFiresImmediately(t *testing.T) {
	// 崩溃恢复会登记截止早已过去的会话，回调在 register 返回前就开跑，
	// 走和 finalize 相同的 stopTimer+remove 路径
	for i := 0; i < 200; i++ {
		r := newSessionRegistry()
		snap := snapshotWith(question("q1", 0, "A", ""))
		now := time.Now()
		e := newSessionEntry("sess-1", "user-1", snap, now.Add(-10*time.Minute), now.Add(-9*time.Minute))

		var fired int32
		done := make(chan struct{})
		r.register(e, func(entry *sessionEntry) {
			defer close(done)
			if entry.claim(entryExpired) {
				atomic.AddInt32(&fired, 1)
				entry.stopTimer()
				r.remove(entry)
			}
		})

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("iteration %d: expiry callback never fired for past deadline", i)
		}
		if got := atomic.LoadInt32(&fired); got != 1 {
			t.Fatalf("iteration %d: expiry fired %d times, want 1", i, got)
		}
		if r.size() != 0 {
			t.Fatalf("iteration %d: registry size = %d after expiry, want 0", i, r.size())
		}
	}
}

func TestRegistryRemoveCancelsTimer(t *testing.T) {
	r := newSessionRegistry()
	snap := snapshotWith(question("q1", 0, "A", ""))
	now := time.Now()
	e := newSessionEntry("sess-1", "user-1", snap, now, now.Add(50*time.Millisecond))

	var fired int32
	r.register(e, func(*sessionEntry) {
		atomic.AddInt32(&fired, 1)
	})

	if !e.claim(entrySubmitted) {
		t.Fatal("claim failed")
	}
	r.remove(e)

	time.Sleep(120 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 0 {
		t.Errorf("timer fired %d times after remove, want 0", got)
	}
	if r.size() != 0 {
		t.Errorf("size = %d after remove, want 0", r.size())
	}
	if r.get("sess-1") != nil {
		t.Error("entry still resolvable after remove")
	}
}

func TestConcurrentAnswerWrites(t *testing.T) {
	e := newTestEntry(t,
		question("q1", 0, "A", ""),
		question("q2", 1, "A", ""),
		question("q3", 2, "A", ""),
	)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				e.setAnswer("q1", "B")
			case 1:
				e.toggleMark("q2")
			case 2:
				e.setAnswer("q3", "C")
				e.clearAnswer("q3")
			}
		}(i)
	}
	wg.Wait()

	if got := e.selectedAnswers()["q1"]; got != "B" {
		t.Errorf("q1 = %q, want B", got)
	}
}
