package service

import (
	"errors"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/util"
	"testing"
	"time"
)

func TestSessionDurationPerQuestion(t *testing.T) {
	tests := []struct {
		perQuestion int
		count       int
		want        time.Duration
	}{
		{180, 1, 3 * time.Minute},
		{180, 3, 9 * time.Minute},
		{180, 10, 30 * time.Minute},
		{60, 5, 5 * time.Minute},
	}

	for _, tt := range tests {
		if got := sessionDuration(tt.perQuestion, tt.count); got != tt.want {
			t.Errorf("sessionDuration(%d, %d) = %v, want %v", tt.perQuestion, tt.count, got, tt.want)
		}
	}

	// 截止 = 开始 + 整场时长，创建后不再变
	now := time.Now()
	e := newSessionEntry("sess-1", "user-1", snapshotWith(
		question("q1", 0, "A", ""),
		question("q2", 1, "A", ""),
		question("q3", 2, "A", ""),
	), now, now.Add(sessionDuration(180, 3)))
	if got := e.deadline.Sub(e.startedAt); got != 9*time.Minute {
		t.Errorf("deadline-start = %v, want 9m for a 3-question paper", got)
	}
}

func TestGetStateDuringFinalize(t *testing.T) {
	s := NewSessionService(nil, nil, nil, nil, nil, &config.Config{})

	snap := snapshotWith(question("q1", 0, "A", ""))
	now := time.Now()
	e := newSessionEntry("sess-1", "user-1", snap, now, now.Add(time.Hour))
	if _, ok := s.registry.register(e, func(*sessionEntry) {}); !ok {
		t.Fatal("register failed")
	}

	if _, err := s.GetState("sess-1", "someone-else"); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("foreign user: got %v, want ErrPermissionDenied", err)
	}

	// 模拟胜者：内存 CAS 已赢、结果已出，数据库行可能还没写完
	if !e.claim(entrySubmitted) {
		t.Fatal("claim failed")
	}
	e.resultID = "res-1"
	close(e.done)

	resp, err := s.GetState("sess-1", "user-1")
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if resp.Status != model.SessionSubmitted {
		t.Errorf("Status = %q, want submitted", resp.Status)
	}
	if resp.ResultID != "res-1" {
		t.Errorf("ResultID = %q, want res-1", resp.ResultID)
	}
	if resp.Remaining != 0 {
		t.Errorf("Remaining = %d for terminal session, want 0", resp.Remaining)
	}
}
