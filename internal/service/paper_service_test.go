package service

import (
	"strings"
	"testing"
)

func validCreateReq() PaperCreateReq {
	return PaperCreateReq{
		Title:    "Algebra Mock 1",
		Subject:  "Mathematics",
		ExamType: "MockTest",
		Questions: []PaperQuestionReq{
			{
				QuestionText:  "2 + 2 = ?",
				Options:       map[string]string{"A": "3", "B": "4", "C": "5", "D": "6"},
				CorrectAnswer: "B",
				Difficulty:    "Easy",
			},
		},
	}
}

func TestValidatePaper(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PaperCreateReq)
		wantErr string
	}{
		{
			name:   "valid paper",
			mutate: func(r *PaperCreateReq) {},
		},
		{
			name: "no questions",
			mutate: func(r *PaperCreateReq) {
				r.Questions = nil
			},
			wantErr: "at least one question",
		},
		{
			name: "single option",
			mutate: func(r *PaperCreateReq) {
				r.Questions[0].Options = map[string]string{"A": "4"}
				r.Questions[0].CorrectAnswer = "A"
			},
			wantErr: "at least two options",
		},
		{
			name: "label outside allowed set",
			mutate: func(r *PaperCreateReq) {
				r.Questions[0].Options["E"] = "7"
			},
			wantErr: "outside allowed set",
		},
		{
			name: "correct answer not an option",
			mutate: func(r *PaperCreateReq) {
				r.Questions[0].Options = map[string]string{"A": "3", "B": "4"}
				r.Questions[0].CorrectAnswer = "C"
			},
			wantErr: "not one of its option labels",
		},
		{
			name: "invalid difficulty",
			mutate: func(r *PaperCreateReq) {
				r.Questions[0].Difficulty = "Impossible"
			},
			wantErr: "invalid difficulty",
		},
		{
			name: "empty difficulty defaults later",
			mutate: func(r *PaperCreateReq) {
				r.Questions[0].Difficulty = ""
			},
		},
		{
			name: "two options only is fine",
			mutate: func(r *PaperCreateReq) {
				r.Questions[0].Options = map[string]string{"A": "yes", "B": "no"}
				r.Questions[0].CorrectAnswer = "A"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateReq()
			tt.mutate(&req)

			err := validatePaper(&req)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
