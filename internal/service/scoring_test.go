package service

import (
	"exam_prep_backend/internal/model"
	"fmt"
	"reflect"
	"testing"
)

func snapshotWith(questions ...model.SnapshotQuestion) *model.PaperSnapshot {
	return &model.PaperSnapshot{
		PaperID:   "paper-1",
		Title:     "Algebra Mock 1",
		Subject:   "Mathematics",
		ExamType:  "MockTest",
		Questions: questions,
	}
}

func question(id string, position int, correct, subject string) model.SnapshotQuestion {
	return model.SnapshotQuestion{
		QuestionID:    id,
		Position:      position,
		QuestionText:  "Q" + id,
		Options:       map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
		CorrectAnswer: correct,
		Subject:       subject,
	}
}

func TestGradeSnapshot(t *testing.T) {
	snap := snapshotWith(
		question("q1", 0, "A", ""),
		question("q2", 1, "B", ""),
		question("q3", 2, "C", ""),
	)

	tests := []struct {
		name            string
		answers         map[string]string
		wantCorrect     int
		wantWrong       int
		wantUnattempted int
		wantScore       float64
		wantAccuracy    float64
	}{
		{
			name:            "no answers",
			answers:         map[string]string{},
			wantUnattempted: 3,
		},
		{
			name:         "all correct",
			answers:      map[string]string{"q1": "A", "q2": "B", "q3": "C"},
			wantCorrect:  3,
			wantScore:    3,
			wantAccuracy: 100,
		},
		{
			name:            "one correct one wrong one unattempted",
			answers:         map[string]string{"q1": "A", "q2": "D"},
			wantCorrect:     1,
			wantWrong:       1,
			wantUnattempted: 1,
			wantScore:       1,
			wantAccuracy:    50,
		},
		{
			name:            "empty string counts as unattempted",
			answers:         map[string]string{"q1": ""},
			wantUnattempted: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := GradeSnapshot(snap, tt.answers, 120, DefaultScoringScheme())

			if r.CorrectAnswers != tt.wantCorrect {
				t.Errorf("CorrectAnswers = %d, want %d", r.CorrectAnswers, tt.wantCorrect)
			}
			if r.WrongAnswers != tt.wantWrong {
				t.Errorf("WrongAnswers = %d, want %d", r.WrongAnswers, tt.wantWrong)
			}
			if r.Unattempted != tt.wantUnattempted {
				t.Errorf("Unattempted = %d, want %d", r.Unattempted, tt.wantUnattempted)
			}
			if r.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", r.Score, tt.wantScore)
			}
			if r.Accuracy != tt.wantAccuracy {
				t.Errorf("Accuracy = %v, want %v", r.Accuracy, tt.wantAccuracy)
			}
			if r.TotalQuestions != 3 {
				t.Errorf("TotalQuestions = %d, want 3", r.TotalQuestions)
			}
		})
	}
}

func TestGradeSnapshotPenaltyScheme(t *testing.T) {
	snap := snapshotWith(
		question("q1", 0, "A", ""),
		question("q2", 1, "B", ""),
		question("q3", 2, "C", ""),
	)
	scheme := ScoringScheme{CorrectPoints: 4, WrongPenalty: 1}

	r := GradeSnapshot(snap, map[string]string{"q1": "A", "q2": "A"}, 60, scheme)

	if r.Score != 3 {
		t.Errorf("Score = %v, want 3 (one correct at +4, one wrong at -1)", r.Score)
	}
	if r.Accuracy != 50 {
		t.Errorf("Accuracy = %v, want 50", r.Accuracy)
	}
}

func TestGradeSnapshotAccuracyRounding(t *testing.T) {
	snap := snapshotWith(
		question("q1", 0, "A", ""),
		question("q2", 1, "A", ""),
		question("q3", 2, "A", ""),
	)

	// 1 correct of 3 attempted -> 33.333... -> 33.33
	r := GradeSnapshot(snap, map[string]string{"q1": "A", "q2": "B", "q3": "B"}, 30, DefaultScoringScheme())
	if r.Accuracy != 33.33 {
		t.Errorf("Accuracy = %v, want 33.33", r.Accuracy)
	}
}

func TestGradeSnapshotSubjectWise(t *testing.T) {
	snap := snapshotWith(
		question("q1", 0, "A", "Physics"),
		question("q2", 1, "B", "Physics"),
		question("q3", 2, "C", ""), // 回落到试卷科目
	)

	r := GradeSnapshot(snap, map[string]string{"q1": "A", "q2": "C", "q3": "C"}, 90, DefaultScoringScheme())

	want := map[string]model.SubjectScore{
		"Physics":     {Total: 2, Correct: 1, Wrong: 1},
		"Mathematics": {Total: 1, Correct: 1, Wrong: 0},
	}
	if !reflect.DeepEqual(r.SubjectWise, want) {
		t.Errorf("SubjectWise = %+v, want %+v", r.SubjectWise, want)
	}
}

func TestGradeSnapshotNegativeTimeClamped(t *testing.T) {
	snap := snapshotWith(question("q1", 0, "A", ""))
	r := GradeSnapshot(snap, nil, -5, DefaultScoringScheme())
	if r.TimeTaken != 0 {
		t.Errorf("TimeTaken = %d, want 0", r.TimeTaken)
	}
}

func TestGradeSnapshotDeterministic(t *testing.T) {
	questions := make([]model.SnapshotQuestion, 0, 10)
	answers := make(map[string]string, 10)
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("q%d", i)
		questions = append(questions, question(id, i, "B", ""))
		if i%2 == 0 {
			answers[id] = "B"
		}
	}
	snap := snapshotWith(questions...)

	first := GradeSnapshot(snap, answers, 300, DefaultScoringScheme())
	for i := 0; i < 5; i++ {
		again := GradeSnapshot(snap, answers, 300, DefaultScoringScheme())
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("grading is not deterministic: run %d differs", i)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{33.3333, 33.33},
		{66.6666, 66.67},
		{50, 50},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
