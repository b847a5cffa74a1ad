package model

import "testing"

func TestSnapshotDeepCopiesOptions(t *testing.T) {
	paper := &Paper{
		Title:    "Physics Mock",
		Subject:  "Physics",
		ExamType: "MockTest",
		Questions: []Question{
			{
				Position:      0,
				QuestionText:  "Speed of light?",
				Options:       map[string]string{"A": "3e8 m/s", "B": "3e6 m/s"},
				CorrectAnswer: "A",
			},
		},
	}
	paper.ID = "paper-1"
	paper.Questions[0].ID = "q-1"

	snap := paper.Snapshot()

	// 快照固化后改动原试卷不得影响快照
	paper.Questions[0].Options["A"] = "changed"
	paper.Questions[0].CorrectAnswer = "B"

	if snap.Questions[0].Options["A"] != "3e8 m/s" {
		t.Error("snapshot shares option map with live paper")
	}
	if snap.Questions[0].CorrectAnswer != "A" {
		t.Error("snapshot answer key changed after paper edit")
	}
	if snap.PaperID != "paper-1" || snap.Questions[0].QuestionID != "q-1" {
		t.Errorf("snapshot ids not carried: %+v", snap)
	}
}

func TestEffectiveSubjectFallback(t *testing.T) {
	q := SnapshotQuestion{Subject: ""}
	if got := q.EffectiveSubject("Mathematics"); got != "Mathematics" {
		t.Errorf("EffectiveSubject = %q, want Mathematics", got)
	}

	q.Subject = "Physics"
	if got := q.EffectiveSubject("Mathematics"); got != "Physics" {
		t.Errorf("EffectiveSubject = %q, want Physics", got)
	}
}
