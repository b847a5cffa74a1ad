package service

import (
	"exam_prep_backend/internal/model"
	"math"
)

// ScoringScheme 计分权重。默认 +1/0，不倒扣。
type ScoringScheme struct {
	CorrectPoints float64
	WrongPenalty  float64
}

func DefaultScoringScheme() ScoringScheme {
	return ScoringScheme{CorrectPoints: 1, WrongPenalty: 0}
}

// GradeSnapshot 对固化快照判分。纯函数：同一快照加同一答案映射，
// 任何时候得到的结果字段完全一致。answers 里未出现或为空的题计为未作答。
func GradeSnapshot(snap *model.PaperSnapshot, answers map[string]string, timeTaken int, scheme ScoringScheme) *model.TestResult {
	correct, wrong, unattempted := 0, 0, 0
	subjectWise := make(map[string]model.SubjectScore)

	for i := range snap.Questions {
		q := &snap.Questions[i]
		subject := q.EffectiveSubject(snap.Subject)

		sw := subjectWise[subject]
		sw.Total++

		selected := answers[q.QuestionID]
		switch {
		case selected == "":
			unattempted++
		case selected == q.CorrectAnswer:
			correct++
			sw.Correct++
		default:
			wrong++
			sw.Wrong++
		}

		subjectWise[subject] = sw
	}

	score := float64(correct)*scheme.CorrectPoints - float64(wrong)*scheme.WrongPenalty

	accuracy := 0.0
	if correct+wrong > 0 {
		accuracy = Round2(float64(correct) / float64(correct+wrong) * 100)
	}

	if timeTaken < 0 {
		timeTaken = 0
	}

	return &model.TestResult{
		PaperID:        snap.PaperID,
		PaperTitle:     snap.Title,
		ExamType:       snap.ExamType,
		Subject:        snap.Subject,
		TotalQuestions: len(snap.Questions),
		CorrectAnswers: correct,
		WrongAnswers:   wrong,
		Unattempted:    unattempted,
		Score:          score,
		Accuracy:       accuracy,
		TimeTaken:      timeTaken,
		SubjectWise:    subjectWise,
	}
}

// Round2 保留两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
