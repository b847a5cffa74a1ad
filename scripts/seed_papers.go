// 手动导入示例试卷脚本
//
// 新环境部署后空库没有任何试卷，跑一次本脚本写入一份示例卷，
// 方便前端联调和冒烟测试。重复执行会写入重复试卷，仅限开发环境使用。
//
// 用法: go run scripts/seed_papers.go

package main

import (
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/repository"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/pkg/database"
	"exam_prep_backend/pkg/logger"
	"log"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	papers := service.NewPaperService(repository.NewPaperRepository(db), nil)

	req := service.PaperCreateReq{
		Title:    "示例卷：基础数学 10 题",
		Subject:  "Mathematics",
		ExamType: "MockTest",
		Language: "English",
		Questions: []service.PaperQuestionReq{
			{QuestionText: "2 + 2 = ?", Options: map[string]string{"A": "3", "B": "4", "C": "5", "D": "6"}, CorrectAnswer: "B", Difficulty: "Easy"},
			{QuestionText: "12 x 12 = ?", Options: map[string]string{"A": "124", "B": "132", "C": "144", "D": "156"}, CorrectAnswer: "C", Difficulty: "Easy"},
			{QuestionText: "sqrt(81) = ?", Options: map[string]string{"A": "7", "B": "8", "C": "9", "D": "11"}, CorrectAnswer: "C", Difficulty: "Easy"},
			{QuestionText: "15% of 200 = ?", Options: map[string]string{"A": "25", "B": "30", "C": "35", "D": "40"}, CorrectAnswer: "B", Difficulty: "Medium"},
			{QuestionText: "x + 5 = 12, x = ?", Options: map[string]string{"A": "5", "B": "6", "C": "7", "D": "8"}, CorrectAnswer: "C", Difficulty: "Easy"},
			{QuestionText: "3^4 = ?", Options: map[string]string{"A": "27", "B": "64", "C": "81", "D": "243"}, CorrectAnswer: "C", Difficulty: "Medium"},
			{QuestionText: "LCM of 4 and 6 = ?", Options: map[string]string{"A": "10", "B": "12", "C": "18", "D": "24"}, CorrectAnswer: "B", Difficulty: "Medium"},
			{QuestionText: "0.25 as a fraction = ?", Options: map[string]string{"A": "1/2", "B": "1/3", "C": "1/4", "D": "1/5"}, CorrectAnswer: "C", Difficulty: "Easy"},
			{QuestionText: "Sum of angles in a triangle = ?", Options: map[string]string{"A": "90", "B": "180", "C": "270", "D": "360"}, CorrectAnswer: "B", Difficulty: "Easy"},
			{QuestionText: "7! / 5! = ?", Options: map[string]string{"A": "30", "B": "42", "C": "56", "D": "72"}, CorrectAnswer: "B", Difficulty: "Hard"},
		},
	}

	paper, err := papers.CreatePaper("seed-script", req)
	if err != nil {
		log.Fatalf("写入示例卷失败: %v", err)
	}

	log.Printf("示例卷已写入: id=%s, 题数=%d", paper.ID, len(paper.Questions))
}
