// @title 考试备考后端 API
// @version 1.0
// @description 限时选择题考试系统的后端服务器：会话控制、答题跟踪、到时判定、判分与学习进度统计。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"exam_prep_backend/internal/app"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/pkg/configwatcher"
	"exam_prep_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	configPath := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 配置文件热更新：考试时长、判分方案等改动无需重启
	go configwatcher.WatchConfig(*configPath+"/config.yaml", application.ApplyConfig)

	application.Run()
}
