package app

import (
	"exam_prep_backend/docs"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/middleware"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.Health)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	// 题库（学生视角不含答案）
	rg.GET("/papers", c.paper.ListPapers)
	rg.GET("/papers/:id", c.paper.GetPaper)

	// 考试会话
	sessions := rg.Group("/tests/sessions")
	{
		sessions.POST("", c.session.StartSession)
		sessions.GET("/:id", c.session.GetState)
		sessions.POST("/:id/answers", c.session.SetAnswer)
		sessions.DELETE("/:id/answers/:questionId", c.session.ClearAnswer)
		sessions.POST("/:id/mark/:questionId", c.session.ToggleMark)
		sessions.GET("/:id/palette", c.session.GetPalette)
		sessions.POST("/:id/submit", c.session.Submit)
	}

	// 成绩与进度
	rg.GET("/tests/results", c.result.ListMyResults)
	rg.GET("/tests/results/:id", c.result.GetResult)
	rg.GET("/progress", c.progress.GetProgress)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/papers", c.paper.CreatePaper)
		teacher.GET("/papers/:id/full", c.paper.GetFullPaper)
		teacher.POST("/papers/:id/source", c.paper.UploadSource)
		teacher.DELETE("/papers/:id", c.paper.DeletePaper)
	}
}
