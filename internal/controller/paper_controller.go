package controller

import (
	"errors"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PaperController struct {
	Service *service.PaperService
}

func NewPaperController(svc *service.PaperService) *PaperController {
	return &PaperController{Service: svc}
}

// @Summary 创建试卷
// @Tags 题库模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.PaperCreateReq true "试卷和题目"
// @Success 201 {object} util.Response
// @Router /api/papers [post]
func (c *PaperController) CreatePaper(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.PaperCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	paper, err := c.Service.CreatePaper(user.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, gin.H{"id": paper.ID, "title": paper.Title, "questionCount": len(paper.Questions)})
}

// @Summary 试卷列表
// @Tags 题库模块
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param subject query string false "按学科过滤"
// @Param examType query string false "按考试类型过滤"
// @Success 200 {object} util.Response
// @Router /api/papers [get]
func (c *PaperController) ListPapers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	rows, total, err := c.Service.List(page, limit, ctx.Query("subject"), ctx.Query("examType"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"papers": rows,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// @Summary 学生视角的试卷（不含答案）
// @Tags 题库模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/papers/{id} [get]
func (c *PaperController) GetPaper(ctx *gin.Context) {
	view, err := c.Service.GetStudentView(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPaperNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary 完整试卷（含答案，教师用）
// @Tags 题库模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/papers/{id}/full [get]
func (c *PaperController) GetFullPaper(ctx *gin.Context) {
	paper, err := c.Service.GetFull(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPaperNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, paper)
}

// @Summary 上传试卷原始文件存档
// @Tags 题库模块
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Param file formData file true "原始文件"
// @Success 200 {object} util.Response
// @Router /api/papers/{id}/source [post]
func (c *PaperController) UploadSource(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	url, err := c.Service.ArchiveSource(ctx.Request.Context(), ctx.Param("id"), file.Filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, util.ErrPaperNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}

// @Summary 删除试卷
// @Tags 题库模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/papers/{id} [delete]
func (c *PaperController) DeletePaper(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrPaperNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
