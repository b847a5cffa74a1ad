package controller

import (
	"errors"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Service *service.SessionService
}

func NewSessionController(svc *service.SessionService) *SessionController {
	return &SessionController{Service: svc}
}

type startSessionReq struct {
	PaperID string `json:"paperId" binding:"required"`
}

type setAnswerReq struct {
	QuestionID string `json:"questionId" binding:"required"`
	Option     string `json:"option" binding:"required"`
}

type submitReq struct {
	Answers        map[string]string `json:"answers"`
	ElapsedSeconds int               `json:"elapsedSeconds"`
}

// @Summary 开始考试会话
// @Tags 考试模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body startSessionReq true "试卷ID"
// @Success 201 {object} util.Response
// @Router /api/tests/sessions [post]
func (c *SessionController) StartSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req startSessionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.StartSession(req.PaperID, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPaperNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionAlreadyActive):
			util.Conflict(ctx, "an active session already exists for this paper, resume it instead")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, resp)
}

// @Summary 查询会话状态和剩余时间
// @Tags 考试模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/tests/sessions/{id} [get]
func (c *SessionController) GetState(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.Service.GetState(ctx.Param("id"), user.UserID)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 记录某题的选项
// @Tags 考试模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param body body setAnswerReq true "题目ID和选项"
// @Success 200 {object} util.Response
// @Router /api/tests/sessions/{id}/answers [post]
func (c *SessionController) SetAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req setAnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.SetAnswer(ctx.Param("id"), user.UserID, req.QuestionID, req.Option)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 清除某题的选项（标记保持不变）
// @Tags 考试模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param questionId path string true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/tests/sessions/{id}/answers/{questionId} [delete]
func (c *SessionController) ClearAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.Service.ClearAnswer(ctx.Param("id"), user.UserID, ctx.Param("questionId"))
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 切换某题的标记复查状态
// @Tags 考试模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param questionId path string true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/tests/sessions/{id}/mark/{questionId} [post]
func (c *SessionController) ToggleMark(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.Service.ToggleMarkForReview(ctx.Param("id"), user.UserID, ctx.Param("questionId"))
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 获取题目面板状态
// @Tags 考试模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param current query int false "当前题目下标" default(0)
// @Success 200 {object} util.Response
// @Router /api/tests/sessions/{id}/palette [get]
func (c *SessionController) GetPalette(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	currentIndex, _ := strconv.Atoi(ctx.DefaultQuery("current", "0"))

	statuses, err := c.Service.GetPalette(ctx.Param("id"), user.UserID, currentIndex)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"palette": statuses})
}

// @Summary 交卷
// @Description 重复交卷或与到时自动交卷撞车时返回同一个 result_id
// @Tags 考试模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param body body submitReq true "最终答案和客户端耗时（秒）"
// @Success 200 {object} util.Response
// @Router /api/tests/sessions/{id}/submit [post]
func (c *SessionController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req submitReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Submit(ctx.Param("id"), user.UserID, req.Answers, req.ElapsedSeconds)
	if err != nil {
		if errors.Is(err, util.ErrSessionExpired) {
			util.Gone(ctx, err.Error())
			return
		}
		c.writeSessionError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

func (c *SessionController) writeSessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrSessionTerminal):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrUnknownQuestion), errors.Is(err, util.ErrInvalidOption):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
