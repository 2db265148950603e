package server

import (
	goerrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"feedbackdash/internal/dao"
	"feedbackdash/internal/dashboard"
)

func (s *Server) runAction(c *gin.Context, name string, req dao.ActionRequest) (*dao.ActionResponse, error) {
	ui := &dashboard.RecordingPrompter{Confirmed: req.Confirmed}
	outcome, err := s.controller.Dispatch(c.Request.Context(), name, ui, req)
	if err != nil {
		return nil, err
	}

	alerts := ui.Alerts
	if alerts == nil {
		alerts = []string{}
	}
	return &dao.ActionResponse{
		Action:   name,
		Outcome:  string(outcome),
		Alerts:   alerts,
		Confirm:  ui.PendingConfirmation(),
		Navigate: s.controller.TakeNavigation(),
		View:     s.controller.View(),
	}, nil
}

// handleGetView 获取面板状态
// @Summary 获取面板状态
// @Description 返回面板当前显示的全部内容（统计、图表配置、预测结果、提交列表）
// @Tags 面板
// @Produce json
// @Success 200 {object} dao.ViewSpec "获取成功"
// @Router /api/v1/view [get]
func (s *Server) handleGetView(c *gin.Context) {
	c.JSON(http.StatusOK, s.controller.View())
}

// handleListActions 动作列表
// @Summary 列出可执行的动作
// @Description 返回动作分发表以及动作参数的JSON Schema
// @Tags 面板
// @Produce json
// @Success 200 {object} dao.ListActionsResponse "获取成功"
// @Router /api/v1/actions [get]
func (s *Server) handleListActions(c *gin.Context) {
	actions := s.controller.Actions()
	items := make([]dao.ActionSpec, 0, len(actions))
	for _, a := range actions {
		items = append(items, dao.ActionSpec{Name: a.Name, Description: a.Description})
	}

	reflector := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	c.JSON(http.StatusOK, dao.ListActionsResponse{
		Items:       items,
		InputSchema: reflector.Reflect(&dao.ActionRequest{}),
	})
}

// handleRunAction 执行动作
// @Summary 执行面板动作
// @Description 按名称执行动作。破坏性动作在未确认时返回confirm字段，携带confirmed=true重新提交以执行
// @Tags 面板
// @Accept json
// @Produce json
// @Param action path string true "动作名称"
// @Param req body dao.ActionRequest false "动作参数"
// @Success 200 {object} dao.ActionResponse "执行完成"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 404 {object} ErrorResponse "动作不存在"
// @Router /api/v1/actions/{action} [post]
func (s *Server) handleRunAction(c *gin.Context) {
	var req dao.ActionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.writeError(c, http.StatusBadRequest, err)
			return
		}
	}

	name := c.Param("action")
	resp, err := s.runAction(c, name, req)
	if goerrors.Is(err, dashboard.ErrUnknownAction) {
		s.writeError(c, http.StatusNotFound, fmt.Errorf("%w: %s", err, name))
		return
	} else if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
