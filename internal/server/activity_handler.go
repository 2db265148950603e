package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"feedbackdash/internal/dao"
	"feedbackdash/internal/model"
)

const defaultActivityLimit = 50

// handleListActivities 操作记录
// @Summary 获取操作记录
// @Description 按时间倒序返回面板上执行过的动作
// @Tags 面板
// @Produce json
// @Param start query int false "分页开始位置"
// @Param limit query int false "分页大小" default(50)
// @Success 200 {object} dao.ListActivitiesResponse "获取成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 404 {object} ErrorResponse "未启用操作记录"
// @Failure 500 {object} ErrorResponse "内部服务器错误"
// @Router /api/v1/activities [get]
func (s *Server) handleListActivities(c *gin.Context) {
	if !s.activities {
		s.writeError(c, http.StatusNotFound, fmt.Errorf("activity log not enabled"))
		return
	}

	var req dao.ListActivitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}
	if req.Limit == 0 {
		req.Limit = defaultActivityLimit
	}

	items, total, err := model.ListActivities(req.Start, req.Limit)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}

	resp := dao.ListActivitiesResponse{
		Total: total,
		Items: make([]dao.ActivitySpec, 0, len(items)),
	}
	for _, a := range items {
		resp.Items = append(resp.Items, dao.ActivitySpec{
			Id:          a.Id,
			Action:      a.Action,
			Outcome:     a.Outcome,
			Detail:      a.Detail,
			CreatedTime: a.CreatedTime.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, resp)
}
