package server

import (
	"bytes"
	goerrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"feedbackdash/internal/chart"
)

// handleChartImage 图表图片
// @Summary 获取图表PNG
// @Description 服务端渲染当前的饼图或柱状图
// @Tags 面板
// @Produce png
// @Param file path string true "pie.png 或 bar.png"
// @Success 200 {file} binary "图片"
// @Failure 404 {object} ErrorResponse "暂无数据"
// @Router /charts/{file} [get]
func (s *Server) handleChartImage(c *gin.Context) {
	file := c.Param("file")
	kind := chart.Kind(strings.TrimSuffix(file, ".png"))
	if (kind != chart.KindPie && kind != chart.KindBar) || !strings.HasSuffix(file, ".png") {
		s.writeError(c, http.StatusNotFound, fmt.Errorf("unknown chart %s", file))
		return
	}

	var buf bytes.Buffer
	err := s.controller.RenderChartPNG(kind, &buf, s.conf.Chart.Width, s.conf.Chart.Height)
	if goerrors.Is(err, chart.ErrNoData) || goerrors.Is(err, chart.ErrDestroyed) {
		s.writeError(c, http.StatusNotFound, err)
		return
	} else if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
