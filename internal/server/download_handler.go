package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultCSVDisposition = `attachment; filename="submissions.csv"`

// handleDownloadSubmissions 下载提交记录
// @Summary 下载提交记录CSV
// @Description 从分析服务流式转发提交记录CSV
// @Tags 提交记录
// @Produce text/csv
// @Success 200 {file} binary "CSV文件"
// @Failure 502 {object} ErrorResponse "分析服务不可用"
// @Router /submissions/download [get]
func (s *Server) handleDownloadSubmissions(c *gin.Context) {
	resp, err := s.client.OpenCSV(c.Request.Context())
	if err != nil {
		s.logger.Warnf("open csv export failed: %v", err)
		s.writeError(c, http.StatusBadGateway, err)
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/csv"
	}
	disposition := resp.Header.Get("Content-Disposition")
	if disposition == "" {
		disposition = defaultCSVDisposition
	}
	c.DataFromReader(http.StatusOK, resp.ContentLength, contentType, resp.Body, map[string]string{
		"Content-Disposition": disposition,
	})
}
