package server

import (
	"html/template"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (s *Server) SetUpRouter() *gin.Engine {
	router := gin.New()
	router.Use(RequestId())
	router.Use(Logger())
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.html")))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "ok",
		})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	router.GET("/login", s.handleLoginPage)
	router.POST("/login", s.handleLogin)
	router.POST("/logout", s.handleLogout)

	authed := router.Group("")
	authed.Use(s.NeedAuth())
	authed.GET("/", s.handleDashboardPage)
	authed.POST("/actions/:action", s.handleDashboardAction)
	authed.GET("/charts/:file", s.handleChartImage)
	authed.GET("/submissions/download", s.handleDownloadSubmissions)

	apiV1 := router.Group("/api/v1")
	apiV1.Use(s.NeedAuth())
	s.SetUpApiV1Router(apiV1)

	return router
}

func (s *Server) SetUpApiV1Router(apiV1 *gin.RouterGroup) {
	apiV1.GET("/view", s.handleGetView)
	apiV1.GET("/actions", s.handleListActions)
	apiV1.POST("/actions/:action", s.handleRunAction)
	apiV1.GET("/activities", s.handleListActivities)
}
