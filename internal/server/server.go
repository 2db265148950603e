package server

import (
	"context"
	goerrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	_ "feedbackdash/docs"
	"feedbackdash/internal/client"
	"feedbackdash/internal/config"
	"feedbackdash/internal/dashboard"
	"feedbackdash/pkg/log"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	client     *client.Client
	controller *dashboard.Controller
	activities bool
	flashes    *flashStore
	logger     *logrus.Entry
}

// NewServer wires the dashboard controller to the backend. recorder may be
// nil, in which case the activity endpoints report the log as disabled.
func NewServer(ctx context.Context, conf *config.Config, recorder dashboard.ActivityRecorder) (*Server, error) {
	cli := client.NewClient(client.Config{
		BaseUrl: conf.Backend.BaseUrl,
		Timeout: conf.Backend.Timeout,
	})
	s := &Server{
		conf:       conf,
		client:     cli,
		controller: dashboard.NewController(cli, recorder),
		activities: recorder != nil,
		flashes:    newFlashStore(),
		logger:     log.GetLogger(ctx),
	}

	return s, nil
}

func (s *Server) Controller() *dashboard.Controller {
	return s.controller
}

func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(log.HttpXRequestId)
		if requestId == "" {
			requestId = strings.ReplaceAll(uuid.New().String(), "-", "")
		}
		c.Header(log.HttpXRequestId, requestId)
		c.Request = c.Request.WithContext(log.WithRequestId(c.Request.Context(), requestId))
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := time.Now()
		c.Next()
		latency := time.Since(t)
		status := c.Writer.Status()

		log.GetLogger(c.Request.Context()).Info("ip: ", c.ClientIP(), " method: ", c.Request.Method, " path: ",
			c.Request.URL.Path, " status: ", status, " latency: ", latency)
	}
}

func (s *Server) Start() {
	gin.SetMode(gin.ReleaseMode)
	router := s.SetUpRouter()
	pprof.Register(router)
	s.httpServer = &http.Server{
		Addr:    s.conf.Addr,
		Handler: router,
	}

	var err error
	if s.conf.SSLCert != "" && s.conf.SSLKey != "" {
		logrus.Infof("start https server on %s", s.conf.Addr)
		err = s.httpServer.ListenAndServeTLS(s.conf.SSLCert, s.conf.SSLKey)
	} else {
		logrus.Infof("start http server on %s", s.conf.Addr)
		err = s.httpServer.ListenAndServe()
	}
	if err != nil && !goerrors.Is(err, http.ErrServerClosed) {
		logrus.Fatal(err)
	}
}

func (s *Server) Shutdown() {
	if s.httpServer == nil {
		return
	}
	err := s.httpServer.Shutdown(context.Background())
	if err != nil {
		logrus.Fatalf("server forced to shutdown: %v", err)
	}
}

type ErrorResponse struct {
	// 错误信息
	Error string `json:"error"`
}

func (s *Server) writeError(c *gin.Context, code int, err error) {
	c.JSON(code, ErrorResponse{
		Error: err.Error(),
	})
}
