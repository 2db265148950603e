package server

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"feedbackdash/internal/dao"
	"feedbackdash/internal/version"
)

const (
	tokenCookie  = "token"
	tokenSubject = "dashboard"
)

var (
	errAuthDisabled = errors.New("login not enabled")
	errBadPassword  = errors.New("invalid password")
)

type TokenClaims struct {
	jwt.RegisteredClaims
}

func (s *Server) secureCookies() bool {
	return s.conf.SSLCert != "" && s.conf.SSLKey != ""
}

func (s *Server) authEnabled() bool {
	return s.conf.Auth.Password != ""
}

func (s *Server) issueToken(now time.Time) (string, error) {
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    version.APP,
			Subject:   tokenSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.conf.Auth.TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.conf.Auth.JwtSecret))
}

func (s *Server) validToken(tokenStr string) bool {
	token, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.conf.Auth.JwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithSubject(tokenSubject), jwt.WithIssuer(version.APP))
	return err == nil && token.Valid
}

func requestToken(c *gin.Context) string {
	if tokenStr, err := c.Cookie(tokenCookie); err == nil && tokenStr != "" {
		return tokenStr
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return auth[len("Bearer "):]
	}
	return ""
}

// NeedAuth guards the dashboard when a password is configured. Pages
// redirect to the login form, API calls get 401.
func (s *Server) NeedAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.authEnabled() {
			c.Next()
			return
		}
		if tokenStr := requestToken(c); tokenStr != "" && s.validToken(tokenStr) {
			c.Next()
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
			return
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

func (s *Server) handleLoginPage(c *gin.Context) {
	if !s.authEnabled() {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"Error": ""})
}

// handleLogin 登录
// @Summary 登录
// @Description 使用面板密码登录，JSON请求返回token，表单请求写入cookie并跳转
// @Tags 认证
// @Accept json
// @Produce json
// @Param req body dao.LoginRequest true "登录请求"
// @Success 200 {object} dao.LoginResponse "登录成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 401 {object} ErrorResponse "密码错误"
// @Router /login [post]
func (s *Server) handleLogin(c *gin.Context) {
	isJSON := c.ContentType() == gin.MIMEJSON
	if !s.authEnabled() {
		s.writeError(c, http.StatusNotFound, errAuthDisabled)
		return
	}

	var req dao.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.conf.Auth.Password)) != 1 {
		if isJSON {
			s.writeError(c, http.StatusUnauthorized, errBadPassword)
		} else {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "كلمة المرور غير صحيحة"})
		}
		return
	}

	token, err := s.issueToken(time.Now())
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}
	if isJSON {
		c.JSON(http.StatusOK, dao.LoginResponse{Token: token})
		return
	}
	c.SetCookie(tokenCookie, token, int(s.conf.Auth.TokenTTL.Seconds()), "/", "", s.secureCookies(), true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleLogout(c *gin.Context) {
	c.SetCookie(tokenCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}
