package middleware

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
)

const (
	viewerKey   = "viewer"
	tokenCookie = "access_token"
)

// Claims 身份提供方签发的 token，sub 为用户 id
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IssueToken 签发 HS256 token（登录流程在外部，这里供工具与测试使用）
func IssueToken(secret []byte, issuer, userID, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken 校验签名、有效期，issuer 非空时还校验签发方
func ParseToken(secret []byte, issuer, token string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &claims, nil
}

func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if v, err := c.Cookie(tokenCookie); err == nil {
		return v
	}
	return ""
}

// Authenticate 解析 token 并放入上下文；无效或缺失时按匿名处理
func Authenticate(secret []byte, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := tokenFrom(c); tok != "" {
			if claims, err := ParseToken(secret, issuer, tok); err == nil {
				c.Set(viewerKey, &service.Viewer{ID: claims.Subject, Username: claims.Username})
			}
		}
		c.Next()
	}
}

// ViewerFrom 匿名请求返回 nil
func ViewerFrom(c *gin.Context) *service.Viewer {
	if v, ok := c.Get(viewerKey); ok {
		if viewer, ok := v.(*service.Viewer); ok {
			return viewer
		}
	}
	return nil
}

// LoginRedirect 跳转到登录入口并带上返回地址
func LoginRedirect(c *gin.Context, loginURL string) {
	sep := "?"
	if strings.Contains(loginURL, "?") {
		sep = "&"
	}
	response.Redirect(c, loginURL+sep+"next="+url.QueryEscape(c.Request.URL.RequestURI()))
}

// RequireLogin 匿名访问需要登录的操作时跳转登录页
func RequireLogin(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ViewerFrom(c).Authenticated() {
			LoginRedirect(c, loginURL)
			c.Abort()
			return
		}
		c.Next()
	}
}
