//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"rental-booking/internal/domain/user"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/cookie"
	"rental-booking/internal/pkg/jwt"
	"rental-booking/internal/usecase"
	"rental-booking/tests/common/authtest"
	"rental-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
	tokens *authtest.JWTHelper
	userID uuid.UUID
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig().JWT
	s.tokens = authtest.NewJWTHelper(cfg)
	s.userID = uuid.New()

	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwt.NewService(cfg.Secret, cfg.Issuer, cfg.Duration)))

	whoami := func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": role.String()})
	}

	s.router = gin.New()
	authed := s.router.Group("", auth.RequireAuth())
	authed.GET("/me", auth.RequireRoleAtLeast(user.RoleCustomer), whoami)
	authed.GET("/admin", auth.RequireRoleAtLeast(user.RoleAdmin), whoami)
	s.router.GET("/no-auth-admin", auth.RequireRoleAtLeast(user.RoleAdmin), whoami)
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("success: bearer token", func() {
		token := s.tokens.GenerateToken(s.T(), s.userID, user.RoleCustomer)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, token)

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.userID.String(), body["id"])
		s.Equal("CUSTOMER", body["role"])
	})

	s.Run("success: cookie token", func() {
		token := s.tokens.GenerateToken(s.T(), s.userID, user.RoleCustomer)
		cookies := []*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: token}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "", httptest.WithCookies(cookies...))
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 401 Unauthorized", func() {
		testCases := []struct {
			name  string
			token string
			msg   string
		}{
			{name: "no token", token: "", msg: "Access token required"},
			{name: "garbage token", token: "not.a.jwt", msg: "Invalid or expired token"},
			{name: "expired token", token: s.tokens.CreateExpiredToken(s.T(), s.userID, user.RoleCustomer), msg: "Invalid or expired token"},
			{name: "foreign issuer", token: s.tokens.CreateForeignIssuerToken(s.T(), s.userID, user.RoleCustomer), msg: "Invalid or expired token"},
			{name: "unknown role", token: s.tokens.GenerateToken(s.T(), s.userID, user.Role("OPERATOR")), msg: "Invalid or expired token"},
			{name: "nil subject", token: s.tokens.GenerateToken(s.T(), uuid.Nil, user.RoleAdmin), msg: "Invalid or expired token"},
			{name: "subject mismatch", token: s.tokens.CreateMismatchedSubjectToken(s.T(), s.userID, user.RoleAdmin), msg: "Invalid or expired token"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, tc.token)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, tc.msg)
			})
		}
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRoleAtLeast() {
	testCases := []struct {
		name       string
		role       user.Role
		path       string
		expectCode int
	}{
		{name: "customer on customer route", role: user.RoleCustomer, path: "/me", expectCode: http.StatusOK},
		{name: "admin on customer route", role: user.RoleAdmin, path: "/me", expectCode: http.StatusOK},
		{name: "admin on admin route", role: user.RoleAdmin, path: "/admin", expectCode: http.StatusOK},
		{name: "customer on admin route", role: user.RoleCustomer, path: "/admin", expectCode: http.StatusForbidden},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			token := s.tokens.GenerateToken(s.T(), s.userID, tc.role)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.path, nil, token)
			if tc.expectCode == http.StatusOK {
				httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				return
			}
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Insufficient permissions")
		})
	}

	s.Run("error: 500 when mounted without RequireAuth", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/no-auth-admin", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
