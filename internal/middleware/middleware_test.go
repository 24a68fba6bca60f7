package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appAuth "github.com/yigit/studentdesk/internal/app/auth"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/auth"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
		field  string
	}{
		{"validation", apperrors.NewValidationError(map[string]string{"email": "email must be a valid email address"}), http.StatusBadRequest, dto.ErrorCodeValidationFailed, ""},
		{"constraint", &apperrors.ConstraintError{Field: "email", Constraint: "students_email_key"}, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "email"},
		{"not found", fmt.Errorf("get student: %w", apperrors.ErrStudentNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, ""},
		{"denied", fmt.Errorf("%w: nope", apperrors.ErrPermissionDenied), http.StatusForbidden, dto.ErrorCodeForbidden, ""},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, ""},
		{"no pending delete", apperrors.ErrNoPendingDelete, http.StatusConflict, dto.ErrorCodeNoPendingDelete, ""},
		{"not ready", apperrors.ErrDirectoryNotReady, http.StatusConflict, dto.ErrorCodeNotReady, ""},
		{"transport", apperrors.NewTransportError("list students", errors.New("connection refused")), http.StatusBadGateway, dto.ErrorCodeBackendUnavailable, ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.field, body.Error.Field)
		})
	}
}

func TestHandleAPIError_TransportHidesCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, apperrors.NewTransportError("list students", errors.New("dial tcp 10.0.0.5:5432: connection refused")))

	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func newAuthRouter(jwtService *auth.JWTService) *gin.Engine {
	m := NewAuthMiddleware(jwtService)
	r := gin.New()
	r.GET("/who", m.JWTAuth(), func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, identity)
	})
	r.GET("/directory", m.JWTAuth(), m.SectionRequired(appAuth.SectionDirectory), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	router := newAuthRouter(jwtService)

	identity := models.Identity{UserID: uuid.New(), Role: models.RoleProfessor, DisplayName: "Paul", Email: "paul@school.edu"}
	token, _, err := jwtService.GenerateAccessToken(identity)
	require.NoError(t, err)

	t.Run("header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got models.Identity
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, identity, got)
	})

	t.Run("query fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/who?token="+token, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/who", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("foreign signature", func(t *testing.T) {
		other := auth.NewJWTService(auth.JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "test"})
		forged, _, err := other.GenerateAccessToken(identity)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestSectionRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	router := newAuthRouter(jwtService)

	for role, want := range map[models.Role]int{
		models.RoleAdmin:     http.StatusNoContent,
		models.RoleProfessor: http.StatusNoContent,
		models.RoleStudent:   http.StatusForbidden,
	} {
		token, _, err := jwtService.GenerateAccessToken(models.Identity{UserID: uuid.New(), Role: role, Email: "x@school.edu"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/directory", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, string(role))
	}
}
