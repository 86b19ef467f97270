package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engimate/backend/internal/app/models/dto"
	"github.com/engimate/backend/internal/pkg/apperrors"
	"github.com/engimate/backend/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterJSONFieldNames()
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
		field  string
	}{
		{"input error", apperrors.NewInputError("rank", "rank must be a positive number"), 400, dto.ErrorCodeValidationFailed, "rank"},
		{"wrapped input error", fmt.Errorf("profile: %w", apperrors.NewInputError("round", "bad round")), 400, dto.ErrorCodeValidationFailed, "round"},
		{"bad request", apperrors.NewBadRequestError("bad"), 400, dto.ErrorCodeValidationFailed, ""},
		{"store unavailable", apperrors.NewStoreUnavailableError(errors.New("dial tcp 10.0.0.1:5432: refused")), 503, dto.ErrorCodeDatabaseError, ""},
		{"not found", apperrors.NewResourceNotFoundError("college 9999 not found"), 404, dto.ErrorCodeResourceNotFound, ""},
		{"expired token", auth.ErrExpiredToken, 401, dto.ErrorCodeExpiredToken, ""},
		{"invalid token", fmt.Errorf("%w: signature", auth.ErrInvalidToken), 401, dto.ErrorCodeInvalidToken, ""},
		{"not verified", auth.ErrNotVerified, 403, dto.ErrorCodeForbidden, ""},
		{"unauthorized", apperrors.ErrUnauthorized, 401, dto.ErrorCodeUnauthorized, ""},
		{"cancelled", context.Canceled, StatusClientClosedRequest, dto.ErrorCodeRequestAborted, ""},
		{"unknown", errors.New("boom"), 500, dto.ErrorCodeInternalServer, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.field, resp.Error.Field)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestHandleAPIError_HidesStoreDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, apperrors.NewStoreUnavailableError(errors.New(`relation "MH_2025_26_CAP_1" does not exist`)))

	assert.NotContains(t, w.Body.String(), "MH_2025_26")
	resp := decodeError(t, w)
	assert.Equal(t, "database error", resp.Error.Message)
	assert.Equal(t, dto.ErrorSeverityCritical, resp.Error.Severity)
}

type bindTarget struct {
	SecondaryRank *int64 `json:"secondaryRank" binding:"required,gte=1"`
	Gender        string `json:"gender" binding:"required"`
}

func TestHandleBindError(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req bindTarget
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleBindError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("validation errors name the JSON field", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"secondaryRank":0,"gender":"Male"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "secondaryRank", resp.Error.Field)
		assert.Contains(t, resp.Error.Message, "at least 1")
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"gender":`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrorCodeValidationFailed, decodeError(t, w).Error.Code)
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), AccessLog())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeInternalServer, decodeError(t, w).Error.Code)
}

func TestRequireVerifiedIdentity(t *testing.T) {
	verifier := auth.NewTokenVerifier(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "engimate-auth"})
	r := gin.New()
	r.Use(RequestID(), NewAuthMiddleware(verifier).RequireVerifiedIdentity())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SubjectKey))
	})

	valid, err := verifier.IssueToken("student-1", "s@example.com", true, time.Hour)
	require.NoError(t, err)
	unverified, err := verifier.IssueToken("student-2", "u@example.com", false, time.Hour)
	require.NoError(t, err)
	expired, err := verifier.IssueToken("student-3", "e@example.com", true, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"bearer", "Bearer " + valid, http.StatusOK},
		{"raw token", valid, http.StatusOK},
		{"garbage", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"unverified", "Bearer " + unverified, http.StatusForbidden},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "student-1", w.Body.String())
			}
		})
	}
}
