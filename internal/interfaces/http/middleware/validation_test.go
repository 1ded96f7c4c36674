package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/projectlink/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationErrors(t *testing.T) {
	type advanceInput struct {
		OrderIDs []string `json:"order_ids" binding:"required,min=1"`
		Method   string   `json:"method" binding:"required,oneof=fixed percentage"`
	}

	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req advanceInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("returns field details with json names", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test", strings.NewReader(`{"order_ids": [], "method": "bogus"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(RequestIDHeader, "req-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "req-1", resp.Error.RequestID)
		require.Len(t, resp.Error.Details, 2)
		assert.Equal(t, "order_ids", resp.Error.Details[0].Field)
		assert.Equal(t, "Must be at least 1", resp.Error.Details[0].Message)
		assert.Equal(t, "method", resp.Error.Details[1].Field)
		assert.Equal(t, "Must be one of: fixed percentage", resp.Error.Details[1].Message)
	})

	t.Run("returns success for valid input", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test", strings.NewReader(`{"order_ids": ["a"], "method": "fixed"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed JSON yields a validation response without details", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/test", strings.NewReader(`{`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeValidation)
		assert.NotContains(t, w.Body.String(), `"details"`)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type testStruct struct {
		Required string `validate:"required"`
		Min      string `validate:"min=5"`
		Max      string `validate:"max=3"`
		UUID     string `validate:"uuid"`
		OneOf    string `validate:"oneof=a b c"`
		GT       int    `validate:"gt=0"`
	}

	err := validator.New().Struct(testStruct{Min: "ab", Max: "abcdef", UUID: "nope", OneOf: "d"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	got := map[string]string{}
	for _, e := range verrs {
		got[e.Field()] = getValidationMessage(e)
	}
	assert.Equal(t, "This field is required", got["Required"])
	assert.Equal(t, "Must be at least 5 characters", got["Min"])
	assert.Equal(t, "Must be at most 3 characters", got["Max"])
	assert.Equal(t, "Invalid UUID format", got["UUID"])
	assert.Equal(t, "Must be one of: a b c", got["OneOf"])
	assert.Equal(t, "Must be greater than 0", got["GT"])
}
