package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/projectlink/internal/infrastructure/i18n"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguage(t *testing.T) {
	tr, err := i18n.NewTranslator("en")
	require.NoError(t, err)

	router := gin.New()
	router.Use(Language(tr))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, tr.Translate(c.Request.Context(), i18n.MsgPurchaseOrder))
	})

	tests := []struct {
		name           string
		acceptLanguage string
		contentLang    string
		body           string
	}{
		{"no header uses the default", "", "en", "Purchase Order"},
		{"chinese", "zh-CN,zh;q=0.9", "zh-Hans", "采购订单"},
		{"unsupported falls back", "fr-FR", "en", "Purchase Order"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.contentLang, w.Header().Get("Content-Language"))
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}
