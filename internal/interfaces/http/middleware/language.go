package middleware

import (
	"github.com/erp/projectlink/internal/infrastructure/i18n"
	"github.com/gin-gonic/gin"
)

// Language negotiates Accept-Language against the supported catalogs and
// stores the result on the request context for the translator.
func Language(tr *i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := tr.Match(c.GetHeader("Accept-Language"))
		c.Request = c.Request.WithContext(i18n.WithLanguage(c.Request.Context(), tag))
		c.Header("Content-Language", tag.String())
		c.Next()
	}
}
