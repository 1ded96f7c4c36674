package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/erp/projectlink/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SwaggerAccess restricts the API documentation to the given IPs or CIDR
// ranges. An empty list lets every client through. Unparseable entries are
// ignored.
func SwaggerAccess(allowed []string) gin.HandlerFunc {
	var nets []*net.IPNet
	var ips []net.IP
	for _, entry := range allowed {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			if _, network, err := net.ParseCIDR(entry); err == nil {
				nets = append(nets, network)
			}
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			ips = append(ips, ip)
		}
	}

	return func(c *gin.Context) {
		if len(allowed) == 0 {
			c.Next()
			return
		}
		if !ipAllowed(net.ParseIP(c.ClientIP()), ips, nets) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden,
				"Access to API documentation is restricted",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}

func ipAllowed(ip net.IP, ips []net.IP, nets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, allowed := range ips {
		if allowed.Equal(ip) {
			return true
		}
	}
	for _, network := range nets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
