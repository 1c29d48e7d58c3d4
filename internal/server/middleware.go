package server

import (
	"strings"

	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/tenantctx"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const tenantHeader = "X-Tenant-ID"

// TenantRequired resolves the tenant from the X-Tenant-ID header into the
// request context. Missing or malformed headers end the request with 401.
func (s *Server) TenantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(tenantHeader))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		tenantID, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := tenantctx.WithTenantID(c.Request.Context(), int64(tenantID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func tenantFrom(c *gin.Context) (snowflake.ID, bool) {
	return tenantctx.TenantIDFromContext(c.Request.Context())
}

func pathID(c *gin.Context, name string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(c.Param(name)))
}
