package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
)

const (
	// ParamTenant is the path parameter carrying the tenant key.
	ParamTenant = "contribuinte"

	ContextTenantKey = "tenantKey"
	ContextSubject   = "subject"
)

// TenantGuard checks a bearer token whose "contribuinte" claim must match the
// tenant in the path. An empty secret disables the check; the tenant key is
// still placed in the context.
func TenantGuard(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantKey := c.Param(ParamTenant)
		c.Set(ContextTenantKey, tenantKey)

		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Token ausente.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token inválido.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Token inválido.")
			c.Abort()
			return
		}

		claimed, _ := claims[ParamTenant].(string)
		if claimed == "" || claimed != tenantKey {
			httperr.Forbidden(c, "tenant_mismatch", "Acesso negado a esta barbearia.")
			c.Abort()
			return
		}

		if sub, err := claims.GetSubject(); err == nil {
			c.Set(ContextSubject, sub)
		}

		c.Next()
	}
}

// TenantKey returns the key set by TenantGuard, falling back to the path.
func TenantKey(c *gin.Context) string {
	if v, ok := c.Get(ContextTenantKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return c.Param(ParamTenant)
}

// Subject returns the token subject, or "" when the guard is disabled.
func Subject(c *gin.Context) string {
	return c.GetString(ContextSubject)
}
