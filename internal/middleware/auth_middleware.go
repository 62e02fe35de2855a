package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"hrms/internal/shared/apperror"
	"hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token and exposes the actor's
// hrms_id and roles to downstream handlers. Role contents are trusted as
// issued; this layer does not consult the role store.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			code := "INVALID_TOKEN"
			message := "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				code = "TOKEN_EXPIRED"
				message = "Token has expired"
			}
			response.Error(c, http.StatusUnauthorized, code, message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		hrmsID, ok := claims["hrms_id"].(string)
		if !ok || hrmsID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Hrms ID not found in token", nil)
			c.Abort()
			return
		}

		c.Set("hrms_id", hrmsID)
		c.Set("roles", rolesFromClaims(claims))

		c.Next()
	}
}

func rolesFromClaims(claims jwt.MapClaims) []string {
	var roles []string
	switch v := claims["roles"].(type) {
	case []interface{}:
		for _, r := range v {
			if s, ok := r.(string); ok && s != "" {
				roles = append(roles, s)
			}
		}
	case string:
		if v != "" {
			roles = append(roles, v)
		}
	}
	return roles
}

// RolesFromContext returns the roles AuthMiddleware stored.
func RolesFromContext(c *gin.Context) []string {
	v, exists := c.Get("roles")
	if !exists {
		return nil
	}
	roles, _ := v.([]string)
	return roles
}

// RoleMiddleware rejects requests whose actor holds none of the allowed
// roles.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorRoles := RolesFromContext(c)

		isAllowed := false
	outer:
		for _, role := range actorRoles {
			for _, allowed := range allowedRoles {
				if role == allowed {
					isAllowed = true
					break outer
				}
			}
		}

		if !isAllowed {
			response.Error(c,
				apperror.ErrForbidden.HTTPStatus,
				apperror.ErrForbidden.Code,
				apperror.ErrForbidden.Message,
				nil,
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
