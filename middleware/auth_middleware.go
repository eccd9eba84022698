package middleware

import (
	"strings"

	"robolibrary/utils"

	"github.com/gin-gonic/gin"
)

// Dashboard roles known to the platform. Token issuance happens elsewhere;
// this service only verifies and gates.
const (
	RoleSuperadmin = "superadmin"
	RoleSchool     = "school"
	RoleGovernment = "government"
	RoleTeacher    = "teacher"
	RoleStudent    = "student"
	RoleHelp       = "help"
)

func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			utils.UnauthorizedResponse(c, "Authorization token required")
			c.Abort()
			return
		}

		claims, err := utils.VerifyJWTToken(token, jwtSecret)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}

	return strings.TrimSpace(authHeader[len(bearerPrefix):])
}

// RequireRole gates a route group to callers holding one of the given roles.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.UnauthorizedResponse(c, "User role not found")
			c.Abort()
			return
		}

		userRole, ok := role.(string)
		if !ok {
			utils.ForbiddenResponse(c, "Insufficient privileges")
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if userRole == allowed {
				c.Next()
				return
			}
		}

		utils.ForbiddenResponse(c, "Insufficient privileges")
		c.Abort()
	}
}
