package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-sweeper/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextSessionID is the key used to store the token's session ID in the Gin context.
	ContextSessionID = "sessionID"

	// sessionParam is the route parameter holding the session a request targets.
	sessionParam = "ID"
)

// Authoriz checks the bearer session token and, when the route names a
// session, that the token belongs to it.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized) // No token found in the header.
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized) // Malformed Authorization header.
			return
		}

		sessionID, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if raw := c.Param(sessionParam); raw != "" {
			target, err := uuid.Parse(raw)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
				return
			}
			if target != sessionID {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}

		// Attach the session to the request context for further use.
		c.Set(ContextSessionID, sessionID)
		c.Next()
	}
}
