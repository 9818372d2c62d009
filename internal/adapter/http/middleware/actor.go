package middleware

import (
	"net/http"
	"strings"

	"telehealth_flow/pkg"

	"github.com/gin-gonic/gin"
)

const (
	HeaderActorID = "X-Actor-ID"
	actorKey      = "actor"
)

var errMissingActor = pkg.NewDomainErrorSimple("MISSING_ACTOR", "X-Actor-ID header is required", http.StatusBadRequest)

// RequireActor rejects mutating requests that do not say who triggered them.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Set(actorKey, strings.TrimSpace(c.GetHeader(HeaderActorID)))
			c.Next()
			return
		}

		actor := strings.TrimSpace(c.GetHeader(HeaderActorID))
		if actor == "" {
			c.AbortWithStatusJSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// Actor returns the actor resolved by RequireActor, falling back to the raw header.
func Actor(c *gin.Context) string {
	if v := c.GetString(actorKey); v != "" {
		return v
	}
	return strings.TrimSpace(c.GetHeader(HeaderActorID))
}
