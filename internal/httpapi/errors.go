package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"news_portal/internal/domain"
)

var errInvalidID = errors.New("invalid id")

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// resource names an entity in client-facing messages.
type resource struct {
	notFound string
	invalid  string
}

var (
	articleResource = resource{notFound: "Article not found", invalid: "Invalid article data"}
	videoResource   = resource{notFound: "Video not found", invalid: "Invalid video data"}
	epaperResource  = resource{notFound: "E-Paper not found", invalid: "Invalid e-paper data"}
	userResource    = resource{notFound: "User not found", invalid: "Invalid user data"}
)

// writeError maps err to a status and a client-safe body. Anything not in
// the domain taxonomy is a store failure: logged in full, reported as
// failure only.
func (s *Server) writeError(c *gin.Context, err error, res resource, failure string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Message: res.invalid, Errors: verr.Fields})
	case errors.Is(err, errInvalidID):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Message: "Invalid id"})
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Message: res.notFound})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "Unauthorized"})
	case errors.Is(err, domain.ErrForbiddenNotAdmin):
		c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Message: "Admin access required"})
	case errors.Is(err, domain.ErrForbiddenNotSuperAdmin):
		c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Message: "Super admin access required"})
	case errors.Is(err, domain.ErrSelfDemotion):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Message: "You cannot remove your own admin access"})
	default:
		s.logger.Error(failure,
			"error", err,
			"route", c.FullPath(),
			"request_id", requestID(c),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Message: failure})
	}
}
