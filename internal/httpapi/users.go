package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"news_portal/internal/validation"
)

func (s *Server) getCurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.ListUsers(c.Request.Context())
	if err != nil {
		s.writeError(c, err, userResource, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) setUserAdmin(c *gin.Context) {
	const failure = "Failed to update user admin status"
	body, err := c.GetRawData()
	if err != nil {
		s.writeError(c, err, userResource, failure)
		return
	}
	isAdmin, err := validation.AdminFlag(body)
	if err != nil {
		s.writeError(c, err, userResource, failure)
		return
	}

	user, err := s.users.SetAdmin(c.Request.Context(), currentUser(c).ID, c.Param("id"), isAdmin)
	if err != nil {
		s.writeError(c, err, userResource, failure)
		return
	}
	c.JSON(http.StatusOK, user)
}
