package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
)

// UsersController handles admin-only user management.
type UsersController struct {
	service *auth.Service
}

func NewUsersController(service *auth.Service) *UsersController {
	return &UsersController{service: service}
}

type promoteRequest struct {
	Email string `json:"email"`
}

// Promote grants the admin role to another user by email.
func (controller *UsersController) Promote(c *gin.Context) {
	var req promoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid json body")
		return
	}
	if req.Email == "" {
		respondBadRequest(c, "email is required")
		return
	}

	user, err := controller.service.Promote(req.Email)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "user " + user.Email + " has been promoted to admin",
		"user":    user,
	})
}
