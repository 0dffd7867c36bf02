package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database/library"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// AuthController handles registration, login and the profile endpoint.
type AuthController struct {
	service *auth.Service
	issuer  *auth.TokenIssuer
	library *library.Repository
	reviews *reviews.Repository
}

func NewAuthController(service *auth.Service, issuer *auth.TokenIssuer, libraryRepo *library.Repository, reviewsRepo *reviews.Repository) *AuthController {
	return &AuthController{
		service: service,
		issuer:  issuer,
		library: libraryRepo,
		reviews: reviewsRepo,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Register creates a new user account.
func (controller *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid json body")
		return
	}

	user, err := controller.service.Register(req.Name, req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login authenticates credentials and issues a bearer token.
func (controller *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid json body")
		return
	}

	user, err := controller.service.Authenticate(req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	token, err := controller.issuer.Issue(user)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token})
}

type profileLibraryEntry struct {
	BookID uint                   `json:"book_id"`
	Status entities.ReadingStatus `json:"status"`
}

type profileReview struct {
	BookID     uint   `json:"book_id"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text,omitempty"`
}

type profileResponse struct {
	ID      uint                  `json:"id"`
	Name    string                `json:"name"`
	Email   string                `json:"email"`
	Role    entities.UserRole     `json:"role"`
	Library []profileLibraryEntry `json:"library"`
	Reviews []profileReview       `json:"reviews"`
}

// Profile returns the authenticated user together with their library
// entries and reviews.
func (controller *AuthController) Profile(c *gin.Context) {
	userID := auth.GetUserID(c)

	user, err := controller.service.GetUser(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	entries, err := controller.library.List(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	userReviews, err := controller.reviews.ListForUser(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	resp := profileResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		Library: make([]profileLibraryEntry, 0, len(entries)),
		Reviews: make([]profileReview, 0, len(userReviews)),
	}
	for _, entry := range entries {
		resp.Library = append(resp.Library, profileLibraryEntry{
			BookID: entry.BookID,
			Status: entry.Status,
		})
	}
	for _, review := range userReviews {
		resp.Reviews = append(resp.Reviews, profileReview{
			BookID:     review.BookID,
			Rating:     review.Rating,
			ReviewText: review.ReviewText,
		})
	}

	c.JSON(http.StatusOK, resp)
}
