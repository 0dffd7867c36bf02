package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
)

// ReviewsController handles per-book review submission.
type ReviewsController struct {
	reviews *reviews.Repository
}

func NewReviewsController(reviewsRepo *reviews.Repository) *ReviewsController {
	return &ReviewsController{reviews: reviewsRepo}
}

type reviewRequest struct {
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
}

// Upsert creates or replaces the caller's review for a book. Submitting
// twice keeps a single review with the latest rating and text.
func (controller *ReviewsController) Upsert(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid json body")
		return
	}

	review, err := controller.reviews.Upsert(auth.GetUserID(c), bookID, req.Rating, req.ReviewText)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}
