package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
)

// BooksController handles the shared book catalog. Any authenticated user
// may browse and add books; edits and deletes are admin-gated at the router.
type BooksController struct {
	books   *books.Repository
	reviews *reviews.Repository
}

func NewBooksController(booksRepo *books.Repository, reviewsRepo *reviews.Repository) *BooksController {
	return &BooksController{
		books:   booksRepo,
		reviews: reviewsRepo,
	}
}

type createBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
}

// Search returns books matching the title/author/genre query filters.
// Filters are ANDed; no filters means the whole catalog.
func (controller *BooksController) Search(c *gin.Context) {
	found, err := controller.books.Search(c.Query("title"), c.Query("author"), c.Query("genre"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": found, "count": len(found)})
}

type bookReview struct {
	UserName   string `json:"user_name"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text,omitempty"`
}

// Get returns a single book with its reviews and average rating.
func (controller *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.GetByID(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	bookReviews, err := controller.reviews.ListForBook(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	reviewList := make([]bookReview, 0, len(bookReviews))
	for _, review := range bookReviews {
		reviewList = append(reviewList, bookReview{
			UserName:   review.User.Name,
			Rating:     review.Rating,
			ReviewText: review.ReviewText,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             book.ID,
		"title":          book.Title,
		"author":         book.Author,
		"genre":          book.Genre,
		"description":    book.Description,
		"average_rating": book.AverageRating,
		"reviews":        reviewList,
	})
}

// Create adds a new book to the catalog.
func (controller *BooksController) Create(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid json body")
		return
	}
	if req.Title == "" || req.Author == "" || req.Genre == "" {
		respondBadRequest(c, "title, author and genre are required")
		return
	}

	book, err := controller.books.Create(req.Title, req.Author, req.Genre, req.Description)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, book)
}

// Update applies a partial update to a book. Admin only.
func (controller *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var fields books.Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondBadRequest(c, "invalid json body")
		return
	}

	book, err := controller.books.Update(id, fields)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

// Delete removes a book from the catalog. Admin only.
func (controller *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.books.Delete(id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "book deleted"})
}
