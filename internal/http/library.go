package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database/library"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// LibraryController handles the caller's personal library. Every operation
// is scoped to the authenticated user id taken from the request context,
// never from the request body.
type LibraryController struct {
	library *library.Repository
}

func NewLibraryController(libraryRepo *library.Repository) *LibraryController {
	return &LibraryController{library: libraryRepo}
}

type addToLibraryRequest struct {
	BookID uint   `json:"book_id"`
	Status string `json:"status"`
}

type changeStatusRequest struct {
	NewStatus string `json:"new_status"`
}

type libraryBook struct {
	BookID uint   `json:"book_id"`
	Title  string `json:"title"`
}

// List returns the caller's library grouped by reading status.
func (controller *LibraryController) List(c *gin.Context) {
	entries, err := controller.library.List(auth.GetUserID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	grouped := map[entities.ReadingStatus][]libraryBook{
		entities.StatusWishlist:  {},
		entities.StatusReading:   {},
		entities.StatusCompleted: {},
	}
	for _, entry := range entries {
		grouped[entry.Status] = append(grouped[entry.Status], libraryBook{
			BookID: entry.BookID,
			Title:  entry.Book.Title,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlist":  grouped[entities.StatusWishlist],
		"reading":   grouped[entities.StatusReading],
		"completed": grouped[entities.StatusCompleted],
	})
}

// Add puts a book into the caller's library with an initial status.
func (controller *LibraryController) Add(c *gin.Context) {
	var req addToLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid json body")
		return
	}
	if req.BookID == 0 {
		respondBadRequest(c, "book_id is required")
		return
	}

	entry, err := controller.library.Add(auth.GetUserID(c), req.BookID, entities.ReadingStatus(req.Status))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ChangeStatus moves the caller's entry for a book to a new status. The URL
// parameter is the book id.
func (controller *LibraryController) ChangeStatus(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid json body")
		return
	}

	entry, err := controller.library.ChangeStatus(auth.GetUserID(c), bookID, entities.ReadingStatus(req.NewStatus))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Remove deletes the caller's entry for a book.
func (controller *LibraryController) Remove(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.library.Remove(auth.GetUserID(c), bookID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "book removed from library"})
}
