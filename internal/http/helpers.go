package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/library"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
	"github.com/mrlokans/bookshelf/internal/database/users"
)

// ErrorResponse is the standard error response format for all API errors.
// Code is a stable machine-readable error kind.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

var notFoundErrors = []error{
	users.ErrUserNotFound,
	books.ErrBookNotFound,
	reviews.ErrBookNotFound,
	library.ErrBookNotFound,
	library.ErrEntryNotFound,
}

var conflictErrors = []error{
	users.ErrEmailExists,
	users.ErrNameExists,
	users.ErrAlreadyAdmin,
	books.ErrBookExists,
	library.ErrEntryExists,
}

var unprocessableErrors = []error{
	library.ErrInvalidStatus,
	library.ErrInvalidTransition,
	reviews.ErrInvalidRating,
}

var validationErrors = []error{
	auth.ErrNameRequired,
	auth.ErrEmailRequired,
	auth.ErrPasswordRequired,
	auth.ErrNameInvalid,
	auth.ErrEmailInvalid,
	auth.ErrPasswordTooShort,
	auth.ErrPasswordTooLong,
}

// respondDomainError maps a domain error to its HTTP status and error kind.
// Anything unrecognized is logged and surfaced as a generic server error.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case matchesAny(err, notFoundErrors):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	case matchesAny(err, conflictErrors):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "conflict"})
	case matchesAny(err, unprocessableErrors):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "unprocessable"})
	case matchesAny(err, validationErrors):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "bad_request"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error(), Code: "unauthorized"})
	default:
		log.Printf("Internal error (%s %s): %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal"})
	}
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Responds with a 400 error and returns false when malformed.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}
