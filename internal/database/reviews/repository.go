// Package reviews provides database operations for book reviews and ratings.
//
// A user holds at most one review per book: a second submission overwrites
// the first. The book's average rating is recomputed from the review rows in
// the same transaction so the two can never drift apart.
package reviews

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert creates or overwrites the caller's review for a book and refreshes
// the book's average rating.
func (r *Repository) Upsert(userID, bookID uint, rating int, reviewText string) (*entities.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var review *entities.Review
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		var existing entities.Review
		err := tx.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
		switch {
		case err == nil:
			existing.Rating = rating
			existing.ReviewText = reviewText
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to update review: %w", err)
			}
			review = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := entities.Review{
				UserID:     userID,
				BookID:     bookID,
				Rating:     rating,
				ReviewText: reviewText,
			}
			if err := tx.Create(&created).Error; err != nil {
				return fmt.Errorf("failed to create review: %w", err)
			}
			review = &created
		default:
			return fmt.Errorf("failed to look up review: %w", err)
		}

		return refreshAverageRating(tx, bookID)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// ListForBook returns a book's reviews in creation order.
func (r *Repository) ListForBook(bookID uint) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.Preload("User").Where("book_id = ?", bookID).Order("id ASC").Find(&reviews).Error
	return reviews, err
}

// ListForUser returns all reviews written by a user.
func (r *Repository) ListForUser(userID uint) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&reviews).Error
	return reviews, err
}

// refreshAverageRating recomputes the arithmetic mean of a book's ratings.
// A book with no reviews goes back to 0.
func refreshAverageRating(tx *gorm.DB, bookID uint) error {
	var avg float64
	err := tx.Model(&entities.Review{}).
		Where("book_id = ?", bookID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return fmt.Errorf("failed to compute average rating: %w", err)
	}
	return tx.Model(&entities.Book{}).Where("id = ?", bookID).Update("average_rating", avg).Error
}
