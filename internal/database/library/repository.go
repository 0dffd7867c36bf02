// Package library provides database operations for per-user library entries.
//
// Each entry maps a (user, book) pair to a reading status. A book enters the
// library directly in any status, but once present its status may only move
// along the edges permitted by entities.ReadingStatus.CanTransitionTo.
package library

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrEntryNotFound     = errors.New("book not found in your library")
	ErrEntryExists       = errors.New("book already in your library")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// Repository handles all library entry database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new library repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add creates a library entry for the user. The book must exist in the
// catalog and must not already be in the user's library.
func (r *Repository) Add(userID, bookID uint, status entities.ReadingStatus) (*entities.LibraryEntry, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	var entry *entities.LibraryEntry
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		var existing entities.LibraryEntry
		err := tx.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
		if err == nil {
			return ErrEntryExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing entry: %w", err)
		}

		created := entities.LibraryEntry{
			UserID: userID,
			BookID: bookID,
			Status: status,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("failed to create library entry: %w", err)
		}
		entry = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ChangeStatus moves the user's entry for a book to a new status, enforcing
// the transition table. A rejected transition leaves the entry untouched.
func (r *Repository) ChangeStatus(userID, bookID uint, newStatus entities.ReadingStatus) (*entities.LibraryEntry, error) {
	if !newStatus.IsValid() {
		return nil, ErrInvalidStatus
	}

	var entry *entities.LibraryEntry
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.LibraryEntry
		err := tx.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}

		if !existing.Status.CanTransitionTo(newStatus) {
			return ErrInvalidTransition
		}

		if err := tx.Model(&existing).Update("status", newStatus).Error; err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		existing.Status = newStatus
		entry = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Remove deletes the user's entry for a book.
func (r *Repository) Remove(userID, bookID uint) error {
	result := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&entities.LibraryEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// List returns the user's library entries with books preloaded, oldest first.
func (r *Repository) List(userID uint) ([]entities.LibraryEntry, error) {
	var entries []entities.LibraryEntry
	err := r.db.Preload("Book").Where("user_id = ?", userID).Order("id ASC").Find(&entries).Error
	return entries, err
}
