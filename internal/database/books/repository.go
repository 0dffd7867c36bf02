// Package books provides database operations for the shared book catalog.
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrBookExists   = errors.New("book already exists")
)

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Fields holds the mutable catalog attributes of a book. Nil pointers mean
// "leave unchanged" for partial updates.
type Fields struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Genre       *string `json:"genre"`
	Description *string `json:"description"`
}

// Create adds a new book to the catalog. Duplicate title+author pairs are rejected.
func (r *Repository) Create(title, author, genre, description string) (*entities.Book, error) {
	book := &entities.Book{
		Title:       title,
		Author:      author,
		Genre:       genre,
		Description: description,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.Book
		err := tx.Where("title = ? AND author = ?", title, author).First(&existing).Error
		if err == nil {
			return ErrBookExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing book: %w", err)
		}

		if err := tx.Create(book).Error; err != nil {
			return fmt.Errorf("failed to create book: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// GetByID retrieves a book with its reviews preloaded.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

// Search returns books matching all provided filters. Each non-empty filter
// narrows the result with a case-insensitive partial match.
func (r *Repository) Search(title, author, genre string) ([]entities.Book, error) {
	query := r.db.Model(&entities.Book{})
	if title != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+title+"%")
	}
	if author != "" {
		query = query.Where("LOWER(author) LIKE LOWER(?)", "%"+author+"%")
	}
	if genre != "" {
		query = query.Where("LOWER(genre) LIKE LOWER(?)", "%"+genre+"%")
	}

	var books []entities.Book
	err := query.Order("id ASC").Find(&books).Error
	return books, err
}

// Update applies a partial update. Only non-nil fields change.
func (r *Repository) Update(id uint, fields Fields) (*entities.Book, error) {
	book, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if fields.Title != nil {
		updates["title"] = *fields.Title
	}
	if fields.Author != nil {
		updates["author"] = *fields.Author
	}
	if fields.Genre != nil {
		updates["genre"] = *fields.Genre
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}

	if len(updates) > 0 {
		if err := r.db.Model(book).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update book: %w", err)
		}
	}
	return book, nil
}

// Delete removes a book and everything attached to it: reviews and library
// entries would otherwise dangle, so they go in the same transaction.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&entities.Book{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBookNotFound
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.Review{}).Error; err != nil {
			return err
		}
		return tx.Where("book_id = ?", id).Delete(&entities.LibraryEntry{}).Error
	})
}
