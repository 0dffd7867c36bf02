package entities

import (
	"time"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// ReadingStatus is the state of a book inside a user's library.
type ReadingStatus string

const (
	StatusWishlist  ReadingStatus = "wishlist"
	StatusReading   ReadingStatus = "reading"
	StatusCompleted ReadingStatus = "completed"
)

// allowedTransitions enumerates the permitted status edges once a library
// entry exists. The model is deliberately one-directional: a wishlist book
// can be started or finished, a completed book can be reopened for a
// re-read, but nothing ever moves back to wishlist and "reading" never
// jumps straight to "completed" without going through a fresh add.
var allowedTransitions = map[ReadingStatus]map[ReadingStatus]bool{
	StatusWishlist: {
		StatusReading:   true,
		StatusCompleted: true,
	},
	StatusCompleted: {
		StatusReading: true,
	},
}

// IsValid reports whether s is one of the known reading statuses.
func (s ReadingStatus) IsValid() bool {
	switch s {
	case StatusWishlist, StatusReading, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the edge s -> target is permitted.
func (s ReadingStatus) CanTransitionTo(target ReadingStatus) bool {
	return allowedTransitions[s][target]
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;size:100" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Role         UserRole  `gorm:"size:10;default:'user'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"index;size:512" json:"title"`
	Author        string    `gorm:"index;size:256" json:"author"`
	Genre         string    `gorm:"index;size:100" json:"genre"`
	Description   string    `gorm:"type:text" json:"description,omitempty"`
	AverageRating float64   `gorm:"default:0" json:"average_rating"`
	Reviews       []Review  `gorm:"foreignKey:BookID" json:"reviews,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index:idx_reviews_user_book,unique" json:"user_id"`
	BookID     uint      `gorm:"index:idx_reviews_user_book,unique" json:"book_id"`
	Rating     int       `json:"rating"`
	ReviewText string    `gorm:"type:text" json:"review_text,omitempty"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	Book       Book      `gorm:"foreignKey:BookID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type LibraryEntry struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	UserID    uint          `gorm:"index:idx_library_user_book,unique" json:"user_id"`
	BookID    uint          `gorm:"index:idx_library_user_book,unique" json:"book_id"`
	Status    ReadingStatus `gorm:"size:20" json:"status"`
	User      User          `gorm:"foreignKey:UserID" json:"-"`
	Book      Book          `gorm:"foreignKey:BookID" json:"-"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (Book) TableName() string {
	return "books"
}

func (Review) TableName() string {
	return "reviews"
}

func (LibraryEntry) TableName() string {
	return "library_entries"
}
