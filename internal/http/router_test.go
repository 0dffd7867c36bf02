package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/library"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type testEnv struct {
	db     *database.Database
	router *gin.Engine
}

func setupTestServer(t *testing.T) (*testEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	service := auth.NewService(users.NewRepository(db.DB), bcrypt.MinCost)

	router := NewRouter(RouterConfig{
		Database:    db,
		AuthService: service,
		TokenIssuer: issuer,
		Books:       books.NewRepository(db.DB),
		Reviews:     reviews.NewRepository(db.DB),
		Library:     library.NewRepository(db.DB),
		Version:     "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return &testEnv{db: db, router: router}, cleanup
}

// doJSON performs a request with an optional bearer token and JSON body.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns a login token for it.
func (e *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()

	w := e.doJSON(t, "POST", "/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "secretpass",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return e.login(t, email)
}

// login issues a fresh token for an existing account.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()

	w := e.doJSON(t, "POST", "/login", "", gin.H{
		"email":    email,
		"password": "secretpass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

// registerAdmin creates an account, flips its role in the database and
// returns a token carrying the admin claim.
func (e *testEnv) registerAdmin(t *testing.T, name, email string) string {
	t.Helper()

	e.register(t, name, email)
	err := e.db.DB.Model(&entities.User{}).
		Where("email = ?", email).
		Update("role", entities.UserRoleAdmin).Error
	require.NoError(t, err)

	// Re-login so the token carries the new role
	return e.login(t, email)
}

// createBook inserts a catalog book via the API and returns its id.
func (e *testEnv) createBook(t *testing.T, token, title, author, genre string) uint {
	t.Helper()

	w := e.doJSON(t, "POST", "/books", token, gin.H{
		"title":  title,
		"author": author,
		"genre":  genre,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var book entities.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
	return book.ID
}
