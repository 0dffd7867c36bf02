package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getBookPayload(t *testing.T, env *testEnv, token string, bookID uint) map[string]any {
	t.Helper()

	w := env.doJSON(t, "GET", fmt.Sprintf("/books/%d", bookID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestReviews_Create(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	token := env.register(t, "ivan", "ivan@gmail.com")
	bookID := env.createBook(t, token, "Dune", "Frank Herbert", "Sci-Fi")

	w := env.doJSON(t, "POST", fmt.Sprintf("/books/%d/review", bookID), token, gin.H{
		"rating":      4,
		"review_text": "good sand",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	payload := getBookPayload(t, env, token, bookID)
	assert.Equal(t, float64(4), payload["average_rating"])

	reviews := payload["reviews"].([]any)
	require.Len(t, reviews, 1)
	review := reviews[0].(map[string]any)
	assert.Equal(t, "ivan", review["user_name"])
	assert.Equal(t, "good sand", review["review_text"])
}

func TestReviews_UpsertLatestWins(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	token := env.register(t, "ivan", "ivan@gmail.com")
	bookID := env.createBook(t, token, "Dune", "Frank Herbert", "Sci-Fi")

	w := env.doJSON(t, "POST", fmt.Sprintf("/books/%d/review", bookID), token, gin.H{
		"rating": 2, "review_text": "meh",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.doJSON(t, "POST", fmt.Sprintf("/books/%d/review", bookID), token, gin.H{
		"rating": 5, "review_text": "grew on me",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	payload := getBookPayload(t, env, token, bookID)
	assert.Equal(t, float64(5), payload["average_rating"])

	reviews := payload["reviews"].([]any)
	require.Len(t, reviews, 1)
	assert.Equal(t, "grew on me", reviews[0].(map[string]any)["review_text"])
}

func TestReviews_AverageAcrossUsers(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	ivan := env.register(t, "ivan", "ivan@gmail.com")
	maria := env.register(t, "maria", "maria@gmail.com")
	bookID := env.createBook(t, ivan, "Dune", "Frank Herbert", "Sci-Fi")

	w := env.doJSON(t, "POST", fmt.Sprintf("/books/%d/review", bookID), ivan, gin.H{"rating": 2})
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.doJSON(t, "POST", fmt.Sprintf("/books/%d/review", bookID), maria, gin.H{"rating": 4})
	require.Equal(t, http.StatusCreated, w.Code)

	payload := getBookPayload(t, env, ivan, bookID)
	assert.Equal(t, float64(3), payload["average_rating"])
}

func TestReviews_InvalidRating(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	token := env.register(t, "ivan", "ivan@gmail.com")
	bookID := env.createBook(t, token, "Dune", "Frank Herbert", "Sci-Fi")

	for _, rating := range []int{0, 6, -1} {
		w := env.doJSON(t, "POST", fmt.Sprintf("/books/%d/review", bookID), token, gin.H{"rating": rating})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "rating %d", rating)
		assert.Contains(t, w.Body.String(), `"code":"unprocessable"`)
	}
}

func TestReviews_BookNotFound(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	token := env.register(t, "ivan", "ivan@gmail.com")

	w := env.doJSON(t, "POST", "/books/42/review", token, gin.H{"rating": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
