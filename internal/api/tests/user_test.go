package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rongwang/txvault/internal/api/testutils"
	"github.com/rongwang/txvault/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createUser posts req and returns the stored user, failing the test on a non-200
func createUser(t *testing.T, router *gin.Engine, req models.CreateUser) models.User {
	t.Helper()

	w := testutils.PerformRequest(router, http.MethodPost, "/api/v1/user", req, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func TestRoot(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello, World!", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// A client supplied request id is echoed back
	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/", nil, map[string]string{
		"X-Request-ID": "req-123",
	})
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestCreateUser(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Test case 1: The first user may be main
	alice := createUser(t, testCtx.Router, models.CreateUser{Username: "alice", Email: "a@x.com", IsMain: true})
	assert.Equal(t, int64(1), alice.UserID)
	assert.Equal(t, "alice", alice.Username)
	assert.True(t, alice.IsMain)

	// Test case 2: A second main user is rejected
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/v1/user",
		models.CreateUser{Username: "bob", Email: "b@x.com", IsMain: true},
		nil,
	)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "main user already exists")
	assert.Contains(t, w.Body.String(), "bob")

	// Test case 3: Regular users are always accepted
	bob := createUser(t, testCtx.Router, models.CreateUser{Username: "bob", Email: "b@x.com"})
	assert.Equal(t, int64(2), bob.UserID)
	assert.False(t, bob.IsMain)

	// Test case 4: Duplicate username fails in the store
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/v1/user",
		models.CreateUser{Username: "bob", Email: "other@x.com"}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Test case 5: Missing username
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/v1/user",
		models.CreateUser{Email: "nobody@x.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Test case 6: Malformed body
	w = testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/v1/user", `{"username":`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUser(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	alice := createUser(t, testCtx.Router, models.CreateUser{Username: "alice", Email: "a@x.com", IsMain: true})

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, fmt.Sprintf("/api/v1/user/%d", alice.UserID), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, alice, got)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/v1/user/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "record not found")

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/v1/user/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUser(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	createUser(t, testCtx.Router, models.CreateUser{Username: "alice", Email: "a@x.com", IsMain: true})
	bob := createUser(t, testCtx.Router, models.CreateUser{Username: "bob", Email: "b@x.com"})
	path := fmt.Sprintf("/api/v1/user/%d", bob.UserID)

	// Test case 1: is_main unchanged
	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, path,
		models.CreateUser{Username: "bobby", Email: "bobby@x.com"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, bob.UserID, updated.UserID)
	assert.Equal(t, "bobby", updated.Username)
	assert.Equal(t, "bobby@x.com", updated.Email)
	assert.False(t, updated.IsMain)

	// Test case 2: toggling is_main is rejected
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, path,
		models.CreateUser{Username: "bobby", Email: "bobby@x.com", IsMain: true}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "is_main")

	// Test case 3: unknown user is reported by the check, not as a 404
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/v1/user/999",
		models.CreateUser{Username: "ghost"}, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDeleteUser(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	alice := createUser(t, testCtx.Router, models.CreateUser{Username: "alice", Email: "a@x.com", IsMain: true})
	bob := createUser(t, testCtx.Router, models.CreateUser{Username: "bob", Email: "b@x.com"})

	// Test case 1: the main user is protected
	w := testutils.PerformRequest(testCtx.Router, http.MethodDelete, fmt.Sprintf("/api/v1/user/%d", alice.UserID), nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "cannot delete main user")

	// Test case 2: other users can be deleted and are returned
	bobPath := fmt.Sprintf("/api/v1/user/%d", bob.UserID)
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, bobPath, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var deleted models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleted))
	assert.Equal(t, bob, deleted)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, bobPath, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Test case 3: deleting again fails the pre-check
	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, bobPath, nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
