package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/rongwang/txvault/internal/api"
	"github.com/rongwang/txvault/internal/config"
	"github.com/rongwang/txvault/internal/repository"
	"github.com/rongwang/txvault/internal/service"
	"github.com/rongwang/txvault/internal/utils"
	"github.com/stretchr/testify/require"
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router     *gin.Engine
	Repository *repository.SQLRepository
	Service    service.Service
	DB         *sqlx.DB
}

// NewTestDB creates a migrated SQLite database in a temporary directory
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Location:     "sqlite:" + filepath.Join(t.TempDir(), "txvault_test.db"),
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
	}

	db, err := config.SetupDatabase(cfg)
	require.NoError(t, err, "Failed to set up test database")

	return db
}

// SetupTestContext creates a new test context with initialized dependencies
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	db := NewTestDB(t)

	// Create repository
	repo := repository.NewSQLRepository(db)

	// Create service
	svc := service.NewDefaultService(repo)

	// Create API handler
	handler := api.NewHandler(svc, utils.NewLoggerWithWriters(io.Discard, io.Discard))

	// Set up Gin router
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.SetupRoutes(router)

	return &TestContext{
		Router:     router,
		Repository: repo,
		Service:    svc,
		DB:         db,
	}
}

// CleanupTestContext cleans up test resources
func CleanupTestContext(t *TestContext) {
	if t.DB != nil {
		t.DB.Close()
	}
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
