package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/binmap-app/core/internal/database"
	"github.com/binmap-app/core/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(db))
	NewHandler(NewService(db)).RegisterRoutes(api, middleware.Auth(db))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const signupBody = `{
	"email": "ana@example.com",
	"username": "ana",
	"password": "correct horse",
	"first_name": "Ana",
	"last_name": "Lopez"
}`

func TestSignupLoginLogoutFlow(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db)

	w := do(t, r, http.MethodPost, "/api/v1/auth/signup", "", signupBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "correct horse") {
		t.Fatal("signup response leaks the password")
	}

	w = do(t, r, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"ana@example.com","password":"correct horse"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var loginRes struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &loginRes); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if loginRes.Token == "" {
		t.Fatal("login returned no token")
	}

	w = do(t, r, http.MethodGet, "/api/v1/auth/user-detail", loginRes.Token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("user-detail: expected 200, got %d", w.Code)
	}
	var detail map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail["email"] != "ana@example.com" {
		t.Fatalf("user-detail body: %v", detail)
	}

	w = do(t, r, http.MethodPost, "/api/v1/auth/logout", loginRes.Token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	// Revoked session must not authenticate anymore.
	w = do(t, r, http.MethodGet, "/api/v1/auth/user-detail", loginRes.Token, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("after logout: expected 401, got %d", w.Code)
	}
}

// Login answers 404 for both unknown email and wrong password, so the
// failure never confirms an account exists.
func TestLoginFailuresAre404(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db)

	if w := do(t, r, http.MethodPost, "/api/v1/auth/signup", "", signupBody); w.Code != http.StatusCreated {
		t.Fatalf("signup: %d", w.Code)
	}

	w := do(t, r, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"nobody@example.com","password":"whatever123"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown email: expected 404, got %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"ana@example.com","password":"wrong password"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("wrong password: expected 404, got %d", w.Code)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db)

	if w := do(t, r, http.MethodPost, "/api/v1/auth/signup", "", signupBody); w.Code != http.StatusCreated {
		t.Fatalf("first signup: %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/v1/auth/signup", "", signupBody); w.Code != http.StatusBadRequest {
		t.Errorf("duplicate signup: expected 400, got %d", w.Code)
	}
}

func TestSignupValidation(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db)

	// Password below the minimum length.
	w := do(t, r, http.MethodPost, "/api/v1/auth/signup", "", `{
		"email": "ana@example.com",
		"username": "ana",
		"password": "short",
		"first_name": "Ana",
		"last_name": "Lopez"
	}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("short password: expected 400, got %d", w.Code)
	}
}
