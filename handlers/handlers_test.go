package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Sahil31312/plant-disease-classifier/config"
	"github.com/Sahil31312/plant-disease-classifier/middleware"
	"github.com/Sahil31312/plant-disease-classifier/models"
	"github.com/Sahil31312/plant-disease-classifier/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db     *gorm.DB
	audit  *services.AuditService
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Prediction{},
		&models.DiseaseInfo{},
		&models.ContactMessage{},
		&models.AuditLog{},
		&models.RetentionState{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	cache := services.NewDisabledCache(zap.NewNop())
	audit := services.NewAuditService(db, cache, zap.NewNop())

	return &testEnv{db: db, audit: audit, router: gin.New()}
}

func asUser(id uint, role string) gin.HandlerFunc {
	return middleware.WithIdentity(middleware.Identity{
		UserID:   &id,
		Username: "tester",
		Role:     role,
		Language: "en",
	})
}

func anonymous() gin.HandlerFunc {
	return middleware.WithIdentity(middleware.Identity{Language: "en"})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func TestAdminGateRefusesWithoutSideEffects(t *testing.T) {
	env := newTestEnv(t)
	userHandler := NewUserHandler(env.db, env.audit)

	env.db.Create(&models.User{Username: "victim", Email: "v@x.io", Password: "h", Role: "user", Active: true})

	env.router.Use(asUser(99, "user"))
	admin := env.router.Group("/api/v1/admin", middleware.RequireAdmin())
	admin.DELETE("/user/:id", userHandler.AdminDelete)

	before := countRows(t, env.db, &models.User{})
	w := doJSON(t, env.router, http.MethodDelete, "/api/v1/admin/user/1", nil)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["success"] != false || resp["message"] != "access denied" {
		t.Errorf("refusal body = %v", resp)
	}
	if after := countRows(t, env.db, &models.User{}); after != before {
		t.Errorf("user rows changed on refused request: %d -> %d", before, after)
	}
	if n := countRows(t, env.db, &models.AuditLog{}); n != 0 {
		t.Errorf("refused request wrote %d audit rows, want 0", n)
	}
}

func TestRegisterDuplicateUsernameLeavesNoRow(t *testing.T) {
	env := newTestEnv(t)
	auth := services.NewAuthService(config.JWTConfig{Secret: "s", ExpiryHours: 1})
	sessions := services.NewSessionService(services.NewDisabledCache(zap.NewNop()), config.SessionConfig{CookieName: "sid", TTLHours: 1})
	h := NewAuthHandler(env.db, auth, sessions, env.audit)

	env.db.Create(&models.User{Username: "taken", Email: "first@x.io", Password: "h", Role: "user", Active: true})

	env.router.POST("/register", h.Register)
	w := doJSON(t, env.router, http.MethodPost, "/register", RegisterRequest{
		Username:        "taken",
		Email:           "second@x.io",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
	if n := countRows(t, env.db, &models.User{}); n != 1 {
		t.Errorf("user rows = %d, want 1", n)
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	env := newTestEnv(t)
	auth := services.NewAuthService(config.JWTConfig{Secret: "s", ExpiryHours: 1})
	sessions := services.NewSessionService(services.NewDisabledCache(zap.NewNop()), config.SessionConfig{CookieName: "sid", TTLHours: 1})
	h := NewAuthHandler(env.db, auth, sessions, env.audit)

	env.router.POST("/register", h.Register)
	w := doJSON(t, env.router, http.MethodPost, "/register", RegisterRequest{
		Username:        "newuser",
		Email:           "n@x.io",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if n := countRows(t, env.db, &models.User{}); n != 0 {
		t.Errorf("user rows = %d, want 0", n)
	}
}

func TestSetLanguageRejectsUnsupported(t *testing.T) {
	env := newTestEnv(t)
	sessions := services.NewSessionService(services.NewDisabledCache(zap.NewNop()), config.SessionConfig{CookieName: "sid", TTLHours: 1})
	h := NewLanguageHandler(sessions)

	env.router.GET("/set_lang/:language", h.SetLanguage)

	w := doJSON(t, env.router, http.MethodGet, "/set_lang/fr", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	w = doJSON(t, env.router, http.MethodGet, "/set_lang/ps", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["direction"] != "rtl" {
		t.Errorf("direction = %v, want rtl", resp["direction"])
	}
}

func TestContactMessageLifecycle(t *testing.T) {
	env := newTestEnv(t)
	h := NewMessageHandler(env.db, env.audit)

	env.router.POST("/contact", anonymous(), h.Contact)
	adminRouter := gin.New()
	adminRouter.Use(asUser(1, "admin"))
	adminRouter.POST("/message/:id/read", h.AdminMarkRead)
	adminRouter.POST("/message/:id/reply", h.AdminMarkReplied)

	w := doJSON(t, env.router, http.MethodPost, "/contact", ContactRequest{
		Name:    "Grower",
		Email:   "g@x.io",
		Subject: "leaf spots",
		Message: "My tomatoes have spots.",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("contact status = %d, want 201", w.Code)
	}

	var msg models.ContactMessage
	if err := env.db.First(&msg).Error; err != nil {
		t.Fatalf("load message: %v", err)
	}
	if msg.Status != models.MessageUnread {
		t.Errorf("initial status = %q, want unread", msg.Status)
	}

	w = doJSON(t, adminRouter, http.MethodPost, "/message/1/read", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("mark read status = %d", w.Code)
	}

	// read -> read is a backward/no-op transition and must be refused.
	w = doJSON(t, adminRouter, http.MethodPost, "/message/1/read", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("second read status = %d, want 409", w.Code)
	}

	w = doJSON(t, adminRouter, http.MethodPost, "/message/1/reply", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reply status = %d", w.Code)
	}

	// replied is terminal.
	w = doJSON(t, adminRouter, http.MethodPost, "/message/1/read", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("read after replied status = %d, want 409", w.Code)
	}
}

func TestContactRejectsMissingFields(t *testing.T) {
	env := newTestEnv(t)
	h := NewMessageHandler(env.db, env.audit)
	env.router.POST("/contact", anonymous(), h.Contact)

	w := doJSON(t, env.router, http.MethodPost, "/contact", ContactRequest{Name: "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if n := countRows(t, env.db, &models.ContactMessage{}); n != 0 {
		t.Errorf("message rows = %d, want 0", n)
	}
}

func TestUserDeleteRefusalsAndCascade(t *testing.T) {
	env := newTestEnv(t)
	h := NewUserHandler(env.db, env.audit)

	env.db.Create(&models.User{Username: "root", Email: "r@x.io", Password: "h", Role: "admin", Active: true})
	env.db.Create(&models.User{Username: "other", Email: "o@x.io", Password: "h", Role: "user", Active: true})
	otherID := uint(2)
	env.db.Create(&models.Prediction{UserID: &otherID, Filename: "a.png", ClassIndex: 7, PredictedClass: "Tomato Late Blight", Confidence: 0.9})

	env.router.Use(asUser(1, "admin"))
	env.router.DELETE("/user/:id", h.AdminDelete)

	// Self-delete refused.
	w := doJSON(t, env.router, http.MethodDelete, "/user/1", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("self delete status = %d, want 400", w.Code)
	}

	// Regular user deleted along with their predictions.
	w = doJSON(t, env.router, http.MethodDelete, "/user/2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if n := countRows(t, env.db, &models.User{}); n != 1 {
		t.Errorf("user rows = %d, want 1", n)
	}
	if n := countRows(t, env.db, &models.Prediction{}); n != 0 {
		t.Errorf("prediction rows = %d, want 0 after cascade", n)
	}
}

func TestUserDeleteRefusesAdminTarget(t *testing.T) {
	env := newTestEnv(t)
	h := NewUserHandler(env.db, env.audit)

	env.db.Create(&models.User{Username: "root", Email: "r@x.io", Password: "h", Role: "admin", Active: true})
	env.db.Create(&models.User{Username: "root2", Email: "r2@x.io", Password: "h", Role: "admin", Active: true})

	env.router.Use(asUser(1, "admin"))
	env.router.DELETE("/user/:id", h.AdminDelete)

	w := doJSON(t, env.router, http.MethodDelete, "/user/2", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("admin delete status = %d, want 400", w.Code)
	}
	if n := countRows(t, env.db, &models.User{}); n != 2 {
		t.Errorf("user rows = %d, want 2", n)
	}
}
