// File: /routes/routes_test.go
package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sees-api/config"
	"sees-api/models"
	"sees-api/services"
)

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventAttendee{},
		&models.Payment{},
		&models.Promotion{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{JWTSecret: "test-secret"}
	r := gin.New()
	SetupRoutes(r, db, cfg, services.NewEmailService(cfg))
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	decoded := map[string]interface{}{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

func registerUser(t *testing.T, r *gin.Engine, name string, role models.Role) (token, userID string) {
	t.Helper()

	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    fmt.Sprintf("%s@example.com", name),
		"password": "Password1!",
		"role":     string(role),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", name, w.Code, w.Body.String())
	}

	token, _ = resp["token"].(string)
	user, _ := resp["user"].(map[string]interface{})
	userID, _ = user["id"].(string)
	if token == "" || userID == "" {
		t.Fatalf("register %s: missing token or user id in response", name)
	}
	return token, userID
}

func createEvent(t *testing.T, r *gin.Engine, token string, capacity int, fee float64) string {
	t.Helper()

	w, resp := doJSON(t, r, http.MethodPost, "/api/events", token, gin.H{
		"title":            "Systems Design Seminar",
		"description":      "Designing for failure.",
		"date_time":        time.Now().AddDate(0, 0, 5).Format(time.RFC3339),
		"location":         "Room 12",
		"category":         "seminar",
		"capacity":         capacity,
		"registration_fee": fee,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create event: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id, _ := resp["id"].(string)
	if id == "" {
		t.Fatalf("create event: missing id in response")
	}
	return id
}

func TestRoutes_AuthRequired(t *testing.T) {
	r, _ := setupServer(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/events", "", gin.H{})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	// Public listing works unauthenticated
	w, _ = doJSON(t, r, http.MethodGet, "/api/events", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for public listing, got %d", w.Code)
	}
}

func TestRoutes_RegisterDuplicateEmail(t *testing.T) {
	r, _ := setupServer(t)

	registerUser(t, r, "dupe", models.RoleClient)

	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "someone else",
		"email":    "dupe@example.com",
		"password": "Password1!",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", w.Code)
	}
}

func TestRoutes_EventLifecycleAndRegistration(t *testing.T) {
	r, _ := setupServer(t)

	adminToken, _ := registerUser(t, r, "admin", models.RoleAdmin)
	clientToken, _ := registerUser(t, r, "client", models.RoleClient)

	eventID := createEvent(t, r, adminToken, 2, 0)

	// Round trip
	w, resp := doJSON(t, r, http.MethodGet, "/api/events/"+eventID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get event: expected 200, got %d", w.Code)
	}
	if resp["title"] != "Systems Design Seminar" || resp["capacity"] != float64(2) {
		t.Errorf("event fields did not round-trip: %v", resp)
	}

	// Register, then duplicate
	w, _ = doJSON(t, r, http.MethodPost, "/api/events/"+eventID+"/register", clientToken, gin.H{})
	if w.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w, _ = doJSON(t, r, http.MethodPost, "/api/events/"+eventID+"/register", clientToken, gin.H{})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register: expected 409, got %d", w.Code)
	}

	// Cancel, then cancel again
	w, _ = doJSON(t, r, http.MethodDelete, "/api/events/"+eventID+"/register", clientToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("cancel: expected 200, got %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodDelete, "/api/events/"+eventID+"/register", clientToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("cancel again: expected 404, got %d", w.Code)
	}

	// A client cannot edit someone else's event
	w, _ = doJSON(t, r, http.MethodPut, "/api/events/"+eventID, clientToken, gin.H{"title": "Hijacked"})
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign update: expected 403, got %d", w.Code)
	}
}

func TestRoutes_PaidEventRequiresPayment(t *testing.T) {
	r, _ := setupServer(t)

	adminToken, _ := registerUser(t, r, "admin", models.RoleAdmin)
	clientToken, _ := registerUser(t, r, "client", models.RoleClient)
	eventID := createEvent(t, r, adminToken, 10, 25)

	w, _ := doJSON(t, r, http.MethodPost, "/api/events/"+eventID+"/register", clientToken, gin.H{})
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402 for unpaid registration, got %d", w.Code)
	}

	w, resp := doJSON(t, r, http.MethodPost, "/api/payments/event-registration/"+eventID, clientToken, gin.H{
		"payment_method": "credit_card",
		"card_details":   gin.H{"card_number": "4242 4242 4242 4242"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("payment: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	payment, _ := resp["payment"].(map[string]interface{})
	if payment["amount"] != float64(25) || payment["status"] != "completed" {
		t.Errorf("unexpected payment body: %v", payment)
	}

	// Payment already enrolled the caller
	w, _ = doJSON(t, r, http.MethodPost, "/api/events/"+eventID+"/register", clientToken, gin.H{})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 after payment enrolled the caller, got %d", w.Code)
	}
}

func TestRoutes_PromotionRequiresPromoterRole(t *testing.T) {
	r, db := setupServer(t)

	adminToken, _ := registerUser(t, r, "admin", models.RoleAdmin)
	clientToken, _ := registerUser(t, r, "client", models.RoleClient)
	promoterToken, _ := registerUser(t, r, "promoter", models.RolePromoter)
	eventID := createEvent(t, r, adminToken, 10, 0)

	w, _ := doJSON(t, r, http.MethodPost, "/api/payments/event-promotion/"+eventID, clientToken, gin.H{
		"promotion_level": "basic",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-promoter, got %d", w.Code)
	}

	w, resp := doJSON(t, r, http.MethodPost, "/api/payments/event-promotion/"+eventID, promoterToken, gin.H{
		"payment_method":  "credit_card",
		"promotion_level": "featured",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("promotion payment: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	payment, _ := resp["payment"].(map[string]interface{})
	if payment["amount"] != float64(100) {
		t.Errorf("expected featured tier to cost 100, got %v", payment["amount"])
	}

	var stored models.Event
	if err := db.First(&stored, "id = ?", eventID).Error; err != nil {
		t.Fatalf("failed to load event: %v", err)
	}
	if !stored.IsPromoted || stored.PromotionLevel != models.PromotionFeatured {
		t.Errorf("expected event to carry the promotion, got %+v", stored)
	}
}

func TestRoutes_RoleGates(t *testing.T) {
	r, _ := setupServer(t)

	clientToken, _ := registerUser(t, r, "client", models.RoleClient)
	adminToken, _ := registerUser(t, r, "admin", models.RoleAdmin)

	w, _ := doJSON(t, r, http.MethodGet, "/api/admin/stats", clientToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for client on admin route, got %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodGet, "/api/admin/stats", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/promoter/stats", adminToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for admin on promoter route, got %d", w.Code)
	}
}

func TestRoutes_Recommendations(t *testing.T) {
	r, _ := setupServer(t)

	adminToken, _ := registerUser(t, r, "admin", models.RoleAdmin)
	clientToken, _ := registerUser(t, r, "client", models.RoleClient)
	createEvent(t, r, adminToken, 10, 0)

	// Store a profile, then ask with an empty body
	w, _ := doJSON(t, r, http.MethodPut, "/api/auth/profile", clientToken, gin.H{
		"skills":    []string{"design"},
		"expertise": []string{"seminar"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("profile update: expected 200, got %d", w.Code)
	}

	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/recommendations", clientToken, gin.H{})
	if w.Code != http.StatusOK {
		t.Fatalf("recommendations: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	recs, _ := resp["recommendations"].([]interface{})
	if len(recs) == 0 {
		t.Errorf("expected at least one recommendation for a matching profile")
	}
}
