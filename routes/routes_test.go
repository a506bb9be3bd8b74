package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SanskrutiSakharkar/DonateMateProject/utils"

	"github.com/DATA-DOG/go-sqlmock"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}

	gateway := utils.NewRazorpayClientWith("http://unused.local", "rzp_test_key", "test_secret")
	return InitRouter(db, gateway), mock
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestPostDonation_EndToEndScenario(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `donations`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	payload := []byte(`{"name":"Asha Rao","email":"asha@example.com","amount":500,"category":"education"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/donations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Status != "pending" {
		t.Fatalf("expected pending status, got %q", resp.Data.Status)
	}
}

func TestNGOCategory_EmptyIsSuccess(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT \\* FROM `ngo_partners`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "verified", "rating", "projects"}))

	req := httptest.NewRequest(http.MethodGet, "/api/ngos/category/healthcare", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !bytes.Contains([]byte(body), []byte(`"success":true`)) || !bytes.Contains([]byte(body), []byte(`"data":[]`)) {
		t.Fatalf("expected empty success envelope, got %s", body)
	}
}

func TestStatusPatch_RequiresAdminToken(t *testing.T) {
	router, _ := newTestRouter(t)
	t.Setenv("JWT_SECRET", "test-jwt-secret")

	req := httptest.NewRequest(http.MethodPatch, "/api/donations/1/status",
		bytes.NewReader([]byte(`{"status":"completed"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without admin token, got %d", rec.Code)
	}
}

func TestUnknownDonationIDPattern(t *testing.T) {
	router, _ := newTestRouter(t)

	// non-numeric ids don't match the route at all
	req := httptest.NewRequest(http.MethodGet, "/api/donations/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-numeric id, got %d", rec.Code)
	}
}
