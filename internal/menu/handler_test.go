package menu

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"biteaffair/internal/guests"

	"github.com/gin-gonic/gin"
)

func setupMenuTestRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handler := NewHandler(NewService(repo), func(c *gin.Context) (guests.Count, error) {
		return guests.Count{Veg: 10, NonVeg: 5, Jain: 5}, nil
	})

	r.GET("/api/menu", handler.List)
	r.GET("/api/menu/addons", handler.Addons)
	r.POST("/api/menu/veg-package/validate", handler.ValidatePackage)
	return r
}

func TestHandler_ListFiltersAndSorts(t *testing.T) {
	r := setupMenuTestRouter(NewEmbeddedRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/menu?mode=customized&category=Breads&sort=price-high", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Items []Resolved `json:"items"`
		Count int        `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Count != 2 {
		t.Fatalf("expected 2 breads, got %d", body.Count)
	}
	if body.Items[0].ID != "cus_lachha_paratha" {
		t.Errorf("expected most expensive bread first, got %s", body.Items[0].ID)
	}
	if body.Items[0].Serves != 20 {
		t.Errorf("expected breads to serve 20, got %d", body.Items[0].Serves)
	}
}

func TestHandler_ListRejectsUnknownMode(t *testing.T) {
	r := setupMenuTestRouter(NewEmbeddedRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/menu?mode=brunch", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// TestHandler_LoadFailureIsRetryable checks a missing source becomes a 503 retry panel.
func TestHandler_LoadFailureIsRetryable(t *testing.T) {
	r := setupMenuTestRouter(NewMockRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/menu?mode=cocktail", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"retryable":true`) {
		t.Errorf("expected retryable flag, got %s", w.Body.String())
	}
}

func TestHandler_ValidatePackage(t *testing.T) {
	r := setupMenuTestRouter(NewEmbeddedRepository())

	body := `{"tier":"standard","selection":{"starters":["std_paneer_tikka"],"main":["std_chole"],"rice":["std_veg_pulao"],"breads":["std_butter_naan"],"dessert":["std_moong_halwa"]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/menu/veg-package/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	incomplete := `{"tier":"standard","selection":{"starters":["std_paneer_tikka"]}}`
	req = httptest.NewRequest(http.MethodPost, "/api/menu/veg-package/validate", strings.NewReader(incomplete))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}
