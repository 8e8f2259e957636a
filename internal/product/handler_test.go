package product

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func jsonReq(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newTestApp(seed []Product) *fiber.App {
	repo := NewInMemoryRepository(seed)
	h := NewHandler(NewService(repo))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func TestGetProducts_VisibilityFiltering(t *testing.T) {
	seed := []Product{
		{ID: "a", Name: "ظاهر", NameEn: "Visible", Active: true, CreatedAt: "2025-01-01T00:00:00Z"},
		{ID: "b", Name: "مخفي", NameEn: "Hidden", Active: false, CreatedAt: "2025-01-02T00:00:00Z"},
	}
	app := newTestApp(seed)

	res, err := app.Test(httptest.NewRequest("GET", "/api/products", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	var storefront []Product
	if err := json.NewDecoder(res.Body).Decode(&storefront); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(storefront) != 1 || storefront[0].ID != "a" {
		t.Fatalf("inactive product leaked into storefront listing: %+v", storefront)
	}

	res2, _ := app.Test(httptest.NewRequest("GET", "/api/products?admin=true", nil))
	var adminList []Product
	if err := json.NewDecoder(res2.Body).Decode(&adminList); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(adminList) != 2 {
		t.Fatalf("admin listing must include inactive products, got %d", len(adminList))
	}
	// newest first
	if adminList[0].ID != "b" {
		t.Fatalf("expected newest-first ordering, got %+v", adminList)
	}
}

func TestByIDsRoute_DoesNotCollideWithDetailRoute(t *testing.T) {
	seed := []Product{
		{ID: "x1", Name: "أ", NameEn: "A", Active: true},
		{ID: "x2", Name: "ب", NameEn: "B", Active: true},
	}
	app := newTestApp(seed)

	req := httptest.NewRequest("GET", "/api/products/by-ids?ids=x2,missing", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d (by-ids captured by :id route?)", res.StatusCode)
	}
	var got []Product
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "x2" {
		t.Fatalf("expected only existing ids back, got %+v", got)
	}
}

func TestCreateProduct_RequiredFieldValidation(t *testing.T) {
	app := newTestApp(nil)

	res, err := app.Test(jsonReq(t, "POST", "/api/products", map[string]any{}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	for _, field := range []string{"name", "nameEn", "description", "descriptionEn"} {
		if !strings.Contains(body, field) {
			t.Fatalf("validation message missing %q: %s", field, body)
		}
	}

	// nothing was created
	list, _ := app.Test(httptest.NewRequest("GET", "/api/products?admin=true", nil))
	lb, _ := io.ReadAll(list.Body)
	if strings.TrimSpace(string(lb)) != "[]" {
		t.Fatalf("failed create must not persist a row: %s", lb)
	}
}

func TestCreateProduct_DefaultsAndIdentity(t *testing.T) {
	app := newTestApp(nil)

	res, err := app.Test(jsonReq(t, "POST", "/api/products", map[string]any{
		"name":          "قفطان",
		"nameEn":        "Caftan",
		"description":   "وصف",
		"descriptionEn": "Desc",
		"active":        true,
	}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 got %d", res.StatusCode)
	}
	var created Product
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if created.Images == nil || created.Tags == nil {
		t.Fatalf("omitted array fields must default to empty lists: %+v", created)
	}
	if created.CreatedAt == "" || created.UpdatedAt == "" {
		t.Fatalf("expected server-assigned timestamps")
	}
}

func TestCreateProduct_VisibleByDefault(t *testing.T) {
	app := newTestApp(nil)

	// no "active" key at all: the product must land visible
	res, err := app.Test(jsonReq(t, "POST", "/api/products", map[string]any{
		"name":          "قفطان",
		"nameEn":        "Caftan",
		"description":   "وصف",
		"descriptionEn": "Desc",
	}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var created Product
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !created.Active {
		t.Fatalf("product created without an active field must default to visible")
	}

	list, _ := app.Test(httptest.NewRequest("GET", "/api/products", nil))
	var storefront []Product
	if err := json.NewDecoder(list.Body).Decode(&storefront); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(storefront) != 1 {
		t.Fatalf("new product missing from storefront listing: %+v", storefront)
	}

	// an explicit false still wins over the default
	res2, _ := app.Test(jsonReq(t, "POST", "/api/products", map[string]any{
		"name":          "مخفي",
		"nameEn":        "Hidden",
		"description":   "وصف",
		"descriptionEn": "Desc",
		"active":        false,
	}))
	var hidden Product
	if err := json.NewDecoder(res2.Body).Decode(&hidden); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hidden.Active {
		t.Fatalf("explicit active=false was overridden by the default")
	}
}

func TestUpdateProduct_MergePatch(t *testing.T) {
	seed := []Product{{ID: "p1", Name: "A", NameEn: "A", Featured: true, Active: true}}
	app := newTestApp(seed)

	res, err := app.Test(jsonReq(t, "PUT", "/api/products/p1", map[string]any{"featured": false}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	var updated Product
	if err := json.NewDecoder(res.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Featured {
		t.Fatalf("explicit featured=false was not applied")
	}
	if updated.Name != "A" {
		t.Fatalf("omitted field changed: %q", updated.Name)
	}
}

func TestToggleLike_Validation(t *testing.T) {
	seed := []Product{{ID: "p1", Name: "A", NameEn: "A", Active: true, Likes: 1}}
	app := newTestApp(seed)

	res, _ := app.Test(jsonReq(t, "POST", "/api/products/p1/like", map[string]any{"action": "boost"}))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown action, got %d", res.StatusCode)
	}

	res2, _ := app.Test(jsonReq(t, "POST", "/api/products/p1/like", map[string]any{"action": "remove"}))
	var out map[string]int
	if err := json.NewDecoder(res2.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["likes"] != 0 {
		t.Fatalf("expected likes=0 got %d", out["likes"])
	}

	// removing below zero clamps instead of going negative
	res3, _ := app.Test(jsonReq(t, "POST", "/api/products/p1/like", map[string]any{"action": "remove"}))
	var out3 map[string]int
	if err := json.NewDecoder(res3.Body).Decode(&out3); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out3["likes"] != 0 {
		t.Fatalf("likes went negative: %d", out3["likes"])
	}
}

func TestUnknownProductIs404(t *testing.T) {
	app := newTestApp(nil)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/products/nope", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"error"`) {
		t.Fatalf("error responses must use the {error} shape: %s", b)
	}
}
