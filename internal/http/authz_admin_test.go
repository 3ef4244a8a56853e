package handlers_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestAdminPagesRequireReportsRole(t *testing.T) {
	a := newTestApp(t, nil)

	code, _ := a.do(t, "GET", "/admin/report", nil, nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous, got %d", code)
	}

	seller := a.as(t, "sid-seller", "u-vendedor")
	code, body := a.do(t, "GET", "/admin/report", nil, seller)
	if code != http.StatusForbidden {
		t.Fatalf("expected 403 for seller, got %d", code)
	}
	if s, _ := body["_body"].(string); !strings.Contains(s, "access denied") {
		t.Fatalf("expected rendered denial page, got %q", s)
	}

	admin := a.as(t, "sid-admin", "u-admin")
	code, body = a.do(t, "GET", "/admin/report", nil, admin)
	if code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", code)
	}
	if s, _ := body["_body"].(string); !strings.Contains(s, "Total vendido: $0.00") {
		t.Fatalf("report page missing total: %q", s)
	}

	code, _ = a.do(t, "GET", "/admin/closeout", nil, admin)
	if code != http.StatusOK {
		t.Fatalf("expected 200 for admin close-out, got %d", code)
	}
}

func TestSellerCannotManageCatalog(t *testing.T) {
	a := newTestApp(t, nil)
	seller := a.as(t, "sid-seller", "u-vendedor")

	code, _ := a.do(t, "POST", "/api/v1/admin/products", map[string]string{"name": "Té", "price": "1.50"}, seller)
	if code != http.StatusForbidden {
		t.Fatalf("expected 403 for seller add, got %d", code)
	}
	code, _ = a.do(t, "GET", "/api/v1/admin/sales", nil, seller)
	if code != http.StatusForbidden {
		t.Fatalf("expected 403 for seller sales report, got %d", code)
	}

	_, body := a.do(t, "GET", "/api/v1/products", nil, seller)
	list, _ := body["products"].([]any)
	if len(list) != 4 {
		t.Fatalf("catalog changed by rejected request: %v", body)
	}
}

func TestAdminCatalogRoundTrip(t *testing.T) {
	a := newTestApp(t, nil)
	admin := a.as(t, "sid-admin", "u-admin")

	code, body := a.do(t, "POST", "/api/v1/admin/products", map[string]string{"name": "Té Verde", "price": "1,80"}, admin)
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%v", code, body)
	}
	id, _ := body["id"].(string)
	if body["price"] != "1.80" {
		t.Fatalf("expected price 1.80, got %v", body["price"])
	}

	code, _ = a.do(t, "POST", "/api/v1/admin/products", map[string]string{"name": "té verde", "price": "2.00"}, admin)
	if code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate name, got %d", code)
	}
	code, _ = a.do(t, "POST", "/api/v1/admin/products", map[string]string{"name": "Agua", "price": "-1"}, admin)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad price, got %d", code)
	}

	code, body = a.do(t, "PUT", "/api/v1/admin/products/"+id, map[string]string{"name": "Té Verde", "price": "2.10"}, admin)
	if code != http.StatusOK || body["price"] != "2.10" {
		t.Fatalf("update failed: %d %v", code, body)
	}

	code, body = a.do(t, "GET", "/api/v1/products/T%C3%A9%20Verde", nil, admin)
	if code != http.StatusOK || body["id"] != id {
		t.Fatalf("find by name failed: %d %v", code, body)
	}

	code, _ = a.do(t, "DELETE", "/api/v1/admin/products/"+id, nil, admin)
	if code != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", code)
	}
	code, _ = a.do(t, "DELETE", "/api/v1/admin/products/"+id, nil, admin)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", code)
	}
}
