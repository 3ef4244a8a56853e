package handlers_test

import (
	"net/http"
	"testing"
)

const storageMsg = "storage unavailable, try again"

func TestBrokenTablesAnswer503(t *testing.T) {
	a := newTestApp(t, nil)
	admin := a.as(t, "sid-admin", "u-admin")

	if _, err := a.db.Exec(`DROP TABLE products`); err != nil {
		t.Fatal(err)
	}
	code, body := a.do(t, "GET", "/api/v1/products", nil, admin)
	if code != http.StatusServiceUnavailable || body["error"] != storageMsg {
		t.Fatalf("products: expected 503 %q, got %d %v", storageMsg, code, body)
	}

	if _, err := a.db.Exec(`DROP TABLE sales`); err != nil {
		t.Fatal(err)
	}
	code, body = a.do(t, "GET", "/api/v1/admin/sales", nil, admin)
	if code != http.StatusServiceUnavailable || body["error"] != storageMsg {
		t.Fatalf("sales: expected 503 %q, got %d %v", storageMsg, code, body)
	}
}

func TestClosedDatabaseAnswers503(t *testing.T) {
	a := newTestApp(t, nil)
	admin := a.as(t, "sid-admin", "u-admin")

	entries := captureLogs(t, func() {
		if err := a.db.Close(); err != nil {
			t.Fatal(err)
		}
		for _, path := range []string{"/api/v1/products", "/api/v1/admin/sales"} {
			code, body := a.do(t, "GET", path, nil, admin)
			if code != http.StatusServiceUnavailable || body["error"] != storageMsg {
				t.Fatalf("%s: expected 503 %q, got %d %v", path, storageMsg, code, body)
			}
		}
	})
	if !hasAction(entries, "session.lookup.fail") {
		t.Fatal("storage failure during session lookup was not logged")
	}
}
