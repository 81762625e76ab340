package integration

import (
	"net/http"
	"testing"
)

func TestContactFlow(t *testing.T) {
	t.Run("customer lifecycle", func(t *testing.T) {
		app := setupApp(t)
		token, _ := app.registerUser(t, "contacts@example.com", "password123")

		rec := app.request("POST", "/api/v1/customers",
			`{"name":"Acme Corp","email":"billing@acme.test","payment_terms":14}`, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		customer := parseJSON(t, rec)["customer"].(map[string]interface{})
		customerID := customer["id"].(string)
		if customer["payment_terms"] != float64(14) {
			t.Errorf("expected 14 day terms, got %v", customer["payment_terms"])
		}

		rec = app.request("PUT", "/api/v1/customers/"+customerID,
			`{"is_active":false}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = app.request("GET", "/api/v1/customers?active_only=true", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		listed := parseJSON(t, rec)["data"].([]interface{})
		if len(listed) != 0 {
			t.Errorf("expected no active customers, got %d", len(listed))
		}

		rec = app.request("DELETE", "/api/v1/customers/"+customerID, "", token)
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("vendor lifecycle", func(t *testing.T) {
		app := setupApp(t)
		token, _ := app.registerUser(t, "vendors@example.com", "password123")

		rec := app.request("POST", "/api/v1/vendors",
			`{"name":"Paper Supply Co","type":"business"}`, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		vendor := parseJSON(t, rec)["vendor"].(map[string]interface{})
		vendorID := vendor["id"].(string)

		rec = app.request("GET", "/api/v1/vendors/"+vendorID, "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		rec = app.request("DELETE", "/api/v1/vendors/"+vendorID, "", token)
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}

		rec = app.request("GET", "/api/v1/vendors/"+vendorID, "", token)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 after delete, got %d", rec.Code)
		}
	})

	t.Run("contacts are isolated per user", func(t *testing.T) {
		app := setupApp(t)
		tokenA, _ := app.registerUser(t, "contacta@example.com", "password123")
		tokenB, _ := app.registerUser(t, "contactb@example.com", "password123")

		rec := app.request("POST", "/api/v1/customers", `{"name":"Private Client"}`, tokenA)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		customerID := parseJSON(t, rec)["customer"].(map[string]interface{})["id"].(string)

		rec = app.request("GET", "/api/v1/customers/"+customerID, "", tokenB)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}
