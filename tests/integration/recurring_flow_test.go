package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestRecurringFlow_SweepMaterializesDueTransactions(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "recurring@test.com", "password123")

	acct := app.createBankAccount(t, token, "Main", "500.00")

	// A monthly subscription that came due last month
	dueDate := time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	rec := app.request("POST", "/api/v1/recurring-transactions",
		fmt.Sprintf(`{"name":"Streaming","amount":"15.00","type":"expense","bank_account_id":%.0f,"frequency":"monthly","start_date":%q}`,
			acct, dueDate), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("recurring create failed: %d %s", rec.Code, rec.Body.String())
	}

	// A definition due far in the future is not touched
	futureDate := time.Now().AddDate(0, 2, 0).Format("2006-01-02")
	rec = app.request("POST", "/api/v1/recurring-transactions",
		fmt.Sprintf(`{"name":"Annual fee","amount":"99.00","type":"expense","bank_account_id":%.0f,"frequency":"yearly","start_date":%q}`,
			acct, futureDate), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("recurring create failed: %d %s", rec.Code, rec.Body.String())
	}

	// First sweep materializes the overdue subscription
	rec = app.request("POST", "/api/v1/recurring-transactions/generate", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("sweep failed: %d %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["count"].(float64) != 1 {
		t.Fatalf("expected 1 generated, got %v", parseJSON(t, rec)["count"])
	}

	// Second sweep catches the advanced due date, which is now today or earlier
	rec = app.request("POST", "/api/v1/recurring-transactions/generate", "", "")
	secondCount := parseJSON(t, rec)["count"].(float64)

	// Third sweep finds nothing due
	rec = app.request("POST", "/api/v1/recurring-transactions/generate", "", "")
	if parseJSON(t, rec)["count"].(float64) != 0 {
		t.Fatalf("expected nothing due on third sweep, got %v", parseJSON(t, rec)["count"])
	}

	// The user's transactions contain the materialized rows
	rec = app.request("GET", "/api/v1/transactions", "", token)
	data := parseJSON(t, rec)["data"].([]interface{})
	expected := 1 + int(secondCount)
	if len(data) != expected {
		t.Fatalf("expected %d generated transactions, got %d", expected, len(data))
	}
	tx := data[0].(map[string]interface{})
	if tx["name"] != "Streaming" {
		t.Errorf("expected generated transaction Streaming, got %v", tx["name"])
	}
	if tx["amount"] != "15.00" {
		t.Errorf("expected amount 15.00, got %v", tx["amount"])
	}
}

func TestRecurringFlow_ToggleStopsGeneration(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "toggle@test.com", "password123")

	acct := app.createBankAccount(t, token, "Main", "100.00")

	dueDate := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	rec := app.request("POST", "/api/v1/recurring-transactions",
		fmt.Sprintf(`{"name":"Gym","amount":"30.00","type":"expense","bank_account_id":%.0f,"frequency":"monthly","start_date":%q}`,
			acct, dueDate), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("recurring create failed: %d %s", rec.Code, rec.Body.String())
	}
	recurring := parseJSON(t, rec)["recurring_transaction"].(map[string]interface{})
	recurringID := recurring["id"].(float64)

	// Pause it before any sweep
	rec = app.request("PATCH", fmt.Sprintf("/api/v1/recurring-transactions/%.0f/toggle", recurringID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle failed: %d %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["recurring_transaction"].(map[string]interface{})["is_active"] != false {
		t.Fatal("expected recurring transaction to be paused")
	}

	rec = app.request("POST", "/api/v1/recurring-transactions/generate", "", "")
	if parseJSON(t, rec)["count"].(float64) != 0 {
		t.Errorf("expected no generation for paused definition, got %v", parseJSON(t, rec)["count"])
	}
}
