package routes

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/openbook-ledger/openbook/internal/config"
	"github.com/openbook-ledger/openbook/internal/logging"
)

type accountPayload struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Direction string          `json:"direction"`
}

type transactionPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Entries []struct {
		ID        string          `json:"id"`
		Direction string          `json:"direction"`
		Amount    decimal.Decimal `json:"amount"`
		AccountID string          `json:"account_id"`
	} `json:"entries"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	cfg := config.Config{BalanceTolerance: decimal.RequireFromString("0.01")}
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func openAccount(t *testing.T, app *fiber.App, name, direction string) accountPayload {
	t.Helper()
	var acct accountPayload
	status := doJSON(t, app, fiber.MethodPost, "/accounts",
		fmt.Sprintf(`{"name":%q,"direction":%q}`, name, direction), &acct)
	if status != fiber.StatusCreated {
		t.Fatalf("open account %s: status %d", name, status)
	}
	return acct
}

func TestOpenAndGetAccount(t *testing.T) {
	app := setupApp(t)

	created := openAccount(t, app, "Cash", "debit")
	if created.ID == "" || created.Direction != "debit" || !created.Balance.IsZero() {
		t.Fatalf("unexpected account payload: %+v", created)
	}

	var fetched accountPayload
	status := doJSON(t, app, fiber.MethodGet, "/accounts/"+created.ID, "", &fetched)
	if status != fiber.StatusOK {
		t.Fatalf("get account: status %d", status)
	}
	if fetched.ID != created.ID || fetched.Name != "Cash" {
		t.Fatalf("round trip mismatch: %+v", fetched)
	}
}

func TestOpenAccountInvalidDirection(t *testing.T) {
	app := setupApp(t)
	status := doJSON(t, app, fiber.MethodPost, "/accounts", `{"direction":"upwards"}`, nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestGetUnknownAccount(t *testing.T) {
	app := setupApp(t)
	status := doJSON(t, app, fiber.MethodGet, "/accounts/does-not-exist", "", nil)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestSubmitBalancedTransaction(t *testing.T) {
	app := setupApp(t)
	cash := openAccount(t, app, "Cash", "debit")
	revenue := openAccount(t, app, "Revenue", "credit")

	var transaction transactionPayload
	status := doJSON(t, app, fiber.MethodPost, "/transactions", fmt.Sprintf(
		`{"name":"sale","entries":[
            {"direction":"debit","amount":100,"account_id":%q},
            {"direction":"credit","amount":100,"account_id":%q}]}`,
		cash.ID, revenue.ID), &transaction)
	if status != fiber.StatusCreated {
		t.Fatalf("submit transaction: status %d", status)
	}
	if transaction.ID == "" || len(transaction.Entries) != 2 {
		t.Fatalf("unexpected transaction payload: %+v", transaction)
	}
	for _, entry := range transaction.Entries {
		if entry.ID == "" {
			t.Fatalf("expected generated entry ids: %+v", transaction)
		}
	}

	var after accountPayload
	doJSON(t, app, fiber.MethodGet, "/accounts/"+cash.ID, "", &after)
	if !after.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected cash balance 100, got %s", after.Balance)
	}
	doJSON(t, app, fiber.MethodGet, "/accounts/"+revenue.ID, "", &after)
	if !after.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected revenue balance 100, got %s", after.Balance)
	}

	var fetched transactionPayload
	status = doJSON(t, app, fiber.MethodGet, "/transactions/"+transaction.ID, "", &fetched)
	if status != fiber.StatusOK {
		t.Fatalf("get transaction: status %d", status)
	}
	if fetched.Name != "sale" {
		t.Fatalf("expected persisted transaction name, got %q", fetched.Name)
	}
}

func TestSubmitUnbalancedTransactionRejected(t *testing.T) {
	app := setupApp(t)
	cash := openAccount(t, app, "Cash", "debit")
	revenue := openAccount(t, app, "Revenue", "credit")

	status := doJSON(t, app, fiber.MethodPost, "/transactions", fmt.Sprintf(
		`{"entries":[
            {"direction":"debit","amount":100,"account_id":%q},
            {"direction":"credit","amount":50,"account_id":%q}]}`,
		cash.ID, revenue.ID), nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}

	var after accountPayload
	doJSON(t, app, fiber.MethodGet, "/accounts/"+cash.ID, "", &after)
	if !after.Balance.IsZero() {
		t.Fatalf("rejected transaction must not move balances, cash %s", after.Balance)
	}
}

func TestSubmitTransactionUnknownAccount(t *testing.T) {
	app := setupApp(t)
	cash := openAccount(t, app, "Cash", "debit")

	status := doJSON(t, app, fiber.MethodPost, "/transactions", fmt.Sprintf(
		`{"entries":[
            {"direction":"debit","amount":100,"account_id":%q},
            {"direction":"credit","amount":100,"account_id":"ghost"}]}`,
		cash.ID), nil)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestSubmitTransactionCallerSuppliedID(t *testing.T) {
	app := setupApp(t)
	cash := openAccount(t, app, "Cash", "debit")
	revenue := openAccount(t, app, "Revenue", "credit")

	body := fmt.Sprintf(
		`{"id":"client-tx-7","entries":[
            {"direction":"debit","amount":10,"account_id":%q},
            {"direction":"credit","amount":10,"account_id":%q}]}`,
		cash.ID, revenue.ID)

	var transaction transactionPayload
	status := doJSON(t, app, fiber.MethodPost, "/transactions", body, &transaction)
	if status != fiber.StatusCreated {
		t.Fatalf("submit: status %d", status)
	}
	if transaction.ID != "client-tx-7" {
		t.Fatalf("expected supplied id, got %s", transaction.ID)
	}

	if status := doJSON(t, app, fiber.MethodPost, "/transactions", body, nil); status != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate id, got %d", status)
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := setupApp(t)

	var body map[string]any
	status := doJSON(t, app, fiber.MethodGet, "/health", "", &body)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["status"] != "UP" {
		t.Fatalf("expected status UP, got %v", body["status"])
	}
}
