package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gatewayregistry "keygate/contexts/card-network/gateway-registry"
	gatewayports "keygate/contexts/card-network/gateway-registry/ports"
	newsfeed "keygate/contexts/card-network/news-feed"
	newsports "keygate/contexts/card-network/news-feed/ports"
	accountservice "keygate/contexts/identity-access/account-service"
	accountapp "keygate/contexts/identity-access/account-service/application"
	accountports "keygate/contexts/identity-access/account-service/ports"
)

type testLedger struct {
	accounts accountapp.Service
}

func (l testLedger) TryConsume(ctx context.Context, accountID int64, cost int64) (gatewayports.ConsumeOutcome, error) {
	result, err := l.accounts.TryConsume(ctx, accountID, cost)
	if err != nil {
		return gatewayports.ConsumeOutcome{}, err
	}
	return gatewayports.ConsumeOutcome{
		Granted:   result.Granted,
		Remaining: result.Remaining,
	}, nil
}

func newTestServer() *Server {
	accounts := accountservice.NewInMemoryModule(slog.Default())
	accounts.Store.SeedAccount(accountports.Account{
		ID:        1,
		AccessKey: "demo123",
		Credits:   1000,
		Language:  accountports.LanguageEnglish,
	})

	gateways := gatewayregistry.NewInMemoryModule(testLedger{accounts: accounts.Service}, slog.Default())
	gateways.Store.SeedGateway(gatewayports.Gateway{ID: 1, Name: "Stripe Charge", Endpoint: "stripe.com/charge", Active: true})
	gateways.Store.SeedGateway(gatewayports.Gateway{ID: 2, Name: "PayPal Direct", Endpoint: "paypal.com/direct", Active: false})

	news := newsfeed.NewInMemoryModule(slog.Default())
	news.Store.SeedNews(newsports.NewsItem{
		ID:        1,
		Title:     "Welcome!",
		Content:   "Welcome to the checker",
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	})

	return New(accounts, gateways, news, slog.Default(), ":0")
}

func TestLoginResolvesDemoAccount(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"access_key":"demo123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		ID      int64 `json:"id"`
		Credits int64 `json:"credits"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 1 || resp.Credits != 1000 {
		t.Fatalf("unexpected account payload: %s", rr.Body.String())
	}
}

func TestLoginRejectsUnknownKeyWithoutEchoingIt(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"access_key":"stolen-key-guess"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "stolen-key-guess") {
		t.Fatalf("error payload leaked the submitted key: %s", rr.Body.String())
	}
}

func TestGetAccountUnknownReturns404(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/accounts/99", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGetAccountRejectsMalformedID(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/accounts/abc", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUpdatePreferencesRejectsUnknownLanguage(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"language":"fr"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/accounts/1/preferences", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUpdatePreferencesPatchesProxy(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"proxy_host":"10.0.0.5","proxy_port":"3128"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/accounts/1/preferences", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		ProxyHost string `json:"proxy_host"`
		Language  string `json:"language"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ProxyHost != "10.0.0.5" || resp.Language != "en" {
		t.Fatalf("unexpected patched account: %s", rr.Body.String())
	}
}

func TestListGatewaysIncludesInactiveEntries(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/gateways", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Gateways []struct {
			Name   string `json:"name"`
			Active bool   `json:"active"`
		} `json:"gateways"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Gateways) != 2 || resp.Gateways[0].Name != "Stripe Charge" || resp.Gateways[1].Active {
		t.Fatalf("unexpected catalog: %s", rr.Body.String())
	}
}

func TestCheckCardDebitsOneCredit(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"account_id":1,"card":"4242424242424242|12|2026|123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/gateways/1/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Status           string `json:"status"`
		RemainingCredits int64  `json:"remaining_credits"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RemainingCredits != 999 {
		t.Fatalf("expected 999 remaining, got %d", resp.RemainingCredits)
	}
	if resp.Status != "APPROVED" && resp.Status != "DECLINED" {
		t.Fatalf("unexpected verdict status %q", resp.Status)
	}
}

func TestCheckCardOnInactiveGatewayIsRefusedBeforeDebit(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"account_id":1,"card":"4242424242424242|12|2026|123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/gateways/2/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}

	account := httptest.NewRequest(http.MethodGet, "/api/accounts/1", nil)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, account)
	if !strings.Contains(rr.Body.String(), `"credits":1000`) {
		t.Fatalf("refused check must not debit: %s", rr.Body.String())
	}
}

func TestCheckCardUnknownGatewayReturns404(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"account_id":1,"card":"4242424242424242|12|2026|123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/gateways/99/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCheckCardWithEmptyBalanceReturns402(t *testing.T) {
	server := newTestServer()

	broke := httptest.NewRequest(http.MethodPost, "/api/gateways/1/check", bytes.NewReader(
		[]byte(`{"account_id":2,"card":"4242424242424242|12|2026|123"}`),
	))
	broke.Header.Set("Content-Type", "application/json")

	// Account 2 does not exist; seed it with a zero balance first.
	server.accounts.Store.SeedAccount(accountports.Account{
		ID:        2,
		AccessKey: "broke-key",
		Credits:   0,
		Language:  accountports.LanguageEnglish,
	})

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, broke)

	if rr.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListNewsReturnsSeededAnnouncement(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Welcome!") {
		t.Fatalf("expected seeded announcement, got %s", rr.Body.String())
	}
}
