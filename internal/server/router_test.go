package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cari-takip-backend/internal/auth"
	"cari-takip-backend/internal/config"
	"cari-takip-backend/internal/logger"
	"cari-takip-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789abcdef0123456789"

func newTestApp(t *testing.T) (*fiber.App, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	cfg := &config.Config{
		JWTSecret:   testSecret,
		CORSOrigins: "*",
		LogLevel:    "info",
		ListLimit:   1000,
		FetchLimit:  10000,
	}
	require.NoError(t, auth.NewService(st, testSecret, logger.Discard()).SeedAdmin(context.Background(), "admin123"))
	return New(Deps{Config: cfg, Store: st, Log: logger.Discard()}), st
}

func do(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func detail(t *testing.T, data []byte) string {
	return decode[map[string]string](t, data)["detail"]
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp, data := do(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	return decode[map[string]any](t, data)["token"].(string)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	resp, data := do(t, app, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"status": "healthy", "service": "cari-takip"}, decode[map[string]string](t, data))

	resp, _ = do(t, app, http.MethodGet, "/api/", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCustomerLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	resp, data := do(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "Ahmet", "phone": "0555"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	created := decode[map[string]any](t, data)
	id := created["id"].(string)
	assert.NotEmpty(t, id)
	assert.NotEmpty(t, created["created_at"])

	resp, data = do(t, app, http.MethodPut, "/api/customers/"+id, map[string]any{"name": "Ahmet Bey"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	updated := decode[map[string]any](t, data)
	assert.Equal(t, "Ahmet Bey", updated["name"])
	assert.Nil(t, updated["phone"])
	assert.Equal(t, created["created_at"], updated["created_at"])

	resp, data = do(t, app, http.MethodGet, "/api/customers", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, data), 1)

	resp, data = do(t, app, http.MethodDelete, "/api/customers/"+id, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Cari silindi", decode[map[string]string](t, data)["message"])

	resp, data = do(t, app, http.MethodGet, "/api/customers/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Cari bulunamadı", detail(t, data))

	resp, data = do(t, app, http.MethodPut, "/api/customers/"+id, map[string]any{"name": "X"}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Cari bulunamadı", detail(t, data))
}

func TestCustomerValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := do(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "  "}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCustomerSummary(t *testing.T) {
	app, _ := newTestApp(t)

	_, data := do(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "Ahmet"}, "")
	id := decode[map[string]any](t, data)["id"].(string)

	due := time.Now().UTC().Format(time.RFC3339)
	for _, p := range []map[string]any{
		{"customer_id": id, "amount": 100, "payment_type": "borc", "due_date": due},
		{"customer_id": id, "amount": 40, "payment_type": "borc", "is_paid": true, "due_date": due},
		{"customer_id": id, "amount": 999, "payment_type": "alacak", "due_date": due},
	} {
		resp, data := do(t, app, http.MethodPost, "/api/payments", p, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	}

	resp, data := do(t, app, http.MethodGet, "/api/customers/"+id+"/summary", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	summary := decode[map[string]any](t, data)
	assert.Equal(t, 100.0, summary["total_debt"])
	assert.Equal(t, 40.0, summary["total_paid"])
	assert.Equal(t, 3.0, summary["total_payments"])

	resp, data = do(t, app, http.MethodGet, "/api/customers/yok/summary", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Cari bulunamadı", detail(t, data))
}

func TestPaymentCopiesCustomerName(t *testing.T) {
	app, _ := newTestApp(t)

	_, data := do(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "Ahmet"}, "")
	id := decode[map[string]any](t, data)["id"].(string)

	resp, data := do(t, app, http.MethodPost, "/api/payments", map[string]any{
		"customer_id":  id,
		"amount":       250.5,
		"payment_type": "alacak",
		"due_date":     "2025-03-01",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	p := decode[map[string]any](t, data)
	assert.Equal(t, "Ahmet", p["customer_name"])
	assert.Equal(t, "2025-03-01T00:00:00Z", p["due_date"])

	// isim sonradan değişse de ödemedeki kopya değişmez
	do(t, app, http.MethodPut, "/api/customers/"+id, map[string]any{"name": "Mehmet"}, "")

	resp, data = do(t, app, http.MethodGet, "/api/payments?customer_id="+id, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]map[string]any](t, data)
	require.Len(t, list, 1)
	assert.Equal(t, "Ahmet", list[0]["customer_name"])

	resp, data = do(t, app, http.MethodGet, "/api/payments?customer_id=baska", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]map[string]any](t, data))
}

func TestPaymentValidationAndNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	base := map[string]any{"customer_id": "c1", "customer_name": "A", "amount": 10, "payment_type": "alacak", "due_date": "2025-01-01"}
	with := func(k string, v any) map[string]any {
		m := map[string]any{}
		for key, val := range base {
			m[key] = val
		}
		m[k] = v
		return m
	}

	for name, body := range map[string]map[string]any{
		"tür":   with("payment_type", "hediye"),
		"tutar": with("amount", -1),
		"vade":  with("due_date", "yarın"),
		"cari":  with("customer_id", ""),
		"ödeme": with("payment_date", "dün"),
	} {
		resp, data := do(t, app, http.MethodPost, "/api/payments", body, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, name+": "+string(data))
	}

	resp, data := do(t, app, http.MethodPut, "/api/payments/yok", base, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Ödeme bulunamadı", detail(t, data))

	resp, data = do(t, app, http.MethodDelete, "/api/payments/yok", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Ödeme bulunamadı", detail(t, data))
}

func TestPaymentUpdateAndDelete(t *testing.T) {
	app, _ := newTestApp(t)

	resp, data := do(t, app, http.MethodPost, "/api/payments", map[string]any{
		"customer_id": "c1", "customer_name": "A", "amount": 10, "payment_type": "alacak", "due_date": "2025-01-01",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	id := decode[map[string]any](t, data)["id"].(string)

	resp, data = do(t, app, http.MethodPut, "/api/payments/"+id, map[string]any{
		"customer_id": "c1", "customer_name": "A", "amount": 10, "payment_type": "alacak",
		"is_paid": true, "payment_date": "2025-01-02", "due_date": "2025-01-01",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	p := decode[map[string]any](t, data)
	assert.Equal(t, true, p["is_paid"])
	assert.Equal(t, "2025-01-02T00:00:00Z", p["payment_date"])

	resp, data = do(t, app, http.MethodDelete, "/api/payments/"+id, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ödeme silindi", decode[map[string]string](t, data)["message"])
}

func TestUpcomingPayments(t *testing.T) {
	app, _ := newTestApp(t)

	now := time.Now().UTC()
	for name, due := range map[string]time.Time{
		"yakın":  now.Add(48 * time.Hour),
		"uzak":   now.AddDate(0, 0, 10),
		"geçmiş": now.Add(-48 * time.Hour),
	} {
		resp, data := do(t, app, http.MethodPost, "/api/payments", map[string]any{
			"customer_id": "c1", "customer_name": name, "amount": 10, "payment_type": "alacak",
			"due_date": due.Format(time.RFC3339),
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	}

	names := func(path string) []string {
		resp, data := do(t, app, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
		var out []string
		for _, p := range decode[[]map[string]any](t, data) {
			out = append(out, p["customer_name"].(string))
		}
		return out
	}

	assert.Equal(t, []string{"yakın"}, names("/api/payments/upcoming"))
	assert.ElementsMatch(t, []string{"yakın", "uzak"}, names("/api/payments/upcoming?days=15"))

	resp, _ := do(t, app, http.MethodGet, "/api/payments/upcoming?days=-1", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTransactions(t *testing.T) {
	app, _ := newTestApp(t)

	resp, data := do(t, app, http.MethodPost, "/api/transactions", map[string]any{
		"type": "gelir", "payment_method": "nakit", "amount": 1000, "description": "satış",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	tx := decode[map[string]any](t, data)
	assert.NotEmpty(t, tx["transaction_date"])
	id := tx["id"].(string)

	resp, _ = do(t, app, http.MethodPost, "/api/transactions", map[string]any{
		"type": "gider", "payment_method": "havale", "amount": 10, "description": "x",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data = do(t, app, http.MethodGet, "/api/transactions", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, data), 1)

	resp, data = do(t, app, http.MethodDelete, "/api/transactions/"+id, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "İşlem silindi", decode[map[string]string](t, data)["message"])

	resp, data = do(t, app, http.MethodDelete, "/api/transactions/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "İşlem bulunamadı", detail(t, data))
}

func TestDashboardStats(t *testing.T) {
	app, _ := newTestApp(t)

	do(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "A"}, "")
	for _, body := range []map[string]any{
		{"type": "gelir", "payment_method": "nakit", "amount": 1000, "description": "satış"},
		{"type": "gider", "payment_method": "nakit", "amount": 500, "description": "kira"},
		{"type": "gelir", "payment_method": "pos", "amount": 200, "description": "kart"},
	} {
		resp, data := do(t, app, http.MethodPost, "/api/transactions", body, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	}
	for _, amount := range []float64{1000, 500.50} {
		resp, data := do(t, app, http.MethodPost, "/api/payments", map[string]any{
			"customer_id": "c1", "customer_name": "A", "amount": amount, "payment_type": "alacak", "due_date": "2025-01-01",
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	}

	resp, data := do(t, app, http.MethodGet, "/api/dashboard/stats", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	stats := decode[map[string]float64](t, data)
	assert.Equal(t, 1500.50, stats["total_receivable"])
	assert.Equal(t, 0.0, stats["total_payable"])
	assert.Equal(t, 1.0, stats["total_customers"])
	assert.Equal(t, 500.0, stats["cash_balance"])
	assert.Equal(t, 200.0, stats["pos_balance"])
	assert.Equal(t, 700.0, stats["total_balance"])
}

func TestReportExport(t *testing.T) {
	app, _ := newTestApp(t)

	resp, data := do(t, app, http.MethodGet, "/api/reports/export?report_type=customers", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	cd := resp.Header.Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(cd, "attachment; filename=customers_raporu_"), cd)
	assert.True(t, strings.HasSuffix(cd, ".xlsx"), cd)
	assert.NotEmpty(t, data)

	resp, data = do(t, app, http.MethodGet, "/api/reports/export?report_type=invalid_type", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Geçersiz rapor tipi", detail(t, data))
}

func TestUserRoutesRequireToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := do(t, app, http.MethodGet, "/api/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/users", nil, "bozuk-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/auth/change-password", map[string]string{}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// iş verisi token istemez
	resp, _ = do(t, app, http.MethodGet, "/api/customers", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBusinessRoutesOpenWithoutToken(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{
		"/api/customers",
		"/api/payments",
		"/api/payments/upcoming",
		"/api/transactions",
		"/api/dashboard/stats",
		"/api/reports/export?report_type=summary",
		"/api/audit-logs",
	} {
		resp, data := do(t, app, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, path+": "+string(data))
	}

	resp, data := do(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "Ahmet"}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	// tokensız da geçersiz rapor tipi 400 döner
	resp, data = do(t, app, http.MethodGet, "/api/reports/export?report_type=invalid_type", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Geçersiz rapor tipi", detail(t, data))

	// token zorunlu route'lar hâlâ kapalı
	for _, path := range []string{"/api/users", "/api/auth/me"} {
		resp, _ := do(t, app, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestLoginFailure(t *testing.T) {
	app, _ := newTestApp(t)

	resp, data := do(t, app, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "yanlis"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Kullanıcı adı veya şifre hatalı", detail(t, data))
}

func TestUserManagement(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	resp, data := do(t, app, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", decode[map[string]any](t, data)["username"])

	resp, data = do(t, app, http.MethodPost, "/api/users", map[string]string{"username": "ayse", "password": "123456"}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	ayse := decode[map[string]any](t, data)
	assert.Equal(t, "user", ayse["role"])
	assert.NotContains(t, ayse, "password_hash")

	resp, data = do(t, app, http.MethodPost, "/api/users", map[string]string{"username": "ayse", "password": "x"}, token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Bu kullanıcı adı zaten mevcut", detail(t, data))

	resp, data = do(t, app, http.MethodGet, "/api/users", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decode[[]map[string]any](t, data)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u, "password_hash")
	}

	var adminID string
	for _, u := range users {
		if u["username"] == "admin" {
			adminID = u["id"].(string)
		}
	}

	// ayse de admin'i silemez
	ayseToken := login(t, app, "ayse", "123456")
	resp, data = do(t, app, http.MethodDelete, "/api/users/"+adminID, nil, ayseToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Admin kullanıcısı silinemez", detail(t, data))

	resp, data = do(t, app, http.MethodDelete, "/api/users/"+ayse["id"].(string), nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Kullanıcı silindi", decode[map[string]string](t, data)["message"])

	resp, data = do(t, app, http.MethodDelete, "/api/users/"+ayse["id"].(string), nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Kullanıcı bulunamadı", detail(t, data))
}

func TestChangePassword(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	resp, data := do(t, app, http.MethodPost, "/api/auth/change-password", map[string]string{
		"username": "admin", "old_password": "yanlis", "new_password": "yeni",
	}, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Mevcut şifre hatalı", detail(t, data))

	resp, data = do(t, app, http.MethodPost, "/api/auth/change-password", map[string]string{
		"username": "admin", "old_password": "admin123", "new_password": "yeni",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, "Şifre başarıyla değiştirildi", decode[map[string]string](t, data)["message"])

	login(t, app, "admin", "yeni")
}

func TestAuditLogsRecordUser(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "admin", "admin123")

	_, data := do(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "Ahmet"}, token)
	id := decode[map[string]any](t, data)["id"].(string)
	do(t, app, http.MethodDelete, "/api/customers/"+id, nil, "")

	resp, data := do(t, app, http.MethodGet, "/api/audit-logs?entity_type=customer&entity_id="+id, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	logs := decode[[]map[string]any](t, data)
	require.Len(t, logs, 2)
	// en yeni önce
	assert.Equal(t, "delete", logs[0]["action"])
	assert.Equal(t, "", logs[0]["username"])
	assert.Equal(t, "create", logs[1]["action"])
	assert.Equal(t, "admin", logs[1]["username"])
	assert.Equal(t, "Cari eklendi: Ahmet", logs[1]["description"])
}
