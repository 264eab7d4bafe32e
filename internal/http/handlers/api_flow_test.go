package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"veneya/internal/config"
	"veneya/internal/http/handlers"
	"veneya/internal/repos"
)

const geocodeCentro = `{
  "status": "OK",
  "results": [{"address_components": [{"long_name": "Centro", "types": ["neighborhood"]}]}]
}`

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	geoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(geocodeCentro))
	}))
	t.Cleanup(geoSrv.Close)

	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{GeocodeURL: geoSrv.URL, GeocodeTimeout: time.Second}
	deps := handlers.NewDeps(db, cfg, zaptest.NewLogger(t))

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/accounts", deps.AuthHandler.Register)
	api.Post("/login", deps.AuthHandler.Login)
	api.Post("/logout", deps.AuthHandler.Logout)
	api.Post("/recover", deps.AuthHandler.Recover)
	api.Delete("/account", handlers.RequireAccount(deps.Accounts), deps.AuthHandler.DeleteAccount)
	api.Get("/products", handlers.RequireAccount(deps.Accounts), deps.ProductHandler.List)
	api.Post("/products", handlers.RequireAccount(deps.Accounts), deps.ProductHandler.Create)
	api.Post("/checkout", handlers.RequireAccount(deps.Accounts), deps.CheckoutHandler.Place)
	api.Get("/report/zones", handlers.RequireAccount(deps.Accounts), deps.ReportHandler.Zones)
	api.Get("/report/zones/:zone", handlers.RequireAccount(deps.Accounts), deps.ReportHandler.ZoneDetail)
	api.Get("/report/zones/:zone/sales", handlers.RequireAccount(deps.Accounts), deps.ReportHandler.ZoneSales)
	return app
}

func jsonReq(method, path, body, sid string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return req
}

func sidCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return c.Value
		}
	}
	return ""
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAPIFlow(t *testing.T) {
	app := newTestApp(t)

	// register
	resp, err := app.Test(jsonReq("POST", "/api/v1/accounts",
		`{"username":"maria","email":"maria@veneya.test","secret":"secret123","average_earnings":"350.00"}`, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// duplicate username -> conflict
	resp, err = app.Test(jsonReq("POST", "/api/v1/accounts",
		`{"username":"maria","email":"other@veneya.test","secret":"secret123","average_earnings":"0"}`, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// bad credentials -> 401
	resp, err = app.Test(jsonReq("POST", "/api/v1/login", `{"username":"maria","secret":"wrongpass"}`, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// login
	resp, err = app.Test(jsonReq("POST", "/api/v1/login", `{"username":"maria","secret":"secret123"}`, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sid := sidCookie(resp)
	require.NotEmpty(t, sid)

	// unauthenticated access is rejected
	resp, err = app.Test(jsonReq("GET", "/api/v1/products", "", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// create products
	resp, err = app.Test(jsonReq("POST", "/api/v1/products", `{"name":"Tostilocos","unit_earnings":"10.00"}`, sid))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	prodA := int64(decodeBody(t, resp)["product_id"].(float64))

	resp, err = app.Test(jsonReq("POST", "/api/v1/products", `{"name":"Esquites","unit_earnings":"5.00"}`, sid))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	prodB := int64(decodeBody(t, resp)["product_id"].(float64))

	// checkout: 2x A, 1x B, one zero line skipped
	body := `{"lines":[`
	body += `{"product_id":` + itoa(prodA) + `,"quantity":2},`
	body += `{"product_id":` + itoa(prodB) + `,"quantity":1},`
	body += `{"product_id":` + itoa(prodB) + `,"quantity":0}],`
	body += `"latitude":20.6736,"longitude":-103.344}`
	resp, err = app.Test(jsonReq("POST", "/api/v1/checkout", body, sid))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	checkout := decodeBody(t, resp)
	assert.Equal(t, "Centro", checkout["zone"])
	assert.Len(t, checkout["sale_ids"], 2)

	// zone ranking
	resp, err = app.Test(jsonReq("GET", "/api/v1/report/zones", "", sid))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ranking := decodeBody(t, resp)
	zones := ranking["zones"].([]any)
	require.Len(t, zones, 1)

	// zone detail: 2*10 + 1*5 = 25
	resp, err = app.Test(jsonReq("GET", "/api/v1/report/zones/Centro", "", sid))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decodeBody(t, resp)
	assert.Equal(t, 25.0, detail["total"])
	assert.Len(t, detail["products"], 2)

	// per-sale breakdown
	resp, err = app.Test(jsonReq("GET", "/api/v1/report/zones/Centro/sales", "", sid))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	breakdown := decodeBody(t, resp)
	assert.Len(t, breakdown["sales"], 2)

	// recovery resets the secret
	resp, err = app.Test(jsonReq("POST", "/api/v1/recover",
		`{"username":"maria","email":"maria@veneya.test","average_earnings":"350.00"}`, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	newSecret := decodeBody(t, resp)["new_secret"].(string)
	assert.Len(t, newSecret, 8)

	resp, err = app.Test(jsonReq("POST", "/api/v1/login", `{"username":"maria","secret":"`+newSecret+`"}`, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRecoverRejectsWrongAnswers(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/v1/accounts",
		`{"username":"maria","email":"maria@veneya.test","secret":"secret123","average_earnings":"350.00"}`, ""))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonReq("POST", "/api/v1/recover",
		`{"username":"maria","email":"maria@veneya.test","average_earnings":"100"}`, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
