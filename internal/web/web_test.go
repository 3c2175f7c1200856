package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/carrental/internal/db"
	"github.com/erazemk/carrental/internal/model"
	"github.com/erazemk/carrental/internal/service"
	"github.com/erazemk/carrental/internal/store"
)

const testJWTSecret = "test-secret"

type testSite struct {
	server *httptest.Server
	store  *store.Store
	svc    *service.Services
}

func setupTestSite(t *testing.T) *testSite {
	t.Helper()
	st := store.New(db.NewTestDB(t))
	svc := service.New(st, testJWTSecret, service.DefaultOptions())
	svc.Accounts.HashCost = bcrypt.MinCost

	router, err := NewRouter(svc, false)
	require.NoError(t, err)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	site := &testSite{server: server, store: st, svc: svc}
	site.user(t, "admin", model.RoleAdmin)
	site.user(t, "mgr", model.RoleManager)
	return site
}

func (s *testSite) user(t *testing.T, username, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = s.store.CreateUser(context.Background(), username, string(hash), role)
	require.NoError(t, err)
}

// client returns an HTTP client that keeps cookies and does not follow
// redirects.
func (s *testSite) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (s *testSite) login(t *testing.T, username string) *http.Client {
	t.Helper()
	c := s.client(t)
	resp, err := c.PostForm(s.server.URL+"/login", url.Values{"username": {username}, "password": {"password123"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	return c
}

func get(t *testing.T, c *http.Client, u string) (*http.Response, string) {
	t.Helper()
	resp, err := c.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestLoadTemplates(t *testing.T) {
	ts, err := LoadTemplates()
	require.NoError(t, err)
	for _, p := range pages {
		assert.Contains(t, ts.templates, p)
	}
}

func TestLoginRedirectsByRole(t *testing.T) {
	site := setupTestSite(t)

	for username, want := range map[string]string{"admin": "/admin/dashboard", "mgr": "/manager/dashboard"} {
		c := site.client(t)
		resp, err := c.PostForm(site.server.URL+"/login", url.Values{"username": {username}, "password": {"password123"}})
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, want, resp.Header.Get("Location"))
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	site := setupTestSite(t)

	resp, err := site.client(t).PostForm(site.server.URL+"/login", url.Values{"username": {"admin"}, "password": {"wrong-password"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "Invalid username or password.")
}

func TestGateRedirectsAnonymous(t *testing.T) {
	site := setupTestSite(t)

	for _, path := range []string{"/admin/dashboard", "/manager/cars", "/settings"} {
		resp, _ := get(t, site.client(t), site.server.URL+path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}
}

func TestGateForbidsWrongRole(t *testing.T) {
	site := setupTestSite(t)

	admin := site.login(t, "admin")
	resp, _ := get(t, admin, site.server.URL+"/manager/reservations")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	mgr := site.login(t, "mgr")
	resp, _ = get(t, mgr, site.server.URL+"/admin/managers")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = get(t, mgr, site.server.URL+"/manager/reservations")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublicAvailableCars(t *testing.T) {
	site := setupTestSite(t)
	ctx := context.Background()
	actor := service.Actor{UserID: 2, Username: "mgr", Role: model.RoleManager}

	_, err := site.svc.Fleet.Create(ctx, actor, service.CarInput{
		Make: "Skoda", Model: "Octavia", Year: 2021, RegistrationNumber: "LJ-AB-123", DailyRate: 4500,
	})
	require.NoError(t, err)
	_, err = site.svc.Fleet.Create(ctx, actor, service.CarInput{
		Make: "Renault", Model: "Clio", Year: 2019, RegistrationNumber: "LJ-CD-456", DailyRate: 3000,
		Status: model.CarStatusMaintenance,
	})
	require.NoError(t, err)

	resp, body := get(t, site.client(t), site.server.URL+"/cars/available")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Octavia")
	assert.Contains(t, body, "45.00")
	assert.NotContains(t, body, "Clio")
}

func TestReservationFlow(t *testing.T) {
	site := setupTestSite(t)
	ctx := context.Background()
	actor := service.Actor{UserID: 2, Username: "mgr", Role: model.RoleManager}

	car, err := site.svc.Fleet.Create(ctx, actor, service.CarInput{
		Make: "Toyota", Model: "Yaris", Year: 2022, RegistrationNumber: "KR-11-AAA", DailyRate: 5000,
	})
	require.NoError(t, err)
	client, err := site.svc.Clients.Create(ctx, actor, service.ClientInput{Name: "Ana Novak", Email: "ana@example.com", Phone: "041 000 000"})
	require.NoError(t, err)

	mgr := site.login(t, "mgr")
	form := url.Values{
		"car_id":     {itoa(car.ID)},
		"client_id":  {itoa(client.ID)},
		"start_date": {"2024-03-01"},
		"end_date":   {"2024-03-03"},
	}
	resp, err := mgr.PostForm(site.server.URL+"/manager/reservations/new", form)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	list, err := site.svc.Reservations.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.Cents(15000), list[0].TotalPrice)

	resp, body := get(t, mgr, site.server.URL+"/manager/reservations")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Toyota Yaris (KR-11-AAA)")
	assert.Contains(t, body, "Ana Novak")
	assert.Contains(t, body, "Reservation created, total 150.00.")

	manage := site.server.URL + "/manager/reservations/manage/" + itoa(list[0].ID)
	resp, err = mgr.PostForm(manage+"/confirm", nil)
	require.NoError(t, err)
	resp.Body.Close()

	res, err := site.svc.Reservations.Get(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationConfirmed, res.Status)

	// Confirming twice is rejected in strict mode.
	resp, err = mgr.PostForm(manage+"/confirm", nil)
	require.NoError(t, err)
	resp.Body.Close()
	_, body = get(t, mgr, site.server.URL+"/manager/reservations")
	assert.Contains(t, body, "class=\"alert error\"")
}

func TestReservationInvalidDates(t *testing.T) {
	site := setupTestSite(t)
	mgr := site.login(t, "mgr")

	resp, err := mgr.PostForm(site.server.URL+"/manager/reservations/new", url.Values{
		"car_id": {"1"}, "client_id": {"1"}, "start_date": {"03/01/2024"}, "end_date": {"2024-03-03"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "YYYY-MM-DD")
}

func TestManagerCRUD(t *testing.T) {
	site := setupTestSite(t)
	admin := site.login(t, "admin")

	resp, err := admin.PostForm(site.server.URL+"/admin/managers/add", url.Values{"username": {"novak"}, "password": {"longenough"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, err = admin.PostForm(site.server.URL+"/admin/managers/add", url.Values{"username": {"novak"}, "password": {"longenough"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	_, body := get(t, admin, site.server.URL+"/admin/managers")
	assert.Contains(t, body, "novak")
}

func TestLogoutRevokesSession(t *testing.T) {
	site := setupTestSite(t)
	mgr := site.login(t, "mgr")

	u, _ := url.Parse(site.server.URL)
	var token string
	for _, c := range mgr.Jar.Cookies(u) {
		if c.Name == tokenCookie {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	resp, err := mgr.PostForm(site.server.URL+"/logout", nil)
	require.NoError(t, err)
	resp.Body.Close()

	// Replaying the old cookie must not restore the session.
	req, err := http.NewRequest(http.MethodGet, site.server.URL+"/manager/dashboard", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: tokenCookie, Value: token})
	resp, err = site.client(t).Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.True(t, strings.HasSuffix(resp.Header.Get("Location"), "/login"))
}

func TestCarImageNotFound(t *testing.T) {
	site := setupTestSite(t)
	resp, _ := get(t, site.client(t), site.server.URL+"/cars/99/image")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	setFlash(rec, flashSuccess, "Car added: 100%")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	kind, msg := popFlash(httptest.NewRecorder(), req)
	assert.Equal(t, flashSuccess, kind)
	assert.Equal(t, "Car added: 100%", msg)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestSettingsWrongCurrentPassword(t *testing.T) {
	site := setupTestSite(t)
	mgr := site.login(t, "mgr")

	resp, err := mgr.PostForm(site.server.URL+"/settings", url.Values{
		"current_password": {"not-my-password"},
		"new_password":     {"newpassword1"},
		"confirm_password": {"newpassword1"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "current password is incorrect")
}
