package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/enterprise-service/admin-backend/events"
	"github.com/enterprise-service/admin-backend/models"
	"github.com/enterprise-service/admin-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Data       json.RawMessage `json:"data"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Timestamp  string          `json:"timestamp"`
}

func newTestServer(t *testing.T) *httptest.Server {
	return newTestServerWithEvents(t, nil)
}

func newTestServerWithEvents(t *testing.T, eventsClient *events.Client) *httptest.Server {
	db := services.SetupSQLiteTestDB(t)
	authService := services.NewAuthService("test-secret", time.Hour)
	handler := NewHandler(db, authService, eventsClient, nil)

	mux := http.NewServeMux()
	handler.SetupRoutes(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func registerAdmin(t *testing.T, server *httptest.Server, email string) models.AuthResponse {
	resp := doJSON(t, http.MethodPost, server.URL+"/auth/register", "", map[string]string{
		"email":      email,
		"password":   "Test123!",
		"first_name": "Alice",
		"last_name":  "Bell",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var auth models.AuthResponse
	decodeBody(t, resp, &auth)
	require.NotEmpty(t, auth.AccessToken)
	require.NotNil(t, auth.Admin)
	return auth
}

func TestEndToEndScenario(t *testing.T) {
	server := newTestServer(t)

	// Register returns a token and the admin without any password material
	resp := doJSON(t, http.MethodPost, server.URL+"/auth/register", "", map[string]string{
		"email":      "a@b.com",
		"password":   "Test123!",
		"first_name": "Ana",
		"last_name":  "Bell",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var raw map[string]json.RawMessage
	decodeBody(t, resp, &raw)
	require.Contains(t, raw, "access_token")
	require.Contains(t, raw, "admin")

	var admin map[string]interface{}
	require.NoError(t, json.Unmarshal(raw["admin"], &admin))
	assert.Equal(t, "a@b.com", admin["email"])
	assert.NotContains(t, admin, "password_hash")
	assert.NotContains(t, admin, "password")

	// Login with the same credentials
	resp = doJSON(t, http.MethodPost, server.URL+"/auth/login", "", map[string]string{
		"email":    "a@b.com",
		"password": "Test123!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var auth models.AuthResponse
	decodeBody(t, resp, &auth)
	require.NotEmpty(t, auth.AccessToken)

	// Empty enterprise listing, enveloped
	resp = doJSON(t, http.MethodGet, server.URL+"/enterprises", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	decodeBody(t, resp, &env)
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.Equal(t, "Success", env.Message)
	assert.NotEmpty(t, env.Timestamp)
	assert.JSONEq(t, "[]", string(env.Data))

	// Creating an enterprise defaults its settings
	resp = doJSON(t, http.MethodPost, server.URL+"/enterprises", auth.AccessToken, map[string]string{
		"name":          "Co",
		"contact_email": "c@co.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	decodeBody(t, resp, &env)
	var enterprise models.EnterpriseResponse
	require.NoError(t, json.Unmarshal(env.Data, &enterprise))
	assert.Equal(t, "Co", enterprise.Name)
	require.NotNil(t, enterprise.Settings)
	assert.Equal(t, models.ReportGenerationImmediate, enterprise.Settings.ReportGenerationType)
	assert.Equal(t, models.AccessTypeFull, enterprise.Settings.AccessType)
}

func TestAuthRoutes(t *testing.T) {
	t.Run("Register_DuplicateEmail", func(t *testing.T) {
		server := newTestServer(t)
		registerAdmin(t, server, "a@b.com")

		resp := doJSON(t, http.MethodPost, server.URL+"/auth/register", "", map[string]string{
			"email":      "a@b.com",
			"password":   "Test123!",
			"first_name": "Alice",
			"last_name":  "Bell",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Register_WeakPassword", func(t *testing.T) {
		server := newTestServer(t)

		resp := doJSON(t, http.MethodPost, server.URL+"/auth/register", "", map[string]string{
			"email":      "a@b.com",
			"password":   "alllowercase1",
			"first_name": "Alice",
			"last_name":  "Bell",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Login_WrongPassword_And_UnknownEmail_Identical", func(t *testing.T) {
		server := newTestServer(t)
		registerAdmin(t, server, "a@b.com")

		wrongPass := doJSON(t, http.MethodPost, server.URL+"/auth/login", "", map[string]string{
			"email": "a@b.com", "password": "Wrong123!",
		})
		unknown := doJSON(t, http.MethodPost, server.URL+"/auth/login", "", map[string]string{
			"email": "nobody@b.com", "password": "Wrong123!",
		})

		assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)

		var first, second map[string]string
		decodeBody(t, wrongPass, &first)
		decodeBody(t, unknown, &second)
		assert.Equal(t, first, second)
	})

	t.Run("Verify_ReturnsClaims", func(t *testing.T) {
		server := newTestServer(t)
		auth := registerAdmin(t, server, "a@b.com")

		resp := doJSON(t, http.MethodGet, server.URL+"/auth/verify", auth.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var claims map[string]interface{}
		decodeBody(t, resp, &claims)
		assert.Equal(t, auth.Admin.AdminID, claims["admin_id"])
		assert.Equal(t, "a@b.com", claims["email"])
	})

	t.Run("Verify_MissingToken", func(t *testing.T) {
		server := newTestServer(t)

		resp := doJSON(t, http.MethodGet, server.URL+"/auth/verify", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Refresh_ReissuesToken", func(t *testing.T) {
		server := newTestServer(t)
		auth := registerAdmin(t, server, "a@b.com")

		resp := doJSON(t, http.MethodPost, server.URL+"/auth/refresh", auth.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var refreshed models.AuthResponse
		decodeBody(t, resp, &refreshed)
		assert.NotEmpty(t, refreshed.AccessToken)
		require.NotNil(t, refreshed.Admin)
		assert.Equal(t, auth.Admin.AdminID, refreshed.Admin.AdminID)

		// The fresh token works on protected routes
		resp = doJSON(t, http.MethodGet, server.URL+"/admins", refreshed.AccessToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestAdminRoutes(t *testing.T) {
	t.Run("RequireAuth", func(t *testing.T) {
		server := newTestServer(t)

		resp := doJSON(t, http.MethodGet, server.URL+"/admins", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, http.MethodGet, server.URL+"/admins", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("ExpiredToken_DistinctMessage", func(t *testing.T) {
		server := newTestServer(t)
		expired := services.NewAuthService("test-secret", -time.Minute)
		token, err := expired.GenerateToken("admin-123", "a@b.com")
		require.NoError(t, err)

		resp := doJSON(t, http.MethodGet, server.URL+"/admins", token, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "Token expired", body["error"])
	})

	t.Run("Create_Conflict", func(t *testing.T) {
		server := newTestServer(t)
		auth := registerAdmin(t, server, "a@b.com")

		resp := doJSON(t, http.MethodPost, server.URL+"/admins", auth.AccessToken, map[string]string{
			"email":      "a@b.com",
			"first_name": "Alice",
			"last_name":  "Bell",
			"password":   "abc123",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("CreateGetPatchDelete", func(t *testing.T) {
		server := newTestServer(t)
		auth := registerAdmin(t, server, "root@b.com")

		resp := doJSON(t, http.MethodPost, server.URL+"/admins", auth.AccessToken, map[string]string{
			"email":      "c@d.com",
			"first_name": "Carol",
			"last_name":  "Dunn",
			"password":   "abc123",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var env envelope
		decodeBody(t, resp, &env)
		var created models.AdminResponse
		require.NoError(t, json.Unmarshal(env.Data, &created))

		resp = doJSON(t, http.MethodGet, server.URL+"/admins/"+created.AdminID, auth.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &env)
		var fetched models.AdminResponse
		require.NoError(t, json.Unmarshal(env.Data, &fetched))
		assert.Equal(t, created.AdminID, fetched.AdminID)

		resp = doJSON(t, http.MethodPatch, server.URL+"/admins/"+created.AdminID, auth.AccessToken, map[string]string{
			"first_name": "Caroline",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &env)
		var patched models.AdminResponse
		require.NoError(t, json.Unmarshal(env.Data, &patched))
		assert.Equal(t, "Caroline", patched.FirstName)

		resp = doJSON(t, http.MethodDelete, server.URL+"/admins/"+created.AdminID, auth.AccessToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, http.MethodGet, server.URL+"/admins/"+created.AdminID, auth.AccessToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("MethodNotAllowed", func(t *testing.T) {
		server := newTestServer(t)
		auth := registerAdmin(t, server, "a@b.com")

		resp := doJSON(t, http.MethodPut, server.URL+"/admins/some-id", auth.AccessToken, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestEnterpriseRoutes(t *testing.T) {
	t.Run("Create_ValidationFailure", func(t *testing.T) {
		server := newTestServer(t)
		auth := registerAdmin(t, server, "a@b.com")

		resp := doJSON(t, http.MethodPost, server.URL+"/enterprises", auth.AccessToken, map[string]string{
			"name": "Co",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Create_InvalidSettingsEnum", func(t *testing.T) {
		server := newTestServer(t)
		auth := registerAdmin(t, server, "a@b.com")

		resp := doJSON(t, http.MethodPost, server.URL+"/enterprises", auth.AccessToken, map[string]interface{}{
			"name":          "Co",
			"contact_email": "c@co.com",
			"settings":      map[string]string{"access_type": "everything"},
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("UpdateViaPutAndPatch", func(t *testing.T) {
		server := newTestServer(t)
		auth := registerAdmin(t, server, "a@b.com")

		resp := doJSON(t, http.MethodPost, server.URL+"/enterprises", auth.AccessToken, map[string]string{
			"name": "Co", "contact_email": "c@co.com",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var env envelope
		decodeBody(t, resp, &env)
		var created models.EnterpriseResponse
		require.NoError(t, json.Unmarshal(env.Data, &created))

		resp = doJSON(t, http.MethodPut, server.URL+"/enterprises/"+created.EnterpriseID, auth.AccessToken, map[string]string{
			"name": "PutCo",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &env)
		var updated models.EnterpriseResponse
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.Equal(t, "PutCo", updated.Name)

		resp = doJSON(t, http.MethodPatch, server.URL+"/enterprises/"+created.EnterpriseID, auth.AccessToken, map[string]string{
			"name": "PatchCo",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &env)
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.Equal(t, "PatchCo", updated.Name)
	})

	t.Run("Delete_ReturnsMessage", func(t *testing.T) {
		server := newTestServer(t)
		auth := registerAdmin(t, server, "a@b.com")

		resp := doJSON(t, http.MethodPost, server.URL+"/enterprises", auth.AccessToken, map[string]string{
			"name": "Co", "contact_email": "c@co.com",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var env envelope
		decodeBody(t, resp, &env)
		var created models.EnterpriseResponse
		require.NoError(t, json.Unmarshal(env.Data, &created))

		resp = doJSON(t, http.MethodDelete, server.URL+"/enterprises/"+created.EnterpriseID, auth.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &env)
		var message map[string]string
		require.NoError(t, json.Unmarshal(env.Data, &message))
		assert.Contains(t, message["message"], "deleted")

		resp = doJSON(t, http.MethodDelete, server.URL+"/enterprises/"+created.EnterpriseID, auth.AccessToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		server := newTestServer(t)
		auth := registerAdmin(t, server, "a@b.com")

		resp := doJSON(t, http.MethodGet, server.URL+"/enterprises/missing-id", auth.AccessToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestEnterpriseCacheLookaside(t *testing.T) {
	newCachedServer := func(t *testing.T) (*httptest.Server, *miniredis.Miniredis) {
		mr := miniredis.RunT(t)
		eventsClient, err := events.NewClient(&events.Config{Addr: mr.Addr()})
		require.NoError(t, err)
		t.Cleanup(func() { eventsClient.Close() })

		server := newTestServerWithEvents(t, eventsClient)
		return server, mr
	}

	t.Run("ItemHitServedFromCache", func(t *testing.T) {
		server, mr := newCachedServer(t)
		auth := registerAdmin(t, server, "a@b.com")

		// No DB row exists for this id; only the cache can answer
		cached := `{"enterprise_id":"ent-1","name":"Cached Co"}`
		require.NoError(t, mr.Set("enterprise:ent-1", cached))

		resp := doJSON(t, http.MethodGet, server.URL+"/enterprises/ent-1", auth.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var env envelope
		decodeBody(t, resp, &env)
		assert.Equal(t, "Success", env.Message)
		assert.JSONEq(t, cached, string(env.Data))
	})

	t.Run("ListHitServedFromCache", func(t *testing.T) {
		server, mr := newCachedServer(t)
		auth := registerAdmin(t, server, "a@b.com")

		cached := `[{"enterprise_id":"ent-1","name":"Cached Co"}]`
		require.NoError(t, mr.Set("enterprise:all", cached))

		resp := doJSON(t, http.MethodGet, server.URL+"/enterprises", auth.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var env envelope
		decodeBody(t, resp, &env)
		assert.JSONEq(t, cached, string(env.Data))
	})

	t.Run("MissFallsThroughToDatabase", func(t *testing.T) {
		server, mr := newCachedServer(t)
		auth := registerAdmin(t, server, "a@b.com")

		resp := doJSON(t, http.MethodPost, server.URL+"/enterprises", auth.AccessToken, map[string]string{
			"name": "Co", "contact_email": "c@co.com",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var env envelope
		decodeBody(t, resp, &env)
		var created models.EnterpriseResponse
		require.NoError(t, json.Unmarshal(env.Data, &created))
		require.False(t, mr.Exists("enterprise:"+created.EnterpriseID))

		resp = doJSON(t, http.MethodGet, server.URL+"/enterprises/"+created.EnterpriseID, auth.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeBody(t, resp, &env)
		var fetched models.EnterpriseResponse
		require.NoError(t, json.Unmarshal(env.Data, &fetched))
		assert.Equal(t, "Co", fetched.Name)
	})
}

func TestRootRoute(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	decodeBody(t, resp, &env)
	assert.JSONEq(t, `"Hello World!"`, string(env.Data))

	resp, err = http.Get(server.URL + "/nonsense")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
