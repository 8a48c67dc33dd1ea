package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-local/config"
	"github.com/fekuna/omnipos-local/internal/database/dbtest"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t      *testing.T
	router http.Handler
	token  string
}

func newTestServer(t *testing.T) *testServer {
	db := dbtest.New(t)
	cfg := &config.Config{
		JWT:    config.JWTConfig{SecretKey: "test-secret", TTL: time.Hour},
		Auth:   config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Backup: config.BackupConfig{Dir: t.TempDir()},
		Stock:  config.StockConfig{LowStockThreshold: 6},
	}
	a := New(cfg, db, nil, logger.NewNop())
	require.NoError(t, a.Seeder.InitializeDefaults(context.Background(), "admin-pass"))

	s := &testServer{t: t, router: a.Router()}
	rec := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin", "password": "admin-pass"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	s.token = login.Token
	return s
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) decode(rec *httptest.ResponseRecorder, v interface{}) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)
	s.token = ""

	rec := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/stores", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSellFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/v1/stores", map[string]string{"name": "Corner Shop", "email": "owner@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var st struct {
		ID string `json:"id"`
	}
	s.decode(rec, &st)

	rec = s.do(http.MethodPost, "/api/v1/stores/"+st.ID+"/products", map[string]interface{}{
		"userDefinedId": "4006381333931",
		"name":          "Pencil",
		"price":         "1.25",
		"quantity":      10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p struct {
		ID string `json:"id"`
	}
	s.decode(rec, &p)

	rec = s.do(http.MethodPost, "/api/v1/stores/"+st.ID+"/sales", map[string]interface{}{"productId": p.ID, "quantity": 4})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sold struct {
		Total string `json:"total"`
	}
	s.decode(rec, &sold)
	assert.Equal(t, "5", sold.Total)

	rec = s.do(http.MethodPost, "/api/v1/stores/"+st.ID+"/sales", map[string]interface{}{"productId": p.ID, "quantity": 7})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/products/"+p.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Quantity int `json:"quantity"`
	}
	s.decode(rec, &got)
	assert.Equal(t, 6, got.Quantity)

	rec = s.do(http.MethodGet, "/api/v1/stores/"+st.ID+"/sales", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sales struct {
		Total int `json:"total"`
		Sales []struct {
			Product *struct {
				Name string `json:"name"`
			} `json:"product"`
		} `json:"sales"`
	}
	s.decode(rec, &sales)
	assert.Equal(t, 1, sales.Total)
	require.Len(t, sales.Sales, 1)
	require.NotNil(t, sales.Sales[0].Product)
	assert.Equal(t, "Pencil", sales.Sales[0].Product.Name)

	rec = s.do(http.MethodGet, "/api/v1/stores/"+st.ID+"/products/search?q=pen", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var found []struct {
		ID string `json:"id"`
	}
	s.decode(rec, &found)
	assert.Len(t, found, 1)

	rec = s.do(http.MethodGet, "/api/v1/stores/"+st.ID+"/recent-searches", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var recent []struct {
		SearchTerm string `json:"searchTerm"`
	}
	s.decode(rec, &recent)
	require.Len(t, recent, 1)
	assert.Equal(t, "pen", recent[0].SearchTerm)

	rec = s.do(http.MethodGet, "/api/v1/audits?limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var audits struct {
		Total int `json:"total"`
	}
	s.decode(rec, &audits)
	// product added, product sold, admin login
	assert.GreaterOrEqual(t, audits.Total, 3)
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/v1/stores", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/products/missing", map[string]interface{}{"name": "x", "price": "1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/stores/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/users/admin", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "last admin cannot be removed")
}

func TestUserRoutesRequireAdmin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/v1/users", map[string]string{"username": "cashier", "password": "till-pass", "role": "user"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	s.token = ""
	rec = s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "cashier", "password": "till-pass"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	s.decode(rec, &login)
	s.token = login.Token

	rec = s.do(http.MethodGet, "/api/v1/users", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []struct {
		Name string `json:"name"`
	}
	s.decode(rec, &cats)
	assert.NotEmpty(t, cats)

	rec = s.do(http.MethodPost, "/api/v1/users/password", map[string]string{"oldPassword": "till-pass", "newPassword": "new-pass"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRemovedAdminTokenIsRejected(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.token

	rec := s.do(http.MethodPost, "/api/v1/users", map[string]string{"username": "boss2", "password": "boss-pass", "role": "admin"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	s.token = ""
	rec = s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "boss2", "password": "boss-pass"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	s.decode(rec, &login)

	s.token = login.Token
	rec = s.do(http.MethodGet, "/api/v1/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	s.token = adminToken
	rec = s.do(http.MethodDelete, "/api/v1/users/boss2", nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	s.token = login.Token
	rec = s.do(http.MethodGet, "/api/v1/users", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/users/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeUsesCamelCase(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me map[string]string
	s.decode(rec, &me)
	assert.NotEmpty(t, me["id"])
	assert.Equal(t, "admin", me["username"])
	assert.Equal(t, "admin", me["role"])
	assert.Len(t, me, 3)
}
