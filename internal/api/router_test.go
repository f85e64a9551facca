package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"investeasy/internal/api/models"
	"investeasy/internal/clock"
	"investeasy/internal/data"
	"investeasy/internal/database"
	"investeasy/internal/identity"
	"investeasy/internal/model"
	"investeasy/internal/simulation"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	accounts *identity.Service
}

func newTestServer(t *testing.T, source data.RatesSource) *testServer {
	t.Helper()

	db, err := database.New(database.Config{Path: ":memory:", Name: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	clk := clock.NewManual(time.Now().UTC())
	signer, err := identity.NewTokenSigner("router-test-secret-0123", time.Hour, clk)
	require.NoError(t, err)
	accounts := identity.NewService(identity.NewStore(db.Conn()), identity.NewBcryptHasher(bcrypt.MinCost),
		signer, clk, identity.ServiceConfig{}, zerolog.Nop())

	fetcher := data.NewFetcher(source, data.NewRateCache(clk), data.FetcherConfig{}, zerolog.Nop())
	engine := simulation.New(fetcher, zerolog.Nop())

	return &testServer{
		router: NewRouter(Deps{
			Indicators: fetcher,
			Simulator:  engine,
			Accounts:   accounts,
			Log:        zerolog.Nop(),
		}),
		accounts: accounts,
	}
}

func writeRates(t *testing.T) data.FileSource {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sgs.json")
	require.NoError(t, data.SaveObservationsJSON(path, []model.Observation{
		{SeriesID: 11, Date: "02/01/2024", Value: "0.045"},
		{SeriesID: 12, Date: "02/01/2024", Value: "0.045"},
	}))
	return data.FileSource{Path: path}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *testServer) registerAndLogin(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/register", models.RegisterRequest{
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana@example.com",
		Password:  "s3cret-pass",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tok models.TokenResponse
	decode(t, w, &tok)
	require.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
	return tok.AccessToken
}

func TestRouter_HealthAndRoot(t *testing.T) {
	s := newTestServer(t, writeRates(t))

	w := s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome")

	w = s.do(t, http.MethodGet, "/api/v1/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Indicators(t *testing.T) {
	s := newTestServer(t, writeRates(t))

	w := s.do(t, http.MethodGet, "/api/v1/indicators", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.IndicatorsResponse
	decode(t, w, &resp)
	assert.Equal(t, "12.01%", resp.CDI)
	assert.Equal(t, "2024-01-02", resp.ReferenceDate)
	assert.False(t, resp.Stale)
}

func TestRouter_Series(t *testing.T) {
	s := newTestServer(t, writeRates(t))

	w := s.do(t, http.MethodGet, "/api/v1/series", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Series []models.SeriesInfo `json:"series"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Series, 2)
	assert.Equal(t, 11, resp.Series[0].ID)
	assert.Equal(t, 12, resp.Series[1].ID)
}

func TestRouter_SimulationRequiresAuth(t *testing.T) {
	s := newTestServer(t, writeRates(t))

	body := models.SimulationRequest{Principal: 1000, TermDays: 360, CDIPercentage: 100}
	w := s.do(t, http.MethodPost, "/api/v1/simulations/cdb", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/simulations/cdb", body, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_SimulateCDB(t *testing.T) {
	s := newTestServer(t, writeRates(t))
	token := s.registerAndLogin(t)

	w := s.do(t, http.MethodPost, "/api/v1/simulations/cdb",
		models.SimulationRequest{Principal: 10000, TermDays: 360, CDIPercentage: 100}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulationResponse
	decode(t, w, &resp)
	assert.Equal(t, "CDB 100% CDI", resp.Summary.Instrument)
	assert.Equal(t, 0.20, resp.Summary.TaxRate)
	assert.InDelta(t, resp.Summary.GrossYield*0.20, resp.Summary.TaxAmount, 1e-9)
	assert.InDelta(t, 10000+resp.Summary.GrossYield-resp.Summary.TaxAmount, resp.Summary.NetValue, 1e-9)
	assert.Equal(t, "2024-01-02", resp.Summary.ReferenceDate)
	assert.Equal(t, "20.0%", resp.Display.Results.TaxRate)
}

func TestRouter_SimulateCDB_RejectsInvalidInput(t *testing.T) {
	s := newTestServer(t, writeRates(t))
	token := s.registerAndLogin(t)

	cases := []models.SimulationRequest{
		{Principal: 0, TermDays: 360, CDIPercentage: 100},
		{Principal: -5, TermDays: 360, CDIPercentage: 100},
		{Principal: 1000, TermDays: 0, CDIPercentage: 100},
		{Principal: 1000, TermDays: 360, CDIPercentage: 0},
	}
	for _, body := range cases {
		w := s.do(t, http.MethodPost, "/api/v1/simulations/cdb", body, token)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%+v", body)
	}
}

func TestRouter_CompareCDB(t *testing.T) {
	s := newTestServer(t, writeRates(t))
	token := s.registerAndLogin(t)

	w := s.do(t, http.MethodPost, "/api/v1/simulations/cdb/compare", models.CompareSimulationRequest{
		Principal: 5000,
		Offers: []models.Offer{
			{Name: "bank-a", TermDays: 365, CDIPercentage: 100},
			{Name: "bank-b", TermDays: 365, CDIPercentage: 120},
			{Name: "bank-c", TermDays: 100, CDIPercentage: 130},
		},
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CompareSimulationResponse
	decode(t, w, &resp)
	require.Len(t, resp.Comparison, 3)
	assert.Equal(t, "bank-b", resp.Comparison[0].Name)
	assert.Equal(t, "bank-a", resp.Comparison[1].Name)
	assert.Equal(t, "bank-c", resp.Comparison[2].Name)
	for i, c := range resp.Comparison {
		assert.Equal(t, i+1, c.Rank)
	}
}

func TestRouter_MarketDataUnavailable(t *testing.T) {
	s := newTestServer(t, data.FileSource{Path: filepath.Join(t.TempDir(), "missing.json")})
	token := s.registerAndLogin(t)

	w := s.do(t, http.MethodGet, "/api/v1/indicators", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/simulations/cdb",
		models.SimulationRequest{Principal: 1000, TermDays: 30, CDIPercentage: 100}, token)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp models.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "MARKET_DATA_UNAVAILABLE", resp.Error.Code)
	assert.Equal(t, "unavailable", resp.Error.Details["kind"])
}

func TestRouter_AccountFlow(t *testing.T) {
	s := newTestServer(t, writeRates(t))
	token := s.registerAndLogin(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", models.RegisterRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "ANA@example.com",
		Password:  "another-pass",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.UserResponse
	decode(t, w, &me)
	assert.Equal(t, "ana@example.com", me.Email)
	assert.Equal(t, "Ana", me.FirstName)
}

func TestRouter_PasswordReset(t *testing.T) {
	s := newTestServer(t, writeRates(t))
	s.registerAndLogin(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/password/forgot",
		models.ForgotPasswordRequest{Email: "nobody@example.com"}, "")
	assert.Equal(t, http.StatusAccepted, w.Code)

	resetToken, err := s.accounts.RequestPasswordReset(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, resetToken)

	w = s.do(t, http.MethodPost, "/api/v1/auth/password/reset",
		models.ResetPasswordRequest{Token: resetToken, Password: "brand-new-pass"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/password/reset",
		models.ResetPasswordRequest{Token: resetToken, Password: "brand-new-pass"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login",
		models.LoginRequest{Email: "ana@example.com", Password: "brand-new-pass"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t, writeRates(t))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/simulations/cdb", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
