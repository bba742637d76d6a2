package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/sjperalta/vehifin-api/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterBody = `{"contracts":[
	{"id":"1","contract_number":"FIN-2024-001","customer_name":"Rajesh Kumar","company_name":"HDFC Bank","status":"Live","outstanding_amount":495000,"emi_amount":15000,"contract_date":"2024-01-15"},
	{"id":"3","contract_number":"FIN-2024-003","customer_name":"Amit Patel","company_name":"SBI","status":"Seized","outstanding_amount":630000,"emi_amount":20000,"contract_date":"2023-12-10"}
],"total":2}`

type fakeAPI struct {
	*httptest.Server
	lastQuery  atomic.Value
	lastPath   atomic.Value // escaped path of the last contract request
	onContract atomic.Value // func()
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		if req["username"] != "admin" || req["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Incorrect username or password"}`))
			return
		}
		w.Write([]byte(`{"access_token":"good","token_type":"bearer","refresh_token":"r1","username":"admin"}`))
	})

	mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"Logged out"}`))
	})

	mux.HandleFunc("GET /api/v1/contracts", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid token"}`))
			return
		}
		api.lastQuery.Store(map[string][]string(r.URL.Query()))
		if hook, ok := api.onContract.Load().(func()); ok {
			hook()
		}
		w.Write([]byte(rosterBody))
	})

	mux.HandleFunc("GET /api/v1/contracts/{id}", func(w http.ResponseWriter, r *http.Request) {
		api.lastPath.Store(r.URL.EscapedPath())
		if r.PathValue("id") != "1" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Contract not found"}`))
			return
		}
		w.Write([]byte(`{"id":"1","contract_number":"FIN-2024-001","customer":{"name":"Rajesh Kumar","has_photo":false},
			"payment_schedule":[{"sno":1,"emi_amount":15000,"due_date":"2024-02-15"}],
			"payment_summary":{"total_emi":15000,"total_received":0,"count_total":1,"count_paid":0,"count_pending":1,"total_delay_days":0}}`))
	})

	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Close)
	return api
}

func (a *fakeAPI) client(store TokenStore) *Client {
	return New(a.URL+"/api/v1", store)
}

func TestLogin(t *testing.T) {
	api := newFakeAPI(t)
	store := NewMemoryTokenStore()
	c := api.client(store)

	token, err := c.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "good", token.AccessToken)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "admin", stored.Username)
	assert.Equal(t, "r1", stored.RefreshToken)

	_, err = c.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestListContracts(t *testing.T) {
	api := newFakeAPI(t)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save(&Token{AccessToken: "good"}))
	c := api.client(store)

	params := roster.ViewParameters{SearchQuery: "raj", StatusFilter: "Live", CompanyFilter: roster.FilterAll, SortBy: roster.SortByAmount}
	list, err := c.ListContracts(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "FIN-2024-001", list[0].ContractNumber)
	assert.Equal(t, "495000", list[0].OutstandingAmount.String())

	query := api.lastQuery.Load().(map[string][]string)
	assert.Equal(t, []string{"raj"}, query["search"])
	assert.Equal(t, []string{"Live"}, query["status_filter"])
	assert.Equal(t, []string{"amount"}, query["sort_by"])
}

func TestUnauthorizedClearsToken(t *testing.T) {
	api := newFakeAPI(t)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save(&Token{AccessToken: "expired"}))
	c := api.client(store)

	_, err := c.ListContracts(context.Background(), roster.DefaultViewParameters())
	assert.ErrorIs(t, err, ErrUnauthorized)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, token)

	// No token left: the request is not even sent
	_, err = c.ListContracts(context.Background(), roster.DefaultViewParameters())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetContract(t *testing.T) {
	api := newFakeAPI(t)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save(&Token{AccessToken: "good"}))
	c := api.client(store)

	detail, err := c.GetContract(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Rajesh Kumar", detail.Customer.Name)
	require.Len(t, detail.PaymentSchedule, 1)
	assert.Equal(t, 1, detail.PaymentSummary.CountPending)

	_, err = c.GetContract(context.Background(), "404")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetContract_EscapesID(t *testing.T) {
	api := newFakeAPI(t)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save(&Token{AccessToken: "good"}))
	c := api.client(store)

	_, err := c.GetContract(context.Background(), "1/../x?y#z")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "/api/v1/contracts/1%2F..%2Fx%3Fy%23z", api.lastPath.Load())
}

func TestRefresh(t *testing.T) {
	api := newFakeAPI(t)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save(&Token{AccessToken: "good"}))
	c := api.client(store)
	ctx := context.Background()

	session := roster.NewSession(nil)
	session.SetParams(roster.ViewParameters{StatusFilter: "Seized", CompanyFilter: roster.FilterAll, SortBy: roster.SortByDate})

	applied, err := c.Refresh(ctx, session)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "ready", session.State())

	// The full roster is fetched and filtered locally
	query := api.lastQuery.Load().(map[string][]string)
	assert.Equal(t, []string{roster.FilterAll}, query["status_filter"])
	view := session.View()
	require.Len(t, view, 1)
	assert.Equal(t, "FIN-2024-003", view[0].ContractNumber)
}

func TestRefresh_StaleResponseDropped(t *testing.T) {
	api := newFakeAPI(t)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save(&Token{AccessToken: "good"}))
	c := api.client(store)
	ctx := context.Background()

	session := roster.NewSession(nil)
	var newer atomic.Uint64
	api.onContract.Store(func() {
		// A second fetch starts while the first is in flight
		gen, err := session.BeginFetch(ctx)
		if err == nil {
			newer.Store(gen)
		}
	})

	applied, err := c.Refresh(ctx, session)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, session.View())
	assert.Equal(t, "loading", session.State())
	assert.Equal(t, newer.Load(), session.Generation())
}

func TestRefresh_Failure(t *testing.T) {
	api := newFakeAPI(t)
	c := api.client(NewMemoryTokenStore())
	ctx := context.Background()

	session := roster.NewSession(nil)
	applied, err := c.Refresh(ctx, session)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, applied)
	assert.Equal(t, "failed", session.State())
	assert.ErrorIs(t, session.Err(), ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	api := newFakeAPI(t)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save(&Token{AccessToken: "good", RefreshToken: "r1"}))
	c := api.client(store)

	require.NoError(t, c.Logout(context.Background()))
	token, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	store := NewFileTokenStore(path)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, token)

	require.NoError(t, store.Save(&Token{AccessToken: "abc", Username: "admin"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err = NewFileTokenStore(path).Load()
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "abc", token.AccessToken)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, token)
}
