package idbridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIdentityServer simulates the external identity service's account
// API backed by an in-memory bridge.
func fakeIdentityServer(t *testing.T, token string, store *InMemIdentityBridge) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	authorized := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return false
		}
		return true
	}

	mux.HandleFunc("GET /accounts", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		ref, found, _ := store.FindByLogin(r.Context(), r.URL.Query().Get("login"))
		if !found {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		acct, _ := store.GetAccount(ref)
		json.NewEncoder(w).Encode(map[string]any{"ref": ref, "login": acct.Login})
	})

	mux.HandleFunc("POST /accounts", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		var payload struct {
			AccountSnapshot
			Secret string `json:"secret"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		ref, err := store.CreateAccount(r.Context(), payload.AccountSnapshot, payload.Secret)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"ref": ref})
	})

	mux.HandleFunc("PUT /accounts/{ref}", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		var payload AccountSnapshot
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := store.UpdateAccount(r.Context(), AccountRef(r.PathValue("ref")), payload); err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("PUT /accounts/{ref}/secret", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		var payload struct {
			Secret string `json:"secret"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := store.SetAccountSecret(r.Context(), AccountRef(r.PathValue("ref")), payload.Secret); err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("DELETE /accounts/{ref}", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		if err := store.DeleteAccount(r.Context(), AccountRef(r.PathValue("ref"))); err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRESTIdentityBridge(t *testing.T) {
	ctx := context.Background()
	store := NewInMemIdentityBridge()
	server := fakeIdentityServer(t, "service-token", store)

	bridge := NewRESTIdentityBridge(server.URL, "service-token",
		WithHTTPClient(server.Client()),
	)

	snapshot := AccountSnapshot{
		Name:   "Jane Doe",
		Login:  "jane@example.com",
		Phone:  "+1 555-123-4567",
		Active: true,
	}

	// Not found before creation
	_, found, err := bridge.FindByLogin(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.False(t, found)

	ref, err := bridge.CreateAccount(ctx, snapshot, "temp-secret")
	require.NoError(t, err)
	require.NotEmpty(t, ref)

	acct, ok := store.GetAccount(ref)
	require.True(t, ok)
	assert.Equal(t, "temp-secret", acct.Secret)

	foundRef, found, err := bridge.FindByLogin(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, ref, foundRef)

	snapshot.Name = "Jane Smith"
	require.NoError(t, bridge.UpdateAccount(ctx, ref, snapshot))
	acct, _ = store.GetAccount(ref)
	assert.Equal(t, "Jane Smith", acct.Name)

	require.NoError(t, bridge.SetAccountSecret(ctx, ref, "new-secret"))
	acct, _ = store.GetAccount(ref)
	assert.Equal(t, "new-secret", acct.Secret)

	require.NoError(t, bridge.DeleteAccount(ctx, ref))
	assert.Equal(t, 0, store.AccountCount())
}

func TestRESTIdentityBridge_BadToken(t *testing.T) {
	ctx := context.Background()
	store := NewInMemIdentityBridge()
	server := fakeIdentityServer(t, "service-token", store)

	bridge := NewRESTIdentityBridge(server.URL, "wrong-token",
		WithHTTPClient(server.Client()),
	)

	_, err := bridge.CreateAccount(ctx, AccountSnapshot{Login: "jane@example.com"}, "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestRESTIdentityBridge_MissingAccount(t *testing.T) {
	ctx := context.Background()
	store := NewInMemIdentityBridge()
	server := fakeIdentityServer(t, "service-token", store)

	bridge := NewRESTIdentityBridge(server.URL, "service-token",
		WithHTTPClient(server.Client()),
	)

	err := bridge.UpdateAccount(ctx, "no-such-ref", AccountSnapshot{})
	assert.Error(t, err)

	err = bridge.SetAccountSecret(ctx, "no-such-ref", "secret")
	assert.Error(t, err)

	err = bridge.DeleteAccount(ctx, "no-such-ref")
	assert.Error(t, err)
}
