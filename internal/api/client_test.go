package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return New(server.URL, 5*time.Second, zap.NewNop()), server
}

func TestGetListDecodesRawRecords(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pacientes", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"IME":"Мария"},{"id":2,"ime":"Иван"}]`))
	})
	defer server.Close()

	records, err := client.ListPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Мария", records[0]["IME"], "records stay raw for the normalizer")
}

func TestStatusErrorCarriesCode(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.ListZones(context.Background())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, err.Error(), "404", "the status code is in the message")
}

func TestBearerTokenAttached(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	defer server.Close()

	client.SetToken("secret-token")
	_, err := client.ListZones(context.Background())
	require.NoError(t, err)
}

func TestLoginInstallsToken(t *testing.T) {
	var sawLogin bool
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/login" {
			sawLogin = true
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "desk", body["username"])
			_, _ = w.Write([]byte(`{"token":"issued"}`))
			return
		}
		assert.Equal(t, "Bearer issued", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	})
	defer server.Close()

	token, err := client.Login(context.Background(), "desk", "pass")
	require.NoError(t, err)
	assert.True(t, sawLogin)
	assert.Equal(t, "issued", token)

	_, err = client.ListPatients(context.Background())
	require.NoError(t, err)
}

func TestLoginUnauthorized(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer server.Close()

	_, err := client.Login(context.Background(), "desk", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestProcedureWritePayloadShape(t *testing.T) {
	var captured map[string]any
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/proceduras", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})
	defer server.Close()

	err := client.CreateProcedure(context.Background(), ProcedureWrite{
		Date:      "2026-02-01",
		Price:     99.5,
		PatientID: "7",
		Comment:   "коментар",
		Zones:     []AssignmentWrite{{ZoneID: "11", Pulses: "500"}},
	})
	require.NoError(t, err)

	// The wire format is the backend's snake_case write convention.
	assert.Equal(t, "2026-02-01", captured["data"])
	assert.Equal(t, 99.5, captured["obshta_cena"])
	assert.Equal(t, "7", captured["id_paciente"])
	zones, ok := captured["zonas"].([]any)
	require.True(t, ok)
	first := zones[0].(map[string]any)
	assert.Equal(t, "11", first["id_zona"])
	assert.Equal(t, "500", first["pulsaciones"])
	_, hasName := first["zona"]
	assert.False(t, hasName, "names never reach a write payload")
}

func TestDeletePaths(t *testing.T) {
	var paths []string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})
	defer server.Close()

	require.NoError(t, client.DeletePatient(context.Background(), "7"))
	require.NoError(t, client.DeleteProcedure(context.Background(), "42"))
	assert.Equal(t, []string{"/api/pacientes/7", "/api/proceduras/42"}, paths)
}
