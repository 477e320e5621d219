package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leeterboard-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*LeeterboardClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewLeeterboardClient(server.URL)
	client.HTTPClient = server.Client()
	return client, server
}

func TestGetUserDecodesResponse(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/ada", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"_id":      "507f1f77bcf86cd799439011",
			"username": "ada",
			"points":   420,
		})
	})
	defer server.Close()

	user, err := client.GetUser(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", user.MongoID)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, 420, user.Points)
}

func TestErrorDetailPassesThrough(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "username already taken"})
	})
	defer server.Close()

	_, err := client.GetUser(context.Background(), "ada")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "username already taken", apiErr.Detail)
}

func TestErrorDetailFallsBackToStatusLine(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream puked</html>"))
	})
	defer server.Close()

	_, err := client.GetUser(context.Background(), "ada")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Contains(t, apiErr.Detail, "502")
}

func TestSaveRoomLayoutWrapsItems(t *testing.T) {
	var captured struct {
		Items []models.RoomItemState `json:"items"`
	}
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users/ada/room", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "ada", "points": 100})
	})
	defer server.Close()

	x, y := 12.0, 62.0
	items := []models.RoomItemState{{ID: "dirtyshower", Owned: true, Placed: true, X: &x, Y: &y}}

	user, err := client.SaveRoomLayout(context.Background(), "ada", items)
	require.NoError(t, err)
	assert.Equal(t, 100, user.Points)

	require.Len(t, captured.Items, 1)
	assert.Equal(t, "dirtyshower", captured.Items[0].ID)
	assert.Equal(t, 12.0, *captured.Items[0].X)
}

func TestListTournamentsSendsUserQuery(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tournaments/", r.URL.Path)
		assert.Equal(t, "ada", r.URL.Query().Get("userId"))
		_ = json.NewEncoder(w).Encode([]map[string]any{{"name": "weekly grind"}})
	})
	defer server.Close()

	tournaments, err := client.ListTournaments(context.Background(), "ada")
	require.NoError(t, err)
	require.Len(t, tournaments, 1)
	assert.Equal(t, "weekly grind", tournaments[0].Name)
}

func TestJoinTournamentSendsUserIDAsID(t *testing.T) {
	var captured JoinTournamentPayload
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{"name": "weekly grind"})
	})
	defer server.Close()

	_, err := client.JoinTournament(context.Background(), JoinTournamentPayload{
		ID:       "ada",
		Name:     "weekly grind",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada", captured.ID)
	assert.Equal(t, "weekly grind", captured.Name)
}

func TestValidationFailureSkipsNetwork(t *testing.T) {
	requests := 0
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	})
	defer server.Close()

	_, err := client.RegisterUser(context.Background(), RegisterPayload{
		Username: "ab",
		Email:    "not-an-email",
		Password: "short",
	})
	require.Error(t, err)
	assert.Zero(t, requests, "invalid payloads never leave the client")

	_, err = client.PurchaseStreakSaves(context.Background(), "ada", 7)
	require.Error(t, err)
	assert.Zero(t, requests)
}

func TestEmptyResponseBodyIsAccepted(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	user, err := client.GetUser(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, &models.User{}, user)
}
