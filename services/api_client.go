// services/api_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"leeterboard-client/models"
	"leeterboard-client/utils"

	"github.com/google/uuid"
)

// APIError is a backend-rejected request (4xx/5xx). Detail carries the
// backend's own message when the body had one; it is shown to the user as is.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("leeterboard api: %d %s", e.Status, e.Detail)
}

// LeeterboardClient talks to the Leeterboard backend REST API.
type LeeterboardClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewLeeterboardClient(baseURL string) *LeeterboardClient {
	return &LeeterboardClient{
		BaseURL:    baseURL,
		HTTPClient: utils.HTTPClient,
	}
}

// doJSON performs one request/response round trip. Every request carries an
// X-Request-ID so overlapping saves can be told apart in backend logs. The
// response body is size-capped; errors degrade to a generic message when the
// body is not the backend's usual {"detail": ...} shape.
func (c *LeeterboardClient) doJSON(ctx context.Context, method, path string, query url.Values, payload any, out any) error {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	endpoint := base.JoinPath(path)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request payload: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request to %s: %w", endpoint, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach the leeterboard backend: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Detail: errorDetail(respBody, resp.Status)}
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
		}
	}
	return nil
}

// errorDetail pulls the backend's detail string out of an error body. Non-JSON
// and empty bodies fall back to the HTTP status line, then a generic message.
func errorDetail(body []byte, statusLine string) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	if statusLine != "" {
		return statusLine
	}
	return "Request failed"
}

// --- Users ---

func (c *LeeterboardClient) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+userID, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RefreshUserPoints asks the backend to re-pull LeetCode stats and recompute
// the balance before returning the user.
func (c *LeeterboardClient) RefreshUserPoints(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+userID+"/refresh-points", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *LeeterboardClient) RegisterUser(ctx context.Context, payload RegisterPayload) (*models.User, error) {
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}
	var user models.User
	if err := c.doJSON(ctx, http.MethodPost, "/users/", nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *LeeterboardClient) UpdateUser(ctx context.Context, userID string, payload UpdateUserPayload) (*models.User, error) {
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}
	var user models.User
	if err := c.doJSON(ctx, http.MethodPut, "/users/"+userID, nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *LeeterboardClient) PurchaseStreakSaves(ctx context.Context, userID string, count int) (*models.User, error) {
	payload := StreakSavePurchasePayload{Count: count}
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}
	var user models.User
	if err := c.doJSON(ctx, http.MethodPost, "/users/"+userID+"/streak-saves", nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Room ---

func (c *LeeterboardClient) PurchaseRoomItem(ctx context.Context, userID, itemID string) (*models.User, error) {
	payload := map[string]string{"itemId": itemID}
	var user models.User
	if err := c.doJSON(ctx, http.MethodPost, "/users/"+userID+"/room/purchase", nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveRoomLayout sends the full layout snapshot, never deltas. The backend
// answers with the authoritative user, which replaces local state wholesale.
func (c *LeeterboardClient) SaveRoomLayout(ctx context.Context, userID string, items []models.RoomItemState) (*models.User, error) {
	payload := map[string][]models.RoomItemState{"items": items}
	var user models.User
	if err := c.doJSON(ctx, http.MethodPut, "/users/"+userID+"/room", nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Lessons & skill level ---

func (c *LeeterboardClient) SetSkillLevel(ctx context.Context, userID string, level models.SkillLevel) (*models.User, error) {
	payload := SkillLevelPayload{SkillLevel: level}
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}
	var user models.User
	if err := c.doJSON(ctx, http.MethodPut, "/users/"+userID+"/skill-level", nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *LeeterboardClient) GetLessons(ctx context.Context, userID string) (*models.LessonTrack, error) {
	var track models.LessonTrack
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+userID+"/lessons", nil, nil, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

func (c *LeeterboardClient) CompleteLesson(ctx context.Context, userID, lessonID string) (*models.LessonTrack, error) {
	var track models.LessonTrack
	if err := c.doJSON(ctx, http.MethodPost, "/users/"+userID+"/lessons/"+lessonID+"/complete", nil, nil, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// --- LeetCode linking ---

// LeetCodeLinkResult is the backend's confirmation after linking a handle.
type LeetCodeLinkResult struct {
	LcUsername      string         `json:"lcUsername"`
	LeetcodeProfile map[string]any `json:"leetcodeProfile"`
}

func (c *LeeterboardClient) LinkLeetCode(ctx context.Context, userID, lcUsername string) (*LeetCodeLinkResult, error) {
	payload := LinkLeetCodePayload{ID: userID, LcUsername: lcUsername}
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}
	var result LeetCodeLinkResult
	if err := c.doJSON(ctx, http.MethodPut, "/leetcode/update", nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- Tournaments ---

func (c *LeeterboardClient) ListTournaments(ctx context.Context, userID string) ([]models.Tournament, error) {
	var query url.Values
	if userID != "" {
		query = url.Values{"userId": []string{userID}}
	}
	var tournaments []models.Tournament
	if err := c.doJSON(ctx, http.MethodGet, "/tournaments/", query, nil, &tournaments); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (c *LeeterboardClient) CreateTournament(ctx context.Context, payload CreateTournamentPayload) (*models.Tournament, error) {
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}
	var tournament models.Tournament
	if err := c.doJSON(ctx, http.MethodPost, "/tournaments/", nil, payload, &tournament); err != nil {
		return nil, err
	}
	return &tournament, nil
}

func (c *LeeterboardClient) JoinTournament(ctx context.Context, payload JoinTournamentPayload) (*models.Tournament, error) {
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}
	var tournament models.Tournament
	if err := c.doJSON(ctx, http.MethodPut, "/tournaments/", nil, payload, &tournament); err != nil {
		return nil, err
	}
	return &tournament, nil
}
