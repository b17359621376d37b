package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landmark-map/internal/api/handlers"
	"landmark-map/internal/config"
	"landmark-map/internal/models"
	"landmark-map/internal/services"
)

type memLandmarkRepo struct {
	landmarks []models.Landmark
	nextID    uint
}

func (m *memLandmarkRepo) Create(ctx context.Context, landmark *models.Landmark) error {
	m.nextID++
	landmark.ID = m.nextID
	landmark.CreatedAt = time.Now()
	m.landmarks = append(m.landmarks, *landmark)
	return nil
}

func (m *memLandmarkRepo) FindAll(ctx context.Context) ([]models.Landmark, error) {
	return append([]models.Landmark(nil), m.landmarks...), nil
}

func (m *memLandmarkRepo) FindBySource(ctx context.Context, source string) ([]models.Landmark, error) {
	var out []models.Landmark
	for _, l := range m.landmarks {
		if l.Source == source {
			out = append(out, l)
		}
	}
	return out, nil
}

type memUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func (m *memUserRepo) Create(ctx context.Context, user *models.User) error {
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return m.users[id], nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type memCache struct {
	data map[string]string
}

func (m *memCache) Get(ctx context.Context, key string) (string, error) { return m.data[key], nil }
func (m *memCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	m.data[key] = value
	return nil
}
func (m *memCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	wiki := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":{"pages":{}}}`)
	}))
	t.Cleanup(wiki.Close)

	cfg := config.Load()
	cfg.JWTSecret = "test-secret"
	cfg.UploadDir = t.TempDir()
	cfg.StaticDir = t.TempDir()
	cfg.WikipediaBaseURL = wiki.URL

	landmarkRepo := &memLandmarkRepo{}
	userRepo := &memUserRepo{users: make(map[uint]*models.User)}
	cache := &memCache{data: make(map[string]string)}

	authService := services.NewAuthService(userRepo, cache, cfg.JWTSecret, cfg.SessionTTL)
	wikipediaService := services.NewWikipediaService(cfg.WikipediaBaseURL)
	uploadService := services.NewUploadService(cfg.UploadDir, cfg.AllowedExtensions)
	landmarkService := services.NewLandmarkService(landmarkRepo, userRepo, wikipediaService, uploadService)
	bookmarkService := services.NewBookmarkService(landmarkRepo, userRepo)

	handler := SetupRoutes(cfg,
		authService,
		handlers.NewAuthHandler(authService),
		handlers.NewLandmarkHandler(landmarkService),
		handlers.NewBookmarkHandler(bookmarkService),
	)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func registerAndLogin(t *testing.T, server *httptest.Server, username, email string) string {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":"pw"}`, username, email)
	resp, err := http.Post(server.URL+"/auth/register", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	loginBody := fmt.Sprintf(`{"email":%q,"password":"pw"}`, email)
	resp, err = http.Post(server.URL+"/auth/login", "application/json", strings.NewReader(loginBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.NotEmpty(t, login["token"])
	return login["token"]
}

func submitLandmark(t *testing.T, server *httptest.Server, token string, fields map[string]string, photoName string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	if photoName != "" {
		fw, err := w.CreateFormFile("photo", photoName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest("POST", server.URL+"/api/landmarks", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestSubmitThenListScenario(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "grace", "grace@example.com")

	resp := submitLandmark(t, server, token, map[string]string{
		"name":        "Old Bridge",
		"latitude":    "40.7",
		"longitude":   "-74.0",
		"description": "historic",
		"category":    "bridge",
	}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "success", status["status"])

	listResp, err := http.Get(server.URL + "/api/landmarks?lat=40.7&lng=-74.0")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var landmarks []map[string]interface{}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&landmarks))
	require.Len(t, landmarks, 1)

	got := landmarks[0]
	assert.Equal(t, "Old Bridge", got["name"])
	assert.Equal(t, 40.7, got["latitude"])
	assert.Equal(t, -74.0, got["longitude"])
	assert.Equal(t, "historic", got["description"])
	assert.Equal(t, "bridge", got["category"])
	assert.Equal(t, "user", got["source"])
	assert.Equal(t, "grace", got["added_by"])
	assert.Contains(t, got, "photo")
	assert.Nil(t, got["photo"])
}

func TestSubmitWithoutSession(t *testing.T) {
	server := newTestServer(t)

	resp := submitLandmark(t, server, "", map[string]string{
		"name": "Old Bridge", "latitude": "40.7", "longitude": "-74.0",
	}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	listResp, err := http.Get(server.URL + "/api/landmarks")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var landmarks []interface{}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&landmarks))
	assert.Empty(t, landmarks)
}

func TestDisallowedPhotoExtension(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "grace", "grace@example.com")

	resp := submitLandmark(t, server, token, map[string]string{
		"name": "Old Bridge", "latitude": "40.7", "longitude": "-74.0",
	}, "notes.txt")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "success", status["status"])

	listResp, err := http.Get(server.URL + "/api/landmarks")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var landmarks []map[string]interface{}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&landmarks))
	require.Len(t, landmarks, 1)
	assert.Nil(t, landmarks[0]["photo"])
}

func TestBookmarkGrouping(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "grace", "grace@example.com")

	for _, category := range []string{"bridge", "lighthouse"} {
		resp := submitLandmark(t, server, token, map[string]string{
			"name":      "Spot " + category,
			"latitude":  "40.7",
			"longitude": "-74.0",
			"category":  category,
		}, "")
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	req, err := http.NewRequest("GET", server.URL+"/api/bookmarks", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var groups struct {
		ByCategory map[string][]map[string]interface{} `json:"by_category"`
		ByUser     map[string]interface{}              `json:"by_user"`
		ByLocation map[string]interface{}              `json:"by_location"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&groups))

	require.Len(t, groups.ByCategory, 2)
	require.Len(t, groups.ByCategory["bridge"], 1)
	require.Len(t, groups.ByCategory["lighthouse"], 1)
	assert.Equal(t, "grace", groups.ByCategory["bridge"][0]["added_by"])
	assert.Empty(t, groups.ByUser)
	assert.Empty(t, groups.ByLocation)

	// Unauthenticated callers are rejected.
	plain, err := http.Get(server.URL + "/api/bookmarks")
	require.NoError(t, err)
	plain.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, plain.StatusCode)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "grace", "grace@example.com")

	getBookmarks := func() int {
		req, err := http.NewRequest("GET", server.URL+"/api/bookmarks", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	require.Equal(t, http.StatusOK, getBookmarks())

	req, err := http.NewRequest("POST", server.URL+"/auth/logout", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// The token itself is unexpired; only the session backs it.
	assert.Equal(t, http.StatusUnauthorized, getBookmarks())
}
