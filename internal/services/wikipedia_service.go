package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"landmark-map/internal/models"
)

// WikipediaService fetches points of interest near a coordinate pair from
// the Wikipedia GeoSearch API. Results are transient; nothing fetched here
// is ever persisted.
type WikipediaService interface {
	Nearby(ctx context.Context, lat, lng float64) ([]models.WikiLandmark, error)
}

type wikipediaService struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

const (
	geoSearchRadius = 10000
	geoSearchLimit  = 50
)

func NewWikipediaService(baseURL string) WikipediaService {
	return &wikipediaService{
		httpClient: http.DefaultClient,
		baseURL:    baseURL,
		userAgent:  "landmark-map/1.0",
	}
}

type geoSearchPage struct {
	PageID      int    `json:"pageid"`
	Title       string `json:"title"`
	Index       int    `json:"index"`
	Description string `json:"description"`
	Coordinates []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coordinates"`
}

type geoSearchResponse struct {
	Query struct {
		Pages map[string]geoSearchPage `json:"pages"`
	} `json:"query"`
}

func (s *wikipediaService) Nearby(ctx context.Context, lat, lng float64) ([]models.WikiLandmark, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("generator", "geosearch")
	params.Set("ggscoord", fmt.Sprintf("%s|%s",
		strconv.FormatFloat(lat, 'f', 6, 64),
		strconv.FormatFloat(lng, 'f', 6, 64)))
	params.Set("ggsradius", strconv.Itoa(geoSearchRadius))
	params.Set("ggslimit", strconv.Itoa(geoSearchLimit))
	params.Set("prop", "coordinates|description")

	apiURL := s.baseURL + "/w/api.php?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia geosearch returned status %d", resp.StatusCode)
	}

	var apiResp geoSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	// The generator returns pages keyed by page id; the index field carries
	// the distance ordering of the underlying geosearch.
	pages := make([]geoSearchPage, 0, len(apiResp.Query.Pages))
	for _, page := range apiResp.Query.Pages {
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].Index < pages[j].Index
	})

	landmarks := make([]models.WikiLandmark, 0, len(pages))
	for _, page := range pages {
		if len(page.Coordinates) == 0 {
			continue
		}
		landmarks = append(landmarks, models.WikiLandmark{
			Title:       page.Title,
			Lat:         page.Coordinates[0].Lat,
			Lng:         page.Coordinates[0].Lon,
			Description: page.Description,
		})
	}

	return landmarks, nil
}
