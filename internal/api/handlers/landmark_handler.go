package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"landmark-map/internal/logger"
	"landmark-map/internal/services"
)

type LandmarkHandler struct {
	landmarkService services.LandmarkService
}

func NewLandmarkHandler(landmarkService services.LandmarkService) *LandmarkHandler {
	return &LandmarkHandler{landmarkService: landmarkService}
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const maxUploadMemory = 10 << 20

// ListLandmarks merges encyclopedia and user landmarks around the given
// coordinates. Missing or malformed coordinates default to 0.
func (h *LandmarkHandler) ListLandmarks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lat := parseCoordinate(r.URL.Query().Get("lat"))
	lng := parseCoordinate(r.URL.Query().Get("lng"))

	landmarks, err := h.landmarkService.ListNearby(ctx, lat, lng)
	if err != nil {
		logger.LogEvent(logrus.ErrorLevel, "Error fetching landmarks", logrus.Fields{
			"lat":   lat,
			"lng":   lng,
			"error": err.Error(),
		})
		http.Error(w, "Error fetching landmarks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(landmarks)
}

// CreateLandmark persists one user-submitted landmark from a multipart
// form. The photo part is optional.
func (h *LandmarkHandler) CreateLandmark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := services.UserFromContext(ctx)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeStatus(w, http.StatusBadRequest, statusResponse{Status: "error", Message: "invalid multipart form"})
		return
	}

	latitude, err := strconv.ParseFloat(r.FormValue("latitude"), 64)
	if err != nil {
		writeStatus(w, http.StatusBadRequest, statusResponse{Status: "error", Message: "latitude must be a number"})
		return
	}
	longitude, err := strconv.ParseFloat(r.FormValue("longitude"), 64)
	if err != nil {
		writeStatus(w, http.StatusBadRequest, statusResponse{Status: "error", Message: "longitude must be a number"})
		return
	}

	var photo *multipart.FileHeader
	if r.MultipartForm != nil && len(r.MultipartForm.File["photo"]) > 0 {
		photo = r.MultipartForm.File["photo"][0]
	}

	input := services.IngestInput{
		Name:        r.FormValue("name"),
		Latitude:    latitude,
		Longitude:   longitude,
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		UserID:      user.ID,
		Photo:       photo,
	}

	if _, err := h.landmarkService.Ingest(ctx, input); err != nil {
		writeStatus(w, http.StatusBadRequest, statusResponse{Status: "error", Message: err.Error()})
		return
	}

	writeStatus(w, http.StatusOK, statusResponse{Status: "success"})
}

func parseCoordinate(raw string) float64 {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

func writeStatus(w http.ResponseWriter, code int, resp statusResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
