package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/tendant/simple-profile/pkg/profile"
)

// Handle handles HTTP requests for profile management
type Handle struct {
	profileService *profile.ProfileService
}

// NewHandle creates a new profile handler
func NewHandle(profileService *profile.ProfileService) *Handle {
	return &Handle{
		profileService: profileService,
	}
}

// RegisterRoutes registers the profile routes
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", h.ListProfiles)
		r.Post("/", h.CreateProfile)
		r.Get("/{id}", h.GetProfile)
		r.Put("/{id}", h.UpdateProfile)
		r.Delete("/{id}", h.DeleteProfile)
		r.Post("/{id}/password/reset", h.ResetCredential)
		r.Post("/{id}/password", h.ChangeCredential)
	})
}

// ListProfiles handles the request to list profiles
func (h *Handle) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.FindProfiles(r.Context())
	if err != nil {
		slog.Error("Failed listing profiles", "err", err)
		http.Error(w, "Failed listing profiles", http.StatusInternalServerError)
		return
	}

	models := make([]ProfileModel, 0, len(profiles))
	for _, p := range profiles {
		models = append(models, toProfileModel(p))
	}

	response := ProfileListResponse{
		Profiles: models,
		Total:    int64(len(models)),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// CreateProfile handles the request to create a profile
func (h *Handle) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var request CreateProfileRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := profile.CreateProfileParams{}
	copier.Copy(&params, &request)

	result, err := h.profileService.CreateProfile(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := CreateProfileResponse{
		Profile:    toProfileModel(result.Profile),
		TempSecret: result.TempSecret,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetProfile handles the request to get a profile by ID
func (h *Handle) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	p, err := h.profileService.GetProfile(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProfileModel(p))
}

// UpdateProfile handles the request to update a profile
func (h *Handle) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var request UpdateProfileRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := profile.UpdateProfileParams{}
	copier.Copy(&params, &request)

	p, err := h.profileService.UpdateProfile(r.Context(), id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProfileModel(p))
}

// DeleteProfile handles the request to delete a profile
func (h *Handle) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.profileService.DeleteProfile(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetCredential handles the request to reset a profile's credential.
// The generated plaintext secret appears only in this response.
func (h *Handle) ResetCredential(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	secret, err := h.profileService.ResetCredential(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SecretResponse{TempSecret: secret})
}

// ChangeCredential handles the request to set a caller-chosen credential
func (h *Handle) ChangeCredential(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var request ChangeCredentialRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	secret, err := h.profileService.ChangeCredential(r.Context(), id, request.NewSecret, request.ConfirmSecret)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SecretResponse{TempSecret: secret})
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid profile ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps service errors to HTTP responses without
// leaking internal detail.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *profile.ValidationError
	if errors.As(err, &ve) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ValidationErrorResponse{
			Field:  ve.Field,
			Reason: ve.Reason,
		})
		return
	}

	var ee profile.ErrEmailExists
	if errors.As(err, &ee) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(ValidationErrorResponse{
			Field:  "email",
			Reason: "email already registered",
		})
		return
	}

	if errors.Is(err, profile.ErrProfileNotFound) {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	slog.Error("Profile operation failed", "err", err)
	http.Error(w, "Operation failed", http.StatusInternalServerError)
}
