package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"listings-service/internal/adapters/notifier"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"listings-service/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ProfileHandlers struct {
	getProfileUC    usecases_port.GetProfileUseCasePort
	updateProfileUC usecases_port.UpdateProfileUseCasePort
	notifier        *notifier.SSENotifier
}

func NewProfileHandlers(
	getProfileUC usecases_port.GetProfileUseCasePort,
	updateProfileUC usecases_port.UpdateProfileUseCasePort,
	notifier *notifier.SSENotifier,
) *ProfileHandlers {
	return &ProfileHandlers{
		getProfileUC:    getProfileUC,
		updateProfileUC: updateProfileUC,
		notifier:        notifier,
	}
}

// GetProfile - обработчик для GET /api/v1/profiles/{profileID}
func (h *ProfileHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetProfile"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	profileID, err := uuid.Parse(chi.URLParam(r, "profileID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid profile ID format")
		return
	}

	profile, err := h.getProfileUC.Execute(r.Context(), claims, profileID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			WriteJSONError(w, http.StatusNotFound, "Profile not found")
		case errors.Is(err, domain.ErrForbidden):
			WriteJSONError(w, http.StatusForbidden, "You are not allowed to view this profile")
		default:
			logger.Error("GetProfile use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve profile")
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, toProfileResponse(profile))
}

// UpdateProfile - обработчик для PUT /api/v1/profiles/{profileID}
func (h *ProfileHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProfile"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	profileID, err := uuid.Parse(chi.URLParam(r, "profileID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid profile ID format")
		return
	}

	var reqDTO UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		if err == io.EOF {
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	update := domain.ProfileUpdate{
		FullName:  reqDTO.FullName,
		Company:   reqDTO.Company,
		AvatarURL: reqDTO.AvatarURL,
		Phone:     reqDTO.Phone,
		Email:     reqDTO.Email,
	}

	profile, err := h.updateProfileUC.Execute(r.Context(), claims, profileID, update)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			WriteJSONError(w, http.StatusNotFound, "Profile not found")
		case errors.Is(err, domain.ErrForbidden):
			WriteJSONError(w, http.StatusForbidden, "You are not allowed to modify this profile")
		default:
			logger.Error("UpdateProfile use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	logger.Info("Successfully updated profile", port.Fields{"profile_id": profile.ID.String()})
	RespondWithJSON(w, http.StatusOK, toProfileResponse(profile))
}

// SubscribeToProfile - обработчик для GET /api/v1/profiles/{profileID}/subscribe.
// Транслирует изменения одного профиля. Подписаться можно только на свой
// профиль; администратор может следить за любым.
func (h *ProfileHandlers) SubscribeToProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubscribeToProfile"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	profileID, err := uuid.Parse(chi.URLParam(r, "profileID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid profile ID format")
		return
	}

	if claims.UserID != profileID && claims.Role != domain.RoleAdmin {
		WriteJSONError(w, http.StatusForbidden, "You are not allowed to subscribe to this profile")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"profile_id": profileID.String()})
	handlerLogger.Info("New client subscribing to profile events", nil)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	topic := notifier.TopicForProfile(profileID.String())
	clientChan := h.notifier.AddClient(topic)
	defer h.notifier.RemoveClient(topic, clientChan)

	streamEvents(w, r, clientChan, handlerLogger)
}
