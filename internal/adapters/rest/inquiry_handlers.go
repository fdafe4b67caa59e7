package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"listings-service/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type InquiryHandlers struct {
	createInquiryUC       usecases_port.CreateInquiryUseCasePort
	getInquiriesUC        usecases_port.GetInquiriesUseCasePort
	updateInquiryStatusUC usecases_port.UpdateInquiryStatusUseCasePort
}

func NewInquiryHandlers(
	createInquiryUC usecases_port.CreateInquiryUseCasePort,
	getInquiriesUC usecases_port.GetInquiriesUseCasePort,
	updateInquiryStatusUC usecases_port.UpdateInquiryStatusUseCasePort,
) *InquiryHandlers {
	return &InquiryHandlers{
		createInquiryUC:       createInquiryUC,
		getInquiriesUC:        getInquiriesUC,
		updateInquiryStatusUC: updateInquiryStatusUC,
	}
}

// CreateInquiry - обработчик для POST /api/v1/listings/{listingID}/inquiries
func (h *InquiryHandlers) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateInquiry"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	listingID, err := uuid.Parse(chi.URLParam(r, "listingID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	var reqDTO CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		if err == io.EOF {
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if reqDTO.Message == "" {
		WriteJSONError(w, http.StatusBadRequest, "Field 'message' is required")
		return
	}

	inquiry, err := h.createInquiryUC.Execute(r.Context(), claims, listingID, reqDTO.Message)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Listing not found")
			return
		}
		logger.Error("CreateInquiry use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to create inquiry")
		return
	}

	logger.Info("Successfully created inquiry", port.Fields{"inquiry_id": inquiry.ID.String()})
	RespondWithJSON(w, http.StatusCreated, toInquiryResponse(inquiry))
}

// GetInquiries - обработчик для GET /api/v1/inquiries.
// Возвращает заявки в объеме, доступном роли запрашивающего.
func (h *InquiryHandlers) GetInquiries(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetInquiries"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	inquiries, err := h.getInquiriesUC.Execute(r.Context(), claims)
	if err != nil {
		logger.Error("GetInquiries use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve inquiries")
		return
	}

	response := make([]InquiryWithListingResponse, 0, len(inquiries))
	for i := range inquiries {
		response = append(response, toInquiryWithListingResponse(&inquiries[i]))
	}

	logger.Info("Successfully retrieved inquiries", port.Fields{"count": len(response)})
	RespondWithJSON(w, http.StatusOK, response)
}

// UpdateInquiryStatus - обработчик для PUT /api/v1/inquiries/{inquiryID}/status
func (h *InquiryHandlers) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateInquiryStatus"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	inquiryID, err := uuid.Parse(chi.URLParam(r, "inquiryID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid inquiry ID format")
		return
	}

	var reqDTO UpdateInquiryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		if err == io.EOF {
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	inquiry, err := h.updateInquiryStatusUC.Execute(r.Context(), claims, inquiryID, reqDTO.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			WriteJSONError(w, http.StatusBadRequest, "Field 'status' must be 'pending', 'responded' or 'closed'")
		case errors.Is(err, domain.ErrInquiryNotFound):
			WriteJSONError(w, http.StatusNotFound, "Inquiry not found")
		case errors.Is(err, domain.ErrListingNotFound):
			WriteJSONError(w, http.StatusNotFound, "Listing for this inquiry not found")
		case errors.Is(err, domain.ErrForbidden):
			WriteJSONError(w, http.StatusForbidden, "You are not allowed to manage this inquiry")
		default:
			logger.Error("UpdateInquiryStatus use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to update inquiry status")
		}
		return
	}

	logger.Info("Successfully updated inquiry status", port.Fields{
		"inquiry_id": inquiry.ID.String(),
		"status":     inquiry.Status,
	})
	RespondWithJSON(w, http.StatusOK, toInquiryResponse(inquiry))
}
