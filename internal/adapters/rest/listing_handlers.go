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
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ListingHandlers struct {
	findListingsUC      usecases_port.FindListingsUseCasePort
	getListingDetailsUC usecases_port.GetListingDetailsUseCasePort
	createListingUC     usecases_port.CreateListingUseCasePort
	updateListingUC     usecases_port.UpdateListingUseCasePort
	trackViewUC         usecases_port.TrackViewUseCasePort
	notifier            *notifier.SSENotifier
}

// NewListingHandlers - конструктор для обработчиков объявлений.
func NewListingHandlers(
	findListingsUC usecases_port.FindListingsUseCasePort,
	getListingDetailsUC usecases_port.GetListingDetailsUseCasePort,
	createListingUC usecases_port.CreateListingUseCasePort,
	updateListingUC usecases_port.UpdateListingUseCasePort,
	trackViewUC usecases_port.TrackViewUseCasePort,
	notifier *notifier.SSENotifier,
) *ListingHandlers {
	return &ListingHandlers{
		findListingsUC:      findListingsUC,
		getListingDetailsUC: getListingDetailsUC,
		createListingUC:     createListingUC,
		updateListingUC:     updateListingUC,
		trackViewUC:         trackViewUC,
		notifier:            notifier,
	}
}

// parseListingFilters собирает фильтры поиска из query-параметров.
// Отсутствующий параметр остается nil и не попадает в SQL.
func parseListingFilters(r *http.Request) (domain.ListingFilters, error) {
	query := r.URL.Query()

	filters := domain.ListingFilters{
		Category:  query.Get("category"),
		PriceType: query.Get("price_type"),
		Search:    query.Get("search"),
		OrderBy:   query.Get("order_by"),
	}

	var err error
	if filters.Bedrooms, err = queryInt(r, "bedrooms"); err != nil {
		return filters, fmt.Errorf("parameter 'bedrooms' must be an integer")
	}
	if filters.Bathrooms, err = queryInt(r, "bathrooms"); err != nil {
		return filters, fmt.Errorf("parameter 'bathrooms' must be an integer")
	}
	if filters.IsFeatured, err = queryBool(r, "is_featured"); err != nil {
		return filters, fmt.Errorf("parameter 'is_featured' must be a boolean")
	}
	if filters.IsVerified, err = queryBool(r, "is_verified"); err != nil {
		return filters, fmt.Errorf("parameter 'is_verified' must be a boolean")
	}
	if filters.MinPrice, err = queryFloat(r, "min_price"); err != nil {
		return filters, fmt.Errorf("parameter 'min_price' must be a number")
	}
	if filters.MaxPrice, err = queryFloat(r, "max_price"); err != nil {
		return filters, fmt.Errorf("parameter 'max_price' must be a number")
	}
	if filters.MinArea, err = queryFloat(r, "min_area"); err != nil {
		return filters, fmt.Errorf("parameter 'min_area' must be a number")
	}
	if filters.MaxArea, err = queryFloat(r, "max_area"); err != nil {
		return filters, fmt.Errorf("parameter 'max_area' must be a number")
	}
	if filters.Descending, err = queryBool(r, "desc"); err != nil {
		return filters, fmt.Errorf("parameter 'desc' must be a boolean")
	}
	if filters.Limit, err = queryInt(r, "limit"); err != nil {
		return filters, fmt.Errorf("parameter 'limit' must be an integer")
	}
	if filters.Offset, err = queryInt(r, "offset"); err != nil {
		return filters, fmt.Errorf("parameter 'offset' must be an integer")
	}

	if rawAgentID := query.Get("agent_id"); rawAgentID != "" {
		agentID, parseErr := uuid.Parse(rawAgentID)
		if parseErr != nil {
			return filters, fmt.Errorf("parameter 'agent_id' must be a valid UUID")
		}
		filters.AgentID = &agentID
	}

	return filters, nil
}

// FindListings - обработчик для GET /api/v1/listings
func (h *ListingHandlers) FindListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "FindListings"})

	filters, err := parseListingFilters(r)
	if err != nil {
		logger.Warn("Invalid search filters in request", port.Fields{"reason": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.findListingsUC.Execute(r.Context(), filters)
	if err != nil {
		logger.Error("FindListings use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to search listings")
		return
	}

	data := make([]ListingResponse, 0, len(page.Listings))
	for i := range page.Listings {
		data = append(data, toListingResponse(&page.Listings[i]))
	}

	logger.Info("Successfully found listings", port.Fields{"total": page.TotalCount})
	RespondWithJSON(w, http.StatusOK, PaginatedListingsResponse{
		Data:    data,
		Total:   page.TotalCount,
		Page:    page.CurrentPage,
		PerPage: page.ItemsPerPage,
	})
}

// GetListingByID - обработчик для GET /api/v1/listings/{listingID}
func (h *ListingHandlers) GetListingByID(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListingByID"})

	listingID, err := uuid.Parse(chi.URLParam(r, "listingID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	listing, err := h.getListingDetailsUC.Execute(r.Context(), listingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Listing not found")
			return
		}
		logger.Error("GetListingDetails use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve listing")
		return
	}

	RespondWithJSON(w, http.StatusOK, toListingResponse(listing))
}

// CreateListing - обработчик для POST /api/v1/listings
func (h *ListingHandlers) CreateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateListing"})

	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var reqDTO CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		if err == io.EOF {
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if reqDTO.Title == "" {
		WriteJSONError(w, http.StatusBadRequest, "Field 'title' is required")
		return
	}
	if reqDTO.Price <= 0 {
		WriteJSONError(w, http.StatusBadRequest, "Field 'price' must be a positive number")
		return
	}
	if !domain.PriceType(reqDTO.PriceType).Valid() {
		WriteJSONError(w, http.StatusBadRequest, "Field 'price_type' must be 'rent' or 'sale'")
		return
	}

	listing := domain.NewListing(
		reqDTO.Title,
		reqDTO.Description,
		reqDTO.Price,
		domain.PriceType(reqDTO.PriceType),
		reqDTO.Category,
		reqDTO.Location,
		reqDTO.Bedrooms,
		reqDTO.Bathrooms,
		claims.UserID,
	)
	listing.Area = reqDTO.Area
	listing.Latitude = reqDTO.Latitude
	listing.Longitude = reqDTO.Longitude
	listing.AgentID = reqDTO.AgentID
	if reqDTO.Images != nil {
		listing.Images = reqDTO.Images
	}
	if reqDTO.IsFeatured != nil {
		listing.IsFeatured = *reqDTO.IsFeatured
	}

	created, err := h.createListingUC.Execute(r.Context(), claims, listing)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			WriteJSONError(w, http.StatusForbidden, "Your role is not allowed to create listings")
			return
		}
		logger.Error("CreateListing use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to create listing")
		return
	}

	logger.Info("Successfully created listing", port.Fields{"listing_id": created.ID.String()})
	RespondWithJSON(w, http.StatusCreated, toListingResponse(created))
}

// UpdateListing - обработчик для PUT /api/v1/listings/{listingID}
func (h *ListingHandlers) UpdateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateListing"})

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

	var reqDTO UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		if err == io.EOF {
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	update := domain.ListingUpdate{
		Title:       reqDTO.Title,
		Description: reqDTO.Description,
		Price:       reqDTO.Price,
		Category:    reqDTO.Category,
		Location:    reqDTO.Location,
		Bedrooms:    reqDTO.Bedrooms,
		Bathrooms:   reqDTO.Bathrooms,
		Area:        reqDTO.Area,
		Images:      reqDTO.Images,
		IsAvailable: reqDTO.IsAvailable,
		IsFeatured:  reqDTO.IsFeatured,
		IsVerified:  reqDTO.IsVerified,
		AgentID:     reqDTO.AgentID,
		Latitude:    reqDTO.Latitude,
		Longitude:   reqDTO.Longitude,
	}
	if reqDTO.PriceType != nil {
		priceType := domain.PriceType(*reqDTO.PriceType)
		if !priceType.Valid() {
			WriteJSONError(w, http.StatusBadRequest, "Field 'price_type' must be 'rent' or 'sale'")
			return
		}
		update.PriceType = &priceType
	}

	updated, err := h.updateListingUC.Execute(r.Context(), claims, listingID, update)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrListingNotFound):
			WriteJSONError(w, http.StatusNotFound, "Listing not found")
		case errors.Is(err, domain.ErrForbidden):
			WriteJSONError(w, http.StatusForbidden, "You are not allowed to modify this listing")
		default:
			logger.Error("UpdateListing use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to update listing")
		}
		return
	}

	logger.Info("Successfully updated listing", port.Fields{"listing_id": updated.ID.String()})
	RespondWithJSON(w, http.StatusOK, toListingResponse(updated))
}

// TrackView - обработчик для POST /api/v1/listings/{listingID}/view.
// Эндпоинт публичный: личность зрителя берется из контекста, если перед
// хендлером отработал OptionalAuthMiddleware с валидным токеном.
func (h *ListingHandlers) TrackView(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "TrackView"})

	listingID, err := uuid.Parse(chi.URLParam(r, "listingID"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing ID format")
		return
	}

	var viewerID *uuid.UUID
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		viewerID = &claims.UserID
	}

	err = h.trackViewUC.Execute(r.Context(), listingID, r.RemoteAddr, r.UserAgent(), viewerID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Listing not found")
			return
		}
		logger.Error("TrackView use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to record view")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SubscribeToListings - обработчик для GET /api/v1/listings/subscribe.
// Держит SSE-соединение и транслирует клиенту все изменения объявлений.
func (h *ListingHandlers) SubscribeToListings(w http.ResponseWriter, r *http.Request) {
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubscribeToListings"})
	handlerLogger.Info("New client subscribing to listing events", nil)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := h.notifier.AddClient(notifier.TopicListings)
	defer h.notifier.RemoveClient(notifier.TopicListings, clientChan)

	streamEvents(w, r, clientChan, handlerLogger)
}

// streamEvents - общий цикл SSE: отдает события из канала клиента и
// раз в 15 секунд шлет keep-alive комментарий, чтобы прокси не закрыли
// простаивающее соединение.
func streamEvents(w http.ResponseWriter, r *http.Request, clientChan notifier.ClientChannel, handlerLogger port.LoggerPort) {
	// Подтверждаем клиенту, что соединение установлено
	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case data := <-clientChan:
			if _, err := fmt.Fprintf(w, "%s", data); err != nil {
				handlerLogger.Error("Error writing to client, closing SSE connection", err, nil)
				return
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
			handlerLogger.Debug("Sent SSE event to client", nil)

		case <-ticker.C:
			// Строки, начинающиеся с двоеточия, по спецификации SSE считаются
			// комментариями: браузер их игнорирует, но соединение остается живым.
			if _, err := fmt.Fprintf(w, ": keep-alive\n\n"); err != nil {
				return
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}

		case <-r.Context().Done():
			handlerLogger.Info("SSE client disconnected.", nil)
			return
		}
	}
}
