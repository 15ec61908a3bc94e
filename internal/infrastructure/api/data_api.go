package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/application"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/infrastructure/shopify"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// DataAPI exposes the key-gated data endpoint, the selection endpoints and
// the webhook intake over HTTP
type DataAPI struct {
	gateway    *application.GatewayService
	selections *application.SelectionService
	webhooks   *application.WebhookService
	verifier   *shopify.WebhookVerifier
	logger     zerolog.Logger
}

// NewDataAPI creates a new data API handler set
func NewDataAPI(
	gateway *application.GatewayService,
	selections *application.SelectionService,
	webhooks *application.WebhookService,
	verifier *shopify.WebhookVerifier,
	logger zerolog.Logger,
) *DataAPI {
	return &DataAPI{
		gateway:    gateway,
		selections: selections,
		webhooks:   webhooks,
		verifier:   verifier,
		logger:     logger,
	}
}

// HandleFetchData serves GET /api/data/{apiKey}
func (a *DataAPI) HandleFetchData(w http.ResponseWriter, r *http.Request) {
	apiKey := chi.URLParam(r, "apiKey")
	if apiKey == "" {
		a.writeError(w, http.StatusBadRequest, "api key is required")
		return
	}

	payload, err := a.gateway.FetchAuthorizedData(r.Context(), apiKey)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, payload)
}

// HandleUpdateSelections serves POST /api/data-selections?shop=
func (a *DataAPI) HandleUpdateSelections(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		a.writeError(w, http.StatusBadRequest, "shop parameter is required")
		return
	}

	var req struct {
		DataSelections map[string]bool `json:"dataSelections"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DataSelections == nil {
		a.writeError(w, http.StatusBadRequest, "dataSelections is required")
		return
	}

	selections, err := domain.ParseSelections(req.DataSelections)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	info, err := a.selections.UpdateSelections(r.Context(), shop, selections)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, info)
}

// HandleKeyInfo serves GET /api/key-info?shop=
func (a *DataAPI) HandleKeyInfo(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		a.writeError(w, http.StatusBadRequest, "shop parameter is required")
		return
	}

	info, err := a.selections.KeyInfo(r.Context(), shop)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, info)
}

// HandleWebhook serves POST /webhooks/shopify
func (a *DataAPI) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	topic := r.Header.Get("X-Shopify-Topic")
	if topic == "" {
		a.logger.Warn().Msg("Missing X-Shopify-Topic header")
		a.writeError(w, http.StatusBadRequest, "missing X-Shopify-Topic header")
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to read webhook payload")
		a.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	defer r.Body.Close()

	hmacHeader := r.Header.Get("X-Shopify-Hmac-SHA256")
	if err := a.verifier.Verify(payload, hmacHeader); err != nil {
		a.logger.Warn().Err(err).Str("topic", topic).Msg("Webhook signature verification failed")
		a.writeError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	shop := r.Header.Get("X-Shopify-Shop-Domain")
	if shop == "" {
		var webhookData map[string]interface{}
		if err := json.Unmarshal(payload, &webhookData); err == nil {
			if d, ok := webhookData["domain"].(string); ok {
				shop = d
			} else if d, ok := webhookData["myshopify_domain"].(string); ok {
				shop = d
			}
		}
	}

	event := &domain.WebhookEvent{
		Topic:    topic,
		Shop:     shop,
		Payload:  payload,
		Verified: true,
	}

	if err := a.webhooks.Process(r.Context(), event); err != nil {
		// Non-2xx makes Shopify retry the delivery
		a.writeError(w, http.StatusInternalServerError, "failed to process webhook event")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
}

func (a *DataAPI) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (a *DataAPI) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]string{"error": message})
}

func (a *DataAPI) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		a.writeError(w, http.StatusUnauthorized, "invalid api key")
	case errors.Is(err, domain.ErrNotFound):
		a.writeError(w, http.StatusNotFound, "store not found")
	case errors.Is(err, domain.ErrUpstream):
		a.writeError(w, http.StatusInternalServerError, "failed to fetch data from shopify")
	case errors.Is(err, domain.ErrAuth):
		a.writeError(w, http.StatusInternalServerError, "authentication failed")
	default:
		a.logger.Error().Err(err).Msg("Unhandled service error")
		a.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
