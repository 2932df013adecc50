package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/openbay/quote-engine/engine/lifecycle"
	"github.com/openbay/quote-engine/engine/pricing"
	"github.com/openbay/quote-engine/engine/quote"
	"github.com/openbay/quote-engine/engine/vehicle"
	"github.com/openbay/quote-engine/pkg/events"
)

// server bundles the engine components behind the HTTP handlers.
type server struct {
	resolver   *vehicle.Resolver
	catalog    *pricing.Catalog
	calculator *quote.Calculator
	manager    *lifecycle.Manager
	publisher  *events.Publisher
	logger     *slog.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DecodeVINRequest is the JSON body for POST /api/vin/decode.
type DecodeVINRequest struct {
	VIN         string               `json:"vin"`
	HintedClass vehicle.VehicleClass `json:"hinted_class,omitempty"`
}

func (s *server) handleDecodeVIN(w http.ResponseWriter, r *http.Request) {
	var req DecodeVINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	id, err := s.resolver.DecodeVIN(req.VIN, req.HintedClass)
	if err != nil {
		mDecodeErr.Inc()
		if errors.Is(err, vehicle.ErrInvalidFormat) {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	mDecodeOK.Inc()
	writeJSON(w, http.StatusOK, id)
}

// DecodePlateRequest is the JSON body for POST /api/plate/decode.
type DecodePlateRequest struct {
	Plate        string `json:"plate"`
	Jurisdiction string `json:"jurisdiction"`
}

func (s *server) handleDecodePlate(w http.ResponseWriter, r *http.Request) {
	var req DecodePlateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	res, err := s.resolver.DecodePlate(r.Context(), req.Plate, req.Jurisdiction)
	if err != nil {
		switch {
		case errors.Is(err, vehicle.ErrInvalidFormat), errors.Is(err, vehicle.ErrUnknownJurisdiction):
			writeError(w, http.StatusUnprocessableEntity, err)
		default:
			s.logger.Error("plate lookup failed", "err", err)
			writeError(w, http.StatusBadGateway, errors.New("plate registry unavailable"))
		}
		return
	}
	if !res.Found {
		mPlateMiss.Inc()
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleJurisdictions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, vehicle.Jurisdictions())
}

// GenerateQuoteRequest is the JSON body for POST /api/quotes.
type GenerateQuoteRequest struct {
	RequestID string        `json:"request_id"`
	Options   quote.Options `json:"options"`
}

func (s *server) handleGenerateQuote(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.RequestID == "" || req.Options.ServiceType == "" {
		writeError(w, http.StatusBadRequest, errors.New("request_id and options.service_type are required"))
		return
	}

	start := time.Now()
	q, err := s.calculator.Generate(r.Context(), req.RequestID, req.Options)
	if err != nil {
		// Only a pricing table missing its fallback entry can get here.
		s.logger.Error("quote generation failed", "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	mQuoteDur.Since(start)
	mQuotes.Inc()
	if q.PricedAs != "" {
		mFallbacks.Inc()
	}

	if err := s.publisher.QuoteCreated(r.Context(), q); err != nil {
		s.logger.Warn("quote created event not published", "quote", q.ID, "err", err)
	}
	writeJSON(w, http.StatusCreated, q)
}

// TransitionRequest is the JSON body for POST /api/quotes/transition.
// The caller owns persistence, so the full quote rides in the request.
type TransitionRequest struct {
	Quote     quote.Quote       `json:"quote"`
	NewStatus quote.QuoteStatus `json:"new_status"`
	Context   lifecycle.Context `json:"context"`
}

func (s *server) handleTransition(w http.ResponseWriter, r *http.Request) {
	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	from := req.Quote.Status
	next, err := s.manager.Transition(req.Quote, req.NewStatus, req.Context)
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	mTransition.Inc()

	if err := s.publisher.QuoteTransitioned(r.Context(), from, next); err != nil {
		s.logger.Warn("transition event not published", "quote", next.ID, "err", err)
	}
	writeJSON(w, http.StatusOK, next)
}

func (s *server) handleListPricing(w http.ResponseWriter, _ *http.Request) {
	snap := s.catalog.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"version": snap.Version,
		"entries": snap.All(),
	})
}

func (s *server) handleSetPricing(w http.ResponseWriter, r *http.Request) {
	serviceType := r.PathValue("serviceType")
	var entry pricing.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := s.catalog.Set(serviceType, entry); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"version": s.catalog.Snapshot().Version})
}

func (s *server) handleResetPricing(w http.ResponseWriter, _ *http.Request) {
	s.catalog.ResetToDefaults()
	writeJSON(w, http.StatusOK, map[string]any{"version": s.catalog.Snapshot().Version})
}
