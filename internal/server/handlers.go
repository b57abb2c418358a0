package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/LanS10t/geminiMiner/internal/elevator"
	"github.com/LanS10t/geminiMiner/internal/logging"
	"github.com/LanS10t/geminiMiner/internal/mineral"
)

// maxBodyBytes bounds request bodies; a large haul is still well under it.
const maxBodyBytes = 1 << 20

type handlers struct {
	cfg RouterConfig
	log logging.Logger
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ItemRequest is one mineral in an appraisal request.
type ItemRequest struct {
	Type    string  `json:"type"`
	Name    string  `json:"name,omitempty"`
	Quality string  `json:"quality,omitempty"`
	Value   float64 `json:"value"`
}

// AppraisalRequest is the body of POST /v1/appraisals.
type AppraisalRequest struct {
	Items        []ItemRequest `json:"items"`
	UseDelegated *bool         `json:"use_delegated,omitempty"`
}

// AppraisalResponse is the reply to POST /v1/appraisals.
type AppraisalResponse struct {
	ID      string `json:"id"`
	Verdict string `json:"verdict"`
	Path    string `json:"path"`
	Text    string `json:"text"`
}

// FloorsResponse is the reply to GET /v1/elevator.
type FloorsResponse struct {
	Floors []elevator.Floor `json:"floors"`
	Footer string           `json:"footer"`
}

// TravelRequest is the body of POST /v1/elevator/travel.
type TravelRequest struct {
	Depth int `json:"depth"`
}

// TravelResponse is the reply to a successful travel.
type TravelResponse struct {
	Depth int    `json:"depth"`
	Label string `json:"label"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Code: http.StatusText(status), Message: err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) appraise(w http.ResponseWriter, r *http.Request) {
	var req AppraisalRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	inv := make(mineral.Inventory, 0, len(req.Items))
	for i, it := range req.Items {
		item, err := mineral.NewItem(it.Type, it.Name, it.Quality, it.Value)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("item %d: %w", i, err))
			return
		}
		inv = append(inv, item)
	}

	useDelegated := h.cfg.UseDelegated
	if req.UseDelegated != nil {
		useDelegated = *req.UseDelegated
	}

	a := h.cfg.Appraiser.AppraiseDetailed(r.Context(), inv, useDelegated)
	writeJSON(w, http.StatusOK, AppraisalResponse{
		ID:      a.ID,
		Verdict: a.Verdict.String(),
		Path:    string(a.Path),
		Text:    a.Text,
	})
}

func (h *handlers) panel(r *http.Request, onTravel func(int)) (*elevator.Panel, error) {
	var unlocked map[int]bool
	if h.cfg.Unlocks != nil {
		var err error
		if unlocked, err = h.cfg.Unlocks.UnlockedDepths(r.Context()); err != nil {
			return nil, err
		}
	}
	p := elevator.New(h.cfg.Depths, unlocked, onTravel)
	p.Recorder = h.cfg.Metrics
	return p, nil
}

func (h *handlers) floors(w http.ResponseWriter, r *http.Request) {
	p, err := h.panel(r, nil)
	if err != nil {
		h.log.Error("loading unlocked depths", logging.Err(err))
		writeError(w, http.StatusInternalServerError, errors.New("progress store unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, FloorsResponse{Floors: p.Floors(), Footer: elevator.Footer})
}

func (h *handlers) travel(w http.ResponseWriter, r *http.Request) {
	var req TravelRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var arrived *TravelResponse
	p, err := h.panel(r, func(d int) {
		arrived = &TravelResponse{Depth: d, Label: elevator.Label(d)}
	})
	if err != nil {
		h.log.Error("loading unlocked depths", logging.Err(err))
		writeError(w, http.StatusInternalServerError, errors.New("progress store unavailable"))
		return
	}

	switch err := p.Travel(req.Depth); {
	case errors.Is(err, elevator.ErrUnknownDepth):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, elevator.ErrLocked):
		writeError(w, http.StatusForbidden, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, arrived)
	}
}
