package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/repclub/revenue-api/internal/notification"
)

// Handler serves commission record routes.
type Handler struct {
	Repo *Repository
}

// NewHandler returns an initialized Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Get handles GET /commissions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid record ID", http.StatusBadRequest)
		return
	}
	rec, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rec)
}

// ListByConversion handles GET /conversions/{id}/commissions.
func (h *Handler) ListByConversion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid conversion ID", http.StatusBadRequest)
		return
	}
	list, err := h.Repo.FindByConversion(uint(id))
	if err != nil {
		http.Error(w, "could not list records", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ListBySalesperson handles GET /salespeople/{id}/commissions with an
// optional ?status= filter.
func (h *Handler) ListBySalesperson(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid salesperson ID", http.StatusBadRequest)
		return
	}
	status := r.URL.Query().Get("status")
	if status != "" && !ValidStatus(status) {
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}
	list, err := h.Repo.FindBySalesperson(uint(id), status)
	if err != nil {
		http.Error(w, "could not list records", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// UpdateStatus handles PATCH /commissions/{id}/status. The caller sends
// the status it last observed alongside the target; a mismatch against
// the stored row means someone else got there first and returns 409.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid record ID", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status         string `json:"status"`
		ExpectedStatus string `json:"expectedStatus"`
		Reason         string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if !ValidStatus(payload.Status) || !ValidStatus(payload.ExpectedStatus) {
		http.Error(w, "unknown status", http.StatusBadRequest)
		return
	}

	rec, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	if err := rec.Transition(payload.Status, payload.ExpectedStatus, payload.Reason, time.Now()); err != nil {
		writeTransitionError(w, err)
		return
	}
	if err := h.Repo.SaveTransition(rec, payload.ExpectedStatus); err != nil {
		writeTransitionError(w, err)
		return
	}

	if rec.Status == StatusDisputed {
		go notification.SendDisputeAlert(rec.ID, rec.SalespersonID, rec.DisputeReason)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rec)
}

func writeTransitionError(w http.ResponseWriter, err error) {
	var ite *InvalidTransitionError
	switch {
	case errors.Is(err, ErrStaleState):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrImmutableRecord):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &ite):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
