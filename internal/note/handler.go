package note

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/repclub/revenue-api/internal/auth"
)

// Handler serves note routes.
type Handler struct {
	Repo *Repository
}

// NewHandler returns an initialized Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Create handles POST /conversions/{id}/notes. The author is taken from
// the authenticated caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	convID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid conversion ID", http.StatusBadRequest)
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	n := Note{
		ConversionID:  uint(convID),
		SalespersonID: userID,
		Text:          payload.Text,
	}
	if err := h.Repo.Create(&n); err != nil {
		http.Error(w, "could not create note", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(n)
}

// ListByConversion handles GET /conversions/{id}/notes.
func (h *Handler) ListByConversion(w http.ResponseWriter, r *http.Request) {
	convID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid conversion ID", http.StatusBadRequest)
		return
	}
	list, err := h.Repo.FindByConversion(uint(convID))
	if err != nil {
		http.Error(w, "could not list notes", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Delete handles DELETE /notes/{id}. Only the author or an admin may
// remove a note.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid note ID", http.StatusBadRequest)
		return
	}
	n, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}

	userID, _ := r.Context().Value(auth.CtxUserID).(uint)
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	if n.SalespersonID != userID && !isAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if err := h.Repo.Delete(n); err != nil {
		http.Error(w, "could not delete note", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
