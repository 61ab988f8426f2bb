package plan

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// Handler serves plan routes.
type Handler struct {
	Repo     *Repository
	validate *validator.Validate
}

// NewHandler returns an initialized Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, validate: validator.New()}
}

// Create handles POST /plans.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreatePlanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.BasePrice.IsNegative() || dto.SignupFee.IsNegative() {
		http.Error(w, "prices must not be negative", http.StatusBadRequest)
		return
	}
	if dto.MaintenanceFee != nil && dto.MaintenanceFee.IsNegative() {
		http.Error(w, "maintenance fee must not be negative", http.StatusBadRequest)
		return
	}

	p := MembershipPlan{
		Name:            dto.Name,
		BasePrice:       dto.BasePrice.Round(2),
		SignupFee:       dto.SignupFee.Round(2),
		BillingInterval: dto.BillingInterval,
		MaintenanceFee:  dto.MaintenanceFee,
	}
	if p.MaintenanceFee != nil {
		rounded := p.MaintenanceFee.Round(2)
		p.MaintenanceFee = &rounded
	}
	if err := h.Repo.Create(&p); err != nil {
		http.Error(w, "could not create plan", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// List handles GET /plans.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.FindAll()
	if err != nil {
		http.Error(w, "could not list plans", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get handles GET /plans/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid plan ID", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Update handles PUT /plans/{id}. Plans referenced by a subscription are
// immutable and updates against them are refused.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid plan ID", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}
	referenced, err := h.Repo.IsReferenced(p.ID)
	if err != nil {
		http.Error(w, "could not check plan references", http.StatusInternalServerError)
		return
	}
	if referenced {
		http.Error(w, "plan is referenced by an active subscription and cannot be edited", http.StatusConflict)
		return
	}

	var dto CreatePlanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.BasePrice.IsNegative() || dto.SignupFee.IsNegative() {
		http.Error(w, "prices must not be negative", http.StatusBadRequest)
		return
	}

	p.Name = dto.Name
	p.BasePrice = dto.BasePrice.Round(2)
	p.SignupFee = dto.SignupFee.Round(2)
	p.BillingInterval = dto.BillingInterval
	if dto.MaintenanceFee != nil {
		rounded := dto.MaintenanceFee.Round(2)
		p.MaintenanceFee = &rounded
	} else {
		p.MaintenanceFee = nil
	}

	if err := h.Repo.Update(p); err != nil {
		http.Error(w, "could not update plan", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Delete handles DELETE /plans/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid plan ID", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}
	if err := h.Repo.Delete(p); err != nil {
		http.Error(w, "could not delete plan", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
