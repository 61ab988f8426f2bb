package promotion

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// Handler serves promotion routes.
type Handler struct {
	Repo     *Repository
	validate *validator.Validate
}

// NewHandler returns an initialized Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, validate: validator.New()}
}

var hundred = decimal.NewFromInt(100)

// checkValue enforces the per-type bounds on DiscountValue.
func checkValue(discountType string, value decimal.Decimal) string {
	switch discountType {
	case DiscountPercentage:
		if value.IsNegative() || value.GreaterThan(hundred) {
			return "percentage discount must be between 0 and 100"
		}
	case DiscountFixedAmount:
		if value.IsNegative() {
			return "fixed amount discount must not be negative"
		}
	case DiscountFreeMonths:
		if !value.IsInteger() || value.LessThanOrEqual(decimal.Zero) {
			return "free months discount must be a positive whole number of billing periods"
		}
	}
	return ""
}

// Create handles POST /promotions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreatePromotionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if msg := checkValue(dto.DiscountType, dto.DiscountValue); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	p := Promotion{
		Name:            dto.Name,
		DiscountType:    dto.DiscountType,
		DiscountValue:   dto.DiscountValue,
		ApplicablePlans: dto.ApplicablePlans,
		ValidFrom:       dto.ValidFrom,
		ValidUntil:      dto.ValidUntil,
		IsActive:        true,
		MaxUses:         dto.MaxUses,
	}
	if err := h.Repo.Create(&p); err != nil {
		http.Error(w, "could not create promotion", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// List handles GET /promotions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.FindAll()
	if err != nil {
		http.Error(w, "could not list promotions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get handles GET /promotions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid promotion ID", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "promotion not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Update handles PUT /promotions/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid promotion ID", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "promotion not found", http.StatusNotFound)
		return
	}

	var dto CreatePromotionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if msg := checkValue(dto.DiscountType, dto.DiscountValue); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	p.Name = dto.Name
	p.DiscountType = dto.DiscountType
	p.DiscountValue = dto.DiscountValue
	p.ApplicablePlans = dto.ApplicablePlans
	p.ValidFrom = dto.ValidFrom
	p.ValidUntil = dto.ValidUntil
	p.MaxUses = dto.MaxUses

	if err := h.Repo.Update(p); err != nil {
		http.Error(w, "could not update promotion", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Toggle handles POST /promotions/{id}/toggle and flips the active flag.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid promotion ID", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "promotion not found", http.StatusNotFound)
		return
	}
	p.IsActive = !p.IsActive
	if err := h.Repo.Update(p); err != nil {
		http.Error(w, "could not toggle promotion", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Delete handles DELETE /promotions/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid promotion ID", http.StatusBadRequest)
		return
	}
	p, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "promotion not found", http.StatusNotFound)
		return
	}
	if err := h.Repo.Delete(p); err != nil {
		http.Error(w, "could not delete promotion", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
