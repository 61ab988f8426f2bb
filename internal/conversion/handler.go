package conversion

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/repclub/revenue-api/internal/commission"
	"github.com/repclub/revenue-api/internal/ledger"
	"github.com/repclub/revenue-api/internal/pricing"
	"github.com/repclub/revenue-api/internal/promotion"
)

// Handler serves conversion routes.
type Handler struct {
	Service  *Service
	validate *validator.Validate
}

// NewHandler returns an initialized Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc, validate: validator.New()}
}

// writeEngineError maps engine error types onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	var (
		cve *commission.ValidationError
		pve *pricing.ValidationError
		amb *commission.AmbiguousRuleError
	)
	switch {
	case errors.As(err, &cve), errors.As(err, &pve):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &amb):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrAlreadyClosed):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ledger.ErrImmutableRecord):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// Create handles POST /conversions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateConversionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Split shares are checked on the way in, not at close time, so a
	// misconfigured split surfaces while staff is still on the screen.
	if len(dto.Splits) > 0 {
		if err := commission.ValidateShares(dto.Splits); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	commissionType := dto.CommissionType
	if commissionType == "" {
		commissionType = commission.TypePercentage
	}

	c := Conversion{
		MemberName:        dto.MemberName,
		Contact:           dto.Contact,
		Phone:             dto.Phone,
		PlanID:            dto.PlanID,
		PromotionID:       dto.PromotionID,
		SalespersonID:     dto.SalespersonID,
		CommissionType:    commissionType,
		CustomBasisAmount: dto.CustomBasisAmount,
		Splits:            dto.Splits,
		Status:            StatusOpen,
	}
	if err := h.Service.Repo.Create(&c); err != nil {
		http.Error(w, "could not create conversion", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// List handles GET /conversions with an optional ?status= filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Repo.FindAll(r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, "could not list conversions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ListBySalesperson handles GET /salespeople/{id}/conversions.
func (h *Handler) ListBySalesperson(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid salesperson ID", http.StatusBadRequest)
		return
	}
	list, err := h.Service.Repo.FindBySalesperson(uint(id))
	if err != nil {
		http.Error(w, "could not list conversions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get handles GET /conversions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid conversion ID", http.StatusBadRequest)
		return
	}
	c, err := h.Service.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "conversion not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Close handles POST /conversions/{id}/close: runs the engine and
// persists charge, commission records and subscription atomically.
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid conversion ID", http.StatusBadRequest)
		return
	}
	result, err := h.Service.Close(uint(id), time.Now())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// MarkLost handles POST /conversions/{id}/lost.
func (h *Handler) MarkLost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid conversion ID", http.StatusBadRequest)
		return
	}
	c, err := h.Service.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "conversion not found", http.StatusNotFound)
		return
	}
	if c.Status != StatusOpen {
		http.Error(w, "conversion is not open", http.StatusConflict)
		return
	}
	c.Status = StatusLost
	if err := h.Service.Repo.Update(c); err != nil {
		http.Error(w, "could not update conversion", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// AdvanceSubscription handles POST /subscriptions/{id}/advance: bills the
// subscription's next cycle and writes any recurring commission.
func (h *Handler) AdvanceSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid subscription ID", http.StatusBadRequest)
		return
	}
	result, err := h.Service.BillCycle(uint(id), time.Now())
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotActive) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		writeEngineError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// Quote handles POST /quotes: a discount preview against a plan, without
// touching any conversion or usage counter.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var dto QuoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.Service.Plans.FindByID(dto.PlanID)
	if err != nil {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}
	var promo *promotion.Promotion
	if dto.PromotionID != nil {
		if promo, err = h.Service.Promos.FindByID(*dto.PromotionID); err != nil {
			http.Error(w, "promotion not found", http.StatusNotFound)
			return
		}
	}

	quote, err := pricing.ResolveDiscount(p.BasePrice, p.ID, promo, time.Now())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(quote)
}

// Reallocate handles POST /commissions/{id}/reallocate: recomputes an
// unpaid record from the current rule configuration.
func (h *Handler) Reallocate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid record ID", http.StatusBadRequest)
		return
	}
	rec, err := h.Service.ReallocateRecord(uint(id), time.Now())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rec)
}
