package subscription

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/repclub/revenue-api/internal/plan"
	"github.com/repclub/revenue-api/internal/promotion"
)

// Handler serves subscription routes.
type Handler struct {
	Repo      *Repository
	PlanRepo  *plan.Repository
	PromoRepo *promotion.Repository
}

// NewHandler returns an initialized Handler.
func NewHandler(repo *Repository, planRepo *plan.Repository, promoRepo *promotion.Repository) *Handler {
	return &Handler{Repo: repo, PlanRepo: planRepo, PromoRepo: promoRepo}
}

// ApplyPromotion handles POST /subscriptions/{id}/promotions: grants a
// free-months promotion to an existing subscription. Stacked grants
// accumulate on the waived-cycle counter.
func (h *Handler) ApplyPromotion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid subscription ID", http.StatusBadRequest)
		return
	}
	var payload struct {
		PromotionID uint `json:"promotionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.PromotionID == 0 {
		http.Error(w, "promotionId is required", http.StatusBadRequest)
		return
	}

	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "subscription not found", http.StatusNotFound)
		return
	}
	promo, err := h.PromoRepo.FindByID(payload.PromotionID)
	if err != nil {
		http.Error(w, "promotion not found", http.StatusNotFound)
		return
	}
	if promo.DiscountType != promotion.DiscountFreeMonths {
		http.Error(w, "only free-months promotions can be applied to an existing subscription", http.StatusBadRequest)
		return
	}
	if !promo.AppliesTo(s.PlanID, time.Now()) {
		http.Error(w, "promotion does not apply to this subscription's plan", http.StatusUnprocessableEntity)
		return
	}

	if err := h.PromoRepo.ConsumeUse(promo.ID); err != nil {
		if errors.Is(err, promotion.ErrExhausted) {
			http.Error(w, "promotion usage cap exhausted", http.StatusConflict)
			return
		}
		http.Error(w, "could not consume promotion", http.StatusInternalServerError)
		return
	}
	n := int(promo.DiscountValue.IntPart())
	if err := h.Repo.AddWaivedCycles(s.ID, n); err != nil {
		http.Error(w, "could not apply promotion", http.StatusInternalServerError)
		return
	}

	s, err = h.Repo.FindByID(s.ID)
	if err != nil {
		http.Error(w, "subscription not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}

// List handles GET /subscriptions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.FindAll()
	if err != nil {
		http.Error(w, "could not list subscriptions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get handles GET /subscriptions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid subscription ID", http.StatusBadRequest)
		return
	}
	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "subscription not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}

// ChargePreview handles GET /subscriptions/{id}/charges/{cycle} and
// returns the amount the given cycle will bill.
func (h *Handler) ChargePreview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "invalid subscription ID", http.StatusBadRequest)
		return
	}
	cycle, err := strconv.Atoi(vars["cycle"])
	if err != nil || cycle < 1 {
		http.Error(w, "cycle must be a positive integer", http.StatusBadRequest)
		return
	}

	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "subscription not found", http.StatusNotFound)
		return
	}
	p, err := h.PlanRepo.FindByID(s.PlanID)
	if err != nil {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}

	charge := s.ChargeForCycle(p, cycle)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		SubscriptionID uint            `json:"subscriptionId"`
		CycleIndex     int             `json:"cycleIndex"`
		Amount         decimal.Decimal `json:"amount"`
		Waived         bool            `json:"waived"`
	}{
		SubscriptionID: s.ID,
		CycleIndex:     cycle,
		Amount:         charge,
		Waived:         cycle > 1 && cycle <= 1+s.WaivedCycles,
	})
}
