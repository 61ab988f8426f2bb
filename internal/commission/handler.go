package commission

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// Handler serves commission rule and assignment routes.
type Handler struct {
	Repo     *Repository
	validate *validator.Validate
}

// NewHandler returns an initialized Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, validate: validator.New()}
}

func (h *Handler) decodeRule(w http.ResponseWriter, r *http.Request, needSalesperson bool) (*RuleDTO, bool) {
	var dto RuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return nil, false
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if dto.CommissionValue.IsNegative() {
		http.Error(w, "commission value must not be negative", http.StatusBadRequest)
		return nil, false
	}
	if needSalesperson && dto.SalespersonID == 0 {
		http.Error(w, "salespersonId is required", http.StatusBadRequest)
		return nil, false
	}
	return &dto, true
}

// CreateRule handles POST /commission-rules.
func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decodeRule(w, r, false)
	if !ok {
		return
	}
	rule := CommissionRule{
		CommissionType:  dto.CommissionType,
		CommissionValue: dto.CommissionValue,
		RevenueBasis:    dto.RevenueBasis,
		MinThreshold:    dto.MinThreshold,
		MaxCap:          dto.MaxCap,
		DurationMonths:  dto.DurationMonths,
		IsActive:        true,
		EffectiveDate:   dto.EffectiveDate,
		ExpiryDate:      dto.ExpiryDate,
	}
	if err := h.Repo.CreateRule(&rule); err != nil {
		http.Error(w, "could not create rule", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(rule)
}

// ListRules handles GET /commission-rules.
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.FindRules()
	if err != nil {
		http.Error(w, "could not list rules", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GetRule handles GET /commission-rules/{id}.
func (h *Handler) GetRule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid rule ID", http.StatusBadRequest)
		return
	}
	rule, err := h.Repo.FindRuleByID(uint(id))
	if err != nil {
		http.Error(w, "rule not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rule)
}

// UpdateRule handles PUT /commission-rules/{id}.
func (h *Handler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid rule ID", http.StatusBadRequest)
		return
	}
	rule, err := h.Repo.FindRuleByID(uint(id))
	if err != nil {
		http.Error(w, "rule not found", http.StatusNotFound)
		return
	}
	dto, ok := h.decodeRule(w, r, false)
	if !ok {
		return
	}
	rule.CommissionType = dto.CommissionType
	rule.CommissionValue = dto.CommissionValue
	rule.RevenueBasis = dto.RevenueBasis
	rule.MinThreshold = dto.MinThreshold
	rule.MaxCap = dto.MaxCap
	rule.DurationMonths = dto.DurationMonths
	rule.EffectiveDate = dto.EffectiveDate
	rule.ExpiryDate = dto.ExpiryDate
	if err := h.Repo.UpdateRule(rule); err != nil {
		http.Error(w, "could not update rule", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rule)
}

// DeleteRule handles DELETE /commission-rules/{id}.
func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid rule ID", http.StatusBadRequest)
		return
	}
	rule, err := h.Repo.FindRuleByID(uint(id))
	if err != nil {
		http.Error(w, "rule not found", http.StatusNotFound)
		return
	}
	if err := h.Repo.DeleteRule(rule); err != nil {
		http.Error(w, "could not delete rule", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Resolve handles GET /commission-rules/resolve?salespersonId=&commissionType=.
// It previews which rule would govern a sale right now, without running
// any allocation. An empty body with status 204 means no rule applies.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	salespersonID, err := strconv.Atoi(r.URL.Query().Get("salespersonId"))
	if err != nil || salespersonID <= 0 {
		http.Error(w, "salespersonId is required", http.StatusBadRequest)
		return
	}
	commissionType := r.URL.Query().Get("commissionType")
	if !ValidCommissionType(commissionType) {
		http.Error(w, "unknown commission type", http.StatusBadRequest)
		return
	}

	resolved, err := h.Repo.Select(uint(salespersonID), commissionType, time.Now())
	if err != nil {
		var amb *AmbiguousRuleError
		if errors.As(err, &amb) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "could not resolve rule", http.StatusInternalServerError)
		return
	}
	if resolved == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resolved)
}

// CreateAssignment handles POST /commission-assignments.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decodeRule(w, r, true)
	if !ok {
		return
	}
	a := SalespersonAssignment{
		SalespersonID:   dto.SalespersonID,
		CommissionType:  dto.CommissionType,
		CommissionValue: dto.CommissionValue,
		RevenueBasis:    dto.RevenueBasis,
		MinThreshold:    dto.MinThreshold,
		MaxCap:          dto.MaxCap,
		DurationMonths:  dto.DurationMonths,
		IsActive:        true,
		EffectiveDate:   dto.EffectiveDate,
		ExpiryDate:      dto.ExpiryDate,
	}
	if err := h.Repo.CreateAssignment(&a); err != nil {
		http.Error(w, "could not create assignment", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(a)
}

// ListAssignments handles GET /commission-assignments with an optional
// ?salespersonId= filter.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	var salespersonID uint
	if s := r.URL.Query().Get("salespersonId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid salespersonId", http.StatusBadRequest)
			return
		}
		salespersonID = uint(id)
	}
	list, err := h.Repo.FindAssignments(salespersonID)
	if err != nil {
		http.Error(w, "could not list assignments", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GetAssignment handles GET /commission-assignments/{id}.
func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid assignment ID", http.StatusBadRequest)
		return
	}
	a, err := h.Repo.FindAssignmentByID(uint(id))
	if err != nil {
		http.Error(w, "assignment not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// UpdateAssignment handles PUT /commission-assignments/{id}.
func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid assignment ID", http.StatusBadRequest)
		return
	}
	a, err := h.Repo.FindAssignmentByID(uint(id))
	if err != nil {
		http.Error(w, "assignment not found", http.StatusNotFound)
		return
	}
	dto, ok := h.decodeRule(w, r, true)
	if !ok {
		return
	}
	a.SalespersonID = dto.SalespersonID
	a.CommissionType = dto.CommissionType
	a.CommissionValue = dto.CommissionValue
	a.RevenueBasis = dto.RevenueBasis
	a.MinThreshold = dto.MinThreshold
	a.MaxCap = dto.MaxCap
	a.DurationMonths = dto.DurationMonths
	a.EffectiveDate = dto.EffectiveDate
	a.ExpiryDate = dto.ExpiryDate
	if err := h.Repo.UpdateAssignment(a); err != nil {
		http.Error(w, "could not update assignment", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// DeleteAssignment handles DELETE /commission-assignments/{id}.
func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid assignment ID", http.StatusBadRequest)
		return
	}
	a, err := h.Repo.FindAssignmentByID(uint(id))
	if err != nil {
		http.Error(w, "assignment not found", http.StatusNotFound)
		return
	}
	if err := h.Repo.DeleteAssignment(a); err != nil {
		http.Error(w, "could not delete assignment", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
