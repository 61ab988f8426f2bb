package salesperson

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/repclub/revenue-api/internal/auth"
	"github.com/repclub/revenue-api/internal/utils"
)

// request DTOs
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createSalespersonRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" validate:"required,min=8"`
	IsAdmin   bool   `json:"isAdmin"`
}

// Handler serves salesperson routes.
type Handler struct {
	Repo     *Repository
	validate *validator.Validate
}

// NewHandler returns an initialized Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, validate: validator.New()}
}

// Login issues a JWT for valid credentials.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Repo.FindByEmail(req.Email)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Create handles POST /salespeople.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSalespersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "could not process password", http.StatusInternalServerError)
		return
	}

	s := Salesperson{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  hash,
		IsAdmin:   req.IsAdmin,
	}
	if err := h.Repo.Create(&s); err != nil {
		http.Error(w, "could not create salesperson", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(s)
}

// List handles GET /salespeople. Non-admins only see themselves.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	if !isAdmin {
		userID, _ := r.Context().Value(auth.CtxUserID).(uint)
		s, err := h.Repo.FindByID(userID)
		if err != nil {
			http.Error(w, "salesperson not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Salesperson{*s})
		return
	}

	list, err := h.Repo.FindAll()
	if err != nil {
		http.Error(w, "could not list salespeople", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Get handles GET /salespeople/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid salesperson ID", http.StatusBadRequest)
		return
	}
	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "salesperson not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}

// Update handles PUT /salespeople/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid salesperson ID", http.StatusBadRequest)
		return
	}
	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "salesperson not found", http.StatusNotFound)
		return
	}

	var req createSalespersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	s.FirstName = req.FirstName
	s.LastName = req.LastName
	s.Email = req.Email
	s.Phone = req.Phone
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			http.Error(w, "could not process password", http.StatusInternalServerError)
			return
		}
		s.Password = hash
	}

	if err := h.Repo.Update(s); err != nil {
		http.Error(w, "could not update salesperson", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}

// ResetPassword handles POST /salespeople/{id}/reset-password: issues a
// temporary password and returns it once, for staff onboarding or a
// forgotten login. Admin only.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid salesperson ID", http.StatusBadRequest)
		return
	}
	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "salesperson not found", http.StatusNotFound)
		return
	}

	temp, err := utils.GenerateTempPassword()
	if err != nil {
		http.Error(w, "could not generate password", http.StatusInternalServerError)
		return
	}
	hash, err := utils.HashPassword(temp)
	if err != nil {
		http.Error(w, "could not process password", http.StatusInternalServerError)
		return
	}
	s.Password = hash
	if err := h.Repo.Update(s); err != nil {
		http.Error(w, "could not reset password", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"temporaryPassword": temp})
}

// Delete handles DELETE /salespeople/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid salesperson ID", http.StatusBadRequest)
		return
	}
	s, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "salesperson not found", http.StatusNotFound)
		return
	}
	if err := h.Repo.Delete(s); err != nil {
		http.Error(w, "could not delete salesperson", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
