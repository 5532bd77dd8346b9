package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alextreichler/carrental/internal/events"
	"github.com/alextreichler/carrental/internal/models"
	"github.com/alextreichler/carrental/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid email or password."

type AdminHandler struct {
	Store  store.AdminStore
	Events events.Publisher
	// HashCost is the bcrypt cost for new passwords. Zero means bcrypt.DefaultCost.
	HashCost int
}

type registerRequest struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"password"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// dummyHash is compared against when the email is unknown so both login
// failures cost the same.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(w, r, &req); err != nil {
		slog.Error("Error registering admin", "error", err)
		writeDecodeError(w, err, "Failed to register admin")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email, and password are required.", nil)
		return
	}

	_, err := h.Store.GetAdminByEmail(r.Context(), req.Email)
	switch {
	case err == nil:
		writeError(w, http.StatusConflict, "Email already registered.", nil)
		return
	case !errors.Is(err, store.ErrNotFound):
		slog.Error("Error registering admin", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register admin", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.cost())
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		writeError(w, http.StatusBadRequest, "Password must be at most 72 bytes.", nil)
		return
	}
	if err != nil {
		slog.Error("Error hashing admin password", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register admin", err)
		return
	}

	saved, err := h.Store.CreateAdmin(r.Context(), &models.Admin{
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hash),
		RegisteredAt: req.RegisteredAt,
	})
	if errors.Is(err, store.ErrDuplicateEmail) {
		// Lost a race with a concurrent registration.
		writeError(w, http.StatusConflict, "Email already registered.", nil)
		return
	}
	if err != nil {
		slog.Error("Error registering admin", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register admin", err)
		return
	}

	slog.Info("Admin registered", "id", saved.ID, "email", saved.Email)
	publish(r.Context(), h.Events, events.New(events.AdminRegistered, saved.ID, saved))
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Admin registered successfully!", "admin": saved})
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.Store.GetAllAdmins(r.Context())
	if err != nil {
		slog.Error("Error fetching admins", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch admins", err)
		return
	}
	writeJSON(w, http.StatusOK, admins)
}

// Login answers unknown emails and wrong passwords with the same 401.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		slog.Error("Error during admin login", "error", err)
		writeDecodeError(w, err, "Failed to login")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required.", nil)
		return
	}

	admin, err := h.Store.GetAdminByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		slog.Info("Login failed", "reason", "unknown email")
		writeError(w, http.StatusUnauthorized, invalidCredentials, nil)
		return
	}
	if err != nil {
		slog.Error("Error during admin login", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to login", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		slog.Info("Login failed", "reason", "password mismatch", "admin_id", admin.ID)
		writeError(w, http.StatusUnauthorized, invalidCredentials, nil)
		return
	}

	slog.Info("Login successful", "admin_id", admin.ID)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Login successful", "admin": admin})
}

func (h *AdminHandler) cost() int {
	if h.HashCost == 0 {
		return bcrypt.DefaultCost
	}
	return h.HashCost
}
