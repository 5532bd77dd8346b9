package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alextreichler/carrental/internal/models"
	"github.com/alextreichler/carrental/internal/store"
)

// LocationHandler serves the rental store locations under /api/stores.
type LocationHandler struct {
	Store store.LocationStore
}

func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var loc models.Location
	if err := decodeBody(w, r, &loc); err != nil {
		slog.Error("Error adding store", "error", err)
		writeDecodeError(w, err, "Failed to add store")
		return
	}

	saved, err := h.Store.CreateLocation(r.Context(), &loc)
	if err != nil {
		slog.Error("Error adding store", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add store", err)
		return
	}

	slog.Info("Store added", "id", saved.ID, "city", saved.City)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Store added successfully!", "store": saved})
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locs, err := h.Store.GetAllLocations(r.Context())
	if err != nil {
		slog.Error("Error fetching stores", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch stores", err)
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	body, err := readBody(w, r)
	if err != nil {
		slog.Error("Error updating store", "id", id, "error", err)
		writeDecodeError(w, err, "Failed to update store")
		return
	}

	loc, err := h.Store.UpdateLocation(r.Context(), id, func(l *models.Location) error {
		return decodeJSON(body, l)
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Store not found", nil)
		return
	case err != nil:
		slog.Error("Error updating store", "id", id, "error", err)
		writeDecodeError(w, err, "Failed to update store")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Store updated successfully", "store": loc})
}

func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	loc, err := h.Store.DeleteLocation(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Store not found", nil)
		return
	}
	if err != nil {
		slog.Error("Error deleting store", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete store", err)
		return
	}
	slog.Info("Store deleted", "id", loc.ID)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Store deleted successfully", "store": loc})
}
