package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alextreichler/carrental/internal/events"
	"github.com/alextreichler/carrental/internal/models"
	"github.com/alextreichler/carrental/internal/store"
)

type CarHandler struct {
	Store  store.CarStore
	Events events.Publisher
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var car models.Car
	if err := decodeBody(w, r, &car); err != nil {
		slog.Error("Error adding car", "error", err)
		writeDecodeError(w, err, "Failed to add car")
		return
	}

	saved, err := h.Store.CreateCar(r.Context(), &car)
	if err != nil {
		slog.Error("Error adding car", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add car", err)
		return
	}

	slog.Info("Car added", "id", saved.ID, "make", saved.Make, "model", saved.Model)
	publish(r.Context(), h.Events, events.New(events.CarCreated, saved.ID, saved))
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Car added successfully!", "car": saved})
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.Store.GetAllCars(r.Context())
	if err != nil {
		slog.Error("Error fetching cars", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch cars", err)
		return
	}
	slog.Debug("Fetched cars", "count", len(cars))
	writeJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	car, err := h.Store.GetCarByID(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Car not found", nil)
		return
	}
	if err != nil {
		slog.Error("Error fetching car by ID", "id", r.PathValue("id"), "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch car", err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

// Update merges the fields present in the body into the stored car.
func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	body, err := readBody(w, r)
	if err != nil {
		slog.Error("Error updating car", "id", id, "error", err)
		writeDecodeError(w, err, "Failed to update car")
		return
	}

	car, err := h.Store.UpdateCar(r.Context(), id, func(c *models.Car) error {
		return decodeJSON(body, c)
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Car not found", nil)
		return
	case err != nil:
		slog.Error("Error updating car", "id", id, "error", err)
		writeDecodeError(w, err, "Failed to update car")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Car updated successfully", "car": car})
}

// Delete removes the car. Bookings that reference it are left as they are.
func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	car, err := h.Store.DeleteCar(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Car not found", nil)
		return
	}
	if err != nil {
		slog.Error("Error deleting car", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete car", err)
		return
	}

	slog.Info("Car deleted", "id", car.ID)
	publish(r.Context(), h.Events, events.New(events.CarDeleted, car.ID, car))
	writeJSON(w, http.StatusOK, map[string]any{"message": "Car deleted successfully", "car": car})
}
