package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alextreichler/carrental/internal/events"
	"github.com/alextreichler/carrental/internal/models"
	"github.com/alextreichler/carrental/internal/store"
)

type BookingHandler struct {
	Cars     store.CarStore
	Bookings store.BookingStore
	Events   events.Publisher
}

// bookingView is a booking as listed: carImage follows the car's current
// image when the car still exists, and the car itself is attached.
type bookingView struct {
	models.Booking
	Car *models.Car `json:"car,omitempty"`
}

// Create checks that carId names an existing car before storing the booking.
// The check and the insert are separate operations; a car deleted in between
// can still end up referenced.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var b models.Booking
	if err := decodeBody(w, r, &b); err != nil {
		slog.Error("Error creating booking", "error", err)
		writeDecodeError(w, err, "Failed to create booking")
		return
	}

	if _, err := h.Cars.GetCarByID(r.Context(), b.CarID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.Warn("Invalid carId", "car_id", b.CarID)
			writeError(w, http.StatusBadRequest, "Invalid carId: Car not found", nil)
			return
		}
		slog.Error("Error creating booking", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create booking", err)
		return
	}

	saved, err := h.Bookings.CreateBooking(r.Context(), &b)
	if err != nil {
		slog.Error("Error creating booking", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create booking", err)
		return
	}

	slog.Info("Booking created", "id", saved.ID, "car_id", saved.CarID)
	publish(r.Context(), h.Events, events.New(events.BookingCreated, saved.ID, saved))
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Booking created successfully!", "booking": saved})
}

// List returns bookings newest first with their car references resolved.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Bookings.GetAllBookings(r.Context())
	if err != nil {
		slog.Error("Error fetching bookings", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch bookings", err)
		return
	}

	views, err := h.resolveCars(r.Context(), bookings)
	if err != nil {
		slog.Error("Error fetching bookings", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch bookings", err)
		return
	}

	slog.Debug("Fetched bookings", "count", len(views))
	writeJSON(w, http.StatusOK, views)
}

// resolveCars looks up each referenced car once. A missing car is not an
// error: the booking keeps its stored carImage.
func (h *BookingHandler) resolveCars(ctx context.Context, bookings []models.Booking) ([]bookingView, error) {
	cars := make(map[string]*models.Car)
	views := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		car, seen := cars[b.CarID]
		if !seen {
			c, err := h.Cars.GetCarByID(ctx, b.CarID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			car = c
			cars[b.CarID] = c
		}

		v := bookingView{Booking: b, Car: car}
		if car != nil && car.ImageURL != "" {
			v.CarImage = car.ImageURL
		}
		views = append(views, v)
	}
	return views, nil
}
