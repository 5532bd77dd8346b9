package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/alextreichler/carrental/internal/events"
	"github.com/alextreichler/carrental/internal/store"
)

// Options tunes the router. The zero value is usable.
type Options struct {
	// PasswordCost is the bcrypt cost for admin passwords.
	PasswordCost int
}

// NewRouter wires every resource handler to st and returns the /api router.
// Requests that match no route get a JSON 404 and handler panics a JSON 500.
func NewRouter(st store.Store, pub events.Publisher, opts Options) http.Handler {
	if pub == nil {
		pub = events.Nop{}
	}

	cars := &CarHandler{Store: st, Events: pub}
	locations := &LocationHandler{Store: st}
	bookings := &BookingHandler{Cars: st, Bookings: st, Events: pub}
	admins := &AdminHandler{Store: st, Events: pub, HashCost: opts.PasswordCost}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/cars", cars.Create)
	mux.HandleFunc("GET /api/cars", cars.List)
	mux.HandleFunc("GET /api/cars/{id}", cars.Get)
	mux.HandleFunc("PUT /api/cars/{id}", cars.Update)
	mux.HandleFunc("DELETE /api/cars/{id}", cars.Delete)

	mux.HandleFunc("POST /api/stores", locations.Create)
	mux.HandleFunc("GET /api/stores", locations.List)
	mux.HandleFunc("PUT /api/stores/{id}", locations.Update)
	mux.HandleFunc("DELETE /api/stores/{id}", locations.Delete)

	mux.HandleFunc("POST /api/bookings", bookings.Create)
	mux.HandleFunc("GET /api/bookings", bookings.List)

	mux.HandleFunc("POST /api/admins", admins.Register)
	mux.HandleFunc("GET /api/admins", admins.List)
	mux.HandleFunc("POST /api/admins/login", admins.Login)

	mux.HandleFunc("GET /healthz", healthz(st))

	// "/" matches every method and path, so unmatched methods on known
	// paths also land here instead of the mux's 405.
	mux.HandleFunc("/", NotFound)

	return RecoverMiddleware(mux)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	slog.Warn("Route not found", "method", r.Method, "path", r.URL.Path)
	writeError(w, http.StatusNotFound, "Route not found", nil)
}

func healthz(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			slog.Error("Health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}
}
