package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alextreichler/carrental/internal/events"
	"github.com/alextreichler/carrental/internal/handlers"
	"github.com/alextreichler/carrental/internal/models"
	"github.com/alextreichler/carrental/internal/store"
	"github.com/alextreichler/carrental/internal/store/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type testServer struct {
	t      *testing.T
	store  *sqlite.Store
	events *recordingPublisher
	srv    *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithPool(t, 10)
}

func newTestServerWithPool(t *testing.T, maxConns int) *testServer {
	t.Helper()
	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "rental.db"), maxConns)
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))

	pub := &recordingPublisher{}
	router := handlers.NewRouter(st, pub, handlers.Options{PasswordCost: bcrypt.MinCost})
	srv := httptest.NewServer(handlers.CORSMiddleware("*")(router))
	t.Cleanup(func() {
		srv.Close()
		st.Close()
	})
	return &testServer{t: t, store: st, events: pub, srv: srv}
}

func (ts *testServer) do(method, path string, body any) (int, []byte) {
	ts.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(ts.t, err)
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.srv.URL+path, r)
	require.NoError(ts.t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.srv.Client().Do(req)
	require.NoError(ts.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(ts.t, err)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func carBody() map[string]any {
	return map[string]any{
		"make":         "Toyota",
		"model":        "Corolla",
		"year":         2022,
		"pricePerDay":  45,
		"imageUrl":     "https://cdn.example.com/corolla.jpg",
		"filename":     "corolla.jpg",
		"type":         "Sedan",
		"seats":        5,
		"transmission": "Automatic",
		"features":     []string{"Bluetooth"},
	}
}

func bookingBody(carID string) map[string]any {
	return map[string]any{
		"carId":          carID,
		"carImage":       "https://cdn.example.com/snapshot.jpg",
		"firstName":      "Ada",
		"lastName":       "Lovelace",
		"contactInfo":    "ada@example.com",
		"pickupLocation": "Airport",
		"pickupDate":     "2025-07-01T10:00:00Z",
		"returnDate":     "2025-07-04T10:00:00Z",
		"rentalDays":     3,
	}
}

type carResponse struct {
	Message string     `json:"message"`
	Car     models.Car `json:"car"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (ts *testServer) createCar(body map[string]any) models.Car {
	ts.t.Helper()
	code, data := ts.do(http.MethodPost, "/api/cars", body)
	require.Equal(ts.t, http.StatusCreated, code, string(data))
	return decode[carResponse](ts.t, data).Car
}

func TestCars_CreateThenGet(t *testing.T) {
	ts := newTestServer(t)

	code, data := ts.do(http.MethodPost, "/api/cars", carBody())
	require.Equal(t, http.StatusCreated, code)
	created := decode[carResponse](t, data)
	assert.Equal(t, "Car added successfully!", created.Message)
	require.NotEmpty(t, created.Car.ID)

	code, data = ts.do(http.MethodGet, "/api/cars/"+created.Car.ID, nil)
	require.Equal(t, http.StatusOK, code)
	got := decode[models.Car](t, data)
	assert.Equal(t, created.Car.ID, got.ID)
	assert.Equal(t, "Toyota", got.Make)
	assert.Equal(t, 45.0, got.PricePerDay)
	assert.Equal(t, []string{"Bluetooth"}, got.Features)

	assert.Equal(t, []string{events.CarCreated}, ts.events.types())
}

func TestCars_MissingFieldIsNeverListed(t *testing.T) {
	ts := newTestServer(t)

	body := carBody()
	delete(body, "seats")
	code, data := ts.do(http.MethodPost, "/api/cars", body)
	require.Equal(t, http.StatusInternalServerError, code)
	resp := decode[errorResponse](t, data)
	assert.Equal(t, "Failed to add car", resp.Message)
	assert.Contains(t, resp.Error, "seats")

	code, data = ts.do(http.MethodGet, "/api/cars", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]models.Car](t, data))
}

func TestCars_WrongTypeIsAFailure(t *testing.T) {
	ts := newTestServer(t)

	body := carBody()
	body["year"] = "twenty twenty"
	code, data := ts.do(http.MethodPost, "/api/cars", body)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to add car", decode[errorResponse](t, data).Message)
}

func TestCars_MalformedJSON(t *testing.T) {
	ts := newTestServer(t)

	code, data := ts.do(http.MethodPost, "/api/cars", `{"make": "Toyota"`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid JSON body", decode[errorResponse](t, data).Message)
}

func TestCars_UpdateMergesFields(t *testing.T) {
	ts := newTestServer(t)
	car := ts.createCar(carBody())

	code, data := ts.do(http.MethodPut, "/api/cars/"+car.ID, map[string]any{"pricePerDay": 60, "_id": "hijack"})
	require.Equal(t, http.StatusOK, code, string(data))
	resp := decode[carResponse](t, data)
	assert.Equal(t, "Car updated successfully", resp.Message)
	assert.Equal(t, car.ID, resp.Car.ID)
	assert.Equal(t, 60.0, resp.Car.PricePerDay)
	assert.Equal(t, "Corolla", resp.Car.Model)

	code, _ = ts.do(http.MethodPut, "/api/cars/"+car.ID, map[string]any{"make": ""})
	assert.Equal(t, http.StatusInternalServerError, code)

	code, data = ts.do(http.MethodPut, "/api/cars/unknown", map[string]any{"pricePerDay": 60})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Car not found", decode[errorResponse](t, data).Message)
}

func TestCars_DeleteUnknownLeavesCollection(t *testing.T) {
	ts := newTestServer(t)
	ts.createCar(carBody())

	code, data := ts.do(http.MethodDelete, "/api/cars/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Car not found", decode[errorResponse](t, data).Message)

	_, data = ts.do(http.MethodGet, "/api/cars", nil)
	assert.Len(t, decode[[]models.Car](t, data), 1)
}

func TestCars_StalledUpdateDoesNotHoldConnection(t *testing.T) {
	ts := newTestServerWithPool(t, 1)
	car := ts.createCar(carBody())

	pr, pw := io.Pipe()
	req, err := http.NewRequest(http.MethodPut, ts.srv.URL+"/api/cars/"+car.ID, pr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	done := make(chan int, 1)
	go func() {
		resp, err := ts.srv.Client().Do(req)
		if err != nil {
			done <- 0
			return
		}
		resp.Body.Close()
		done <- resp.StatusCode
	}()

	_, err = pw.Write([]byte(`{"pricePerDay": `))
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	// The update is still waiting for its body; reads must not queue behind it.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	getReq, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.srv.URL+"/api/cars", nil)
	require.NoError(t, err)
	resp, err := ts.srv.Client().Do(getReq)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = pw.Write([]byte(`60}`))
	require.NoError(t, err)
	require.NoError(t, pw.Close())
	assert.Equal(t, http.StatusOK, <-done)

	got, err := ts.store.GetCarByID(context.Background(), car.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, got.PricePerDay)
}

func TestCars_ConcurrentUpdates(t *testing.T) {
	ts := newTestServerWithPool(t, 2)
	car := ts.createCar(carBody())

	const workers = 8
	var wg sync.WaitGroup
	codes := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(price int) {
			defer wg.Done()
			body, _ := json.Marshal(map[string]any{"pricePerDay": price})
			req, err := http.NewRequest(http.MethodPut, ts.srv.URL+"/api/cars/"+car.ID, bytes.NewReader(body))
			if !assert.NoError(t, err) {
				return
			}
			resp, err := ts.srv.Client().Do(req)
			if !assert.NoError(t, err) {
				return
			}
			resp.Body.Close()
			codes <- resp.StatusCode
		}(100 + i)
	}
	wg.Wait()
	close(codes)

	var n int
	for code := range codes {
		assert.Equal(t, http.StatusOK, code)
		n++
	}
	assert.Equal(t, workers, n)
}

func TestCars_DeleteReturnsRemovedCar(t *testing.T) {
	ts := newTestServer(t)
	car := ts.createCar(carBody())

	code, data := ts.do(http.MethodDelete, "/api/cars/"+car.ID, nil)
	require.Equal(t, http.StatusOK, code)
	resp := decode[carResponse](t, data)
	assert.Equal(t, "Car deleted successfully", resp.Message)
	assert.Equal(t, car.ID, resp.Car.ID)

	code, _ = ts.do(http.MethodGet, "/api/cars/"+car.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, []string{events.CarCreated, events.CarDeleted}, ts.events.types())
}

func TestStores_Lifecycle(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"address":      "12 Waiyaki Way",
		"city":         "Nairobi",
		"constituency": "Westlands",
		"email":        "westlands@example.com",
		"phoneNumber":  "+254711111111",
		"imageUrl":     "https://cdn.example.com/westlands.jpg",
		"filename":     "westlands.jpg",
	}
	code, data := ts.do(http.MethodPost, "/api/stores", body)
	require.Equal(t, http.StatusCreated, code, string(data))
	created := decode[struct {
		Message string          `json:"message"`
		Store   models.Location `json:"store"`
	}](t, data)
	assert.Equal(t, "Store added successfully!", created.Message)

	code, _ = ts.do(http.MethodPut, "/api/stores/"+created.Store.ID, map[string]any{"city": "Kisumu"})
	require.Equal(t, http.StatusOK, code)

	_, data = ts.do(http.MethodGet, "/api/stores", nil)
	stores := decode[[]models.Location](t, data)
	require.Len(t, stores, 1)
	assert.Equal(t, "Kisumu", stores[0].City)

	code, _ = ts.do(http.MethodDelete, "/api/stores/"+created.Store.ID, nil)
	assert.Equal(t, http.StatusOK, code)
	code, data = ts.do(http.MethodDelete, "/api/stores/"+created.Store.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Store not found", decode[errorResponse](t, data).Message)
}

func TestBookings_InvalidCarIDStoresNothing(t *testing.T) {
	ts := newTestServer(t)

	code, data := ts.do(http.MethodPost, "/api/bookings", bookingBody("no-such-car"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid carId: Car not found", decode[errorResponse](t, data).Message)

	_, data = ts.do(http.MethodGet, "/api/bookings", nil)
	assert.Empty(t, decode[[]json.RawMessage](t, data))
}

type bookingListItem struct {
	ID       string      `json:"_id"`
	CarID    string      `json:"carId"`
	CarImage string      `json:"carImage"`
	Car      *models.Car `json:"car"`
}

func TestBookings_ListNewestFirstWithCar(t *testing.T) {
	ts := newTestServer(t)
	car := ts.createCar(carBody())

	var ids []string
	for i := 0; i < 3; i++ {
		code, data := ts.do(http.MethodPost, "/api/bookings", bookingBody(car.ID))
		require.Equal(t, http.StatusCreated, code, string(data))
		resp := decode[struct {
			Message string         `json:"message"`
			Booking models.Booking `json:"booking"`
		}](t, data)
		assert.Equal(t, "Booking created successfully!", resp.Message)
		ids = append(ids, resp.Booking.ID)
	}

	code, data := ts.do(http.MethodGet, "/api/bookings", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[[]bookingListItem](t, data)
	require.Len(t, list, 3)
	for i, b := range list {
		assert.Equal(t, ids[len(ids)-1-i], b.ID)
		require.NotNil(t, b.Car)
		assert.Equal(t, car.ID, b.Car.ID)
		assert.Equal(t, car.ImageURL, b.CarImage)
	}
	assert.Contains(t, ts.events.types(), events.BookingCreated)
}

func TestBookings_OrphanKeepsSnapshotImage(t *testing.T) {
	ts := newTestServer(t)
	car := ts.createCar(carBody())

	code, _ := ts.do(http.MethodPost, "/api/bookings", bookingBody(car.ID))
	require.Equal(t, http.StatusCreated, code)
	code, _ = ts.do(http.MethodDelete, "/api/cars/"+car.ID, nil)
	require.Equal(t, http.StatusOK, code)

	code, data := ts.do(http.MethodGet, "/api/bookings", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[[]bookingListItem](t, data)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Car)
	assert.Equal(t, car.ID, list[0].CarID)
	assert.Equal(t, "https://cdn.example.com/snapshot.jpg", list[0].CarImage)
}

func TestBookings_BadDateIsAFailure(t *testing.T) {
	ts := newTestServer(t)
	car := ts.createCar(carBody())

	for _, date := range []any{"next tuesday", true, map[string]int{"day": 1}} {
		body := bookingBody(car.ID)
		body["pickupDate"] = date
		code, data := ts.do(http.MethodPost, "/api/bookings", body)
		assert.Equal(t, http.StatusInternalServerError, code, "%v", date)
		resp := decode[errorResponse](t, data)
		assert.Equal(t, "Failed to create booking", resp.Message)
		assert.Contains(t, resp.Error, "pickupDate")
	}

	_, data := ts.do(http.MethodGet, "/api/bookings", nil)
	assert.Empty(t, decode[[]json.RawMessage](t, data))
}

func TestBookings_AcceptsDateOnlyAndEpochMillis(t *testing.T) {
	ts := newTestServer(t)
	car := ts.createCar(carBody())

	body := bookingBody(car.ID)
	body["pickupDate"] = "2025-06-01"
	body["returnDate"] = 1748995200000 // 2025-06-04T00:00:00Z
	code, data := ts.do(http.MethodPost, "/api/bookings", body)
	require.Equal(t, http.StatusCreated, code, string(data))

	resp := decode[struct {
		Booking models.Booking `json:"booking"`
	}](t, data)
	assert.True(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Equal(resp.Booking.PickupDate), "pickupDate = %v", resp.Booking.PickupDate)
	assert.True(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC).Equal(resp.Booking.ReturnDate), "returnDate = %v", resp.Booking.ReturnDate)
}

func TestAdmins_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{"name": "Ops", "email": "ops@example.com", "password": "s3cret"}

	code, data := ts.do(http.MethodPost, "/api/admins", body)
	require.Equal(t, http.StatusCreated, code, string(data))
	assert.Equal(t, "Admin registered successfully!", decode[errorResponse](t, data).Message)
	assert.NotContains(t, string(data), "password")

	code, data = ts.do(http.MethodPost, "/api/admins", body)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Email already registered.", decode[errorResponse](t, data).Message)

	_, data = ts.do(http.MethodGet, "/api/admins", nil)
	assert.Len(t, decode[[]models.Admin](t, data), 1)
	assert.NotContains(t, string(data), "password")
	assert.Equal(t, []string{events.AdminRegistered}, ts.events.types())
}

func TestAdmins_RegisterRequiresFields(t *testing.T) {
	ts := newTestServer(t)

	code, data := ts.do(http.MethodPost, "/api/admins", map[string]any{"name": "Ops", "email": "ops@example.com"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Name, email, and password are required.", decode[errorResponse](t, data).Message)
}

func TestAdmins_RegisterRejectsOverlongPassword(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"name": "Ops", "email": "ops@example.com", "password": strings.Repeat("x", 73)}
	code, data := ts.do(http.MethodPost, "/api/admins", body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Password must be at most 72 bytes.", decode[errorResponse](t, data).Message)

	_, data = ts.do(http.MethodGet, "/api/admins", nil)
	assert.Empty(t, decode[[]models.Admin](t, data))
}

func TestAdmins_StoresHashNotPassword(t *testing.T) {
	ts := newTestServer(t)
	code, _ := ts.do(http.MethodPost, "/api/admins", map[string]any{"name": "Ops", "email": "ops@example.com", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, code)

	admin, err := ts.store.GetAdminByEmail(context.Background(), "ops@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", admin.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("s3cret")))
}

func TestAdmins_Login(t *testing.T) {
	ts := newTestServer(t)
	code, _ := ts.do(http.MethodPost, "/api/admins", map[string]any{"name": "Ops", "email": "ops@example.com", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, code)

	code, data := ts.do(http.MethodPost, "/api/admins/login", map[string]any{"email": "ops@example.com", "password": "s3cret"})
	require.Equal(t, http.StatusOK, code)
	resp := decode[struct {
		Message string       `json:"message"`
		Admin   models.Admin `json:"admin"`
	}](t, data)
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, "ops@example.com", resp.Admin.Email)
	assert.NotContains(t, string(data), "password")

	code, data = ts.do(http.MethodPost, "/api/admins/login", map[string]any{"email": "ops@example.com"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email and password are required.", decode[errorResponse](t, data).Message)
}

func TestAdmins_LoginFailuresAreIndistinguishable(t *testing.T) {
	ts := newTestServer(t)
	code, _ := ts.do(http.MethodPost, "/api/admins", map[string]any{"name": "Ops", "email": "ops@example.com", "password": "s3cret"})
	require.Equal(t, http.StatusCreated, code)

	wrongCode, wrongBody := ts.do(http.MethodPost, "/api/admins/login", map[string]any{"email": "ops@example.com", "password": "nope"})
	unknownCode, unknownBody := ts.do(http.MethodPost, "/api/admins/login", map[string]any{"email": "ghost@example.com", "password": "nope"})

	assert.Equal(t, http.StatusUnauthorized, wrongCode)
	assert.Equal(t, wrongCode, unknownCode)
	assert.Equal(t, string(wrongBody), string(unknownBody))
	assert.Equal(t, "Invalid email or password.", decode[errorResponse](t, wrongBody).Message)
}

func TestRouter_UnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/unknown"},
		{http.MethodGet, "/"},
		{http.MethodPatch, "/api/cars"},
		{http.MethodGet, "/api/stores/some-id"},
	} {
		code, data := ts.do(tc.method, tc.path, nil)
		assert.Equal(t, http.StatusNotFound, code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "Route not found", decode[errorResponse](t, data).Message)
	}
}

func TestRouter_Healthz(t *testing.T) {
	ts := newTestServer(t)

	code, data := ts.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, string(data))
}

func TestCORS_Preflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.srv.URL+"/api/cars", nil)
	require.NoError(t, err)
	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "DELETE")
}

// failingStore fails every list and lookup. Methods it does not override
// panic through the nil embedded interface.
type failingStore struct {
	store.Store
}

var errBackend = errors.New("backend unavailable")

func (failingStore) GetAllCars(context.Context) ([]models.Car, error) { return nil, errBackend }
func (failingStore) GetCarByID(context.Context, string) (*models.Car, error) {
	return nil, errBackend
}
func (failingStore) GetAllBookings(context.Context) ([]models.Booking, error) { return nil, errBackend }
func (failingStore) Ping(context.Context) error                              { return errBackend }

func TestStoreFailures(t *testing.T) {
	srv := httptest.NewServer(handlers.NewRouter(failingStore{}, nil, handlers.Options{}))
	defer srv.Close()

	for _, tc := range []struct {
		method, path string
		body         string
		code         int
		message      string
	}{
		{http.MethodGet, "/api/cars", "", http.StatusInternalServerError, "Failed to fetch cars"},
		{http.MethodGet, "/api/cars/abc", "", http.StatusInternalServerError, "Failed to fetch car"},
		{http.MethodGet, "/api/bookings", "", http.StatusInternalServerError, "Failed to fetch bookings"},
		{http.MethodPost, "/api/bookings", `{"carId":"abc"}`, http.StatusInternalServerError, "Failed to create booking"},
		{http.MethodGet, "/healthz", "", http.StatusServiceUnavailable, ""},
	} {
		req, err := http.NewRequest(tc.method, srv.URL+tc.path, bytes.NewBufferString(tc.body))
		require.NoError(t, err)
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		data, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		assert.Equal(t, tc.code, resp.StatusCode, "%s %s", tc.method, tc.path)
		if tc.message != "" {
			body := decode[errorResponse](t, data)
			assert.Equal(t, tc.message, body.Message)
			assert.Equal(t, errBackend.Error(), body.Error)
		}
	}
}

func TestRecoverMiddleware(t *testing.T) {
	h := handlers.RecoverMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cars", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[errorResponse](t, rec.Body.Bytes())
	assert.Equal(t, "Internal server error", body.Message)
	assert.Equal(t, "boom", body.Error)
}

func TestSecurityHeaders(t *testing.T) {
	h := handlers.SecurityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
