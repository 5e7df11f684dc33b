package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/dto/request"
	"carwash-booking/internal/dto/response"
	"carwash-booking/internal/usecase"
	"carwash-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeBookingService struct {
	updateErr       error
	updateResult    *response.BookingResponse
	lastStatus      string
	lastActor       usecase.Actor
	washerListActor *usecase.Actor
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return &response.BookingResponse{
		ID:     uuid.New().String(),
		UserID: userID.String(),
		PlanID: req.PlanID,
		Status: entity.BookingStatusPending,
	}, nil
}

func (f *fakeBookingService) GetBooking(ctx context.Context, bookingID string, actor usecase.Actor) (*response.BookingResponse, error) {
	return nil, usecase.ErrBookingNotFound
}

func (f *fakeBookingService) ListBookings(ctx context.Context, req *request.PaginatedRequest) ([]response.BookingResponse, int64, error) {
	return []response.BookingResponse{{ID: "b1"}, {ID: "b2"}}, 25, nil
}

func (f *fakeBookingService) ListUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) ([]response.BookingResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakeBookingService) ListWasherBookings(ctx context.Context, washerID string, actor usecase.Actor, req *request.PaginatedRequest) ([]response.BookingResponse, int64, error) {
	f.washerListActor = &actor
	if actor.Role != entity.RoleAdmin && actor.Role != entity.RoleWasher {
		return nil, 0, fmt.Errorf("washer %s bookings: %w", washerID, usecase.ErrAccessDenied)
	}
	return nil, 0, nil
}

func (f *fakeBookingService) UpdateBookingStatus(ctx context.Context, bookingID, targetStatus string, actor usecase.Actor) (*response.BookingResponse, error) {
	f.lastStatus = targetStatus
	f.lastActor = actor
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

func (f *fakeBookingService) CancelBooking(ctx context.Context, bookingID string, actor usecase.Actor) (*response.BookingResponse, error) {
	return f.UpdateBookingStatus(ctx, bookingID, "cancelled", actor)
}

func authedRequest(method, target, body string, role entity.UserRole) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := utils.SetUserContext(req.Context(), uuid.New(), string(role))
	return req.WithContext(ctx)
}

func routerFor(handler *BookingHandler) chi.Router {
	r := chi.NewRouter()
	r.Post("/api/bookings", handler.CreateBooking)
	r.Get("/api/bookings", handler.ListBookings)
	r.Put("/api/bookings/{id}/status", handler.UpdateBookingStatus)
	r.Put("/api/bookings/{id}/cancel", handler.CancelBooking)
	r.Get("/api/washers/{id}/bookings", handler.ListWasherBookings)
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return env
}

func TestCreateBookingReturnsCreatedEnvelope(t *testing.T) {
	service := &fakeBookingService{}
	handler := NewBookingHandler(service, zap.NewNop())
	router := routerFor(handler)

	body := `{"plan_id":"` + uuid.New().String() + `","scheduled_date":"2026-09-12","scheduled_time":"10:00","location":{"address":"12 Elm Street"}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/bookings", body, entity.RoleUser))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env["success"] != true {
		t.Errorf("success = %v, want true", env["success"])
	}
	if env["data"] == nil {
		t.Error("data missing from envelope")
	}
}

func TestCreateBookingValidationFailure(t *testing.T) {
	handler := NewBookingHandler(&fakeBookingService{}, zap.NewNop())
	router := routerFor(handler)

	// Missing plan, malformed times.
	body := `{"scheduled_date":"next week","scheduled_time":"morning","location":{"address":"x"}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/bookings", body, entity.RoleUser))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env["success"] != false {
		t.Errorf("success = %v, want false", env["success"])
	}
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	handler := NewBookingHandler(&fakeBookingService{}, zap.NewNop())
	router := routerFor(handler)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader("{}"))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestUpdateStatusMapsConflictTo409(t *testing.T) {
	service := &fakeBookingService{updateErr: fmt.Errorf("booking b1: %w", usecase.ErrStatusConflict)}
	handler := NewBookingHandler(service, zap.NewNop())
	router := routerFor(handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/bookings/b1/status", `{"status":"confirmed"}`, entity.RoleWasher))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env["success"] != false {
		t.Errorf("success = %v, want false", env["success"])
	}
}

func TestUpdateStatusMapsInvalidTransitionTo400(t *testing.T) {
	service := &fakeBookingService{updateErr: fmt.Errorf("completed -> confirmed: %w", usecase.ErrInvalidTransition)}
	handler := NewBookingHandler(service, zap.NewNop())
	router := routerFor(handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/bookings/b1/status", `{"status":"confirmed"}`, entity.RoleAdmin))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateStatusRejectsUnknownStatusValue(t *testing.T) {
	service := &fakeBookingService{}
	handler := NewBookingHandler(service, zap.NewNop())
	router := routerFor(handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/bookings/b1/status", `{"status":"done"}`, entity.RoleAdmin))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if service.lastStatus != "" {
		t.Errorf("service called with status %q despite failed validation", service.lastStatus)
	}
}

func TestListBookingsCarriesPagination(t *testing.T) {
	service := &fakeBookingService{}
	handler := NewBookingHandler(service, zap.NewNop())
	router := routerFor(handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/bookings?page=2&limit=10", "", entity.RoleAdmin))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	pagination, ok := env["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("pagination missing: %v", env)
	}
	if pagination["page"] != float64(2) || pagination["limit"] != float64(10) {
		t.Errorf("pagination page/limit = %v/%v, want 2/10", pagination["page"], pagination["limit"])
	}
	if pagination["total"] != float64(25) || pagination["pages"] != float64(3) {
		t.Errorf("pagination total/pages = %v/%v, want 25/3", pagination["total"], pagination["pages"])
	}
}

func TestListWasherBookingsForwardsActorAndMapsDenialTo403(t *testing.T) {
	service := &fakeBookingService{}
	handler := NewBookingHandler(service, zap.NewNop())
	router := routerFor(handler)

	target := "/api/washers/" + uuid.New().String() + "/bookings"

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, target, "", entity.RoleUser))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("customer listing: status = %d, want 403", rec.Code)
	}
	if service.washerListActor == nil || service.washerListActor.Role != entity.RoleUser {
		t.Fatalf("actor not forwarded to the service: %+v", service.washerListActor)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, target, "", entity.RoleAdmin))

	if rec.Code != http.StatusOK {
		t.Errorf("admin listing: status = %d, want 200", rec.Code)
	}
}

func TestCancelMapsActor(t *testing.T) {
	service := &fakeBookingService{updateResult: &response.BookingResponse{ID: "b1", Status: entity.BookingStatusCancelled}}
	handler := NewBookingHandler(service, zap.NewNop())
	router := routerFor(handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/bookings/b1/cancel", "", entity.RoleUser))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if service.lastActor.Role != entity.RoleUser {
		t.Errorf("actor role = %s, want user", service.lastActor.Role)
	}
	if service.lastStatus != "cancelled" {
		t.Errorf("cancel routed to status %q", service.lastStatus)
	}
}
