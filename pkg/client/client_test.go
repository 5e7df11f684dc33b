package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func writeEnvelope(w http.ResponseWriter, code int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func bookingJSON(id, status string) map[string]any {
	return map[string]any{
		"id":             id,
		"user_id":        "u1",
		"plan_id":        "p1",
		"status":         status,
		"scheduled_date": "2026-09-12",
		"scheduled_time": "10:00",
		"location":       map[string]any{"address": "12 Elm Street"},
		"total_amount":   50.0,
		"payment_status": "pending",
	}
}

func TestCreateBookingValidatesDraftWithoutRequest(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.CreateBooking(context.Background(), BookingDraft{
		PlanID:        "",
		ScheduledDate: "someday",
		ScheduledTime: "early",
		Location:      Location{Address: "x"},
	})

	if !IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	apiErr := err.(*Error)
	for _, field := range []string{"plan_id", "scheduled_date", "scheduled_time", "location.address"} {
		if apiErr.Fields[field] == "" {
			t.Errorf("missing field error for %s", field)
		}
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("invalid draft reached the server: %d requests", hits)
	}
}

func TestUpdateStatusPreCheckSkipsBackend(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeEnvelope(w, http.StatusOK, true, "success", bookingJSON("b1", StatusCompleted))
	}))
	defer server.Close()

	c := New(server.URL)

	// Learn the booking's status through a read.
	if _, err := c.GetBooking(context.Background(), "b1"); err != nil {
		t.Fatalf("GetBooking failed: %v", err)
	}

	// completed -> confirmed is illegal; the replica knows it.
	_, err := c.UpdateBookingStatus(context.Background(), "b1", StatusConfirmed)
	if !IsInvalidTransition(err) {
		t.Fatalf("err = %v, want invalid transition", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("pre-checked transition hit the server: %d requests, want 1 (the read)", hits)
	}
}

func TestUpdateStatusUnknownBookingAsksServer(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeEnvelope(w, http.StatusOK, true, "success", bookingJSON("b9", StatusConfirmed))
	}))
	defer server.Close()

	c := New(server.URL)

	// Nothing known locally about b9, so the server decides.
	booking, err := c.UpdateBookingStatus(context.Background(), "b9", StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateBookingStatus failed: %v", err)
	}
	if booking.Status != StatusConfirmed {
		t.Errorf("status = %s, want confirmed", booking.Status)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
}

func TestConflictSurfacesAndDropsReplica(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		switch {
		case r.Method == http.MethodGet:
			writeEnvelope(w, http.StatusOK, true, "success", bookingJSON("b1", StatusPending))
		case n == 2:
			writeEnvelope(w, http.StatusConflict, false, "booking status changed concurrently", nil)
		default:
			writeEnvelope(w, http.StatusOK, true, "success", bookingJSON("b1", StatusCancelled))
		}
	}))
	defer server.Close()

	c := New(server.URL)

	if _, err := c.GetBooking(context.Background(), "b1"); err != nil {
		t.Fatalf("GetBooking failed: %v", err)
	}

	_, err := c.UpdateBookingStatus(context.Background(), "b1", StatusConfirmed)
	if !IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}

	// The stale replica entry was dropped, so a follow-up transition
	// that would have been refused locally goes to the server.
	if _, ok := c.lastKnownStatus("b1"); ok {
		t.Error("replica entry should be dropped after a conflict")
	}
}

func TestListBookingsCachesPages(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"data":       []any{bookingJSON("b1", StatusPending)},
			"pagination": map[string]any{"page": 1, "limit": 10, "total": 1, "pages": 1},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	scope := ScopeUser("u1")

	for i := 0; i < 3; i++ {
		page, err := c.ListBookings(context.Background(), scope, 1, 10)
		if err != nil {
			t.Fatalf("ListBookings failed: %v", err)
		}
		if len(page.Bookings) != 1 || page.Pagination.Total != 1 {
			t.Fatalf("unexpected page: %+v", page)
		}
	}

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hits = %d, want 1 (rest from cache)", got)
	}
}

func TestMutationInvalidatesListings(t *testing.T) {
	var listHits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(&listHits, 1)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"success":    true,
				"data":       []any{bookingJSON("b1", StatusPending)},
				"pagination": map[string]any{"page": 1, "limit": 10, "total": 1, "pages": 1},
			})
			return
		}
		writeEnvelope(w, http.StatusOK, true, "success", bookingJSON("b1", StatusConfirmed))
	}))
	defer server.Close()

	c := New(server.URL)
	scope := ScopeUser("u1")

	if _, err := c.ListBookings(context.Background(), scope, 1, 10); err != nil {
		t.Fatalf("ListBookings failed: %v", err)
	}
	if _, err := c.UpdateBookingStatus(context.Background(), "b1", StatusConfirmed); err != nil {
		t.Fatalf("UpdateBookingStatus failed: %v", err)
	}
	if _, err := c.ListBookings(context.Background(), scope, 1, 10); err != nil {
		t.Fatalf("ListBookings after mutation failed: %v", err)
	}

	if got := atomic.LoadInt32(&listHits); got != 2 {
		t.Errorf("list hits = %d, want 2 (cache dropped by mutation)", got)
	}
}

func TestConcurrentIdenticalTransitionsCollapse(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		writeEnvelope(w, http.StatusOK, true, "success", bookingJSON("b1", StatusConfirmed))
	}))
	defer server.Close()

	c := New(server.URL)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.UpdateBookingStatus(context.Background(), "b1", StatusConfirmed); err != nil {
				t.Errorf("UpdateBookingStatus failed: %v", err)
			}
		}()
	}

	// All four goroutines share one in-flight request.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hits = %d, want 1 (double submits collapsed)", got)
	}
}

func TestConcurrentCancelsCollapse(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		writeEnvelope(w, http.StatusOK, true, "success", bookingJSON("b1", StatusCancelled))
	}))
	defer server.Close()

	c := New(server.URL)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.CancelBooking(context.Background(), "b1"); err != nil {
				t.Errorf("CancelBooking failed: %v", err)
			}
		}()
	}

	// A double-clicked cancel shares one in-flight request.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hits = %d, want 1 (double cancels collapsed)", got)
	}
}

func TestCachedPageIsInsulatedFromCallerMutation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success":    true,
			"data":       []any{bookingJSON("b1", StatusPending)},
			"pagination": map[string]any{"page": 1, "limit": 10, "total": 1, "pages": 1},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	scope := ScopeUser("u1")

	page, err := c.ListBookings(context.Background(), scope, 1, 10)
	if err != nil {
		t.Fatalf("ListBookings failed: %v", err)
	}

	// Scribble over the returned page.
	page.Bookings[0].Status = "scribbled"
	page.Bookings = nil

	cached, err := c.ListBookings(context.Background(), scope, 1, 10)
	if err != nil {
		t.Fatalf("ListBookings from cache failed: %v", err)
	}
	if len(cached.Bookings) != 1 {
		t.Fatalf("cached page lost its bookings: %+v", cached)
	}
	if cached.Bookings[0].Status != StatusPending {
		t.Errorf("cached status = %s, want pending", cached.Bookings[0].Status)
	}
}

func TestNetworkErrorIsClassified(t *testing.T) {
	c := New("http://127.0.0.1:0")
	_, err := c.GetBooking(context.Background(), "b1")
	if !IsNetwork(err) {
		t.Errorf("err = %v, want network error", err)
	}
}

func TestUnauthorizedAndNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			writeEnvelope(w, http.StatusUnauthorized, false, "Missing authorization token", nil)
			return
		}
		writeEnvelope(w, http.StatusNotFound, false, "booking not found", nil)
	}))
	defer server.Close()

	c := New(server.URL)

	_, err := c.GetBooking(context.Background(), "b1")
	if !IsUnauthorized(err) {
		t.Errorf("err = %v, want unauthorized", err)
	}

	c.Session.SetToken("some-token")
	_, err = c.GetBooking(context.Background(), "b1")
	if !IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestLoginStoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "success", map[string]any{
			"user":  map[string]any{"id": "u1", "email": "a@b.c", "role": "user"},
			"token": "session-token",
		})
	}))
	defer server.Close()

	c := New(server.URL)
	user, err := c.Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("user ID = %s, want u1", user.ID)
	}
	if c.Session.Token() != "session-token" {
		t.Errorf("token = %q, want session-token", c.Session.Token())
	}
}
