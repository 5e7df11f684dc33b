package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"carwash-booking/internal/data/entity"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ==================== FAKES ====================

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking

	updateStatusCalls []statusCall
	// denyUpdate simulates losing the conditional-update race.
	denyUpdate bool

	paymentStatusUpdates map[uuid.UUID]entity.PaymentStatus
}

type statusCall struct {
	from, to entity.BookingStatus
	washerID *uuid.UUID
}

func newFakeBookingRepo(bookings ...*entity.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings:             make(map[uuid.UUID]*entity.Booking),
		paymentStatusUpdates: make(map[uuid.UUID]entity.PaymentStatus),
	}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	bookings, _ := f.FindByUserID(ctx, userID, 0, 0)
	return int64(len(bookings)), nil
}

func (f *fakeBookingRepo) FindByWasherID(ctx context.Context, washerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.WasherID != nil && *b.WasherID == washerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByWasherID(ctx context.Context, washerID uuid.UUID) (int64, error) {
	bookings, _ := f.FindByWasherID(ctx, washerID, 0, 0)
	return int64(len(bookings)), nil
}

func (f *fakeBookingRepo) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, washerID *uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateStatusCalls = append(f.updateStatusCalls, statusCall{from: from, to: to, washerID: washerID})

	if f.denyUpdate {
		return false, nil
	}

	booking, ok := f.bookings[id]
	if !ok || booking.Status != from {
		return false, nil
	}

	booking.Status = to
	if booking.WasherID == nil && washerID != nil {
		booking.WasherID = washerID
	}
	return true, nil
}

func (f *fakeBookingRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paymentStatusUpdates[id] = status
	if booking, ok := f.bookings[id]; ok {
		booking.PaymentStatus = status
	}
	return nil
}

func (f *fakeBookingRepo) FindScheduledBetween(ctx context.Context, status entity.BookingStatus, start, end time.Time) ([]*entity.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) FindStalePending(ctx context.Context, before time.Time) ([]*entity.Booking, error) {
	return nil, nil
}

type fakePlanRepo struct {
	plans map[uuid.UUID]*entity.Plan
}

func (f *fakePlanRepo) Create(ctx context.Context, plan *entity.Plan) error { return nil }
func (f *fakePlanRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	return f.plans[id], nil
}
func (f *fakePlanRepo) FindAllActive(ctx context.Context) ([]*entity.Plan, error) { return nil, nil }
func (f *fakePlanRepo) Update(ctx context.Context, plan *entity.Plan) error       { return nil }
func (f *fakePlanRepo) Deactivate(ctx context.Context, id uuid.UUID) error        { return nil }

type fakeWasherRepo struct {
	washers        map[uuid.UUID]*entity.Washer // keyed by user ID
	jobIncrements  map[uuid.UUID]int
	ratingsUpdated map[uuid.UUID]float64
}

func newFakeWasherRepo(washers ...*entity.Washer) *fakeWasherRepo {
	repo := &fakeWasherRepo{
		washers:        make(map[uuid.UUID]*entity.Washer),
		jobIncrements:  make(map[uuid.UUID]int),
		ratingsUpdated: make(map[uuid.UUID]float64),
	}
	for _, w := range washers {
		repo.washers[w.UserID] = w
	}
	return repo
}

func (f *fakeWasherRepo) Create(ctx context.Context, washer *entity.Washer) error { return nil }
func (f *fakeWasherRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Washer, error) {
	for _, w := range f.washers {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, nil
}
func (f *fakeWasherRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Washer, error) {
	return f.washers[userID], nil
}
func (f *fakeWasherRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Washer, error) {
	return nil, nil
}
func (f *fakeWasherRepo) CountAll(ctx context.Context) (int64, error)          { return 0, nil }
func (f *fakeWasherRepo) FindAvailable(ctx context.Context) ([]*entity.Washer, error) {
	return nil, nil
}
func (f *fakeWasherRepo) Update(ctx context.Context, washer *entity.Washer) error { return nil }
func (f *fakeWasherRepo) IncrementTotalJobs(ctx context.Context, id uuid.UUID) error {
	f.jobIncrements[id]++
	return nil
}
func (f *fakeWasherRepo) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	f.ratingsUpdated[id] = rating
	return nil
}

type fakePaymentRepo struct {
	created       []*entity.Payment
	statusByBookg map[uuid.UUID]entity.PaymentStatus
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{statusByBookg: make(map[uuid.UUID]entity.PaymentStatus)}
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	f.created = append(f.created, payment)
	return nil
}
func (f *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return nil, nil
}
func (f *fakePaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	for _, p := range f.created {
		if p.BookingID == bookingID {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakePaymentRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Payment, error) {
	return nil, nil
}
func (f *fakePaymentRepo) CountAll(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakePaymentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	return nil
}
func (f *fakePaymentRepo) UpdateStatusByBookingID(ctx context.Context, bookingID uuid.UUID, status entity.PaymentStatus) error {
	f.statusByBookg[bookingID] = status
	return nil
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []*entity.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, n)
	return nil
}
func (f *fakeNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}
func (f *fakeNotificationRepo) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return nil
}

type capturingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *capturingPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

// ==================== FIXTURES ====================

type bookingFixture struct {
	service   BookingService
	bookings  *fakeBookingRepo
	plans     *fakePlanRepo
	washers   *fakeWasherRepo
	payments  *fakePaymentRepo
	published *capturingPublisher
}

func newBookingFixture(t *testing.T, bookings *fakeBookingRepo, plans *fakePlanRepo, washers *fakeWasherRepo) *bookingFixture {
	t.Helper()

	payments := newFakePaymentRepo()
	publisher := &capturingPublisher{}
	logger := zap.NewNop()

	repo := &repository.Repository{
		Booking:      bookings,
		Plan:         plans,
		Washer:       washers,
		Payment:      payments,
		Notification: &fakeNotificationRepo{},
	}

	notifier := NewNotificationService(repo, logger)

	return &bookingFixture{
		service:   NewBookingService(repo, publisher, notifier, logger),
		bookings:  bookings,
		plans:     plans,
		washers:   washers,
		payments:  payments,
		published: publisher,
	}
}

func testPlan(price float64) *entity.Plan {
	return &entity.Plan{
		Base:     entity.Base{ID: uuid.New()},
		Name:     "Premium Wash",
		Price:    price,
		Duration: 60,
		IsActive: true,
	}
}

func testBooking(userID uuid.UUID, planID uuid.UUID, status entity.BookingStatus) *entity.Booking {
	return &entity.Booking{
		Base:          entity.Base{ID: uuid.New()},
		UserID:        userID,
		PlanID:        planID,
		Status:        status,
		ScheduledDate: time.Now().Add(24 * time.Hour),
		ScheduledTime: "10:00",
		Address:       "12 Elm Street",
		TotalAmount:   50,
		PaymentStatus: entity.PaymentStatusPending,
	}
}

// ==================== TESTS ====================

func TestCreateBookingAmountComesFromPlan(t *testing.T) {
	plan := testPlan(75.50)
	fix := newBookingFixture(t,
		newFakeBookingRepo(),
		&fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{plan.ID: plan}},
		newFakeWasherRepo(),
	)

	userID := uuid.New()
	resp, err := fix.service.CreateBooking(context.Background(), userID, &request.CreateBookingRequest{
		PlanID:        plan.ID.String(),
		ScheduledDate: "2026-09-12",
		ScheduledTime: "10:00",
		Location:      request.BookingLocation{Address: "12 Elm Street"},
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if resp.TotalAmount != 75.50 {
		t.Errorf("TotalAmount = %v, want plan price 75.50", resp.TotalAmount)
	}
	if resp.Status != entity.BookingStatusPending {
		t.Errorf("new booking status = %s, want pending", resp.Status)
	}
	if len(fix.payments.created) != 1 {
		t.Fatalf("expected one payment row, got %d", len(fix.payments.created))
	}
	if fix.payments.created[0].Amount != 75.50 {
		t.Errorf("payment amount = %v, want 75.50", fix.payments.created[0].Amount)
	}

	if len(fix.published.keys) != 1 || fix.published.keys[0] != "booking.created" {
		t.Errorf("published keys = %v, want [booking.created]", fix.published.keys)
	}
}

func TestCreateBookingRejectsInactivePlan(t *testing.T) {
	plan := testPlan(40)
	plan.IsActive = false
	fix := newBookingFixture(t,
		newFakeBookingRepo(),
		&fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{plan.ID: plan}},
		newFakeWasherRepo(),
	)

	_, err := fix.service.CreateBooking(context.Background(), uuid.New(), &request.CreateBookingRequest{
		PlanID:        plan.ID.String(),
		ScheduledDate: "2026-09-12",
		ScheduledTime: "10:00",
		Location:      request.BookingLocation{Address: "12 Elm Street"},
	})
	if !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("err = %v, want ErrPlanNotFound", err)
	}
}

func TestUpdateStatusRejectsIllegalTransitionBeforeWrite(t *testing.T) {
	plan := testPlan(50)
	userID := uuid.New()
	booking := testBooking(userID, plan.ID, entity.BookingStatusCompleted)

	fix := newBookingFixture(t,
		newFakeBookingRepo(booking),
		&fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{plan.ID: plan}},
		newFakeWasherRepo(),
	)

	admin := Actor{UserID: uuid.New(), Role: entity.RoleAdmin}
	_, err := fix.service.UpdateBookingStatus(context.Background(), booking.ID.String(), "confirmed", admin)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}

	if len(fix.bookings.updateStatusCalls) != 0 {
		t.Errorf("illegal transition reached the store: %d update calls", len(fix.bookings.updateStatusCalls))
	}
}

func TestUpdateStatusLostRaceIsConflict(t *testing.T) {
	plan := testPlan(50)
	booking := testBooking(uuid.New(), plan.ID, entity.BookingStatusPending)

	bookings := newFakeBookingRepo(booking)
	bookings.denyUpdate = true

	fix := newBookingFixture(t, bookings,
		&fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{plan.ID: plan}},
		newFakeWasherRepo(),
	)

	admin := Actor{UserID: uuid.New(), Role: entity.RoleAdmin}
	_, err := fix.service.UpdateBookingStatus(context.Background(), booking.ID.String(), "confirmed", admin)
	if !errors.Is(err, ErrStatusConflict) {
		t.Errorf("err = %v, want ErrStatusConflict", err)
	}
}

func TestUserMayOnlyCancelOwnBooking(t *testing.T) {
	plan := testPlan(50)
	owner := uuid.New()
	booking := testBooking(owner, plan.ID, entity.BookingStatusPending)

	fix := newBookingFixture(t,
		newFakeBookingRepo(booking),
		&fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{plan.ID: plan}},
		newFakeWasherRepo(),
	)

	stranger := Actor{UserID: uuid.New(), Role: entity.RoleUser}
	if _, err := fix.service.CancelBooking(context.Background(), booking.ID.String(), stranger); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("stranger cancel: err = %v, want ErrAccessDenied", err)
	}

	// Customers cannot confirm, even their own bookings.
	ownerActor := Actor{UserID: owner, Role: entity.RoleUser}
	if _, err := fix.service.UpdateBookingStatus(context.Background(), booking.ID.String(), "confirmed", ownerActor); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("owner confirm: err = %v, want ErrAccessDenied", err)
	}

	resp, err := fix.service.CancelBooking(context.Background(), booking.ID.String(), ownerActor)
	if err != nil {
		t.Fatalf("owner cancel failed: %v", err)
	}
	if resp.Status != entity.BookingStatusCancelled {
		t.Errorf("status after cancel = %s, want cancelled", resp.Status)
	}
}

func TestWasherAcceptClaimsBooking(t *testing.T) {
	plan := testPlan(50)
	booking := testBooking(uuid.New(), plan.ID, entity.BookingStatusPending)

	washerUser := uuid.New()
	washer := &entity.Washer{Base: entity.Base{ID: uuid.New()}, UserID: washerUser}

	bookings := newFakeBookingRepo(booking)
	fix := newBookingFixture(t, bookings,
		&fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{plan.ID: plan}},
		newFakeWasherRepo(washer),
	)

	actor := Actor{UserID: washerUser, Role: entity.RoleWasher}
	resp, err := fix.service.UpdateBookingStatus(context.Background(), booking.ID.String(), "confirmed", actor)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if resp.WasherID == nil || *resp.WasherID != washer.ID.String() {
		t.Errorf("booking not claimed by washer: WasherID = %v", resp.WasherID)
	}

	calls := bookings.updateStatusCalls
	if len(calls) != 1 || calls[0].washerID == nil || *calls[0].washerID != washer.ID {
		t.Errorf("conditional update did not carry washer assignment: %+v", calls)
	}
}

func TestWasherCannotDriveUnassignedJob(t *testing.T) {
	plan := testPlan(50)
	booking := testBooking(uuid.New(), plan.ID, entity.BookingStatusConfirmed)
	otherWasher := uuid.New()
	booking.WasherID = &otherWasher

	washerUser := uuid.New()
	washer := &entity.Washer{Base: entity.Base{ID: uuid.New()}, UserID: washerUser}

	fix := newBookingFixture(t,
		newFakeBookingRepo(booking),
		&fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{plan.ID: plan}},
		newFakeWasherRepo(washer),
	)

	actor := Actor{UserID: washerUser, Role: entity.RoleWasher}
	if _, err := fix.service.UpdateBookingStatus(context.Background(), booking.ID.String(), "in-progress", actor); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("err = %v, want ErrAccessDenied", err)
	}
}

func TestCompletionIncrementsWasherJobs(t *testing.T) {
	plan := testPlan(50)
	washerUser := uuid.New()
	washer := &entity.Washer{Base: entity.Base{ID: uuid.New()}, UserID: washerUser}

	booking := testBooking(uuid.New(), plan.ID, entity.BookingStatusInProgress)
	booking.WasherID = &washer.ID

	washers := newFakeWasherRepo(washer)
	fix := newBookingFixture(t,
		newFakeBookingRepo(booking),
		&fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{plan.ID: plan}},
		washers,
	)

	actor := Actor{UserID: washerUser, Role: entity.RoleWasher}
	if _, err := fix.service.UpdateBookingStatus(context.Background(), booking.ID.String(), "completed", actor); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if washers.jobIncrements[washer.ID] != 1 {
		t.Errorf("job count increments = %d, want 1", washers.jobIncrements[washer.ID])
	}
}

func TestCancelAfterPaymentRefunds(t *testing.T) {
	plan := testPlan(50)
	owner := uuid.New()
	booking := testBooking(owner, plan.ID, entity.BookingStatusConfirmed)
	booking.PaymentStatus = entity.PaymentStatusCompleted

	bookings := newFakeBookingRepo(booking)
	fix := newBookingFixture(t, bookings,
		&fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{plan.ID: plan}},
		newFakeWasherRepo(),
	)

	actor := Actor{UserID: owner, Role: entity.RoleUser}
	if _, err := fix.service.CancelBooking(context.Background(), booking.ID.String(), actor); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if bookings.paymentStatusUpdates[booking.ID] != entity.PaymentStatusRefunded {
		t.Errorf("booking payment status = %s, want refunded", bookings.paymentStatusUpdates[booking.ID])
	}
	if fix.payments.statusByBookg[booking.ID] != entity.PaymentStatusRefunded {
		t.Errorf("payment row status = %s, want refunded", fix.payments.statusByBookg[booking.ID])
	}
}

func TestStatusChangePublishesEvent(t *testing.T) {
	plan := testPlan(50)
	booking := testBooking(uuid.New(), plan.ID, entity.BookingStatusPending)

	fix := newBookingFixture(t,
		newFakeBookingRepo(booking),
		&fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{plan.ID: plan}},
		newFakeWasherRepo(),
	)

	admin := Actor{UserID: uuid.New(), Role: entity.RoleAdmin}
	if _, err := fix.service.UpdateBookingStatus(context.Background(), booking.ID.String(), "confirmed", admin); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if len(fix.published.keys) != 1 || fix.published.keys[0] != "booking.status_changed" {
		t.Errorf("published keys = %v, want [booking.status_changed]", fix.published.keys)
	}
}

func TestListWasherBookingsScopedToOwnerOrAdmin(t *testing.T) {
	plan := testPlan(50)
	washerUser := uuid.New()
	washer := &entity.Washer{Base: entity.Base{ID: uuid.New()}, UserID: washerUser}

	booking := testBooking(uuid.New(), plan.ID, entity.BookingStatusConfirmed)
	booking.WasherID = &washer.ID

	otherWasherUser := uuid.New()
	otherWasher := &entity.Washer{Base: entity.Base{ID: uuid.New()}, UserID: otherWasherUser}

	fix := newBookingFixture(t,
		newFakeBookingRepo(booking),
		&fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{plan.ID: plan}},
		newFakeWasherRepo(washer, otherWasher),
	)

	page := &request.PaginatedRequest{Page: 1, Limit: 10}

	// A customer must not read a washer's history.
	customer := Actor{UserID: uuid.New(), Role: entity.RoleUser}
	if _, _, err := fix.service.ListWasherBookings(context.Background(), washer.ID.String(), customer, page); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("customer listing: err = %v, want ErrAccessDenied", err)
	}

	// Neither may a different washer.
	rival := Actor{UserID: otherWasherUser, Role: entity.RoleWasher}
	if _, _, err := fix.service.ListWasherBookings(context.Background(), washer.ID.String(), rival, page); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("rival washer listing: err = %v, want ErrAccessDenied", err)
	}

	owner := Actor{UserID: washerUser, Role: entity.RoleWasher}
	bookings, total, err := fix.service.ListWasherBookings(context.Background(), washer.ID.String(), owner, page)
	if err != nil {
		t.Fatalf("owner listing failed: %v", err)
	}
	if total != 1 || len(bookings) != 1 {
		t.Errorf("owner listing: got %d bookings (total %d), want 1", len(bookings), total)
	}

	admin := Actor{UserID: uuid.New(), Role: entity.RoleAdmin}
	if _, _, err := fix.service.ListWasherBookings(context.Background(), washer.ID.String(), admin, page); err != nil {
		t.Errorf("admin listing failed: %v", err)
	}
}

func TestWasherDeclineLeavesBookingUnassigned(t *testing.T) {
	plan := testPlan(50)
	booking := testBooking(uuid.New(), plan.ID, entity.BookingStatusPending)

	washerUser := uuid.New()
	washer := &entity.Washer{Base: entity.Base{ID: uuid.New()}, UserID: washerUser}

	bookings := newFakeBookingRepo(booking)
	fix := newBookingFixture(t, bookings,
		&fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{plan.ID: plan}},
		newFakeWasherRepo(washer),
	)

	actor := Actor{UserID: washerUser, Role: entity.RoleWasher}
	resp, err := fix.service.UpdateBookingStatus(context.Background(), booking.ID.String(), "cancelled", actor)
	if err != nil {
		t.Fatalf("decline failed: %v", err)
	}

	if resp.WasherID != nil {
		t.Errorf("declined booking got assigned to washer %s", *resp.WasherID)
	}
	calls := bookings.updateStatusCalls
	if len(calls) != 1 || calls[0].washerID != nil {
		t.Errorf("decline carried a washer assignment: %+v", calls)
	}
}

func TestGetBookingUnknownIDIsNotFound(t *testing.T) {
	fix := newBookingFixture(t, newFakeBookingRepo(), &fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{}}, newFakeWasherRepo())

	admin := Actor{UserID: uuid.New(), Role: entity.RoleAdmin}
	if _, err := fix.service.GetBooking(context.Background(), uuid.New().String(), admin); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("err = %v, want ErrBookingNotFound", err)
	}
}
