package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"bus-ticketing/internal/data/entity"
	"bus-ticketing/internal/data/repository"
	"bus-ticketing/internal/dto/request"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// fakeDB satisfies database.PgxIface for service tests. WithTx just runs
// the function; raw SQL methods are never reached because the
// repositories themselves are fakes.
type fakeDB struct{}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not implemented")
}

func (f *fakeDB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeDB) Ping(ctx context.Context) error { return nil }
func (f *fakeDB) Close()                         {}

type fakeBusRepo struct {
	mu    sync.Mutex
	buses map[int64]*entity.Bus
}

func newFakeBusRepo(buses ...*entity.Bus) *fakeBusRepo {
	r := &fakeBusRepo{buses: make(map[int64]*entity.Bus)}
	for _, b := range buses {
		r.buses[b.ID] = b
	}
	return r
}

func (r *fakeBusRepo) Create(ctx context.Context, bus *entity.Bus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bus.ID = int64(len(r.buses) + 1)
	r.buses[bus.ID] = bus
	return nil
}

func (r *fakeBusRepo) FindByID(ctx context.Context, id int64) (*entity.Bus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buses[id], nil
}

func (r *fakeBusRepo) FindAll(ctx context.Context) ([]*entity.Bus, error) { return nil, nil }
func (r *fakeBusRepo) Search(ctx context.Context, source, destination string) ([]*entity.Bus, error) {
	return nil, nil
}
func (r *fakeBusRepo) Update(ctx context.Context, bus *entity.Bus) error    { return nil }
func (r *fakeBusRepo) UpdateRating(ctx context.Context, busID int64) error  { return nil }
func (r *fakeBusRepo) Delete(ctx context.Context, id int64) error           { return nil }
func (r *fakeBusRepo) Count(ctx context.Context) (int64, error)             { return 0, nil }
func (r *fakeBusRepo) CountByStatus(ctx context.Context, status entity.BusStatus) (int64, error) {
	return 0, nil
}

type fakePassengerRepo struct {
	mu      sync.Mutex
	nextID  int64
	byPhone map[string]*entity.Passenger
}

func newFakePassengerRepo() *fakePassengerRepo {
	return &fakePassengerRepo{byPhone: make(map[string]*entity.Passenger)}
}

func (r *fakePassengerRepo) FindOrCreate(ctx context.Context, p *entity.Passenger) (*entity.Passenger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byPhone[p.Phone]; ok {
		return existing, nil
	}
	r.nextID++
	p.ID = r.nextID
	r.byPhone[p.Phone] = p
	return p, nil
}

func (r *fakePassengerRepo) FindByID(ctx context.Context, id int64) (*entity.Passenger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byPhone {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePassengerRepo) FindByPhone(ctx context.Context, phone string) (*entity.Passenger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byPhone[phone], nil
}

func (r *fakePassengerRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byPhone)), nil
}

// fakeBookingRepo mirrors the partial unique index: InsertActive fails
// with ErrSeatAlreadyBooked while another Confirmed or Boarded booking
// holds the same (bus, seat).
type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*entity.Booking)}
}

func (r *fakeBookingRepo) InsertActive(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BusID == booking.BusID && b.SeatNumber == booking.SeatNumber && b.Status.IsActive() {
			return entity.ErrSeatAlreadyBooked
		}
	}
	r.nextID++
	booking.ID = r.nextID
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindActive(ctx context.Context, busID int64, seatNumber int) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BusID == busID && b.SeatNumber == seatNumber && b.Status.IsActive() {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) OccupiedSeats(ctx context.Context, busID int64) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var seats []int
	for _, b := range r.bookings {
		if b.BusID == busID && b.Status.IsActive() {
			seats = append(seats, b.SeatNumber)
		}
	}
	sort.Ints(seats)
	return seats, nil
}

func (r *fakeBookingRepo) UpdateStatusFrom(ctx context.Context, id int64, from, to entity.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (r *fakeBookingRepo) FindByPhone(ctx context.Context, phone string) ([]*entity.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) FindByBusID(ctx context.Context, busID int64) ([]*entity.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) FindActiveByBusID(ctx context.Context, busID int64) ([]*entity.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) List(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	return nil, nil
}
func (r *fakeBookingRepo) Count(ctx context.Context) (int64, error) { return 0, nil }
func (r *fakeBookingRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return 0, nil
}
func (r *fakeBookingRepo) CountByBusAndStatus(ctx context.Context, busID int64, statuses []entity.BookingStatus) (int64, error) {
	return 0, nil
}
func (r *fakeBookingRepo) RevenueByDay(ctx context.Context, start, end time.Time) ([]*entity.DailyRevenue, error) {
	return nil, nil
}

type fakePaymentRepo struct {
	mu        sync.Mutex
	nextID    int64
	byBooking map[int64]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{byBooking: make(map[int64]*entity.Payment)}
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	payment.ID = r.nextID
	copied := *payment
	r.byBooking[payment.BookingID] = &copied
	return nil
}

func (r *fakePaymentRepo) FindByBookingID(ctx context.Context, bookingID int64) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byBooking[bookingID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (r *fakePaymentRepo) UpdateStatus(ctx context.Context, id int64, status entity.PaymentStatus, transactionID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byBooking {
		if p.ID == id {
			p.Status = status
			if transactionID != nil {
				p.TransactionID = transactionID
			}
			return nil
		}
	}
	return errors.New("payment not found")
}

type fakeNotifier struct {
	mu      sync.Mutex
	booked  int
	changed int
}

func (n *fakeNotifier) SeatBooked(booking *entity.Booking, passenger *entity.Passenger, bus *entity.Bus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.booked++
}

func (n *fakeNotifier) StatusChanged(booking *entity.Booking, previous entity.BookingStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed++
}

func (n *fakeNotifier) IncidentReported(incident *entity.IncidentReport, bus *entity.Bus) {}

func testBus() *entity.Bus {
	return &entity.Bus{
		Base:       entity.Base{ID: 1},
		BusNumber:  "KA-01-1234",
		BusName:    "Express One",
		TotalSeats: 40,
		Type:       entity.BusTypeAC,
		Status:     entity.BusStatusActive,
	}
}

func newTestReservation(bus *entity.Bus) (ReservationService, *fakeBookingRepo, *fakePassengerRepo, *fakeNotifier) {
	bookings := newFakeBookingRepo()
	passengers := newFakePassengerRepo()
	notifier := &fakeNotifier{}

	repo := &repository.Repository{
		Bus:       newFakeBusRepo(bus),
		Passenger: passengers,
		Booking:   bookings,
		Payment:   newFakePaymentRepo(),
	}

	svc := NewReservationService(repo, &fakeDB{}, notifier, zap.NewNop())
	return svc, bookings, passengers, notifier
}

func reserveReq(seat int, phone string) *request.ReserveSeatRequest {
	return &request.ReserveSeatRequest{
		BusID:          1,
		SeatNumber:     seat,
		PassengerName:  "Asha Rao",
		PassengerPhone: phone,
		FromStop:       "Central",
		ToStop:         "Airport",
	}
}

func TestReserveHappyPath(t *testing.T) {
	svc, _, _, notifier := newTestReservation(testBus())

	booking, err := svc.Reserve(context.Background(), reserveReq(12, "9876543210"))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	if booking.Status != entity.BookingStatusConfirmed {
		t.Fatalf("expected Confirmed, got %s", booking.Status)
	}
	if booking.SeatNumber != 12 {
		t.Fatalf("expected seat 12, got %d", booking.SeatNumber)
	}
	if booking.Amount != entity.FareAC {
		t.Fatalf("expected AC fare %d, got %d", entity.FareAC, booking.Amount)
	}
	if booking.TicketNumber == "" {
		t.Fatal("expected a ticket number")
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.booked != 1 {
		t.Fatalf("expected 1 booked notification, got %d", notifier.booked)
	}
}

func TestReserveSameSeatTwice(t *testing.T) {
	svc, _, _, _ := newTestReservation(testBus())

	if _, err := svc.Reserve(context.Background(), reserveReq(5, "9876543210")); err != nil {
		t.Fatalf("first reserve: %v", err)
	}

	_, err := svc.Reserve(context.Background(), reserveReq(5, "9123456780"))
	if !errors.Is(err, entity.ErrSeatAlreadyBooked) {
		t.Fatalf("expected ErrSeatAlreadyBooked, got %v", err)
	}
}

func TestReserveMutualExclusion(t *testing.T) {
	svc, _, _, _ := newTestReservation(testBus())

	const racers = 16

	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			phone := "98000000" + string(rune('0'+i%10)) + string(rune('0'+i/10))
			_, errs[i] = svc.Reserve(context.Background(), reserveReq(7, phone))
		}(i)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, entity.ErrSeatAlreadyBooked):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Fatalf("expected exactly 1 winner, got %d", wins)
	}
	if conflicts != racers-1 {
		t.Fatalf("expected %d conflicts, got %d", racers-1, conflicts)
	}
}

func TestReserveSeatOutOfRange(t *testing.T) {
	svc, _, _, _ := newTestReservation(testBus())

	for _, seat := range []int{0, -1, 41, 100} {
		_, err := svc.Reserve(context.Background(), reserveReq(seat, "9876543210"))
		if !errors.Is(err, entity.ErrInvalidSeat) {
			t.Fatalf("seat %d: expected ErrInvalidSeat, got %v", seat, err)
		}
	}
}

func TestReserveInactiveBus(t *testing.T) {
	bus := testBus()
	bus.Status = entity.BusStatusMaintenance
	svc, _, _, _ := newTestReservation(bus)

	_, err := svc.Reserve(context.Background(), reserveReq(3, "9876543210"))
	if !errors.Is(err, entity.ErrBusUnavailable) {
		t.Fatalf("expected ErrBusUnavailable, got %v", err)
	}
}

func TestReserveUnknownBus(t *testing.T) {
	svc, _, _, _ := newTestReservation(testBus())

	req := reserveReq(3, "9876543210")
	req.BusID = 99

	_, err := svc.Reserve(context.Background(), req)
	if !errors.Is(err, entity.ErrBusNotFound) {
		t.Fatalf("expected ErrBusNotFound, got %v", err)
	}
}

func TestReserveReusesPassengerByPhone(t *testing.T) {
	svc, _, passengers, _ := newTestReservation(testBus())

	first, err := svc.Reserve(context.Background(), reserveReq(1, "9876543210"))
	if err != nil {
		t.Fatalf("first reserve: %v", err)
	}

	second, err := svc.Reserve(context.Background(), reserveReq(2, "9876543210"))
	if err != nil {
		t.Fatalf("second reserve: %v", err)
	}

	if first.ID == second.ID {
		t.Fatal("expected two distinct bookings")
	}

	count, _ := passengers.Count(context.Background())
	if count != 1 {
		t.Fatalf("expected one passenger record, got %d", count)
	}
}

func TestCancelFreesSeat(t *testing.T) {
	svc, _, _, _ := newTestReservation(testBus())

	booking, err := svc.Reserve(context.Background(), reserveReq(9, "9876543210"))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	if _, err := svc.SetStatus(context.Background(), booking.ID, entity.BookingStatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := svc.Reserve(context.Background(), reserveReq(9, "9123456780")); err != nil {
		t.Fatalf("expected seat 9 free after cancellation, got %v", err)
	}
}

func TestSetStatusTransitions(t *testing.T) {
	svc, _, _, notifier := newTestReservation(testBus())

	booking, err := svc.Reserve(context.Background(), reserveReq(4, "9876543210"))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	// Confirmed cannot jump straight to Completed.
	if _, err := svc.SetStatus(context.Background(), booking.ID, entity.BookingStatusCompleted); !errors.Is(err, entity.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if _, err := svc.SetStatus(context.Background(), booking.ID, entity.BookingStatusBoarded); err != nil {
		t.Fatalf("board: %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), booking.ID, entity.BookingStatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// Completed is terminal.
	if _, err := svc.SetStatus(context.Background(), booking.ID, entity.BookingStatusCancelled); !errors.Is(err, entity.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from Completed, got %v", err)
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.changed != 2 {
		t.Fatalf("expected 2 status notifications, got %d", notifier.changed)
	}
}

func TestSetStatusUnknownBooking(t *testing.T) {
	svc, _, _, _ := newTestReservation(testBus())

	_, err := svc.SetStatus(context.Background(), 42, entity.BookingStatusBoarded)
	if !errors.Is(err, entity.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _ := newTestReservation(testBus())

	_, err := svc.SetStatus(context.Background(), 1, entity.BookingStatus("Teleported"))
	if !errors.Is(err, entity.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestListOccupiedSeats(t *testing.T) {
	svc, _, _, _ := newTestReservation(testBus())

	var cancelID int64
	for _, seat := range []int{3, 5, 7} {
		booking, err := svc.Reserve(context.Background(), reserveReq(seat, "98765432"+string(rune('0'+seat))+"0"))
		if err != nil {
			t.Fatalf("reserve seat %d: %v", seat, err)
		}
		if seat == 5 {
			cancelID = booking.ID
		}
	}

	occupied, err := svc.ListOccupiedSeats(context.Background(), 1)
	if err != nil {
		t.Fatalf("list occupied: %v", err)
	}
	if len(occupied.OccupiedSeats) != 3 {
		t.Fatalf("expected 3 occupied seats, got %v", occupied.OccupiedSeats)
	}

	if _, err := svc.SetStatus(context.Background(), cancelID, entity.BookingStatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	occupied, err = svc.ListOccupiedSeats(context.Background(), 1)
	if err != nil {
		t.Fatalf("list occupied after cancel: %v", err)
	}
	want := []int{3, 7}
	if len(occupied.OccupiedSeats) != len(want) {
		t.Fatalf("expected %v, got %v", want, occupied.OccupiedSeats)
	}
	for i, seat := range want {
		if occupied.OccupiedSeats[i] != seat {
			t.Fatalf("expected %v, got %v", want, occupied.OccupiedSeats)
		}
	}
	if occupied.TotalSeats != 40 {
		t.Fatalf("expected total seats 40, got %d", occupied.TotalSeats)
	}
}

func TestListOccupiedSeatsEmptyBus(t *testing.T) {
	svc, _, _, _ := newTestReservation(testBus())

	occupied, err := svc.ListOccupiedSeats(context.Background(), 1)
	if err != nil {
		t.Fatalf("list occupied: %v", err)
	}
	if occupied.OccupiedSeats == nil || len(occupied.OccupiedSeats) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", occupied.OccupiedSeats)
	}
}

func TestReserveRecordsPayment(t *testing.T) {
	payments := newFakePaymentRepo()
	repo := &repository.Repository{
		Bus:       newFakeBusRepo(testBus()),
		Passenger: newFakePassengerRepo(),
		Booking:   newFakeBookingRepo(),
		Payment:   payments,
	}
	svc := NewReservationService(repo, &fakeDB{}, &fakeNotifier{}, zap.NewNop())

	booking, err := svc.Reserve(context.Background(), reserveReq(6, "9876543210"))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	payment, err := payments.FindByBookingID(context.Background(), booking.ID)
	if err != nil || payment == nil {
		t.Fatalf("expected a payment for booking %d, got %v (%v)", booking.ID, payment, err)
	}
	if payment.Status != entity.PaymentStatusCompleted {
		t.Fatalf("expected Completed payment, got %s", payment.Status)
	}
	if payment.Amount != entity.FareAC {
		t.Fatalf("expected amount %d, got %d", entity.FareAC, payment.Amount)
	}
	if payment.Method != entity.PaymentMethodCash {
		t.Fatalf("expected default method Cash, got %s", payment.Method)
	}
}

func TestCancelRefundsPayment(t *testing.T) {
	payments := newFakePaymentRepo()
	repo := &repository.Repository{
		Bus:       newFakeBusRepo(testBus()),
		Passenger: newFakePassengerRepo(),
		Booking:   newFakeBookingRepo(),
		Payment:   payments,
	}
	svc := NewReservationService(repo, &fakeDB{}, &fakeNotifier{}, zap.NewNop())

	booking, err := svc.Reserve(context.Background(), reserveReq(8, "9876543210"))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	if _, err := svc.SetStatus(context.Background(), booking.ID, entity.BookingStatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	payment, _ := payments.FindByBookingID(context.Background(), booking.ID)
	if payment == nil || payment.Status != entity.PaymentStatusRefunded {
		t.Fatalf("expected Refunded payment, got %#v", payment)
	}
}

func TestReserveNonACFare(t *testing.T) {
	bus := testBus()
	bus.Type = entity.BusTypeNonAC
	svc, _, _, _ := newTestReservation(bus)

	booking, err := svc.Reserve(context.Background(), reserveReq(2, "9876543210"))
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if booking.Amount != entity.FareNonAC {
		t.Fatalf("expected NonAC fare %d, got %d", entity.FareNonAC, booking.Amount)
	}
}
