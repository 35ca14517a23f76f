package booking

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartbooking/internal/domain"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountOverlapping(ctx context.Context, resourceID int64, start, end time.Time, excludeBookingID int64) (int64, error) {
	args := m.Called(ctx, resourceID, start, end, excludeBookingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatusCAS(ctx context.Context, bookingID int64, expected, next domain.BookingStatus) (bool, error) {
	args := m.Called(ctx, bookingID, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) UpdateRange(ctx context.Context, bookingID int64, expected domain.BookingStatus, start, end time.Time, price float64) (bool, error) {
	args := m.Called(ctx, bookingID, expected, start, end, price)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) SoftDelete(ctx context.Context, bookingID int64) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListPending(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resource), args.Error(1)
}

type MockPaymentRecorder struct {
	mock.Mock
}

func (m *MockPaymentRecorder) RecordCharge(ctx context.Context, bookingID int64, amount float64, method string) error {
	args := m.Called(ctx, bookingID, amount, method)
	return args.Error(0)
}

func (m *MockPaymentRecorder) RecordRefund(ctx context.Context, bookingID int64, amount float64) error {
	args := m.Called(ctx, bookingID, amount)
	return args.Error(0)
}

// auditRecorder collects entries so tests can assert content and order.
type auditRecorder struct {
	entries []domain.AuditLogEntry
}

func (a *auditRecorder) Append(ctx context.Context, userID int64, action domain.AuditAction, details string) error {
	a.entries = append(a.entries, domain.AuditLogEntry{UserID: userID, Action: action, Details: details})
	return nil
}

// 2026-03-04 is a Wednesday.
var (
	testNow   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testStart = time.Date(2026, 3, 4, 19, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2026, 3, 4, 20, 0, 0, 0, time.UTC)
)

func peakResource() *domain.Resource {
	return &domain.Resource{
		ID:                    10,
		Name:                  "Studio A",
		Type:                  domain.ResourceRoom,
		BasePricePerHour:      10,
		PricingPolicyKey:      "PEAK_HOURS",
		ApprovalPolicyKey:     "AUTO",
		CancellationPolicyKey: "FLEXIBLE",
	}
}

func newTestService(bookings *MockBookingRepository, resources *MockResourceRepository, payments *MockPaymentRecorder) (*Service, *auditRecorder) {
	audit := &auditRecorder{}
	svc := NewService(bookings, resources, audit, payments, nil)
	svc.now = func() time.Time { return testNow }
	return svc, audit
}

func TestCreateBooking_AutoApproved(t *testing.T) {
	bookings := new(MockBookingRepository)
	resources := new(MockResourceRepository)

	resources.On("GetByID", mock.Anything, int64(10)).Return(peakResource(), nil)
	bookings.On("CountOverlapping", mock.Anything, int64(10), testStart, testEnd, int64(0)).Return(int64(0), nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc, audit := newTestService(bookings, resources, nil)

	b, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		UserID:     7,
		ResourceID: 10,
		StartTime:  testStart,
		EndTime:    testEnd,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, b.Status)
	assert.Equal(t, 12.0, b.Price) // 10 x 1h x 1.2 peak

	require.Len(t, audit.entries, 1)
	assert.Equal(t, domain.AuditCreate, audit.entries[0].Action)
	assert.Contains(t, audit.entries[0].Details, "booking 999")
	assert.Contains(t, audit.entries[0].Details, "auto-approved")
}

func TestCreateBooking_AdminRequired(t *testing.T) {
	bookings := new(MockBookingRepository)
	resources := new(MockResourceRepository)

	res := peakResource()
	res.ApprovalPolicyKey = "ADMIN_REQUIRED"
	resources.On("GetByID", mock.Anything, int64(10)).Return(res, nil)
	bookings.On("CountOverlapping", mock.Anything, int64(10), testStart, testEnd, int64(0)).Return(int64(0), nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc, audit := newTestService(bookings, resources, nil)

	b, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		UserID: 7, ResourceID: 10, StartTime: testStart, EndTime: testEnd,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingRequested, b.Status)
	require.Len(t, audit.entries, 1)
	assert.Contains(t, audit.entries[0].Details, "awaiting approval")
}

func TestCreateBooking_InvalidRange(t *testing.T) {
	svc, _ := newTestService(new(MockBookingRepository), new(MockResourceRepository), nil)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		UserID: 7, ResourceID: 10, StartTime: testEnd, EndTime: testStart,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateBooking(context.Background(), CreateBookingRequest{
		UserID: 7, ResourceID: 10, StartTime: testStart, EndTime: testStart,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_PastDated(t *testing.T) {
	svc, _ := newTestService(new(MockBookingRepository), new(MockResourceRepository), nil)

	past := testNow.AddDate(0, 0, -2)
	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		UserID: 7, ResourceID: 10, StartTime: past, EndTime: past.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_Conflict(t *testing.T) {
	bookings := new(MockBookingRepository)
	resources := new(MockResourceRepository)

	resources.On("GetByID", mock.Anything, int64(10)).Return(peakResource(), nil)
	bookings.On("CountOverlapping", mock.Anything, int64(10), testStart, testEnd, int64(0)).Return(int64(1), nil)

	svc, audit := newTestService(bookings, resources, nil)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		UserID: 7, ResourceID: 10, StartTime: testStart, EndTime: testEnd,
	})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, audit.entries)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_ExclusionConstraintViolation(t *testing.T) {
	bookings := new(MockBookingRepository)
	resources := new(MockResourceRepository)

	resources.On("GetByID", mock.Anything, int64(10)).Return(peakResource(), nil)
	bookings.On("CountOverlapping", mock.Anything, int64(10), testStart, testEnd, int64(0)).Return(int64(0), nil)
	// bookings_no_overlap fires on a writer that slipped past the check
	bookings.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23P01"})

	svc, audit := newTestService(bookings, resources, nil)

	_, err := svc.CreateBooking(context.Background(), CreateBookingRequest{
		UserID: 7, ResourceID: 10, StartTime: testStart, EndTime: testEnd,
	})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, audit.entries)
}

func TestApprove(t *testing.T) {
	bookings := new(MockBookingRepository)

	requested := &domain.Booking{ID: 5, UserID: 7, ResourceID: 10, Status: domain.BookingRequested}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(requested, nil)
	bookings.On("UpdateStatusCAS", mock.Anything, int64(5), domain.BookingRequested, domain.BookingApproved).Return(true, nil)

	svc, audit := newTestService(bookings, new(MockResourceRepository), nil)

	b, err := svc.Approve(context.Background(), 1, "admin", 5)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, b.Status)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, domain.AuditApprove, audit.entries[0].Action)
}

func TestApprove_NonAdminForbidden(t *testing.T) {
	svc, _ := newTestService(new(MockBookingRepository), new(MockResourceRepository), nil)

	_, err := svc.Approve(context.Background(), 7, "user", 5)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestApprove_WrongStatus(t *testing.T) {
	bookings := new(MockBookingRepository)
	approved := &domain.Booking{ID: 5, UserID: 7, Status: domain.BookingApproved}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(approved, nil)

	svc, _ := newTestService(bookings, new(MockResourceRepository), nil)

	_, err := svc.Approve(context.Background(), 1, "admin", 5)
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestReject(t *testing.T) {
	bookings := new(MockBookingRepository)
	requested := &domain.Booking{ID: 5, UserID: 7, Status: domain.BookingRequested}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(requested, nil)
	bookings.On("UpdateStatusCAS", mock.Anything, int64(5), domain.BookingRequested, domain.BookingRejected).Return(true, nil)

	svc, audit := newTestService(bookings, new(MockResourceRepository), nil)

	b, err := svc.Reject(context.Background(), 1, "admin", 5)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingRejected, b.Status)
	assert.Equal(t, domain.AuditReject, audit.entries[0].Action)
}

func TestPay(t *testing.T) {
	bookings := new(MockBookingRepository)
	payments := new(MockPaymentRecorder)

	approved := &domain.Booking{ID: 5, UserID: 7, Price: 12, Status: domain.BookingApproved}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(approved, nil)
	bookings.On("UpdateStatusCAS", mock.Anything, int64(5), domain.BookingApproved, domain.BookingPaid).Return(true, nil)
	payments.On("RecordCharge", mock.Anything, int64(5), 12.0, "card").Return(nil)

	svc, audit := newTestService(bookings, new(MockResourceRepository), payments)

	b, err := svc.Pay(context.Background(), 7, 5, "card")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPaid, b.Status)
	payments.AssertExpectations(t)
	assert.Equal(t, domain.AuditPay, audit.entries[0].Action)
}

func TestPay_RequiresApprovedStatus(t *testing.T) {
	bookings := new(MockBookingRepository)
	requested := &domain.Booking{ID: 5, UserID: 7, Status: domain.BookingRequested}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(requested, nil)

	svc, _ := newTestService(bookings, new(MockResourceRepository), new(MockPaymentRecorder))

	_, err := svc.Pay(context.Background(), 7, 5, "card")
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestPay_OnlyOwner(t *testing.T) {
	bookings := new(MockBookingRepository)
	approved := &domain.Booking{ID: 5, UserID: 7, Status: domain.BookingApproved}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(approved, nil)

	svc, _ := newTestService(bookings, new(MockResourceRepository), new(MockPaymentRecorder))

	_, err := svc.Pay(context.Background(), 8, 5, "card")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPay_MissingMethod(t *testing.T) {
	svc, _ := newTestService(new(MockBookingRepository), new(MockResourceRepository), new(MockPaymentRecorder))

	_, err := svc.Pay(context.Background(), 7, 5, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPay_StaleStatus(t *testing.T) {
	bookings := new(MockBookingRepository)
	approved := &domain.Booking{ID: 5, UserID: 7, Status: domain.BookingApproved}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(approved, nil)
	// concurrent writer changed the status between read and write
	bookings.On("UpdateStatusCAS", mock.Anything, int64(5), domain.BookingApproved, domain.BookingPaid).Return(false, nil)

	svc, _ := newTestService(bookings, new(MockResourceRepository), new(MockPaymentRecorder))

	_, err := svc.Pay(context.Background(), 7, 5, "card")
	assert.ErrorIs(t, err, ErrStateConflict)
}

func cancelFixture(status domain.BookingStatus, cancellationKey string, start time.Time) (*MockBookingRepository, *MockResourceRepository, *domain.Booking) {
	bookings := new(MockBookingRepository)
	resources := new(MockResourceRepository)

	b := &domain.Booking{ID: 5, UserID: 7, ResourceID: 10, Price: 12, StartTime: start, EndTime: start.Add(time.Hour), Status: status}
	res := peakResource()
	res.CancellationPolicyKey = cancellationKey

	bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
	resources.On("GetByID", mock.Anything, int64(10)).Return(res, nil)
	return bookings, resources, b
}

func TestCancel_PaidFlexibleBeforeStart_Refunds(t *testing.T) {
	bookings, resources, _ := cancelFixture(domain.BookingPaid, "FLEXIBLE", testNow.Add(48*time.Hour))
	payments := new(MockPaymentRecorder)

	bookings.On("UpdateStatusCAS", mock.Anything, int64(5), domain.BookingPaid, domain.BookingRefunded).Return(true, nil)
	payments.On("RecordRefund", mock.Anything, int64(5), 12.0).Return(nil)

	svc, audit := newTestService(bookings, resources, payments)

	b, refunded, err := svc.Cancel(context.Background(), 7, "user", 5)
	require.NoError(t, err)
	assert.True(t, refunded)
	assert.Equal(t, domain.BookingRefunded, b.Status)
	payments.AssertExpectations(t)
	assert.Contains(t, audit.entries[0].Details, "refunded")
}

func TestCancel_PaidFlexibleAfterStart_NoRefund(t *testing.T) {
	bookings, resources, _ := cancelFixture(domain.BookingPaid, "FLEXIBLE", testNow.Add(-2*time.Hour))
	payments := new(MockPaymentRecorder)

	bookings.On("UpdateStatusCAS", mock.Anything, int64(5), domain.BookingPaid, domain.BookingCancelled).Return(true, nil)

	svc, _ := newTestService(bookings, resources, payments)

	b, refunded, err := svc.Cancel(context.Background(), 7, "user", 5)
	require.NoError(t, err)
	assert.False(t, refunded)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	payments.AssertNotCalled(t, "RecordRefund", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_PaidStrict_NeverRefunds(t *testing.T) {
	bookings, resources, _ := cancelFixture(domain.BookingPaid, "STRICT", testNow.Add(48*time.Hour))
	payments := new(MockPaymentRecorder)

	bookings.On("UpdateStatusCAS", mock.Anything, int64(5), domain.BookingPaid, domain.BookingCancelled).Return(true, nil)

	svc, _ := newTestService(bookings, resources, payments)

	b, refunded, err := svc.Cancel(context.Background(), 7, "user", 5)
	require.NoError(t, err)
	assert.False(t, refunded)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestCancel_RequestedByOwner(t *testing.T) {
	bookings, resources, _ := cancelFixture(domain.BookingRequested, "FLEXIBLE", testNow.Add(48*time.Hour))
	bookings.On("UpdateStatusCAS", mock.Anything, int64(5), domain.BookingRequested, domain.BookingCancelled).Return(true, nil)

	svc, _ := newTestService(bookings, resources, nil)

	b, refunded, err := svc.Cancel(context.Background(), 7, "user", 5)
	require.NoError(t, err)
	assert.False(t, refunded) // only PAID bookings refund
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestCancel_TerminalStatus(t *testing.T) {
	bookings, resources, _ := cancelFixture(domain.BookingRejected, "FLEXIBLE", testNow.Add(48*time.Hour))

	svc, _ := newTestService(bookings, resources, nil)

	_, _, err := svc.Cancel(context.Background(), 7, "user", 5)
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestCancel_StrangerForbidden(t *testing.T) {
	bookings, resources, _ := cancelFixture(domain.BookingApproved, "FLEXIBLE", testNow.Add(48*time.Hour))

	svc, _ := newTestService(bookings, resources, nil)

	_, _, err := svc.Cancel(context.Background(), 99, "user", 5)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancel_AdminMayCancelOthers(t *testing.T) {
	bookings, resources, _ := cancelFixture(domain.BookingApproved, "FLEXIBLE", testNow.Add(48*time.Hour))
	bookings.On("UpdateStatusCAS", mock.Anything, int64(5), domain.BookingApproved, domain.BookingCancelled).Return(true, nil)

	svc, _ := newTestService(bookings, resources, nil)

	b, _, err := svc.Cancel(context.Background(), 1, "admin", 5)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestAdminUpdate(t *testing.T) {
	bookings := new(MockBookingRepository)
	resources := new(MockResourceRepository)

	b := &domain.Booking{ID: 5, UserID: 7, ResourceID: 10, Price: 12, StartTime: testStart, EndTime: testEnd, Status: domain.BookingApproved}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
	resources.On("GetByID", mock.Anything, int64(10)).Return(peakResource(), nil)

	newStart := testStart.Add(-5 * time.Hour) // 14:00, outside peak
	newEnd := newStart.Add(2 * time.Hour)
	bookings.On("CountOverlapping", mock.Anything, int64(10), newStart, newEnd, int64(5)).Return(int64(0), nil)
	bookings.On("UpdateRange", mock.Anything, int64(5), domain.BookingApproved, newStart, newEnd, 20.0).Return(true, nil)

	svc, audit := newTestService(bookings, resources, nil)

	updated, err := svc.AdminUpdate(context.Background(), 1, "admin", 5, newStart, newEnd)
	require.NoError(t, err)
	assert.Equal(t, 20.0, updated.Price) // repriced: 10 x 2h, no peak
	assert.Equal(t, newStart, updated.StartTime)
	assert.Equal(t, domain.AuditAdminUpdate, audit.entries[0].Action)
	bookings.AssertExpectations(t)
}

func TestAdminUpdate_ConflictExcludesSelf(t *testing.T) {
	bookings := new(MockBookingRepository)
	resources := new(MockResourceRepository)

	b := &domain.Booking{ID: 5, UserID: 7, ResourceID: 10, Status: domain.BookingApproved, StartTime: testStart, EndTime: testEnd}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
	resources.On("GetByID", mock.Anything, int64(10)).Return(peakResource(), nil)
	bookings.On("CountOverlapping", mock.Anything, int64(10), testStart, testEnd, int64(5)).Return(int64(1), nil)

	svc, _ := newTestService(bookings, resources, nil)

	_, err := svc.AdminUpdate(context.Background(), 1, "admin", 5, testStart, testEnd)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAdminUpdate_TerminalStatus(t *testing.T) {
	bookings := new(MockBookingRepository)
	cancelled := &domain.Booking{ID: 5, Status: domain.BookingCancelled, ResourceID: 10}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(cancelled, nil)

	svc, _ := newTestService(bookings, new(MockResourceRepository), nil)

	_, err := svc.AdminUpdate(context.Background(), 1, "admin", 5, testStart, testEnd)
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestAdminUpdate_NonAdmin(t *testing.T) {
	svc, _ := newTestService(new(MockBookingRepository), new(MockResourceRepository), nil)

	_, err := svc.AdminUpdate(context.Background(), 7, "user", 5, testStart, testEnd)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAdminDelete(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("SoftDelete", mock.Anything, int64(5)).Return(nil)

	svc, audit := newTestService(bookings, new(MockResourceRepository), nil)

	require.NoError(t, svc.AdminDelete(context.Background(), 1, "admin", 5))
	require.Len(t, audit.entries, 1)
	assert.Equal(t, domain.AuditAdminDelete, audit.entries[0].Action)

	assert.ErrorIs(t, svc.AdminDelete(context.Background(), 7, "user", 5), ErrForbidden)
}
