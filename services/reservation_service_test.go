package services

import (
	"testing"
	"time"

	"office-backend/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestSlotsOverlap(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"touching end", "09:00", "10:00", "10:00", "11:00", false},
		{"touching start", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "09:00", "10:00", "13:00", "14:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slotsOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
		})
	}
}

func TestValidateRoomSlot(t *testing.T) {
	now := time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)
	today := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	duration, err := validateRoomSlot(now, today, "09:00", "10:30")
	require.NoError(t, err)
	assert.Equal(t, 90, duration)

	// under 30 minutes
	_, err = validateRoomSlot(now, today, "09:00", "09:29")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 30")

	// exactly 30 minutes is admitted
	_, err = validateRoomSlot(now, today, "09:00", "09:30")
	require.NoError(t, err)

	// end before start
	_, err = validateRoomSlot(now, today, "10:00", "09:00")
	require.Error(t, err)

	// start not in the future
	_, err = validateRoomSlot(now, today, "08:00", "09:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "future")

	// missing times
	_, err = validateRoomSlot(now, today, "", "10:00")
	require.Error(t, err)

	// malformed clock
	_, err = validateRoomSlot(now, today, "9am", "10:00")
	require.Error(t, err)

	// unpadded clock strings would be stored verbatim and escape the
	// lexicographic conflict check, so admission rejects them outright
	_, err = validateRoomSlot(now, today, "9:30", "10:30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HH:MM")

	_, err = validateRoomSlot(now, today, "09:30", "10:3")
	require.Error(t, err)
}

func TestValidateConsumableRequest(t *testing.T) {
	valid := BookingRequest{
		Quantity:       intPtr(20),
		SheetSize:      strPtr("A4"),
		AttachmentRef:  strPtr("uploads/doc-1.pdf"),
		AttachmentType: strPtr("pdf"),
	}
	require.NoError(t, validateConsumableRequest(valid))

	missingQty := valid
	missingQty.Quantity = nil
	require.Error(t, validateConsumableRequest(missingQty))

	zeroQty := valid
	zeroQty.Quantity = intPtr(0)
	require.Error(t, validateConsumableRequest(zeroQty))

	hugeQty := valid
	hugeQty.Quantity = intPtr(1001)
	require.Error(t, validateConsumableRequest(hugeQty))

	boundaryQty := valid
	boundaryQty.Quantity = intPtr(1000)
	require.NoError(t, validateConsumableRequest(boundaryQty))

	noSheet := valid
	noSheet.SheetSize = nil
	require.Error(t, validateConsumableRequest(noSheet))

	noAttachment := valid
	noAttachment.AttachmentRef = nil
	require.Error(t, validateConsumableRequest(noAttachment))

	badType := valid
	badType.AttachmentType = strPtr("exe")
	err := validateConsumableRequest(badType)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attachment type")
}

func TestEffectiveQuantity(t *testing.T) {
	timePriced := models.ReservableService{TimePriced: true}
	flat := models.ReservableService{}

	assert.Equal(t, 25.0, effectiveQuantity(flat, intPtr(25), 0))
	assert.Equal(t, 1.5, effectiveQuantity(timePriced, nil, 90))
	assert.Equal(t, 1.0, effectiveQuantity(flat, nil, 0))
}

func TestBookingTransitionTable(t *testing.T) {
	assert.True(t, models.CanTransition(models.BookingPending, models.BookingCompleted))
	assert.True(t, models.CanTransition(models.BookingPending, models.BookingCancelled))
	assert.False(t, models.CanTransition(models.BookingCompleted, models.BookingCancelled))
	assert.False(t, models.CanTransition(models.BookingCompleted, models.BookingPending))
	assert.False(t, models.CanTransition(models.BookingCancelled, models.BookingCompleted))
	assert.False(t, models.CanTransition(models.BookingCancelled, models.BookingPending))
}

func TestRequestBooking_OutstandingDebt(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, NewDirectoryService(db))

	mock.ExpectQuery("SELECT .* FROM `offices`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "occupancy_state"}).AddRow(11, models.OfficeOccupied))
	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	_, err := svc.RequestBooking(BookingRequest{TenantUserID: 5, ServiceID: 7, Date: "2025-11-01"})
	require.ErrorIs(t, err, errOutstandingDebt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestBooking_NoOfficeAssigned(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, NewDirectoryService(db))

	mock.ExpectQuery("SELECT .* FROM `offices`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.RequestBooking(BookingRequest{TenantUserID: 5, ServiceID: 7, Date: "2025-11-01"})
	require.ErrorIs(t, err, errTenantOfficeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

// expectAdmission queues the office lookup, the clean debt check and the
// service lookup shared by the room-booking tests.
func expectAdmission(mock sqlmock.Sqlmock, serviceType string, timePriced bool) {
	mock.ExpectQuery("SELECT .* FROM `offices`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "occupancy_state"}).AddRow(11, models.OfficeOccupied))
	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT .* FROM `reservable_services`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "base_rate", "time_priced"}).
			AddRow(7, "Meeting Room A", serviceType, 300.0, timePriced))
}

func futureDate() string {
	return time.Now().UTC().Add(48 * time.Hour).Format("2006-01-02")
}

func TestRequestBooking_SlotConflict(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, NewDirectoryService(db))

	expectAdmission(mock, models.ServiceRoom, true)
	mock.ExpectQuery("SELECT .* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_id", "start_time", "end_time", "status"}).
			AddRow(1, 7, "09:00", "10:00", models.BookingPending))

	_, err := svc.RequestBooking(BookingRequest{
		TenantUserID: 5,
		ServiceID:    7,
		Date:         futureDate(),
		StartTime:    "09:30",
		EndTime:      "10:30",
	})
	require.ErrorIs(t, err, errSlotConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestBooking_TouchingSlotAdmitted(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, NewDirectoryService(db))

	expectAdmission(mock, models.ServiceRoom, true)
	mock.ExpectQuery("SELECT .* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_id", "start_time", "end_time", "status"}).
			AddRow(1, 7, "09:00", "10:00", models.BookingPending))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `bookings`").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT .* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_id", "tenant_user_id", "start_time", "end_time", "status", "total_value"}).
			AddRow(42, 7, 5, "10:00", "11:00", models.BookingPending, 300.0))
	mock.ExpectQuery("SELECT .* FROM `reservable_services`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "base_rate", "time_priced"}).
			AddRow(7, "Meeting Room A", models.ServiceRoom, 300.0, true))

	booking, err := svc.RequestBooking(BookingRequest{
		TenantUserID: 5,
		ServiceID:    7,
		Date:         futureDate(),
		StartTime:    "10:00",
		EndTime:      "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, 300.0, booking.TotalValue)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestBooking_ConsumablePricedByQuantity(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, NewDirectoryService(db))

	expectAdmission(mock, models.ServiceConsumable, false)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `bookings`").
		WillReturnResult(sqlmock.NewResult(43, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT .* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_id", "tenant_user_id", "quantity", "status", "total_value"}).
			AddRow(43, 7, 5, 20, models.BookingPending, 6000.0))
	mock.ExpectQuery("SELECT .* FROM `reservable_services`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "base_rate", "time_priced"}).
			AddRow(7, "Document Printing", models.ServiceConsumable, 300.0, false))

	booking, err := svc.RequestBooking(BookingRequest{
		TenantUserID:   5,
		ServiceID:      7,
		Date:           "2025-11-01",
		Quantity:       intPtr(20),
		SheetSize:      strPtr("A4"),
		AttachmentRef:  strPtr("uploads/doc-1.pdf"),
		AttachmentType: strPtr("pdf"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, booking.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBooking_NotOwner(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, NewDirectoryService(db))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_user_id", "status"}).
			AddRow(42, 5, models.BookingPending))
	mock.ExpectRollback()

	_, err := svc.CancelBooking(42, 6)
	require.ErrorIs(t, err, errNotBookingOwner)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBooking_TerminalStateRefused(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, NewDirectoryService(db))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_user_id", "status"}).
			AddRow(42, 5, models.BookingCompleted))
	mock.ExpectRollback()

	_, err := svc.CancelBooking(42, 5)
	require.ErrorIs(t, err, errNotPending)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBooking_PendingSucceeds(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, NewDirectoryService(db))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_user_id", "status"}).
			AddRow(42, 5, models.BookingPending))
	mock.ExpectExec("UPDATE `bookings`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := svc.CancelBooking(42, 5)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, booking.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteBooking_NotPending(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, NewDirectoryService(db))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `bookings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_user_id", "status"}).
			AddRow(42, 5, models.BookingCancelled))
	mock.ExpectRollback()

	_, err := svc.CompleteBooking(42)
	require.ErrorIs(t, err, errNotPending)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A second sweep over an already-swept store touches zero rows.
func TestSweepPastBookings_Idempotent(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReservationService(db, NewDirectoryService(db))

	now := time.Date(2025, 11, 2, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `bookings`").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `bookings`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	first, err := svc.SweepPastBookings(0, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), first)

	second, err := svc.SweepPastBookings(0, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second)

	require.NoError(t, mock.ExpectationsWereMet())
}

// A slot ending at 12:00 has elapsed by 12:00:30, so the cutoff sent to the
// store is the next minute; at an exact boundary it stays put, because an end
// equal to now is not strictly before it.
func TestSweepPastBookings_MinuteCutoff(t *testing.T) {
	today := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		now   time.Time
		clock string
	}{
		{"seconds past the minute", time.Date(2025, 11, 2, 12, 0, 30, 0, time.UTC), "12:01"},
		{"exact minute boundary", time.Date(2025, 11, 2, 12, 0, 0, 0, time.UTC), "12:00"},
		{"last minute of the day", time.Date(2025, 11, 2, 23, 59, 5, 0, time.UTC), "24:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			svc := NewReservationService(db, NewDirectoryService(db))

			mock.ExpectBegin()
			mock.ExpectExec("UPDATE `bookings`").
				WithArgs(models.BookingCompleted, sqlmock.AnyArg(), models.BookingPending, today, today, tc.clock).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			swept, err := svc.SweepPastBookings(0, tc.now)
			require.NoError(t, err)
			assert.Equal(t, int64(1), swept)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
