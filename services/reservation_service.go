// services/reservation_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"office-backend/models"
	"office-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// allowedAttachmentTypes is the declared-media-type allow-list for consumable
// bookings (print/scan jobs).
var allowedAttachmentTypes = map[string]bool{
	"pdf":  true,
	"doc":  true,
	"docx": true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

const (
	minSlotMinutes = 30
	maxQuantity    = 1000
)

// ReservationService admits, prices and transitions resource bookings.
type ReservationService struct {
	DB        *gorm.DB
	Directory *DirectoryService
	locks     *utils.KeyLock
}

func NewReservationService(db *gorm.DB, directory *DirectoryService) *ReservationService {
	return &ReservationService{DB: db, Directory: directory, locks: utils.NewKeyLock()}
}

type BookingRequest struct {
	TenantUserID   uint
	ServiceID      uint
	Date           string // "2006-01-02"
	StartTime      string // "HH:MM", room only
	EndTime        string // "HH:MM", room only
	Quantity       *int
	SheetSize      *string
	AttachmentRef  *string
	AttachmentType *string
}

// slotsOverlap implements half-open interval semantics on zero-padded "HH:MM"
// strings: touching endpoints do not conflict.
func slotsOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// validateRoomSlot checks the temporal rules for a room request and returns
// the slot duration in minutes.
func validateRoomSlot(now time.Time, date time.Time, startTime, endTime string) (int, error) {
	if startTime == "" || endTime == "" {
		return 0, fmt.Errorf("validation: start_time and end_time are required for room bookings")
	}
	startMin, err := utils.ParseClock(startTime)
	if err != nil {
		return 0, fmt.Errorf("validation: %v", err)
	}
	endMin, err := utils.ParseClock(endTime)
	if err != nil {
		return 0, fmt.Errorf("validation: %v", err)
	}

	start := date.Add(time.Duration(startMin) * time.Minute)
	if !start.After(now) {
		return 0, fmt.Errorf("validation: slot start must be in the future")
	}
	if endMin <= startMin {
		return 0, fmt.Errorf("validation: slot end must be after start")
	}
	if endMin-startMin < minSlotMinutes {
		return 0, fmt.Errorf("validation: slot must be at least %d minutes", minSlotMinutes)
	}
	return endMin - startMin, nil
}

// validateConsumableRequest checks quantity, sheet size and attachment rules
// for print/scan requests.
func validateConsumableRequest(req BookingRequest) error {
	if req.Quantity == nil {
		return fmt.Errorf("validation: quantity is required for consumable bookings")
	}
	if *req.Quantity < 1 || *req.Quantity > maxQuantity {
		return fmt.Errorf("validation: quantity must be between 1 and %d", maxQuantity)
	}
	if req.SheetSize == nil || *req.SheetSize == "" {
		return fmt.Errorf("validation: sheet_size is required for consumable bookings")
	}
	if req.AttachmentRef == nil || *req.AttachmentRef == "" {
		return fmt.Errorf("validation: attachment is required for consumable bookings")
	}
	if req.AttachmentType == nil || !allowedAttachmentTypes[*req.AttachmentType] {
		return fmt.Errorf("validation: attachment type must be one of pdf, doc, docx, jpeg, png, gif")
	}
	return nil
}

// effectiveQuantity resolves the pricing multiplier: an explicit quantity
// wins; time-priced services fall back to slot hours (fractions allowed);
// everything else bills a single unit.
func effectiveQuantity(service models.ReservableService, quantity *int, durationMinutes int) float64 {
	if quantity != nil {
		return float64(*quantity)
	}
	if service.TimePriced && durationMinutes > 0 {
		return float64(durationMinutes) / 60
	}
	return 1
}

// RequestBooking runs the admission gate, the type-specific validation and,
// for rooms, the overlap exclusion, then persists a pending booking.
func (s *ReservationService) RequestBooking(req BookingRequest) (*models.Booking, error) {
	office, err := s.Directory.OfficeForTenant(req.TenantUserID)
	if err != nil {
		return nil, err
	}
	if office == nil {
		return nil, errTenantOfficeNotFound
	}

	// Admission gate: any unpaid charge on the tenant's office blocks every
	// booking type.
	var debt int64
	if err := s.DB.Model(&models.ExpenseDetail{}).
		Where("office_id = ? AND payment_state = ?", office.ID, models.PaymentPending).
		Count(&debt).Error; err != nil {
		return nil, fmt.Errorf("failed to check outstanding charges: %w", err)
	}
	if debt > 0 {
		return nil, errOutstandingDebt
	}

	var service models.ReservableService
	if err := s.DB.First(&service, req.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errServiceNotFound
		}
		return nil, fmt.Errorf("failed to load service: %w", err)
	}

	if req.Date == "" {
		return nil, fmt.Errorf("validation: date is required")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("validation: invalid date format: %v", err)
	}

	now := time.Now().UTC()
	durationMinutes := 0

	booking := models.Booking{
		ReferenceCode: uuid.NewString(),
		TenantUserID:  req.TenantUserID,
		ServiceID:     service.ID,
		Date:          date,
		Status:        models.BookingPending,
	}

	switch service.Type {
	case models.ServiceConsumable:
		if err := validateConsumableRequest(req); err != nil {
			return nil, err
		}
		booking.Quantity = req.Quantity
		booking.SheetSize = req.SheetSize
		booking.AttachmentRef = req.AttachmentRef
		booking.AttachmentType = req.AttachmentType

		booking.TotalValue = service.BaseRate * effectiveQuantity(service, req.Quantity, 0)

		if err := s.DB.Create(&booking).Error; err != nil {
			return nil, fmt.Errorf("failed to create booking: %w", err)
		}

	case models.ServiceRoom:
		durationMinutes, err = validateRoomSlot(now, date, req.StartTime, req.EndTime)
		if err != nil {
			return nil, err
		}
		booking.StartTime = req.StartTime
		booking.EndTime = req.EndTime
		booking.TotalValue = service.BaseRate * effectiveQuantity(service, req.Quantity, durationMinutes)

		// Serialize the conflict check and the insert per (service, date);
		// two concurrent overlapping requests must not both pass the check.
		key := fmt.Sprintf("slot:%d:%s", service.ID, req.Date)
		s.locks.Lock(key)
		defer s.locks.Unlock(key)

		var existing []models.Booking
		if err := s.DB.
			Where("service_id = ? AND date = ? AND status = ?", service.ID, date, models.BookingPending).
			Find(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to load bookings for conflict check: %w", err)
		}
		for _, b := range existing {
			if slotsOverlap(b.StartTime, b.EndTime, req.StartTime, req.EndTime) {
				return nil, errSlotConflict
			}
		}

		if err := s.DB.Create(&booking).Error; err != nil {
			return nil, fmt.Errorf("failed to create booking: %w", err)
		}

	default:
		return nil, fmt.Errorf("validation: unknown service type %q", service.Type)
	}

	// reload with service relation
	var created models.Booking
	if err := s.DB.Preload("Service").First(&created, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &created, nil
}

// CancelBooking transitions pending -> cancelled. Only the owning tenant may
// cancel; terminal bookings stay put.
func (s *ReservationService) CancelBooking(bookingID uint, tenantUserID uint) (*models.Booking, error) {
	return s.transition(bookingID, models.BookingCancelled, &tenantUserID)
}

// CompleteBooking transitions pending -> completed (staff action).
func (s *ReservationService) CompleteBooking(bookingID uint) (*models.Booking, error) {
	return s.transition(bookingID, models.BookingCompleted, nil)
}

func (s *ReservationService) transition(bookingID uint, target string, ownerID *uint) (*models.Booking, error) {
	var booking models.Booking

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBookingNotFound
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}

		if ownerID != nil && booking.TenantUserID != *ownerID {
			return errNotBookingOwner
		}
		if !models.CanTransition(booking.Status, target) {
			return errNotPending
		}

		if err := tx.Model(&booking).Update("status", target).Error; err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}
		booking.Status = target
		return nil
	})

	if txErr != nil {
		return nil, txErr
	}
	return &booking, nil
}

// SweepPastBookings completes every pending booking in scope whose slot end is
// strictly before now. serviceScope 0 means all services. Safe to run before
// every read: a second sweep over the same data changes nothing.
func (s *ReservationService) SweepPastBookings(serviceScope uint, now time.Time) (int64, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// Cutoff at minute granularity: a slot ending at the current minute has
	// already elapsed once now carries seconds past the boundary. minuteOfDay
	// may reach 1440, rendering "24:00", which sorts after every stored time.
	minuteOfDay := now.Hour()*60 + now.Minute()
	if now.Second() > 0 || now.Nanosecond() > 0 {
		minuteOfDay++
	}
	clock := fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)

	q := s.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingPending).
		Where("end_time <> ''").
		Where("(date < ?) OR (date = ? AND end_time < ?)", today, today, clock)
	if serviceScope != 0 {
		q = q.Where("service_id = ?", serviceScope)
	}

	res := q.Update("status", models.BookingCompleted)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to sweep past bookings: %w", res.Error)
	}
	return res.RowsAffected, nil
}

type OccupiedSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ListOccupiedSlots returns the pending slots for a service and date, start
// ascending. Sweeps first so elapsed slots never show as taken.
func (s *ReservationService) ListOccupiedSlots(serviceID uint, dateStr string, now time.Time) ([]OccupiedSlot, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("validation: invalid date format: %v", err)
	}

	if _, err := s.SweepPastBookings(serviceID, now); err != nil {
		return nil, err
	}

	var bookings []models.Booking
	if err := s.DB.
		Where("service_id = ? AND date = ? AND status = ?", serviceID, date, models.BookingPending).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list occupied slots: %w", err)
	}

	slots := make([]OccupiedSlot, 0, len(bookings))
	for _, b := range bookings {
		slots = append(slots, OccupiedSlot{Start: b.StartTime, End: b.EndTime})
	}
	return slots, nil
}

// ListBookingsForTenant sweeps, then returns the tenant's bookings newest
// first, service preloaded.
func (s *ReservationService) ListBookingsForTenant(tenantUserID uint, now time.Time) ([]models.Booking, error) {
	if _, err := s.SweepPastBookings(0, now); err != nil {
		return nil, err
	}

	var bookings []models.Booking
	if err := s.DB.
		Preload("Service").
		Where("tenant_user_id = ?", tenantUserID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
