// controllers/reservation_controller.go
package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"office-backend/services"
	"office-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

type CreateReservationPayload struct {
	ServiceID      uint    `json:"service_id" binding:"required"`
	TenantUserID   uint    `json:"tenant_user_id"`
	Date           string  `json:"date" binding:"required"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Quantity       *int    `json:"quantity"`
	SheetSize      *string `json:"sheet_size"`
	AttachmentRef  *string `json:"attachment_ref"`
	AttachmentType *string `json:"attachment_type"`
}

// tenantUserID reads the authenticated principal: the X-Tenant-User header
// set by the auth layer in front of this service, with a body/query fallback
// for tooling.
func tenantUserID(c *gin.Context, fromBody uint) (uint, bool) {
	if raw := strings.TrimSpace(c.GetHeader("X-Tenant-User")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil && parsed != 0 {
			return uint(parsed), true
		}
	}
	if fromBody != 0 {
		return fromBody, true
	}
	if raw := c.Query("tenant_user_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil && parsed != 0 {
			return uint(parsed), true
		}
	}
	return 0, false
}

func respondReservationError(c *gin.Context, err error) {
	switch {
	case strings.Contains(err.Error(), "validation"):
		utils.JSONFail(c, http.StatusBadRequest, "error.validation", err.Error())
	case strings.Contains(err.Error(), "outstanding_debt"):
		utils.JSONFail(c, http.StatusUnprocessableEntity, "error.outstandingDebt", "tenant has unpaid charges; booking refused")
	case strings.Contains(err.Error(), "slot_conflict"):
		utils.JSONFail(c, http.StatusConflict, "error.slotConflict", "requested slot overlaps an existing booking")
	case strings.Contains(err.Error(), "tenant_office_not_found"):
		utils.JSONFail(c, http.StatusNotFound, "error.tenantOfficeNotFound", "tenant has no assigned office")
	case strings.Contains(err.Error(), "service_not_found"):
		utils.JSONFail(c, http.StatusNotFound, "error.serviceNotFound", "reservable service not found")
	case strings.Contains(err.Error(), "booking_not_found"):
		utils.JSONFail(c, http.StatusNotFound, "error.bookingNotFound", "booking not found")
	case strings.Contains(err.Error(), "not_booking_owner"):
		utils.JSONFail(c, http.StatusForbidden, "error.notBookingOwner", "only the booking owner may cancel it")
	case strings.Contains(err.Error(), "not_pending"):
		utils.JSONFail(c, http.StatusConflict, "error.notPending", "booking is not pending")
	default:
		utils.JSONFail(c, http.StatusInternalServerError, "error.internal", "reservation operation failed")
	}
}

// CreateReservation handles POST /api/reservations.
func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var payload CreateReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	tenantID, ok := tenantUserID(c, payload.TenantUserID)
	if !ok {
		utils.JSONFail(c, http.StatusBadRequest, "error.missingTenantUser", "tenant user id is required")
		return
	}

	booking, err := ctrl.ReservationSvc.RequestBooking(services.BookingRequest{
		TenantUserID:   tenantID,
		ServiceID:      payload.ServiceID,
		Date:           payload.Date,
		StartTime:      payload.StartTime,
		EndTime:        payload.EndTime,
		Quantity:       payload.Quantity,
		SheetSize:      payload.SheetSize,
		AttachmentRef:  payload.AttachmentRef,
		AttachmentType: payload.AttachmentType,
	})
	if err != nil {
		log.Printf("CreateReservation error (tenant=%d service=%d): %v", tenantID, payload.ServiceID, err)
		respondReservationError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// CancelReservation handles PUT /api/reservations/:id/cancel.
func (ctrl *ReservationController) CancelReservation(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "error.invalidBookingId", "booking id must be numeric")
		return
	}

	tenantID, ok := tenantUserID(c, 0)
	if !ok {
		utils.JSONFail(c, http.StatusBadRequest, "error.missingTenantUser", "tenant user id is required")
		return
	}

	booking, err := ctrl.ReservationSvc.CancelBooking(uint(bookingID), tenantID)
	if err != nil {
		log.Printf("CancelReservation error (booking=%d tenant=%d): %v", bookingID, tenantID, err)
		respondReservationError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CompleteReservation handles PUT /api/reservations/:id/complete.
func (ctrl *ReservationController) CompleteReservation(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "error.invalidBookingId", "booking id must be numeric")
		return
	}

	booking, err := ctrl.ReservationSvc.CompleteBooking(uint(bookingID))
	if err != nil {
		log.Printf("CompleteReservation error (booking=%d): %v", bookingID, err)
		respondReservationError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, booking)
}

// SweepReservations handles PUT /api/reservations/sweep?service_id=.
func (ctrl *ReservationController) SweepReservations(c *gin.Context) {
	var serviceScope uint
	if raw := c.Query("service_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONFail(c, http.StatusBadRequest, "error.invalidServiceId", "service id must be numeric")
			return
		}
		serviceScope = uint(parsed)
	}

	updated, err := ctrl.ReservationSvc.SweepPastBookings(serviceScope, time.Now().UTC())
	if err != nil {
		log.Printf("SweepReservations error: %v", err)
		utils.JSONFail(c, http.StatusInternalServerError, "error.internal", "failed to sweep past bookings")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"updatedCount": updated})
}

// GetOccupiedSlots handles GET /api/services/:id/slots?date=.
func (ctrl *ReservationController) GetOccupiedSlots(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "error.invalidServiceId", "service id must be numeric")
		return
	}

	date := c.Query("date")
	if date == "" {
		utils.JSONFail(c, http.StatusBadRequest, "error.missingDate", "date query parameter is required")
		return
	}

	slots, err := ctrl.ReservationSvc.ListOccupiedSlots(uint(serviceID), date, time.Now().UTC())
	if err != nil {
		log.Printf("GetOccupiedSlots error (service=%d date=%s): %v", serviceID, date, err)
		if strings.Contains(err.Error(), "validation") {
			utils.JSONFail(c, http.StatusBadRequest, "error.validation", err.Error())
			return
		}
		utils.JSONFail(c, http.StatusInternalServerError, "error.internal", "failed to load occupied slots")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, slots)
}

// GetMyReservations handles GET /api/reservations.
func (ctrl *ReservationController) GetMyReservations(c *gin.Context) {
	tenantID, ok := tenantUserID(c, 0)
	if !ok {
		utils.JSONFail(c, http.StatusBadRequest, "error.missingTenantUser", "tenant user id is required")
		return
	}

	bookings, err := ctrl.ReservationSvc.ListBookingsForTenant(tenantID, time.Now().UTC())
	if err != nil {
		log.Printf("GetMyReservations error (tenant=%d): %v", tenantID, err)
		utils.JSONFail(c, http.StatusInternalServerError, "error.internal", "failed to load bookings")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, bookings)
}
