// services/errors.go
package services

import (
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
)

// Business-rule errors carry stable snake_case codes; controllers match on
// them to pick HTTP statuses. Store failures are wrapped with %w instead.
var (
	errAlreadyAllocated     = errors.New("already_allocated")
	errNoUsableArea         = errors.New("no_usable_area")
	errNoOccupiedOffices    = errors.New("no_occupied_offices")
	errBuildingNotFound     = errors.New("building_not_found")
	errOutstandingDebt      = errors.New("outstanding_debt")
	errServiceNotFound      = errors.New("service_not_found")
	errTenantOfficeNotFound = errors.New("tenant_office_not_found")
	errSlotConflict         = errors.New("slot_conflict")
	errBookingNotFound      = errors.New("booking_not_found")
	errNotPending           = errors.New("not_pending")
	errNotBookingOwner      = errors.New("not_booking_owner")
	errFloorsNotEmpty       = errors.New("floors_not_empty")
)

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate") || strings.Contains(lower, "unique")
}
