// services/allocation_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"office-backend/models"
	"office-backend/utils"

	"gorm.io/gorm"
)

// AllocationService turns one month of building expenses into per-office
// charges. The per-m² rate is computed over the building's WHOLE registered
// office area, while only occupied offices receive a charge: the building
// absorbs the vacant share. This is a deliberate product rule, do not "fix"
// it to occupied-area proration.
type AllocationService struct {
	DB    *gorm.DB
	locks *utils.KeyLock
}

func NewAllocationService(db *gorm.DB) *AllocationService {
	return &AllocationService{DB: db, locks: utils.NewKeyLock()}
}

type AllocationResult struct {
	ExpensePeriodID uint    `json:"expensePeriodId"`
	RatePerArea     float64 `json:"ratePerArea"`
	DetailCount     int     `json:"detailCount"`
}

// CalculateAndAllocate creates the period row and all detail rows in one
// transaction. A failure at any step leaves no trace of the period.
func (s *AllocationService) CalculateAndAllocate(
	buildingID uint,
	period string,
	totalAmount float64,
	breakdown models.ExpenseBreakdown,
) (*AllocationResult, error) {

	if totalAmount <= 0 {
		return nil, fmt.Errorf("validation: total amount must be positive")
	}
	if _, _, err := utils.ParsePeriod(period); err != nil {
		return nil, fmt.Errorf("validation: %v", err)
	}

	// Serialize per (building, period) so two concurrent calls cannot both
	// pass the duplicate check. The unique index on (building_id, period)
	// backs this at the store as well.
	key := fmt.Sprintf("alloc:%d:%s", buildingID, period)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	var result AllocationResult

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.ExpensePeriod
		err := tx.Where("building_id = ? AND period = ?", buildingID, period).First(&existing).Error
		if err == nil {
			return errAlreadyAllocated
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing period: %w", err)
		}

		var building models.Building
		if err := tx.First(&building, buildingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBuildingNotFound
			}
			return fmt.Errorf("failed to load building: %w", err)
		}

		// Rate denominator: every office in the building, occupied or not.
		var totalArea float64
		if err := tx.Model(&models.Office{}).
			Joins("JOIN floors ON floors.id = offices.floor_id").
			Where("floors.building_id = ?", buildingID).
			Select("COALESCE(SUM(offices.area), 0)").
			Scan(&totalArea).Error; err != nil {
			return fmt.Errorf("failed to sum office area: %w", err)
		}
		if totalArea <= 0 {
			return errNoUsableArea
		}
		rate := totalAmount / totalArea

		var occupied []models.Office
		if err := tx.
			Joins("JOIN floors ON floors.id = offices.floor_id").
			Where("floors.building_id = ? AND offices.occupancy_state = ?", buildingID, models.OfficeOccupied).
			Find(&occupied).Error; err != nil {
			return fmt.Errorf("failed to load occupied offices: %w", err)
		}
		if len(occupied) == 0 {
			return errNoOccupiedOffices
		}

		breakdownJSON, err := json.Marshal(breakdown)
		if err != nil {
			return fmt.Errorf("failed to encode expense breakdown: %w", err)
		}

		expensePeriod := models.ExpensePeriod{
			BuildingID:  buildingID,
			Period:      period,
			TotalAmount: totalAmount,
			Breakdown:   breakdownJSON,
			RatePerArea: rate,
		}
		if err := tx.Create(&expensePeriod).Error; err != nil {
			if isDuplicateKeyError(err) {
				return errAlreadyAllocated
			}
			return fmt.Errorf("failed to create expense period: %w", err)
		}

		details := buildExpenseDetails(expensePeriod.ID, occupied, rate)
		for i := range details {
			if err := tx.Create(&details[i]).Error; err != nil {
				return fmt.Errorf("failed to create expense detail for office %d: %w", details[i].OfficeID, err)
			}
		}

		result = AllocationResult{
			ExpensePeriodID: expensePeriod.ID,
			RatePerArea:     math.Round(rate*100) / 100,
			DetailCount:     len(occupied),
		}
		return nil
	})

	if txErr != nil {
		return nil, txErr
	}
	return &result, nil
}

// buildExpenseDetails prorates the period across the occupied offices:
// amount = office area × building-wide rate, all details starting pending.
func buildExpenseDetails(periodID uint, occupied []models.Office, rate float64) []models.ExpenseDetail {
	details := make([]models.ExpenseDetail, 0, len(occupied))
	for _, office := range occupied {
		details = append(details, models.ExpenseDetail{
			ExpensePeriodID: periodID,
			OfficeID:        office.ID,
			Amount:          office.Area * rate,
			PaymentState:    models.PaymentPending,
		})
	}
	return details
}

// ChargeRecord is one ExpenseDetail annotated with the calendar position
// parsed from its period key.
type ChargeRecord struct {
	ID              uint    `json:"id"`
	ExpensePeriodID uint    `gorm:"column:expense_period_id" json:"expense_period_id"`
	OfficeID        uint    `gorm:"column:office_id" json:"office_id"`
	Amount          float64 `json:"amount"`
	PaymentState    string  `gorm:"column:payment_state" json:"paymentState"`
	ProofReference  *string `gorm:"column:proof_reference" json:"proofReference,omitempty"`
	Period          string  `json:"period"`
	Year            int     `gorm:"-" json:"year"`
	Month           int     `gorm:"-" json:"month"`
}

// GetChargeHistory returns the office's most recent charges, newest billing
// month first. Rows whose period key does not parse sort last.
func (s *AllocationService) GetChargeHistory(officeID uint, limit int) ([]ChargeRecord, error) {
	if limit <= 0 {
		limit = 12
	}

	var records []ChargeRecord
	err := s.DB.Table("expense_details").
		Select("expense_details.id, expense_details.expense_period_id, expense_details.office_id, expense_details.amount, expense_details.payment_state, expense_details.proof_reference, expense_periods.period").
		Joins("JOIN expense_periods ON expense_periods.id = expense_details.expense_period_id").
		Where("expense_details.office_id = ?", officeID).
		Scan(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load charge history: %w", err)
	}

	sortChargeHistory(records)
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// sortChargeHistory orders by parsed (year, month) descending, unparsable
// period keys last.
func sortChargeHistory(records []ChargeRecord) {
	for i := range records {
		year, month, err := utils.ParsePeriod(records[i].Period)
		if err != nil {
			continue
		}
		records[i].Year = year
		records[i].Month = month
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if (a.Year == 0) != (b.Year == 0) {
			return b.Year == 0
		}
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.Month > b.Month
	})
}
