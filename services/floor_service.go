// services/floor_service.go
package services

import (
	"errors"
	"fmt"

	"office-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FloorService is the only writer of floor rows and Building.TotalFloors.
// Both always move together inside one transaction, so the count and the
// floor table can never disagree.
type FloorService struct {
	DB *gorm.DB
}

func NewFloorService(db *gorm.DB) *FloorService {
	return &FloorService{DB: db}
}

// RemoveFloors deletes the `count` highest-numbered floors of the building and
// decrements TotalFloors by the same amount. Any office on any selected floor
// aborts the whole operation.
func (s *FloorService) RemoveFloors(buildingID uint, count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("validation: count must be positive")
	}

	removed := 0

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var building models.Building
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&building, buildingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBuildingNotFound
			}
			return fmt.Errorf("failed to load building: %w", err)
		}

		if count > building.TotalFloors {
			return fmt.Errorf("validation: count %d exceeds total floors %d", count, building.TotalFloors)
		}

		var floors []models.Floor
		if err := tx.
			Where("building_id = ?", buildingID).
			Order("floor_number DESC").
			Limit(count).
			Find(&floors).Error; err != nil {
			return fmt.Errorf("failed to load floors: %w", err)
		}
		if len(floors) < count {
			return fmt.Errorf("validation: building has only %d floor rows", len(floors))
		}

		floorIDs := make([]uint, 0, len(floors))
		for _, f := range floors {
			floorIDs = append(floorIDs, f.ID)
		}

		var officeCount int64
		if err := tx.Model(&models.Office{}).
			Where("floor_id IN ?", floorIDs).
			Count(&officeCount).Error; err != nil {
			return fmt.Errorf("failed to count offices on floors: %w", err)
		}
		if officeCount > 0 {
			return errFloorsNotEmpty
		}

		if err := tx.Where("id IN ?", floorIDs).Delete(&models.Floor{}).Error; err != nil {
			return fmt.Errorf("failed to delete floors: %w", err)
		}

		if err := tx.Model(&building).
			Update("total_floors", gorm.Expr("total_floors - ?", count)).Error; err != nil {
			return fmt.Errorf("failed to decrement total floors: %w", err)
		}

		removed = len(floorIDs)
		return nil
	})

	if txErr != nil {
		return 0, txErr
	}
	return removed, nil
}

// AddFloors appends a batch of `count` floors above the current top floor,
// keeping floor numbers dense, and raises TotalFloors to cover them.
func (s *FloorService) AddFloors(buildingID uint, count int, grossArea, commonAreaPct float64) ([]models.Floor, error) {
	if count <= 0 {
		return nil, fmt.Errorf("validation: count must be positive")
	}
	if grossArea <= 0 {
		return nil, fmt.Errorf("validation: gross area must be positive")
	}
	if commonAreaPct < 0 || commonAreaPct >= 1 {
		return nil, fmt.Errorf("validation: common area pct must be in [0, 1)")
	}

	var created []models.Floor

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var building models.Building
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&building, buildingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBuildingNotFound
			}
			return fmt.Errorf("failed to load building: %w", err)
		}

		var topFloor int
		if err := tx.Model(&models.Floor{}).
			Where("building_id = ?", buildingID).
			Select("COALESCE(MAX(floor_number), 0)").
			Scan(&topFloor).Error; err != nil {
			return fmt.Errorf("failed to find top floor: %w", err)
		}

		for i := 1; i <= count; i++ {
			floor := models.Floor{
				BuildingID:    buildingID,
				FloorNumber:   topFloor + i,
				GrossArea:     grossArea,
				CommonAreaPct: commonAreaPct,
			}
			if err := tx.Create(&floor).Error; err != nil {
				return fmt.Errorf("failed to create floor %d: %w", topFloor+i, err)
			}
			created = append(created, floor)
		}

		newTotal := topFloor + count
		if newTotal > building.TotalFloors {
			if err := tx.Model(&building).Update("total_floors", newTotal).Error; err != nil {
				return fmt.Errorf("failed to update total floors: %w", err)
			}
		}
		return nil
	})

	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}
