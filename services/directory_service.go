// services/directory_service.go
package services

import (
	"errors"
	"fmt"

	"office-backend/models"

	"gorm.io/gorm"
)

// DirectoryService is the office/floor directory the billing and reservation
// services read from. It never mutates occupancy; floor rows are only touched
// by FloorService.
type DirectoryService struct {
	DB *gorm.DB
}

func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{DB: db}
}

// ListOfficesByBuilding returns every office of the building, regardless of
// occupancy state.
func (s *DirectoryService) ListOfficesByBuilding(buildingID uint) ([]models.Office, error) {
	var offices []models.Office
	err := s.DB.
		Joins("JOIN floors ON floors.id = offices.floor_id").
		Where("floors.building_id = ?", buildingID).
		Order("offices.code ASC").
		Find(&offices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}
	return offices, nil
}

func (s *DirectoryService) ListFloors(buildingID uint) ([]models.Floor, error) {
	var floors []models.Floor
	err := s.DB.
		Where("building_id = ?", buildingID).
		Order("floor_number ASC").
		Find(&floors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list floors: %w", err)
	}
	return floors, nil
}

// OfficeForTenant resolves the office currently assigned to a tenant user.
// Returns nil when the tenant has no office.
func (s *DirectoryService) OfficeForTenant(tenantUserID uint) (*models.Office, error) {
	var office models.Office
	err := s.DB.
		Where("tenant_user_id = ? AND occupancy_state = ?", tenantUserID, models.OfficeOccupied).
		First(&office).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve tenant office: %w", err)
	}
	return &office, nil
}
