// controllers/floor_controller.go
package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"office-backend/services"
	"office-backend/utils"

	"github.com/gin-gonic/gin"
)

type FloorController struct {
	FloorSvc     *services.FloorService
	DirectorySvc *services.DirectoryService
}

func NewFloorController(floorSvc *services.FloorService, directorySvc *services.DirectoryService) *FloorController {
	return &FloorController{FloorSvc: floorSvc, DirectorySvc: directorySvc}
}

type RemoveFloorsPayload struct {
	Count int `json:"count" binding:"required"`
}

type AddFloorsPayload struct {
	Count         int     `json:"count" binding:"required"`
	GrossArea     float64 `json:"gross_area" binding:"required"`
	CommonAreaPct float64 `json:"common_area_pct"`
}

func buildingIDParam(c *gin.Context) (uint, bool) {
	parsed, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "error.invalidBuildingId", "building id must be numeric")
		return 0, false
	}
	return uint(parsed), true
}

// RemoveFloors handles POST /api/buildings/:id/floors/remove.
func (ctrl *FloorController) RemoveFloors(c *gin.Context) {
	buildingID, ok := buildingIDParam(c)
	if !ok {
		return
	}

	var payload RemoveFloorsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	removed, err := ctrl.FloorSvc.RemoveFloors(buildingID, payload.Count)
	if err != nil {
		log.Printf("RemoveFloors error (building=%d count=%d): %v", buildingID, payload.Count, err)

		switch {
		case strings.Contains(err.Error(), "validation"):
			utils.JSONFail(c, http.StatusBadRequest, "error.validation", err.Error())
		case strings.Contains(err.Error(), "building_not_found"):
			utils.JSONFail(c, http.StatusNotFound, "error.buildingNotFound", "building not found")
		case strings.Contains(err.Error(), "floors_not_empty"):
			utils.JSONFail(c, http.StatusConflict, "error.floorsNotEmpty", "selected floors still have offices; nothing was removed")
		default:
			utils.JSONFail(c, http.StatusInternalServerError, "error.internal", "failed to remove floors")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"removedCount": removed})
}

// AddFloors handles POST /api/buildings/:id/floors.
func (ctrl *FloorController) AddFloors(c *gin.Context) {
	buildingID, ok := buildingIDParam(c)
	if !ok {
		return
	}

	var payload AddFloorsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	floors, err := ctrl.FloorSvc.AddFloors(buildingID, payload.Count, payload.GrossArea, payload.CommonAreaPct)
	if err != nil {
		log.Printf("AddFloors error (building=%d count=%d): %v", buildingID, payload.Count, err)

		switch {
		case strings.Contains(err.Error(), "validation"):
			utils.JSONFail(c, http.StatusBadRequest, "error.validation", err.Error())
		case strings.Contains(err.Error(), "building_not_found"):
			utils.JSONFail(c, http.StatusNotFound, "error.buildingNotFound", "building not found")
		default:
			utils.JSONFail(c, http.StatusInternalServerError, "error.internal", "failed to add floors")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, floors)
}

// GetFloors handles GET /api/buildings/:id/floors.
func (ctrl *FloorController) GetFloors(c *gin.Context) {
	buildingID, ok := buildingIDParam(c)
	if !ok {
		return
	}

	floors, err := ctrl.DirectorySvc.ListFloors(buildingID)
	if err != nil {
		log.Printf("GetFloors error (building=%d): %v", buildingID, err)
		utils.JSONFail(c, http.StatusInternalServerError, "error.internal", "failed to load floors")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, floors)
}

// GetOffices handles GET /api/buildings/:id/offices.
func (ctrl *FloorController) GetOffices(c *gin.Context) {
	buildingID, ok := buildingIDParam(c)
	if !ok {
		return
	}

	offices, err := ctrl.DirectorySvc.ListOfficesByBuilding(buildingID)
	if err != nil {
		log.Printf("GetOffices error (building=%d): %v", buildingID, err)
		utils.JSONFail(c, http.StatusInternalServerError, "error.internal", "failed to load offices")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, offices)
}
