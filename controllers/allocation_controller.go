// controllers/allocation_controller.go
package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"office-backend/models"
	"office-backend/services"
	"office-backend/utils"

	"github.com/gin-gonic/gin"
)

type AllocationController struct {
	AllocationSvc *services.AllocationService
}

func NewAllocationController(svc *services.AllocationService) *AllocationController {
	return &AllocationController{AllocationSvc: svc}
}

type AllocateExpensesPayload struct {
	BuildingID  uint                    `json:"building_id" binding:"required"`
	Period      string                  `json:"period" binding:"required"`
	TotalAmount float64                 `json:"total_amount" binding:"required"`
	Breakdown   models.ExpenseBreakdown `json:"breakdown"`
}

// AllocateExpenses handles POST /api/expenses/allocate.
func (ctrl *AllocationController) AllocateExpenses(c *gin.Context) {
	var payload AllocateExpensesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	result, err := ctrl.AllocationSvc.CalculateAndAllocate(
		payload.BuildingID,
		payload.Period,
		payload.TotalAmount,
		payload.Breakdown,
	)
	if err != nil {
		log.Printf("AllocateExpenses error for building %d period %s: %v", payload.BuildingID, payload.Period, err)

		switch {
		case strings.Contains(err.Error(), "validation"):
			utils.JSONFail(c, http.StatusBadRequest, "error.validation", err.Error())
		case strings.Contains(err.Error(), "already_allocated"):
			utils.JSONFail(c, http.StatusConflict, "error.alreadyAllocated", "expenses for this building and period are already allocated")
		case strings.Contains(err.Error(), "building_not_found"):
			utils.JSONFail(c, http.StatusNotFound, "error.buildingNotFound", "building not found")
		case strings.Contains(err.Error(), "no_usable_area"):
			utils.JSONFail(c, http.StatusUnprocessableEntity, "error.noUsableArea", "building has no registered office area")
		case strings.Contains(err.Error(), "no_occupied_offices"):
			utils.JSONFail(c, http.StatusUnprocessableEntity, "error.noOccupiedOffices", "building has no occupied offices to charge")
		default:
			utils.JSONFail(c, http.StatusInternalServerError, "error.internal", "failed to allocate expenses")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, result)
}

// GetChargeHistory handles GET /api/offices/:id/charges?limit=.
func (ctrl *AllocationController) GetChargeHistory(c *gin.Context) {
	officeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONFail(c, http.StatusBadRequest, "error.invalidOfficeId", "office id must be numeric")
		return
	}

	limit := 12
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := ctrl.AllocationSvc.GetChargeHistory(uint(officeID), limit)
	if err != nil {
		log.Printf("GetChargeHistory error for office %d: %v", officeID, err)
		utils.JSONFail(c, http.StatusInternalServerError, "error.internal", "failed to load charge history")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, records)
}
