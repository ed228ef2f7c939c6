package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"innkeeper-backend/services"
	"innkeeper-backend/utils"
)

type AvailabilityController struct {
	Availability *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{Availability: svc}
}

type availabilityRequest struct {
	RoomTypeID  uint   `json:"roomTypeId" binding:"required"`
	CheckIn     string `json:"checkIn" binding:"required"`
	CheckOut    string `json:"checkOut" binding:"required"`
	RoomsNeeded int    `json:"roomsNeeded" binding:"required"`
}

// CheckAvailability handles POST /api/availability. Read-only; the
// allocator re-checks under locks before committing.
func (ctrl *AvailabilityController) CheckAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := ctrl.Availability.Compute(req.RoomTypeID, checkIn, checkOut, req.RoomsNeeded)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := fmt.Sprintf("%d room(s) available", result.AvailableCount)
	if !result.Sufficient {
		message = fmt.Sprintf("only %d of %d requested room(s) available", result.AvailableCount, result.RoomsNeeded)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"available":      result.Sufficient,
		"availableRooms": result.AvailableCount,
		"roomsNeeded":    result.RoomsNeeded,
		"pricePerNight":  result.PricePerNight,
		"nights":         result.Nights,
		"totalPrice":     result.TotalPrice,
		"message":        message,
	})
}
