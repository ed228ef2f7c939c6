package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"innkeeper-backend/models"
	"innkeeper-backend/services"
	"innkeeper-backend/utils"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{Rooms: svc}
}

func roomIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return 0, false
	}
	return uint(id), true
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.Rooms.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoomByID(c *gin.Context) {
	id, ok := roomIDParam(c)
	if !ok {
		return
	}
	room, err := ctrl.Rooms.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	created, err := ctrl.Rooms.Create(room)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := roomIDParam(c)
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	room, err := ctrl.Rooms.Update(id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

type roomStatusRequest struct {
	CleaningStatus    *string `json:"cleaningStatus"`
	MaintenanceStatus *string `json:"maintenanceStatus"`
	OccupancyStatus   *string `json:"occupancyStatus"`
}

// UpdateRoomStatus handles PATCH /api/rooms/:id/status. Each staff role
// sends only its own axis; omitted axes are untouched.
func (ctrl *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, ok := roomIDParam(c)
	if !ok {
		return
	}
	var req roomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if req.CleaningStatus == nil && req.MaintenanceStatus == nil && req.OccupancyStatus == nil {
		utils.JSONError(c, http.StatusBadRequest, "at least one status field is required")
		return
	}

	room, err := ctrl.Rooms.UpdateStatus(id, services.StatusUpdate{
		Cleaning:    req.CleaningStatus,
		Maintenance: req.MaintenanceStatus,
		Occupancy:   req.OccupancyStatus,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := roomIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.Rooms.Retire(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"retired": id})
}
