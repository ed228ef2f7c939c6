package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"innkeeper-backend/models"
	"innkeeper-backend/services"
	"innkeeper-backend/utils"
)

type RoomTypeController struct {
	RoomTypes *services.RoomTypeService
}

func NewRoomTypeController(svc *services.RoomTypeService) *RoomTypeController {
	return &RoomTypeController{RoomTypes: svc}
}

func roomTypeIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid room type id")
		return 0, false
	}
	return uint(id), true
}

func (ctrl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	list, err := ctrl.RoomTypes.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *RoomTypeController) GetRoomTypeByID(c *gin.Context) {
	id, ok := roomTypeIDParam(c)
	if !ok {
		return
	}
	rt, err := ctrl.RoomTypes.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctrl *RoomTypeController) CreateRoomType(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	created, err := ctrl.RoomTypes.Create(rt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (ctrl *RoomTypeController) UpdateRoomType(c *gin.Context) {
	id, ok := roomTypeIDParam(c)
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	rt, err := ctrl.RoomTypes.Update(id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctrl *RoomTypeController) DeleteRoomType(c *gin.Context) {
	id, ok := roomTypeIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.RoomTypes.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
