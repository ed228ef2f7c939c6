package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"innkeeper-backend/middleware"
	"innkeeper-backend/services"
	"innkeeper-backend/utils"
)

type BookingController struct {
	Bookings *services.BookingService
	Clients  *services.ClientService
}

func NewBookingController(bookings *services.BookingService, clients *services.ClientService) *BookingController {
	return &BookingController{Bookings: bookings, Clients: clients}
}

type createBookingRequest struct {
	RoomTypeID      uint           `json:"roomTypeId" binding:"required"`
	CheckIn         string         `json:"checkIn" binding:"required"`
	CheckOut        string         `json:"checkOut" binding:"required"`
	Adults          int            `json:"adults"`
	Children        int            `json:"children"`
	RoomsBooked     int            `json:"roomsBooked" binding:"required"`
	TotalPrice      float64        `json:"totalPrice"`
	SpecialRequests datatypes.JSON `json:"specialRequests,omitempty"`
	RequirePayment  bool           `json:"requirePayment"`
}

type manualBookingRequest struct {
	createBookingRequest
	ClientData     services.ClientData `json:"clientData" binding:"required"`
	PaymentMethod  string              `json:"paymentMethod"`
	PaymentStatus  string              `json:"paymentStatus"`
	AdvancePayment float64             `json:"advancePayment"`
}

type statusUpdateRequest struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

func (r *createBookingRequest) toInput() (services.BookingInput, error) {
	checkIn, err := utils.ParseDate(r.CheckIn)
	if err != nil {
		return services.BookingInput{}, err
	}
	checkOut, err := utils.ParseDate(r.CheckOut)
	if err != nil {
		return services.BookingInput{}, err
	}
	return services.BookingInput{
		RoomTypeID:      r.RoomTypeID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          r.Adults,
		Children:        r.Children,
		RoomsBooked:     r.RoomsBooked,
		QuotedTotal:     r.TotalPrice,
		SpecialRequests: r.SpecialRequests,
		RequirePayment:  r.RequirePayment,
	}, nil
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return 0, false
	}
	return uint(id), true
}

// CreateBooking handles POST /api/bookings for an authenticated guest.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	clientID, ok := middleware.SubjectID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "missing identity")
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	booking, session, err := ctrl.Bookings.Create(clientID, input, services.BookingOptions{
		ReferencePrefix: utils.GuestBookingPrefix,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{"success": true, "booking": booking}
	if session != nil {
		resp["payment"] = session
	}
	c.JSON(http.StatusCreated, resp)
}

// CreateManualBooking handles POST /api/bookings/manual for staff. The
// guest is looked up or lazily created from the supplied contact details.
func (ctrl *BookingController) CreateManualBooking(c *gin.Context) {
	var req manualBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	client, err := ctrl.Clients.ResolveOrCreate(req.ClientData)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	booking, session, err := ctrl.Bookings.Create(client.ID, input, services.BookingOptions{
		ReferencePrefix: utils.StaffBookingPrefix,
		PaymentStatus:   req.PaymentStatus,
		PaymentMethod:   req.PaymentMethod,
		AdvancePayment:  req.AdvancePayment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{"success": true, "booking": booking}
	if session != nil {
		resp["payment"] = session
	}
	c.JSON(http.StatusCreated, resp)
}

// GetBookings handles GET /api/bookings (staff).
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	list, err := ctrl.Bookings.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GetBookingByID handles GET /api/bookings/:id (staff).
func (ctrl *BookingController) GetBookingByID(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// UpdateStatus handles PUT /api/bookings/:id/status (staff). Either field
// may be omitted; payment updates are idempotent.
func (ctrl *BookingController) UpdateStatus(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if req.Status == "" && req.PaymentStatus == "" {
		utils.JSONError(c, http.StatusBadRequest, "status or paymentStatus is required")
		return
	}

	booking, err := ctrl.Bookings.UpdateStatus(id, req.Status, req.PaymentStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CancelBooking handles PUT /api/bookings/:id/cancel for the owning guest.
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	clientID, ok := middleware.SubjectID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "missing identity")
		return
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.Bookings.Cancel(id, clientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// DeleteBooking handles DELETE /api/bookings/:id (staff).
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.Bookings.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
