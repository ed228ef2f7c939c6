package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"innkeeper-backend/services"
	"innkeeper-backend/utils"
)

// respondServiceError converts an expected service error into the HTTP
// taxonomy: not-found to 404, validation and business-rule conflicts to
// 400, everything unexpected to a generic 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRoomTypeNotFound),
		errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrClientNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrCheckInPast),
		errors.Is(err, services.ErrInvalidRoomCount),
		errors.Is(err, services.ErrRoomTypeInactive),
		errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrNotEnoughRooms),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrNotCancellable),
		errors.Is(err, services.ErrDeleteNotAllowed),
		errors.Is(err, services.ErrRoomInUse),
		errors.Is(err, services.ErrDuplicateRoomNumber),
		errors.Is(err, services.ErrDuplicateRoomType),
		errors.Is(err, services.ErrDuplicateAccount):
		utils.JSONError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrBadCredentials):
		utils.JSONError(c, http.StatusUnauthorized, err.Error())

	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}
