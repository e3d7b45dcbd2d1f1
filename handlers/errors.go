package handlers

import (
	"errors"
	"net/http"

	planRepo "slate/database/repository/plan"
	"slate/services/autonomy"
	"slate/services/booking"
	"slate/services/group"
	"slate/services/user"
	"slate/services/verification"
	"slate/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		sessionErr  *group.SessionError
		verifyErr   *verification.VerificationError
		userErr     *user.UserError
		autonomyErr *autonomy.AutonomyError
		bookingErr  *booking.BookingError
	)
	switch {
	case errors.Is(err, planRepo.ErrPlanNotFound):
		return http.StatusNotFound
	case errors.As(err, &sessionErr):
		switch sessionErr.Code {
		case group.CodeInvalid:
			return http.StatusBadRequest
		case group.CodeNotFound:
			return http.StatusNotFound
		default:
			return http.StatusConflict
		}
	case errors.As(err, &verifyErr):
		return http.StatusBadRequest
	case errors.As(err, &userErr):
		if userErr.Code == "notFound" {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case errors.As(err, &autonomyErr):
		if autonomyErr.Code == autonomy.CodeNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case errors.As(err, &bookingErr):
		if bookingErr.Code == booking.CodeInvalidRequest {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes err with its mapped status. Internal errors are not
// echoed to the client.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		utils.JSONError(c, status, fallback, "")
		return
	}
	utils.JSONError(c, status, publicMessage(err), "")
}

func publicMessage(err error) string {
	var (
		sessionErr  *group.SessionError
		verifyErr   *verification.VerificationError
		userErr     *user.UserError
		autonomyErr *autonomy.AutonomyError
		bookingErr  *booking.BookingError
	)
	switch {
	case errors.As(err, &sessionErr):
		return sessionErr.Message
	case errors.As(err, &verifyErr):
		return verifyErr.Message
	case errors.As(err, &userErr):
		return userErr.Message
	case errors.As(err, &autonomyErr):
		return autonomyErr.Message
	case errors.As(err, &bookingErr):
		return bookingErr.Message
	}
	return err.Error()
}
