package handlers

import (
	"net/http"

	"slate/models"
	"slate/services/availability"
	"slate/services/booking"
	"slate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Booking booking.DirectBookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.DirectBookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Booking: svc, Logger: logger}
}

type bookRequest struct {
	RestaurantID   string  `json:"restaurantId"`
	RestaurantName string  `json:"restaurantName"`
	Location       string  `json:"location"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	PartySize      int     `json:"partySize"`
	Rating         float64 `json:"rating,omitempty"`
	ReviewCount    int     `json:"reviewCount,omitempty"`
	Price          string  `json:"price,omitempty"`
}

// BookHandler checks a single slot and books it when it is open.
func (h *BookingHandler) BookHandler(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.RestaurantName == "" || req.Location == "" || req.Date == "" || req.Time == "" || req.PartySize < 1 {
		utils.JSONError(c, http.StatusBadRequest, "All booking details required", "")
		return
	}
	id := req.RestaurantID
	if id == "" {
		id = req.RestaurantName
	}
	slot := availability.SlotRequest{
		Restaurant: models.Restaurant{
			ID:          id,
			Name:        req.RestaurantName,
			Rating:      req.Rating,
			ReviewCount: req.ReviewCount,
			PriceLevel:  req.Price,
		},
		Location:  req.Location,
		Date:      req.Date,
		Time:      req.Time,
		PartySize: req.PartySize,
	}

	result, err := h.Booking.Book(c.Request.Context(), slot)
	if err != nil {
		h.Logger.Error("Booking error", zap.String("restaurant", req.RestaurantName), zap.Error(err))
		respondError(c, err, "Booking failed")
		return
	}
	c.JSON(http.StatusOK, result)
}
