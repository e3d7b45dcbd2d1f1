package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"slate/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func registered(r *gin.Engine) map[string]bool {
	out := map[string]bool{}
	for _, ri := range r.Routes() {
		out[ri.Method+" "+ri.Path] = true
	}
	return out
}

func TestRegisterRoutesSkipsOptionalGroups(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		Plan:    &handlers.PlanHandler{},
		Group:   &handlers.GroupHandler{},
		Booking: &handlers.BookingHandler{},
		Search:  &handlers.SearchHandler{},
		Profile: &handlers.ProfileHandler{},
	})
	got := registered(r)

	for _, want := range []string{
		"GET /health",
		"POST /api/plan",
		"POST /api/plan/stream",
		"GET /api/plan/:planId",
		"GET /api/plans",
		"POST /api/book",
		"GET /api/search",
		"POST /api/group/create",
		"GET /api/group/:sessionId",
		"POST /api/group/:sessionId/join",
		"PUT /api/group/:sessionId/constraints",
		"POST /api/group/:sessionId/solve",
		"POST /api/group/:sessionId/book",
		"POST /api/group/:sessionId/invite",
		"GET /api/vibe/profile",
		"POST /api/vibe/profile",
		"GET /api/vibe/photos",
		"POST /api/vibe/extract",
	} {
		assert.True(t, got[want], want)
	}
	assert.False(t, got["POST /api/verify/send"])
	assert.False(t, got["GET /api/cron/autonomy"])
}

func TestRegisterRoutesWithMessagingAndAutonomy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		Plan:     &handlers.PlanHandler{},
		Group:    &handlers.GroupHandler{},
		Booking:  &handlers.BookingHandler{},
		Search:   &handlers.SearchHandler{},
		Profile:  &handlers.ProfileHandler{},
		Verify:   &handlers.VerifyHandler{},
		SMS:      &handlers.SMSHandler{},
		Autonomy: &handlers.AutonomyHandler{},
	})
	got := registered(r)
	for _, want := range []string{
		"POST /api/verify/send",
		"POST /api/verify/check",
		"POST /api/sms/inbound",
		"POST /api/sms/send",
		"GET /api/autonomy/config",
		"POST /api/autonomy/config",
		"POST /api/autonomy/run/:userId",
		"GET /api/cron/autonomy",
	} {
		assert.True(t, got[want], want)
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		Plan: &handlers.PlanHandler{}, Group: &handlers.GroupHandler{}, Booking: &handlers.BookingHandler{},
		Search: &handlers.SearchHandler{}, Profile: &handlers.ProfileHandler{},
	})
	req := httptest.NewRequest(http.MethodOptions, "/api/plan", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
