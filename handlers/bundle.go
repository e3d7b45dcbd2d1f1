package handlers

// HandlerBundle groups the endpoint handlers handed to the router. Optional
// features are left nil when their backing service is not configured.
type HandlerBundle struct {
	Plan     *PlanHandler
	Group    *GroupHandler
	Booking  *BookingHandler
	Search   *SearchHandler
	Profile  *ProfileHandler
	Verify   *VerifyHandler
	SMS      *SMSHandler
	Autonomy *AutonomyHandler
}
