package constants

// Listing event types (ListingEvents.event_type).
const (
	EventCreated   = "CREATED"
	EventBidPlaced = "BID_PLACED"
	EventClosed    = "CLOSED"
)
