package bidding

import "errors"

var (
	ErrListingNotFound = errors.New("Listing not found")
	ErrListingClosed   = errors.New("Listing is closed")
	ErrBidTooLow       = errors.New("Bid must exceed the current price")
	ErrInvalidBid      = errors.New("Invalid bid")
)
