// Package pricing derives a listing's current price and leading bidder
// from its bid history. The quote is recomputed on every read and never
// stored: any new bid invalidates it.
package pricing

import (
	"gavel-backend/internal/domain"

	"github.com/google/uuid"
)

// Quote is the resolved state of a listing's auction.
type Quote struct {
	CurrentPrice    float64    `json:"current_price"`
	LeadingBidderID *uuid.UUID `json:"leading_bidder_id"`
}

// Resolve computes the quote for a listing over its bid collection.
// The highest amount wins; if several bids share the highest amount the
// earliest-created one leads. The validator's strict-inequality rule makes
// amount ties impossible in practice, but the resolver still handles them
// deterministically. With no bids the current price is the initial price
// and there is no leader.
func Resolve(listing domain.Listing, bids []domain.Bid) Quote {
	if len(bids) == 0 {
		return Quote{CurrentPrice: listing.InitialPrice}
	}

	leading := bids[0]
	for _, b := range bids[1:] {
		if b.Amount > leading.Amount {
			leading = b
			continue
		}
		if b.Amount == leading.Amount && b.CreatedAt.Before(leading.CreatedAt) {
			leading = b
		}
	}

	bidder := leading.BidderID
	return Quote{CurrentPrice: leading.Amount, LeadingBidderID: &bidder}
}
