package domain

import "context"

// ListingRepository fetches directory listing pages (implemented by the server client)
type ListingRepository interface {
	// GetListing fetches one page from a fully built directory info URL
	GetListing(ctx context.Context, infoURL string) (*Listing, error)
}
