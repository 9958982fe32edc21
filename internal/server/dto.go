package server

import "github.com/mmcdole/openview/internal/domain"

// listingResponse is the body of GET <dir>?action=info
type listingResponse struct {
	Name         string `json:"name"`
	RelativePath string `json:"relative_path"`

	Directories   []itemDTO `json:"directories"`
	Images        []itemDTO `json:"images"`
	NextPageToken *string   `json:"next_page_token"`
}

type itemDTO struct {
	Name         string `json:"name"`
	RelativePath string `json:"relative_path"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

// toListing maps the wire format to the domain. A null token and an empty
// token both end pagination.
func (r *listingResponse) toListing() *domain.Listing {
	listing := &domain.Listing{
		Directories: mapItems(r.Directories),
		Images:      mapItems(r.Images),
	}
	if r.NextPageToken != nil {
		listing.NextPageToken = domain.PageToken(*r.NextPageToken)
	}
	return listing
}

func mapItems(dtos []itemDTO) []domain.ListingItem {
	items := make([]domain.ListingItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, domain.ListingItem{
			Name:         d.Name,
			RelativePath: d.RelativePath,
			Width:        d.Width,
			Height:       d.Height,
		})
	}
	return items
}
