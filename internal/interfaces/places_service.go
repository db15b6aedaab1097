package interfaces

import (
	"context"

	"github.com/ternarybob/localguide/internal/models"
)

// PlacesClient defines the upstream Google Places API operations used by the tools.
// Every method is a single upstream request; none of them retries.
type PlacesClient interface {
	// SearchByText returns place IDs in upstream relevance order. An empty location disables
	// location bias. No matches yields an empty slice, not an error.
	SearchByText(ctx context.Context, query, location string) ([]string, error)

	// FetchDetails returns nil, nil when upstream has no result for the ID.
	FetchDetails(ctx context.Context, placeID string) (*models.PlaceInfo, error)

	// FetchReviews returns an empty slice when the place has no reviews.
	FetchReviews(ctx context.Context, placeID string) ([]models.PlaceReview, error)

	// FetchPhotoDescriptors returns at most maxPhotos descriptors. Nothing is downloaded.
	FetchPhotoDescriptors(ctx context.Context, placeID string, maxPhotos int) ([]models.PlacePhoto, error)

	// DownloadAndEncode fetches raw image bytes and returns them base64 encoded.
	// Callers treat failure as skippable.
	DownloadAndEncode(ctx context.Context, imageURL string) (string, error)
}
