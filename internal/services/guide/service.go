// Package guide sequences Places API calls for the local guide tools.
//
// Each tool follows Receive -> Fetch -> [Fetch...] -> Filter -> Respond | Fail.
// Failures come back as errors: *NotFoundError when upstream answered but nothing usable
// remained, or the client's upstream error unchanged. Only photo downloads degrade silently.
package guide

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/localguide/internal/interfaces"
	"github.com/ternarybob/localguide/internal/models"
	"golang.org/x/sync/errgroup"
)

// Default tool limits
const (
	DefaultMaxResults = 3
	DefaultMaxPhotos  = 1
)

// Service implements the three local guide tools on top of a PlacesClient
type Service struct {
	client interfaces.PlacesClient
	logger arbor.ILogger
}

// NewService creates a new guide service
func NewService(client interfaces.PlacesClient, logger arbor.ILogger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// FindNearbyPlaces searches by text and returns details for up to maxResults hits, in search
// order. Detail lookups run concurrently; absent details are dropped.
func (s *Service) FindNearbyPlaces(ctx context.Context, query, location string, maxResults int) (*models.NearbyPlaces, error) {
	start := time.Now()

	placeIDs, err := s.client.SearchByText(ctx, query, location)
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}
	if len(placeIDs) == 0 {
		return nil, notFound(MsgNoPlacesMatched)
	}

	if maxResults < 0 {
		maxResults = 0
	}
	if len(placeIDs) > maxResults {
		placeIDs = placeIDs[:maxResults]
	}

	// Slots are indexed by search position so completion order cannot reorder results
	details := make([]*models.PlaceInfo, len(placeIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, placeID := range placeIDs {
		g.Go(func() error {
			info, err := s.client.FetchDetails(gctx, placeID)
			if err != nil {
				return fmt.Errorf("details for %s: %w", placeID, err)
			}
			details[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	places := make([]models.PlaceInfo, 0, len(details))
	for _, info := range details {
		if info != nil {
			places = append(places, *info)
		}
	}
	if len(places) == 0 {
		return nil, notFound(MsgNoPlaceDetails)
	}

	s.logger.Info().
		Int("searched", len(placeIDs)).
		Int("returned", len(places)).
		Dur("duration", time.Since(start)).
		Msg("find_nearby_places completed")

	return &models.NearbyPlaces{Places: places}, nil
}

// GetPlaceReviews returns every upstream review for a place
func (s *Service) GetPlaceReviews(ctx context.Context, placeID string) (*models.PlaceReviews, error) {
	reviews, err := s.client.FetchReviews(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("reviews for %s: %w", placeID, err)
	}
	if len(reviews) == 0 {
		return nil, notFound(MsgNoReviews)
	}

	return &models.PlaceReviews{Reviews: reviews}, nil
}

// GetPlacePhotos downloads up to maxPhotos photos of a place. Individual download failures
// are skipped; the call fails only when no image could be downloaded.
func (s *Service) GetPlacePhotos(ctx context.Context, placeID, placeName string, maxPhotos int) (*models.PlacePhotos, error) {
	photos, err := s.client.FetchPhotoDescriptors(ctx, placeID, maxPhotos)
	if err != nil {
		return nil, fmt.Errorf("photos for %s: %w", placeID, err)
	}
	if len(photos) == 0 {
		return nil, notFound(MsgNoPhotos)
	}
	if maxPhotos >= 0 && len(photos) > maxPhotos {
		photos = photos[:maxPhotos]
	}

	encoded := make([]string, len(photos))
	downloaded := make([]bool, len(photos))
	var g errgroup.Group
	for i, photo := range photos {
		g.Go(func() error {
			data, err := s.client.DownloadAndEncode(ctx, photo.ImageURL)
			if err != nil {
				// URL embeds the API key: log the reference only
				s.logger.Warn().
					Err(err).
					Str("place_id", placeID).
					Str("photo_reference", photo.PhotoReference).
					Msg("Failed to download photo, skipping")
				return nil
			}
			if data == "" {
				s.logger.Warn().
					Str("place_id", placeID).
					Str("photo_reference", photo.PhotoReference).
					Msg("Downloaded photo is empty, skipping")
				return nil
			}
			encoded[i] = data
			downloaded[i] = true
			return nil
		})
	}
	_ = g.Wait()

	images := make([]models.EncodedImage, 0, len(encoded))
	for i, data := range encoded {
		if downloaded[i] {
			images = append(images, models.EncodedImage{Data: data, MIMEType: models.ImageMIMEType})
		}
	}
	if len(images) == 0 {
		return nil, notFound(MsgPhotoDownloadsFailed)
	}

	s.logger.Info().
		Str("place_id", placeID).
		Int("requested", len(photos)).
		Int("downloaded", len(images)).
		Msg("get_place_photos completed")

	return &models.PlacePhotos{
		Caption: fmt.Sprintf("Here is a photo of %s:", placeName),
		Images:  images,
	}, nil
}
