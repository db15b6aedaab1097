package places

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/localguide/internal/common"
	"github.com/ternarybob/localguide/internal/httpclient"
	"github.com/ternarybob/localguide/internal/interfaces"
	"github.com/ternarybob/localguide/internal/models"
)

const (
	endpointTextSearch = "textsearch"
	endpointDetails    = "details"
	endpointPhoto      = "photo"

	// maxPhotoBytes caps a single image download
	maxPhotoBytes = 10 * 1024 * 1024
	// maxErrorBody caps how much of a failed response body is kept for the error
	maxErrorBody = 512
)

// detailsFields is the fixed field set requested for a place details lookup
var detailsFields = []string{
	"place_id", "name", "formatted_address", "rating", "user_ratings_total",
	"international_phone_number", "website", "opening_hours", "url", "review", "photo",
}

// Service implements interfaces.PlacesClient against the Google Places REST API
type Service struct {
	config     *common.PlacesAPIConfig
	logger     arbor.ILogger
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewService creates a new Places client
func NewService(config *common.PlacesAPIConfig, logger arbor.ILogger) *Service {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = common.DefaultPlacesBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Service{
		config:     config,
		logger:     logger,
		baseURL:    baseURL,
		timeout:    config.Timeout(),
		httpClient: httpclient.NewUpstreamClient(),
	}
}

// SearchByText performs a Google Places Text Search and returns place IDs in upstream order
func (s *Service) SearchByText(ctx context.Context, query, location string) ([]string, error) {
	params := url.Values{}
	params.Set("query", query)
	if location != "" {
		params.Set("location", location)
		params.Set("radius", strconv.Itoa(s.config.SearchRadius))
	}

	var apiResp TextSearchResponse
	if err := s.callPlacesAPI(ctx, endpointTextSearch, params, &apiResp); err != nil {
		return nil, err
	}

	placeIDs := make([]string, 0, len(apiResp.Results))
	for _, place := range apiResp.Results {
		if place.PlaceID != "" {
			placeIDs = append(placeIDs, place.PlaceID)
		}
	}

	s.logger.Info().
		Str("search_query", query).
		Bool("location_bias", location != "").
		Int("results_count", len(placeIDs)).
		Str("status", apiResp.Status).
		Msg("Google Places Text Search completed")

	return placeIDs, nil
}

// FetchDetails fetches the fixed detail field set for a single place.
// Returns nil, nil when upstream has no result for the ID.
func (s *Service) FetchDetails(ctx context.Context, placeID string) (*models.PlaceInfo, error) {
	details, err := s.fetchDetails(ctx, placeID, strings.Join(detailsFields, ","))
	if err != nil {
		return nil, err
	}
	if details == nil {
		s.logger.Debug().Str("place_id", placeID).Msg("No details returned for place")
		return nil, nil
	}

	return convertToPlaceInfo(placeID, details), nil
}

// FetchReviews fetches the reviews of a place in upstream order
func (s *Service) FetchReviews(ctx context.Context, placeID string) ([]models.PlaceReview, error) {
	details, err := s.fetchDetails(ctx, placeID, "review")
	if err != nil {
		return nil, err
	}

	reviews := []models.PlaceReview{}
	if details == nil {
		return reviews, nil
	}

	for _, r := range details.Reviews {
		review := models.PlaceReview{
			Author:                  "A user",
			Text:                    r.Text,
			RelativeTimeDescription: r.RelativeTimeDescription,
		}
		if r.AuthorName != nil {
			review.Author = *r.AuthorName
		}
		if r.Rating != nil {
			review.Rating = *r.Rating
		}
		reviews = append(reviews, review)
	}

	s.logger.Debug().
		Str("place_id", placeID).
		Int("review_count", len(reviews)).
		Msg("Fetched place reviews")

	return reviews, nil
}

// FetchPhotoDescriptors fetches photo references for a place, truncated to maxPhotos.
// Truncation happens before any filtering so no more than maxPhotos descriptors are considered.
func (s *Service) FetchPhotoDescriptors(ctx context.Context, placeID string, maxPhotos int) ([]models.PlacePhoto, error) {
	details, err := s.fetchDetails(ctx, placeID, "photo")
	if err != nil {
		return nil, err
	}

	photos := []models.PlacePhoto{}
	if details == nil {
		return photos, nil
	}

	candidates := details.Photos
	if maxPhotos >= 0 && len(candidates) > maxPhotos {
		candidates = candidates[:maxPhotos]
	}

	for _, photo := range candidates {
		if photo.PhotoReference == "" {
			continue
		}
		photos = append(photos, models.PlacePhoto{
			PhotoReference: photo.PhotoReference,
			ImageURL:       s.photoURL(photo.PhotoReference),
		})
	}

	s.logger.Debug().
		Str("place_id", placeID).
		Int("available", len(details.Photos)).
		Int("selected", len(photos)).
		Msg("Fetched photo descriptors")

	return photos, nil
}

// DownloadAndEncode downloads an image and returns it base64 encoded.
// The URL carries the API key, so neither it nor a *url.Error is ever surfaced.
func (s *Service) DownloadAndEncode(ctx context.Context, imageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", &UpstreamError{Endpoint: endpointPhoto, Detail: "invalid photo URL"}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Endpoint: endpointPhoto, Err: stripURL(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{Endpoint: endpointPhoto, StatusCode: resp.StatusCode}
	}

	imageBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes+1))
	if err != nil {
		return "", &UpstreamError{Endpoint: endpointPhoto, StatusCode: resp.StatusCode, Err: stripURL(err)}
	}
	if len(imageBytes) > maxPhotoBytes {
		return "", &UpstreamError{Endpoint: endpointPhoto, StatusCode: resp.StatusCode, Detail: "image exceeds size limit"}
	}

	return base64.StdEncoding.EncodeToString(imageBytes), nil
}

// fetchDetails calls the details endpoint and returns nil when upstream has no result
func (s *Service) fetchDetails(ctx context.Context, placeID, fields string) (*PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", fields)

	var apiResp DetailsResponse
	if err := s.callPlacesAPI(ctx, endpointDetails, params, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Result == nil || apiResp.Result.empty() {
		return nil, nil
	}
	return apiResp.Result, nil
}

// photoURL builds the fully-qualified photo endpoint URL for a reference
func (s *Service) photoURL(photoReference string) string {
	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(s.config.PhotoMaxWidth))
	params.Set("photoreference", photoReference)
	params.Set("key", s.config.APIKey)
	return fmt.Sprintf("%s%s?%s", s.baseURL, endpointPhoto, params.Encode())
}

// statusCarrier is implemented by every response type through the embedded apiStatus
type statusCarrier interface {
	status() apiStatus
}

func (a apiStatus) status() apiStatus { return a }

// callPlacesAPI performs one GET against <base><endpoint>/json with the API key injected
// and decodes the body into out. Each call carries its own timeout.
func (s *Service) callPlacesAPI(ctx context.Context, endpoint string, params url.Values, out statusCarrier) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Redact API key in logs
	s.logger.Debug().
		Str("endpoint", endpoint).
		Str("params", params.Encode()).
		Msg("Calling Google Places API")

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("key", s.config.APIKey)
	fullURL := fmt.Sprintf("%s%s/json?%s", s.baseURL, endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return &UpstreamError{Endpoint: endpoint, Detail: "invalid request URL"}
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Endpoint: endpoint, Err: stripURL(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &UpstreamError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Detail:     s.redact(strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to decode API response: %w", stripURL(err)),
		}
	}

	if st := out.status(); st.failed() {
		return &UpstreamError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     st.Status,
			Detail:     s.redact(st.ErrorMessage),
		}
	}

	s.logger.Debug().
		Str("endpoint", endpoint).
		Int("http_status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Google Places API call completed")

	return nil
}

// redact removes the API key from any upstream-provided text
func (s *Service) redact(text string) string {
	if s.config.APIKey == "" {
		return text
	}
	return strings.ReplaceAll(text, s.config.APIKey, "***REDACTED***")
}

// convertToPlaceInfo converts a details result to a PlaceInfo, applying placeholders for
// missing fields
func convertToPlaceInfo(requestedID string, d *PlaceDetails) *models.PlaceInfo {
	info := &models.PlaceInfo{
		PlaceID:      d.PlaceID,
		Name:         "N/A",
		Address:      d.FormattedAddress,
		Rating:       d.Rating,
		TotalRatings: d.UserRatingsTotal,
		PhoneNumber:  d.InternationalPhoneNumber,
		Website:      d.Website,
	}

	if info.PlaceID == "" {
		info.PlaceID = requestedID
	}
	if d.Name != nil {
		info.Name = *d.Name
	}
	if d.OpeningHours != nil {
		info.OpenNow = d.OpeningHours.OpenNow
	}
	if d.URL != nil {
		info.MapsURL = *d.URL
	}

	return info
}

var (
	_ statusCarrier = (*TextSearchResponse)(nil)
	_ statusCarrier = (*DetailsResponse)(nil)

	_ interfaces.PlacesClient = (*Service)(nil)
)

