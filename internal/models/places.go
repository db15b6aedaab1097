package models

// ImageMIMEType is the MIME type attached to every encoded place photo
const ImageMIMEType = "image/jpeg"

// PlaceInfo represents an individual place resolved from a Google Places details lookup.
// Optional fields are pointers so that "unknown" serializes as null rather than a zero value.
type PlaceInfo struct {
	PlaceID      string   `json:"place_id"`
	Name         string   `json:"name"`
	Address      *string  `json:"address"`
	Rating       *float64 `json:"rating"` // Provider scale, typically 1-5
	TotalRatings *int     `json:"total_ratings"`
	PhoneNumber  *string  `json:"phone_number"`
	Website      *string  `json:"website"`
	OpenNow      *bool    `json:"open_now"` // nil when opening hours are unknown
	MapsURL      string   `json:"maps_url"` // Empty when upstream has no canonical URL
}

// PlaceReview represents a single user review, in upstream order
type PlaceReview struct {
	Author                  string  `json:"author"`
	Rating                  float64 `json:"rating"` // Passed through unvalidated
	Text                    string  `json:"text"`
	RelativeTimeDescription string  `json:"relative_time_description"`
}

// PlacePhoto is a photo descriptor. ImageURL embeds the API key and is never serialized.
type PlacePhoto struct {
	PhotoReference string `json:"photo_reference"`
	ImageURL       string `json:"-"`
}

// EncodedImage is a downloaded photo as base64 text
type EncodedImage struct {
	Data     string `json:"data"`
	MIMEType string `json:"mime_type"`
}

// NearbyPlaces is the find_nearby_places payload
type NearbyPlaces struct {
	Places []PlaceInfo `json:"places"`
}

// PlaceReviews is the get_place_reviews payload
type PlaceReviews struct {
	Reviews []PlaceReview `json:"reviews"`
}

// PlacePhotos is the get_place_photos payload: one caption followed by at least one image
type PlacePhotos struct {
	Caption string         `json:"caption"`
	Images  []EncodedImage `json:"images"`
}
