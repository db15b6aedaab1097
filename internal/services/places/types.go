package places

// apiStatus is the status envelope shared by every Places JSON response
type apiStatus struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// failed reports whether the status signals a broken upstream rather than an empty answer.
// ZERO_RESULTS, NOT_FOUND and INVALID_REQUEST fall through to the result-based handling.
func (a apiStatus) failed() bool {
	switch a.Status {
	case "REQUEST_DENIED", "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT", "UNKNOWN_ERROR":
		return true
	default:
		return false
	}
}

// TextSearchResponse represents the Google Places Text Search API response
type TextSearchResponse struct {
	apiStatus
	HTMLAttributions []string           `json:"html_attributions"`
	Results          []TextSearchResult `json:"results"`
	NextPageToken    string             `json:"next_page_token,omitempty"`
}

// TextSearchResult is the subset of a search hit that the tools read
type TextSearchResult struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
}

// DetailsResponse represents the Google Places Details API response
type DetailsResponse struct {
	apiStatus
	HTMLAttributions []string      `json:"html_attributions"`
	Result           *PlaceDetails `json:"result,omitempty"`
}

// PlaceDetails represents the requested detail fields of a place.
// Pointers distinguish "absent upstream" from zero values.
type PlaceDetails struct {
	PlaceID                  string        `json:"place_id"`
	Name                     *string       `json:"name,omitempty"`
	FormattedAddress         *string       `json:"formatted_address,omitempty"`
	Rating                   *float64      `json:"rating,omitempty"`
	UserRatingsTotal         *int          `json:"user_ratings_total,omitempty"`
	InternationalPhoneNumber *string       `json:"international_phone_number,omitempty"`
	Website                  *string       `json:"website,omitempty"`
	OpeningHours             *OpeningHours `json:"opening_hours,omitempty"`
	URL                      *string       `json:"url,omitempty"`
	Reviews                  []Review      `json:"reviews,omitempty"`
	Photos                   []Photo       `json:"photos,omitempty"`
}

// empty reports whether upstream returned a result object with none of the requested fields
func (d *PlaceDetails) empty() bool {
	return d.PlaceID == "" &&
		d.Name == nil &&
		d.FormattedAddress == nil &&
		d.Rating == nil &&
		d.UserRatingsTotal == nil &&
		d.InternationalPhoneNumber == nil &&
		d.Website == nil &&
		d.OpeningHours == nil &&
		d.URL == nil &&
		len(d.Reviews) == 0 &&
		len(d.Photos) == 0
}

// OpeningHours represents the opening hours of a place
type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// Review represents a single user review in a details response
type Review struct {
	AuthorName              *string  `json:"author_name,omitempty"`
	Rating                  *float64 `json:"rating,omitempty"`
	Text                    string   `json:"text"`
	RelativeTimeDescription string   `json:"relative_time_description"`
	Time                    int64    `json:"time,omitempty"`
}

// Photo represents a place photo reference
type Photo struct {
	Height           int      `json:"height"`
	HTMLAttributions []string `json:"html_attributions"`
	PhotoReference   string   `json:"photo_reference"`
	Width            int      `json:"width"`
}
