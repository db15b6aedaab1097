package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/localguide/internal/services/guide"
)

// FindNearbyPlacesInput is the validated argument set of find_nearby_places
type FindNearbyPlacesInput struct {
	Query      string      `json:"query" validate:"required"`
	Location   string      `json:"location,omitempty" validate:"omitempty,latlong"`
	MaxResults WholeNumber `json:"max_results" validate:"min=1,max=20"`
}

// GetPlaceReviewsInput is the validated argument set of get_place_reviews
type GetPlaceReviewsInput struct {
	PlaceID string `json:"place_id" validate:"required"`
}

// GetPlacePhotosInput is the validated argument set of get_place_photos
type GetPlacePhotosInput struct {
	PlaceID   string      `json:"place_id" validate:"required"`
	PlaceName string      `json:"place_name" validate:"required"`
	MaxPhotos WholeNumber `json:"max_photos" validate:"min=1,max=10"`
}

// WholeNumber is an integer argument that also accepts integral JSON floats such as 2.0
type WholeNumber int

// UnmarshalJSON rejects fractional values. null leaves the current value in place.
func (n *WholeNumber) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("expected a number, got %s", string(data))
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("expected a whole number, got %s", string(data))
	}
	*n = WholeNumber(f)
	return nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validateLatLong checks a "latitude,longitude" pair
func validateLatLong(fl validator.FieldLevel) bool {
	lat, lng, found := strings.Cut(fl.Field().String(), ",")
	if !found {
		return false
	}
	lat, lng = strings.TrimSpace(lat), strings.TrimSpace(lng)
	return validate.Var(lat, "required,latitude") == nil &&
		validate.Var(lng, "required,longitude") == nil
}

// inputValidator returns the shared validator, reporting fields by their JSON names
func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := validate.RegisterValidation("latlong", validateLatLong); err != nil {
			panic(fmt.Sprintf("failed to register latlong validation: %v", err))
		}
	})
	return validate
}

// decodeArguments unmarshals raw tool arguments over the defaults already set in dst and
// validates the result. Failures are InvalidParams errors.
func decodeArguments(raw json.RawMessage, dst interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, dst); err != nil {
			return &RPCError{Code: InvalidParams, Message: fmt.Sprintf("Invalid arguments: %v", err)}
		}
	}

	if err := inputValidator().Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &RPCError{Code: InvalidParams, Message: fmt.Sprintf("Invalid arguments: %v", err)}
		}
		problems := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			problems = append(problems, describeFieldError(fe))
		}
		return &RPCError{Code: InvalidParams, Message: "Invalid arguments: " + strings.Join(problems, "; ")}
	}

	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "latlong":
		return fmt.Sprintf("%s must be 'latitude,longitude'", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed '%s'", fe.Field(), fe.Tag())
	}
}

func newFindNearbyPlacesInput() *FindNearbyPlacesInput {
	return &FindNearbyPlacesInput{MaxResults: WholeNumber(guide.DefaultMaxResults)}
}

func newGetPlacePhotosInput() *GetPlacePhotosInput {
	return &GetPlacePhotosInput{MaxPhotos: WholeNumber(guide.DefaultMaxPhotos)}
}
