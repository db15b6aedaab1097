package mcp

import (
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// Tool names
const (
	ToolFindNearbyPlaces = "find_nearby_places"
	ToolGetPlaceReviews  = "get_place_reviews"
	ToolGetPlacePhotos   = "get_place_photos"
)

// createFindNearbyPlacesTool returns the find_nearby_places tool definition
func createFindNearbyPlacesTool() mcpgo.Tool {
	return mcpgo.NewTool(ToolFindNearbyPlaces,
		mcpgo.WithDescription("Finds places based on a query and returns key details for each."),
		mcpgo.WithTitleAnnotation("Find nearby places"),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithOpenWorldHintAnnotation(true),
		mcpgo.WithString("query",
			mcpgo.Required(),
			mcpgo.Description("User's request, e.g., 'a good pizza place'."),
		),
		mcpgo.WithString("location",
			mcpgo.Description("User's location as 'latitude,longitude'. Biases results to a 5 km radius."),
		),
		mcpgo.WithNumber("max_results",
			mcpgo.Description("Maximum number of places to return (default: 3, max: 20)."),
			mcpgo.DefaultNumber(3),
			mcpgo.Min(1),
			mcpgo.Max(20),
		),
	)
}

// createGetPlaceReviewsTool returns the get_place_reviews tool definition
func createGetPlaceReviewsTool() mcpgo.Tool {
	return mcpgo.NewTool(ToolGetPlaceReviews,
		mcpgo.WithDescription("Fetches user reviews for a specific place."),
		mcpgo.WithTitleAnnotation("Get place reviews"),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithOpenWorldHintAnnotation(true),
		mcpgo.WithString("place_id",
			mcpgo.Required(),
			mcpgo.Description("The ID of the place, as returned by find_nearby_places."),
		),
	)
}

// createGetPlacePhotosTool returns the get_place_photos tool definition
func createGetPlacePhotosTool() mcpgo.Tool {
	return mcpgo.NewTool(ToolGetPlacePhotos,
		mcpgo.WithDescription("Gets photos of a specific place as inline JPEG images, preceded by a caption."),
		mcpgo.WithTitleAnnotation("Get place photos"),
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithOpenWorldHintAnnotation(true),
		mcpgo.WithString("place_id",
			mcpgo.Required(),
			mcpgo.Description("The ID of the place."),
		),
		mcpgo.WithString("place_name",
			mcpgo.Required(),
			mcpgo.Description("The name of the place, used in the caption."),
		),
		mcpgo.WithNumber("max_photos",
			mcpgo.Description("Max photos to return (default: 1, max: 10)."),
			mcpgo.DefaultNumber(1),
			mcpgo.Min(1),
			mcpgo.Max(10),
		),
	)
}

// Tools returns every tool definition in registration order
func Tools() []mcpgo.Tool {
	return []mcpgo.Tool{
		createFindNearbyPlacesTool(),
		createGetPlaceReviewsTool(),
		createGetPlacePhotosTool(),
	}
}
