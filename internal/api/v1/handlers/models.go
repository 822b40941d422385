package handlers

type Error struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
	Title  string `json:"title"`
}

type ErrorResponse struct {
	Errors []Error `json:"errors"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// locationParam is the location record a client echoes back in the data
// parameter of the record endpoints. Only ID is used for lookups.
type locationParam struct {
	ID             uint    `json:"id" validate:"required,gt=0"`
	SearchQuery    string  `json:"search_query" validate:"max=500"`
	FormattedQuery string  `json:"formatted_query"`
	Latitude       float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude      float64 `json:"longitude" validate:"gte=-180,lte=180"`
}
