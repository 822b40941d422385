package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"ulascansenturk/city-explorer/internal/db/citydata"
	"ulascansenturk/city-explorer/internal/service"
	"ulascansenturk/city-explorer/internal/telemetry"
)

var validate = validator.New()

const (
	maxQueryLength    = 500
	maxLocationLength = 2048
)

type ExplorerHandler struct {
	locationService service.LocationService
	weatherService  service.RecordService[citydata.Weather]
	meetupService   service.RecordService[citydata.Meetup]
	businessService service.RecordService[citydata.Business]
	timeout         time.Duration
	router          *mux.Router
	root            http.Handler
}

func NewExplorerHandler(
	locationService service.LocationService,
	weatherService service.RecordService[citydata.Weather],
	meetupService service.RecordService[citydata.Meetup],
	businessService service.RecordService[citydata.Business],
	timeout time.Duration,
) *ExplorerHandler {
	h := &ExplorerHandler{
		locationService: locationService,
		weatherService:  weatherService,
		meetupService:   meetupService,
		businessService: businessService,
		timeout:         timeout,
	}

	r := mux.NewRouter()
	r.HandleFunc("/location", h.GetLocation).Methods(http.MethodGet)
	r.HandleFunc("/weather", h.GetWeather).Methods(http.MethodGet)
	r.HandleFunc("/meetups", h.GetMeetups).Methods(http.MethodGet)
	r.HandleFunc("/yelp", h.GetBusinesses).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondWithError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	h.router = r
	h.root = telemetry.Middleware(r)

	return h
}

// Handle mounts an extra GET route, e.g. the metrics endpoint.
func (h *ExplorerHandler) Handle(path string, handler http.Handler) {
	h.router.Handle(path, handler).Methods(http.MethodGet)
}

func (h *ExplorerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.root.ServeHTTP(w, r)
}

// WithCORS answers preflight requests and adds CORS headers for the given
// origins before handing off to next.
func WithCORS(next http.Handler, allowedOrigins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}).Handler(next)
}

func (h *ExplorerHandler) Health(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *ExplorerHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	query, ok := readData(w, r, maxQueryLength)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	location, err := h.locationService.GetLocation(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("failed to resolve location")
		respondWithError(w, statusFor(err), "failed to resolve location: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, location)
}

func (h *ExplorerHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	serveRecords(w, r, h, "weather", h.weatherService)
}

func (h *ExplorerHandler) GetMeetups(w http.ResponseWriter, r *http.Request) {
	serveRecords(w, r, h, "meetups", h.meetupService)
}

func (h *ExplorerHandler) GetBusinesses(w http.ResponseWriter, r *http.Request) {
	serveRecords(w, r, h, "businesses", h.businessService)
}

// serveRecords only takes the id from the data parameter. Coordinates come
// from the stored location.
func serveRecords[E any](
	w http.ResponseWriter,
	r *http.Request,
	h *ExplorerHandler,
	kind string,
	recordService service.RecordService[E],
) {
	param, ok := readLocation(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	location, err := h.locationService.GetLocationByID(ctx, param.ID)
	if err != nil {
		log.Error().Err(err).Str("kind", kind).Uint("location_id", param.ID).Msg("failed to load location")
		respondWithError(w, statusFor(err), "failed to get "+kind+": "+err.Error())
		return
	}

	records, err := recordService.Get(ctx, location)
	if err != nil {
		log.Error().Err(err).Str("kind", kind).Uint("location_id", location.ID).Msg("failed to get records")
		respondWithError(w, statusFor(err), "failed to get "+kind+": "+err.Error())
		return
	}
	if records == nil {
		records = []E{}
	}

	respondWithJSON(w, http.StatusOK, records)
}

func readData(w http.ResponseWriter, r *http.Request, maxLength int) (string, bool) {
	data := r.URL.Query().Get("data")
	if err := validate.Var(data, "required,max="+strconv.Itoa(maxLength)); err != nil {
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("query parameter 'data' is required and at most %d characters", maxLength))
		return "", false
	}
	return data, true
}

func readLocation(w http.ResponseWriter, r *http.Request) (locationParam, bool) {
	data, ok := readData(w, r, maxLocationLength)
	if !ok {
		return locationParam{}, false
	}

	var param locationParam
	if err := json.Unmarshal([]byte(data), &param); err != nil {
		respondWithError(w, http.StatusBadRequest, "query parameter 'data' must be a location record: "+err.Error())
		return locationParam{}, false
	}
	if err := validate.Struct(param); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid location: "+err.Error())
		return locationParam{}, false
	}

	return param, true
}
