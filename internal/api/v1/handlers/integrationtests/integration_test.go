package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgTestContainers "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"ulascansenturk/city-explorer/internal/api/v1/handlers"
	"ulascansenturk/city-explorer/internal/db"
	"ulascansenturk/city-explorer/internal/db/citydata"
	"ulascansenturk/city-explorer/internal/providers"
	"ulascansenturk/city-explorer/internal/service"
)

const (
	dbName     = "test_api_database"
	dbUser     = "test_user"
	dbPassword = "test_password"
)

func init() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

type upstream struct {
	geocodeCalls  atomic.Int32
	weatherCalls  atomic.Int32
	meetupCalls   atomic.Int32
	yelpCalls     atomic.Int32
	weatherGate   chan struct{}
	weatherGateMu sync.Mutex
	forecastPaths []string
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/geocode":
		u.geocodeCalls.Add(1)
		if r.URL.Query().Get("address") == "atlantis" {
			_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"Seattle, WA, USA","geometry":{"location":{"lat":47.6062,"lng":-122.3321}}}]}`))
	case strings.HasPrefix(r.URL.Path, "/forecast/"):
		u.weatherCalls.Add(1)
		u.weatherGateMu.Lock()
		gate := u.weatherGate
		u.forecastPaths = append(u.forecastPaths, r.URL.Path)
		u.weatherGateMu.Unlock()
		if gate != nil {
			<-gate
		}
		_, _ = w.Write([]byte(`{"daily":{"data":[
			{"summary":"Partly cloudy","time":1791849600},
			{"summary":"Drizzle","time":1791936000}
		]}}`))
	case r.URL.Path == "/meetups":
		u.meetupCalls.Add(1)
		var events []string
		for i := 0; i < 8; i++ {
			events = append(events, fmt.Sprintf(
				`{"link":"https://meetup.example/%d","name":"Event %d","created":1514764800000,"group":{"name":"Gophers"}}`, i, i))
		}
		_, _ = w.Write([]byte("[" + strings.Join(events, ",") + "]"))
	case r.URL.Path == "/yelp":
		u.yelpCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer yelp-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"businesses":[]}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type IntegrationTestSuite struct {
	suite.Suite
	container *pgTestContainers.PostgresContainer
	db        *gorm.DB
	upstream  *upstream
	server    *httptest.Server
	weather   service.RecordService[citydata.Weather]
	meetups   service.RecordService[citydata.Meetup]
	yelp      service.RecordService[citydata.Business]
	handler   *handlers.ExplorerHandler
}

func (s *IntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	var err error
	s.container, err = pgTestContainers.Run(ctx,
		"postgres:13.3",
		pgTestContainers.WithDatabase(dbName),
		pgTestContainers.WithUsername(dbUser),
		pgTestContainers.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	s.Require().NoError(err)

	dsn, err := s.container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate(s.db))

	log.Info().Msg("Connected to test database")
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.container != nil {
		if err := s.container.Terminate(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to terminate PostgreSQL container")
		}
	}
}

func (s *IntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE locations, weathers, meetups, businesses RESTART IDENTITY CASCADE").Error)

	s.upstream = &upstream{}
	s.server = httptest.NewServer(s.upstream)

	client := s.server.Client()
	geocoder := providers.NewGeocoder("geo-key", s.server.URL+"/geocode", client)
	forecasts := providers.NewForecastProvider("weather-key", s.server.URL+"/forecast", client)
	events := providers.NewEventProvider("meetup-key", s.server.URL+"/meetups", providers.MaxEvents, client)
	businesses := providers.NewBusinessProvider("yelp-key", s.server.URL+"/yelp", client)

	locations := service.NewLocationService(geocoder, citydata.NewLocationRepository(s.db), nil, 0,
		service.NewRequestAggregator[citydata.Location](5*time.Second))
	s.weather = service.NewWeatherService(forecasts, citydata.NewWeatherRepository(s.db), time.Minute,
		service.NewRequestAggregator[[]citydata.Weather](5*time.Second))
	s.meetups = service.NewMeetupService(events, citydata.NewMeetupRepository(s.db), providers.MaxEvents, time.Minute,
		service.NewRequestAggregator[[]citydata.Meetup](5*time.Second))
	s.yelp = service.NewBusinessService(businesses, citydata.NewBusinessRepository(s.db), time.Minute,
		service.NewRequestAggregator[[]citydata.Business](5*time.Second))

	s.handler = handlers.NewExplorerHandler(locations, s.weather, s.meetups, s.yelp, 10*time.Second)
}

func (s *IntegrationTestSuite) TearDownTest() {
	s.weather.WaitForWrites()
	s.meetups.WaitForWrites()
	s.yelp.WaitForWrites()
	s.server.Close()
}

func (s *IntegrationTestSuite) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *IntegrationTestSuite) resolve(query string) citydata.Location {
	w := s.get("/location?data=" + url.QueryEscape(query))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var location citydata.Location
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &location))
	return location
}

func (s *IntegrationTestSuite) recordsTarget(path string, location citydata.Location) string {
	data, err := json.Marshal(location)
	s.Require().NoError(err)
	return path + "?data=" + url.QueryEscape(string(data))
}

func (s *IntegrationTestSuite) count(model interface{}) int64 {
	var n int64
	s.Require().NoError(s.db.Model(model).Count(&n).Error)
	return n
}

func (s *IntegrationTestSuite) TestLocationIsGeocodedOnce() {
	first := s.resolve("seattle")

	s.Equal(int32(1), s.upstream.geocodeCalls.Load())
	s.Equal(int64(1), s.count(&citydata.Location{}))
	s.NotZero(first.ID)
	s.Equal("seattle", first.SearchQuery)
	s.Equal("Seattle, WA, USA", first.FormattedQuery)

	second := s.resolve("seattle")

	s.Equal(int32(1), s.upstream.geocodeCalls.Load())
	s.Equal(first, second)
}

func (s *IntegrationTestSuite) TestUnknownLocationIsNotFound() {
	w := s.get("/location?data=atlantis")

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(int64(0), s.count(&citydata.Location{}))
}

func (s *IntegrationTestSuite) TestWeatherCacheLifecycle() {
	location := s.resolve("seattle")
	target := s.recordsTarget("/weather", location)

	w := s.get(target)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[
		{"forecast":"Partly cloudy","time":"Tue Oct 13 2026"},
		{"forecast":"Drizzle","time":"Wed Oct 14 2026"}
	]`, w.Body.String())
	s.weather.WaitForWrites()
	s.Equal(int32(1), s.upstream.weatherCalls.Load())
	s.Equal(int64(2), s.count(&citydata.Weather{}))

	fresh := s.get(target)
	s.Require().Equal(http.StatusOK, fresh.Code)
	s.JSONEq(w.Body.String(), fresh.Body.String())
	s.Equal(int32(1), s.upstream.weatherCalls.Load())

	s.Require().NoError(s.db.Exec("UPDATE weathers SET created_at = created_at - interval '2 minutes'").Error)

	stale := s.get(target)
	s.Require().Equal(http.StatusOK, stale.Code)
	s.JSONEq(w.Body.String(), stale.Body.String())
	s.weather.WaitForWrites()
	s.Equal(int32(2), s.upstream.weatherCalls.Load())
	s.Equal(int64(2), s.count(&citydata.Weather{}))
}

func (s *IntegrationTestSuite) TestMeetupsAreCappedAtFive() {
	location := s.resolve("seattle")

	w := s.get(s.recordsTarget("/meetups", location))

	s.Require().Equal(http.StatusOK, w.Code)
	var meetups []citydata.Meetup
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &meetups))
	s.Len(meetups, 5)
	s.Equal("Mon Jan 01 2018", meetups[0].CreationDate)
	s.Equal("Gophers", meetups[0].Host)

	s.meetups.WaitForWrites()
	s.Equal(int64(5), s.count(&citydata.Meetup{}))
}

func (s *IntegrationTestSuite) TestEmptyBusinessesIsEmptyArray() {
	location := s.resolve("seattle")

	w := s.get(s.recordsTarget("/yelp", location))

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
	s.Equal(int32(1), s.upstream.yelpCalls.Load())
	s.Equal(int64(0), s.count(&citydata.Business{}))
}

func (s *IntegrationTestSuite) TestConcurrentWeatherMissesCallProviderOnce() {
	location := s.resolve("seattle")
	target := s.recordsTarget("/weather", location)

	gate := make(chan struct{})
	s.upstream.weatherGateMu.Lock()
	s.upstream.weatherGate = gate
	s.upstream.weatherGateMu.Unlock()

	const callers = 10
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := s.get(target)
			s.Equal(http.StatusOK, w.Code)
		}()
	}

	s.Eventually(func() bool { return s.upstream.weatherCalls.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	close(gate)
	wg.Wait()

	s.weather.WaitForWrites()
	s.Equal(int32(1), s.upstream.weatherCalls.Load())
	s.Equal(int64(2), s.count(&citydata.Weather{}))
}

func (s *IntegrationTestSuite) TestDeletingLocationCascades() {
	location := s.resolve("seattle")

	s.Require().Equal(http.StatusOK, s.get(s.recordsTarget("/weather", location)).Code)
	s.Require().Equal(http.StatusOK, s.get(s.recordsTarget("/meetups", location)).Code)
	s.weather.WaitForWrites()
	s.meetups.WaitForWrites()
	s.Require().Equal(int64(2), s.count(&citydata.Weather{}))

	s.Require().NoError(s.db.Delete(&citydata.Location{}, location.ID).Error)

	s.Equal(int64(0), s.count(&citydata.Weather{}))
	s.Equal(int64(0), s.count(&citydata.Meetup{}))

	w := s.get(s.recordsTarget("/weather", location))
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(int32(1), s.upstream.weatherCalls.Load())
}

func (s *IntegrationTestSuite) TestRecordsIgnoreSentCoordinates() {
	location := s.resolve("seattle")
	forged := location
	forged.Latitude = -33.8688
	forged.Longitude = 151.2093

	w := s.get(s.recordsTarget("/weather", forged))
	s.Require().Equal(http.StatusOK, w.Code)

	s.upstream.weatherGateMu.Lock()
	defer s.upstream.weatherGateMu.Unlock()
	s.Equal([]string{"/forecast/weather-key/47.6062,-122.3321"}, s.upstream.forecastPaths)
}

func (s *IntegrationTestSuite) TestUnknownLocationIDIsNotFound() {
	unknown := citydata.Location{ID: 404, SearchQuery: "atlantis", Latitude: 1, Longitude: 1}

	for _, path := range []string{"/weather", "/meetups", "/yelp"} {
		w := s.get(s.recordsTarget(path, unknown))
		s.Equal(http.StatusNotFound, w.Code, path)
	}

	s.Equal(int32(0), s.upstream.weatherCalls.Load())
	s.Equal(int32(0), s.upstream.meetupCalls.Load())
	s.Equal(int32(0), s.upstream.yelpCalls.Load())
}

func (s *IntegrationTestSuite) TestConcurrentReplacesKeepOneBatch() {
	location := s.resolve("seattle")
	repo := citydata.NewMeetupRepository(s.db)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			batch := make([]citydata.Meetup, 5)
			for j := range batch {
				batch[j].Name = fmt.Sprintf("Event %d", j)
				batch[j].Stamp(location.ID, time.Now().UTC())
			}
			s.NoError(repo.ReplaceForLocation(context.Background(), location.ID, batch))
		}()
	}
	wg.Wait()

	s.Equal(int64(5), s.count(&citydata.Meetup{}))

	w := s.get(s.recordsTarget("/meetups", location))
	s.Require().Equal(http.StatusOK, w.Code)
	var meetups []citydata.Meetup
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &meetups))
	s.Len(meetups, 5)
	s.Equal(int32(0), s.upstream.meetupCalls.Load())
}

func TestIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(IntegrationTestSuite))
}
