package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"ulascansenturk/city-explorer/internal/service"
)

type RequestAggregatorTestSuite struct {
	suite.Suite
	aggregator service.RequestAggregator[string]
	ctx        context.Context
}

func (s *RequestAggregatorTestSuite) SetupTest() {
	s.aggregator = service.NewRequestAggregator[string](time.Second)
	s.ctx = context.Background()
}

func (s *RequestAggregatorTestSuite) TearDownTest() {
	s.aggregator.Shutdown()
}

func (s *RequestAggregatorTestSuite) TestAddRequestWithNewQueue() {
	release := make(chan struct{})

	responseChan := s.aggregator.AddRequest(s.ctx, "Paris", func(context.Context) (string, error) {
		<-release
		return "paris", nil
	})

	s.NotNil(responseChan)

	select {
	case <-responseChan:
		s.Fail("Should not have received a response yet")
	default:
	}

	close(release)

	result := <-responseChan
	s.NoError(result.Err)
	s.Equal("paris", result.Value)
}

func (s *RequestAggregatorTestSuite) TestConcurrentRequestsShareOneFetch() {
	const waiters = 10

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "tokyo", nil
	}

	channels := make([]<-chan service.FetchResult[string], 0, waiters)
	for i := 0; i < waiters; i++ {
		channels = append(channels, s.aggregator.AddRequest(s.ctx, "Tokyo", fetch))
	}
	close(release)

	for _, ch := range channels {
		result := <-ch
		s.NoError(result.Err)
		s.Equal("tokyo", result.Value)
	}
	s.Equal(int32(1), calls.Load())
}

func (s *RequestAggregatorTestSuite) TestErrorReachesEveryWaiter() {
	fetchErr := errors.New("upstream down")
	release := make(chan struct{})
	fetch := func(context.Context) (string, error) {
		<-release
		return "", fetchErr
	}

	first := s.aggregator.AddRequest(s.ctx, "Berlin", fetch)
	second := s.aggregator.AddRequest(s.ctx, "Berlin", fetch)
	close(release)

	s.ErrorIs((<-first).Err, fetchErr)
	s.ErrorIs((<-second).Err, fetchErr)
}

func (s *RequestAggregatorTestSuite) TestDifferentKeysFetchIndependently() {
	var calls atomic.Int32
	fetch := func(value string) service.FetchFunc[string] {
		return func(context.Context) (string, error) {
			calls.Add(1)
			return value, nil
		}
	}

	london := s.aggregator.AddRequest(s.ctx, "London", fetch("london"))
	rome := s.aggregator.AddRequest(s.ctx, "Rome", fetch("rome"))

	s.Equal("london", (<-london).Value)
	s.Equal("rome", (<-rome).Value)
	s.Equal(int32(2), calls.Load())
}

func (s *RequestAggregatorTestSuite) TestKeyIsReusableAfterCompletion() {
	var calls atomic.Int32
	counted := func(context.Context) (string, error) {
		calls.Add(1)
		return "oslo", nil
	}

	<-s.aggregator.AddRequest(s.ctx, "Oslo", counted)
	<-s.aggregator.AddRequest(s.ctx, "Oslo", counted)

	s.Equal(int32(2), calls.Load())
}

func (s *RequestAggregatorTestSuite) TestFetchSurvivesFirstCallerCancellation() {
	ctx, cancel := context.WithCancel(s.ctx)
	release := make(chan struct{})

	first := s.aggregator.AddRequest(ctx, "Lima", func(fetchCtx context.Context) (string, error) {
		<-release
		if err := fetchCtx.Err(); err != nil {
			return "", err
		}
		return "lima", nil
	})
	second := s.aggregator.AddRequest(s.ctx, "Lima", nil)

	cancel()
	close(release)

	s.Equal("lima", (<-first).Value)
	result := <-second
	s.NoError(result.Err)
	s.Equal("lima", result.Value)
}

func (s *RequestAggregatorTestSuite) TestFetchIsBoundedByTimeout() {
	aggregator := service.NewRequestAggregator[string](20 * time.Millisecond)
	defer aggregator.Shutdown()

	result := <-aggregator.AddRequest(s.ctx, "Quito", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	s.ErrorIs(result.Err, context.DeadlineExceeded)
}

func (s *RequestAggregatorTestSuite) TestShutdownWaitsForInFlightFetches() {
	var finished atomic.Bool
	var started sync.WaitGroup
	started.Add(1)

	responseChan := s.aggregator.AddRequest(s.ctx, "Cairo", func(context.Context) (string, error) {
		started.Done()
		time.Sleep(30 * time.Millisecond)
		finished.Store(true)
		return "cairo", nil
	})

	started.Wait()
	s.aggregator.Shutdown()

	s.True(finished.Load())
	s.Equal("cairo", (<-responseChan).Value)
}

func TestRequestAggregatorTestSuite(t *testing.T) {
	suite.Run(t, new(RequestAggregatorTestSuite))
}
