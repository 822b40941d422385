package main

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type SignalTestSuite struct {
	suite.Suite
}

func (s *SignalTestSuite) TestShutdownCallbackGetsDeadline() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deadlines := make(chan time.Time, 1)
	handleSignals(ctx, cancel, func(shutdownCtx context.Context) {
		deadline, ok := shutdownCtx.Deadline()
		s.True(ok)
		deadlines <- deadline
	})

	s.Require().NoError(syscall.Kill(syscall.Getpid(), syscall.SIGHUP))

	select {
	case deadline := <-deadlines:
		s.WithinDuration(time.Now().Add(30*time.Second), deadline, 5*time.Second)
	case <-time.After(5 * time.Second):
		s.Fail("shutdown callback never ran")
	}

	s.Eventually(func() bool { return ctx.Err() != nil }, time.Second, 10*time.Millisecond)
}

func TestSignalTestSuite(t *testing.T) {
	suite.Run(t, new(SignalTestSuite))
}
