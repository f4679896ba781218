package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingServer struct {
	workers       context.Context
	workersAlive  bool
	shutdownCalls int
	err           error
}

func (s *recordingServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls++
	s.workersAlive = s.workers.Err() == nil
	return s.err
}

func TestDrain_StopsWorkersAfterServer(t *testing.T) {
	tests := []struct {
		name        string
		shutdownErr error
	}{
		{name: "clean shutdown"},
		{name: "shutdown error", shutdownErr: errors.New("server is not running")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workers, stopWorkers := context.WithCancel(context.Background())
			defer stopWorkers()
			srv := &recordingServer{workers: workers, err: tt.shutdownErr}

			sig, fire := context.WithCancel(context.Background())
			fire()

			drain(sig, srv, stopWorkers, time.Second)

			assert.Equal(t, 1, srv.shutdownCalls)
			assert.True(t, srv.workersAlive, "workers still running while the server drains")
			assert.Error(t, workers.Err(), "workers stopped once the server is down")
		})
	}
}
