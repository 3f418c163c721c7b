package workerpool_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pitabwire/tafiti/workerpool"
)

type WorkerPoolSuite struct {
	suite.Suite
}

func TestWorkerPoolSuite(t *testing.T) {
	suite.Run(t, new(WorkerPoolSuite))
}

func (s *WorkerPoolSuite) TestSubmitRunsTasks() {
	ctx := context.Background()

	pool, err := workerpool.New(ctx, workerpool.WithCapacity(4))
	s.Require().NoError(err)
	defer pool.Shutdown()

	var counter atomic.Int64
	var wg sync.WaitGroup

	for range 20 {
		wg.Add(1)
		err = pool.Submit(ctx, func() {
			defer wg.Done()
			counter.Add(1)
		})
		s.Require().NoError(err)
	}

	wg.Wait()
	s.EqualValues(20, counter.Load())
}

func (s *WorkerPoolSuite) TestSubmitRefusesCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())

	pool, err := workerpool.New(ctx, workerpool.WithCapacity(1))
	s.Require().NoError(err)
	defer pool.Shutdown()

	cancel()

	err = pool.Submit(ctx, func() {})
	s.Require().ErrorIs(err, context.Canceled)
}
