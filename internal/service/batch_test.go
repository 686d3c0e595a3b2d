package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/geo_alert_dispatch/internal/delivery"
	delivery_mocks "github.com/shenikar/geo_alert_dispatch/internal/delivery/mocks"
	"github.com/shenikar/geo_alert_dispatch/internal/models"
	"github.com/shenikar/geo_alert_dispatch/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSplitBatches(t *testing.T) {
	tests := []struct {
		name  string
		count int
		size  int
		want  []int
	}{
		{name: "250 по 100", count: 250, size: 100, want: []int{100, 100, 50}},
		{name: "ровно одна пачка", count: 100, size: 100, want: []int{100}},
		{name: "пусто", count: 0, size: 100, want: []int{}},
		{name: "размер по умолчанию", count: 101, size: 0, want: []int{100, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := SplitBatches(eligibleOutcomes(newTestTargets(tt.count)), tt.size)

			sizes := make([]int, 0, len(batches))
			for _, b := range batches {
				sizes = append(sizes, len(b))
			}
			assert.Equal(t, tt.want, sizes)
		})
	}
}

func TestBatchDispatcher_FailureInOneBatchIsIsolated(t *testing.T) {
	client := clientFunc(func(ctx context.Context, req delivery.Request) error {
		if req.Tokens[0] == "token-150" {
			return errors.New("provider down")
		}
		return nil
	})
	d := NewBatchDispatcher(client, newTestLogger(), metrics.NewDispatchMetrics(), 100, 10, time.Second)

	res := d.Dispatch(context.Background(), newTestEvent(models.SeverityHigh), eligibleOutcomes(newTestTargets(250)))

	assert.Equal(t, 3, res.Batches)
	assert.Equal(t, 249, res.Reached)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, []string{"device device-150: provider down"}, res.Errors)
}

func TestBatchDispatcher_ErrorsFollowEligibleOrder(t *testing.T) {
	client := clientFunc(func(ctx context.Context, req delivery.Request) error {
		switch req.Tokens[0] {
		case "token-3":
			// медленная ошибка не должна оказаться после быстрой
			time.Sleep(20 * time.Millisecond)
			return errors.New("slow failure")
		case "token-7":
			return errors.New("fast failure")
		}
		return nil
	})
	d := NewBatchDispatcher(client, newTestLogger(), nil, 5, 0, time.Second)

	res := d.Dispatch(context.Background(), newTestEvent(models.SeverityHigh), eligibleOutcomes(newTestTargets(10)))

	assert.Equal(t, 8, res.Reached)
	assert.Equal(t, []string{
		"device device-3: slow failure",
		"device device-7: fast failure",
	}, res.Errors)
}

func TestBatchDispatcher_RecoversPanic(t *testing.T) {
	client := clientFunc(func(ctx context.Context, req delivery.Request) error {
		if req.Tokens[0] == "token-1" {
			panic("nil provider response")
		}
		return nil
	})
	d := NewBatchDispatcher(client, newTestLogger(), nil, 100, 10, time.Second)

	res := d.Dispatch(context.Background(), newTestEvent(models.SeverityHigh), eligibleOutcomes(newTestTargets(3)))

	assert.Equal(t, 2, res.Reached)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "device device-1: delivery panic")
}

func TestBatchDispatcher_RunsAttemptsConcurrently(t *testing.T) {
	const delay = 50 * time.Millisecond
	var inFlight, peak int32
	client := clientFunc(func(ctx context.Context, req delivery.Request) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(delay)
		atomic.AddInt32(&inFlight, -1)
		return nil
	})
	d := NewBatchDispatcher(client, newTestLogger(), nil, 100, 0, time.Second)

	start := time.Now()
	res := d.Dispatch(context.Background(), newTestEvent(models.SeverityHigh), eligibleOutcomes(newTestTargets(250)))
	elapsed := time.Since(start)

	assert.Equal(t, 250, res.Reached)
	assert.Less(t, elapsed, 20*delay)
	assert.Greater(t, atomic.LoadInt32(&peak), int32(100))
}

func TestBatchDispatcher_AttemptTimeout(t *testing.T) {
	client := clientFunc(func(ctx context.Context, req delivery.Request) error {
		if req.Tokens[0] == "token-0" {
			<-ctx.Done()
			return ctx.Err()
		}
		return nil
	})
	d := NewBatchDispatcher(client, newTestLogger(), nil, 100, 10, 20*time.Millisecond)

	res := d.Dispatch(context.Background(), newTestEvent(models.SeverityHigh), eligibleOutcomes(newTestTargets(2)))

	assert.Equal(t, 1, res.Reached)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], context.DeadlineExceeded.Error())
}

func TestBatchDispatcher_CanceledContextSettlesAll(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]bool)
	client := clientFunc(func(ctx context.Context, req delivery.Request) error {
		mu.Lock()
		seen[req.Tokens[0]] = true
		mu.Unlock()
		return ctx.Err()
	})
	d := NewBatchDispatcher(client, newTestLogger(), nil, 2, 1, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := d.Dispatch(ctx, newTestEvent(models.SeverityHigh), eligibleOutcomes(newTestTargets(5)))

	assert.Equal(t, 0, res.Reached)
	assert.Equal(t, 5, res.Failed)
	assert.Len(t, seen, 5)
}

func TestBatchDispatcher_OneRequestPerTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := delivery_mocks.NewMockClient(ctrl)
	event := newTestEvent(models.SeverityCritical)
	targets := eligibleOutcomes(newTestTargets(2))

	for _, o := range targets {
		client.EXPECT().
			Send(gomock.Any(), delivery.NewRequest(event, o.Target.PushToken, o.DistanceMeters)).
			Return(nil).
			Times(1)
	}
	d := NewBatchDispatcher(client, newTestLogger(), nil, 100, 10, time.Second)

	res := d.Dispatch(context.Background(), event, targets)

	assert.Equal(t, 1, res.Batches)
	assert.Equal(t, 2, res.Reached)
	assert.Empty(t, res.Errors)
}
