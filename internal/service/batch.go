package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shenikar/geo_alert_dispatch/internal/delivery"
	"github.com/shenikar/geo_alert_dispatch/internal/filter"
	"github.com/shenikar/geo_alert_dispatch/internal/models"
	"github.com/shenikar/geo_alert_dispatch/pkg/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize - размер пачки получателей
const DefaultBatchSize = 100

// BatchResult - сводка по всем попыткам доставки одной рассылки
type BatchResult struct {
	Batches int
	Reached int
	Failed  int
	Errors  []string
}

// BatchDispatcher делит допущенных получателей на пачки и доставляет их параллельно.
// Каждая попытка изолирована: ошибка или паника одной не прерывает остальные.
type BatchDispatcher struct {
	client         delivery.Client
	logger         *logrus.Logger
	metrics        *metrics.DispatchMetrics
	batchSize      int
	maxBatches     int
	attemptTimeout time.Duration
}

// NewBatchDispatcher создает диспетчер. maxBatches <= 0 снимает ограничение на число одновременных пачек.
func NewBatchDispatcher(client delivery.Client, logger *logrus.Logger, m *metrics.DispatchMetrics, batchSize, maxBatches int, attemptTimeout time.Duration) *BatchDispatcher {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchDispatcher{
		client:         client,
		logger:         logger,
		metrics:        m,
		batchSize:      batchSize,
		maxBatches:     maxBatches,
		attemptTimeout: attemptTimeout,
	}
}

// SplitBatches делит список на пачки размера size, последняя может быть короче
func SplitBatches(items []filter.Outcome, size int) [][]filter.Outcome {
	if size <= 0 {
		size = DefaultBatchSize
	}
	batches := make([][]filter.Outcome, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}
	return batches
}

// Dispatch доставляет событие всем допущенным получателям и ждет завершения всех попыток.
// Отмена ctx передается в попытки, но ответ возвращается только когда все они завершились.
func (d *BatchDispatcher) Dispatch(ctx context.Context, event *models.EmergencyEvent, eligible []filter.Outcome) BatchResult {
	batches := SplitBatches(eligible, d.batchSize)
	// у каждой попытки свой слот, поэтому запись идет без блокировок
	attempts := make([]error, len(eligible))

	var g errgroup.Group
	if d.maxBatches > 0 {
		g.SetLimit(d.maxBatches)
	}
	for i, batch := range batches {
		batch := batch
		offset := i * d.batchSize
		slots := attempts[offset : offset+len(batch)]
		g.Go(func() error {
			d.runBatch(ctx, event, batch, slots)
			return nil
		})
	}
	_ = g.Wait()

	res := BatchResult{Batches: len(batches), Errors: make([]string, 0)}
	for i, err := range attempts {
		if err == nil {
			res.Reached++
			continue
		}
		res.Failed++
		res.Errors = append(res.Errors, fmt.Sprintf("device %s: %v", eligible[i].Target.DeviceID, err))
	}

	d.logger.WithFields(logrus.Fields{
		"service":  "dispatch",
		"method":   "Dispatch",
		"event_id": event.ID,
		"batches":  res.Batches,
		"reached":  res.Reached,
		"failed":   res.Failed,
	}).Debug("Batch delivery finished")
	return res
}

// runBatch - пул воркеров размером с пачку, разбирающий канал задач
func (d *BatchDispatcher) runBatch(ctx context.Context, event *models.EmergencyEvent, batch []filter.Outcome, results []error) {
	tasks := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < len(batch); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				results[i] = d.attempt(ctx, event, batch[i])
			}
		}()
	}
	for i := range batch {
		tasks <- i
	}
	close(tasks)
	wg.Wait()
}

func (d *BatchDispatcher) attempt(ctx context.Context, event *models.EmergencyEvent, target filter.Outcome) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("delivery panic: %v", r)
		}
	}()

	if d.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.attemptTimeout)
		defer cancel()
	}

	start := time.Now()
	err = d.client.Send(ctx, delivery.NewRequest(event, target.Target.PushToken, target.DistanceMeters))
	d.metrics.ObserveDelivery(time.Since(start))
	return err
}
