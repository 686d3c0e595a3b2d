package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/geo_alert_dispatch/internal/config"
	"github.com/shenikar/geo_alert_dispatch/internal/delivery"
	"github.com/shenikar/geo_alert_dispatch/internal/geo"
	"github.com/shenikar/geo_alert_dispatch/internal/models"
	"github.com/shenikar/geo_alert_dispatch/internal/repository"
	"github.com/shenikar/geo_alert_dispatch/internal/service/mocks"
	"github.com/shenikar/geo_alert_dispatch/internal/webhook"
	webhook_mocks "github.com/shenikar/geo_alert_dispatch/internal/webhook/mocks"
	"github.com/shenikar/geo_alert_dispatch/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// recordingClient запоминает все запросы к провайдеру
type recordingClient struct {
	mu       sync.Mutex
	requests []delivery.Request
	failFor  map[string]error
}

func (c *recordingClient) Send(ctx context.Context, req delivery.Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	return c.failFor[req.Tokens[0]]
}

func newTestConfig() *config.Config {
	return &config.Config{
		BatchSize:            100,
		MaxConcurrentBatches: 0,
		DeliveryTimeout:      time.Second,
		StoreTimeout:         time.Second,
		AnalyticsRetention:   30 * 24 * time.Hour,
		TargetRetention:      30 * 24 * time.Hour,
	}
}

// newTestAlertService - вспомогательная функция для создания сервиса с хранилищем в памяти
func newTestAlertService(t *testing.T, store Gateway, client delivery.Client) (*alertService, *webhook_mocks.MockWebhookPublisher) {
	ctrl := gomock.NewController(t)
	publisherMock := webhook_mocks.NewMockWebhookPublisher(ctrl)

	svc := NewAlertService(store, client, publisherMock, geo.DefaultTable(), newTestLogger(), newTestConfig(), metrics.NewDispatchMetrics()).(*alertService)
	svc.now = func() time.Time { return testNow }
	svc.analytics.now = svc.now
	svc.maintenance.now = svc.now
	return svc, publisherMock
}

func TestDispatch_HighSeverityNormalPriority(t *testing.T) {
	store := repository.NewMemoryStore()
	require.NoError(t, store.SaveTargets(context.Background(), "us-east", []models.AlertTarget{newTestTarget("1")}))
	client := &recordingClient{}
	svc, publisher := newTestAlertService(t, store, client)

	var published webhook.DispatchEvent
	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e webhook.DispatchEvent) error {
			published = e
			return nil
		}).
		Times(1)

	result, err := svc.Dispatch(context.Background(), newTestEvent(models.SeverityHigh))

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.TargetsReached)
	assert.Equal(t, 0, result.TargetsSkipped)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "us-east", result.Region)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, []string{"token-1"}, req.Tokens)
	assert.Equal(t, delivery.PriorityNormal, req.Priority)
	assert.Equal(t, 3600, req.TTL)
	assert.InDelta(t, 500, req.Payload.DistanceMeters, 5)
	assert.Equal(t, 0.9, req.Payload.TrustWeight)

	assert.Equal(t, "evt-1", published.EventID)
	assert.Equal(t, 1, published.TargetsReached)

	records, err := store.ListAnalytics(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, testNow.UnixMilli(), records[0].Timestamp)
	assert.Equal(t, "us-east", records[0].Region)
}

func TestDispatch_CriticalBypassesQuietHours(t *testing.T) {
	target := newTestTarget("1")
	target.Preferences.MinSeverity = models.SeverityHigh
	target.Preferences.QuietHours = models.QuietHours{Enabled: true, Start: "14:00", End: "16:00", Timezone: "UTC"}

	store := repository.NewMemoryStore()
	require.NoError(t, store.SaveTargets(context.Background(), "us-east", []models.AlertTarget{target}))
	client := &recordingClient{}
	svc, publisher := newTestAlertService(t, store, client)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Dispatch(context.Background(), newTestEvent(models.SeverityCritical))

	require.NoError(t, err)
	assert.Equal(t, 1, result.TargetsReached)
	require.Len(t, client.requests, 1)
	assert.Equal(t, delivery.PriorityHigh, client.requests[0].Priority)
	assert.Equal(t, 0, client.requests[0].TTL)
}

func TestDispatch_CountsAddUpToLoadedTargets(t *testing.T) {
	inactive := newTestTarget("inactive")
	inactive.LastActiveAt = testNow.Add(-8 * 24 * time.Hour).UnixMilli()
	wrongType := newTestTarget("type")
	wrongType.Preferences.EmergencyTypes = []string{"flood"}
	imprecise := newTestTarget("imprecise")
	imprecise.Location.AccuracyMeters = 1500
	far := newTestTarget("far")
	far.Preferences.MaxDistanceMeters = 100
	failing := newTestTarget("failing")

	targets := append(newTestTargets(3), inactive, wrongType, imprecise, far, failing)
	store := repository.NewMemoryStore()
	require.NoError(t, store.SaveTargets(context.Background(), "us-east", targets))

	client := &recordingClient{failFor: map[string]error{"token-failing": errors.New("invalid token")}}
	svc, publisher := newTestAlertService(t, store, client)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Dispatch(context.Background(), newTestEvent(models.SeverityHigh))

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.TargetsReached)
	assert.Equal(t, 5, result.TargetsSkipped)
	assert.Equal(t, 1, result.TargetsFailed)
	assert.Equal(t, len(targets), result.TargetsReached+result.TargetsSkipped)
	assert.Equal(t, []string{"device device-failing: invalid token"}, result.Errors)
}

func TestDispatch_DefaultConfigRunsAllBatchesAtOnce(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/alerts")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	store := repository.NewMemoryStore()
	require.NoError(t, store.SaveTargets(context.Background(), "us-east", newTestTargets(3000)))

	const delay = 150 * time.Millisecond
	client := clientFunc(func(ctx context.Context, req delivery.Request) error {
		time.Sleep(delay)
		return nil
	})
	ctrl := gomock.NewController(t)
	publisher := webhook_mocks.NewMockWebhookPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	svc := NewAlertService(store, client, publisher, geo.DefaultTable(), newTestLogger(), cfg, metrics.NewDispatchMetrics()).(*alertService)
	svc.now = func() time.Time { return testNow }

	start := time.Now()
	result, err := svc.Dispatch(context.Background(), newTestEvent(models.SeverityHigh))
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 3000, result.TargetsReached)
	// 30 пачек укладываются в одну попытку доставки, а не в несколько волн
	assert.Less(t, elapsed, 2*delay)
}

func TestDispatch_TotalDeliveryFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	require.NoError(t, store.SaveTargets(context.Background(), "us-east", newTestTargets(2)))
	client := clientFunc(func(ctx context.Context, req delivery.Request) error {
		return errors.New("push provider returned status 503")
	})
	svc, publisher := newTestAlertService(t, store, client)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Dispatch(context.Background(), newTestEvent(models.SeverityHigh))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.TargetsReached)
	assert.Equal(t, 2, result.TargetsSkipped)
	assert.Len(t, result.Errors, 2)
}

func TestDispatch_NoTargets(t *testing.T) {
	store := repository.NewMemoryStore()
	client := &recordingClient{}
	svc, _ := newTestAlertService(t, store, client)

	result, err := svc.Dispatch(context.Background(), newTestEvent(models.SeverityHigh))

	assert.ErrorIs(t, err, ErrNoTargets)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.TargetsReached)
	assert.Equal(t, 0, result.TargetsSkipped)
	assert.Equal(t, "us-east", result.Region)
	assert.Empty(t, client.requests)
}

func TestDispatch_AllSkippedIsCompletedRun(t *testing.T) {
	target := newTestTarget("1")
	target.Preferences.EmergencyTypes = nil
	store := repository.NewMemoryStore()
	require.NoError(t, store.SaveTargets(context.Background(), "us-east", []models.AlertTarget{target}))
	svc, publisher := newTestAlertService(t, store, &recordingClient{})
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.Dispatch(context.Background(), newTestEvent(models.SeverityHigh))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.TargetsSkipped)
	assert.Empty(t, result.Errors)
}

func TestDispatch_InvalidEvent(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *models.EmergencyEvent)
	}{
		{name: "без id", mutate: func(e *models.EmergencyEvent) { e.ID = "" }},
		{name: "неизвестная серьезность", mutate: func(e *models.EmergencyEvent) { e.Severity = "extreme" }},
		{name: "широта вне диапазона", mutate: func(e *models.EmergencyEvent) { e.Location.Latitude = 91 }},
		{name: "долгота вне диапазона", mutate: func(e *models.EmergencyEvent) { e.Location.Longitude = -181 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockGateway(ctrl) // обращений к хранилищу быть не должно
			svc, _ := newTestAlertService(t, store, &recordingClient{})

			event := newTestEvent(models.SeverityHigh)
			tt.mutate(event)
			result, err := svc.Dispatch(context.Background(), event)

			assert.ErrorIs(t, err, ErrInvalidEvent)
			assert.Nil(t, result)
		})
	}
}

func TestDispatch_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockGateway(ctrl)
	store.EXPECT().
		LoadTargets(gomock.Any(), "us-east").
		Return(nil, errors.New("connection reset")).
		Times(1)
	svc, _ := newTestAlertService(t, store, &recordingClient{})

	result, err := svc.Dispatch(context.Background(), newTestEvent(models.SeverityHigh))

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoTargets)
	assert.Nil(t, result)
}

func TestDispatch_SideEffectFailuresDoNotFailDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockGateway(ctrl)
	store.EXPECT().
		LoadTargets(gomock.Any(), "us-east").
		Return(newTestTargets(1), nil)
	store.EXPECT().
		PutAnalytics(gomock.Any(), "evt-1", testNow.UnixMilli(), gomock.Any()).
		Return(errors.New("disk full"))
	svc, publisher := newTestAlertService(t, store, &recordingClient{})
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	result, err := svc.Dispatch(context.Background(), newTestEvent(models.SeverityHigh))

	require.NoError(t, err)
	assert.Equal(t, 1, result.TargetsReached)
}

func TestDispatch_StampsMissingTimestamp(t *testing.T) {
	store := repository.NewMemoryStore()
	require.NoError(t, store.SaveTargets(context.Background(), "us-east", newTestTargets(1)))
	svc, publisher := newTestAlertService(t, store, &recordingClient{})
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	event := newTestEvent(models.SeverityHigh)
	event.Timestamp = 0
	_, err := svc.Dispatch(context.Background(), event)

	require.NoError(t, err)
	assert.Equal(t, testNow.UnixMilli(), event.Timestamp)
}

func TestDispatch_RoutesByRegion(t *testing.T) {
	store := repository.NewMemoryStore()
	svc, _ := newTestAlertService(t, store, &recordingClient{})

	event := newTestEvent(models.SeverityHigh)
	event.Location = models.Location{Latitude: 0, Longitude: 0}
	result, err := svc.Dispatch(context.Background(), event)

	assert.ErrorIs(t, err, ErrNoTargets)
	assert.Equal(t, geo.DefaultRegionName, result.Region)
}

func TestGetMetricsAndMaintenance(t *testing.T) {
	store := repository.NewMemoryStore()
	ctx := context.Background()
	stale := newTestTarget("stale")
	stale.LastActiveAt = testNow.Add(-45 * 24 * time.Hour).UnixMilli()
	require.NoError(t, store.SaveTargets(ctx, "us-east", []models.AlertTarget{newTestTarget("1"), stale}))

	svc, publisher := newTestAlertService(t, store, &recordingClient{})
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Dispatch(ctx, newTestEvent(models.SeverityHigh))
	require.NoError(t, err)

	summary, err := svc.GetMetrics(ctx, "1h")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalDispatches)
	assert.Equal(t, 1, summary.TotalTargetsReached)
	assert.InDelta(t, 0.5, summary.SuccessRate, 1e-9)

	_, err = svc.GetMetrics(ctx, "month")
	assert.ErrorIs(t, err, ErrInvalidRange)

	report := svc.RunMaintenance(ctx)
	assert.Equal(t, 1, report.TargetsPruned)
	assert.Equal(t, len(geo.DefaultTable().Names()), report.RegionsProcessed)
	assert.Empty(t, report.Errors)
}
