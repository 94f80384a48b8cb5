package app_test

import (
	"context"
	"testing"

	prometheusSDK "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"

	"github.com/go-arrower/roster/app"
)

/*
	About the test cases and how assertions are set up:

	The testing of metrics is done against a prometheus registry,
	so that is as close to production as possible and does not depend on mocks or fakes.
	Each test gets its own registry, so tests can run in parallel.
*/

func TestRequestMeteringDecorator_H(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		registry, meterProvider := newTestMeterProvider(t)
		handler := app.NewMeteredRequest[request, response](meterProvider, app.TestSuccessRequestHandler[request, response]())

		_, err := handler.H(context.Background(), request{})
		assert.NoError(t, err)

		assertUseCaseMetric(t, registry, "app_test.request", "success")
	})

	t.Run("failed request", func(t *testing.T) {
		t.Parallel()

		registry, meterProvider := newTestMeterProvider(t)
		handler := app.NewMeteredRequest[request, response](meterProvider, app.TestFailureRequestHandler[request, response]())

		_, err := handler.H(context.Background(), request{})
		assert.ErrorIs(t, err, app.ErrUseCaseFailed)

		assertUseCaseMetric(t, registry, "app_test.request", "failure")
	})
}

func TestCommandMeteringDecorator_H(t *testing.T) {
	t.Parallel()

	t.Run("successful command", func(t *testing.T) {
		t.Parallel()

		registry, meterProvider := newTestMeterProvider(t)
		handler := app.NewMeteredCommand[request](meterProvider, app.TestSuccessCommandHandler[request]())

		err := handler.H(context.Background(), request{})
		assert.NoError(t, err)

		assertUseCaseMetric(t, registry, "app_test.request", "success")
	})

	t.Run("failed command", func(t *testing.T) {
		t.Parallel()

		registry, meterProvider := newTestMeterProvider(t)
		handler := app.NewMeteredCommand[request](meterProvider, app.TestFailureCommandHandler[request]())

		err := handler.H(context.Background(), request{})
		assert.Error(t, err)

		assertUseCaseMetric(t, registry, "app_test.request", "failure")
	})
}

func TestQueryMeteringDecorator_H(t *testing.T) {
	t.Parallel()

	t.Run("successful query", func(t *testing.T) {
		t.Parallel()

		registry, meterProvider := newTestMeterProvider(t)
		handler := app.NewMeteredQuery[request, response](meterProvider, app.TestSuccessQueryHandler[request, response]())

		_, err := handler.H(context.Background(), request{})
		assert.NoError(t, err)

		assertUseCaseMetric(t, registry, "app_test.request", "success")
	})

	t.Run("count every execution", func(t *testing.T) {
		t.Parallel()

		registry, meterProvider := newTestMeterProvider(t)
		handler := app.NewMeteredQuery[request, response](meterProvider, app.TestSuccessQueryHandler[request, response]())

		for range 3 {
			_, _ = handler.H(context.Background(), request{})
		}

		count, err := testutil.GatherAndCount(registry, "usecases_total")
		assert.NoError(t, err)
		assert.Equal(t, 1, count, "all executions share the same label set")

		assert.InDelta(t, 3, counterValue(t, registry, "usecases_total"), 0)
	})
}

func newTestMeterProvider(t *testing.T) (*prometheusSDK.Registry, *metric.MeterProvider) {
	t.Helper()

	registry := prometheusSDK.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	require.NoError(t, err)

	return registry, metric.NewMeterProvider(metric.WithReader(exporter))
}

// assertUseCaseMetric checks that the counter and the histogram got recorded with the expected labels.
func assertUseCaseMetric(t *testing.T, registry *prometheusSDK.Registry, command string, status string) {
	t.Helper()

	families, err := registry.Gather()
	require.NoError(t, err)

	found := map[string]bool{}

	for _, family := range families {
		name := family.GetName()
		if name != "usecases_total" && name != "usecases_duration_seconds" {
			continue
		}

		for _, m := range family.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}

			assert.Equal(t, command, labels["command"])
			assert.Equal(t, status, labels["status"])

			found[name] = true
		}
	}

	assert.True(t, found["usecases_total"], "counter not recorded")
	assert.True(t, found["usecases_duration_seconds"], "histogram not recorded")
}

func counterValue(t *testing.T, registry *prometheusSDK.Registry, name string) float64 {
	t.Helper()

	families, err := registry.Gather()
	require.NoError(t, err)

	var total float64

	for _, family := range families {
		if family.GetName() != name {
			continue
		}

		for _, m := range family.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}

	return total
}
