package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"

	prometheusSDK "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"golang.org/x/sync/errgroup"

	"github.com/go-arrower/roster/alog"
)

var ErrMissingDependency = errors.New("missing dependency")

// Container holds global dependencies that can be used within each Context, to make initialisation easier.
// If the Context can operate with the shared resources.
// Otherwise, the Context is advised to initialise its own dependencies from its own configuration.
type Container struct {
	Logger        alog.Logger
	MeterProvider *metric.MeterProvider
	TraceProvider *trace.TracerProvider

	// PromRegistry collects all metrics of this Container.
	// It is not the prometheus default registry, so multiple Containers can exist side by side.
	PromRegistry *prometheusSDK.Registry

	Config *Config
}

func (c *Container) EnsureAllDependenciesPresent() error {
	if c.Config == nil {
		return fmt.Errorf("%w: global config not found", ErrMissingDependency)
	}

	if c.Logger == nil {
		return fmt.Errorf("%w: logger", ErrMissingDependency)
	}

	if c.MeterProvider == nil || c.TraceProvider == nil {
		return fmt.Errorf("%w: observability providers", ErrMissingDependency)
	}

	return nil
}

// InitialiseDefaultDependencies sets up logging, metrics and tracing as configured in conf.
// Call Shutdown on the returned Container, once it is not used anymore.
func InitialiseDefaultDependencies(ctx context.Context, conf *Config) (*Container, error) {
	if conf == nil {
		return nil, fmt.Errorf("%w: global config not found", ErrMissingDependency)
	}

	dc := &Container{
		Config: conf,
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(conf.ApplicationName),
		semconv.ServiceInstanceIDKey.String(conf.InstanceName),
		attribute.String("environment", string(conf.Environment)),
	)

	{ // traces
		sampler := trace.ParentBased(trace.TraceIDRatioBased(conf.OTEL.SampleRatio))
		if conf.Environment == LocalEnv || conf.Environment == TestEnv {
			sampler = trace.AlwaysSample()
		}

		dc.TraceProvider = trace.NewTracerProvider(
			trace.WithResource(res),
			trace.WithSampler(sampler),
		)
	}

	{ // metrics
		registry := prometheusSDK.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return nil, fmt.Errorf("could not create prometheus exporter: %w", err)
		}

		dc.PromRegistry = registry
		dc.MeterProvider = metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(exporter),
		)
	}

	{ // logger
		var logger *slog.Logger
		if conf.Environment == LocalEnv {
			logger = alog.NewDevelopment(os.Stderr)
		} else {
			logger = alog.New()
		}

		alog.Unwrap(logger).SetLevel(conf.Log.Level)

		dc.Logger = logger.With(
			slog.String("application_name", conf.ApplicationName),
			slog.String("instance_name", conf.InstanceName),
			slog.String("git_hash", gitHash()),
			slog.String("environment", string(conf.Environment)),
		)
	}

	dc.Logger.LogAttrs(ctx, alog.LevelInfo, "dependencies initialised")

	return dc, nil
}

// MetricsHandler exposes all metrics of the Container in the prometheus format.
// Mount it wherever the embedding application serves http.
func (c *Container) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(c.PromRegistry, promhttp.HandlerOpts{ //nolint:exhaustruct
		EnableOpenMetrics: true, // to enable Examplars in the export format
	})
}

// Shutdown flushes and stops the observability providers in parallel.
func (c *Container) Shutdown(ctx context.Context) error {
	c.Logger.LogAttrs(ctx, alog.LevelInfo, "shutting down dependencies")

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error { return c.TraceProvider.Shutdown(gctx) })
	group.Go(func() error { return c.MeterProvider.Shutdown(gctx) })

	if err := group.Wait(); err != nil {
		return fmt.Errorf("could not shutdown dependencies: %w", err)
	}

	return nil
}

func gitHash() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}

	return "unknown"
}
