// Package app wires configuration into a running program finder.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MakerMama/afterschool-finder/api"
	"github.com/MakerMama/afterschool-finder/api/session"
	"github.com/MakerMama/afterschool-finder/config"
	"github.com/MakerMama/afterschool-finder/core/catalog"
	"github.com/MakerMama/afterschool-finder/core/filter"
	"github.com/MakerMama/afterschool-finder/core/geocode"
	coremetrics "github.com/MakerMama/afterschool-finder/core/metrics"
	"github.com/MakerMama/afterschool-finder/core/schedule"
	"github.com/MakerMama/afterschool-finder/core/search"
	"github.com/MakerMama/afterschool-finder/core/searchlog"
	"github.com/MakerMama/afterschool-finder/infra/geocache"
	infrageocode "github.com/MakerMama/afterschool-finder/infra/geocode"
	"github.com/MakerMama/afterschool-finder/infra/logger"
	"github.com/MakerMama/afterschool-finder/infra/metrics"
	"github.com/MakerMama/afterschool-finder/internal/eventbus"
)

// sweepInterval is how often expired sessions are dropped.
const sweepInterval = time.Minute

// Service holds the assembled components.
type Service struct {
	Search   *search.Service
	Geocoder *geocode.Cache
	Sessions *session.Registry

	cfg     *config.Config
	bus     *eventbus.TypedBus[schedule.Event]
	sink    coremetrics.MetricsSink
	logs    searchlog.LogStore
	handler http.Handler
	closers []io.Closer
	log     logger.Logger
}

// New creates a Service from the configuration. It loads the catalog and
// connects to the configured geocode cache and search log.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	s := &Service{cfg: cfg}
	ok := false
	defer func() {
		if !ok {
			_ = s.Close()
		}
	}()

	logClose, err := logger.Configure(logger.Config(cfg.Logging))
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	s.closers = append(s.closers, logClose)
	s.log = logger.New("service")

	s.sink, err = coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	s.log.Infof("loaded %d programs from %s", cat.Len(), cfg.Catalog.Path)

	s.Geocoder, err = s.newGeocoder(ctx)
	if err != nil {
		return nil, err
	}

	s.logs, err = searchlog.NewStore(cfg.SearchLog)
	if err != nil {
		return nil, fmt.Errorf("search log: %w", err)
	}

	engine := filter.NewEngine(s.Geocoder,
		filter.WithWorkers(cfg.Search.Workers),
		filter.WithLogger(logger.New("filter")),
	)
	s.Search = search.NewService(cat, engine,
		search.WithLogStore(s.logs),
		search.WithMetrics(s.sink),
		search.WithLogger(logger.New("search")),
	)

	s.bus = eventbus.NewTyped[schedule.Event]()
	s.Sessions = session.NewRegistry(cfg.Server.SessionIdle(), session.WithStoreFactory(func() *schedule.Store {
		return schedule.NewStore(schedule.WithEvents(s.bus))
	}))

	opts := api.Options{
		RequestsPerMinute: cfg.Server.RequestsPerMinute,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		AdminToken:        cfg.Server.AdminToken,
		Logs:              s.logs,
		Logger:            logger.New("api"),
	}
	if s.promEnabled() {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	s.handler = api.NewRouter(s.Search, s.Sessions, opts)
	ok = true
	return s, nil
}

func (s *Service) newGeocoder(ctx context.Context) (*geocode.Cache, error) {
	gc := s.cfg.Geocoder
	provider, err := infrageocode.NewProvider(gc.Provider)
	if err != nil {
		return nil, fmt.Errorf("geocode provider: %w", err)
	}
	opts := []geocode.Option{
		geocode.WithMinInterval(gc.MinInterval()),
		geocode.WithTimeout(gc.Timeout()),
		geocode.WithLogger(logger.New("geocode")),
	}
	if rec, ok := s.sink.(coremetrics.GeocodeRecorder); ok {
		opts = append(opts, geocode.WithRecorder(rec))
	}
	if gc.Cache.Backend == "redis" {
		store, err := geocache.NewRedisStore(ctx, geocache.RedisConfig{
			Addr:     gc.Cache.Addr,
			Password: gc.Cache.Password,
			DB:       gc.Cache.DB,
			Prefix:   gc.Cache.Prefix,
			TTL:      gc.Cache.TTL(),
		})
		if err != nil {
			return nil, fmt.Errorf("geocode cache: %w", err)
		}
		s.closers = append(s.closers, store)
		opts = append(opts, geocode.WithStore(store))
	}
	return geocode.NewCache(provider, opts...), nil
}

func (s *Service) promEnabled() bool {
	for _, c := range s.cfg.Metrics.Sinks {
		if strings.EqualFold(c.Type, "prometheus") {
			return true
		}
	}
	return false
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler { return s.handler }

// Run serves the API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	done := metrics.StartScheduleCollector(ctx, s.bus, s.sink)
	go s.Sessions.Run(ctx, sweepInterval)
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" && s.promEnabled() {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Warnf("http shutdown: %v", err)
	}
	<-done
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.bus != nil {
		s.bus.Close()
	}
	var errs []error
	if s.logs != nil {
		errs = append(errs, s.logs.Close())
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	s.closers = nil
	return errors.Join(errs...)
}
