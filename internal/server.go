package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/totalfit/backend/internal/athletes"
	"github.com/totalfit/backend/internal/career"
	"github.com/totalfit/backend/internal/config"
	"github.com/totalfit/backend/internal/db"
	"github.com/totalfit/backend/internal/finance"
	"github.com/totalfit/backend/internal/googlefit"
	"github.com/totalfit/backend/internal/injuries"
	"github.com/totalfit/backend/internal/middleware"
	"github.com/totalfit/backend/internal/misc"
	"github.com/totalfit/backend/internal/performance"
	"github.com/totalfit/backend/internal/telemetry/metrics"
	"github.com/totalfit/backend/internal/telemetry/tracing"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	apiKey            string // shared with the web app server-side routes
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	mongoClient *mongo.Client

	redisClient  *redis.Client
	tokenStore   googlefit.TokenStore
	gfClient     *googlefit.Client
	readingsRepo *performance.Repo

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	GoogleClientID          string
	GoogleClientSecret      string
	MongoURI                string
	APIKey                  string
	PostgresUser            string
	PostgresPassword        string
	RedisPassword           string
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "totalfit_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "totalfit-backend", rdb)
	if err != nil {
		return nil, err
	}

	mongoClient, mongoDatabase, err := db.NewMongoDatabase(ctx, db.NewMongoParams{
		URI:            params.MongoURI,
		DBName:         params.Config.MongoDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new mongo database: %w", err)
	}

	readingsRepo, err := performance.NewRepo(ctx, mongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("new performance repo: %w", err)
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		mongoClient: mongoClient,
		apiKey:      params.APIKey,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		tokenStore:   googlefit.NewRedisTokenStore(rdb),
		readingsRepo: readingsRepo,
		gfClient: googlefit.NewClient(
			googlefit.DefaultTokenEndpoint,
			googlefit.DefaultAggregateEndpoint,
			params.GoogleClientID,
			params.GoogleClientSecret,
			tracedHttpClient,
		),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	miscHandler := misc.NewHandler(s.versionInfo)
	miscHandler.SetupRoutes(r)

	performanceHandler := performance.NewHandler(s.readingsRepo, s.metricsManager)
	r.HandleFunc("/api/performance", performanceHandler.HandleList).Methods("GET", "OPTIONS").Name("list-performance")
	r.HandleFunc("/api/performance/sync", performanceHandler.HandleSync).Methods("POST", "OPTIONS").Name("new-sensor-reading")

	gfSyncer := googlefit.NewSyncer(s.tokenStore, s.gfClient, s.readingsRepo, s.metricsManager)
	gfHandler := googlefit.NewHandler(
		s.gfClient,
		s.tokenStore,
		gfSyncer,
		s.config.DashboardBaseURL,
		s.metricsManager,
	)
	r.HandleFunc("/api/googlefit/exchange", gfHandler.HandleExchange).Methods("POST", "OPTIONS").Name("googlefit-exchange")
	r.HandleFunc("/api/auth/google-fit/callback", gfHandler.HandleCallback).Methods("GET").Name("googlefit-callback")

	// the sync trigger gets its own subrouter, rate limited to keep the
	// google fit api quota in check
	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	syncSubrouter := r.PathPrefix("/api/sync").Subrouter()
	syncSubrouter.
		HandleFunc("/google-fit", gfHandler.HandleSyncTrigger).
		Methods("POST", "OPTIONS").Name("sync-google-fit")
	syncSubrouter.Use(middleware.RateLimit(
		reqRateLimiter, "sync-google-fit",
		s.config.SyncRateLimitAllowedPerMin, s.metricsManager,
	))

	athletesHandler := athletes.NewHandler(athletes.NewRepo(s.dbPool))
	r.HandleFunc("/api/athletes", athletesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-athletes")
	r.HandleFunc("/api/athletes", athletesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-athlete")

	injuriesHandler := injuries.NewHandler(injuries.NewRepo(s.dbPool))
	r.HandleFunc("/api/injuries", injuriesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-injuries")

	financeHandler := finance.NewHandler(finance.NewRepo(s.dbPool))
	r.HandleFunc("/api/finance", financeHandler.HandleList).Methods("GET", "OPTIONS").Name("list-finance")

	careerHandler := career.NewHandler(career.NewRepo(s.dbPool))
	r.HandleFunc("/api/career", careerHandler.HandleList).Methods("GET", "OPTIONS").Name("list-career")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewApiKeyMiddlewareHandler(s.apiKey)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	var shutdownErr error

	if s.redisClient != nil {
		shutdownErr = multierr.Append(shutdownErr, s.redisClient.Close())
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.mongoClient != nil {
		shutdownErr = multierr.Append(shutdownErr, s.mongoClient.Disconnect(ctx))
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.httpServer != nil {
		shutdownErr = multierr.Append(shutdownErr, s.httpServer.Shutdown(ctx))
	}
	if s.metricsHttpServer != nil {
		shutdownErr = multierr.Append(shutdownErr, s.metricsHttpServer.Shutdown(ctx))
	}

	if shutdownErr != nil {
		log.Errorf(" >>> shutdown finished with errors: %s", shutdownErr)
		return
	}

	log.Warnln("server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
