package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	labelapp "github.com/codewithomar/LPWC/internal/application/label"
	"github.com/codewithomar/LPWC/internal/infrastructure/config"
	"github.com/codewithomar/LPWC/internal/infrastructure/logger"
	"github.com/codewithomar/LPWC/internal/infrastructure/persistence"
	"github.com/codewithomar/LPWC/internal/infrastructure/printing"
	"github.com/codewithomar/LPWC/internal/infrastructure/telemetry"
	"github.com/codewithomar/LPWC/internal/interfaces/http/handler"
	"github.com/codewithomar/LPWC/internal/interfaces/http/middleware"
	"github.com/codewithomar/LPWC/internal/interfaces/http/router"
	"github.com/codewithomar/LPWC/internal/interfaces/http/web"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration; LPWC_CONFIG points at an explicit file
	watcher, err := config.NewWatcher(os.Getenv("LPWC_CONFIG"), nil)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	cfg := watcher.Config()

	// Initialize logger
	log, level, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	// Only the log level is applied on reload; everything else needs a restart
	watcher.SetLogger(log)
	watcher.Subscribe(func(c *config.Config) {
		level.SetLevel(logger.ParseLevel(c.Log.Level))
		log.Info("Log level updated", zap.String("level", c.Log.Level))
	})
	watcher.Start()

	log.Info("Starting label service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("engine", cfg.Label.Engine),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	// Continuous profiling, with samples linked to spans when both are on
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingServerAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() {
		tp.EnableSpanProfiles()
	}

	// Ship log entries to the collector alongside the local output
	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer func() {
		if err := lp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down log export", zap.Error(err))
		}
	}()
	log = telemetry.Bridge(log, telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, lp.Provider(), level))

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down metrics", zap.Error(err))
		}
	}()
	labelMetrics, err := telemetry.NewLabelMetrics(mp.Meter(telemetry.TracerName))
	if err != nil {
		log.Fatal("Failed to register label metrics", zap.Error(err))
	}

	// Catalog database with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.WithSlowThreshold(cfg.Database.SlowQueryThreshold))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled
	dbTracing.SlowQueryThresh = cfg.Database.SlowQueryThreshold
	dbTracing.LogFullSQL = cfg.App.Env == "development"
	if cfg.Database.Driver == "sqlite" {
		dbTracing.DBSystem = "sqlite"
	}
	if err := telemetry.NewDBTracingPlugin(dbTracing, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// A local SQLite catalog is created on first start
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate catalog schema", zap.Error(err))
		}
	}

	// Label font, validated before the first request
	fonts, err := printing.LoadFontRegistry(printing.FontConfig{
		Family:  cfg.Label.FontFamily,
		Dir:     cfg.Label.FontDir,
		Regular: cfg.Label.FontRegular,
		Bold:    cfg.Label.FontBold,
		UseOTL:  cfg.Label.UseOTL,
	})
	if err != nil {
		log.Fatal("Failed to load label fonts", zap.Error(err))
	}

	factory, err := printing.NewEngineFactory(printing.EngineFactoryConfig{
		Engine:          cfg.Label.Engine,
		ChromeRemoteURL: cfg.Label.ChromeRemoteURL,
		NoSandbox:       cfg.Label.NoSandbox,
		WkhtmltopdfPath: cfg.Label.WkhtmltopdfPath,
		RenderTimeout:   cfg.Label.RenderTimeout,
	}, log)
	if err != nil {
		log.Fatal("Failed to configure PDF engine", zap.Error(err))
	}
	generator := printing.NewGenerator(factory, fonts, log,
		printing.WithRenderTimeout(cfg.Label.RenderTimeout))

	labelTemplates, err := printing.NewTemplateEngine(printing.LabelTemplateConfig{
		FontFamily:     fonts.Family(),
		BaseURL:        cfg.App.BaseURL,
		CurrencySymbol: cfg.Label.CurrencySymbol,
		WeightUnit:     cfg.Label.WeightUnit,
	})
	if err != nil {
		log.Fatal("Failed to parse label template", zap.Error(err))
	}

	// Application services
	catalogRepo := persistence.NewGormCatalogRepository(db.DB)
	resolver := labelapp.NewResolver(catalogRepo, labelapp.ResolverConfig{
		Locale:   cfg.Label.LanguageTag(),
		Location: cfg.Label.Location(),
	})
	labelService := labelapp.NewService(resolver, labelTemplates, generator, labelapp.WithMetrics(labelMetrics))
	browser := labelapp.NewBrowser(catalogRepo, labelapp.BrowserConfig{
		ListPath:  router.ListPath,
		LabelPath: router.GeneratePath,
	})

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.Tracing(middleware.TracingConfig{
			Enabled:     cfg.Telemetry.Enabled,
			ServiceName: cfg.Telemetry.ServiceName,
		}),
		middleware.SpanEnricher(),
		logger.GinMiddleware(log, router.HealthPath),
		middleware.Secure(),
	)

	pages, err := web.Templates()
	if err != nil {
		log.Fatal("Failed to parse page templates", zap.Error(err))
	}
	router.NewRouter(engine,
		router.WithTemplates(pages),
		router.WithAssets(cfg.Label.AssetsDir),
	).
		Register(router.LabelRoutes{Handler: handler.NewLabelHandler(browser, labelService)}).
		Register(router.HealthRoutes{Handler: handler.NewHealthHandler(db)}).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr), zap.String("base_url", cfg.App.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
