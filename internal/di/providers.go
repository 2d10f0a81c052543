package di

import (
	"context"
	"fmt"
	"time"

	"BizPulse/internal/domain/models"
	"BizPulse/internal/domain/repository"
	domsvc "BizPulse/internal/domain/service"
	"BizPulse/internal/handler/api"
	internalrepo "BizPulse/internal/repository"
	"BizPulse/internal/service/cache"
	"BizPulse/internal/service/ratelimit"
	"BizPulse/internal/services/features"
	"BizPulse/internal/services/insight"
	"BizPulse/internal/usecase"
	pkgch "BizPulse/pkg/clickhouse"
	"BizPulse/pkg/config"
	pkgkafka "BizPulse/pkg/kafka"
	applogger "BizPulse/pkg/logger"
	"BizPulse/pkg/metrics"
	pkgmysql "BizPulse/pkg/mysql"
	"BizPulse/pkg/server"
)

// ProvideLogger creates the application logger and, when Kafka is enabled,
// attaches the deduplicating log collector flushing to the logs topic.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if producer != nil && cfg.Kafka.LogsTopic != "" {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.LogsTopic,
			Publisher:      internalrepo.NewKafkaLogSink(producer),
		})
	}
	return l, nil
}

// ProvideMySQLClient opens the MySQL pool and optionally auto-migrates the
// pipeline tables.
func ProvideMySQLClient(cfg *config.Config) (*pkgmysql.Client, error) {
	client, err := pkgmysql.NewClient(
		pkgmysql.WithHost(cfg.Database.Host),
		pkgmysql.WithPort(cfg.Database.Port),
		pkgmysql.WithDatabase(cfg.Database.Name),
		pkgmysql.WithCredentials(cfg.Database.User, cfg.Database.Password),
		pkgmysql.WithMaxConnections(cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns),
		pkgmysql.WithConnMaxLifetime(cfg.Database.ConnMaxLifetime),
	)
	if err != nil {
		return nil, fmt.Errorf("mysql client: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := client.Migrate(
			&models.Client{}, &models.Product{}, &models.Order{}, &models.OrderItem{},
			&models.Visit{}, &models.Feedback{}, &models.Invoice{}, &models.Delivery{},
			&models.ChurnPrediction{}, &models.ForecastPoint{},
		); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("mysql migrate: %w", err)
		}
	}
	return client, nil
}

// ProvideClickHouseClient creates the audit-mirror ClickHouse client, or nil
// when auditing is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.Audit.Enabled {
		return nil, nil
	}
	ch := cfg.Audit.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
		pkgch.WithMaxExecutionTime(ch.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.AuditSchema); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates the events producer, or nil when kafka is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideEventPublisher wraps the producer, falling back to a no-op when
// kafka is disabled.
func ProvideEventPublisher(cfg *config.Config, producer *pkgkafka.Producer) repository.EventPublisher {
	if producer == nil {
		return internalrepo.NopEventPublisher{}
	}
	return internalrepo.NewKafkaEventPublisher(producer, cfg.Kafka.EventsTopic)
}

// ProvideReportCache picks Redis when configured, in-memory otherwise.
func ProvideReportCache(cfg *config.Config) (cache.BytesCache, error) {
	r := cfg.Reports.Redis
	if !r.Enabled {
		return cache.NewMemoryCache(), nil
	}
	c, err := cache.NewRedisCache(r.Addr, r.Password, r.DB)
	if err != nil {
		return nil, fmt.Errorf("report cache: %w", err)
	}
	return c, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// Stores.

func ProvideClientStore(db *pkgmysql.Client) repository.ClientStore {
	return internalrepo.NewMySQLClientStore(db)
}

func ProvideOrderStore(db *pkgmysql.Client) repository.OrderStore {
	return internalrepo.NewMySQLOrderStore(db)
}

func ProvidePredictionStore(db *pkgmysql.Client) repository.PredictionStore {
	return internalrepo.NewMySQLPredictionStore(db)
}

func ProvideBillingStore(db *pkgmysql.Client) repository.BillingStore {
	return internalrepo.NewMySQLBillingStore(db)
}

func ProvideDeliveryStore(db *pkgmysql.Client) repository.DeliveryStore {
	return internalrepo.NewMySQLDeliveryStore(db)
}

func ProvideFeedbackStore(db *pkgmysql.Client) repository.FeedbackStore {
	return internalrepo.NewMySQLFeedbackStore(db)
}

// Prediction service clients.

func ProvideChurnPredictor(cfg *config.Config) domsvc.ChurnPredictor {
	return insight.NewHTTPChurnPredictor(cfg)
}

func ProvideSalesForecaster(cfg *config.Config) domsvc.SalesForecaster {
	return insight.NewHTTPSalesForecaster(cfg)
}

func ProvideDocumentExtractor(cfg *config.Config) domsvc.DocumentExtractor {
	return insight.NewHTTPDocumentExtractor(cfg)
}

func ProvideSentimentAnalyzer(cfg *config.Config) domsvc.SentimentAnalyzer {
	return insight.NewHTTPSentimentAnalyzer(cfg)
}

// Use cases.

func ProvideFeatureExtractor(clients repository.ClientStore, orders repository.OrderStore) *features.Extractor {
	return features.NewExtractor(clients, orders)
}

func ProvideChurnUseCase(
	cfg *config.Config,
	clients repository.ClientStore,
	extractor *features.Extractor,
	predictor domsvc.ChurnPredictor,
	store repository.PredictionStore,
	events repository.EventPublisher,
	m repository.Metrics,
	l *applogger.Logger,
	chClient *pkgch.Client,
) *usecase.ChurnUseCase {
	uc := usecase.NewChurnUseCase(clients, extractor, predictor, store, events, m, l)
	if chClient != nil {
		sink := internalrepo.NewCHAuditSink(chClient)
		sink.SetLogger(l)
		uc.SetAuditSink(sink)
	}
	return uc
}

func ProvideForecastUseCase(
	cfg *config.Config,
	orders repository.OrderStore,
	forecaster domsvc.SalesForecaster,
	store repository.PredictionStore,
	events repository.EventPublisher,
	m repository.Metrics,
	l *applogger.Logger,
	chClient *pkgch.Client,
) *usecase.ForecastUseCase {
	uc := usecase.NewForecastUseCase(orders, forecaster, store, events, m, l)
	if chClient != nil {
		sink := internalrepo.NewCHAuditSink(chClient)
		sink.SetLogger(l)
		uc.SetAuditSink(sink)
	}
	return uc
}

func ProvideReportsUseCase(
	cfg *config.Config,
	orders repository.OrderStore,
	clients repository.ClientStore,
	c cache.BytesCache,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.ReportsUseCase {
	return usecase.NewReportsUseCase(orders, clients, c, cfg.Reports.CacheTTL, m, l)
}

func ProvideAlertsUseCase(
	billing repository.BillingStore,
	deliveries repository.DeliveryStore,
	preds repository.PredictionStore,
	m repository.Metrics,
) *usecase.AlertsUseCase {
	return usecase.NewAlertsUseCase(billing, deliveries, preds, m)
}

func ProvideDocumentsUseCase(extractor domsvc.DocumentExtractor, m repository.Metrics) *usecase.DocumentsUseCase {
	return usecase.NewDocumentsUseCase(extractor, m)
}

func ProvideSentimentUseCase(
	analyzer domsvc.SentimentAnalyzer,
	feedback repository.FeedbackStore,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.SentimentUseCase {
	return usecase.NewSentimentUseCase(analyzer, feedback, m, l)
}

// ProvideRouter assembles the HTTP surface.
func ProvideRouter(
	cfg *config.Config,
	l *applogger.Logger,
	churn *usecase.ChurnUseCase,
	forecast *usecase.ForecastUseCase,
	reports *usecase.ReportsUseCase,
	alerts *usecase.AlertsUseCase,
	documents *usecase.DocumentsUseCase,
	sentiment *usecase.SentimentUseCase,
	mysqlClient *pkgmysql.Client,
	chClient *pkgch.Client,
) *api.Router {
	router := api.NewRouter(
		api.NewPredictionsHandler(l, churn, forecast, ratelimit.New()),
		api.NewReportsHandler(l, reports),
		api.NewAlertsHandler(l, alerts, cfg.Alerts.StreamInterval),
		api.NewInsightHandler(l, documents, sentiment),
	)
	router.AddHealthCheck("mysql", mysqlClient)
	if chClient != nil {
		router.AddHealthCheck("clickhouse", chClient)
	}
	return router
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	router *api.Router,
	mysqlClient *pkgmysql.Client,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	reportCache cache.BytesCache,
) *server.App {
	return server.New(cfg, l, router, mysqlClient, chClient, producer, reportCache)
}
