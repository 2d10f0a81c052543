//go:build wireinject
// +build wireinject

package di

import (
	"BizPulse/pkg/config"
	"BizPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMySQLClient,
		ProvideClickHouseClient,
		ProvideReportCache,
		ProvideMetrics,
		ProvideEventPublisher,

		// Stores
		ProvideClientStore,
		ProvideOrderStore,
		ProvidePredictionStore,
		ProvideBillingStore,
		ProvideDeliveryStore,
		ProvideFeedbackStore,

		// Prediction service clients
		ProvideChurnPredictor,
		ProvideSalesForecaster,
		ProvideDocumentExtractor,
		ProvideSentimentAnalyzer,

		// Use cases
		ProvideFeatureExtractor,
		ProvideChurnUseCase,
		ProvideForecastUseCase,
		ProvideReportsUseCase,
		ProvideAlertsUseCase,
		ProvideDocumentsUseCase,
		ProvideSentimentUseCase,

		// HTTP surface and application server
		ProvideRouter,
		ProvideApp,
	)
	return &server.App{}, nil
}
