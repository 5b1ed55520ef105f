//go:build wireinject

package bootstrap

import (
	"stockquotes-service/internal/application"

	"github.com/google/wire"
)

var serviceSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideLocation,
	ProvideRegistry,
	ProvideMetrics,
	ProvideHTTPClient,
	ProvideUpstream,
	ProvideStockQuotesService,
)

// InitAPI builds the HTTP façade and its cleanup.
func InitAPI() (*API, func(), error) {
	wire.Build(
		serviceSet,
		ProvideServer,
		ProvideHandler,
		ProvideAPI,
	)
	return nil, nil, nil
}

// InitService builds the lookup service alone, for the command line client.
func InitService() (*application.StockQuotesService, func(), error) {
	wire.Build(serviceSet)
	return nil, nil, nil
}
