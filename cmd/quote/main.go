// Command quote performs a single lookup and prints the envelope as JSON.
//
//	quote -symbol AAPL
//	quote -symbol AAPL -realtime
//	quote -symbol AAPL -series
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stockquotes-service/internal/application"
	"stockquotes-service/internal/bootstrap"
	"stockquotes-service/internal/config"
	"stockquotes-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	symbol := flag.String("symbol", "", "ticker symbol, e.g. AAPL")
	realtime := flag.Bool("realtime", false, "only fetch the real-time price")
	series := flag.Bool("series", false, "fetch today's 5-minute time series")
	flag.Parse()

	logger := logx.L()
	svc, cleanup, err := bootstrap.InitService()
	if err != nil {
		logger.Fatal("bootstrap service", zap.Error(err))
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var out any
	if *series {
		out = svc.TimeSeries(ctx, application.TimeSeriesQuery{Symbol: *symbol, APIKey: config.APIKey()})
	} else {
		out = svc.Quote(ctx, application.QuoteQuery{Symbol: *symbol, Realtime: *realtime, APIKey: config.APIKey()})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
