package md

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata/stream"
)

type Sample struct {
	Source    string
	Timestamp time.Time
	Value     int64
}

type SampleHandler func(Sample)

// StartStream subscribes to minute bars for symbol and hands every close
// price, scaled to an integer, to handler. It blocks until ctx is done.
func StartStream(ctx context.Context, apiKey, apiSecret, feed, symbol string, priceScale int32, handler SampleHandler) error {
	client := stream.NewStocksClient(
		parseFeed(feed),
		stream.WithCredentials(apiKey, apiSecret),
	)

	// Connect must be called before subscribing.
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("connect market data stream: %w", err)
	}
	slog.Info("market data stream connected", "symbol", symbol, "feed", feed)

	if err := client.SubscribeToBars(func(bar stream.Bar) {
		value := PriceToSample(bar.Close, priceScale)
		slog.Debug("bar received", "symbol", bar.Symbol, "timestamp", bar.Timestamp, "close", bar.Close, "sample", value)
		handler(Sample{
			Source:    bar.Symbol,
			Timestamp: bar.Timestamp.UTC(),
			Value:     value,
		})
	}, symbol); err != nil {
		return fmt.Errorf("subscribe to bars: %w", err)
	}
	slog.Info("subscribed to bars", "symbol", symbol)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-client.Terminated():
		if err != nil {
			return fmt.Errorf("market data stream terminated: %w", err)
		}
		return ctx.Err()
	}
}

func parseFeed(feed string) marketdata.Feed {
	switch feed {
	case "iex":
		return marketdata.IEX
	case "sip":
		return marketdata.SIP
	default:
		return marketdata.IEX
	}
}
