package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mostudy/aiproxy/internal/config"
	"github.com/mostudy/aiproxy/internal/metrics"
	"github.com/mostudy/aiproxy/internal/provider"
	"github.com/mostudy/aiproxy/internal/provider/hackclub"
	"github.com/mostudy/aiproxy/internal/tokenizer"
	"github.com/mostudy/aiproxy/internal/transport/http/handler"
	"github.com/mostudy/aiproxy/internal/transport/http/handler/infra"
	"github.com/mostudy/aiproxy/internal/transport/http/handler/proxy"
	"github.com/mostudy/aiproxy/internal/types"
)

// NewHandler wires the provider, proxy function, metrics and routes from cfg.
// A nil provider selects the Hack Club client built from cfg.
func NewHandler(cfg *config.Config, prov provider.Provider, logger *slog.Logger) http.Handler {
	if prov == nil {
		prov = hackclub.New(cfg.APIKey,
			hackclub.WithBaseURL(cfg.BaseURL),
			hackclub.WithTitle(cfg.AppTitle),
		)
	}

	var tok tokenizer.Tokenizer
	if cfg.CountTokens {
		tt := tokenizer.New()
		if err := tt.Warm(); err != nil {
			logger.Warn("token estimates disabled", "error", err)
		} else {
			tok = tt
		}
	}

	collector := metrics.NewCollector(append([]string{cfg.DefaultModel}, cfg.MetricsModels...)...)

	proxyHandlers := proxy.New(prov, proxy.Options{
		APIKey: cfg.APIKey,
		Defaults: types.RequestDefaults{
			Model:       cfg.DefaultModel,
			Temperature: cfg.DefaultTemperature,
		},
		DefaultReferer: cfg.DefaultReferer,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	}, tok, collector)

	infraHandlers := infra.New(infra.Status{
		Provider:     prov.Name(),
		BaseURL:      prov.BaseURL(),
		DefaultModel: cfg.DefaultModel,
		KeyPresent:   cfg.APIKey != "",
	}, time.Now())

	return NewRouter(handler.NewRepo(proxyHandlers, infraHandlers), &RouterOptions{
		Logger:         logger,
		Metrics:        collector,
		AllowedOrigins: cfg.AllowedOrigins,
	})
}
