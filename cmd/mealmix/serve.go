package main

import (
	"fmt"

	"github.com/jacksmith/mealmix/internal/logging"
	"github.com/jacksmith/mealmix/internal/remix"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the remix proxy",
	Long: `Run an HTTP proxy that remixes recipes with the configured model.

The proxy holds the API key, so clients only need remix.proxy_url:

  POST /api/remix  {"recipe": {...MealDB record...}, "theme": "Make it vegan"}
               ->  {"remix": "..."}
  GET  /healthz

The prompt is built by the proxy; it does not relay arbitrary completions.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default serve.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	_, cfg, err := openHome()
	if err != nil {
		return err
	}
	if cfg.Remix.APIKey == "" {
		return fmt.Errorf("remix.api_key (or OPENAI_API_KEY) is required to serve remixes")
	}

	// The proxy logs requests, so it is never quieter than info.
	level := cfg.Log.Level
	if logLevel == "" && (level == "warn" || level == "error") {
		level = "info"
	}
	log := logging.New(logging.Config{Level: level, Format: cfg.Log.Format}, nil)
	defer log.Sync()

	addr := cfg.Serve.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	source := remix.NewOpenAI(remix.Options{
		Model:   cfg.Remix.Model,
		APIKey:  cfg.Remix.APIKey,
		BaseURL: cfg.Remix.BaseURL,
		Timeout: cfg.HTTPTimeout,
	})
	srv := remix.NewServer(remix.ServerConfig{Addr: addr, AllowedOrigins: cfg.Serve.AllowedOrigins}, source, log)

	log.Info("starting remix proxy", zap.String("addr", addr), zap.String("model", cfg.Remix.Model))
	return srv.ListenAndServe(cmd.Context())
}
