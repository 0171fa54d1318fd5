package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/networkout/networkout/internal/api"
	"github.com/networkout/networkout/internal/logger"
	"github.com/networkout/networkout/internal/secrets"
)

const (
	defaultListen = ":8080"
	tokenEnvVar   = "NETWORKOUT_API_TOKEN"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the matching pipeline over HTTP with per-stage event streaming",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", defaultListen, "address to listen on")
	viper.BindPFlag("serve.listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	p, providers, err := buildPipeline(config, zlog)
	if err != nil {
		zlog.Fatal("building pipeline", zap.Error(err))
	}

	token, err := apiToken(config)
	if err != nil {
		zlog.Fatal("loading api token", zap.Error(err))
	}
	if token == "" {
		zlog.Warn("no api token configured, serving without authentication")
	}

	handler := api.NewHandler(api.Deps{
		Pipeline:  p,
		Providers: providers,
		Logger:    zlog,
		Token:     token,
	})

	listen := defaultListen
	if config.Serve != nil && config.Serve.Listen != "" {
		listen = config.Serve.Listen
	}

	server := &http.Server{
		Addr:              listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("listening", zap.String("version", version), zap.String("addr", listen))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
}

// apiToken resolves the optional bearer token. A configured token file must
// load successfully; otherwise the environment is consulted and an empty
// result disables auth.
func apiToken(config *Config) (string, error) {
	tokenFile := ""
	if config.Serve != nil {
		tokenFile = config.Serve.TokenFile
	}

	token, err := secrets.Load(secrets.Source{
		Name: "api token",
		File: tokenFile,
		Env:  tokenEnvVar,
	})
	if err != nil {
		if tokenFile == "" {
			return "", nil
		}
		return "", err
	}
	return token, nil
}
