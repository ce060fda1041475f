package cmd

import (
	"log"

	"github.com/skyhire/matchengine/internal/logger"
	"github.com/skyhire/matchengine/internal/server"
	"github.com/skyhire/matchengine/match"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultListen = ":8001"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the match engine over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", defaultListen, "address to listen on")
	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve(_ *cobra.Command) {
	// .env is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	cfg := config.matchConfig()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		zl.Fatal("validating config", zap.Error(err))
	}

	embedder, err := match.NewOrtEmbedder(cfg.Embedder)
	if err != nil {
		zl.Fatal("initializing embedder", zap.Error(err))
	}

	svc, err := match.NewService(embedder, cfg, zl)
	if err != nil {
		zl.Fatal("initializing service", zap.Error(err))
	}
	defer svc.Close()

	listen := config.Listen
	if listen == "" {
		listen = viper.GetString("listen")
	}
	if listen == "" {
		listen = defaultListen
	}

	zl.Info("starting the matchengine server",
		zap.String("version", version),
		zap.String("listen", listen),
		zap.String("model", cfg.Embedder.ModelID),
	)

	srv := server.New(svc, zl)
	if err := srv.Listen(listen); err != nil {
		zl.Fatal("serving", zap.Error(err))
	}
}
