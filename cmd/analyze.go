package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/skyhire/matchengine/internal/logger"
	"github.com/skyhire/matchengine/match"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description once and print the result",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "path to the resume text file")
	analyzeCmd.Flags().StringP("job", "J", "", "path to the job description text file")
	analyzeCmd.Flags().IntP("keywords", "k", 0, "number of job keywords to extract (default from config)")
	analyzeCmd.Flags().StringP("output", "o", "", "write a CSV report to this path instead of printing JSON")
	analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagRequired("job")
}

func analyze(cmd *cobra.Command) {
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

	resumePath, _ := cmd.Flags().GetString("resume")
	jobPath, _ := cmd.Flags().GetString("job")
	keywords, _ := cmd.Flags().GetInt("keywords")
	output, _ := cmd.Flags().GetString("output")

	resumeText, err := os.ReadFile(resumePath)
	if err != nil {
		zl.Fatal("reading resume", zap.Error(err))
	}
	jobText, err := os.ReadFile(jobPath)
	if err != nil {
		zl.Fatal("reading job description", zap.Error(err))
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

	result, err := svc.Evaluate(context.Background(), match.Pair{
		ResumeText:  string(resumeText),
		JobText:     string(jobText),
		NumKeywords: keywords,
	})
	if err != nil {
		zl.Fatal("evaluating", zap.Error(err))
	}

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			zl.Fatal("creating report file", zap.Error(err))
		}
		defer f.Close()
		if err := match.WriteCSV(f, match.ToRows([]match.MatchResult{result})); err != nil {
			zl.Fatal("writing report", zap.Error(err))
		}
		zl.Info("report written", zap.String("path", output))
		return
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		zl.Fatal("encoding result", zap.Error(err))
	}
	fmt.Println(string(pretty))
}
