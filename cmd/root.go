package cmd

import (
	"log"

	"github.com/skyhire/matchengine/match"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "matchengine"

// Config is the file/flag surface mapped onto the engine configuration.
type Config struct {
	Listen     string            `mapstructure:"listen"`
	Alpha      float64           `mapstructure:"alpha"`
	Beta       float64           `mapstructure:"beta"`
	Keywords   int               `mapstructure:"num-keywords"`
	Thresholds *ThresholdsConfig `mapstructure:"thresholds"`
	Stopwords  []string          `mapstructure:"stopwords"`
	StemTokens bool              `mapstructure:"stem-tokens"`
	Unigrams   bool              `mapstructure:"unigrams-only"`
	Batch      int               `mapstructure:"batch-concurrency"`
	Embedder   *EmbedderConfig   `mapstructure:"embedder"`
}

type ThresholdsConfig struct {
	Fair      float64 `mapstructure:"fair"`
	Good      float64 `mapstructure:"good"`
	Excellent float64 `mapstructure:"excellent"`
}

type EmbedderConfig struct {
	OrtDLL        string `mapstructure:"ort-dll"`
	ModelPath     string `mapstructure:"model-path"`
	TokenizerPath string `mapstructure:"tokenizer-path"`
	MaxSeqLen     int    `mapstructure:"max-seq-len"`
	CacheDir      string `mapstructure:"cache-dir"`
	ModelID       string `mapstructure:"model-id"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "matchengine scores how well a resume fits a job description",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is matchengine.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional; flags and defaults cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	if config == nil {
		config = &Config{}
	}
	return config, nil
}

// matchConfig maps the CLI surface onto the engine configuration.
// Engine defaults fill anything left unset.
func (c *Config) matchConfig() match.Config {
	cfg := match.Config{
		Alpha:            c.Alpha,
		Beta:             c.Beta,
		NumKeywords:      c.Keywords,
		Stopwords:        c.Stopwords,
		StemTokens:       c.StemTokens,
		UnigramsOnly:     c.Unigrams,
		BatchConcurrency: c.Batch,
	}
	if c.Thresholds != nil {
		cfg.Thresholds = match.FitThresholds{
			Fair:      c.Thresholds.Fair,
			Good:      c.Thresholds.Good,
			Excellent: c.Thresholds.Excellent,
		}
	}
	if c.Embedder != nil {
		cfg.Embedder = match.EmbedderConfig{
			OrtDLL:        c.Embedder.OrtDLL,
			ModelPath:     c.Embedder.ModelPath,
			TokenizerPath: c.Embedder.TokenizerPath,
			MaxSeqLen:     c.Embedder.MaxSeqLen,
			CacheDir:      c.Embedder.CacheDir,
			ModelID:       c.Embedder.ModelID,
		}
	}
	return cfg
}
