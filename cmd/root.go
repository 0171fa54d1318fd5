package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/networkout/networkout/internal/catalog"
	"github.com/networkout/networkout/internal/intake"
	"github.com/networkout/networkout/internal/matching"
	"github.com/networkout/networkout/internal/pipeline"
	"github.com/networkout/networkout/internal/planning"
)

const (
	app = "networkout"
)

type Config struct {
	Catalogs *CatalogsConfig `mapstructure:"catalogs"`
	Pipeline *PipelineConfig `mapstructure:"pipeline"`
	Matching *MatchingConfig `mapstructure:"matching"`
	Serve    *ServeConfig    `mapstructure:"serve"`
}

// CatalogsConfig points at external catalog files; the embedded catalogs
// are used when unset.
type CatalogsConfig struct {
	ProvidersFile string `mapstructure:"providers-file"`
	ExercisesFile string `mapstructure:"exercises-file"`
}

type PipelineConfig struct {
	IntakeDelay   time.Duration `mapstructure:"intake-delay"`
	MatchingDelay time.Duration `mapstructure:"matching-delay"`
	PlanningDelay time.Duration `mapstructure:"planning-delay"`
}

// MatchingConfig overrides individual rubric weights by name. Values not
// present keep their defaults.
type MatchingConfig struct {
	Weights map[string]any `mapstructure:"weights"`
}

type ServeConfig struct {
	Listen    string `mapstructure:"listen"`
	TokenFile string `mapstructure:"token-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "networkout matches fitness goals written in English or Chinese to compatible trainers and a personalized workout plan",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is networkout.yaml in current directory)")
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
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional; every setting has a built-in default.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			cobra.CheckErr(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	return config, nil
}

// loadCatalogs resolves the provider and exercise catalogs, preferring
// external files when configured.
func loadCatalogs(config *Config) (*catalog.Providers, *catalog.Exercises, error) {
	providersFile, exercisesFile := "", ""
	if config.Catalogs != nil {
		providersFile = config.Catalogs.ProvidersFile
		exercisesFile = config.Catalogs.ExercisesFile
	}

	var providers *catalog.Providers
	var err error
	if providersFile != "" {
		providers, err = catalog.LoadProvidersFromFile(providersFile)
	} else {
		providers, err = catalog.LoadProviders()
	}
	if err != nil {
		return nil, nil, err
	}

	var exercises *catalog.Exercises
	if exercisesFile != "" {
		exercises, err = catalog.LoadExercisesFromFile(exercisesFile)
	} else {
		exercises, err = catalog.LoadExercises()
	}
	if err != nil {
		return nil, nil, err
	}

	return providers, exercises, nil
}

// buildWeights starts from the default rubric and applies any overrides
// from the config, decoded by weight name.
func buildWeights(config *Config) (matching.Weights, error) {
	weights := matching.DefaultWeights()
	if config.Matching == nil || len(config.Matching.Weights) == 0 {
		return weights, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &weights,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return weights, err
	}
	if err := decoder.Decode(config.Matching.Weights); err != nil {
		return weights, fmt.Errorf("decoding matching weights: %w", err)
	}
	return weights, nil
}

func pipelineConfig(config *Config) pipeline.Config {
	cfg := pipeline.DefaultConfig()
	if config.Pipeline == nil {
		return cfg
	}
	cfg.IntakeDelay = overrideDelay(cfg.IntakeDelay, config.Pipeline.IntakeDelay)
	cfg.MatchingDelay = overrideDelay(cfg.MatchingDelay, config.Pipeline.MatchingDelay)
	cfg.PlanningDelay = overrideDelay(cfg.PlanningDelay, config.Pipeline.PlanningDelay)
	return cfg
}

// overrideDelay keeps the default when the override is unset. A negative
// override disables the delay entirely.
func overrideDelay(def, override time.Duration) time.Duration {
	switch {
	case override < 0:
		return 0
	case override > 0:
		return override
	}
	return def
}

// buildPipeline wires the three stages with shared catalogs and logging.
// The provider catalog is returned alongside so callers can serve it.
func buildPipeline(config *Config, logger *zap.Logger) (*pipeline.Pipeline, *catalog.Providers, error) {
	providers, exercises, err := loadCatalogs(config)
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalogs: %w", err)
	}

	weights, err := buildWeights(config)
	if err != nil {
		return nil, nil, err
	}

	deps := pipeline.Deps{
		Logger:    logger,
		Extractor: intake.NewExtractor(logger),
		Matcher:   matching.NewScorer(providers, weights, logger),
		Planner:   planning.NewSynthesizer(exercises, logger),
	}

	return pipeline.New(deps, pipelineConfig(config)), providers, nil
}
