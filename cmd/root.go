package cmd

import (
	"log"

	"github.com/devlink/jobscout/internal/job"
	"github.com/devlink/jobscout/internal/matching"
	"github.com/devlink/jobscout/internal/profile"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobscout"
)

type Config struct {
	Search    *job.Filters          `mapstructure:"search"`
	Profile   *ProfileConfig        `mapstructure:"profile"`
	Providers *ProvidersConfig      `mapstructure:"providers"`
	Redis     *RedisConfig          `mapstructure:"redis"`
	Ranking   *matching.RankOptions `mapstructure:"ranking"`
	AI        *AIConfig             `mapstructure:"ai"`
}

type ProfileConfig struct {
	UserID            string             `mapstructure:"user-id"`
	Location          string             `mapstructure:"location"`
	PreferredWorkMode string             `mapstructure:"preferred-work-mode"`
	Skills            []profile.Skill    `mapstructure:"skills"`
	Experiences       []ExperienceConfig `mapstructure:"experiences"`
}

// ExperienceConfig holds one work entry with year-month dates, e.g. 2023-09.
type ExperienceConfig struct {
	Start   string `mapstructure:"start"`
	End     string `mapstructure:"end"`
	Current bool   `mapstructure:"current"`
}

type ProvidersConfig struct {
	TheirStack *ProviderConfig `mapstructure:"theirstack"`
	JSearch    *ProviderConfig `mapstructure:"jsearch"`
}

type ProviderConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	TokenFile string `mapstructure:"token-file"`
	Country   string `mapstructure:"country"`
}

type RedisConfig struct {
	URL        string `mapstructure:"url"`
	TTLMinutes int    `mapstructure:"ttl-minutes"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	TopN     int           `mapstructure:"top-n"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobscout is a cli for discovering job postings across providers and ranking them against your profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string]string{
		"providers.theirstack.token-file": "THEIRSTACK_TOKEN_FILE",
		"providers.jsearch.token-file":    "JSEARCH_TOKEN_FILE",
		"ai.gemini.api-key-file":          "GEMINI_API_KEY_FILE",
		"redis.url":                       "REDIS_URL",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for search command now. If there is no config, we can skip initialization
	if searchCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
