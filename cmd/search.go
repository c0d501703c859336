package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/devlink/jobscout/internal/aggregator"
	"github.com/devlink/jobscout/internal/ai"
	"github.com/devlink/jobscout/internal/ai/gemini"
	"github.com/devlink/jobscout/internal/job"
	"github.com/devlink/jobscout/internal/logger"
	"github.com/devlink/jobscout/internal/matching"
	"github.com/devlink/jobscout/internal/profile"
	"github.com/devlink/jobscout/internal/provider"
	"github.com/devlink/jobscout/internal/secrets"
	"github.com/devlink/jobscout/internal/synthetic"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptApplyAll        = "Apply to all"
	PromptNo              = "No"
	PromptReportByCompany = "Report by company"
	PromptMatchesToFile   = "Dump matches to file"

	experienceDateLayout = "2006-01"
	defaultInsightTopN   = 3
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptApplyAll, PromptNo, PromptReportByCompany, PromptMatchesToFile},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run the jobscout main command",
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolP("auto-approve", "y", false, "apply to all matches without confirmation")
	searchCmd.Flags().Bool("featured", false, "rank the curated featured set instead of searching providers")
	searchCmd.Flags().Int64("seed", 0, "seed for the synthetic fallback generator. Default is time-based.")
}

// search is the main command for the cli.
func search(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jobscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Profile == nil || len(config.Profile.Skills) == 0 {
		logger.Fatal("at least one skill is required under profile.skills to rank jobs")
	}

	providers := buildProviders(config, logger)

	agg := aggregator.New(logger, providers, newGenerator(cmd), aggregator.NewCache())

	if config.Redis != nil && config.Redis.URL != "" {
		results, err := newResultsCache(config.Redis)
		if err != nil {
			logger.Warn("skipping redis results cache", zap.Error(err))
		} else {
			defer results.Close()
			agg.ResultsCache = results
		}
	}

	analysis := profile.NewAnalyzer(logger).Analyze(buildProfile(config.Profile, logger), config.Profile.Skills)

	logger.Info("analyzed profile",
		zap.String("level", string(analysis.ExperienceLevel)),
		zap.String("focus", analysis.CareerFocus),
		zap.Int("years", analysis.YearsOfExperience),
	)

	var jobs *job.Jobs
	if cmd.Flag("featured").Value.String() == "true" {
		jobs = agg.Featured()
	} else {
		jobs, err = agg.Search(ctx, config.Search)
		if err != nil {
			logger.Fatal("searching jobs", zap.Error(err))
		}
	}

	logger.Info("getting jobs", zap.Int("count", jobs.Len()))

	matches := matching.NewRanker(logger).Rank(jobs, analysis, config.Ranking)
	if len(matches) == 0 {
		logger.Info("exiting", zap.String("reason", "no matches left after ranking"))
		return
	}

	if config.AI != nil && config.AI.Enabled {
		attachInsights(ctx, config.AI, analysis, matches, logger)
	}

	printMatches(matches)

	action := PromptApplyAll
	for {
		var err error
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of matches", zap.Int("count", len(matches)))

		if err := handleAction(ctx, action, agg, logger, config, matches); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, agg *aggregator.Aggregator, logger *zap.Logger, config *Config, matches []*matching.Score) error {
	switch action {
	case PromptApplyAll:
		return applyAll(ctx, agg, logger, config.Profile.UserID, matches)
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(jobsOf(matches).ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("matches count", len(matches)))
		return nil
	case PromptMatchesToFile:
		filename, err := jobsOf(matches).DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump matches to file: %w", err)
		}
		logger.Info("dumping matches to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func applyAll(ctx context.Context, agg *aggregator.Aggregator, logger *zap.Logger, userID string, matches []*matching.Score) error {
	if userID == "" {
		userID = "local"
	}

	for _, match := range matches {
		if err := agg.Apply(ctx, match.Job.ID, userID); err != nil {
			return err
		}

		logger.Info("successfully applied to job",
			zap.String("job_id", match.Job.ID),
			zap.String("job_title", match.Job.Title),
		)
	}

	logger.Info("successfully applied to jobs", zap.Int("count", len(matches)))
	return errExit
}

// buildProviders assembles the chain in priority order. A provider whose
// token cannot be loaded is skipped with a warning instead of failing the
// whole run.
func buildProviders(config *Config, logger *zap.Logger) []provider.Provider {
	providers := make([]provider.Provider, 0, 2)
	if config.Providers == nil {
		return providers
	}

	if p := config.Providers.TheirStack; p != nil && p.Enabled {
		token, err := resolveProviderToken("theirstack token", p.TokenFile, "providers.theirstack.token-file")
		if err != nil {
			logger.Warn("skipping theirstack provider", zap.Error(err))
		} else {
			providers = append(providers, provider.NewTheirStack(token, p.Country))
		}
	}

	if p := config.Providers.JSearch; p != nil && p.Enabled {
		token, err := resolveProviderToken("jsearch token", p.TokenFile, "providers.jsearch.token-file")
		if err != nil {
			logger.Warn("skipping jsearch provider", zap.Error(err))
		} else {
			providers = append(providers, provider.NewJSearch(token, p.Country))
		}
	}

	return providers
}

func resolveProviderToken(name, tokenFile, viperKey string) (string, error) {
	if strings.TrimSpace(tokenFile) == "" {
		tokenFile = strings.TrimSpace(viper.GetString(viperKey))
	}

	if tokenFile == "" {
		return "", fmt.Errorf("%s file is not configured", name)
	}

	return secrets.Load(secrets.Source{
		Name: name,
		File: tokenFile,
	})
}

func newGenerator(cmd *cobra.Command) *synthetic.Generator {
	seed, err := cmd.Flags().GetInt64("seed")
	if err != nil || seed == 0 {
		seed = time.Now().UnixNano()
	}

	return synthetic.New(seed)
}

func newResultsCache(cfg *RedisConfig) (*aggregator.ResultsCache, error) {
	ttl := time.Duration(cfg.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return aggregator.NewResultsCache(cfg.URL, ttl)
}

func buildProfile(cfg *ProfileConfig, logger *zap.Logger) *profile.Profile {
	p := &profile.Profile{
		Location:          cfg.Location,
		PreferredWorkMode: cfg.PreferredWorkMode,
	}

	for _, exp := range cfg.Experiences {
		start, err := time.Parse(experienceDateLayout, exp.Start)
		if err != nil {
			logger.Warn("skipping experience entry with a bad start date",
				zap.String("start", exp.Start), zap.Error(err))
			continue
		}

		entry := profile.Experience{Start: start, Current: exp.Current}
		if !exp.Current {
			end, err := time.Parse(experienceDateLayout, exp.End)
			if err != nil {
				logger.Warn("skipping experience entry with a bad end date",
					zap.String("end", exp.End), zap.Error(err))
				continue
			}
			entry.End = end
		}

		p.Experiences = append(p.Experiences, entry)
	}

	return p
}

func attachInsights(ctx context.Context, cfg *AIConfig, analysis *profile.Analysis, matches []*matching.Score, logger *zap.Logger) {
	advisor, err := newAIAdvisor(ctx, cfg, logger)
	if err != nil {
		logger.Warn("skipping AI insights", zap.Error(err))
		return
	}

	topN := cfg.TopN
	if topN <= 0 {
		topN = defaultInsightTopN
	}
	if topN > len(matches) {
		topN = len(matches)
	}

	for _, match := range matches[:topN] {
		insight, err := advisor.Advise(ctx, analysis, match)
		if err != nil {
			logger.Warn("skipping insight for match",
				zap.String("job_id", match.Job.ID), zap.Error(err))
			continue
		}

		match.Insight = insight.Summary
	}
}

func newAIAdvisor(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Advisor, error) {
	providerName := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if providerName != "" && providerName != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai insights are enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAdvisor(generator, genLogger, cfg.Gemini.MaxLogLength), nil
}

func printMatches(matches []*matching.Score) {
	for i, match := range matches {
		j := match.Job

		salary := j.SalaryRange
		if salary == "" {
			salary = "n/a"
		}

		fmt.Printf("%2d. [%3d] %s @ %s (%s, %s, %s)\n",
			i+1, match.Overall, j.Title, j.Company, j.Level, j.WorkMode, salary)

		if match.Insight != "" {
			fmt.Printf("         %s\n", match.Insight)
		}
	}
}

func jobsOf(matches []*matching.Score) *job.Jobs {
	jobs := &job.Jobs{}
	for _, match := range matches {
		jobs.Append(match.Job)
	}

	return jobs
}
