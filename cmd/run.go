package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/networkout/networkout/internal/logger"
	"github.com/networkout/networkout/internal/pipeline"
	"github.com/networkout/networkout/internal/utils"
)

const promptCustomText = "Enter my own goals"

// sampleInputs are example goal statements offered when no text is given.
var sampleInputs = []string{
	"我想减肥但是我的英语不好我住在上海的小公寓里",
	"I want to build muscle but I am a beginner. I prefer working out at home and would like to practice English.",
	"我是学生预算有限想要增强体质和学习健身英语",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the matching pipeline for a fitness goal statement",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("text", "t", "", "fitness goal statement in English, Chinese, or both")
	runCmd.Flags().Bool("no-delay", false, "skip the simulated per-stage think time")
}

func run(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	text := strings.TrimSpace(cmd.Flag("text").Value.String())
	if text == "" {
		text, err = promptForText()
		if err != nil {
			zlog.Fatal("reading goal statement", zap.Error(err))
		}
	}

	if cmd.Flag("no-delay").Value.String() == "true" {
		if config.Pipeline == nil {
			config.Pipeline = &PipelineConfig{}
		}
		config.Pipeline.IntakeDelay = -1
		config.Pipeline.MatchingDelay = -1
		config.Pipeline.PlanningDelay = -1
	}

	p, _, err := buildPipeline(config, zlog)
	if err != nil {
		zlog.Fatal("building pipeline", zap.Error(err))
	}

	zlog.Info("starting the pipeline",
		zap.String("version", version),
		zap.String("text", utils.TruncateForLog(text, 120)),
	)

	results := make(map[pipeline.Stage]any, 3)

	runHandle, events := p.Run(ctx, text)
	for event := range events {
		switch event.Status {
		case pipeline.StatusAnalyzing:
			zlog.Info("stage analyzing", zap.String("stage", string(event.Stage)))
		case pipeline.StatusComplete:
			zlog.Info("stage complete", zap.String("stage", string(event.Stage)))
			results[event.Stage] = event.Payload
		case pipeline.StatusFailed:
			zlog.Error("pipeline failed",
				zap.String("run_id", event.RunID),
				zap.String("stage", string(event.Stage)),
				zap.String("error", event.Error),
			)
			os.Exit(1)
		}
	}

	zlog.Info("pipeline complete", zap.String("run_id", runHandle.ID))

	pretty, err := json.MarshalIndent(map[string]any{
		"run_id":   runHandle.ID,
		"intake":   results[pipeline.StageIntake],
		"matching": results[pipeline.StageMatching],
		"planning": results[pipeline.StagePlanning],
	}, "", "  ")
	if err != nil {
		zlog.Fatal("encoding results", zap.Error(err))
	}
	fmt.Println(string(pretty))
}

// promptForText offers the sample statements or free-form entry.
func promptForText() (string, error) {
	selectPrompt := promptui.Select{
		Label: "Describe your fitness goals",
		Items: append(append([]string{}, sampleInputs...), promptCustomText),
	}

	_, choice, err := selectPrompt.Run()
	if err != nil {
		return "", err
	}

	if choice != promptCustomText {
		return choice, nil
	}

	textPrompt := promptui.Prompt{
		Label: "Your goals",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("goal statement must not be empty")
			}
			return nil
		},
	}
	return textPrompt.Run()
}
