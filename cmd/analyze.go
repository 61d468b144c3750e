package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/uniassist/uniassist/internal/logger"
	"github.com/uniassist/uniassist/internal/match"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score the configured application answers against one university",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("university", "u", "", "target university name from the catalog")
	analyzeCmd.Flags().Bool("save", false, "save the analysis to the configured store")
}

// analyze is the non-interactive counterpart of the analyze prompt action.
func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	answers, err := configuredAnswers(config)
	if err != nil {
		logger.Fatal("reading application answers", zap.Error(err))
	}

	name := cmd.Flag("university").Value.String()
	if name == "" {
		logger.Fatal("university name is required", zap.String("hint", "pass --university with a catalog entry name"))
	}

	sources, _, err := loadSources(config)
	if err != nil {
		logger.Fatal("loading catalogs", zap.Error(err))
	}

	university := sources.Universities.FindByName(name)
	if university == nil {
		logger.Fatal("university not found in the catalog",
			zap.String("university", name),
			zap.Any("known universities", sources.Universities.Names()),
		)
	}

	result, err := match.NewApplicationAnalyzer().Analyze(answers, university)
	if err != nil {
		logger.Fatal("analyzing application answers", zap.Error(err))
	}

	pretty, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(pretty))

	if cmd.Flag("save").Value.String() == "true" {
		if err := saveAnalysis(ctx, logger, config, university.Name, answers, result); err != nil {
			logger.Fatal("saving the analysis", zap.Error(err))
		}
	}
}
