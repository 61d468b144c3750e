package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/uniassist/uniassist/internal/ai"
	"github.com/uniassist/uniassist/internal/ai/gemini"
	"github.com/uniassist/uniassist/internal/catalog"
	"github.com/uniassist/uniassist/internal/logger"
	"github.com/uniassist/uniassist/internal/match"
	"github.com/uniassist/uniassist/internal/profile"
	"github.com/uniassist/uniassist/internal/recommend"
	"github.com/uniassist/uniassist/internal/secrets"
	"github.com/uniassist/uniassist/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowReport    = "Show full recommendation report"
	PromptAnalyze       = "Analyze application answers"
	PromptSuggestTopics = "Suggest essay topics"
	PromptDraftEssay    = "Draft an application essay"
	PromptEssayChat     = "Chat about your application"
	PromptListSaved     = "List saved analyses"
	PromptExit          = "Exit"
	PromptBack          = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{
		PromptShowReport, PromptAnalyze, PromptSuggestTopics,
		PromptDraftEssay, PromptEssayChat, PromptListSaved, PromptExit,
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the uniassist main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("roommate-search", "s", "", "narrow roommate candidates by name, major or interest")
	runCmd.Flags().String("roommate-university", "", "only roommate candidates targeting this university")
	runCmd.Flags().String("room-type", "", "only roommate candidates with this room type preference")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the uniassist", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	student, err := loadStudent(config)
	if err != nil {
		logger.Fatal("loading the student profile", zap.Error(err))
	}

	sources, regions, err := loadSources(config)
	if err != nil {
		logger.Fatal("loading catalogs", zap.Error(err))
	}

	logger.Info("catalogs loaded",
		zap.Int("universities", sources.Universities.Len()),
		zap.Int("mentors", sources.Mentors.Len()),
		zap.Int("roommates", sources.Roommates.Len()),
	)

	pipeline := recommend.New(recommendConfig(config), recommend.Deps{
		Logger:  logger,
		Regions: regions,
	}).WithRoommateFilters(prepareRoommateFilters(cmd)...)

	recs, err := pipeline.Run(ctx, student, sources)
	if err != nil {
		logger.Fatal("scoring candidates", zap.Error(err))
	}

	if len(recs.Universities)+len(recs.Mentors)+len(recs.Roommates) == 0 {
		logger.Info("exiting", zap.String("reason", "no recommendations produced"))
		return
	}

	printRecommendations(recs)

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, logger, config, student, recs); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, logger *zap.Logger, config *Config, student *profile.StudentProfile, recs *recommend.Recommendations) error {
	switch action {
	case PromptShowReport:
		pretty, _ := json.MarshalIndent(recs, "", "  ")
		logger.Info(string(pretty), zap.Int("universities count", len(recs.Universities)))
		return nil
	case PromptAnalyze:
		return analyzeInteractive(ctx, logger, config, recs)
	case PromptSuggestTopics:
		return suggestTopics(ctx, logger, config, student, recs)
	case PromptDraftEssay:
		return draftEssay(ctx, logger, config, student, recs)
	case PromptEssayChat:
		return essayChat(ctx, logger, config, student, recs)
	case PromptListSaved:
		return listSavedAnalyses(ctx, logger, config)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func analyzeInteractive(ctx context.Context, logger *zap.Logger, config *Config, recs *recommend.Recommendations) error {
	answers, err := configuredAnswers(config)
	if err != nil {
		return err
	}

	university := pickUniversity(recs)
	if university == nil {
		return nil
	}

	result, err := match.NewApplicationAnalyzer().Analyze(answers, university)
	if err != nil {
		return fmt.Errorf("analyzing application answers: %w", err)
	}

	pretty, _ := json.MarshalIndent(result, "", "  ")
	fmt.Printf("Application strength for %s:\n%s\n", university.Name, pretty)

	return saveAnalysis(ctx, logger, config, university.Name, answers, result)
}

func suggestTopics(ctx context.Context, logger *zap.Logger, config *Config, student *profile.StudentProfile, recs *recommend.Recommendations) error {
	assistant, err := newAssistant(ctx, config.AI, logger)
	if err != nil {
		return err
	}

	university := pickUniversity(recs)
	if university == nil {
		return nil
	}

	topics, err := assistant.SuggestTopics(ctx, university, student)
	if err != nil {
		return fmt.Errorf("suggesting essay topics: %w", err)
	}

	for i, topic := range topics {
		fmt.Printf("%d. %s (%d words)\n   %s\n", i+1, topic.Title, topic.WordLimit, topic.Prompt)
	}

	return nil
}

func draftEssay(ctx context.Context, logger *zap.Logger, config *Config, student *profile.StudentProfile, recs *recommend.Recommendations) error {
	assistant, err := newAssistant(ctx, config.AI, logger)
	if err != nil {
		return err
	}

	university := pickUniversity(recs)
	if university == nil {
		return nil
	}

	topics, err := assistant.SuggestTopics(ctx, university, student)
	if err != nil {
		return fmt.Errorf("suggesting essay topics: %w", err)
	}

	topic, err := pickTopic(topics)
	if err != nil || topic == nil {
		return err
	}

	draft, err := assistant.DraftEssay(ctx, &ai.EssayRequest{
		Student:    student,
		University: university,
		Answers:    answersOrEmpty(config),
		Topic:      *topic,
	})
	if err != nil {
		return fmt.Errorf("drafting the essay: %w", err)
	}

	fmt.Printf("--- %s ---\n%s\n", draft.Topic.Title, draft.Content)
	return nil
}

func essayChat(ctx context.Context, logger *zap.Logger, config *Config, student *profile.StudentProfile, recs *recommend.Recommendations) error {
	assistant, err := newAssistant(ctx, config.AI, logger)
	if err != nil {
		return err
	}

	university := pickUniversity(recs)
	if university == nil {
		return nil
	}

	req := &ai.ChatRequest{
		EssayRequest: ai.EssayRequest{
			Student:    student,
			University: university,
			Answers:    answersOrEmpty(config),
		},
	}

	for {
		input := promptui.Prompt{Label: "You (empty line to go back)"}
		line, err := input.Run()
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "" {
			return nil
		}

		req.Messages = append(req.Messages, ai.Message{Role: "user", Content: line})

		reply, err := assistant.Chat(ctx, req)
		if err != nil {
			return fmt.Errorf("chatting with the assistant: %w", err)
		}

		fmt.Printf("Assistant: %s\n", reply)
		req.Messages = append(req.Messages, ai.Message{Role: "assistant", Content: reply})
	}
}

func listSavedAnalyses(ctx context.Context, logger *zap.Logger, config *Config) error {
	st, err := openStore(config)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.ListAnalyses(ctx, profileRef(config))
	if err != nil {
		return fmt.Errorf("listing saved analyses: %w", err)
	}

	if len(records) == 0 {
		logger.Info("no saved analyses yet")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%d. %s / score %d / saved %s\n",
			rec.ID, rec.UniversityName, rec.Result.OverallScore, rec.SavedAt.Format("2006-01-02 15:04"),
		)
	}

	return nil
}

func saveAnalysis(ctx context.Context, logger *zap.Logger, config *Config, universityName string, answers match.ApplicationAnswers, result *match.Result) error {
	if config.Store == nil || strings.TrimSpace(config.Store.Path) == "" {
		logger.Debug("analysis store is not configured, skipping save")
		return nil
	}

	st, err := openStore(config)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.SaveAnalysis(ctx, &store.AnalysisRecord{
		ProfileID:      profileRef(config),
		UniversityName: universityName,
		Answers:        answers,
		Result:         result,
	})
	if err != nil {
		return fmt.Errorf("saving the analysis: %w", err)
	}

	logger.Info("analysis saved", zap.Int64("id", id), zap.String("university", universityName))
	return nil
}

func openStore(config *Config) (*store.Store, error) {
	if config.Store == nil || strings.TrimSpace(config.Store.Path) == "" {
		return nil, errors.New("analysis store is not configured, set store.path in the configuration file")
	}

	return store.Open(config.Store.Path)
}

// pickUniversity lets the user choose among the ranked universities. A nil
// return means the user went back.
func pickUniversity(recs *recommend.Recommendations) *catalog.University {
	items := make([]string, 0, len(recs.Universities)+1)
	for _, scored := range recs.Universities {
		items = append(items, fmt.Sprintf("%s / score %d / admission %d%%",
			scored.Candidate.Name, scored.Result.OverallScore, scored.Result.AdmissionChance,
		))
	}

	universityPrompt := promptui.Select{
		Label: "Choose a university and press ENTER",
		Items: append(items, PromptBack),
	}

	index, selected, err := universityPrompt.Run()
	if err != nil || selected == PromptBack {
		return nil
	}

	return recs.Universities[index].Candidate
}

func pickTopic(topics []ai.EssayTopic) (*ai.EssayTopic, error) {
	items := make([]string, 0, len(topics)+1)
	for _, topic := range topics {
		items = append(items, fmt.Sprintf("%s (%d words)", topic.Title, topic.WordLimit))
	}

	topicPrompt := promptui.Select{
		Label: "Choose an essay topic and press ENTER",
		Items: append(items, PromptBack),
	}

	index, selected, err := topicPrompt.Run()
	if err != nil {
		return nil, err
	}
	if selected == PromptBack {
		return nil, nil
	}

	return &topics[index], nil
}

func printRecommendations(recs *recommend.Recommendations) {
	fmt.Printf("Top universities (%d):\n", len(recs.Universities))
	for i, scored := range recs.Universities {
		fmt.Printf("  %d. %s / score %d / admission %d%% / success %d%%\n",
			i+1, scored.Candidate.Name, scored.Result.OverallScore,
			scored.Result.AdmissionChance, scored.Result.SuccessChance,
		)
		for _, reason := range scored.Result.Reasons {
			fmt.Printf("     - %s\n", reason)
		}
	}

	fmt.Printf("Top mentors (%d):\n", len(recs.Mentors))
	for i, scored := range recs.Mentors {
		fmt.Printf("  %d. %s / %s / score %d\n",
			i+1, scored.Candidate.Name, scored.Candidate.Field, scored.Result.OverallScore,
		)
	}

	fmt.Printf("Roommate candidates (%d):\n", len(recs.Roommates))
	for i, scored := range recs.Roommates {
		fmt.Printf("  %d. %s / %s / score %d\n",
			i+1, scored.Candidate.Name, scored.Candidate.Major, scored.Result.OverallScore,
		)
	}
}

func loadStudent(config *Config) (*profile.StudentProfile, error) {
	if config.Profile == nil {
		return nil, errors.New("profile section is required in the configuration")
	}

	if path := strings.TrimSpace(config.Profile.Path); path != "" {
		return profile.Load(path)
	}

	dir := strings.TrimSpace(config.Profile.Dir)
	id := strings.TrimSpace(config.Profile.ID)
	if dir == "" || id == "" {
		return nil, errors.New("set profile.path, or profile.dir together with profile.id")
	}

	repo, err := profile.NewFileRepository(dir)
	if err != nil {
		return nil, err
	}

	return repo.Get(id)
}

func loadSources(config *Config) (recommend.Sources, catalog.Regions, error) {
	catalogs := config.Catalogs
	if catalogs == nil {
		catalogs = &CatalogsConfig{}
	}

	universities, err := catalog.LoadUniversities(catalogs.Universities)
	if err != nil {
		return recommend.Sources{}, nil, fmt.Errorf("loading universities: %w", err)
	}

	mentors, err := catalog.LoadMentors(catalogs.Mentors)
	if err != nil {
		return recommend.Sources{}, nil, fmt.Errorf("loading mentors: %w", err)
	}

	roommates, err := catalog.LoadRoommates(catalogs.Roommates)
	if err != nil {
		return recommend.Sources{}, nil, fmt.Errorf("loading roommates: %w", err)
	}

	regions, err := catalog.LoadRegions(catalogs.Regions)
	if err != nil {
		return recommend.Sources{}, nil, fmt.Errorf("loading regions: %w", err)
	}

	return recommend.Sources{
		Universities: universities,
		Mentors:      mentors,
		Roommates:    roommates,
	}, regions, nil
}

func recommendConfig(config *Config) recommend.Config {
	if config.Recommendations == nil {
		return recommend.Config{}
	}

	return *config.Recommendations
}

func configuredAnswers(config *Config) (match.ApplicationAnswers, error) {
	if config.Application == nil {
		return match.ApplicationAnswers{}, errors.New("application answers are required under the application section of the configuration file")
	}

	return *config.Application, nil
}

func answersOrEmpty(config *Config) match.ApplicationAnswers {
	if config.Application == nil {
		return match.ApplicationAnswers{}
	}

	return *config.Application
}

func profileRef(config *Config) string {
	if config.Profile == nil {
		return "default"
	}
	if id := strings.TrimSpace(config.Profile.ID); id != "" {
		return id
	}
	if path := strings.TrimSpace(config.Profile.Path); path != "" {
		return path
	}

	return "default"
}

func prepareRoommateFilters(cmd *cobra.Command) []recommend.Filter[*catalog.RoommateCandidate] {
	flagValue := func(name string) string {
		if cmd == nil {
			return ""
		}
		flag := cmd.Flag(name)
		if flag == nil {
			return ""
		}
		return flag.Value.String()
	}

	// Each filter disables itself when its query is empty.
	return []recommend.Filter[*catalog.RoommateCandidate]{
		recommend.NewRoommateSearch(flagValue("roommate-search")),
		recommend.NewRoommateUniversity(flagValue("roommate-university")),
		recommend.NewRoommateRoomType(flagValue("room-type")),
	}
}

func newAssistant(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Assistant, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("the ai assistant is disabled, set ai.enabled in the configuration file")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when the ai assistant is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	return gemini.NewAssistant(generator, logger, cfg.Gemini.MaxRetries, cfg.Gemini.MaxLogLength), nil
}
