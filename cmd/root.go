package cmd

import (
	"log"

	"github.com/uniassist/uniassist/internal/match"
	"github.com/uniassist/uniassist/internal/recommend"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "uniassist"
)

type Config struct {
	Profile         *ProfileConfig            `mapstructure:"profile"`
	Catalogs        *CatalogsConfig           `mapstructure:"catalogs"`
	Recommendations *recommend.Config         `mapstructure:"recommendations"`
	Application     *match.ApplicationAnswers `mapstructure:"application"`
	Store           *StoreConfig              `mapstructure:"store"`
	AI              *AIConfig                 `mapstructure:"ai"`
}

// ProfileConfig locates the student profile. Path points at a single YAML
// file; Dir plus ID address a profile repository instead.
type ProfileConfig struct {
	Path string `mapstructure:"path"`
	Dir  string `mapstructure:"dir"`
	ID   string `mapstructure:"id"`
}

// CatalogsConfig overrides the bundled catalogs with external YAML files.
// Empty fields keep the embedded data.
type CatalogsConfig struct {
	Universities string `mapstructure:"universities"`
	Mentors      string `mapstructure:"mentors"`
	Roommates    string `mapstructure:"roommates"`
	Regions      string `mapstructure:"regions"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
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
		Short: "uniassist is a cli for scoring university, mentor and roommate compatibility for a student profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is uniassist.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for commands that score something. Version works
	// without it.
	if runCmd.CalledAs() == "" && analyzeCmd.CalledAs() == "" {
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
