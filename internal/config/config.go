// Package config loads MARTY's settings from defaults, a YAML file, MARTY_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/marty/internal/conversation"
	"github.com/alexanderramin/marty/internal/domain"
	"github.com/alexanderramin/marty/internal/llm"
	"github.com/alexanderramin/marty/internal/tools"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "MARTY"

type Config struct {
	DBPath   string         `mapstructure:"db_path"`
	LogFile  string         `mapstructure:"log_file"`
	Verbose  bool           `mapstructure:"verbose"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Tools    ToolsConfig    `mapstructure:"tools"`
	UI       UIConfig       `mapstructure:"ui"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type LLMConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	Provider          string `mapstructure:"provider"`
	Endpoint          string `mapstructure:"endpoint"`
	Model             string `mapstructure:"model"`
	APIKey            string `mapstructure:"api_key"`
	TimeoutMs         int    `mapstructure:"timeout_ms"`
	MaxRetries        int    `mapstructure:"max_retries"`
	LogCalls          bool   `mapstructure:"log_calls"`
	ChatMaxTokens     int    `mapstructure:"chat_max_tokens"`
	ClassifyMaxTokens int    `mapstructure:"classify_max_tokens"`
}

type PlannerConfig struct {
	WindowStartHour int     `mapstructure:"window_start_hour"`
	WindowEndHour   int     `mapstructure:"window_end_hour"`
	BlockHours      float64 `mapstructure:"block_hours"`
	DeadlinePhrase  string  `mapstructure:"deadline_phrase"`
	EventTitle      string  `mapstructure:"event_title"`
}

type CalendarConfig struct {
	TimeoutMs int `mapstructure:"timeout_ms"`
}

type ToolsConfig struct {
	AllowedApps map[string]string `mapstructure:"allowed_apps"`
}

type UIConfig struct {
	TypewriterDelayMs int    `mapstructure:"typewriter_delay_ms"`
	HistoryFile       string `mapstructure:"history_file"`
}

// Options control where Load looks.
type Options struct {
	// ConfigFile overrides the default ~/.config/marty/config.yaml.
	ConfigFile string
	// Flags, when set, are bound over every other source. The flag "db"
	// maps to db_path.
	Flags *pflag.FlagSet
	// Home overrides the user's home directory.
	Home string
}

func setDefaults(v *viper.Viper, home string) {
	dataDir := filepath.Join(home, ".marty")
	llmDefaults := llm.DefaultConfig()
	plan := conversation.DefaultSettings()

	v.SetDefault("db_path", filepath.Join(dataDir, "marty.db"))
	v.SetDefault("log_file", filepath.Join(dataDir, "marty.log"))
	v.SetDefault("verbose", false)

	v.SetDefault("llm.enabled", llmDefaults.Enabled)
	v.SetDefault("llm.provider", string(llmDefaults.Provider))
	v.SetDefault("llm.endpoint", llmDefaults.Endpoint)
	v.SetDefault("llm.model", llmDefaults.Model)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.timeout_ms", llmDefaults.TimeoutMs)
	v.SetDefault("llm.max_retries", llmDefaults.MaxRetries)
	v.SetDefault("llm.log_calls", false)
	v.SetDefault("llm.chat_max_tokens", llmDefaults.Tasks[llm.TaskChat].MaxTokens)
	v.SetDefault("llm.classify_max_tokens", llmDefaults.Tasks[llm.TaskClassify].MaxTokens)

	v.SetDefault("planner.window_start_hour", plan.Window.StartHour)
	v.SetDefault("planner.window_end_hour", plan.Window.EndHour)
	v.SetDefault("planner.block_hours", plan.BlockHours)
	v.SetDefault("planner.deadline_phrase", plan.DeadlinePhrase)
	v.SetDefault("planner.event_title", plan.EventTitle)

	v.SetDefault("calendar.timeout_ms", 5000)
	v.SetDefault("tools.allowed_apps", tools.DefaultAllowedApps)
	v.SetDefault("ui.typewriter_delay_ms", 30)
	v.SetDefault("ui.history_file", filepath.Join(dataDir, "history"))
}

// Load resolves the configuration and validates it.
func Load(opts Options) (*Config, error) {
	home := opts.Home
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		home = h
	}

	v := viper.New()
	setDefaults(v, home)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "marty"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)
	cfg.UI.HistoryFile = expandHome(cfg.UI.HistoryFile, home)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"db_path": "db",
		"verbose": "verbose",
	}
	for key, name := range bindings {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate rejects settings the planner or clients cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if _, err := llm.ParseProvider(c.LLM.Provider); err != nil {
		errs = append(errs, err)
	}
	if c.LLM.TimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("llm.timeout_ms must be positive, got %d", c.LLM.TimeoutMs))
	}
	if c.LLM.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("llm.max_retries must not be negative, got %d", c.LLM.MaxRetries))
	}
	if c.LLM.ChatMaxTokens <= 0 || c.LLM.ClassifyMaxTokens <= 0 {
		errs = append(errs, errors.New("llm token limits must be positive"))
	}
	if c.Calendar.TimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("calendar.timeout_ms must be positive, got %d", c.Calendar.TimeoutMs))
	}
	if c.UI.TypewriterDelayMs < 0 {
		errs = append(errs, fmt.Errorf("ui.typewriter_delay_ms must not be negative, got %d", c.UI.TypewriterDelayMs))
	}

	w := c.Window()
	if err := w.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("planner window: %w", err))
	} else if c.Planner.BlockHours <= 0 {
		errs = append(errs, fmt.Errorf("planner.block_hours must be positive, got %g", c.Planner.BlockHours))
	} else if time.Duration(c.Planner.BlockHours*float64(time.Hour)) > w.Length() {
		errs = append(errs, fmt.Errorf("planner.block_hours %g is longer than the %s window", c.Planner.BlockHours, w))
	}
	if strings.TrimSpace(c.Planner.EventTitle) == "" {
		errs = append(errs, errors.New("planner.event_title is required"))
	}
	return errors.Join(errs...)
}

func (c *Config) Window() domain.WorkWindow {
	return domain.WorkWindow{StartHour: c.Planner.WindowStartHour, EndHour: c.Planner.WindowEndHour}
}

// PlannerSettings converts the planner section for the conversation
// controller.
func (c *Config) PlannerSettings() conversation.Settings {
	return conversation.Settings{
		Window:         c.Window(),
		BlockHours:     c.Planner.BlockHours,
		DeadlinePhrase: c.Planner.DeadlinePhrase,
		EventTitle:     c.Planner.EventTitle,
	}
}

// LLMClientConfig converts the llm section for llm.NewClient.
func (c *Config) LLMClientConfig() llm.LLMConfig {
	cfg := llm.DefaultConfig()
	cfg.Enabled = c.LLM.Enabled
	cfg.LogCalls = c.LLM.LogCalls
	cfg.Provider = llm.Provider(c.LLM.Provider)
	cfg.Endpoint = c.LLM.Endpoint
	cfg.Model = c.LLM.Model
	cfg.APIKey = c.LLM.APIKey
	cfg.TimeoutMs = c.LLM.TimeoutMs
	cfg.MaxRetries = c.LLM.MaxRetries

	chat := cfg.Tasks[llm.TaskChat]
	chat.MaxTokens = c.LLM.ChatMaxTokens
	cfg.Tasks[llm.TaskChat] = chat
	classify := cfg.Tasks[llm.TaskClassify]
	classify.MaxTokens = c.LLM.ClassifyMaxTokens
	cfg.Tasks[llm.TaskClassify] = classify
	return cfg
}

func (c *Config) CalendarTimeout() time.Duration {
	return time.Duration(c.Calendar.TimeoutMs) * time.Millisecond
}

func (c *Config) TypewriterDelay() time.Duration {
	return time.Duration(c.UI.TypewriterDelayMs) * time.Millisecond
}
