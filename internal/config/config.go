package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/zuern/NLP-DictionaryGenerator/internal/wordlist"
)

type Config struct {
	Input      InputConfig      `mapstructure:"input"`
	Output     OutputConfig     `mapstructure:"output"`
	Logs       LogsConfig       `mapstructure:"logs"`
	Quota      QuotaConfig      `mapstructure:"quota"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
}

type InputConfig struct {
	WordListFile string `mapstructure:"word_list_file"`
}

type OutputConfig struct {
	DictionaryFile  string `mapstructure:"dictionary_file"`
	ResumeFile      string `mapstructure:"resume_file"`
	ExportDirectory string `mapstructure:"export_directory"`
}

type LogsConfig struct {
	Directory string `mapstructure:"directory"`
}

type QuotaConfig struct {
	DatabaseFile string `mapstructure:"database_file"`
	DailyLimit   int    `mapstructure:"daily_limit" validate:"min=1"`
}

type DictionaryConfig struct {
	BaseURL           string `mapstructure:"base_url" validate:"required,url"`
	Key               string `mapstructure:"key"`
	RequestsPerSecond int    `mapstructure:"requests_per_second" validate:"min=1"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"min=1"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" validate:"min=1"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/dictgen")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("input.word_list_file", "wordList.txt")
	v.SetDefault("output.dictionary_file", "dictionary.txt")
	v.SetDefault("output.resume_file", wordlist.ResumeFileName)
	v.SetDefault("output.export_directory", "exports")
	v.SetDefault("logs.directory", "logs")
	v.SetDefault("quota.database_file", filepath.Join("data", "dictgen.db"))
	v.SetDefault("quota.daily_limit", 1000)
	v.SetDefault("dictionary.base_url", "https://www.dictionaryapi.com")
	v.SetDefault("dictionary.requests_per_second", 2)
	v.SetDefault("dictionary.max_retries", 3)
	v.SetDefault("dictionary.timeout_seconds", 10)

	// The API key comes from the environment only, never the config file.
	if err := v.BindEnv("dictionary.key", "DICTIONARY_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind DICTIONARY_API_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
