package config

import (
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/nlu-dataprep/nluprep"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Featurizer FeaturizerConfig `mapstructure:"featurizer"`
	Dataset    DatasetConfig    `mapstructure:"dataset"`
	Tokenizer  TokenizerConfig  `mapstructure:"tokenizer"`
}

// FeaturizerConfig stores feature-construction settings.
type FeaturizerConfig struct {
	MaxSeqLen int `mapstructure:"maxSeqLen"`
	PadLabel  int `mapstructure:"padLabel"`
}

// DatasetConfig stores sampling settings for labeled dataset construction.
type DatasetConfig struct {
	NumSamples int  `mapstructure:"numSamples"`
	Shuffle    bool `mapstructure:"shuffle"`
}

// TokenizerConfig stores vocabulary settings for the WordPiece tokenizers.
type TokenizerConfig struct {
	VocabPath string `mapstructure:"vocabPath"`
	Lowercase bool   `mapstructure:"lowercase"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("featurizer.maxSeqLen", internal.DefaultMaxSeqLen)
	viper.SetDefault("featurizer.padLabel", internal.DefaultPadLabel)
	viper.SetDefault("dataset.numSamples", internal.DefaultNumSamples)
	viper.SetDefault("dataset.shuffle", internal.DefaultShuffle)
	viper.SetDefault("tokenizer.lowercase", true)

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // e.g. featurizer.maxSeqLen becomes FEATURIZER_MAXSEQLEN

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; defaults will be used.
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if AppConfig.Featurizer.MaxSeqLen <= 0 {
		return nil, fmt.Errorf("featurizer.maxSeqLen must be positive, got %d", AppConfig.Featurizer.MaxSeqLen)
	}

	return &AppConfig, nil
}
