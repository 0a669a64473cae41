package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load,
// e.g. I18N_WALKER_OUTPUT_DIR.
const EnvPrefix = "I18N_WALKER"

// Load builds Options with the following priority (highest to lowest):
//  1. Environment variables (I18N_WALKER_*, a .env file is loaded first)
//  2. Config file (configFile, or .i18n-walker.yaml in the working directory)
//  3. Default values
//
// An explicit configFile that does not exist is an error; a missing default
// config file is not.
func Load(configFile string) (Options, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".i18n-walker")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Options{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("Using config file")
	}

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return Options{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return opts, nil
}

// setDefaults registers every key so environment variables can override it.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("translator_functions", d.TranslatorFunctions)
	v.SetDefault("html_translator_patterns", d.HTMLTranslatorPatterns)
	v.SetDefault("exception_object_names", d.ExceptionObjectNames)
	v.SetDefault("exception_functions", d.ExceptionFunctions)
	v.SetDefault("sources", d.Sources)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("default_catalog", d.DefaultCatalog)
	v.SetDefault("clean", d.Clean)
	v.SetDefault("recommend", d.Recommend)
	v.SetDefault("dry_run", d.DryRun)
	v.SetDefault("source_extensions", d.SourceExtensions)
	v.SetDefault("markup_extensions", d.MarkupExtensions)
	v.SetDefault("text_extensions", d.TextExtensions)
}
