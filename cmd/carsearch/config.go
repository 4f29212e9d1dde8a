// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-listing-search/internal/infrastructure/marketplace"
	"github.com/linuxfoundation/lfx-v2-listing-search/internal/service"
	"github.com/linuxfoundation/lfx-v2-listing-search/pkg/errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "CARSEARCH"
	configFileName = "carsearch"

	defaultAPIBaseURL    = "http://localhost:8080"
	defaultAPITimeout    = 15 * time.Second
	defaultAPIRetryDelay = 500 * time.Millisecond
	defaultPageURL       = "http://localhost:8080/search"
	defaultPort          = "8080"
	defaultBind          = "*"
)

// Configuration keys. Environment variables use the CARSEARCH_ prefix with
// dots replaced by underscores, e.g. CARSEARCH_API_BASE_URL.
const (
	keyAPIBaseURL    = "api.base_url"
	keyAPIToken      = "api.token"
	keyAPITimeout    = "api.timeout"
	keyAPIMaxRetries = "api.max_retries"
	keyAPIRetryDelay = "api.retry_delay"
	keyHistoryMode   = "search.history_mode"
	keyPageURL       = "search.page_url"
	keyServePort     = "serve.port"
	keyServeBind     = "serve.bind"
	keyServeDebug    = "serve.debug"
	keyServeLatency  = "serve.latency"
)

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"api-url":         keyAPIBaseURL,
	"api-token":       keyAPIToken,
	"api-timeout":     keyAPITimeout,
	"api-max-retries": keyAPIMaxRetries,
	"api-retry-delay": keyAPIRetryDelay,
	"history":         keyHistoryMode,
	"page-url":        keyPageURL,
	"port":            keyServePort,
	"bind":            keyServeBind,
	"debug":           keyServeDebug,
	"latency":         keyServeLatency,
}

// appConfig is the resolved configuration of one command invocation
type appConfig struct {
	Marketplace marketplace.Config
	HistoryMode service.HistoryMode
	PageURL     string
	Serve       serveConfig
}

type serveConfig struct {
	Port    string
	Bind    string
	Debug   bool
	Latency time.Duration
}

// Addr returns the listen address
func (s serveConfig) Addr() string {
	if s.Bind == "" || s.Bind == "*" {
		return ":" + s.Port
	}
	return s.Bind + ":" + s.Port
}

// newViper reads defaults, then the optional config file, then the
// environment, then flags explicitly set on cmd. Later sources win.
func newViper(cmd *cobra.Command, configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault(keyAPIBaseURL, defaultAPIBaseURL)
	v.SetDefault(keyAPIToken, "")
	v.SetDefault(keyAPITimeout, defaultAPITimeout.String())
	v.SetDefault(keyAPIMaxRetries, 0)
	v.SetDefault(keyAPIRetryDelay, defaultAPIRetryDelay.String())
	v.SetDefault(keyHistoryMode, string(service.HistoryReplace))
	v.SetDefault(keyPageURL, defaultPageURL)
	v.SetDefault(keyServePort, defaultPort)
	v.SetDefault(keyServeBind, defaultBind)
	v.SetDefault(keyServeDebug, false)
	v.SetDefault(keyServeLatency, "0s")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for name, key := range flagKeys {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	return v, nil
}

// loadConfig resolves and validates the configuration for cmd
func loadConfig(cmd *cobra.Command, configFile string) (appConfig, error) {
	v, err := newViper(cmd, configFile)
	if err != nil {
		return appConfig{}, err
	}

	mp, err := marketplace.NewConfig(
		v.GetString(keyAPIBaseURL),
		v.GetString(keyAPIToken),
		v.GetString(keyAPITimeout),
		v.GetInt(keyAPIMaxRetries),
		v.GetString(keyAPIRetryDelay),
	)
	if err != nil {
		return appConfig{}, errors.NewValidation("invalid api configuration", err)
	}

	mode := service.HistoryMode(strings.ToLower(v.GetString(keyHistoryMode)))
	if mode != service.HistoryReplace && mode != service.HistoryPush {
		return appConfig{}, errors.NewValidation(fmt.Sprintf("%s must be %q or %q, got %q",
			keyHistoryMode, service.HistoryReplace, service.HistoryPush, mode))
	}

	latency, err := time.ParseDuration(v.GetString(keyServeLatency))
	if err != nil || latency < 0 {
		return appConfig{}, errors.NewValidation(fmt.Sprintf("%s must be a non-negative duration", keyServeLatency), err)
	}

	return appConfig{
		Marketplace: mp,
		HistoryMode: mode,
		PageURL:     strings.TrimSuffix(v.GetString(keyPageURL), "?"),
		Serve: serveConfig{
			Port:    v.GetString(keyServePort),
			Bind:    v.GetString(keyServeBind),
			Debug:   v.GetBool(keyServeDebug),
			Latency: latency,
		},
	}, nil
}
