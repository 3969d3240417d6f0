package cmd

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultSitesFile      = "sites.json"
	defaultConcurrency    = 4
	defaultRateLimit      = 5
	defaultTimeoutSeconds = 30
	defaultRetries        = 1
)

// scanSettings consolidates the runtime knobs of the scan command.
type scanSettings struct {
	SitesFile   string
	Concurrency int
	RateLimit   int
	TimeoutSecs int
	Retries     int
	Progress    bool
}

// resolveScanSettings applies the usual precedence: explicit flag wins,
// then the config file, then the built-in default.
func resolveScanSettings(flags *pflag.FlagSet) scanSettings {
	s := scanSettings{
		SitesFile:   defaultSitesFile,
		Concurrency: defaultConcurrency,
		RateLimit:   defaultRateLimit,
		TimeoutSecs: defaultTimeoutSeconds,
		Retries:     defaultRetries,
		Progress:    true,
	}

	if v := viper.GetString("scan.sites"); v != "" {
		s.SitesFile = v
	}
	if v := viper.GetInt("scan.concurrency"); v > 0 {
		s.Concurrency = v
	}
	if v := viper.GetInt("scan.rate_limit"); v > 0 {
		s.RateLimit = v
	}
	if v := viper.GetInt("scan.timeout"); v > 0 {
		s.TimeoutSecs = v
	}
	if viper.IsSet("scan.retries") {
		if v := viper.GetInt("scan.retries"); v >= 0 {
			s.Retries = v
		}
	}

	if flags.Changed("sites") {
		s.SitesFile, _ = flags.GetString("sites")
	}
	if flags.Changed("concurrency") {
		s.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("rate-limit") {
		s.RateLimit, _ = flags.GetInt("rate-limit")
	}
	if flags.Changed("timeout") {
		s.TimeoutSecs, _ = flags.GetInt("timeout")
	}
	if flags.Changed("retries") {
		s.Retries, _ = flags.GetInt("retries")
	}
	if flags.Changed("no-progress") {
		noProgress, _ := flags.GetBool("no-progress")
		s.Progress = !noProgress
	}

	return s
}
