package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/wippyai/kumquat/integrate"
)

const envPrefix = "KUMQUAT"

// Configuration keys. Flags, environment variables and config file entries
// share these names.
const (
	keyLogLevel         = "log-level"
	keyTolerance        = "tolerance"
	keyMaxLevels        = "max-levels"
	keyPoints           = "points"
	keyIntervalInfinity = "interval-infinity"
)

func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyTolerance, 0.0)
	v.SetDefault(keyMaxLevels, -1)
	v.SetDefault(keyPoints, 0)
	v.SetDefault(keyIntervalInfinity, 0)

	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", cfgFile, err)
	}
	return nil
}

// configOptions returns the configured defaults that method accepts. Zero
// and negative sentinels mean unset. Defaults a method does not know, such
// as points for tanh_sinh, are skipped.
func configOptions(v *viper.Viper, method integrate.Method) []integrate.Option {
	var candidates []integrate.Option
	if tol := v.GetFloat64(keyTolerance); tol > 0 {
		candidates = append(candidates, integrate.Tolerance(tol))
	}
	if n := v.GetInt(keyMaxLevels); n >= 0 {
		candidates = append(candidates, integrate.MaxLevels(n))
	}
	if n := v.GetInt(keyPoints); n > 0 {
		candidates = append(candidates, integrate.Points(n))
	}
	if s := v.GetInt(keyIntervalInfinity); s != 0 {
		candidates = append(candidates, integrate.IntervalInfinity(s))
	}

	cfg, err := integrate.NewConfig(method)
	if err != nil {
		return nil
	}
	var opts []integrate.Option
	for _, o := range candidates {
		if cfg.Set(o.Name, o.Value) == nil {
			opts = append(opts, o)
		}
	}
	return opts
}
