// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/device"
)

func newRootCommand() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:          "audmix",
		Short:        "Four channel sound effect mixer",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return readConfigFile(v)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("backend", audmix.DefaultBackend, "audio backend ("+strings.Join(device.Backends(), "|")+")")
	pf.Int("rate", audmix.DefaultSampleRate, "output sample rate in Hz")
	pf.Int("buffer-frames", audmix.DefaultBufferFrames, "device buffer size in frames")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("config", "", "config file (yaml, toml or json)")

	// Flags are registered above, so binding cannot fail.
	_ = v.BindPFlags(pf)
	v.SetEnvPrefix("AUDMIX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(
		newPlayCommand(v),
		newRenderCommand(v),
	)

	return rootCmd
}

func readConfigFile(v *viper.Viper) error {
	path := v.GetString("config")
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// engineConfig builds the engine configuration from flags, environment and
// config file, in that order of precedence.
func engineConfig(v *viper.Viper, logOut io.Writer) (audmix.Config, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return audmix.Config{}, fmt.Errorf("log level: %w", err)
	}

	cfg := audmix.DefaultConfig()
	cfg.Backend = v.GetString("backend")
	cfg.SampleRate = v.GetInt("rate")
	cfg.BufferFrames = v.GetInt("buffer-frames")
	cfg.Logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	return cfg, cfg.Validate()
}

// loadAll loads every file into the engine, in order.
func loadAll(eng *audmix.Engine, files []string, trim bool) ([]int, error) {
	handles := make([]int, 0, len(files))
	for _, path := range files {
		h, err := eng.LoadSample(path, trim)
		if err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}
