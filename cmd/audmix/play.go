// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ik5/audmix"
)

const idlePollInterval = 50 * time.Millisecond

var errPlayNeedsDevice = errors.New("play needs an audio device; use render with the null backend")

type playOptions struct {
	loop      bool
	trim      bool
	loopStart int
	loopEnd   int
}

func newPlayCommand(v *viper.Viper) *cobra.Command {
	opts := playOptions{}

	cmd := &cobra.Command{
		Use:   "play [flags] file...",
		Short: "Play up to four files at once, one per channel",
		Long: `Play loads each file into its own channel and plays them together.
It returns once every channel is idle, or on interrupt.

Loop positions are in 1/128 s. Setting --loop-start or --loop-end plays each
file once and then repeats that region until interrupted.`,
		Args: cobra.RangeArgs(1, audmix.NumChannels),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := engineConfig(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cfg.Backend == "null" {
				return errPlayNeedsDevice
			}

			region := cmd.Flags().Changed("loop-start") || cmd.Flags().Changed("loop-end")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runPlay(ctx, cfg, args, opts, region)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.loop, "loop", false, "repeat each file until interrupted")
	f.BoolVar(&opts.trim, "trim", false, "drop trailing silence")
	f.IntVar(&opts.loopStart, "loop-start", 0, "loop region start in 1/128 s")
	f.IntVar(&opts.loopEnd, "loop-end", -1, "loop region end in 1/128 s (-1 is the end of the file)")

	return cmd
}

func runPlay(ctx context.Context, cfg audmix.Config, files []string, opts playOptions, region bool) error {
	eng, err := audmix.New(cfg)
	if err != nil {
		return err
	}

	handles, err := loadAll(eng, files, opts.trim)
	if err != nil {
		return err
	}

	if err := eng.Init(); err != nil {
		return err
	}
	defer eng.Shutdown()

	loopEnd := opts.loopEnd
	if loopEnd < 0 {
		loopEnd = math.MaxInt32
	}

	for ch, h := range handles {
		if region {
			err = eng.PlayLoop(h, ch, opts.loopStart, loopEnd)
		} else {
			err = eng.Play(h, ch, opts.loop)
		}
		if err != nil {
			return err
		}
	}

	return waitIdle(ctx, eng, idlePollInterval)
}

// waitIdle returns when no channel is playing or ctx is done.
func waitIdle(ctx context.Context, eng *audmix.Engine, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !eng.Idle() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}
