// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/utils"
)

var (
	errNoOutput      = errors.New("--out is required")
	errEndlessRender = errors.New("--loop needs --seconds")
)

type renderOptions struct {
	out     string
	seconds float64
	loop    bool
	trim    bool
}

func newRenderCommand(v *viper.Viper) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [flags] file...",
		Short: "Mix up to four files offline into a WAV file",
		Long: `Render mixes the files the way play would, without an audio device,
and writes the result as mono 16-bit WAV at --rate.

Without --seconds it stops once every channel is idle.`,
		Args: cobra.RangeArgs(1, audmix.NumChannels),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.out == "" {
				return errNoOutput
			}
			if opts.loop && opts.seconds <= 0 {
				return errEndlessRender
			}

			cfg, err := engineConfig(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cfg.Backend = "null"

			return runRender(cmd.OutOrStdout(), cfg, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.out, "out", "o", "", "output WAV file")
	f.Float64Var(&opts.seconds, "seconds", 0, "length to render; 0 renders until every channel is idle")
	f.BoolVar(&opts.loop, "loop", false, "repeat each file")
	f.BoolVar(&opts.trim, "trim", false, "drop trailing silence")

	return cmd
}

func runRender(w io.Writer, cfg audmix.Config, files []string, opts renderOptions) error {
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

	for ch, h := range handles {
		if err := eng.Play(h, ch, opts.loop); err != nil {
			return err
		}
	}

	dev, ok := eng.Device().(*device.Null)
	if !ok {
		return fmt.Errorf("render: unexpected device %T", eng.Device())
	}

	frames := int(opts.seconds * float64(cfg.SampleRate))
	mixed := pullFrames(dev, eng, frames)

	out, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	if err := wav.WriteWAV16(out, cfg.SampleRate, mixed); err != nil {
		_ = out.Close()
		return fmt.Errorf("writing %s: %w", opts.out, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "wrote %d frames (%.2fs) to %s\n",
		len(mixed), float64(len(mixed))/float64(cfg.SampleRate), opts.out)
	return err
}

// pullFrames drives the null device one buffer at a time. With frames <= 0
// it stops after the buffer in which the last channel went idle.
func pullFrames(dev *device.Null, eng *audmix.Engine, frames int) []int16 {
	buf := make([]byte, dev.BufferBytes())
	mixed := make([]int16, 0, max(frames, 0))

	for {
		if frames > 0 && len(mixed) >= frames {
			return mixed[:frames]
		}
		if frames <= 0 && eng.Idle() {
			return mixed
		}
		dev.Pull(buf)
		mixed = append(mixed, utils.Int16sFromLE(buf)...)
	}
}
