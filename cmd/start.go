package cmd

import (
	"context"

	"github.com/beanboi7/chyp8/emu/audio"
	"github.com/beanboi7/chyp8/emu/console"
	"github.com/beanboi7/chyp8/emu/screen"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var startCmd = &cobra.Command{
	Use:     "start `path/ROM`",
	Short:   "load and start the Emulator",
	Args:    cobra.ExactArgs(1),
	PreRunE: bindFlags,
	RunE:    Start,
}

// chyp8 start 'path/to/ROM' -r 69
func Start(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	emu, err := loadEMU(args[0])
	if err != nil {
		return err
	}

	if cfg.Scale == 0 {
		cfg.Scale = 10
	}
	win, err := screen.NewWindow(cfg.Scale)
	if err != nil {
		return err
	}

	opts := []console.Opt{
		console.WithKeypad(win),
		console.WithClockSpeed(cfg.Clock),
		console.WithRefreshRate(cfg.Refresh),
		console.WithMaxCycles(cfg.Cycles),
		console.WithLogger(log.WithField("rom", args[0])),
	}
	speaker, err := audio.NewSpeaker(cfg.Beep)
	if err != nil {
		log.WithError(err).Warn("no audio, beeps will be logged")
	} else {
		opts = append(opts, console.WithBeeper(speaker))
	}

	c := console.New(emu, win, opts...)
	stop := shutdownOnInterrupt(c)
	defer stop()
	return c.Run(context.Background())
}

func init() {
	startCmd.Flags().IntP("refresh", "r", console.DefaultRefreshRate, "sets the refresh rate of the display")
	startCmd.Flags().IntP("clock", "c", console.DefaultClockSpeed, "instructions per second")
	startCmd.Flags().Float64P("scale", "s", 10, "window pixels per CHIP-8 pixel")
	startCmd.Flags().String("beep", "", "mp3 file played as the beep (default is a generated tone)")
	startCmd.Flags().Uint64P("cycles", "n", 0, "stop after this many instructions, 0 runs forever")
}
