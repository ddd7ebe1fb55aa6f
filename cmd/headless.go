package cmd

import (
	"context"

	"github.com/beanboi7/chyp8/emu/console"
	"github.com/beanboi7/chyp8/emu/screen"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var headlessCmd = &cobra.Command{
	Use:     "headless `path/ROM`",
	Short:   "run a ROM without a window and print the screen to the terminal",
	Args:    cobra.ExactArgs(1),
	PreRunE: bindFlags,
	RunE:    Headless,
}

// chyp8 headless 'path/to/ROM' -n 2000
func Headless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	emu, err := loadEMU(args[0])
	if err != nil {
		return err
	}

	term := &screen.Terminal{}
	c := console.New(emu, term,
		console.WithClockSpeed(cfg.Clock),
		console.WithRefreshRate(cfg.Refresh),
		console.WithMaxCycles(cfg.Cycles),
		console.WithLogger(log.WithField("rom", args[0])),
	)

	stop := shutdownOnInterrupt(c)
	err = c.Run(context.Background())
	interrupted := stop()
	if needsFinalFrame(err, interrupted, cfg.Cycles, c.Cycles()) {
		term.Draw(emu.Framebuffer())
	}
	log.WithFields(logrus.Fields{
		"cycles":      c.Cycles(),
		"interrupted": interrupted,
	}).Info("stopped")
	return err
}

func init() {
	headlessCmd.Flags().IntP("clock", "c", console.DefaultClockSpeed, "instructions per second")
	headlessCmd.Flags().IntP("refresh", "r", 10, "terminal redraws per second")
	headlessCmd.Flags().Uint64P("cycles", "n", 1000, "stop after this many instructions, 0 runs until interrupted")
}
