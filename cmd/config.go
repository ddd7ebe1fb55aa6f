package cmd

import (
	"fmt"
	"os"

	"github.com/beanboi7/chyp8/emu/console"
	"github.com/beanboi7/chyp8/emu/cpu"

	"github.com/spf13/viper"
)

// config is the merged view of flags, environment and config file. Defaults
// come from the flags of the running command, see bindFlags.
type config struct {
	Clock   int     `mapstructure:"clock"`
	Refresh int     `mapstructure:"refresh"`
	Scale   float64 `mapstructure:"scale"`
	Beep    string  `mapstructure:"beep"`
	Cycles  uint64  `mapstructure:"cycles"`
}

func loadConfig(v *viper.Viper) (config, error) {
	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	switch {
	case cfg.Clock <= 0 || cfg.Clock > console.MaxRate:
		return cfg, fmt.Errorf("config: clock must be in 1..%d Hz, got %d", console.MaxRate, cfg.Clock)
	case cfg.Refresh <= 0 || cfg.Refresh > console.MaxRate:
		return cfg, fmt.Errorf("config: refresh must be in 1..%d Hz, got %d", console.MaxRate, cfg.Refresh)
	case cfg.Scale < 0:
		return cfg, fmt.Errorf("config: scale must not be negative, got %v", cfg.Scale)
	}
	return cfg, nil
}

// loadEMU reads the ROM at romPath into a fresh machine.
func loadEMU(romPath string) (*cpu.EMU, error) {
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return nil, err
	}

	emu := cpu.NewEMU(cpu.WithLogger(log.WithField("rom", romPath)))
	if err := emu.LoadROM(rom); err != nil {
		return nil, fmt.Errorf("%s: %w", romPath, err)
	}
	return emu, nil
}
