package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	log     = logrus.New()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "chyp8 [command]",
	Short:         "Chip-8 emulator using Go",
	Long:          "A Chip-8 emulator written from scratch that mimics the functionalities of a Chip-8, an interpretted language originally written for the COSMIC-VIP/ Telmac 8 bit systems.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Formatter = &logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chyp8.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: error, warn, info, debug or trace (trace logs every instruction)")
	cobra.CheckErr(viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")))
	rootCmd.AddCommand(startCmd, headlessCmd, disasmCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("chyp8 failed")
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".chyp8" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".chyp8")
	}

	viper.SetEnvPrefix("chyp8")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	readErr := viper.ReadInConfig()
	cobra.CheckErr(setLogLevel(log, viper.GetViper(), verbose))
	if readErr == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}

// setLogLevel applies the log-level key. --verbose raises a quieter level to debug.
func setLogLevel(l *logrus.Logger, v *viper.Viper, verbose bool) error {
	name := v.GetString("log-level")
	if name == "" {
		name = "info"
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if verbose && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)
	return nil
}

// bindFlags binds the running command's flags to viper keys of the same name.
// Commands share keys, so this happens when a command runs, not at init.
func bindFlags(cmd *cobra.Command, args []string) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err == nil {
			err = viper.BindPFlag(f.Name, f)
		}
	})
	return err
}
