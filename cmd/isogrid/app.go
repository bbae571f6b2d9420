package main

import (
	"fmt"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds state shared by all subcommands.
type app struct {
	log *logrus.Logger
	k   *koanf.Koanf

	configPath string
	logLevel   string
	logJSON    bool

	root *cobra.Command
}

func newApp() *app {
	a := &app{
		log: logrus.New(),
		k:   koanf.New("."),
	}
	a.root = &cobra.Command{
		Use:           "isogrid",
		Short:         "Upsample images and extract isosurfaces from scalar grids",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	pf := a.root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "TOML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.BoolVar(&a.logJSON, "log-json", false, "log in JSON format")
	a.root.AddCommand(
		a.upsampleCmd(),
		a.isosurfaceCmd(),
		a.paletteCmd(),
	)
	return a
}

// execute runs the command line and logs the error it fails with, if any.
func (a *app) execute() error {
	err := a.root.Execute()
	if err != nil {
		a.log.WithError(err).Error("isogrid failed")
	}
	return err
}

// setup configures logging and loads the configuration file.
func (a *app) setup(cmd *cobra.Command) error {
	a.log.SetOutput(cmd.ErrOrStderr())
	lvl, err := logrus.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	a.log.SetLevel(lvl)
	if a.logJSON {
		a.log.SetFormatter(&logrus.JSONFormatter{})
	}
	if a.configPath == "" {
		return nil
	}
	if err := a.k.Load(file.Provider(a.configPath), toml.Parser()); err != nil {
		return fmt.Errorf("loading config %s: %w", a.configPath, err)
	}
	a.log.WithField("path", a.configPath).Debug("loaded config")
	return nil
}

// section decodes the config table name into dst. Flags of cmd fill keys
// absent from the table, and flags changed on the command line override it.
func (a *app) section(cmd *cobra.Command, name string, dst interface{}) error {
	sub := a.k.Cut(name)
	if err := sub.Load(posflag.Provider(cmd.LocalNonPersistentFlags(), ".", sub), nil); err != nil {
		return fmt.Errorf("loading %s flags: %w", name, err)
	}
	if err := sub.Unmarshal("", dst); err != nil {
		return fmt.Errorf("decoding %s config: %w", name, err)
	}
	return nil
}
