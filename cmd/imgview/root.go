package main

import (
	"errors"
	"io"
	"os"

	apppkg "github.com/kk-code-lab/imgview/internal/app"
	"github.com/kk-code-lab/imgview/internal/config"
	"github.com/kk-code-lab/imgview/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type rootOptions struct {
	configFile string
	debug      bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "imgview [path]",
		Short: "Page or scroll through the images of a directory in the terminal",
		Long: `imgview shows the images of a directory as a sequence you can page through
or scroll continuously, with drag, fling and wheel gestures.

PATH may be a directory or an image file; a file opens its directory with
that file focused.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("imgview needs a terminal; use 'imgview list' to print the catalog")
			}
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			log, closer, err := opts.logger(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closer.Close()
			}()

			app, err := apppkg.NewApplication(cfg, pathArg(args), log)
			if err != nil {
				return err
			}
			defer func() {
				_ = app.Close()
			}()

			app.Run()
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default is $HOME/.config/imgview/config.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")
	flags.String("mode", "paged", "layout mode: paged or continuous")
	flags.Bool("reversed", true, "read right to left in paged mode")
	flags.Int("gap", 1, "pixels between images")
	flags.Int("prefetch", 5, "images kept ready on each side of the focus")
	flags.Bool("animate", true, "animate settling after gestures")
	flags.Bool("hidden", false, "include hidden files")
	flags.Bool("watch", true, "reload when the directory changes")
	flags.Bool("async", true, "decode images in the background")
	flags.String("locale", "", "collation locale for file ordering, e.g. de or ja")
	flags.String("log-file", "", "write logs to this file")
	flags.String("log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(config.Options{File: o.configFile, Flags: cmd.Flags()})
}

func (o *rootOptions) logger(cfg *config.Config) (*logrus.Logger, io.Closer, error) {
	return logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Debug:  o.debug,
	})
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
