package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/jtype/config"
	"github.com/dhamidi/jtype/resolved"
)

// options are the persistent flags shared by every command. Flags that
// were set override .jtype.yaml.
type options struct {
	configDir   string
	classpath   []string
	lib         string
	maxDepth    int
	noBootstrap bool
	verbose     int
	logFile     string
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "jtype",
		Short:        "Resolve Java generic types from class files",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configDir, "dir", "C", ".", "directory containing "+config.FileName)
	flags.StringSliceVarP(&opts.classpath, "classpath", "c", nil, "class directories and jars, in search order")
	flags.StringVarP(&opts.lib, "lib", "l", "", "directory whose jars are appended to the classpath")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "maximum nesting of type arguments")
	flags.BoolVar(&opts.noBootstrap, "no-bootstrap", false, "do not include the built-in java.lang and java.util declarations")
	flags.CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newResolveCmd(opts))
	rootCmd.AddCommand(newDumpCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newClasspathCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// load reads the configuration, applies the flags that were set on cmd and
// configures logging.
func (o *options) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configDir)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("classpath") {
		cfg.Classpath = o.classpath
	}
	if flags.Changed("lib") {
		cfg.Lib = o.lib
	}
	if flags.Changed("max-depth") {
		if o.maxDepth <= 0 {
			return nil, fmt.Errorf("--max-depth must be positive, got %d", o.maxDepth)
		}
		cfg.MaxDepth = o.maxDepth
	}
	if o.noBootstrap {
		bootstrap := false
		cfg.Bootstrap = &bootstrap
	}
	if flags.Changed("verbose") {
		cfg.Log.Verbosity = o.verbose
	}
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}

	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, path)
	return cfg, nil
}

func (o *options) resolver(cmd *cobra.Command) (*resolved.Resolver, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, err
	}
	return cfg.Resolver()
}
