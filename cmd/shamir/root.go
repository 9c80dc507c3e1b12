package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/privy-io/shamir-secret-sharing/xlogger"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	lookupEnv    func(string) (string, bool)
	readPassword func() ([]byte, error)

	configFile string
	logLevel   string
	logFormat  string

	conf   *Config
	logger *slog.Logger
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:        in,
		out:       out,
		errOut:    errOut,
		lookupEnv: os.LookupEnv,
		readPassword: func() ([]byte, error) {
			return term.ReadPassword(int(os.Stdin.Fd()))
		},
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shamir",
		Short: "Split secrets into shares with Shamir's Secret Sharing",
		Long: `shamir splits a secret into N shares so that any T of them reconstruct it,
while fewer than T reveal nothing about it.

Shares are base64 strings. The last decoded byte of each share is its X coordinate,
so shares are compatible with other GF(2^8) implementations using the same layout.

Combining fewer shares than the threshold yields a wrong secret without an error.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (text, json)")

	cmd.AddCommand(a.splitCmd())
	cmd.AddCommand(a.combineCmd())
	cmd.AddCommand(a.verifyCmd())
	cmd.AddCommand(a.versionCmd())

	return cmd
}

// setup loads configuration and the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig(a.configFile, a.lookupEnv)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		conf.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		conf.Log.Format = a.logFormat
	}

	a.conf = conf

	return nil
}

// finish applies the subcommand's explicit flags on top of the loaded configuration.
func (a *app) finish(cmd *cobra.Command, opts *commonOptions) error {
	if cmd.Flags().Changed("shares") {
		a.conf.Shares = opts.shares
	}
	if cmd.Flags().Changed("threshold") {
		a.conf.Threshold = opts.threshold
		a.conf.thresholdSet = true
	}
	if cmd.Flags().Changed("format") {
		a.conf.Format = opts.format
	}
	a.conf.Format = strings.ToLower(a.conf.Format)

	if err := a.conf.Validate(); err != nil {
		return err
	}

	logConf := a.conf.loggerConfig()
	logConf.Output = a.errOut
	a.logger = xlogger.New(logConf)

	return nil
}

type commonOptions struct {
	shares    int
	threshold int
	format    string
	in        string
	out       string
}

func (o *commonOptions) addIOFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", formatText, "share encoding (text, json, yaml)")
	cmd.Flags().StringVar(&o.in, "in", "", "read input from file instead of stdin")
	cmd.Flags().StringVar(&o.out, "out", "", "write output to file instead of stdout")
}

func (a *app) input(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(a.in), nil
	}
	return os.Open(path)
}

// output writes to path with owner-only permissions, or to stdout.
func (a *app) output(path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(a.out)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	// the mode above only applies to new files
	if err := f.Chmod(0o600); err != nil {
		_ = f.Close()
		return err
	}

	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}
