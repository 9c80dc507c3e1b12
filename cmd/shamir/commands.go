package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/privy-io/shamir-secret-sharing/shamir"
	"github.com/spf13/cobra"
)

var errThresholdRequired = errors.New("verify: threshold required, pass --threshold or a json/yaml bundle")

func (a *app) splitCmd() *cobra.Command {
	opts := &commonOptions{}
	var prompt bool

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into shares",
		Long: `Split reads a secret from --in, an interactive prompt (--prompt) or stdin and
writes the shares. The secret is used byte for byte; a trailing newline is part of it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.finish(cmd, opts); err != nil {
				return err
			}

			secret, err := a.readSecret(opts.in, prompt)
			if err != nil {
				return err
			}

			shares, err := shamir.Split(secret, a.conf.Shares, a.conf.Threshold)
			if err != nil {
				return err
			}

			a.logger.Debug("split secret",
				slog.Int("shares", len(shares)),
				slog.Int("threshold", a.conf.Threshold),
				slog.Int("secret_length", len(secret)),
			)

			b := bundle{Threshold: a.conf.Threshold, Shares: shares}

			return a.output(opts.out, func(w io.Writer) error {
				return writeShares(w, a.conf.Format, b)
			})
		},
	}

	cmd.Flags().IntVarP(&opts.shares, "shares", "n", 3, "number of shares to create (2-255)")
	cmd.Flags().IntVarP(&opts.threshold, "threshold", "t", 2, "shares required to reconstruct (2-shares)")
	cmd.Flags().BoolVar(&prompt, "prompt", false, "read the secret from the terminal without echo")
	opts.addIOFlags(cmd)

	return cmd
}

func (a *app) readSecret(path string, prompt bool) ([]byte, error) {
	if prompt {
		fmt.Fprint(a.errOut, "Secret: ")
		secret, err := a.readPassword()
		fmt.Fprintln(a.errOut)
		if err != nil {
			return nil, fmt.Errorf("failed to read secret: %w", err)
		}
		return secret, nil
	}

	r, err := a.input(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

func (a *app) combineCmd() *cobra.Command {
	opts := &commonOptions{}

	cmd := &cobra.Command{
		Use:   "combine [share...]",
		Short: "Reconstruct a secret from shares",
		Long: `Combine reads shares from the arguments, --in or stdin and writes the secret.

Combine cannot detect that fewer than the threshold shares were given; it then
writes a wrong secret. Use verify with extra shares to check consistency.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.finish(cmd, opts); err != nil {
				return err
			}

			b, err := a.readShareArgs(args, opts)
			if err != nil {
				return err
			}

			secret, err := shamir.Combine(b.Shares)
			if err != nil {
				return err
			}

			a.logger.Debug("combined shares",
				slog.Int("shares", len(b.Shares)),
				slog.Int("secret_length", len(secret)),
			)

			return a.output(opts.out, func(w io.Writer) error {
				_, err := w.Write(secret)
				return err
			})
		},
	}

	opts.addIOFlags(cmd)

	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	opts := &commonOptions{}

	cmd := &cobra.Command{
		Use:   "verify [share...]",
		Short: "Check that shares belong to the same secret",
		Long: `Verify checks that every share beyond the first threshold lies on the polynomial
defined by them. The threshold comes from --threshold, then the share bundle,
then the threshold set in the config file or SHAMIR_THRESHOLD. Text shares and
shares given as arguments carry no threshold, so one of the others is required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.finish(cmd, opts); err != nil {
				return err
			}

			b, err := a.readShareArgs(args, opts)
			if err != nil {
				return err
			}

			threshold, err := a.verifyThreshold(b, cmd.Flags().Changed("threshold"))
			if err != nil {
				return err
			}

			if err := shamir.Verify(b.Shares, threshold); err != nil {
				if errors.Is(err, shamir.ErrVerificationFailed) {
					a.logger.Warn("share verification failed", slog.Int("threshold", threshold))
				}
				return err
			}

			a.logger.Debug("verified shares",
				slog.Int("shares", len(b.Shares)),
				slog.Int("threshold", threshold),
			)

			_, err = fmt.Fprintln(a.out, "ok")
			return err
		},
	}

	cmd.Flags().IntVarP(&opts.threshold, "threshold", "t", 0, "shares required to reconstruct (required for text shares)")
	opts.addIOFlags(cmd)

	return cmd
}

// verifyThreshold picks the threshold for verify from the flag, the bundle or an
// explicitly configured value. The built-in default is never used.
func (a *app) verifyThreshold(b bundle, flagSet bool) (int, error) {
	switch {
	case flagSet:
		return a.conf.Threshold, nil
	case b.Threshold != 0:
		return b.Threshold, nil
	case a.conf.thresholdSet:
		return a.conf.Threshold, nil
	default:
		return 0, errThresholdRequired
	}
}

// readShareArgs parses shares given as arguments, or reads them from the input.
func (a *app) readShareArgs(args []string, opts *commonOptions) (bundle, error) {
	if len(args) > 0 {
		shares, err := shamir.ParseShares(args)
		return bundle{Shares: shares}, err
	}

	r, err := a.input(opts.in)
	if err != nil {
		return bundle{}, err
	}
	defer r.Close()

	return readShares(r, a.conf.Format)
}
