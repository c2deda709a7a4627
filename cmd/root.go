// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/randtype/internal/config"
	"github.com/xkilldash9x/randtype/internal/humanoid"
	"github.com/xkilldash9x/randtype/internal/observability"
	"github.com/xkilldash9x/randtype/internal/reporting"
	"github.com/xkilldash9x/randtype/internal/stream"
)

const usageLine = "randtype [-hvlkf] [-d ,|.<string>] [-n <chars>] [-t <ms,mult>] [-w <chars> [-c <ms,mult>]] [-r s1,s2[:...]] [-m <int>] [-q <int>] [file ...]"

// NewRootCommand builds the randtype command. Each call returns an
// independent command with its own flag state.
func NewRootCommand() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   usageLine,
		Short: "Simulate a human typing the input files.",
		Long: `randtype copies files (or standard input) to standard output one
character at a time with randomized delays, optional typing mistakes,
substitutions and a dump marker that prints part of each line at once.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, o)
		},
	}
	registerFlags(cmd, o)
	cmd.SetFlagErrorFunc(usageFlagError)
	cmd.SetVersionTemplate(versionText())
	return cmd
}

// Execute runs the root command with os.Args and returns the process exit
// status.
func Execute(ctx context.Context) int {
	return executeArgs(ctx, NewRootCommand(), os.Args[1:])
}

func executeArgs(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	code := ExitCode(err)
	if code == exitUsage {
		fmt.Fprintf(cmd.ErrOrStderr(), "randtype: %v\n", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Usage: %s\n", usageLine)
		fmt.Fprint(cmd.ErrOrStderr(), cmd.Flags().FlagUsages())
	} else if err != nil && !isQuiet(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "randtype: %v\n", err)
	}
	return code
}

// isQuiet reports errors that only carry a status and need no message.
func isQuiet(err error) bool {
	var exitErr *ExitError
	var sigErr *SignalError
	return (errors.As(err, &exitErr) && exitErr.Err == nil) || errors.As(err, &sigErr)
}

// stopGrace is how long a stopped run may take to unwind before it is
// abandoned.
const stopGrace = 250 * time.Millisecond

// run wires configuration, logging, the typist and the stream driver for a
// single invocation.
func run(cmd *cobra.Command, args []string, o *options) (err error) {
	v := viper.New()
	config.SetDefaults(v)

	if err := initializeConfig(v, o.cfgFile); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	if err := applyFlags(cmd.Flags(), v, o); err != nil {
		return err
	}

	cfg, err := config.NewConfigFromViper(v)
	if err != nil {
		return err
	}

	observability.InitializeLogger(cfg.Logger)
	defer observability.Sync()

	session := reporting.NewSession(args)
	logger := observability.GetLogger().With(zap.String("session_id", session.ID.String()))
	logger.Info("Starting randtype", zap.String("version", Version), zap.Strings("sources", args))

	ctx, stop := notifyContext(cmd.Context())
	defer stop()
	ctx, cancel := withQuitTimer(ctx, cfg.QuitAfterSeconds)
	defer cancel()

	typist := humanoid.New(cfg.Typing, cmd.OutOrStdout(), logger)
	driver := stream.NewDriver(cfg, typist, logger, stream.WithStdin(cmd.InOrStdin()))

	// The report is written on every exit path, signals included.
	defer func() {
		session.EndedAt = time.Now()
		session.Input = driver.Stats()
		session.Typing = typist.Stats()
		session.ExitStatus = ExitCode(err)
		if reportErr := writeReport(cfg.Stats, session); reportErr != nil {
			logger.Error("Failed to write session report", zap.Error(reportErr))
		}
	}()

	// A read on idle input never sees ctx, so the driver is not waited for
	// once ctx is done.
	type result struct {
		status int
		err    error
	}
	done := make(chan result, 1)
	go func() {
		status, err := driver.Run(ctx, args)
		done <- result{status, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		select {
		case res = <-done:
		case <-time.After(stopGrace):
			res.err = ctx.Err()
		}
	}

	if res.err != nil {
		if sig := stopCause(ctx); sig != nil {
			session.Reason = sig.Signal.String()
			logger.Info("Stopping on signal", zap.Stringer("signal", sig.Signal))
			return sig
		}
		logger.Error("Run failed", zap.Error(res.err))
		return res.err
	}

	if res.status != 0 {
		return &ExitError{Code: res.status}
	}
	return nil
}

func writeReport(sc config.StatsConfig, s *reporting.Session) error {
	if sc.File == "" {
		return nil
	}
	r, err := reporting.New(sc.Format, sc.File)
	if err != nil {
		return err
	}
	return errors.Join(r.Write(s), r.Close())
}

// initializeConfig reads the config file and environment into v. An explicit
// --config file must exist; otherwise ./randtype.yaml and then
// ~/.randtype.yaml are used when present.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	path, err := configPath(cfgFile)
	if err != nil {
		return err
	}

	v.SetEnvPrefix("RANDTYPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

func configPath(cfgFile string) (string, error) {
	if cfgFile != "" {
		return homedir.Expand(cfgFile)
	}
	candidates := []string{"randtype.yaml", "~/.randtype.yaml"}
	for _, c := range candidates {
		path, err := homedir.Expand(c)
		if err != nil {
			continue
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}
