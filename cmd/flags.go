package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/randtype/internal/config"
)

// options holds the raw flag values. The compact forms (-t ms,mult and
// friends) are parsed by applyFlags and written into viper so they override
// the config file and environment.
type options struct {
	cfgFile     string
	timing      string
	charTiming  string
	noWait      string
	wait        string
	dump        string
	replace     string
	mistakes    string
	quit        string
	kill        bool
	lineMode    bool
	follow      bool
	raw         bool
	maxCPS      float64
	statsFile   string
	statsFormat string
}

func registerFlags(cmd *cobra.Command, o *options) {
	f := cmd.Flags()
	f.StringVar(&o.cfgFile, "config", "", "config file (default is ./randtype.yaml or ~/.randtype.yaml)")
	f.StringVarP(&o.timing, "time", "t", "", "general delay as `ms,mult`")
	f.StringVarP(&o.charTiming, "char-time", "c", "", "delay for -w characters as `ms,mult`")
	f.StringVarP(&o.noWait, "no-wait", "n", "", "`chars` printed without delay")
	f.StringVarP(&o.wait, "wait", "w", "", "`chars` that use the -c delay")
	f.StringVarP(&o.dump, "dump", "d", "", "dump marker: ',' or '.' followed by the `string`")
	f.StringVarP(&o.replace, "replace", "r", "", "substitutions as `s1,s2[:...]`")
	f.StringVarP(&o.mistakes, "mistakes", "m", "", "mistake draws per character (`int`)")
	f.StringVarP(&o.quit, "quit", "q", "", "quit after `int` seconds")
	f.BoolVarP(&o.kill, "kill", "k", false, "remove the dump marker from the output")
	f.BoolVarP(&o.lineMode, "lines", "l", false, "delay whole lines instead of characters")
	f.BoolVarP(&o.follow, "follow", "f", false, "keep typing lines appended to the last file")
	f.BoolVar(&o.raw, "no-decompress", false, "read compressed files as they are")
	f.Float64Var(&o.maxCPS, "max-cps", 0, "cap on characters per second (0 disables)")
	f.StringVar(&o.statsFile, "stats-file", "", "write a session report to `path` (\"stderr\" for standard error)")
	f.StringVar(&o.statsFormat, "stats-format", "json", "session report format: json or text")

	cmd.Flags().SortFlags = false
}

// applyFlags parses the compact flag syntaxes and sets the matching keys on v.
// Only flags given on the command line are applied.
func applyFlags(flags *pflag.FlagSet, v *viper.Viper, o *options) error {
	if flags.Changed("time") {
		tc, err := config.ParseTiming(o.timing)
		if err != nil {
			return err
		}
		setTiming(v, "typing.general", tc)
	}
	if flags.Changed("no-wait") {
		v.Set("typing.no_wait", o.noWait)
	}
	if flags.Changed("wait") {
		v.Set("typing.wait", o.wait)
	}
	if flags.Changed("lines") {
		v.Set("typing.line_mode", o.lineMode)
	}

	// -c only matters for characters selected with -w, and never in line mode.
	if flags.Changed("char-time") && v.GetString("typing.wait") != "" && !v.GetBool("typing.line_mode") {
		tc, err := config.ParseTiming(o.charTiming)
		if err != nil {
			return err
		}
		setTiming(v, "typing.delayed", tc)
	}

	if flags.Changed("dump") {
		d, err := config.ParseDump(o.dump)
		if err != nil {
			return err
		}
		v.Set("dump.marker", d.Marker)
		v.Set("dump.direction", string(d.Direction))
	}
	if flags.Changed("kill") {
		v.Set("dump.kill", o.kill)
	}

	if flags.Changed("replace") {
		subs, err := config.ParseReplace(o.replace)
		if err != nil {
			return err
		}
		pairs := make([]map[string]interface{}, 0, len(subs))
		for _, s := range subs {
			pairs = append(pairs, map[string]interface{}{"find": s.Find, "replace": s.Replace})
		}
		v.Set("replace", pairs)
	}

	if flags.Changed("mistakes") {
		n, err := config.ParseCount(o.mistakes)
		if err != nil {
			return err
		}
		v.Set("typing.mistakes", n)
	}
	if flags.Changed("quit") {
		n, err := config.ParseCount(o.quit)
		if err != nil {
			return err
		}
		v.Set("quit_after", n)
	}

	if flags.Changed("follow") {
		v.Set("input.follow", o.follow)
	}
	if flags.Changed("no-decompress") {
		v.Set("input.decompress", !o.raw)
	}
	if flags.Changed("max-cps") {
		v.Set("typing.max_cps", o.maxCPS)
	}
	if flags.Changed("stats-file") {
		v.Set("stats.file", o.statsFile)
	}
	if flags.Changed("stats-format") {
		v.Set("stats.format", o.statsFormat)
	}
	return nil
}

func setTiming(v *viper.Viper, key string, tc config.TimingConfig) {
	v.Set(key+".max_ms", tc.MaxMs)
	v.Set(key+".multiplier", tc.Multiplier)
}

// usageFlagError marks pflag parse failures as usage errors.
func usageFlagError(_ *cobra.Command, err error) error {
	if errors.Is(err, config.ErrUsage) {
		return err
	}
	return fmt.Errorf("%w: %w", config.ErrUsage, err)
}
