// Package roll implements the roll command: it rolls each notation given
// on the command line and prints the totals.
package roll

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"golang.org/x/text/message"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/dicelang/internal/core/check"
	"github.com/louisbranch/dicelang/internal/core/dice"
	platformcmd "github.com/louisbranch/dicelang/internal/platform/cmd"
	apperrors "github.com/louisbranch/dicelang/internal/platform/errors"
	"github.com/louisbranch/dicelang/internal/platform/i18n/catalog"
	"github.com/louisbranch/dicelang/internal/random"
	"github.com/louisbranch/dicelang/internal/roller"
)

// Config holds roll command configuration.
type Config struct {
	MaxExplosions int    `env:"DICELANG_MAX_EXPLOSIONS" toml:"max_explosions"`
	MaxCompounds  int    `env:"DICELANG_MAX_COMPOUNDS"  toml:"max_compounds"`
	Seed          int64  `env:"DICELANG_SEED"           toml:"seed"`
	Locale        string `env:"DICELANG_LOCALE"         toml:"locale"`
	Detailed      bool   `env:"DICELANG_DETAILED"       toml:"detailed"`
	Verbose       bool   `env:"DICELANG_VERBOSE"        toml:"verbose"`

	// Difficulty, when set, checks every total against it.
	Difficulty *int     `toml:"-"`
	Notations  []string `toml:"-"`
}

// DefaultConfig returns the configuration used before any file, env or
// flag is applied.
func DefaultConfig() Config {
	return Config{
		MaxExplosions: dice.DefaultMaxExplosions,
		MaxCompounds:  dice.DefaultMaxCompounds,
		Locale:        catalog.BaseLocale,
	}
}

// ParseConfig loads the config file, env and flags into a Config. The
// remaining arguments are the notations to roll.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := DefaultConfig()
	if err := platformcmd.ParseConfig(&cfg, platformcmd.ConfigPath(args)); err != nil {
		return Config{}, err
	}

	var configFile string
	fs.StringVar(&configFile, "config", "", "path to a TOML config file")
	fs.IntVar(&cfg.MaxExplosions, "max-explosions", cfg.MaxExplosions, "maximum extra dice per exploding die")
	fs.IntVar(&cfg.MaxCompounds, "max-compounds", cfg.MaxCompounds, "maximum extra draws per compounding die")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducibility (0 = random)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "output locale")
	fs.BoolVar(&cfg.Detailed, "detailed", cfg.Detailed, "print every die event")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")
	fs.Func("dc", "difficulty to check each total against", func(value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("difficulty must be an integer: %w", err)
		}
		cfg.Difficulty = &n
		return nil
	})
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	cfg.Notations = fs.Args()
	if len(cfg.Notations) == 0 {
		return Config{}, errors.New(catalog.Default().Printer(cfg.Locale).Sprintf("core.usage"))
	}
	return cfg, nil
}

// Run rolls every notation in cfg and writes the results to out. It stops
// at the first notation that fails.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	logger := log.New(errOut, "", 0)

	seed, err := random.ResolveSeed(cfg.Seed)
	if err != nil {
		return err
	}
	eval, err := dice.NewEvaluator(random.NewSource(seed),
		dice.WithMaxExplosions(cfg.MaxExplosions),
		dice.WithMaxCompounds(cfg.MaxCompounds),
	)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logger.Printf("roll seed=%d max_explosions=%d max_compounds=%d", seed, eval.MaxExplosions(), eval.MaxCompounds())
	}

	r := roller.New(eval)
	p := catalog.Default().Printer(cfg.Locale)

	if cfg.Detailed {
		p.Fprintf(out, "roll.seed", seed)
		fmt.Fprintln(out)
	}
	for _, text := range cfg.Notations {
		outcome, err := r.RollDetailed(ctx, text)
		if err != nil {
			return err
		}
		if cfg.Verbose && outcome.TraceID != "" {
			logger.Printf("roll %q trace=%s", text, outcome.TraceID)
		}

		p.Fprintf(out, "roll.total", strings.TrimSpace(text), outcome.Value)
		fmt.Fprintln(out)
		if cfg.Detailed {
			for i, ev := range outcome.Events {
				writeEvent(out, p, i+1, ev)
			}
		}
		if cfg.Difficulty != nil {
			res := check.Resolve(outcome.Value, *cfg.Difficulty)
			key := "roll.check.failure"
			if res.Success {
				key = "roll.check.success"
			}
			p.Fprintf(out, key, res.Distance(), res.Difficulty)
			fmt.Fprintln(out)
		}
	}
	return nil
}

func writeEvent(out io.Writer, p *message.Printer, n int, ev dice.DieEvent) {
	kind := p.Sprintf("event." + ev.Type.String())
	status := p.Sprintf("status." + ev.Status.String())
	significance := p.Sprintf("significance." + ev.Significance.String())
	success := p.Sprintf("success." + ev.Success.String())
	if ev.Group != nil && ev.GroupOperator != nil {
		p.Fprintf(out, "roll.event.group", n, dieLabel(ev.Die), kind, ev.Value, status, significance, success, *ev.Group+1, ev.GroupOperator.String())
	} else {
		p.Fprintf(out, "roll.event", n, dieLabel(ev.Die), kind, ev.Value, status, significance, success)
	}
	fmt.Fprintln(out)
}

func dieLabel(d dice.DieType) string {
	switch d := d.(type) {
	case dice.Basic, dice.Percent, dice.Fudge:
		return "d" + d.String()
	case nil:
		return "?"
	default:
		return d.String()
	}
}

// ErrorMessage renders err for the user in locale. Domain errors use the
// localized message attached to their status.
func ErrorMessage(err error, locale string) string {
	msg := err.Error()
	if apperrors.GetCode(err) != apperrors.CodeUnknown {
		st := status.Convert(apperrors.HandleError(err, locale))
		for _, detail := range st.Details() {
			if lm, ok := detail.(*errdetails.LocalizedMessage); ok {
				msg = lm.GetMessage()
			}
		}
	}
	return catalog.Default().Printer(locale).Sprintf("core.error", msg)
}

// ExitCode maps err to a process exit status: 2 for bad input or
// configuration, 3 for rolls that cannot be evaluated and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch status.Code(apperrors.HandleError(err, "")) {
	case codes.InvalidArgument:
		return 2
	case codes.Unimplemented:
		return 3
	default:
		return 1
	}
}
