// Package cli wires the enumeration engine to the coxeter command line
// tool: TOML problem files in, class counts and normal forms out.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/cosets/presentation"
	"github.com/katalvlaran/cosets/toddcoxeter"
	"github.com/katalvlaran/cosets/wordgraph"
)

// Sentinel errors for problem files and word arguments.
var (
	// ErrBadKind indicates an unknown --kind value.
	ErrBadKind = errors.New("cli: kind must be left, right, or twosided")

	// ErrBadStrategy indicates an unknown --strategy value.
	ErrBadStrategy = errors.New("cli: unknown strategy")

	// ErrBadOrder indicates an unknown --order value.
	ErrBadOrder = errors.New("cli: order must be shortlex, lex, or recursive")

	// ErrBadWord indicates a word argument that is not a comma-separated
	// list of letters.
	ErrBadWord = errors.New("cli: words are comma-separated letters, e.g. 0,1,0")
)

// wordPair is one relation or generating pair in a problem file.
type wordPair struct {
	LHS []uint32 `toml:"lhs"`
	RHS []uint32 `toml:"rhs"`
}

// problem is the on-disk description of an enumeration problem.
type problem struct {
	Alphabet          int        `toml:"alphabet"`
	ContainsEmptyWord bool       `toml:"contains_empty_word"`
	Rules             []wordPair `toml:"rules"`
	Pairs             []wordPair `toml:"pairs"`
}

// toWord converts a TOML letter list to a word.
func toWord(ls []uint32) wordgraph.Word {
	w := make(wordgraph.Word, len(ls))
	for i, l := range ls {
		w[i] = wordgraph.Label(l)
	}
	return w
}

// LoadProblem reads a TOML problem file and returns the presentation
// and the flat list of generating pairs.
func LoadProblem(path string) (*presentation.Presentation, []wordgraph.Word, error) {
	var pr problem
	if _, err := toml.DecodeFile(path, &pr); err != nil {
		return nil, nil, fmt.Errorf("cli: decoding %s: %w", path, err)
	}
	p := presentation.New(pr.Alphabet)
	p.ContainsEmptyWord = pr.ContainsEmptyWord
	for _, r := range pr.Rules {
		p.AddRule(toWord(r.LHS), toWord(r.RHS))
	}
	if err := p.Validate(); err != nil {
		return nil, nil, fmt.Errorf("cli: %s: %w", path, err)
	}
	var pairs []wordgraph.Word
	for _, pair := range pr.Pairs {
		pairs = append(pairs, toWord(pair.LHS), toWord(pair.RHS))
	}
	return p, pairs, nil
}

// ParseWord parses a comma-separated word argument such as "0,1,0".
// The empty string is the empty word.
func ParseWord(s string) (wordgraph.Word, error) {
	if s == "" {
		return wordgraph.Word{}, nil
	}
	parts := strings.Split(s, ",")
	w := make(wordgraph.Word, len(parts))
	for i, part := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadWord, s)
		}
		w[i] = wordgraph.Label(n)
	}
	return w, nil
}

// parseKind maps a --kind value to a congruence kind.
func parseKind(s string) (toddcoxeter.Kind, error) {
	switch s {
	case "left":
		return toddcoxeter.LeftCongruence, nil
	case "right":
		return toddcoxeter.RightCongruence, nil
	case "twosided", "2sided":
		return toddcoxeter.TwoSidedCongruence, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadKind, s)
	}
}

// parseStrategy maps a --strategy value to a strategy.
func parseStrategy(s string) (toddcoxeter.Strategy, error) {
	switch s {
	case "hlt":
		return toddcoxeter.StrategyHLT, nil
	case "felsch":
		return toddcoxeter.StrategyFelsch, nil
	case "CR", "cr":
		return toddcoxeter.StrategyCR, nil
	case "R/C", "r/c":
		return toddcoxeter.StrategyROverC, nil
	case "Cr":
		return toddcoxeter.StrategyCr, nil
	case "Rc":
		return toddcoxeter.StrategyRc, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadStrategy, s)
	}
}

// parseOrder maps an --order value to a word order.
func parseOrder(s string) (wordgraph.Order, error) {
	switch s {
	case "shortlex":
		return wordgraph.ShortLex, nil
	case "lex":
		return wordgraph.Lex, nil
	case "recursive":
		return wordgraph.Recursive, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadOrder, s)
	}
}

// rootFlags holds the flag values shared by every subcommand.
type rootFlags struct {
	kind      string
	strategy  string
	save      bool
	timeLimit time.Duration
	verbose   bool
}

// enumerator builds a configured enumerator from the problem file and
// the shared flags.
func (f *rootFlags) enumerator(path string) (*toddcoxeter.ToddCoxeter, error) {
	p, pairs, err := LoadProblem(path)
	if err != nil {
		return nil, err
	}
	kind, err := parseKind(f.kind)
	if err != nil {
		return nil, err
	}
	strategy, err := parseStrategy(f.strategy)
	if err != nil {
		return nil, err
	}
	opts := []toddcoxeter.Option{toddcoxeter.WithStrategy(strategy)}
	if f.save {
		opts = append(opts, toddcoxeter.WithSave())
	}
	if f.verbose {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           log.InfoLevel,
		})
		opts = append(opts, toddcoxeter.WithReporter(logger))
	}
	tc, err := toddcoxeter.New(kind, p, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := tc.AddGeneratingPair(pairs[i], pairs[i+1]); err != nil {
			return nil, err
		}
	}
	return tc, nil
}

// run drives tc to completion, honoring the time limit flag.
func (f *rootFlags) run(tc *toddcoxeter.ToddCoxeter) error {
	if f.timeLimit > 0 {
		tc.RunFor(f.timeLimit)
		if !tc.IsFinished() {
			s := tc.Stats()
			return fmt.Errorf("cli: enumeration incomplete after %s: %d nodes active, %d defined",
				f.timeLimit, s.NodesActive, s.NodesDefined)
		}
		return nil
	}
	tc.Run()
	return nil
}

// formatWord renders a word as comma-separated letters, "-" for the
// empty word.
func formatWord(w wordgraph.Word) string {
	if len(w) == 0 {
		return "-"
	}
	parts := make([]string, len(w))
	for i, l := range w {
		parts[i] = strconv.FormatUint(uint64(l), 10)
	}
	return strings.Join(parts, ",")
}

// NewRootCmd returns the coxeter command tree.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "coxeter",
		Short:         "Coset enumeration for finitely presented semigroups and monoids",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.kind, "kind", "twosided", "congruence kind: left, right, or twosided")
	pf.StringVar(&flags.strategy, "strategy", "hlt", "enumeration strategy: hlt, felsch, CR, R/C, Cr, or Rc")
	pf.BoolVar(&flags.save, "save", false, "make HLT chase consequences of its definitions immediately")
	pf.DurationVar(&flags.timeLimit, "time-limit", 0, "abort enumerations that run longer than this (0 = no limit)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "report enumeration progress on stderr")

	classes := &cobra.Command{
		Use:   "classes <problem.toml>",
		Short: "Count the congruence classes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := flags.enumerator(args[0])
			if err != nil {
				return err
			}
			if err := flags.run(tc); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tc.NumberOfClasses())
			return nil
		},
	}

	var orderName string
	normalForms := &cobra.Command{
		Use:   "normal-forms <problem.toml>",
		Short: "Print one canonical word per class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := parseOrder(orderName)
			if err != nil {
				return err
			}
			tc, err := flags.enumerator(args[0])
			if err != nil {
				return err
			}
			if err := flags.run(tc); err != nil {
				return err
			}
			forms, err := tc.NormalForms(order)
			if err != nil {
				return err
			}
			for _, w := range forms {
				fmt.Fprintln(cmd.OutOrStdout(), formatWord(w))
			}
			return nil
		},
	}
	normalForms.Flags().StringVar(&orderName, "order", "shortlex", "class numbering: shortlex, lex, or recursive")

	index := &cobra.Command{
		Use:   "index <problem.toml> <word>",
		Short: "Print the class index of a word",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := ParseWord(args[1])
			if err != nil {
				return err
			}
			tc, err := flags.enumerator(args[0])
			if err != nil {
				return err
			}
			if err := flags.run(tc); err != nil {
				return err
			}
			i, err := tc.IndexOf(w)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i)
			return nil
		},
	}

	contains := &cobra.Command{
		Use:   "contains <problem.toml> <word> <word>",
		Short: "Decide whether two words lie in the same class",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := ParseWord(args[1])
			if err != nil {
				return err
			}
			v, err := ParseWord(args[2])
			if err != nil {
				return err
			}
			tc, err := flags.enumerator(args[0])
			if err != nil {
				return err
			}
			if err := flags.run(tc); err != nil {
				return err
			}
			eq, err := tc.Contains(u, v)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), eq)
			return nil
		},
	}

	root.AddCommand(classes, normalForms, index, contains)
	return root
}
