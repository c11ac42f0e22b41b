package toddcoxeter

import (
	"errors"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/katalvlaran/cosets/felsch"
)

// Sentinel errors returned by the enumeration API.
var (
	// ErrNilPresentation indicates that a nil presentation was passed to New.
	ErrNilPresentation = errors.New("toddcoxeter: presentation is nil")

	// ErrStarted indicates that a setting or generating pair was changed
	// after the enumeration had already started.
	ErrStarted = errors.New("toddcoxeter: enumeration already started")

	// ErrIndexOutOfRange indicates a class index at or beyond the number
	// of classes.
	ErrIndexOutOfRange = errors.New("toddcoxeter: class index out of range")

	// ErrNotStandardized indicates that a query needing a standardized
	// word graph was made before any standardization.
	ErrNotStandardized = errors.New("toddcoxeter: word graph not standardized")

	// ErrBadOption indicates an option value outside its permitted range.
	ErrBadOption = errors.New("toddcoxeter: option value out of range")
)

// Kind selects which congruence the generating pairs define.
type Kind uint8

const (
	// RightCongruence enumerates the classes of the right congruence
	// generated by the pairs.
	RightCongruence Kind = iota

	// LeftCongruence enumerates a left congruence, by enumerating the
	// corresponding right congruence over the reversed presentation.
	LeftCongruence

	// TwoSidedCongruence enumerates a two-sided congruence; the
	// generating pairs are additionally imposed as relations at every
	// class.
	TwoSidedCongruence
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case RightCongruence:
		return "right"
	case LeftCongruence:
		return "left"
	case TwoSidedCongruence:
		return "twosided"
	default:
		return "unknown"
	}
}

// Strategy selects the order in which relations are traced and nodes
// are defined.
type Strategy uint8

const (
	// StrategyHLT traces every relation at every node, defining new
	// nodes eagerly and relying on periodic lookaheads to find the
	// consequences it missed.
	StrategyHLT Strategy = iota

	// StrategyFelsch defines one edge at a time and immediately traces
	// every consequence of the definition before making another.
	StrategyFelsch

	// StrategyCR alternates bursts of Felsch-style and HLT-style
	// enumeration until one of them completes.
	StrategyCR

	// StrategyROverC runs HLT until the node count reaches the lookahead
	// threshold, performs a full lookahead, and then switches to
	// StrategyCR.
	StrategyROverC

	// StrategyCr runs one Felsch burst, one HLT burst, and then Felsch
	// to completion.
	StrategyCr

	// StrategyRc runs one HLT burst, one Felsch burst, and then HLT to
	// completion.
	StrategyRc
)

// String returns the name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyHLT:
		return "hlt"
	case StrategyFelsch:
		return "felsch"
	case StrategyCR:
		return "CR"
	case StrategyROverC:
		return "R/C"
	case StrategyCr:
		return "Cr"
	case StrategyRc:
		return "Rc"
	default:
		return "unknown"
	}
}

// LookaheadExtent selects how much of the graph a lookahead sweeps.
type LookaheadExtent uint8

const (
	// LookaheadPartial sweeps from the node after the main cursor to the
	// end of the active list.
	LookaheadPartial LookaheadExtent = iota

	// LookaheadFull sweeps every active node.
	LookaheadFull
)

// String returns the name of the extent.
func (e LookaheadExtent) String() string {
	if e == LookaheadFull {
		return "full"
	}
	return "partial"
}

// LookaheadStyle selects what a lookahead does at each node.
type LookaheadStyle uint8

const (
	// LookaheadHLT traces every relation at every swept node.
	LookaheadHLT LookaheadStyle = iota

	// LookaheadFelsch re-traces every defined edge of every swept node
	// as if it were a fresh definition.
	LookaheadFelsch
)

// String returns the name of the style.
func (s LookaheadStyle) String() string {
	if s == LookaheadFelsch {
		return "felsch"
	}
	return "hlt"
}

// NoLowerBound is the LowerBound value meaning no bound is known.
const NoLowerBound = uint64(math.MaxUint64)

// Options configures an enumeration. Use DefaultOptions or New with
// functional options rather than filling this in by hand.
type Options struct {
	Strategy       Strategy
	LookaheadExtent LookaheadExtent
	LookaheadStyle  LookaheadStyle

	// LookaheadNext is the number of active nodes that triggers the next
	// lookahead; it adapts after every lookahead. LookaheadMin is the
	// floor it never adapts below.
	LookaheadNext uint64
	LookaheadMin  uint64

	// LookaheadGrowthFactor scales LookaheadNext up after an
	// unproductive lookahead and down after a very productive one; a
	// lookahead is unproductive when it kills fewer than active divided
	// by LookaheadGrowthThreshold nodes.
	LookaheadGrowthFactor    float64
	LookaheadGrowthThreshold uint64

	// LowerBound, when not NoLowerBound, is a known lower bound on the
	// number of classes; reaching it lets the final lookahead be skipped.
	LowerBound uint64

	// LargeCollapse is the pending-coincidence count beyond which merges
	// stop maintaining source lists and rebuild them at the end.
	LargeCollapse int

	// DefMax and DefPolicy bound the definition stack; see felsch.DefPolicy.
	DefMax    int
	DefPolicy felsch.DefPolicy

	// HLTDefs and FDefs size the HLT and Felsch bursts of the mixed
	// strategies.
	HLTDefs uint64
	FDefs   uint64

	// Save makes the HLT strategy record its definitions and trace their
	// consequences immediately, like Felsch.
	Save bool

	// UseRelationsInExtra additionally traces every relation at class 0
	// during initialisation; useful for one-sided congruences over
	// incomplete presentations.
	UseRelationsInExtra bool

	// StopEarlyInterval and StopEarlyRatio let an interruptible lookahead
	// give up when an interval passes in which fewer than ratio times the
	// active nodes were killed.
	StopEarlyInterval time.Duration
	StopEarlyRatio    float64

	// Reporter, when non-nil, receives progress reports.
	Reporter *log.Logger
}

// Option represents a functional option for configuring an enumeration.
type Option func(*Options)

// DefaultOptions returns the options New starts from.
func DefaultOptions() Options {
	return Options{
		Strategy:                 StrategyHLT,
		LookaheadExtent:          LookaheadPartial,
		LookaheadStyle:           LookaheadHLT,
		LookaheadNext:            5_000_000,
		LookaheadMin:             10_000,
		LookaheadGrowthFactor:    2.0,
		LookaheadGrowthThreshold: 4,
		LowerBound:               NoLowerBound,
		LargeCollapse:            100_000,
		DefMax:                   2_000,
		DefPolicy:                felsch.NoStackIfNoSpace,
		HLTDefs:                  200_000,
		FDefs:                    100_000,
		StopEarlyInterval:        time.Second,
		StopEarlyRatio:           0.01,
	}
}

// WithStrategy selects the enumeration strategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) { o.Strategy = s }
}

// WithLookaheadExtent selects partial or full lookaheads.
func WithLookaheadExtent(e LookaheadExtent) Option {
	return func(o *Options) { o.LookaheadExtent = e }
}

// WithLookaheadStyle selects HLT-style or Felsch-style lookaheads.
func WithLookaheadStyle(s LookaheadStyle) Option {
	return func(o *Options) { o.LookaheadStyle = s }
}

// WithLookaheadNext sets the node count that triggers the next
// lookahead.
func WithLookaheadNext(n uint64) Option {
	return func(o *Options) { o.LookaheadNext = n }
}

// WithLookaheadMin sets the floor below which the lookahead trigger
// never adapts.
func WithLookaheadMin(n uint64) Option {
	return func(o *Options) { o.LookaheadMin = n }
}

// WithLookaheadGrowthFactor sets the lookahead adaptation factor.
// Values at or below 1 cause ErrBadOption via panic.
func WithLookaheadGrowthFactor(f float64) Option {
	return func(o *Options) {
		if f <= 1 {
			panic(ErrBadOption.Error())
		}
		o.LookaheadGrowthFactor = f
	}
}

// WithLookaheadGrowthThreshold sets the divisor deciding when a
// lookahead counted as unproductive. Zero causes ErrBadOption via panic.
func WithLookaheadGrowthThreshold(n uint64) Option {
	return func(o *Options) {
		if n == 0 {
			panic(ErrBadOption.Error())
		}
		o.LookaheadGrowthThreshold = n
	}
}

// WithLowerBound declares a known lower bound on the number of classes.
func WithLowerBound(n uint64) Option {
	return func(o *Options) { o.LowerBound = n }
}

// WithLargeCollapse sets the pending-coincidence count beyond which
// merges run without maintaining source lists.
func WithLargeCollapse(n int) Option {
	return func(o *Options) { o.LargeCollapse = n }
}

// WithDefMax sets the capacity of the definition stack.
func WithDefMax(n int) Option {
	return func(o *Options) { o.DefMax = n }
}

// WithDefPolicy sets the policy applied when the definition stack is
// full.
func WithDefPolicy(p felsch.DefPolicy) Option {
	return func(o *Options) { o.DefPolicy = p }
}

// WithHLTDefs sets the HLT burst size of the mixed strategies. Zero
// causes ErrBadOption via panic.
func WithHLTDefs(n uint64) Option {
	return func(o *Options) {
		if n == 0 {
			panic(ErrBadOption.Error())
		}
		o.HLTDefs = n
	}
}

// WithFDefs sets the Felsch burst size of the mixed strategies. Zero
// causes ErrBadOption via panic.
func WithFDefs(n uint64) Option {
	return func(o *Options) {
		if n == 0 {
			panic(ErrBadOption.Error())
		}
		o.FDefs = n
	}
}

// WithSave makes HLT record and immediately process its definitions.
func WithSave() Option {
	return func(o *Options) { o.Save = true }
}

// WithRelationsInExtra traces every relation at class 0 during
// initialisation.
func WithRelationsInExtra() Option {
	return func(o *Options) { o.UseRelationsInExtra = true }
}

// WithStopEarly configures when an interruptible lookahead gives up.
func WithStopEarly(interval time.Duration, ratio float64) Option {
	return func(o *Options) {
		o.StopEarlyInterval = interval
		o.StopEarlyRatio = ratio
	}
}

// WithReporter directs progress reports to l.
func WithReporter(l *log.Logger) Option {
	return func(o *Options) { o.Reporter = l }
}
