package toddcoxeter

import (
	"context"
	"time"

	"github.com/katalvlaran/cosets/felsch"
	"github.com/katalvlaran/cosets/presentation"
	"github.com/katalvlaran/cosets/wordgraph"
)

// ToddCoxeter enumerates the classes of a congruence on a finitely
// presented semigroup or monoid by coset enumeration.
//
// The zero value is not usable; construct instances with New. A
// ToddCoxeter is not safe for concurrent use.
type ToddCoxeter struct {
	kind  Kind
	input *presentation.Presentation
	pairs []wordgraph.Word

	graph  *felsch.Graph
	forest *wordgraph.Forest

	opts         Options
	standardized wordgraph.Order
	started      bool
	finished     bool
}

// New returns an enumerator for the congruence of the given kind over
// p. The presentation is copied; generating pairs are added with
// AddGeneratingPair before the first run.
func New(kind Kind, p *presentation.Presentation, opts ...Option) (*ToddCoxeter, error) {
	if p == nil {
		return nil, ErrNilPresentation
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &ToddCoxeter{
		kind:  kind,
		input: p.Copy(),
		opts:  o,
	}, nil
}

// Kind returns the kind of congruence being enumerated.
func (tc *ToddCoxeter) Kind() Kind { return tc.kind }

// Presentation returns the presentation the enumerator was built over.
func (tc *ToddCoxeter) Presentation() *presentation.Presentation { return tc.input }

// NumberOfGeneratingPairs returns the number of pairs added so far.
func (tc *ToddCoxeter) NumberOfGeneratingPairs() int { return len(tc.pairs) / 2 }

// IsFinished reports whether the enumeration has run to completion.
func (tc *ToddCoxeter) IsFinished() bool { return tc.finished }

// Stats returns a snapshot of the node counts; all zero before the
// first run.
func (tc *ToddCoxeter) Stats() felsch.Stats {
	if tc.graph == nil {
		return felsch.Stats{}
	}
	return tc.graph.Stats()
}

// AddGeneratingPair declares that u and v belong to the same class.
// Pairs can only be added before the first run.
func (tc *ToddCoxeter) AddGeneratingPair(u, v wordgraph.Word) error {
	if tc.started {
		return ErrStarted
	}
	if err := tc.input.ValidateWord(u); err != nil {
		return err
	}
	if err := tc.input.ValidateWord(v); err != nil {
		return err
	}
	tc.pairs = append(tc.pairs, tc.prepare(u), tc.prepare(v))
	return nil
}

// prepare maps an input word into the internal presentation: left
// congruences enumerate over the reversed presentation, so their words
// are reversed on the way in and out.
func (tc *ToddCoxeter) prepare(w wordgraph.Word) wordgraph.Word {
	if tc.kind == LeftCongruence {
		return presentation.ReverseWord(w)
	}
	return append(wordgraph.Word(nil), w...)
}

// Run enumerates until the congruence is completely determined. It may
// not terminate when the congruence has infinitely many classes.
func (tc *ToddCoxeter) Run() {
	tc.runWith(nil)
}

// RunContext is Run, stopping early when ctx is cancelled or its
// deadline passes. It returns the context error when stopped early.
func (tc *ToddCoxeter) RunContext(ctx context.Context) error {
	tc.runWith(func() bool { return ctx.Err() != nil })
	return ctx.Err()
}

// RunFor is Run with a time budget.
func (tc *ToddCoxeter) RunFor(d time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	tc.RunContext(ctx) //nolint:errcheck // deadline expiry is the expected exit
}

// RunUntil is Run, stopping early as soon as pred returns true. The
// predicate is polled between enumeration steps.
func (tc *ToddCoxeter) RunUntil(pred func() bool) {
	tc.runWith(pred)
}

// runWith drives the configured strategy until it completes or stop
// returns true, then finalises.
func (tc *ToddCoxeter) runWith(stop func() bool) {
	if tc.finished {
		return
	}
	if stop == nil {
		stop = func() bool { return false }
	}
	if !tc.started {
		tc.initRun()
		tc.started = true
	}
	tc.standardized = wordgraph.NoOrder

	var done bool
	switch tc.opts.Strategy {
	case StrategyFelsch:
		done = tc.felschLoop(stop)
	case StrategyCR:
		done = tc.crStyle(stop)
	case StrategyROverC:
		done = tc.rOverCStyle(stop)
	case StrategyCr:
		done = tc.crSingleStyle(stop)
	case StrategyRc:
		done = tc.rcSingleStyle(stop)
	default:
		done = tc.hltLoop(stop)
	}

	if stop() || !done {
		return
	}
	tc.finaliseRun()
}

// initRun builds the enumeration graph: the internal presentation, the
// generating pairs traced at class 0, and for two-sided congruences the
// pairs imposed as relations everywhere.
func (tc *ToddCoxeter) initRun() {
	p := tc.input.Copy()
	if tc.kind == LeftCongruence {
		p = tc.input.Reversed()
	}
	tc.graph = felsch.New(p)
	tc.graph.SetDefMax(tc.opts.DefMax)
	tc.graph.SetDefPolicy(tc.opts.DefPolicy)
	tc.graph.SetLargeCollapse(tc.opts.LargeCollapse)
	tc.forest = wordgraph.NewForest(0)

	regDefs := tc.opts.Save || tc.opts.Strategy == StrategyFelsch
	root := tc.graph.InitialNode()
	for i := 0; i+1 < len(tc.pairs); i += 2 {
		tc.graph.PushDefinitionHLT(regDefs, root, tc.pairs[i], tc.pairs[i+1])
	}
	if tc.opts.UseRelationsInExtra {
		for i := 0; i+1 < len(p.Rules); i += 2 {
			tc.graph.PushDefinitionHLT(regDefs, root, p.Rules[i], p.Rules[i+1])
		}
	}
	if tc.kind == TwoSidedCongruence {
		for i := 0; i+1 < len(tc.pairs); i += 2 {
			u := append(wordgraph.Word(nil), tc.pairs[i]...)
			v := append(wordgraph.Word(nil), tc.pairs[i+1]...)
			tc.graph.AddRule(u, v)
		}
	}
	if regDefs {
		tc.graph.ProcessDefinitions()
	} else {
		tc.graph.ProcessCoincidences(false)
	}
	tc.report("enumeration started",
		"kind", tc.kind,
		"strategy", tc.opts.Strategy,
		"letters", p.AlphabetSize,
		"rules", p.NumberOfRules(),
		"pairs", len(tc.pairs)/2,
	)
}

// finaliseRun performs the catch-up lookahead that a bounded definition
// stack makes necessary, then marks the enumeration finished.
func (tc *ToddCoxeter) finaliseRun() {
	if tc.graph.AnySkippedDefinitions() {
		if tc.graph.NumberOfNodesActive() != tc.opts.LowerBound || !tc.isCompleteActive() {
			tc.fullLookahead(false)
		}
	}
	tc.finished = true
	s := tc.graph.Stats()
	tc.report("enumeration finished",
		"active", s.NodesActive,
		"defined", s.NodesDefined,
		"killed", s.NodesKilled,
	)
}

// hltLoop traces every relation at every active node, defining new
// nodes as needed, and reports whether it reached the end of the active
// list. Lookaheads run whenever the active count passes the trigger.
func (tc *ToddCoxeter) hltLoop(stop func() bool) bool {
	g := tc.graph
	rules := g.Presentation().Rules
	g.SetCursor(g.InitialNode())
	for g.Cursor() != g.FirstFreeNode() && !stop() {
		if !tc.opts.Save {
			for i := 0; i+1 < len(rules); i += 2 {
				g.PushDefinitionHLT(false, g.Cursor(), rules[i], rules[i+1])
				g.ProcessCoincidences(false)
			}
		} else {
			for i := 0; i+1 < len(rules); i += 2 {
				g.PushDefinitionHLT(true, g.Cursor(), rules[i], rules[i+1])
				g.ProcessDefinitions()
			}
		}
		if g.NumberOfNodesActive() > tc.opts.LookaheadNext {
			tc.performLookahead(true)
		}
		g.SetCursor(g.NextActiveNode(g.Cursor()))
	}
	return g.Cursor() == g.FirstFreeNode()
}

// felschLoop fills every undefined edge of every active node with a new
// node and immediately traces the consequences, reporting whether it
// reached the end of the active list.
func (tc *ToddCoxeter) felschLoop(stop func() bool) bool {
	g := tc.graph
	g.SetCursor(g.InitialNode())
	for g.Cursor() != g.FirstFreeNode() && !stop() {
		for x := 0; x < g.OutDegree(); x++ {
			if g.TargetNoChecks(g.Cursor(), wordgraph.Label(x)) == wordgraph.Undefined {
				g.Define(true, g.Cursor(), wordgraph.Label(x), g.NewNode())
				g.ProcessDefinitions()
			}
		}
		g.SetCursor(g.NextActiveNode(g.Cursor()))
	}
	return g.Cursor() == g.FirstFreeNode()
}

// burstN returns the divisor sizing HLT bursts: the presentation
// length, floored at one.
func (tc *ToddCoxeter) burstN() uint64 {
	n := uint64(tc.graph.Presentation().Length())
	if n == 0 {
		n = 1
	}
	return n
}

// crStyle alternates Felsch and HLT bursts until either completes, then
// verifies the result with a full lookahead.
func (tc *ToddCoxeter) crStyle(stop func() bool) bool {
	g := tc.graph
	n := tc.burstN()
	done := false
	for !done && !stop() {
		m := g.NumberOfNodesActive()
		done = tc.felschLoop(func() bool {
			return stop() || g.NumberOfNodesActive() >= m+tc.opts.FDefs
		})
		if done || stop() {
			break
		}
		m = g.NumberOfNodesActive()
		done = tc.hltLoop(func() bool {
			return stop() || g.NumberOfNodesActive() >= m+tc.opts.HLTDefs/n
		})
	}
	if done && !stop() {
		tc.fullLookahead(false)
	}
	return done
}

// rOverCStyle runs HLT until the lookahead trigger, performs a full
// lookahead, and hands over to crStyle.
func (tc *ToddCoxeter) rOverCStyle(stop func() bool) bool {
	g := tc.graph
	done := tc.hltLoop(func() bool {
		return stop() || g.NumberOfNodesActive() >= tc.opts.LookaheadNext
	})
	if done || stop() {
		return done
	}
	tc.fullLookahead(true)
	return tc.crStyle(stop)
}

// crSingleStyle runs one Felsch burst, one HLT burst, then Felsch to
// completion, verified by a full lookahead.
func (tc *ToddCoxeter) crSingleStyle(stop func() bool) bool {
	g := tc.graph
	n := tc.burstN()
	m := g.NumberOfNodesActive()
	done := tc.felschLoop(func() bool {
		return stop() || g.NumberOfNodesActive() >= m+tc.opts.FDefs
	})
	if !done && !stop() {
		m = g.NumberOfNodesActive()
		done = tc.hltLoop(func() bool {
			return stop() || g.NumberOfNodesActive() >= m+tc.opts.HLTDefs/n
		})
	}
	if !done && !stop() {
		done = tc.felschLoop(stop)
	}
	if done && !stop() {
		tc.fullLookahead(false)
	}
	return done
}

// rcSingleStyle runs one HLT burst, one Felsch burst, then HLT to
// completion, verified by a full lookahead.
func (tc *ToddCoxeter) rcSingleStyle(stop func() bool) bool {
	g := tc.graph
	n := tc.burstN()
	m := g.NumberOfNodesActive()
	done := tc.hltLoop(func() bool {
		return stop() || g.NumberOfNodesActive() >= m+tc.opts.HLTDefs/n
	})
	if !done && !stop() {
		m = g.NumberOfNodesActive()
		done = tc.felschLoop(func() bool {
			return stop() || g.NumberOfNodesActive() >= m+tc.opts.FDefs
		})
	}
	if !done && !stop() {
		done = tc.hltLoop(stop)
	}
	if done && !stop() {
		tc.fullLookahead(false)
	}
	return done
}

// performLookahead sweeps the graph in the configured style and extent,
// then adapts the lookahead trigger to how productive the sweep was.
func (tc *ToddCoxeter) performLookahead(stopEarly bool) {
	g := tc.graph
	if tc.opts.LookaheadExtent == LookaheadPartial {
		g.SetLookaheadCursor(g.NextActiveNode(g.Cursor()))
	} else {
		g.SetLookaheadCursor(g.InitialNode())
	}
	before := g.NumberOfNodesActive()

	var killed uint64
	if tc.opts.LookaheadStyle == LookaheadFelsch {
		killed = g.FelschLookahead()
	} else {
		killed = g.MakeCompatible(stopEarly, tc.opts.StopEarlyInterval, tc.opts.StopEarlyRatio)
	}

	active := g.NumberOfNodesActive()
	gf := tc.opts.LookaheadGrowthFactor
	if float64(active) < float64(tc.opts.LookaheadNext)/gf {
		next := uint64(float64(active) * gf)
		if next < tc.opts.LookaheadMin {
			next = tc.opts.LookaheadMin
		}
		tc.opts.LookaheadNext = next
	} else if active > tc.opts.LookaheadNext || killed < active/tc.opts.LookaheadGrowthThreshold {
		tc.opts.LookaheadNext = uint64(float64(tc.opts.LookaheadNext) * gf)
	}

	tc.report("lookahead",
		"extent", tc.opts.LookaheadExtent,
		"style", tc.opts.LookaheadStyle,
		"before", before,
		"active", active,
		"killed", killed,
		"next", tc.opts.LookaheadNext,
	)
}

// fullLookahead runs one full HLT-style lookahead regardless of the
// configured extent and style.
func (tc *ToddCoxeter) fullLookahead(stopEarly bool) {
	ext, sty := tc.opts.LookaheadExtent, tc.opts.LookaheadStyle
	tc.opts.LookaheadExtent, tc.opts.LookaheadStyle = LookaheadFull, LookaheadHLT
	tc.performLookahead(stopEarly)
	tc.opts.LookaheadExtent, tc.opts.LookaheadStyle = ext, sty
}

// isCompleteActive reports whether every edge of every active node is
// defined.
func (tc *ToddCoxeter) isCompleteActive() bool {
	g := tc.graph
	for c := g.InitialNode(); c != g.FirstFreeNode(); c = g.NextActiveNode(c) {
		for x := 0; x < g.OutDegree(); x++ {
			if g.TargetNoChecks(c, wordgraph.Label(x)) == wordgraph.Undefined {
				return false
			}
		}
	}
	return true
}

// report logs through the configured reporter, if any.
func (tc *ToddCoxeter) report(msg string, kv ...any) {
	if tc.opts.Reporter != nil {
		tc.opts.Reporter.Info(msg, kv...)
	}
}
