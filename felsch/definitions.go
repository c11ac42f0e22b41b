package felsch

// DefPolicy controls what happens when an edge definition is made while
// the definition stack is already at its capacity.
type DefPolicy uint8

const (
	// NoStackIfNoSpace drops new definitions while the stack is full.
	NoStackIfNoSpace DefPolicy = iota

	// PurgeFromTop pops definitions for dead nodes off the top of the
	// stack until an active one is exposed, then drops the new one.
	PurgeFromTop

	// PurgeAll removes every definition for a dead node from the stack,
	// then drops the new one.
	PurgeAll

	// DiscardAllIfNoSpace empties the stack entirely, then drops the new
	// definition.
	DiscardAllIfNoSpace

	// Unlimited lets the stack grow without bound.
	Unlimited
)

// String returns the name of the policy.
func (p DefPolicy) String() string {
	switch p {
	case NoStackIfNoSpace:
		return "no_stack_if_no_space"
	case PurgeFromTop:
		return "purge_from_top"
	case PurgeAll:
		return "purge_all"
	case DiscardAllIfNoSpace:
		return "discard_all_if_no_space"
	case Unlimited:
		return "unlimited"
	default:
		return "unknown"
	}
}

// definition is an edge whose consequences under the relations have not
// yet been traced.
type definition struct {
	node  Node
	label Label
}

// definitions is a bounded stack of definitions. When a push is refused
// because the stack is full, anySkipped is set; the enumeration then
// knows it must finish with a full lookahead to catch the consequences
// it never traced.
type definitions struct {
	defs       []definition
	anySkipped bool
	policy     DefPolicy
	max        int
	isActive   func(Node) bool
}

func (d *definitions) emplaceBack(c Node, x Label) {
	if d.policy == Unlimited || len(d.defs) < d.max {
		d.defs = append(d.defs, definition{c, x})
		return
	}
	d.anySkipped = true
	switch d.policy {
	case PurgeFromTop:
		for len(d.defs) > 0 && !d.isActive(d.defs[len(d.defs)-1].node) {
			d.defs = d.defs[:len(d.defs)-1]
		}
	case PurgeAll:
		kept := d.defs[:0]
		for _, e := range d.defs {
			if d.isActive(e.node) {
				kept = append(kept, e)
			}
		}
		d.defs = kept
	case DiscardAllIfNoSpace:
		d.defs = d.defs[:0]
	}
}

func (d *definitions) empty() bool { return len(d.defs) == 0 }

func (d *definitions) pop() definition {
	e := d.defs[len(d.defs)-1]
	d.defs = d.defs[:len(d.defs)-1]
	return e
}

func (d *definitions) clear() { d.defs = d.defs[:0] }
