package clipboard

import (
	"fmt"
)

// NumPads is the number of numbered pads besides the normal pad.
const NumPads = 3

// Ref identifies one record on a pad.
type Ref struct {
	Table string `json:"table"`
	Uid   int    `json:"uid"`
}

// Op is the pending operation of the normal pad.
type Op string

// Normal pad operations
const (
	OpNone Op = ""
	OpCopy Op = "copy"
	OpCut  Op = "cut"
)

// PadID selects a pad: PadNormal or a numbered pad 1..NumPads.
type PadID int

// PadNormal is the single-slot copy/cut pad.
const PadNormal PadID = 0

// Valid reports whether the id names an existing pad.
func (p PadID) Valid() bool {
	return p >= PadNormal && p <= NumPads
}

// ParsePadID converts an external pad number into a PadID.
func ParsePadID(n int) (PadID, error) {
	p := PadID(n)
	if !p.Valid() {
		return PadNormal, fmt.Errorf("unknown clipboard pad %d", n)
	}
	return p, nil
}

type pad struct {
	Op   Op    `json:"op,omitempty"`
	Refs []Ref `json:"refs,omitempty"`
}

// Clipboard is the per-user clipboard state. The zero value is an empty
// clipboard with the normal pad current.
type Clipboard struct {
	Current PadID            `json:"current"`
	Pads    [NumPads + 1]pad `json:"pads"`
}

// New returns an empty clipboard.
func New() *Clipboard {
	return &Clipboard{}
}

// SetCurrent switches the current pad.
func (c *Clipboard) SetCurrent(p PadID) error {
	if !p.Valid() {
		return fmt.Errorf("unknown clipboard pad %d", int(p))
	}
	c.Current = p
	return nil
}

// Select puts ref on the normal pad as the sole selection for op, replacing
// any prior selection. Copy and cut are mutually exclusive: selecting one
// clears the other, regardless of table.
func (c *Clipboard) Select(ref Ref, op Op) {
	c.Pads[PadNormal] = pad{Op: op, Refs: []Ref{ref}}
}

// Deselect clears the normal pad.
func (c *Clipboard) Deselect() {
	c.Pads[PadNormal] = pad{}
}

// Toggle flips membership of ref on the current pad. It applies to numbered
// pads only; the normal pad is driven by Select.
func (c *Clipboard) Toggle(ref Ref) {
	if c.Current == PadNormal {
		return
	}
	p := &c.Pads[c.Current]
	for i, r := range p.Refs {
		if r == ref {
			p.Refs = append(p.Refs[:i:i], p.Refs[i+1:]...)
			return
		}
	}
	p.Refs = append(p.Refs, ref)
}

// IsSelected returns the operation ref is selected for on the current pad:
// OpCopy or OpCut on the normal pad, OpCopy for any numbered-pad member,
// OpNone when not selected.
func (c *Clipboard) IsSelected(ref Ref) Op {
	p := c.Pads[c.Current]
	for _, r := range p.Refs {
		if r == ref {
			if c.Current == PadNormal {
				return p.Op
			}
			return OpCopy
		}
	}
	return OpNone
}

// ElementsFromTable returns the current pad's refs restricted to table.
// An empty table returns all refs.
func (c *Clipboard) ElementsFromTable(table string) []Ref {
	var out []Ref
	for _, r := range c.Pads[c.Current].Refs {
		if table == "" || r.Table == table {
			out = append(out, r)
		}
	}
	return out
}

// IsEmpty reports whether no pad holds any selection.
func (c *Clipboard) IsEmpty() bool {
	for _, p := range c.Pads {
		if len(p.Refs) > 0 {
			return false
		}
	}
	return true
}

// Clean drops selections whose refs are no longer valid. It is idempotent.
// Passing the currently fetchable ref set garbage-collects stale entries;
// passing an empty set clears every pad.
func (c *Clipboard) Clean(validRefs []Ref) {
	valid := make(map[Ref]bool, len(validRefs))
	for _, r := range validRefs {
		valid[r] = true
	}
	for i := range c.Pads {
		p := &c.Pads[i]
		kept := p.Refs[:0]
		for _, r := range p.Refs {
			if valid[r] {
				kept = append(kept, r)
			}
		}
		p.Refs = kept
		if len(p.Refs) == 0 {
			p.Refs = nil
			if PadID(i) == PadNormal {
				p.Op = OpNone
			}
		}
	}
}
