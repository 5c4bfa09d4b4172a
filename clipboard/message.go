package clipboard

import (
	"fmt"
)

// Position says where a paste lands relative to the target record.
type Position string

// Paste positions
const (
	PosInto  Position = "into"
	PosAfter Position = "after"
)

// ConfirmMessage builds the confirmation prompt shown before a paste. It is
// pure formatting and changes no clipboard state.
func (c *Clipboard) ConfirmMessage(targetTable, targetTitle string, position Position, refs []Ref) string {
	verb := "copy"
	if c.Current == PadNormal && c.Pads[PadNormal].Op == OpCut {
		verb = "move"
	}

	what := fmt.Sprintf("%d element", len(refs))
	if len(refs) != 1 {
		what += "s"
	}
	if len(refs) == 1 {
		what = fmt.Sprintf("%s [%s:%d]", what, refs[0].Table, refs[0].Uid)
	}

	where := fmt.Sprintf("after \"%s\"", targetTitle)
	if position == PosInto {
		where = fmt.Sprintf("into \"%s\"", targetTitle)
	}

	return fmt.Sprintf("Do you want to %s %s %s [%s]?", verb, what, where, targetTable)
}
