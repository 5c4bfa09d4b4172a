package clipboard

import (
	"strings"
	"testing"
)

func TestSelectReplacesNormalPad(t *testing.T) {
	c := New()
	a := Ref{Table: "pages", Uid: 1}
	b := Ref{Table: "tt_content", Uid: 2}

	c.Select(a, OpCopy)
	if op := c.IsSelected(a); op != OpCopy {
		t.Fatalf("IsSelected(a) = %q, want copy", op)
	}

	// A second selection replaces the first; copy and cut never coexist.
	c.Select(b, OpCut)
	if op := c.IsSelected(a); op != OpNone {
		t.Errorf("a still selected after selecting b: %q", op)
	}
	if op := c.IsSelected(b); op != OpCut {
		t.Errorf("IsSelected(b) = %q, want cut", op)
	}

	c.Deselect()
	if !c.IsEmpty() {
		t.Error("clipboard not empty after deselect")
	}
}

func TestToggleOnNumberedPad(t *testing.T) {
	c := New()
	if err := c.SetCurrent(1); err != nil {
		t.Fatal(err)
	}
	ref := Ref{Table: "pages", Uid: 5}

	c.Toggle(ref)
	if op := c.IsSelected(ref); op != OpCopy {
		t.Fatalf("toggled element not reported as copy member: %q", op)
	}
	c.Toggle(ref)
	if op := c.IsSelected(ref); op != OpNone {
		t.Errorf("second toggle did not remove element: %q", op)
	}
}

func TestToggleIgnoredOnNormalPad(t *testing.T) {
	c := New()
	ref := Ref{Table: "pages", Uid: 5}
	c.Toggle(ref)
	if op := c.IsSelected(ref); op != OpNone {
		t.Errorf("toggle on normal pad selected element: %q", op)
	}
}

func TestPadsAreIndependent(t *testing.T) {
	c := New()
	normal := Ref{Table: "pages", Uid: 1}
	numbered := Ref{Table: "pages", Uid: 2}

	c.Select(normal, OpCut)
	if err := c.SetCurrent(2); err != nil {
		t.Fatal(err)
	}
	c.Toggle(numbered)

	if op := c.IsSelected(numbered); op != OpCopy {
		t.Errorf("numbered pad member = %q, want copy", op)
	}
	// Switching back must still see the untouched normal selection.
	if err := c.SetCurrent(PadNormal); err != nil {
		t.Fatal(err)
	}
	if op := c.IsSelected(normal); op != OpCut {
		t.Errorf("normal pad member = %q, want cut", op)
	}
}

func TestSetCurrentRejectsUnknownPad(t *testing.T) {
	c := New()
	if err := c.SetCurrent(PadID(NumPads + 1)); err == nil {
		t.Error("SetCurrent accepted out-of-range pad")
	}
	if err := c.SetCurrent(PadID(-1)); err == nil {
		t.Error("SetCurrent accepted negative pad")
	}
	if c.Current != PadNormal {
		t.Errorf("failed SetCurrent changed current pad to %d", c.Current)
	}
}

func TestParsePadID(t *testing.T) {
	if _, err := ParsePadID(2); err != nil {
		t.Errorf("ParsePadID(2): %v", err)
	}
	if _, err := ParsePadID(99); err == nil {
		t.Error("ParsePadID(99) succeeded")
	}
}

func TestElementsFromTable(t *testing.T) {
	c := New()
	if err := c.SetCurrent(1); err != nil {
		t.Fatal(err)
	}
	c.Toggle(Ref{Table: "pages", Uid: 1})
	c.Toggle(Ref{Table: "tt_content", Uid: 2})
	c.Toggle(Ref{Table: "tt_content", Uid: 3})

	if got := c.ElementsFromTable("tt_content"); len(got) != 2 {
		t.Errorf("ElementsFromTable(tt_content) = %v", got)
	}
	if got := c.ElementsFromTable(""); len(got) != 3 {
		t.Errorf("ElementsFromTable(\"\") = %v", got)
	}
	if got := c.ElementsFromTable("sys_file"); len(got) != 0 {
		t.Errorf("ElementsFromTable(sys_file) = %v", got)
	}
}

func TestCleanDropsVanishedRecords(t *testing.T) {
	c := New()
	c.Select(Ref{Table: "pages", Uid: 1}, OpCut)
	if err := c.SetCurrent(1); err != nil {
		t.Fatal(err)
	}
	c.Toggle(Ref{Table: "pages", Uid: 2})
	c.Toggle(Ref{Table: "pages", Uid: 3})

	valid := []Ref{{Table: "pages", Uid: 2}}
	c.Clean(valid)
	c.Clean(valid) // idempotent

	if op := c.IsSelected(Ref{Table: "pages", Uid: 2}); op != OpCopy {
		t.Errorf("surviving element lost: %q", op)
	}
	if op := c.IsSelected(Ref{Table: "pages", Uid: 3}); op != OpNone {
		t.Errorf("vanished element kept: %q", op)
	}
	if err := c.SetCurrent(PadNormal); err != nil {
		t.Fatal(err)
	}
	if op := c.IsSelected(Ref{Table: "pages", Uid: 1}); op != OpNone {
		t.Errorf("vanished normal selection kept: %q", op)
	}
}

func TestConfirmMessage(t *testing.T) {
	c := New()
	refs := []Ref{{Table: "tt_content", Uid: 7}}

	c.Select(refs[0], OpCopy)
	msg := c.ConfirmMessage("pages", "Home", PosInto, refs)
	if !strings.Contains(msg, "copy") || !strings.Contains(msg, `into "Home"`) {
		t.Errorf("copy message = %q", msg)
	}

	c.Select(refs[0], OpCut)
	msg = c.ConfirmMessage("pages", "Home", PosAfter, refs)
	if !strings.Contains(msg, "move") || !strings.Contains(msg, `after "Home"`) {
		t.Errorf("cut message = %q", msg)
	}

	many := []Ref{{Table: "pages", Uid: 1}, {Table: "pages", Uid: 2}}
	msg = c.ConfirmMessage("pages", "Home", PosInto, many)
	if !strings.Contains(msg, "2 elements") {
		t.Errorf("plural message = %q", msg)
	}
}
