package linkhandler

import (
	"reflect"
	"testing"
)

func TestParseBParams(t *testing.T) {
	b := ParseBParams("data[tt_content][22][header_link]|form_editor|header_link|*,jpg,png||")
	if b.FieldRef != "data[tt_content][22][header_link]" {
		t.Errorf("FieldRef = %q", b.FieldRef)
	}
	if b.FormName != "form_editor" || b.FieldName != "header_link" {
		t.Errorf("form segments = %q %q", b.FormName, b.FieldName)
	}
	if want := []string{"*", "jpg", "png"}; !reflect.DeepEqual(b.Allowed, want) {
		t.Errorf("Allowed = %v, want %v", b.Allowed, want)
	}
}

func TestParseBParamsEmptySegments(t *testing.T) {
	b := ParseBParams("tt_content|||jpg,png||")
	if b.FieldRef != "tt_content" || b.FormName != "" || b.FieldName != "" {
		t.Errorf("segments = %+v", b)
	}
	if want := []string{"jpg", "png"}; !reflect.DeepEqual(b.Allowed, want) {
		t.Errorf("Allowed = %v", b.Allowed)
	}

	b = ParseBParams("")
	if b.FieldRef != "" || b.Allowed != nil {
		t.Errorf("empty input = %+v", b)
	}
}

func TestParseBParamsExtraSegmentsIgnored(t *testing.T) {
	b := ParseBParams("a|b|c|d|e|f|g|h|i|j")
	if b.InsertAction != "h" {
		t.Errorf("InsertAction = %q", b.InsertAction)
	}
}

func TestBParamsAllows(t *testing.T) {
	all := ParseBParams("x|||*,jpg||")
	if !all.AllowsAll() || !all.Allows("pdf") {
		t.Error("wildcard list should allow everything")
	}

	some := ParseBParams("x|||jpg,png||")
	if some.AllowsAll() {
		t.Error("restricted list reported as wildcard")
	}
	if !some.Allows("JPG") || some.Allows("pdf") {
		t.Errorf("Allows: jpg=%v pdf=%v", some.Allows("JPG"), some.Allows("pdf"))
	}

	none := ParseBParams("x|||||")
	if !none.AllowsAll() {
		t.Error("empty list should allow everything")
	}
}

func TestParamBagCoercion(t *testing.T) {
	p := P{"pid": "42", "collapsed": 1, "blindLinkOptions": "folder,mail"}
	if p.Int("pid") != 42 {
		t.Errorf("Int(pid) = %d", p.Int("pid"))
	}
	if !p.Bool("collapsed") {
		t.Error("Bool(collapsed) = false")
	}
	if got := p.Strings("blindLinkOptions"); len(got) != 2 || got[0] != "folder" {
		t.Errorf("Strings = %v", got)
	}
	if p.Strings("missing") != nil {
		t.Error("missing key produced values")
	}
}
