package linkhandler

import (
	"strings"

	"github.com/spf13/cast"
)

// BParams is the decoded form of the pipe-delimited browser parameter
// string an opening form passes along, e.g. "tt_content|||*,jpg,png||".
// The format is positional; empty segments are valid and common.
type BParams struct {
	// FieldRef identifies the form field the picked link is written back to.
	FieldRef  string
	FormName  string
	FieldName string
	// Allowed lists the permitted target types or file extensions. Empty or
	// "*" allows everything.
	Allowed           []string
	ObjectID          string
	CheckUniqueAction string
	AddAction         string
	InsertAction      string
}

// ParseBParams splits a raw browser parameter string. Missing trailing
// segments read as empty; extra segments are ignored.
func ParseBParams(raw string) BParams {
	seg := strings.Split(raw, "|")
	for len(seg) < 8 {
		seg = append(seg, "")
	}
	b := BParams{
		FieldRef:          seg[0],
		FormName:          seg[1],
		FieldName:         seg[2],
		ObjectID:          seg[4],
		CheckUniqueAction: seg[5],
		AddAction:         seg[6],
		InsertAction:      seg[7],
	}
	if seg[3] != "" {
		b.Allowed = strings.Split(seg[3], ",")
	}
	return b
}

// AllowsAll reports whether the allowed list carries no restriction.
func (b BParams) AllowsAll() bool {
	if len(b.Allowed) == 0 {
		return true
	}
	for _, a := range b.Allowed {
		if a == "*" {
			return true
		}
	}
	return false
}

// Allows reports whether v is a permitted type or extension.
func (b BParams) Allows(v string) bool {
	if b.AllowsAll() {
		return true
	}
	for _, a := range b.Allowed {
		if strings.EqualFold(a, v) {
			return true
		}
	}
	return false
}

// P is the loosely typed parameter bag opener code configures the browser
// with. Values arrive from query strings and serialized configuration, so
// accessors coerce leniently instead of failing on a string-typed number.
type P map[string]any

// String reads a string parameter.
func (p P) String(key string) string { return cast.ToString(p[key]) }

// Int reads an integer parameter.
func (p P) Int(key string) int { return cast.ToInt(p[key]) }

// Bool reads a boolean parameter.
func (p P) Bool(key string) bool { return cast.ToBool(p[key]) }

// Strings reads a list parameter; a comma separated string also qualifies.
func (p P) Strings(key string) []string {
	v, ok := p[key]
	if !ok || v == nil {
		return nil
	}
	if s, isStr := v.(string); isStr {
		if s == "" {
			return nil
		}
		return strings.Split(s, ",")
	}
	return cast.ToStringSlice(v)
}

// Parameter keys the browser session consumes.
const (
	PBlindLinkOptions  = "blindLinkOptions"
	PBlindLinkFields   = "blindLinkFields"
	PAllowedExtensions = "allowedExtensions"
)
