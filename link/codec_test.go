package link

import (
	"testing"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		raw  string
		want Page
	}{
		{"t3://page?uid=42", Page{UID: 42}},
		{"t3://page?uid=42#c9", Page{UID: 42, Fragment: "c9"}},
		{"t3://page?uid=current", Page{Current: true}},
		{"t3://page?alias=startpage", Page{Alias: "startpage"}},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.raw).(Page)
		if !ok {
			t.Fatalf("Parse(%q) is not a Page", tt.raw)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

func TestParseFileAndFolder(t *testing.T) {
	if got, ok := Parse("t3://file?uid=7").(File); !ok || got.UID != 7 {
		t.Errorf("file parse got %v %v", got, ok)
	}
	f, ok := Parse("t3://folder?identifier=%2Fuploads%2F").(Folder)
	if !ok || f.Identifier != "/uploads/" {
		t.Errorf("folder parse got %v %v", f, ok)
	}
}

func TestParseMail(t *testing.T) {
	for _, raw := range []string{"mailto:info@example.org", "info@example.org"} {
		m, ok := Parse(raw).(Mail)
		if !ok || m.Address != "info@example.org" {
			t.Errorf("Parse(%q) = %v, want mail info@example.org", raw, m)
		}
	}
}

func TestParseFallbackToURL(t *testing.T) {
	tests := []string{
		"https://example.org/path?q=1",
		"example.org/about",
		"t3://page?uid=abc",
		"t3://unknown?x=1",
		"just some words",
	}
	for _, raw := range tests {
		if _, ok := Parse(raw).(URL); !ok {
			t.Errorf("Parse(%q) = %T, want URL", raw, Parse(raw))
		}
	}
}

func TestParseEmpty(t *testing.T) {
	if d := Parse(""); d != nil {
		t.Errorf("Parse(\"\") = %v, want nil", d)
	}
	if d := Parse("   "); d != nil {
		t.Errorf("Parse(blank) = %v, want nil", d)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	dests := []Destination{
		Page{UID: 42},
		Page{UID: 42, Fragment: "c9"},
		Page{Current: true},
		Page{Alias: "startpage"},
		File{UID: 7},
		Folder{Identifier: "/uploads/"},
		URL{Href: "https://example.org"},
		Mail{Address: "info@example.org"},
	}
	for _, d := range dests {
		raw := Format(d)
		if got := Parse(raw); got != d {
			t.Errorf("Parse(Format(%+v)) = %+v via %q", d, got, raw)
		}
	}
}
