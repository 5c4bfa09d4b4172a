package link

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// internalScheme is the scheme of page, file and folder destinations.
const internalScheme = "t3"

// Parse parses a raw link string into a destination. An empty string yields
// nil. Strings that match no known shape are returned as a URL destination,
// never as an error.
func Parse(raw string) Destination {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if addr, ok := strings.CutPrefix(raw, "mailto:"); ok {
		return Mail{Address: addr}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return URL{Href: raw}
	}

	if u.Scheme == internalScheme {
		if d := parseInternal(u); d != nil {
			return d
		}
		// Unknown t3 host, keep the raw string around as a URL.
		return URL{Href: raw}
	}

	// A plain address without scheme: mail if it looks like one, else URL.
	if u.Scheme == "" && strings.Contains(raw, "@") && !strings.Contains(raw, "/") {
		return Mail{Address: raw}
	}

	return URL{Href: raw}
}

func parseInternal(u *url.URL) Destination {
	q := u.Query()
	switch u.Host {
	case "page":
		p := Page{Fragment: u.Fragment}
		switch uid := q.Get("uid"); uid {
		case "current":
			p.Current = true
		case "":
			p.Alias = q.Get("alias")
			if p.Alias == "" {
				return nil
			}
		default:
			n, err := strconv.Atoi(uid)
			if err != nil {
				return nil
			}
			p.UID = n
		}
		return p
	case "file":
		n, err := strconv.Atoi(q.Get("uid"))
		if err != nil {
			return nil
		}
		return File{UID: n}
	case "folder":
		id := q.Get("identifier")
		if id == "" {
			return nil
		}
		return Folder{Identifier: id}
	}
	return nil
}

// Format renders a destination back to its raw string form.
func Format(d Destination) string {
	switch t := d.(type) {
	case Page:
		var ref string
		switch {
		case t.Current:
			ref = "uid=current"
		case t.Alias != "":
			ref = "alias=" + url.QueryEscape(t.Alias)
		default:
			ref = "uid=" + strconv.Itoa(t.UID)
		}
		s := fmt.Sprintf("%s://page?%s", internalScheme, ref)
		if t.Fragment != "" {
			s += "#" + t.Fragment
		}
		return s
	case File:
		return fmt.Sprintf("%s://file?uid=%d", internalScheme, t.UID)
	case Folder:
		return fmt.Sprintf("%s://folder?identifier=%s", internalScheme, url.QueryEscape(t.Identifier))
	case URL:
		return t.Href
	case Mail:
		return "mailto:" + t.Address
	}
	return ""
}
