package link

// Kind discriminates link destination shapes.
type Kind string

// Destination kinds
const (
	KindPage   Kind = "page"
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
	KindURL    Kind = "url"
	KindMail   Kind = "mail"
)

// Destination is one concrete link target shape. Exactly one implementation
// is active per link.
type Destination interface {
	Kind() Kind
}

// Page points to a page record, optionally to a content element on it via
// Fragment. A page reference may carry an unresolved alias instead of a UID;
// Current marks a reference to the page the link is placed on.
type Page struct {
	UID      int
	Alias    string
	Current  bool
	Fragment string
}

// Kind implements Destination.
func (Page) Kind() Kind { return KindPage }

// File points to an indexed file record.
type File struct {
	UID int
}

// Kind implements Destination.
func (File) Kind() Kind { return KindFile }

// Folder points to a storage folder by its combined identifier.
type Folder struct {
	Identifier string
}

// Kind implements Destination.
func (Folder) Kind() Kind { return KindFolder }

// URL is an external target.
type URL struct {
	Href string
}

// Kind implements Destination.
func (URL) Kind() Kind { return KindURL }

// Mail is an email target.
type Mail struct {
	Address string
}

// Kind implements Destination.
func (Mail) Kind() Kind { return KindMail }

// Parts holds all parts of a link: the destination plus the additional
// attributes an editor may set on it.
type Parts struct {
	Dest   Destination
	Target string
	Class  string
	Title  string
	Params string
}

// IsEmpty reports whether no current link is set.
func (p Parts) IsEmpty() bool {
	return p.Dest == nil
}

// Attributes returns the non-destination members keyed by attribute name,
// omitting empty values.
func (p Parts) Attributes() map[string]string {
	attrs := make(map[string]string, 4)
	if p.Target != "" {
		attrs["target"] = p.Target
	}
	if p.Class != "" {
		attrs["class"] = p.Class
	}
	if p.Title != "" {
		attrs["title"] = p.Title
	}
	if p.Params != "" {
		attrs["params"] = p.Params
	}
	return attrs
}
