package linkhandler

import (
	"context"
	"fmt"

	"github.com/ncobase/recordlist/link"
	"github.com/ncobase/recordlist/store"
)

// FileHandler recognizes links to indexed files and renders the folder
// drill-down with files filtered to the allowed extensions.
type FileHandler struct {
	FS store.FileSystem

	parts link.Parts
	item  store.FSItem
}

// NewFileHandler builds a file handler over the given file storage.
func NewFileHandler(fs store.FileSystem) *FileHandler {
	return &FileHandler{FS: fs}
}

// CanHandleLink accepts file destinations whose uid resolves to an existing
// file. A vanished file means the link is not ours anymore.
func (h *FileHandler) CanHandleLink(ctx context.Context, parts link.Parts) bool {
	dest, ok := parts.Dest.(link.File)
	if !ok {
		return false
	}
	item, err := h.FS.GetFile(ctx, dest.UID)
	if err != nil || item.Folder {
		return false
	}
	h.parts = parts
	h.item = item
	return true
}

// FormatCurrentURL implements Handler.
func (h *FileHandler) FormatCurrentURL() string { return h.item.Identifier }

// Render lists the expanded folder: subfolders for navigation, files as
// selectable elements. Without an expanded folder the current file's folder
// would be the natural start, but the storage root keeps the contract simple
// when nothing is linked yet.
func (h *FileHandler) Render(ctx context.Context, req *Request) (*RenderModel, error) {
	folder := req.ExpandFolder
	if folder == "" {
		folder = "/"
	}
	m := &RenderModel{Kind: link.KindFile}

	folders, err := h.FS.ListFolders(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("list folders of %s: %w", folder, err)
	}
	for _, f := range folders {
		m.Folders = append(m.Folders, ElementModel{URL: f.Identifier, Title: f.Name})
	}

	files, err := h.FS.ListFiles(ctx, folder, req.AllowedExtensions)
	if err != nil {
		return nil, fmt.Errorf("list files of %s: %w", folder, err)
	}
	cur, _ := h.parts.Dest.(link.File)
	for _, f := range files {
		m.Files = append(m.Files, ElementModel{
			URL:      link.Format(link.File{UID: f.UID}),
			Title:    f.Name,
			Uid:      f.UID,
			Selected: cur.UID != 0 && cur.UID == f.UID,
		})
	}
	return m, nil
}

// LinkAttributes implements Handler.
func (h *FileHandler) LinkAttributes() []string { return defaultAttributes() }

// SupportsUpdate implements Handler.
func (h *FileHandler) SupportsUpdate() bool { return true }
