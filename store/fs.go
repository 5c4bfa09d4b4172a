package store

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// OSFileSystem implements FileSystem on a directory of the local file
// system. Identifiers are slash-separated paths relative to the root, "/"
// being the root folder itself.
type OSFileSystem struct {
	Root string
	// UIDs maps file uids to identifiers. The local file system has no file
	// index of its own, so uid lookups only work for entries registered
	// here.
	UIDs map[int]string
}

// GetFile implements FileSystem.
func (f *OSFileSystem) GetFile(ctx context.Context, uid int) (FSItem, error) {
	identifier, ok := f.UIDs[uid]
	if !ok {
		return FSItem{}, ErrNotFound
	}
	item, err := f.ResolveIdentifier(ctx, identifier)
	if err != nil {
		return FSItem{}, err
	}
	item.UID = uid
	return item, nil
}

// ResolveIdentifier implements FileSystem.
func (f *OSFileSystem) ResolveIdentifier(ctx context.Context, identifier string) (FSItem, error) {
	full := f.abs(identifier)
	info, err := os.Stat(full)
	if os.IsNotExist(err) {
		return FSItem{}, ErrNotFound
	}
	if err != nil {
		return FSItem{}, Unavailable("resolve "+identifier, err)
	}
	return f.item(identifier, info.Name(), info.IsDir()), nil
}

// ListFiles implements FileSystem.
func (f *OSFileSystem) ListFiles(ctx context.Context, folder string, extensions []string) ([]FSItem, error) {
	entries, err := os.ReadDir(f.abs(folder))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, Unavailable("list "+folder, err)
	}

	var out []FSItem
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		item := f.item(path.Join("/", folder, e.Name()), e.Name(), false)
		if !ExtensionAllowed(item.Extension, extensions) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// ListFolders implements FileSystem.
func (f *OSFileSystem) ListFolders(ctx context.Context, folder string) ([]FSItem, error) {
	entries, err := os.ReadDir(f.abs(folder))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, Unavailable("list "+folder, err)
	}

	var out []FSItem
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		out = append(out, f.item(path.Join("/", folder, e.Name())+"/", e.Name(), true))
	}
	return out, nil
}

func (f *OSFileSystem) abs(identifier string) string {
	return filepath.Join(f.Root, filepath.FromSlash(strings.TrimPrefix(identifier, "/")))
}

func (f *OSFileSystem) item(identifier, name string, folder bool) FSItem {
	item := FSItem{Identifier: identifier, Name: name, Folder: folder}
	if !folder {
		item.Extension = strings.TrimPrefix(path.Ext(name), ".")
	}
	return item
}

// ExtensionAllowed checks a file extension against an allow list. An empty
// list or a "*" entry allows everything; matching is case-insensitive.
func ExtensionAllowed(ext string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(a, ext) {
			return true
		}
	}
	return false
}

// MemFS is an in-memory FileSystem for tests.
type MemFS struct {
	// Items maps identifiers to entries; folder identifiers end with "/".
	Items map[string]FSItem
}

// ResolveIdentifier implements FileSystem.
func (f *MemFS) ResolveIdentifier(ctx context.Context, identifier string) (FSItem, error) {
	if item, ok := f.Items[identifier]; ok {
		return item, nil
	}
	return FSItem{}, ErrNotFound
}

// GetFile implements FileSystem.
func (f *MemFS) GetFile(ctx context.Context, uid int) (FSItem, error) {
	for _, item := range f.Items {
		if !item.Folder && item.UID == uid {
			return item, nil
		}
	}
	return FSItem{}, ErrNotFound
}

// ListFiles implements FileSystem.
func (f *MemFS) ListFiles(ctx context.Context, folder string, extensions []string) ([]FSItem, error) {
	return f.list(folder, false, extensions), nil
}

// ListFolders implements FileSystem.
func (f *MemFS) ListFolders(ctx context.Context, folder string) ([]FSItem, error) {
	return f.list(folder, true, nil), nil
}

func (f *MemFS) list(folder string, folders bool, extensions []string) []FSItem {
	if !strings.HasSuffix(folder, "/") {
		folder += "/"
	}
	var out []FSItem
	for id, item := range f.Items {
		if id == folder || !strings.HasPrefix(id, folder) {
			continue
		}
		rest := strings.TrimPrefix(id, folder)
		rest = strings.TrimSuffix(rest, "/")
		if strings.Contains(rest, "/") {
			continue
		}
		if item.Folder != folders {
			continue
		}
		if !folders && !ExtensionAllowed(item.Extension, extensions) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out
}
