package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound indicates a record, alias or file that does not exist.
// Callers treat this as a resolution miss, never as a fault.
var ErrNotFound = errors.New("record not found")

// ErrCollaboratorUnavailable is the sentinel all collaborator I/O failures
// unwrap to.
var ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

// CollaboratorError wraps an I/O failure of an external collaborator.
// The core never retries these; retry policy belongs to the collaborator's
// own client.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator unavailable: %s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// Is reports true for ErrCollaboratorUnavailable.
func (e *CollaboratorError) Is(target error) bool {
	return target == ErrCollaboratorUnavailable
}

// Unavailable wraps err as a collaborator failure for operation op.
func Unavailable(op string, err error) error {
	return &CollaboratorError{Op: op, Err: err}
}

// Row is one stored record. Fields holds all column values including uid and
// pid; Uid, Pid and SortIndex are lifted out because the core consumes them
// on every row.
type Row struct {
	Uid       int
	Pid       int
	SortIndex float64
	Fields    map[string]any
}

// Sort specifies the effective ordering of a listing. An empty Field means
// the table's native manual-sort order.
type Sort struct {
	Field string
	Desc  bool
}

// Scope restricts a listing to a parent page and an optional search.
type Scope struct {
	PageID int
	// Search is a free-text search term; non-empty search disables manual
	// reordering in the list module.
	Search string
	// SearchLevels widens the search below PageID. 0 means the page itself.
	SearchLevels int
}

// Filter holds equality constraints applied in addition to the scope.
type Filter map[string]any

// RecordStore is the persistence collaborator of the record list and the
// page link handler.
type RecordStore interface {
	// Count returns the total number of matching rows, ignoring windowing.
	Count(ctx context.Context, table string, scope Scope, filter Filter) (int, error)
	// FetchWindow returns matching rows ordered by sort, starting at offset.
	// limit <= 0 fetches all remaining rows.
	FetchWindow(ctx context.Context, table string, scope Scope, filter Filter, sort Sort, offset, limit int) ([]Row, error)
	// ResolveAlias resolves a record alias to its uid, ErrNotFound when the
	// alias is unknown.
	ResolveAlias(ctx context.Context, table, alias string) (int, error)
	// GetRecord fetches a single record, ErrNotFound when missing.
	GetRecord(ctx context.Context, table string, uid int) (Row, error)
	// CountReferences returns how many records elsewhere refer to the given
	// record, per the deployment's reference index. 0 when no index is
	// maintained.
	CountReferences(ctx context.Context, table string, uid int) (int, error)
}

// FSItem is a file or folder entry of the file storage collaborator.
type FSItem struct {
	Identifier string
	Name       string
	Extension  string
	UID        int
	Folder     bool
}

// FileSystem is the file storage collaborator of the file and folder link
// handlers.
type FileSystem interface {
	// ResolveIdentifier resolves a combined identifier to a file or folder,
	// ErrNotFound when it does not exist.
	ResolveIdentifier(ctx context.Context, identifier string) (FSItem, error)
	// GetFile resolves an indexed file by its uid, ErrNotFound when the
	// index has no such file.
	GetFile(ctx context.Context, uid int) (FSItem, error)
	// ListFiles lists the files of a folder, restricted to the given
	// extensions. An empty list or a "*" entry allows everything.
	ListFiles(ctx context.Context, folder string, extensions []string) ([]FSItem, error)
	// ListFolders lists the sub folders of a folder.
	ListFolders(ctx context.Context, folder string) ([]FSItem, error)
}

// Permissions is the opaque access-control capability. Denials cause actions
// to be omitted, never errors.
type Permissions interface {
	CanEdit(table string, row Row) bool
	CanDelete(table string, row Row) bool
	CanCreateAt(pageID int) bool
	// CanEditField gates column-level actions such as hide/unhide.
	CanEditField(table, field string) bool
	// CanAccessLanguage gates translation actions.
	CanAccessLanguage(languageID int) bool
}
