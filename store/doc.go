// Package store defines the collaborator contracts the record browsing core
// depends on: record storage, file storage and permission checks, together
// with a database/sql backed record store, an OS file system and in-memory
// implementations for tests.
//
// All query methods take a context and block on I/O. Storage failures are
// reported as *CollaboratorError; a missing record is ErrNotFound and is a
// normal outcome, not a collaborator failure.
package store
