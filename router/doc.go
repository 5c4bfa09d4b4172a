// Package router exposes the record browsing subsystem over HTTP: the link
// browser, the record list module and the clipboard commands.
package router
