// Package clipboard implements the record clipboard of the list module: a
// set of named selection pads persisted across requests in a session store.
//
// The "normal" pad is a single-slot copy/cut buffer, the numbered pads are
// multi-select sets driven by checkboxes. Only one pad is current at a time;
// paste offers are derived from the current pad's contents.
package clipboard
