// Package version provides build-time version information.
//
// These variables are set at build time using ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/recordlist/version.Version=1.2.3 \
//	  -X github.com/ncobase/recordlist/version.Revision=abc123 \
//	  -X 'github.com/ncobase/recordlist/version.BuiltAt=$(date)'"
package version
