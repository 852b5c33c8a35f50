// Package inbox watches a directory for saved order-history snapshots.
//
// A file is reported once it has stopped changing for the settle period,
// so a browser still writing an archive is not imported half-written.
// Hidden files and files without a snapshot extension are ignored.
package inbox
