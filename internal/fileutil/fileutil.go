// Package fileutil holds file permission modes used when writing documents.
package fileutil

import "os"

// OwnerReadWrite is the file permission mode for normalized documents,
// which may carry sensitive record data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for documents written into an
// output directory that other tools consume.
const ReadableByAll os.FileMode = 0o644
