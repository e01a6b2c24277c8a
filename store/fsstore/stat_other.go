//go:build !linux

package fsstore

import (
	"io/fs"

	"github.com/boolean-maybe/hound/entry"
)

// sysStat is a no-op where the raw stat structure is unavailable; the
// portable defaults stand in.
func sysStat(info fs.FileInfo, e *entry.Entry) {}
