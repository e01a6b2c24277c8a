//go:build linux

package fsstore

import (
	"io/fs"
	"syscall"
	"time"

	"github.com/boolean-maybe/hound/entry"
)

// sysStat fills in the attributes only the raw stat structure carries.
func sysStat(info fs.FileInfo, e *entry.Entry) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	e.Ino = st.Ino
	e.Nlink = uint32(st.Nlink)
	e.UID = st.Uid
	e.GID = st.Gid
	e.Blocks = st.Blocks
	e.ATime = time.Unix(st.Atim.Sec, st.Atim.Nsec)
	e.CTime = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
}
