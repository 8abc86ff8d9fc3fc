//go:build unix

package handoff

import "golang.org/x/sys/unix"

// dup copies fd to a new close-on-exec descriptor so launched programs do
// not inherit the saved streams.
func dup(fd int) (int, error) {
	return unix.FcntlInt(uintptr(fd), unix.F_DUPFD_CLOEXEC, 0)
}

func closeFD(fd int) {
	_ = unix.Close(fd)
}

// fdWriter writes straight to a descriptor slot. An *os.File is not used
// because its finalizer would close the slot.
type fdWriter int

func (w fdWriter) Write(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		m, err := unix.Write(int(w), p[n:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return n, err
		}
		n += m
	}
	return n, nil
}
