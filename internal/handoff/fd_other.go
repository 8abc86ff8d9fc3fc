//go:build !unix

package handoff

func dup(int) (int, error) { return -1, ErrUnsupported }

func dup2(int, int) error { return ErrUnsupported }

func closeFD(int) {}

type fdWriter int

func (fdWriter) Write([]byte) (int, error) { return 0, ErrUnsupported }
