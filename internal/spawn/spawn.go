// Package spawn launches programs detached from the launcher.
package spawn

import (
	"os/exec"
	"strings"

	"github.com/go-logr/logr"
)

// Spawner launches a command line and reports whether the launch worked.
type Spawner interface {
	Spawn(commandLine string) bool
}

// Parse splits a command line on whitespace into a program and its
// arguments. Quotes are not interpreted. ok is false for a blank line.
func Parse(commandLine string) (program string, args []string, ok bool) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}

// Dispatcher is the default Spawner. The zero value is ready to use and
// logs nothing.
type Dispatcher struct {
	Log logr.Logger
}

// NewDispatcher returns a Dispatcher that logs launches to log.
func NewDispatcher(log logr.Logger) *Dispatcher {
	return &Dispatcher{Log: log}
}

// Spawn starts the program named by the first token of commandLine with the
// remaining tokens as arguments. It does not wait for the program; the
// result only says whether it was started.
func (d *Dispatcher) Spawn(commandLine string) bool {
	program, args, ok := Parse(commandLine)
	if !ok {
		d.logger().Info("nothing to launch", "commandLine", commandLine)
		return false
	}

	cmd := exec.Command(program, args...)
	detach(cmd)

	if err := cmd.Start(); err != nil {
		d.logger().Error(err, "launch failed", "program", program, "args", args)
		return false
	}
	d.logger().Info("launched", "program", program, "args", args, "pid", cmd.Process.Pid)

	// Reap the child if it exits while we are still running.
	go cmd.Wait()
	return true
}

func (d *Dispatcher) logger() logr.Logger {
	if d == nil || d.Log.GetSink() == nil {
		return logr.Discard()
	}
	return d.Log
}
