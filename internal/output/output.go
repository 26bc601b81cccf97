// Package output hands a finished result set to its consumer: standard
// output, or an external program that replaces this process.
package output

import (
	"bufio"
	"errors"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/Ning0612/osfind/internal/domain"
	"github.com/Ning0612/osfind/internal/finder"
)

// Print writes each result path to w, one per line, in discovery order.
func Print(w io.Writer, results *finder.ResultSet) error {
	bw := bufio.NewWriter(w)
	for path := range results.All() {
		if _, err := bw.WriteString(path); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Executor runs an external program with the result paths as its arguments.
type Executor interface {
	Exec(program string, paths []string) error
}

// ProcessExecutor replaces the current process image with program.
// program is used as given; PATH is not searched.
type ProcessExecutor struct {
	// Env defaults to os.Environ()
	Env []string
}

// Exec only returns on failure, as a *domain.PathError of kind ErrExec.
func (e ProcessExecutor) Exec(program string, paths []string) error {
	env := e.Env
	if env == nil {
		env = os.Environ()
	}

	for {
		err := unix.Exec(program, Argv(program, paths), env)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return domain.NewPathError(domain.ErrExec, program, err)
	}
}

// Argv builds the argument vector: program first, then every path.
func Argv(program string, paths []string) []string {
	argv := make([]string, 0, len(paths)+1)
	argv = append(argv, program)
	return append(argv, paths...)
}
