package transport

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/dbusaddr"
)

// UnixExec is the "unixexec" transport: a subprocess whose stdin and stdout carry the connection.
type UnixExec struct {
	// Path of the executable.
	Path string
	// Argv is the argument vector, Argv[0] defaults to Path.
	Argv []string
}

// ParseUnixExec interprets a "unixexec" address.
// The key "path" is required, "argv0", "argv1", ... make the argument vector
// and must not have gaps.
func ParseUnixExec(a *dbusaddr.Address) (*UnixExec, error) {
	if err := checkName(a, NameUnixExec); err != nil {
		return nil, errtrace.Wrap(err)
	}

	path, ok := a.Get("path")
	if !ok {
		return nil, errtrace.Wrap(missingKey("path"))
	}

	last := 0
	for k := range a.Params().Keys() {
		if n, ok := argvIndex(k); ok && n > last {
			last = n
		}
	}

	argv := make([]string, last+1)
	argv[0] = path
	if v, ok := a.Get("argv0"); ok {
		argv[0] = v
	}
	for i := 1; i <= last; i++ {
		key := "argv" + strconv.Itoa(i)
		v, ok := a.Get(key)
		if !ok {
			return nil, errtrace.Wrap(missingKey(key))
		}
		argv[i] = v
	}
	return &UnixExec{Path: path, Argv: argv}, nil
}

func argvIndex(key string) (int, bool) {
	s, ok := strings.CutPrefix(key, "argv")
	if !ok || s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (*UnixExec) Name() string { return NameUnixExec }

func (e *UnixExec) Address() *dbusaddr.Address {
	kvs := make([]string, 0, 2+2*len(e.Argv))
	kvs = append(kvs, "path", e.Path)
	for i, arg := range e.Argv {
		if i == 0 && arg == e.Path {
			continue
		}
		kvs = append(kvs, "argv"+strconv.Itoa(i), arg)
	}
	return newAddr(NameUnixExec, kvs...)
}
