package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ghettovoice/dbusaddr"
	"github.com/ghettovoice/dbusaddr/log"
)

func TestConsole(t *testing.T) {
	t.Parallel()

	l, err := dbusaddr.Parse("unix:path=/tmp/a;systemd:")
	if err != nil {
		t.Fatalf("dbusaddr.Parse() error = %v, want nil", err)
	}

	var buf bytes.Buffer
	logger := log.Console(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("resolved", "addr", l[0], "list", l, "error", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record is logged at info level: %q", out)
	}
	for _, want := range []string{"resolved", "unix:path=/tmp/a", "unix:path=/tmp/a;systemd:", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestDevelop(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log.Develop(&buf, slog.LevelDebug).Debug("parsed", "addr", log.StringValue("tcp:host=localhost"))
	if out := buf.String(); !strings.Contains(out, "tcp:host=localhost") {
		t.Errorf("output %q does not contain the address", out)
	}
}

func TestNoop(t *testing.T) {
	t.Parallel()

	if log.Noop.Enabled(context.Background(), slog.LevelError) {
		t.Error("log.Noop is enabled")
	}
}

func TestDefault(t *testing.T) {
	if got := log.Default(); got != log.Noop {
		t.Fatalf("log.Default() = %v, want log.Noop", got)
	}

	t.Cleanup(func() { log.SetDefault(nil) })

	log.SetDefault(log.Def)
	if got := log.Default(); got != log.Def {
		t.Errorf("log.Default() = %v, want log.Def", got)
	}
	log.SetDefault(nil)
	if got := log.Default(); got != log.Noop {
		t.Errorf("log.Default() = %v after reset, want log.Noop", got)
	}
}

func TestFmtValue(t *testing.T) {
	t.Parallel()

	v := struct{ A int }{1}
	if got, want := log.FmtValue(v, false).LogValue().String(), "{A:1}"; got != want {
		t.Errorf("log.FmtValue(v, false) = %q, want %q", got, want)
	}
	if got, want := log.FmtValue(v, true).LogValue().String(), "struct { A int }{A:1}"; got != want {
		t.Errorf("log.FmtValue(v, true) = %q, want %q", got, want)
	}
	if got, want := log.StringValue([]byte("abc")).LogValue().String(), "abc"; got != want {
		t.Errorf("log.StringValue() = %q, want %q", got, want)
	}
}
