package bus_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/mock/gomock"

	"github.com/ghettovoice/dbusaddr"
	"github.com/ghettovoice/dbusaddr/bus"
	"github.com/ghettovoice/dbusaddr/internal/testutil/envmock"
	"github.com/ghettovoice/dbusaddr/log"
)

func mustParse(t testing.TB, s string) dbusaddr.List {
	t.Helper()

	l, err := dbusaddr.Parse(s)
	if err != nil {
		t.Fatalf("dbusaddr.Parse(%q) error = %v, want nil", s, err)
	}
	return l
}

// newEnv returns a mock environment with the variables vars, other variables are unset.
func newEnv(ctrl *gomock.Controller, vars map[string]string, euid int) *envmock.MockEnvironment {
	env := envmock.NewMockEnvironment(ctrl)
	env.EXPECT().
		LookupEnv(gomock.Any()).
		DoAndReturn(func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		}).
		AnyTimes()
	env.EXPECT().
		Geteuid().
		Return(euid).
		AnyTimes()
	return env
}

func TestSession(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		goos string
		vars map[string]string
		want string
	}{
		{
			"from env",
			"linux",
			map[string]string{
				bus.EnvSessionBusAddress: "unix:abstract=/tmp/dbus-XYZ,guid=0123;tcp:host=localhost,port=4000",
				bus.EnvXDGRuntimeDir:     "/run/user/1000",
			},
			"unix:abstract=/tmp/dbus-XYZ,guid=0123;tcp:host=localhost,port=4000",
		},
		{"from env on windows", "windows", map[string]string{bus.EnvSessionBusAddress: "tcp:host=h"}, "tcp:host=h"},
		{"xdg runtime dir", "linux", map[string]string{bus.EnvXDGRuntimeDir: "/run/user/1000"}, "unix:path=/run/user/1000/bus"},
		{"xdg runtime dir with space", "freebsd", map[string]string{bus.EnvXDGRuntimeDir: "/tmp/my runtime/"}, "unix:path=/tmp/my%20runtime/bus"},
		{"euid", "linux", nil, "unix:path=/run/user/1001/bus"},
		{"empty xdg runtime dir", "linux", map[string]string{bus.EnvXDGRuntimeDir: ""}, "unix:path=/run/user/1001/bus"},
		{"blank env", "linux", map[string]string{bus.EnvSessionBusAddress: "  "}, "unix:path=/run/user/1001/bus"},
		{"darwin", "darwin", nil, "launchd:env=DBUS_LAUNCHD_SESSION_BUS_SOCKET"},
		{"windows", "windows", nil, "autolaunch:scope=%2Auser;autolaunch:"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			got, err := bus.Session(&bus.Options{Env: newEnv(ctrl, c.vars, 1001), GOOS: c.goos})
			if err != nil {
				t.Fatalf("bus.Session() error = %v, want nil", err)
			}
			want := mustParse(t, c.want)
			if diff := cmp.Diff(got, want); diff != "" {
				t.Errorf("bus.Session() = %q, want %q\ndiff (-got +want):\n%v", got.String(), want.String(), diff)
			}
		})
	}
}

func TestSystem(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		goos string
		vars map[string]string
		want string
	}{
		{"from env", "linux", map[string]string{bus.EnvSystemBusAddress: "unix:path=/run/dbus/system_bus_socket"}, "unix:path=/run/dbus/system_bus_socket"},
		{"linux", "linux", nil, "unix:path=/var/run/dbus/system_bus_socket"},
		{"netbsd", "netbsd", map[string]string{bus.EnvSessionBusAddress: "tcp:host=h"}, "unix:path=/var/run/dbus/system_bus_socket"},
		{"darwin", "darwin", nil, "launchd:env=DBUS_LAUNCHD_SESSION_BUS_SOCKET"},
		{"windows", "windows", nil, "autolaunch:"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			got, err := bus.System(&bus.Options{Env: newEnv(ctrl, c.vars, 0), GOOS: c.goos})
			if err != nil {
				t.Fatalf("bus.System() error = %v, want nil", err)
			}
			want := mustParse(t, c.want)
			if diff := cmp.Diff(got, want); diff != "" {
				t.Errorf("bus.System() = %q, want %q\ndiff (-got +want):\n%v", got.String(), want.String(), diff)
			}
		})
	}
}

func TestStarter(t *testing.T) {
	t.Parallel()

	t.Run("set", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		env := envmock.NewMockEnvironment(ctrl)
		env.EXPECT().
			LookupEnv(bus.EnvStarterAddress).
			Return("unix:path=/run/dbus/system_bus_socket", true).
			Times(1)

		got, err := bus.Starter(&bus.Options{Env: env})
		if err != nil {
			t.Fatalf("bus.Starter() error = %v, want nil", err)
		}
		if diff := cmp.Diff(got, mustParse(t, "unix:path=/run/dbus/system_bus_socket")); diff != "" {
			t.Errorf("bus.Starter() mismatch\ndiff (-got +want):\n%v", diff)
		}
	})

	t.Run("unset", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		env := envmock.NewMockEnvironment(ctrl)
		env.EXPECT().
			LookupEnv(bus.EnvStarterAddress).
			Return("", false).
			Times(1)

		got, err := bus.Starter(&bus.Options{Env: env})
		if diff := cmp.Diff(err, bus.ErrNoStarter, cmpopts.EquateErrors()); diff != "" {
			t.Errorf("bus.Starter() error = %v, want %v\ndiff (-got +want):\n%v", err, bus.ErrNoStarter, diff)
		}
		if got != nil {
			t.Errorf("bus.Starter() = %v, want nil", got)
		}
	})
}

func TestSession_ParseError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	env := newEnv(ctrl, map[string]string{bus.EnvSessionBusAddress: "unix:path=/a;broken"}, 0)

	var buf bytes.Buffer
	got, err := bus.Session(&bus.Options{Env: env, Log: log.Console(&buf, slog.LevelDebug)})
	if got != nil {
		t.Errorf("bus.Session() = %v, want nil", got)
	}
	if !errors.Is(err, dbusaddr.ErrMissingTransport) {
		t.Errorf("bus.Session() error = %v, want %v", err, dbusaddr.ErrMissingTransport)
	}
	if !dbusaddr.IsGrammarErr(err) {
		t.Errorf("dbusaddr.IsGrammarErr(%v) = false, want true", err)
	}
	if err != nil && !strings.Contains(err.Error(), bus.EnvSessionBusAddress) {
		t.Errorf("bus.Session() error = %q, want the variable name in the message", err)
	}
	if !strings.Contains(buf.String(), bus.EnvSessionBusAddress) {
		t.Errorf("log output %q does not mention %s", buf.String(), bus.EnvSessionBusAddress)
	}
}

func TestSession_Log(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	env := newEnv(ctrl, map[string]string{bus.EnvXDGRuntimeDir: "/run/user/7"}, 7)

	var buf bytes.Buffer
	if _, err := bus.Session(&bus.Options{Env: env, GOOS: "linux", Log: log.Console(&buf, slog.LevelDebug)}); err != nil {
		t.Fatalf("bus.Session() error = %v, want nil", err)
	}
	if out := buf.String(); !strings.Contains(out, "unix:path=/run/user/7/bus") {
		t.Errorf("log output %q does not contain the resolved address", out)
	}
}

func TestOSEnv(t *testing.T) {
	t.Setenv(bus.EnvSessionBusAddress, "unix:path=/tmp/os-env-bus")

	got, err := bus.Session(nil)
	if err != nil {
		t.Fatalf("bus.Session(nil) error = %v, want nil", err)
	}
	if diff := cmp.Diff(got, mustParse(t, "unix:path=/tmp/os-env-bus")); diff != "" {
		t.Errorf("bus.Session(nil) mismatch\ndiff (-got +want):\n%v", diff)
	}
}
