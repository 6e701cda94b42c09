package bus

import "os"

//go:generate mockgen -destination=../internal/testutil/envmock/envmock.go -package=envmock . Environment

// Environment is the process state the bus addresses are discovered from.
type Environment interface {
	// LookupEnv returns the value of the environment variable key and whether it is set.
	LookupEnv(key string) (string, bool)
	// Geteuid returns the effective user ID.
	Geteuid() int
}

type osEnv struct{}

func (osEnv) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

func (osEnv) Geteuid() int { return os.Geteuid() }

// OSEnv returns the environment of the current process.
func OSEnv() Environment { return osEnv{} }
