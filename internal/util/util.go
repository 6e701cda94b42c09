package util

//go:generate errtrace -w .

// Must2 returns v or panics with e.
// Use it only where e can't be non-nil, like building values from constants.
func Must2[T any](v T, e error) T {
	if e != nil {
		panic(e)
	}
	return v
}
