// Package dbusaddr parses and renders D-Bus server addresses.
//
// # Overview
//
// A D-Bus server address names a transport and a set of transport-specific parameters:
//
//	unix:path=/run/user/1000/bus,guid=9a3b6d0e2f1c4e5d8a7b6c5d4e3f2a1b
//	tcp:host=localhost,port=12345,family=ipv4
//
// One address text may list several alternatives separated by ";",
// clients try them in order:
//
//	unix:path=/tmp/a;unix:abstract=/tmp/b;tcp:host=127.0.0.1,port=4000
//
// The package models these texts with three types:
//
//   - [Address]: a transport name and its [Params];
//   - [Params]: the decoded key/value parameters, unique keys, the last assignment wins;
//   - [List]: the ordered alternatives.
//
// # Parsing
//
//	l, err := dbusaddr.Parse("unix:path=/tmp/a;unix:path=/tmp/b")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path, _ := l[0].Get("path") // "/tmp/a"
//
// [ParseAddress] parses a single address. The parser is deliberately permissive:
//
//   - empty entries are skipped: "t:,,guid=abcd" has one parameter;
//   - a key without "=" gets the empty value: "t:foo,bar";
//   - repeated keys keep the last value: "t:k=1,k=2" has k = "2";
//   - unknown transports and keys are accepted as is;
//   - blank list segments are skipped: ";unix:path=/a;;" is one address.
//
// Keys and values are percent-decoded, see [Unescape]. Transport names are taken verbatim.
//
// # Rendering
//
// [Address.String] and [List.String] produce the canonical text: every key and value
// is escaped with [Escape] and written as "key=value", including "key=" for empty values.
// Parsing the canonical text yields an equal value (see [Address.Equal], [List.Equal]).
// [RenderOptions] can sort the parameters for stable output.
//
// # Errors
//
// Parse failures are returned as [*ParseError] which tells the segment and byte offset
// of the offending text and wraps one of the sentinels:
// [ErrMissingTransport], [ErrInvalidEscape], [ErrInvalidEncoding], [ErrMalformedInput].
//
//	_, err := dbusaddr.Parse("t:k=%zz")
//	errors.Is(err, dbusaddr.ErrInvalidEscape) // true
//
// Parsing a list is all-or-nothing: the first bad segment fails the whole list.
//
// # Related packages
//
// Package transport interprets the parameters of the well-known transports
// (unix, tcp, nonce-tcp, unixexec, autolaunch, launchd, systemd, vsock).
// Package bus discovers the session and system bus addresses.
//
// All functions are pure and safe for concurrent use.
package dbusaddr

//go:generate errtrace -w .
