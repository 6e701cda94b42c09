package dbusaddr_test

import (
	"errors"
	"fmt"

	"github.com/ghettovoice/dbusaddr"
)

func ExampleParse() {
	l, err := dbusaddr.Parse("unix:path=/tmp/dbus%20test,guid=9a3b6d0e2f1c4e5d8a7b6c5d4e3f2a1b;tcp:host=localhost,port=4000")
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, a := range l {
		fmt.Println(a.Transport())
		for k, v := range a.Params().All() {
			fmt.Printf("  %s = %q\n", k, v)
		}
	}
	// Output:
	// unix
	//   path = "/tmp/dbus test"
	//   guid = "9a3b6d0e2f1c4e5d8a7b6c5d4e3f2a1b"
	// tcp
	//   host = "localhost"
	//   port = "4000"
}

func ExampleParse_relaxed() {
	l, _ := dbusaddr.Parse(";t:,,k=1,k=2,flag;;")
	fmt.Println(len(l), l.String())
	// Output:
	// 1 t:k=2,flag=
}

func ExampleParse_error() {
	_, err := dbusaddr.Parse("unix:path=/a;tcp:host=%zz")

	var parseErr *dbusaddr.ParseError
	if errors.As(err, &parseErr) {
		fmt.Println(parseErr.Segment, parseErr.Offset, parseErr.Near)
	}
	fmt.Println(errors.Is(err, dbusaddr.ErrInvalidEscape))
	// Output:
	// 1 22 %zz
	// true
}

func ExampleNewAddress() {
	a, err := dbusaddr.NewAddress("unix", dbusaddr.NewParams("path", "/tmp/a b;c"))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(a.String())
	fmt.Printf("%+s\n", a.With("abstract", "x").With("guid", "0"))
	// Output:
	// unix:path=/tmp/a%20b%3Bc
	// unix:abstract=x,guid=0,path=/tmp/a%20b%3Bc
}

func ExampleEscape() {
	fmt.Println(dbusaddr.Escape("/tmp/with space,semi;colon"))
	// Output:
	// /tmp/with%20space%2Csemi%3Bcolon
}
