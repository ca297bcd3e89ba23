// Package assert provides runtime assertion checking for invariants that must
// never be violated by a correct caller. A failed assertion is a programmer
// error, not a recoverable, user-facing condition.
package assert

import "fmt"

// That panics if condition is false.
func That(condition bool, msg string, args ...any) {
	if condition {
		return
	}

	if len(args) > 0 {
		panic(fmt.Sprintf(msg, args...))
	}
	panic(msg)
}
