package ledger

import "fmt"

// TrapError reports a call that aborted. Its effects were rolled back.
type TrapError struct {
	Message string
}

func (e *TrapError) Error() string {
	return fmt.Sprintf("call trapped: %s", e.Message)
}

func trap(msg string) {
	panic(&TrapError{Message: msg})
}

// recoverTrap converts a trap panic into an error; any other panic is re-raised.
func recoverTrap(err *error) {
	r := recover()
	if r == nil {
		return
	}
	t, ok := r.(*TrapError)
	if !ok {
		panic(r)
	}
	*err = t
}
