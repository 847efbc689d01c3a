package chip8

import "errors"

// ErrStackUnderflow is returned by Step when a Return instruction executes
// against an empty call stack. It is the only fatal error the dispatcher
// can produce; every other instruction is total.
var ErrStackUnderflow = errors.New("chip8: stack underflow on return")
