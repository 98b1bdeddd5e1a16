package interp

import "time"

// defineBuiltins installs the native functions in the global frame.
func (in *Interpreter) defineBuiltins() {
	in.globals.Define("clock", NewNative("clock", 0, func(in *Interpreter, _ []any) (any, error) {
		return float64(in.now().UnixNano()) / float64(time.Second), nil
	}))
}
