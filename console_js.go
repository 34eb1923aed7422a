package main

import (
	"syscall/js"
)

// exposeConsole registers fn as a global taking one command line.
// Errors are thrown to the caller as JS Error objects.
func exposeConsole(name string, con *console) js.Func {
	fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) != 1 {
			return js.Global().Get("Error").New(errArgumentNumber.Error())
		}
		res, err := con.Run(args[0].String())
		if err != nil {
			return js.Global().Get("Error").New(err.Error())
		}
		return res
	})
	js.Global().Set(name, fn)
	return fn
}
