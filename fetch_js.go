package main

import (
	"errors"
	"fmt"
	"syscall/js"
)

var errFetchRejected = errors.New("fetch rejected")

// fetchGet downloads path and blocks until the body has been received.
// It must not be called from a JS callback.
func fetchGet(path string) ([]byte, error) {
	type result struct {
		b   []byte
		err error
	}
	ch := make(chan result, 1)

	var funcs []js.Func
	fn := func(f func(args []js.Value) interface{}) js.Func {
		jf := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			return f(args)
		})
		funcs = append(funcs, jf)
		return jf
	}
	defer func() {
		for _, f := range funcs {
			f.Release()
		}
	}()

	// Only the handlers of the last promise send the result so that
	// no callback is invoked after the functions are released.
	var errResp error
	js.Global().Call("fetch", path).Call("then",
		fn(func(args []js.Value) interface{} {
			if !args[0].Get("ok").Bool() {
				errResp = fmt.Errorf("%s: %s", path, args[0].Get("statusText").String())
				return nil
			}
			return args[0].Call("arrayBuffer")
		}),
		fn(func(args []js.Value) interface{} {
			errResp = fmt.Errorf("%s: %w", path, errFetchRejected)
			return nil
		}),
	).Call("then",
		fn(func(args []js.Value) interface{} {
			if errResp != nil {
				ch <- result{err: errResp}
				return nil
			}
			array := js.Global().Get("Uint8Array").New(args[0])
			b := make([]byte, array.Get("byteLength").Int())
			js.CopyBytesToGo(b, array)
			ch <- result{b: b}
			return nil
		}),
		fn(func(args []js.Value) interface{} {
			ch <- result{err: fmt.Errorf("%s: failed to read body", path)}
			return nil
		}),
	)

	res := <-ch
	return res.b, res.err
}
