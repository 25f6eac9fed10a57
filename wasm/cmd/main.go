//go:build js && wasm

// Design board WASM module. Exposes a global DesignBoard object whose methods
// take and return JSON strings:
//
//	const {data} = JSON.parse(DesignBoard.create())
//	DesignBoard.dispatch(data.id, JSON.stringify({type: "drop", kind: "cache", client: {x, y}}))
//	DesignBoard.render(data.id, "svg", width, height)
package main

import (
	"fmt"
	"os"
	"syscall/js"

	"github.com/panyam/designboard/editor"
	"github.com/panyam/designboard/services"
	"github.com/panyam/designboard/wasm/bridge"
)

var board *bridge.Bridge

func main() {
	fmt.Println("Design board WASM module loading...")
	board = bridge.New(editor.Options{Logger: services.NewLogger(os.Stdout, false)})

	api := js.ValueOf(map[string]any{
		"version":   "0.1.0",
		"create":    js.FuncOf(create),
		"dispatch":  js.FuncOf(dispatch),
		"state":     js.FuncOf(state),
		"render":    js.FuncOf(render),
		"remove":    js.FuncOf(remove),
		"palette":   js.FuncOf(palette),
		"shortcuts": js.FuncOf(shortcuts),
	})
	js.Global().Set("DesignBoard", api)

	// Keep the program running
	select {}
}

func jsError(message string) any {
	return fmt.Sprintf(`{"success":false,"error":%q}`, message)
}

func create(this js.Value, args []js.Value) any {
	return board.Create()
}

func dispatch(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return jsError("dispatch requires a session id and an event")
	}
	return board.Dispatch(args[0].String(), args[1].String())
}

func state(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return jsError("state requires a session id")
	}
	return board.State(args[0].String())
}

func render(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return jsError("render requires a session id and a format")
	}
	var width, height float64
	if len(args) >= 4 {
		width, height = args[2].Float(), args[3].Float()
	}
	return board.Render(args[0].String(), args[1].String(), width, height)
}

func remove(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return jsError("remove requires a session id")
	}
	return board.Delete(args[0].String())
}

func palette(this js.Value, args []js.Value) any   { return board.Palette() }
func shortcuts(this js.Value, args []js.Value) any { return board.Shortcuts() }
