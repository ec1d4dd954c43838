//go:build js && wasm

// Command wasm drives a journey from the browser. After loading it registers:
//
//	stepFrame(offset, delta, width, height) -> jsonString
//	begin() -> bool
//	setProgress(percent)
//
// The page owns rendering and scroll input; this module owns the motion.
package main

import (
	"syscall/js"

	"github.com/ivlev/skyjourney/internal/scene"
	"github.com/ivlev/skyjourney/internal/session"
)

func main() {
	s, err := session.New(scene.Default(), session.Options{})
	if err != nil {
		js.Global().Get("console").Call("error", err.Error())
		return
	}

	js.Global().Set("stepFrame", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) < 4 {
			return map[string]any{"error": "stepFrame(offset, delta, width, height)"}
		}
		out, err := s.StepJSON(args[0].Float(), args[1].Float(), args[2].Int(), args[3].Int())
		if err != nil {
			return map[string]any{"error": err.Error()}
		}
		return out
	}))
	js.Global().Set("begin", js.FuncOf(func(_ js.Value, _ []js.Value) any {
		return s.Overlay.Explore()
	}))
	js.Global().Set("setProgress", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			s.Overlay.SetProgress(args[0].Float())
		}
		return nil
	}))

	select {} // keep the WASM module alive until the page is closed
}
