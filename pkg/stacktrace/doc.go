// Package stacktrace extracts a source location from raw stack-trace text.
//
// Parsing is best-effort. Stack text comes from many runtimes and is often
// truncated or reformatted on the way in, so Parse never fails: text that does
// not look like a stack yields the zero Location.
//
// Two shapes are recognized. Browser style frames carry the location in
// parentheses:
//
//	Error: boom
//	    at render (https://cdn.example.com/app.js:10:5)
//
// Go goroutine dumps carry it on the tab-indented line below the function:
//
//	goroutine 1 [running]:
//	main.handler(...)
//		/srv/app/handler.go:42 +0x1d
//
// # Usage
//
//	loc := stacktrace.Parse(stack)
//	if !loc.IsZero() {
//	    fmt.Println(loc.URL, loc.Line, loc.Column)
//	}
package stacktrace
