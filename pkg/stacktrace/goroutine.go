package stacktrace

import (
	"strings"
)

const goroutinePrefix = "goroutine "

// Frames from these function prefixes belong to the capture machinery rather
// than to the code that failed.
var skippedFuncPrefixes = []string{
	"runtime.",
	"runtime/debug.",
	"panic(",
	"github.com/dmitrymomot/errorlog/pkg/record.",
	"github.com/dmitrymomot/errorlog.",
}

// parseGoroutine handles the output of runtime/debug.Stack. Each frame is a
// function line followed by a tab-indented "<file>:<line> +0x.." line.
func parseGoroutine(stack string) Location {
	lines := strings.Split(stack, "\n")

	for i := 1; i+1 < len(lines); i++ {
		fn := lines[i]
		if fn == "" || strings.HasPrefix(fn, "\t") {
			continue
		}
		pos := lines[i+1]
		if !strings.HasPrefix(pos, "\t") {
			continue
		}
		i++

		if skipFrame(fn) {
			continue
		}

		pos = strings.TrimPrefix(pos, "\t")
		if sp := strings.IndexByte(pos, ' '); sp >= 0 {
			pos = pos[:sp]
		}
		colon := strings.LastIndexByte(pos, ':')
		if colon <= 0 || colon == len(pos)-1 {
			return Location{}
		}
		return Location{URL: pos[:colon], Line: pos[colon+1:]}
	}

	return Location{}
}

func skipFrame(fn string) bool {
	for _, prefix := range skippedFuncPrefixes {
		if strings.HasPrefix(fn, prefix) {
			return true
		}
	}
	return false
}
