// Command pperror pretty-prints production error log lines.
//
//	kubectl logs app | pperror
//
// Each stdin line holding a log record (bare or wrapped as {"error": ...}) is
// printed as indented JSON with its stack on separate lines. Other lines pass
// through unchanged.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrymomot/errorlog"
	"github.com/dmitrymomot/errorlog/pkg/logger"
)

const maxLineBytes = 4 << 20

func main() {
	log := logger.New(logger.WithOutput(os.Stderr), logger.WithFormat(logger.FormatText))
	if err := run(os.Stdin, os.Stdout); err != nil {
		log.Error("pperror failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)
	defer w.Flush()

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
	for sc.Scan() {
		line := sc.Bytes()
		if !isRecord(line) {
			if _, err := fmt.Fprintln(w, string(line)); err != nil {
				return err
			}
			continue
		}
		err := errorlog.PrettyPrint(w, line)
		if errors.Is(err, errorlog.ErrInvalidRecord) {
			if _, err := fmt.Fprintln(w, string(line)); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return w.Flush()
}

// isRecord reports whether line is a JSON object carrying a record.
func isRecord(line []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return false
	}
	_, wrapped := fields["error"]
	_, bare := fields["message"]
	return wrapped || bare
}
