package errorlog

import "errors"

var ErrInvalidRecord = errors.New("errorlog: invalid log record")
