package environment

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownEnvironment = errors.New("environment: unknown build mode")
	ErrUnknownRuntime     = errors.New("environment: unknown runtime")
)

// Environment is the build mode.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Staging     Environment = "staging"
)

// Parse maps s to an Environment. Short aliases (dev, stage, prod) are
// accepted; matching is case-insensitive.
func Parse(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return Development, nil
	case "staging", "stage":
		return Staging, nil
	case "production", "prod":
		return Production, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, s)
}

// IsProduction reports whether e is the production build mode.
func (e Environment) IsProduction() bool { return e == Production }

func (e Environment) String() string { return string(e) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Environment) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Runtime is the side of the application the pipeline runs on.
type Runtime string

const (
	Client Runtime = "client"
	Server Runtime = "server"
)

// ParseRuntime maps s to a Runtime, case-insensitively.
func ParseRuntime(s string) (Runtime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client", "browser":
		return Client, nil
	case "server":
		return Server, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRuntime, s)
}

// Tag is the value stamped into log records: the runtime upper-cased.
func (r Runtime) Tag() string { return strings.ToUpper(string(r)) }

func (r Runtime) String() string { return string(r) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Runtime) UnmarshalText(text []byte) error {
	v, err := ParseRuntime(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
