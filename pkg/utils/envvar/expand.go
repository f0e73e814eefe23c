// Package envvar expands ${VAR} and ${VAR:-default} placeholders in configuration values.
package envvar

import (
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// pattern matches ${VAR_NAME} and ${VAR_NAME:-default}.
// Groups: 1 = variable name, 2 = optional default value.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

const defaultSyntaxMarker = ":-"

// Expander replaces placeholders using a lookup function.
type Expander struct {
	lookup func(string) (string, bool)
	logger logrus.FieldLogger
}

// NewExpander returns an Expander reading the process environment.
// Unset variables without a default are reported on logger at warn level.
func NewExpander(logger logrus.FieldLogger) *Expander {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Expander{lookup: os.LookupEnv, logger: logger}
}

// Expand replaces ${VAR_NAME} and ${VAR_NAME:-default} placeholders.
// If a referenced variable is not set:
//   - ${VAR:-default} yields default (possibly empty)
//   - ${VAR} yields an empty string and a warning is logged
func (e *Expander) Expand(value string) string {
	if value == "" || !strings.Contains(value, "${") {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, e.expandMatch)
}

func (e *Expander) expandMatch(match string) string {
	groups := pattern.FindStringSubmatch(match)
	if len(groups) < 2 {
		return match
	}

	name := groups[1]
	if value, ok := e.lookup(name); ok {
		return value
	}

	if len(groups) > 2 && groups[2] != "" {
		return groups[2]
	}

	if strings.Contains(match, defaultSyntaxMarker) {
		return ""
	}

	e.logger.WithField("variable", name).Warn("environment variable not set")

	return ""
}

// Expand expands placeholders against the process environment using the standard logger.
func Expand(value string) string {
	return NewExpander(nil).Expand(value)
}
