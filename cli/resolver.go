package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/qjsc/pkg"
)

// loadYAML is a [kong.ConfigurationLoader] for YAML configuration files.
//
// The document is a flat mapping from flag name to value:
//
//	log-level: debug
//	project-dir: [src, vendor/qml]
//	ns: qml
//
// Flag names may use underscores in place of hyphens. Command-line flags
// override configuration values.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var m map[string]any

	err := yaml.NewDecoder(r).Decode(&m)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, pkg.ErrParse.Wrap(err)
	}

	c := make(config, len(m))
	for key, val := range m {
		c[key] = flagValue(val)
	}

	return c, nil
}

// config implements [kong.Resolver] over a decoded configuration file.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil //nolint:nilnil
}

// flagValue converts a decoded YAML value into a form kong can parse.
// Kong requires numbers as strings.
func flagValue(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			if s, ok := flagValue(e).(string); ok {
				out[i] = s
			} else {
				out[i] = fmt.Sprint(e)
			}
		}

		return out
	default:
		return v
	}
}
