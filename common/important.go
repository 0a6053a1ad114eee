package common

import (
	"fmt"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Important mirrors the "important" option of utility CSS frameworks. It is
// either a flag (styles have no cascade, so selectors are left alone) or a
// scope selector (for example "#app") every generated selector is
// prefixed with.
type Important struct {
	Enabled bool
	Scope   string
}

// ParseImportant accepts "", "true", "false" or a scope selector.
func ParseImportant(s string) Important {
	s = strings.TrimSpace(s)
	if s == "" {
		return Important{}
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return Important{Enabled: b}
	}
	return Important{Enabled: true, Scope: s}
}

// IsScoped returns true when selectors carry a scope prefix.
func (i Important) IsScoped() bool {
	return i.Scope != ""
}

func (i Important) String() string {
	if i.Scope != "" {
		return i.Scope
	}
	return strconv.FormatBool(i.Enabled)
}

// UnmarshalYAML accepts both boolean and string forms.
func (i *Important) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: important must be a boolean or a selector string", value.Line)
	}
	if value.Tag == "!!bool" {
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		*i = Important{Enabled: b}
		return nil
	}
	*i = ParseImportant(value.Value)
	return nil
}

// MarshalYAML writes the shortest form back.
func (i Important) MarshalYAML() (any, error) {
	if i.Scope != "" {
		return i.Scope, nil
	}
	return i.Enabled, nil
}
