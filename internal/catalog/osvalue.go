package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ravendevteam/toolbox/internal/platform"
)

// OSValue holds a manifest field that is either one value for every OS or a map keyed by
// OS identifier. Older catalogs use the flat form; newer ones the per-OS form.
type OSValue struct {
	flat  string
	perOS map[platform.OS]string
}

// Flat creates a value shared by every OS
func Flat(v string) OSValue {
	return OSValue{flat: v}
}

// PerOS creates a value keyed by OS
func PerOS(m map[platform.OS]string) OSValue {
	cp := make(map[platform.OS]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return OSValue{perOS: cp}
}

// IsPerOS reports whether the value is keyed by OS
func (v OSValue) IsPerOS() bool {
	return v.perOS != nil
}

// IsZero reports whether no value was provided
func (v OSValue) IsZero() bool {
	return v.flat == "" && len(v.perOS) == 0
}

// For returns the value for os. A flat value applies to every OS.
func (v OSValue) For(os platform.OS) (string, bool) {
	if !v.IsPerOS() {
		return v.flat, v.flat != ""
	}
	s, ok := v.perOS[os]
	return s, ok && s != ""
}

// Values returns every concrete value, ordered by OS for per-OS maps
func (v OSValue) Values() []string {
	if !v.IsPerOS() {
		if v.flat == "" {
			return nil
		}
		return []string{v.flat}
	}
	out := make([]string, 0, len(v.perOS))
	for _, k := range v.keys() {
		out = append(out, v.perOS[k])
	}
	return out
}

// Keys returns the OS identifiers of a per-OS map, sorted
func (v OSValue) Keys() []platform.OS {
	return v.keys()
}

func (v OSValue) keys() []platform.OS {
	keys := make([]platform.OS, 0, len(v.perOS))
	for k := range v.perOS {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(string(keys[i])) < strings.ToLower(string(keys[j]))
	})
	return keys
}

func (v OSValue) String() string {
	if !v.IsPerOS() {
		return v.flat
	}
	parts := make([]string, 0, len(v.perOS))
	for _, k := range v.keys() {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v.perOS[k]))
	}
	return strings.Join(parts, ", ")
}

// UnmarshalJSON accepts a string or an object of strings
func (v *OSValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = OSValue{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Flat(s)
		return nil
	case '{':
		var raw map[string]string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		return v.fromMap(raw)
	default:
		return fmt.Errorf("expected string or object, got %s", data)
	}
}

// MarshalJSON writes the flat or per-OS form
func (v OSValue) MarshalJSON() ([]byte, error) {
	if !v.IsPerOS() {
		return json.Marshal(v.flat)
	}
	return json.Marshal(v.stringMap())
}

// UnmarshalYAML accepts a scalar or a mapping of scalars
func (v *OSValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*v = OSValue{}
			return nil
		}
		*v = Flat(node.Value)
		return nil
	case yaml.MappingNode:
		var raw map[string]string
		if err := node.Decode(&raw); err != nil {
			return err
		}
		return v.fromMap(raw)
	default:
		return fmt.Errorf("line %d: expected string or mapping", node.Line)
	}
}

// MarshalYAML writes the flat or per-OS form
func (v OSValue) MarshalYAML() (interface{}, error) {
	if !v.IsPerOS() {
		return v.flat, nil
	}
	return v.stringMap(), nil
}

func (v *OSValue) fromMap(raw map[string]string) error {
	m := make(map[platform.OS]string, len(raw))
	for k, s := range raw {
		os := platform.Parse(k)
		if !os.IsKnown() {
			return fmt.Errorf("unknown operating system %q", k)
		}
		m[os] = s
	}
	*v = OSValue{perOS: m}
	return nil
}

func (v OSValue) stringMap() map[string]string {
	m := make(map[string]string, len(v.perOS))
	for k, s := range v.perOS {
		m[string(k)] = s
	}
	return m
}
