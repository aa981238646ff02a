package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is a 24-bit RGB color stored as 0xRRGGBB.
// In YAML it is written as a quoted "#rrggbb"; bare integers are accepted too.
// Unquoted, the # starts a comment and the value is rejected as empty.
type Color uint32

// RGB returns the color channels in the 0-1 range.
func (c Color) RGB() [3]float32 {
	return [3]float32{
		float32((c>>16)&0xff) / 255.0,
		float32((c>>8)&0xff) / 255.0,
		float32(c&0xff) / 255.0,
	}
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// ParseColor parses "#rrggbb", "0xrrggbb" or "rrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 6 {
		return 0, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return Color(v), nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		return nil
	}
	if node.Tag == "!!int" {
		var v uint32
		if err := node.Decode(&v); err != nil {
			return err
		}
		if v > 0xffffff {
			return fmt.Errorf("line %d: color %d out of range", node.Line, v)
		}
		*c = Color(v)
		return nil
	}
	parsed, err := ParseColor(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}
