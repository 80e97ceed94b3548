package bridge

import (
	"fmt"
	"sort"
	"strings"

	"asset-bridge/core/engine"

	"github.com/agnivade/levenshtein"
)

// PropertyType is the value type of an importer property.
type PropertyType int

const (
	Integer PropertyType = iota
	Float
	String
)

func (t PropertyType) String() string {
	switch t {
	case Integer:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return fmt.Sprintf("PropertyType(%d)", int(t))
	}
}

// ParsePropertyType accepts the names produced by PropertyType.String and a
// few common aliases.
func ParsePropertyType(s string) (PropertyType, error) {
	switch strings.ToLower(s) {
	case "int", "integer":
		return Integer, nil
	case "float":
		return Float, nil
	case "string", "str":
		return String, nil
	default:
		return 0, fmt.Errorf("unknown property type %q", s)
	}
}

// PropertyValue is one named, typed importer property.
type PropertyValue struct {
	Name  string       `json:"name"`
	Type  PropertyType `json:"-"`
	Int   int32        `json:"-"`
	Float float32      `json:"-"`
	Str   string       `json:"-"`
}

// IntProperty builds an Integer property.
func IntProperty(name string, v int32) PropertyValue {
	return PropertyValue{Name: name, Type: Integer, Int: v}
}

// FloatProperty builds a Float property.
func FloatProperty(name string, v float32) PropertyValue {
	return PropertyValue{Name: name, Type: Float, Float: v}
}

// StringProperty builds a String property.
func StringProperty(name, v string) PropertyValue {
	return PropertyValue{Name: name, Type: String, Str: v}
}

// Value returns the typed value.
func (p PropertyValue) Value() any {
	switch p.Type {
	case Integer:
		return p.Int
	case Float:
		return p.Float
	default:
		return p.Str
	}
}

func (p PropertyValue) apply(imp engine.Importer) {
	switch p.Type {
	case Integer:
		imp.SetPropertyInteger(p.Name, p.Int)
	case Float:
		imp.SetPropertyFloat(p.Name, p.Float)
	case String:
		imp.SetPropertyString(p.Name, p.Str)
	}
}

// PropertyChannel stores properties written since the last load. Pending
// values are handed to the importer right before the next import, so a write
// never affects a scene that was already produced.
type PropertyChannel struct {
	pending map[string]PropertyValue
	applied map[string]PropertyValue
}

// NewPropertyChannel creates an empty channel.
func NewPropertyChannel() *PropertyChannel {
	return &PropertyChannel{
		pending: make(map[string]PropertyValue),
		applied: make(map[string]PropertyValue),
	}
}

// Set records v, replacing any pending value of the same name. Strings are
// copied so the channel never aliases caller memory.
func (c *PropertyChannel) Set(v PropertyValue) {
	v.Name = strings.Clone(v.Name)
	v.Str = strings.Clone(v.Str)
	c.pending[v.Name] = v
}

// Pending returns the values waiting for the next load, sorted by name.
func (c *PropertyChannel) Pending() []PropertyValue {
	return sortedValues(c.pending)
}

// Applied returns every value handed to the importer so far, sorted by name.
func (c *PropertyChannel) Applied() []PropertyValue {
	return sortedValues(c.applied)
}

// Flush hands the pending values to imp and returns the full set in effect.
func (c *PropertyChannel) Flush(imp engine.Importer) []PropertyValue {
	for _, v := range sortedValues(c.pending) {
		v.apply(imp)
		c.applied[v.Name] = v
	}
	clear(c.pending)
	return c.Applied()
}

func sortedValues(m map[string]PropertyValue) []PropertyValue {
	out := make([]PropertyValue, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// closestProperty returns the known name nearest to name, or "" when nothing
// is reasonably close.
func closestProperty(name string, known []string) string {
	best, bestDist := "", len(name)/2+1
	for _, k := range known {
		if d := levenshtein.ComputeDistance(strings.ToUpper(name), strings.ToUpper(k)); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}
