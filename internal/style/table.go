package style

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	errs "geoascii/internal/errors"
)

// Property is one formatted key/value pair of a feature.
type Property struct {
	Key, Value string
}

// SelectProperties formats the values of keys found in props, in the order
// given. A nil keys selects every key, sorted.
func SelectProperties(props map[string]any, keys []string) []Property {
	if keys == nil {
		keys = slices.Sorted(maps.Keys(props))
	}
	out := make([]Property, 0, len(keys))
	for _, k := range keys {
		v, ok := props[k]
		if !ok {
			continue
		}
		out = append(out, Property{Key: k, Value: FormatValue(v)})
	}
	return out
}

// FormatValue prints a decoded property value.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return t.String()
	default:
		bs, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(bs)
	}
}

var (
	keyCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	valueCellStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

// PropertiesTable prints the selected properties as a two column table with
// an ASCII border, keys on the left and values right-aligned. It fails with
// INVALID_INPUT when nothing is selected.
func PropertiesTable(props map[string]any, keys []string) (string, error) {
	sel := SelectProperties(props, keys)
	if len(sel) == 0 {
		return "", errs.New(errs.ErrCodeInvalidInput, "no properties to print")
	}
	rows := make([][]string, len(sel))
	for i, p := range sel {
		rows[i] = []string{p.Key, p.Value}
	}
	t := table.New().
		Border(lipgloss.ASCIIBorder()).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 1 {
				return valueCellStyle
			}
			return keyCellStyle
		})
	return t.Render(), nil
}
