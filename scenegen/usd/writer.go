package usd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spaghettifunk/usdfixtures/scenegen/math"
	"golang.org/x/exp/constraints"
)

const (
	layerHeader = layerMagic + " 1.0\n"
	indentUnit  = "    "
)

func writeLayer(w *bufio.Writer, roots []*Prim) error {
	if _, err := w.WriteString(layerHeader); err != nil {
		return err
	}
	for _, p := range roots {
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
		if err := writePrim(w, p, 0); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func writePrim(w *bufio.Writer, p *Prim, depth int) error {
	indent := strings.Repeat(indentUnit, depth)
	fmt.Fprintf(w, "%sdef %s %q\n%s{\n", indent, p.kind, p.name, indent)

	attrs := p.Attributes()
	for _, a := range attrs {
		value, err := formatValue(a.Value)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", p.path, a.Name, err)
		}
		if a.Uniform {
			w.WriteString(indent + indentUnit + "uniform ")
		} else {
			w.WriteString(indent + indentUnit)
		}
		fmt.Fprintf(w, "%s %s = %s\n", a.TypeName, a.Name, value)
	}

	for i, c := range p.children {
		if i > 0 || len(attrs) > 0 {
			w.WriteByte('\n')
		}
		if err := writePrim(w, c, depth+1); err != nil {
			return err
		}
	}

	_, err := w.WriteString(indent + "}\n")
	return err
}

func formatValue(v interface{}) (string, error) {
	switch val := v.(type) {
	case bool:
		if val {
			return "1", nil
		}
		return "0", nil
	case float32:
		return formatNumber(val), nil
	case int32:
		return formatNumber(val), nil
	case math.Vec3:
		return formatVec3(val), nil
	case []math.Vec3:
		return formatArray(val, formatVec3), nil
	case []int32:
		return formatArray(val, formatNumber[int32]), nil
	case []string:
		return formatArray(val, strconv.Quote), nil
	default:
		return "", fmt.Errorf("unsupported attribute value %T", v)
	}
}

// formatNumber prints the shortest representation that round-trips, so whole
// numbers come out without a decimal point.
func formatNumber[T constraints.Integer | constraints.Float](v T) string {
	switch n := any(v).(type) {
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	default:
		return fmt.Sprint(n)
	}
}

func formatVec3(v math.Vec3) string {
	return "(" + formatNumber(v.X) + ", " + formatNumber(v.Y) + ", " + formatNumber(v.Z) + ")"
}

func formatArray[T any](values []T, format func(T) string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = format(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
