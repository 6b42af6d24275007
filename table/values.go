package table

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"time"

	"github.com/kbukum/tablekit/render"
)

// toFloat converts numeric values. Strings are not numbers.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

func isTemporal(v any) bool {
	_, ok := v.(time.Time)
	return ok
}

// isMissing reports nil and NaN.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	f, ok := toFloat(v)
	return ok && math.IsNaN(f)
}

// plainValue is the unformatted text of a cell value.
func plainValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NA"
	case string:
		return x
	case Text:
		return x.String()
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		if math.IsNaN(x) {
			return "NA"
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	}
	if render.IsRenderable(v) {
		return render.ValueString(v)
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// defaultHTML renders an unformatted cell value.
func defaultHTML(v any) (string, error) {
	switch x := v.(type) {
	case Text:
		return x.HTML()
	case string:
		return html.EscapeString(x), nil
	}
	if render.IsRenderable(v) {
		return render.HTML(v)
	}
	return html.EscapeString(plainValue(v)), nil
}
