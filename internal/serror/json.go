package serror

import (
	"strconv"

	"github.com/tidwall/sjson"
)

// TraceJSON renders the error as a JSON document:
//
//	{"line":3,"col":2,"reason":"...","frames":[{"proc":"fact","line":5,"col":10}]}
//
// No CLI command calls it; the tests query a specific field with
// gjson rather than string-matching Error()'s text.
func (e *SkimpyError) TraceJSON() (string, error) {
	json := "{}"
	var err error
	if json, err = sjson.Set(json, "line", e.Line); err != nil {
		return "", err
	}
	if json, err = sjson.Set(json, "col", e.Col); err != nil {
		return "", err
	}
	if json, err = sjson.Set(json, "reason", e.Reason); err != nil {
		return "", err
	}
	for i, f := range e.Frames {
		if json, err = sjson.Set(json, frameKey(i, "proc"), f.Proc); err != nil {
			return "", err
		}
		if json, err = sjson.Set(json, frameKey(i, "line"), f.Line); err != nil {
			return "", err
		}
		if json, err = sjson.Set(json, frameKey(i, "col"), f.Col); err != nil {
			return "", err
		}
	}
	return json, nil
}

func frameKey(i int, field string) string {
	return "frames." + strconv.Itoa(i) + "." + field
}
