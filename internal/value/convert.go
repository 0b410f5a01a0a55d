package value

// Pythonify unwraps v to a plain Go value for "non-raw" native
// procedures, named after original_source/sdata.py's skimpify/
// PythonProc split: a native written against ordinary Go types
// (float64, string, rune, bool) never has to touch the Value tagged
// union. Values with no natural host representation (pairs, symbols,
// procedures) pass through unchanged.
func Pythonify(v Value) any {
	switch t := v.(type) {
	case Number:
		return float64(t)
	case String:
		return string(t)
	case Char:
		return rune(t)
	case Boolean:
		return bool(t)
	case EmptyValue:
		return nil
	default:
		return v
	}
}

// Skimpify wraps a plain Go value produced by a non-raw native back
// into the tagged Value union.
func Skimpify(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case float64:
		return Number(t)
	case int:
		return Number(float64(t))
	case string:
		return String(t)
	case rune:
		return Char(t)
	case bool:
		return BoolOf(t)
	case nil:
		return Empty
	default:
		return None
	}
}
