package resource

// Value is a normalized payload value: nil, bool, string, int64, float64,
// []any, or map[string]any.
type Value = any
