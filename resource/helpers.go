package resource

import "reflect"

func CloneMapStringAny(src map[string]any) map[string]any {
	if src == nil {
		return map[string]any{}
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

// Equal compares two normalized values structurally.
func Equal(left Value, right Value) bool {
	return reflect.DeepEqual(left, right)
}

// AsObject returns the value as a string-keyed object when it is one.
func AsObject(value Value) (map[string]any, bool) {
	object, ok := value.(map[string]any)
	return object, ok
}
