package config

// Merge deep-merges configuration layers in order: later layers override
// earlier ones. The inputs are never mutated; the result is a fresh tree.
//
// The rule, applied per key of an incoming layer:
//   - nil overwrites the target value (explicit nulling is allowed)
//   - a list replaces the target's list wholesale, never concatenates
//   - a nested object recurses; a non-object target value at that key is
//     first replaced with a fresh object
//   - any other value overwrites
func Merge(layers ...map[string]any) map[string]any {
	merged := make(map[string]any)
	for _, layer := range layers {
		applyLayer(merged, layer)
	}
	return merged
}

// applyLayer merges src into dst in place. dst is always a tree owned by
// Merge; values copied out of src are deep-copied so callers' layers stay
// untouched by later merges.
func applyLayer(dst, src map[string]any) {
	for key, incoming := range src {
		switch value := incoming.(type) {
		case nil:
			dst[key] = nil
		case map[string]any:
			target, ok := dst[key].(map[string]any)
			if !ok {
				target = make(map[string]any)
				dst[key] = target
			}
			applyLayer(target, value)
		case []any:
			dst[key] = copyList(value)
		default:
			dst[key] = value
		}
	}
}

// copyList deep-copies a list value so the merged tree never aliases a
// caller's layer.
func copyList(src []any) []any {
	out := make([]any, len(src))
	for i, v := range src {
		switch value := v.(type) {
		case map[string]any:
			m := make(map[string]any)
			applyLayer(m, value)
			out[i] = m
		case []any:
			out[i] = copyList(value)
		default:
			out[i] = value
		}
	}
	return out
}
