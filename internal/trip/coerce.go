package trip

import "encoding/json"

// Coercion helpers for walking loosely-typed backend JSON. Every function is
// total: bad input yields a zero value, never an error. The backend has
// shipped several response shapes over time, so nothing here may assume a
// field's type.

// decodeLoose parses raw into a JSON object, tolerating one extra level of
// string encoding ("double-encoded" payloads). Any failure yields an empty
// object so normalization can proceed on defaults.
func decodeLoose(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return map[string]any{}
	}
	// One additional decode pass when the value itself is a JSON string.
	if s, ok := v.(string); ok {
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return map[string]any{}
		}
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// unwrapNested resolves a field that may hold the nested payload either as an
// object or as a JSON-encoded string. Returns (nil, false) when the field is
// absent or unusable.
func unwrapNested(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case string:
		var parsed any
		if err := json.Unmarshal([]byte(t), &parsed); err != nil {
			return nil, false
		}
		if m, ok := parsed.(map[string]any); ok {
			return m, true
		}
	}
	return nil, false
}

// getString returns obj[key] as a string, or "" when missing or not a string.
func getString(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

// getFloat returns obj[key] as a float64. JSON numbers decode as float64;
// numeric strings are not accepted here because the backend never emits them
// for summary fields.
func getFloat(obj map[string]any, key string) float64 {
	if f, ok := obj[key].(float64); ok {
		return f
	}
	return 0
}

// getInt truncates obj[key] to an int.
func getInt(obj map[string]any, key string) int {
	return int(getFloat(obj, key))
}

// getStringSlice returns obj[key] as a []string, skipping non-string
// elements. Always non-nil.
func getStringSlice(obj map[string]any, key string) []string {
	out := []string{}
	arr, ok := obj[key].([]any)
	if !ok {
		return out
	}
	for _, el := range arr {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// getFloatMap returns obj[key] as a map[string]float64. Always non-nil.
func getFloatMap(obj map[string]any, key string) map[string]float64 {
	out := map[string]float64{}
	m, ok := obj[key].(map[string]any)
	if !ok {
		return out
	}
	for k, v := range m {
		if f, ok := v.(float64); ok {
			out[k] = f
		}
	}
	return out
}

// getObjectSlice returns obj[key] as a slice of objects, skipping anything
// that is not an object.
func getObjectSlice(obj map[string]any, key string) []map[string]any {
	var out []map[string]any
	arr, ok := obj[key].([]any)
	if !ok {
		return out
	}
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// optFloat returns obj[key] as a *float64, nil when absent or non-numeric.
func optFloat(obj map[string]any, key string) *float64 {
	if f, ok := obj[key].(float64); ok {
		return &f
	}
	return nil
}

// firstString returns the first non-empty string among vals.
func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstFloat returns the first non-zero float among vals.
func firstFloat(vals ...float64) float64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

// firstInt returns the first non-zero int among vals.
func firstInt(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}
