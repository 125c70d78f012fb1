package manifest

// DeepMerge merges overlay into base and returns a new map.
// Merge semantics:
//   - both values are maps: recursive merge
//   - anything else (scalars, lists, mixed kinds): overlay replaces base
//
// Neither input is modified.
func DeepMerge(base, overlay map[string]any) map[string]any {
	result := copyMap(base)

	for key, overlayValue := range overlay {
		baseValue, exists := result[key]
		if !exists {
			result[key] = deepCopy(overlayValue)
			continue
		}

		baseMap, baseIsMap := baseValue.(map[string]any)
		overlayMap, overlayIsMap := overlayValue.(map[string]any)
		if baseIsMap && overlayIsMap {
			result[key] = DeepMerge(baseMap, overlayMap)
			continue
		}

		result[key] = deepCopy(overlayValue)
	}

	return result
}

// MergeDocuments folds documents into a single tree in order.
func MergeDocuments(docs []Document) map[string]any {
	merged := make(map[string]any)
	for _, doc := range docs {
		merged = DeepMerge(merged, doc.Tree)
	}
	return merged
}

// copyMap creates a deep copy of a map.
func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return make(map[string]any)
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = deepCopy(v)
	}
	return result
}

// deepCopy creates a deep copy of any value.
func deepCopy(value any) any {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case map[string]any:
		return copyMap(v)
	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = deepCopy(val)
		}
		return result
	default:
		// Scalars are immutable
		return value
	}
}
