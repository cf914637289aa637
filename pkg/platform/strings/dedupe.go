// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// SplitList splits v on sep, trims each element and drops empty ones and
// duplicates. Order is preserved. An input with no elements yields nil.
//
//	SplitList(" kafka-1:9092, kafka-2:9092,,kafka-1:9092", ",")
//	// Returns: []string{"kafka-1:9092", "kafka-2:9092"}
func SplitList(v, sep string) []string {
	var result []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(v, sep) {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
