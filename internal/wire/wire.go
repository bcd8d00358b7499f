// Package wire reconciles the two key-casing conventions used by the
// marketplace backend. Responses are camelized right after decoding and
// request bodies are snaked right before encoding, so the rest of the
// service only ever sees camelCase keys.
package wire

import (
	"strings"
	"unicode"
)

// Irregular pairs are looked up before the mechanical transform. The
// mechanical rule alone does not round-trip multi-word fields.
var camelToSnake = map[string]string{
	"tutorId":           "tutor_id",
	"courseId":          "course_id",
	"whatTheyWillLearn": "what_they_will_learn",
	"imageUrl":          "image_url",
	"dayOfWeek":         "day_of_week",
	"startTime":         "start_time",
	"endTime":           "end_time",
	"studentId":         "student_id",
	"tutoringId":        "tutoring_id",
}

var snakeToCamel = make(map[string]string, len(camelToSnake))

func init() {
	for camel, snake := range camelToSnake {
		snakeToCamel[snake] = camel
	}
}

// ToSnakeCase recursively rewrites every object key to snake_case.
// Non-object, non-array values pass through unchanged.
func ToSnakeCase(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[snakeKey(k)] = ToSnakeCase(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = ToSnakeCase(item)
		}
		return out
	default:
		return v
	}
}

// ToCamelCase recursively rewrites every object key to camelCase.
// Non-object, non-array values pass through unchanged.
func ToCamelCase(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[camelKey(k)] = ToCamelCase(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = ToCamelCase(item)
		}
		return out
	default:
		return v
	}
}

func snakeKey(k string) string {
	if snake, ok := camelToSnake[k]; ok {
		return snake
	}

	var b strings.Builder
	b.Grow(len(k) + 4)
	for _, r := range k {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

func camelKey(k string) string {
	if camel, ok := snakeToCamel[k]; ok {
		return camel
	}

	var b strings.Builder
	b.Grow(len(k))
	upperNext := false
	for _, r := range k {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
