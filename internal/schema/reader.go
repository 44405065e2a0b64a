package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"journal-backend/internal/domain"
)

// Accepted date layouts, tried in order. Browser date and datetime-local
// inputs produce the last three.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// reader pulls typed fields out of an untyped object and records an issue
// for every field that does not fit.
type reader struct {
	raw    map[string]any
	issues []Issue
}

func newReader(raw map[string]any) *reader {
	if raw == nil {
		raw = map[string]any{}
	}
	return &reader{raw: raw}
}

func (r *reader) err() error {
	if len(r.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: r.issues}
}

func (r *reader) add(issue Issue) {
	r.issues = append(r.issues, issue)
}

func (r *reader) required(key, expected string) {
	r.add(Issue{
		Path:     []string{key},
		Code:     CodeInvalidType,
		Message:  "Required",
		Expected: expected,
		Received: "undefined",
	})
}

func (r *reader) wrongType(key, expected string, v any) {
	received := typeName(v)
	r.add(Issue{
		Path:     []string{key},
		Code:     CodeInvalidType,
		Message:  fmt.Sprintf("Expected %s, received %s", expected, received),
		Expected: expected,
		Received: received,
	})
}

// rejectUnknown flags keys outside allowed. Keys in ignored are dropped silently.
func (r *reader) rejectUnknown(allowed, ignored []string) {
	known := make(map[string]struct{}, len(allowed)+len(ignored))
	for _, k := range allowed {
		known[k] = struct{}{}
	}
	var unknown []string
	for k := range r.raw {
		if _, ok := known[k]; ok {
			continue
		}
		if contains(ignored, k) {
			continue
		}
		unknown = append(unknown, k)
	}
	if len(unknown) == 0 {
		return
	}
	sort.Strings(unknown)
	r.add(Issue{
		Path:    []string{},
		Code:    CodeUnrecognizedKeys,
		Message: "Unrecognized key(s) in object: " + strings.Join(quoteAll(unknown), ", "),
		Keys:    unknown,
	})
}

/* ---- converters ---- */

func (r *reader) asString(key string, v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		r.wrongType(key, "string", v)
		return "", false
	}
	return s, true
}

func (r *reader) asBool(key string, v any) (bool, bool) {
	b, ok := v.(bool)
	if !ok {
		r.wrongType(key, "boolean", v)
		return false, false
	}
	return b, true
}

func (r *reader) asInt(key string, v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil && integralInt64(f) {
			return int64(f), true
		}
	case float64:
		if integralInt64(n) {
			return int64(n), true
		}
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	r.wrongType(key, "integer", v)
	return 0, false
}

// integralInt64 reports whether f is a whole number that converts to int64
// without overflow. 2^63 itself is out of range.
func integralInt64(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64
}

// asFloat accepts numbers and numeric-looking strings.
func (r *reader) asFloat(key string, v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch n := v.(type) {
	case json.Number:
		f, err = n.Float64()
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			r.wrongType(key, "number", v)
			return 0, false
		}
		f, err = strconv.ParseFloat(s, 64)
	default:
		r.wrongType(key, "number", v)
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		r.wrongType(key, "number", v)
		return 0, false
	}
	return f, true
}

// asDecimal accepts a decimal string or a JSON number and returns the
// trimmed literal.
func (r *reader) asDecimal(key string, v any) (string, bool) {
	var s string
	switch n := v.(type) {
	case string:
		s = strings.TrimSpace(n)
	case json.Number:
		s = n.String()
	case float64:
		s = strconv.FormatFloat(n, 'f', -1, 64)
	default:
		r.wrongType(key, "string", v)
		return "", false
	}
	if _, err := decimal.NewFromString(s); err != nil || s == "" {
		r.add(Issue{
			Path:     []string{key},
			Code:     CodeInvalidDecimal,
			Message:  "Expected a decimal number",
			Received: fmt.Sprintf("%v", v),
		})
		return "", false
	}
	return s, true
}

// asTime accepts RFC 3339 timestamps, date-only strings and epoch milliseconds.
func (r *reader) asTime(key string, v any) (time.Time, bool) {
	switch n := v.(type) {
	case string:
		s := strings.TrimSpace(n)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
		r.add(Issue{
			Path:     []string{key},
			Code:     CodeInvalidDate,
			Message:  "Invalid date",
			Received: n,
		})
		return time.Time{}, false
	case json.Number:
		ms, err := n.Int64()
		if err == nil {
			return time.UnixMilli(ms).UTC(), true
		}
	case float64:
		return time.UnixMilli(int64(n)).UTC(), true
	case time.Time:
		return n.UTC(), true
	}
	r.wrongType(key, "date", v)
	return time.Time{}, false
}

func asEnum[T ~string](r *reader, key string, v any, options []T) (T, bool) {
	s, ok := v.(string)
	if !ok {
		r.wrongType(key, "string", v)
		return "", false
	}
	for _, o := range options {
		if string(o) == s {
			return o, true
		}
	}
	opts := domain.Strings(options)
	r.add(Issue{
		Path:     []string{key},
		Code:     CodeInvalidEnumValue,
		Message:  fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", strings.Join(quoteAll(opts), " | "), s),
		Received: s,
		Options:  opts,
	})
	return "", false
}

/* ---- create-time accessors ---- */

func (r *reader) requiredString(key string) string {
	v, ok := r.raw[key]
	if !ok {
		r.required(key, "string")
		return ""
	}
	s, _ := r.asString(key, v)
	return s
}

func (r *reader) optionalString(key, def string) string {
	v, ok := r.raw[key]
	if !ok {
		return def
	}
	s, ok := r.asString(key, v)
	if !ok {
		return def
	}
	return s
}

// nullableString treats absent, null and empty as no value.
func (r *reader) nullableString(key string) *string {
	v, ok := r.raw[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := r.asString(key, v)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func (r *reader) optionalBool(key string, def bool) bool {
	v, ok := r.raw[key]
	if !ok || v == nil {
		return def
	}
	b, ok := r.asBool(key, v)
	if !ok {
		return def
	}
	return b
}

func (r *reader) requiredInt(key string) int64 {
	v, ok := r.raw[key]
	if !ok {
		r.required(key, "integer")
		return 0
	}
	n, _ := r.asInt(key, v)
	return n
}

func (r *reader) requiredFloat(key string) float64 {
	v, ok := r.raw[key]
	if !ok {
		r.required(key, "number")
		return 0
	}
	f, _ := r.asFloat(key, v)
	return f
}

func (r *reader) optionalFloat(key string, def float64) float64 {
	v, ok := r.raw[key]
	if !ok {
		return def
	}
	f, ok := r.asFloat(key, v)
	if !ok {
		return def
	}
	return f
}

func (r *reader) requiredDecimal(key string) string {
	v, ok := r.raw[key]
	if !ok {
		r.required(key, "string")
		return ""
	}
	s, _ := r.asDecimal(key, v)
	return s
}

func (r *reader) requiredTime(key string) time.Time {
	v, ok := r.raw[key]
	if !ok {
		r.required(key, "date")
		return time.Time{}
	}
	t, _ := r.asTime(key, v)
	return t
}

func requiredEnum[T ~string](r *reader, key string, options []T) T {
	v, ok := r.raw[key]
	if !ok {
		r.required(key, "string")
		return ""
	}
	e, _ := asEnum(r, key, v, options)
	return e
}

// optionalEnum returns the zero value when the key is absent; a present value
// must still be one of options.
func optionalEnum[T ~string](r *reader, key string, options []T) T {
	v, ok := r.raw[key]
	if !ok {
		return ""
	}
	e, _ := asEnum(r, key, v, options)
	return e
}

/* ---- patch accessors: nil means "not in patch" ---- */

func (r *reader) patchString(key string) *string {
	v, ok := r.raw[key]
	if !ok {
		return nil
	}
	s, ok := r.asString(key, v)
	if !ok {
		return nil
	}
	return &s
}

func (r *reader) patchBool(key string) *bool {
	v, ok := r.raw[key]
	if !ok {
		return nil
	}
	b, ok := r.asBool(key, v)
	if !ok {
		return nil
	}
	return &b
}

func (r *reader) patchInt(key string) *int64 {
	v, ok := r.raw[key]
	if !ok {
		return nil
	}
	n, ok := r.asInt(key, v)
	if !ok {
		return nil
	}
	return &n
}

func (r *reader) patchFloat(key string) *float64 {
	v, ok := r.raw[key]
	if !ok {
		return nil
	}
	f, ok := r.asFloat(key, v)
	if !ok {
		return nil
	}
	return &f
}

func (r *reader) patchDecimal(key string) *string {
	v, ok := r.raw[key]
	if !ok {
		return nil
	}
	s, ok := r.asDecimal(key, v)
	if !ok {
		return nil
	}
	return &s
}

func (r *reader) patchTime(key string) *time.Time {
	v, ok := r.raw[key]
	if !ok {
		return nil
	}
	t, ok := r.asTime(key, v)
	if !ok {
		return nil
	}
	return &t
}

func (r *reader) patchNullableTime(key string) *domain.Null[time.Time] {
	v, ok := r.raw[key]
	if !ok {
		return nil
	}
	if v == nil {
		return domain.NullClear[time.Time]()
	}
	t, ok := r.asTime(key, v)
	if !ok {
		return nil
	}
	return domain.NullOf(t)
}

func patchEnum[T ~string](r *reader, key string, options []T) *T {
	v, ok := r.raw[key]
	if !ok {
		return nil
	}
	e, ok := asEnum(r, key, v, options)
	if !ok {
		return nil
	}
	return &e
}

/* ---- helpers ---- */

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func quoteAll(xs []string) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = "'" + x + "'"
	}
	return out
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
