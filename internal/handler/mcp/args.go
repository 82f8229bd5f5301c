package mcp

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/validator"
)

// args decodes loosely typed tool arguments. Problems are collected so one
// call reports every bad field at once.
type args struct {
	raw  map[string]any
	errs validator.ValidationErrors
}

func newArgs(raw map[string]any) *args {
	if raw == nil {
		raw = map[string]any{}
	}
	return &args{raw: raw}
}

func (a *args) fail(name, message string) {
	a.errs = append(a.errs, validator.ValidationError{Field: name, Message: message})
}

// err returns the collected problems, or nil.
func (a *args) err() error {
	if len(a.errs) == 0 {
		return nil
	}
	return a.errs
}

func (a *args) present(name string) bool {
	v, ok := a.raw[name]
	return ok && v != nil
}

func (a *args) int(name string) int {
	if !a.present(name) {
		a.fail(name, "is required")
		return 0
	}
	return a.toInt(name)
}

func (a *args) intOr(name string, def int) int {
	if !a.present(name) {
		return def
	}
	return a.toInt(name)
}

func (a *args) optionalInt(name string) *int {
	if !a.present(name) {
		return nil
	}
	n := a.toInt(name)
	return &n
}

func (a *args) toInt(name string) int {
	switch v := a.raw[name].(type) {
	case float64:
		if v == math.Trunc(v) {
			return int(v)
		}
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	a.fail(name, "must be an integer")
	return 0
}

func (a *args) floatOr(name string, def float64) float64 {
	if !a.present(name) {
		return def
	}
	switch v := a.raw[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	a.fail(name, "must be a number")
	return 0
}

func (a *args) string(name string) string {
	if !a.present(name) {
		a.fail(name, "is required")
		return ""
	}
	s, ok := a.raw[name].(string)
	if !ok {
		a.fail(name, "must be a string")
	}
	return s
}

func (a *args) optionalString(name string) *string {
	if !a.present(name) {
		return nil
	}
	s, ok := a.raw[name].(string)
	if !ok {
		a.fail(name, "must be a string")
		return nil
	}
	return &s
}

func (a *args) boolOr(name string, def bool) bool {
	if !a.present(name) {
		return def
	}
	switch v := a.raw[name].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	a.fail(name, "must be a boolean")
	return def
}

// object accepts a JSON object or a string holding one.
func (a *args) object(name string) map[string]any {
	if !a.present(name) {
		a.fail(name, "is required")
		return nil
	}
	switch v := a.raw[name].(type) {
	case map[string]any:
		return v
	case string:
		var obj map[string]any
		if err := json.Unmarshal([]byte(v), &obj); err == nil && obj != nil {
			return obj
		}
	}
	a.fail(name, "must be an object")
	return nil
}
