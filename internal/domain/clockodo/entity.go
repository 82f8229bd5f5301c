package clockodo

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Family is a category of upstream entity with its own API version.
type Family string

const (
	FamilyClock      Family = "clock"
	FamilyTimeEntry  Family = "time_entry"
	FamilyUser       Family = "user"
	FamilyCustomer   Family = "customer"
	FamilyService    Family = "service"
	FamilyProject    Family = "project"
	FamilyAbsence    Family = "absence"
	FamilyUserReport Family = "user_report"
)

// VersionLegacy marks a family served from the version-less endpoint.
const VersionLegacy = ""

type familyInfo struct {
	Version     string
	Resource    string
	PluralKey   string
	SingularKey string
	IDField     string
}

// familyTable is the fixed routing table for every supported family.
var familyTable = map[Family]familyInfo{
	FamilyClock:      {Version: "v2", Resource: "clock", PluralKey: "", SingularKey: "running", IDField: "id"},
	FamilyTimeEntry:  {Version: "v2", Resource: "entries", PluralKey: "entries", SingularKey: "entry", IDField: "id"},
	FamilyUser:       {Version: "v3", Resource: "users", PluralKey: "users", SingularKey: "user", IDField: "id"},
	FamilyCustomer:   {Version: "v3", Resource: "customers", PluralKey: "customers", SingularKey: "customer", IDField: "id"},
	FamilyService:    {Version: "v4", Resource: "services", PluralKey: "services", SingularKey: "service", IDField: "id"},
	FamilyProject:    {Version: "v4", Resource: "projects", PluralKey: "projects", SingularKey: "project", IDField: "id"},
	FamilyAbsence:    {Version: "v4", Resource: "absences", PluralKey: "absences", SingularKey: "absence", IDField: "id"},
	FamilyUserReport: {Version: VersionLegacy, Resource: "userreports", PluralKey: "userreports", SingularKey: "userreport", IDField: "users_id"},
}

// Families returns every supported family in a stable order.
func Families() []Family {
	return []Family{
		FamilyClock,
		FamilyTimeEntry,
		FamilyUser,
		FamilyCustomer,
		FamilyService,
		FamilyProject,
		FamilyAbsence,
		FamilyUserReport,
	}
}

func (f Family) info() familyInfo {
	return familyTable[f]
}

// Valid reports whether f is a known family.
func (f Family) Valid() bool {
	_, ok := familyTable[f]
	return ok
}

// Version returns the API version segment, or VersionLegacy.
func (f Family) Version() string { return f.info().Version }

// Resource returns the upstream resource name, e.g. "projects".
func (f Family) Resource() string { return f.info().Resource }

// PluralKey is the canonical collection key. Empty for record-only families.
func (f Family) PluralKey() string { return f.info().PluralKey }

// SingularKey is the canonical key of a single record in mutation responses.
func (f Family) SingularKey() string { return f.info().SingularKey }

// IDField names the field that identifies a record within the family.
func (f Family) IDField() string { return f.info().IDField }

// IsCollection reports whether fetching the family yields a collection.
func (f Family) IsCollection() bool { return f.info().PluralKey != "" }

// Path is the family path relative to the normalized base URL.
func (f Family) Path() string {
	s := f.info()
	if s.Version == VersionLegacy {
		return s.Resource
	}
	return s.Version + "/" + s.Resource
}

// RecordPath addresses a single record of the family.
func (f Family) RecordPath(id int) string {
	return f.Path() + "/" + strconv.Itoa(id)
}

// Params are query parameters passed through to the upstream verbatim.
type Params map[string]string

// Record is a single upstream entity, field name to JSON value.
type Record map[string]any

// Envelope is a decoded top-level response body after normalization.
type Envelope map[string]any

// Records extracts the family's collection from the envelope. Every element
// must be an object carrying the family's ID field; a single bad element fails
// the whole batch.
func (e Envelope) Records(f Family) ([]Record, error) {
	if !f.IsCollection() {
		return nil, &UpstreamFormatError{Family: f, Reason: "family does not return a collection"}
	}
	raw, ok := e[f.PluralKey()]
	if !ok {
		return nil, &UpstreamFormatError{Family: f, Reason: fmt.Sprintf("missing %q key", f.PluralKey())}
	}
	if raw == nil {
		return []Record{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, &UpstreamFormatError{Family: f, Reason: fmt.Sprintf("%q is not a list", f.PluralKey())}
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &UpstreamFormatError{Family: f, Reason: fmt.Sprintf("element %d is not an object", i)}
		}
		rec := Record(obj)
		if _, ok := rec.Int(f.IDField()); !ok {
			return nil, &UpstreamFormatError{Family: f, Reason: fmt.Sprintf("element %d has no %q", i, f.IDField())}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Record returns the object stored under key, if any.
func (e Envelope) Record(key string) (Record, bool) {
	obj, ok := e[key].(map[string]any)
	if !ok {
		return nil, false
	}
	return Record(obj), true
}

// Int reads an integral field. JSON numbers and numeric strings are accepted.
func (r Record) Int(key string) (int, bool) {
	switch v := r[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	}
	return 0, false
}

// Float reads a numeric field, treating a missing or non-numeric value as 0.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// String reads a string field, returning "" when absent.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Map reads a nested object field.
func (r Record) Map(key string) Record {
	obj, _ := r[key].(map[string]any)
	return Record(obj)
}
