package validator

import (
	"errors"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-01-15", "2025-12-31"}
	invalid := []string{"2024-13-01", "15-01-2024", "2024/01/15", ""}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestNormalizeDateTime(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2025-01-01 09:00:00", "2025-01-01T09:00:00Z"},
		{"2025-01-01T09:00:00", "2025-01-01T09:00:00Z"},
		{"2025-01-01T09:00:00Z", "2025-01-01T09:00:00Z"},
		{"2025-01-01T09:00:00+01:00", "2025-01-01T09:00:00+01:00"},
		{"2025-01-01T09:00:00-05:00", "2025-01-01T09:00:00-05:00"},
		{"2025-01-01T09:00", "2025-01-01T09:00Z"},
	}
	for _, c := range cases {
		got, err := NormalizeDateTime(c.input)
		if err != nil {
			t.Errorf("NormalizeDateTime(%q) returned error %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("NormalizeDateTime(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestNormalizeDateTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "yesterday", "2025-13-01 09:00:00", "01/01/2025 09:00"} {
		if _, err := NormalizeDateTime(input); err == nil {
			t.Errorf("NormalizeDateTime(%q) expected error", input)
		}
	}
}

type sampleRequest struct {
	Year      int    `json:"year" validate:"gt=0"`
	DateSince string `json:"date_since" validate:"required,isodate"`
	TimeUntil string `json:"time_until" validate:"required,isodatetime"`
}

func TestStruct(t *testing.T) {
	ok := sampleRequest{Year: 2024, DateSince: "2024-01-01", TimeUntil: "2024-01-01 10:00:00"}
	if err := Struct(ok); err != nil {
		t.Fatalf("Struct(valid) = %v, want nil", err)
	}

	bad := sampleRequest{Year: 0, DateSince: "01.01.2024", TimeUntil: ""}
	err := Struct(bad)
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Struct(invalid) = %T, want ValidationErrors", err)
	}
	fields := errs.ToMap()
	if fields["year"] != "must be greater than 0" {
		t.Errorf("year message = %q", fields["year"])
	}
	if fields["date_since"] != "must be a date in YYYY-MM-DD format" {
		t.Errorf("date_since message = %q", fields["date_since"])
	}
	if fields["time_until"] != "is required" {
		t.Errorf("time_until message = %q", fields["time_until"])
	}
}
