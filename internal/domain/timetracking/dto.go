package timetracking

import (
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/validator"
)

// Absence status codes used by the upstream.
const (
	AbsenceStatusEnquired          = 0
	AbsenceStatusApproved          = 1
	AbsenceStatusDeclined          = 2
	AbsenceStatusApprovalCancelled = 3
	AbsenceStatusRequestCancelled  = 4
)

// AbsenceTypeVacation is the regular holiday absence type.
const AbsenceTypeVacation = 1

// ========================================
// TIME ENTRIES
// ========================================

type EntriesRequest struct {
	TimeSince string `json:"time_since" validate:"required,isodatetime"`
	TimeUntil string `json:"time_until" validate:"required,isodatetime"`
}

func (r *EntriesRequest) Validate() error {
	return validator.Struct(r)
}

type UserEntriesRequest struct {
	UserID    int    `json:"user_id" validate:"gt=0"`
	TimeSince string `json:"time_since" validate:"required,isodatetime"`
	TimeUntil string `json:"time_until" validate:"required,isodatetime"`
}

func (r *UserEntriesRequest) Validate() error {
	return validator.Struct(r)
}

type CreateEntryRequest struct {
	CustomersID int     `json:"customers_id" validate:"gt=0"`
	ServicesID  int     `json:"services_id" validate:"gt=0"`
	Billable    int     `json:"billable" validate:"gte=0,lte=2"`
	TimeSince   string  `json:"time_since" validate:"required,isodatetime"`
	TimeUntil   string  `json:"time_until" validate:"required,isodatetime"`
	ProjectsID  *int    `json:"projects_id,omitempty" validate:"omitempty,gt=0"`
	Text        *string `json:"text,omitempty"`
}

func (r *CreateEntryRequest) Validate() error {
	return validator.Struct(r)
}

type EditEntryRequest struct {
	EntryID int            `json:"entry_id" validate:"gt=0"`
	Data    map[string]any `json:"data" validate:"required,min=1"`
}

func (r *EditEntryRequest) Validate() error {
	return validator.Struct(r)
}

// ========================================
// CLOCK
// ========================================

type StartClockRequest struct {
	CustomersID int     `json:"customers_id" validate:"gt=0"`
	ServicesID  int     `json:"services_id" validate:"gt=0"`
	Billable    *int    `json:"billable,omitempty" validate:"omitempty,gte=0,lte=2"`
	ProjectsID  *int    `json:"projects_id,omitempty" validate:"omitempty,gt=0"`
	Text        *string `json:"text,omitempty"`
}

func (r *StartClockRequest) Validate() error {
	return validator.Struct(r)
}

// ========================================
// ABSENCES
// ========================================

type VacationRequest struct {
	DateSince string `json:"date_since" validate:"required,isodate"`
	DateUntil string `json:"date_until" validate:"required,isodate"`
}

func (r *VacationRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	return validateDateRange(r.DateSince, r.DateUntil)
}

type AdjustVacationRequest struct {
	AbsenceID    int    `json:"absence_id" validate:"gt=0"`
	NewDateSince string `json:"new_date_since" validate:"required,isodate"`
	NewDateUntil string `json:"new_date_until" validate:"required,isodate"`
}

func (r *AdjustVacationRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	return validateDateRange(r.NewDateSince, r.NewDateUntil)
}

type TeamVacationRequest struct {
	UserID      int    `json:"user_id" validate:"gt=0"`
	DateSince   string `json:"date_since" validate:"required,isodate"`
	DateUntil   string `json:"date_until" validate:"required,isodate"`
	AbsenceType int    `json:"absence_type" validate:"gt=0"`
	AutoApprove bool   `json:"auto_approve"`
}

func (r *TeamVacationRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	return validateDateRange(r.DateSince, r.DateUntil)
}

type DeleteVacationRequest struct {
	AbsenceID  int  `json:"absence_id" validate:"gt=0"`
	AutoCancel bool `json:"auto_cancel"`
}

func (r *DeleteVacationRequest) Validate() error {
	return validator.Struct(r)
}

type YearRequest struct {
	Year int `json:"year" validate:"gt=0"`
}

func (r *YearRequest) Validate() error {
	return validator.Struct(r)
}

// IDRequest addresses a single entry or absence.
type IDRequest struct {
	ID int `json:"id" validate:"gt=0"`
}

func (r *IDRequest) Validate() error {
	return validator.Struct(r)
}

func validateDateRange(since, until string) error {
	from, err := validator.ParseDate(since)
	if err != nil {
		return err
	}
	to, err := validator.ParseDate(until)
	if err != nil {
		return err
	}
	if to.Before(from) {
		return validator.ValidationErrors{{
			Field:   "date_until",
			Message: "must not be before the start date",
		}}
	}
	return nil
}
