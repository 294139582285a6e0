package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Diabetes status labels stored on a visit.
const (
	NoDiabetes          = "No Diabetes"
	Type1Diabetes       = "Type 1 Diabetes"
	Type2Diabetes       = "Type 2 Diabetes"
	GestationalDiabetes = "Gestational Diabetes"
	Prediabetes         = "Prediabetes"
)

var validGenders = map[string]bool{
	GenderMale:   true,
	GenderFemale: true,
	GenderOther:  true,
}

var validDiabetes = map[string]bool{
	NoDiabetes:          true,
	Type1Diabetes:       true,
	Type2Diabetes:       true,
	GestationalDiabetes: true,
	Prediabetes:         true,
}

// Visit is one clinic encounter record. A logical patient has no collection of
// its own: it is the set of visits sharing the same (name, phone) pair, and the
// unique index on (name, phone, visitDate) keeps exact duplicates out.
type Visit struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Age          int                `json:"age" bson:"age"`
	Gender       string             `json:"gender" bson:"gender"`
	Phone        string             `json:"phone" bson:"phone"`
	Email        string             `json:"email" bson:"email"`
	Condition    string             `json:"condition" bson:"condition"`
	Treatment    string             `json:"treatment" bson:"treatment"`
	VisitDate    time.Time          `json:"visitDate" bson:"visitDate"`
	FollowUpDate *time.Time         `json:"followUpDate,omitempty" bson:"followUpDate,omitempty"`
	Diabetes     string             `json:"diabetes" bson:"diabetes"`
	AmountPaid   float64            `json:"amountPaid" bson:"amountPaid"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PatientSummary is the read-side projection for one unique patient: the
// latest visit for the identity plus the number of visits behind it.
type PatientSummary struct {
	Visit       `bson:",inline"`
	TotalVisits int `json:"totalVisits" bson:"totalVisits"`
}

// Analytics aggregates visits whose visitDate falls inside a date range.
// TotalUniquePatients counts distinct phone numbers only, not (name, phone)
// pairs, matching what the frontend has always been shown.
type Analytics struct {
	TotalVisits         int     `json:"totalVisits"`
	TotalFees           float64 `json:"totalFees"`
	TotalUniquePatients int     `json:"totalUniquePatients"`
}

// ValidateFields checks the bounded fields before a visit is written. Each
// field is optional; a zero value passes, a present value must be in range.
func (v *Visit) ValidateFields() error {
	if v.Age < 0 || v.Age > 150 {
		return fmt.Errorf("%w: age must be between 0 and 150", ErrInvalidField)
	}
	if v.Gender != "" && !validGenders[v.Gender] {
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidField, v.Gender)
	}
	if v.Diabetes != "" && !validDiabetes[v.Diabetes] {
		return fmt.Errorf("%w: unknown diabetes status %q", ErrInvalidField, v.Diabetes)
	}
	if v.AmountPaid < 0 {
		return fmt.Errorf("%w: amountPaid cannot be negative", ErrInvalidField)
	}
	return nil
}

// ParseDate accepts either an RFC3339 timestamp or a plain calendar date.
// Plain dates are interpreted in server-local time.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// DayBounds returns the first and last instant of t's calendar day in
// server-local time, 00:00:00.000 through 23:59:59.999. Inputs carrying
// another offset are converted first so every caller sees the same window.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.In(time.Local).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.Local)
	return start, end
}

// NormalizeVisitPatch prepares a raw JSON body for a $set update: immutable
// and derived fields are dropped, date fields sent as strings are converted
// so they are stored as BSON dates rather than text, and the bounded fields
// are held to the same limits Insert applies.
func NormalizeVisitPatch(patch map[string]interface{}) (map[string]interface{}, error) {
	for _, k := range []string{"_id", "id", "createdAt", "updatedAt", "totalVisits"} {
		delete(patch, k)
	}
	for _, k := range []string{"visitDate", "followUpDate"} {
		s, ok := patch[k].(string)
		if !ok {
			continue
		}
		t, err := ParseDate(s)
		if err != nil {
			return nil, ErrInvalidRange
		}
		patch[k] = t
	}
	if raw, ok := patch["age"]; ok {
		age, numeric := patchNumber(raw)
		if !numeric || age < 0 || age > 150 {
			return nil, fmt.Errorf("%w: age must be between 0 and 150", ErrInvalidField)
		}
	}
	if raw, ok := patch["amountPaid"]; ok {
		paid, numeric := patchNumber(raw)
		if !numeric || paid < 0 {
			return nil, fmt.Errorf("%w: amountPaid cannot be negative", ErrInvalidField)
		}
	}
	if raw, ok := patch["gender"]; ok {
		s, isString := raw.(string)
		if !isString || (s != "" && !validGenders[s]) {
			return nil, fmt.Errorf("%w: unknown gender %v", ErrInvalidField, raw)
		}
	}
	if raw, ok := patch["diabetes"]; ok {
		s, isString := raw.(string)
		if !isString || (s != "" && !validDiabetes[s]) {
			return nil, fmt.Errorf("%w: unknown diabetes status %v", ErrInvalidField, raw)
		}
	}
	return patch, nil
}

// JSON decoding hands numbers over as float64; direct callers may pass ints.
func patchNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
