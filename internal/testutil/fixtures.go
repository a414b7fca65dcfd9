package testutil

import (
	"strings"
	"time"

	"checklist-service/internal/dto"

	"github.com/Pallinder/go-randomdata"
)

// StepClock returns a clock that advances by step on every call
func StepClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}

// RandomSupplierCode returns an upper-case supplier code such as SUP4F2K9Q
func RandomSupplierCode() string {
	return "SUP" + strings.ToUpper(randomdata.Alphanumeric(6))
}

// NewProjectRequest returns a valid project payload with random values
func NewProjectRequest() dto.CreateProjectRequest {
	return dto.CreateProjectRequest{
		Name:   randomdata.SillyName() + " " + randomdata.Noun(),
		Region: randomdata.City(),
	}
}

// NewChecklistRequest returns a valid checklist payload for the supplier
func NewChecklistRequest(supplierCode string) dto.CreateChecklistRequest {
	return dto.CreateChecklistRequest{
		SupplierCode: supplierCode,
		DocumentName: randomdata.Adjective() + " " + randomdata.Noun() + " " + randomdata.Alphanumeric(4),
		IsChecked:    randomdata.Boolean(),
	}
}
