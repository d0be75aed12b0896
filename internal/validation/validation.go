// Package validation implements per-field request validation.
// Every check runs before any persistence side effect; failures are
// collected into an Errors map matching the 422 response body.
package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/avolkov/taskly/internal/models"
)

// EmailPattern is a pragmatic email syntax check: one @, no spaces,
// a dot somewhere in the domain part.
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	// MaxNameLen is the maximum length of a user display name.
	MaxNameLen = 255
	// MaxEmailLen is the maximum length of an email address.
	MaxEmailLen = 255
	// MinPasswordLen is the minimum password length.
	MinPasswordLen = 6
	// MaxTitleLen is the maximum length of a task title.
	MaxTitleLen = 255
	// DateLayout is the accepted calendar date format.
	DateLayout = time.DateOnly
)

// Errors maps a field name to the list of messages for that field.
type Errors map[string][]string

// Add appends a message for the given field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether no field has errors.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// ValidateName checks a user display name: required, at most 255 characters.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLen)
	}
	return nil
}

// ValidateEmail checks email syntax and length.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}
	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("email must be a valid email address")
	}
	return nil
}

// ValidatePassword checks the minimum password length.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	return nil
}

// ValidateTitle checks a task title: required, at most 255 characters.
func ValidateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", MaxTitleLen)
	}
	return nil
}

// ValidateDescription checks that a task description is present.
func ValidateDescription(description string) error {
	if description == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}

// ValidateDate checks that the value is a parseable YYYY-MM-DD date.
func ValidateDate(date string) error {
	if date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("date must be a valid date in YYYY-MM-DD format")
	}
	return nil
}

// ValidatePriority checks membership in the closed priority set.
// Matching is case-sensitive: "Low" is rejected.
func ValidatePriority(priority string) error {
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return nil
	case "":
		return fmt.Errorf("priority is required")
	default:
		return fmt.Errorf("priority must be one of: low, medium, high")
	}
}
