// Package messages holds the alert and notification templates. Observers match on these
// strings, so they only depend on the commitment's title and organization.
package messages

import "fmt"

// OverdueAlert is stored when the scanner moves a commitment to overdue.
func OverdueAlert(title string) string {
	return fmt.Sprintf("SYSTEM: Commitment '%s' is now OVERDUE.", title)
}

// OverdueNotification is pushed to the owner when the scanner moves a commitment to overdue.
func OverdueNotification(title string) string {
	return fmt.Sprintf("CRITICAL: '%s' is now overdue!", title)
}

// CreatedAlert is stored when an employee records a new follow-up.
func CreatedAlert(organization, title string) string {
	return fmt.Sprintf("New follow-up created for %s: %s", organization, title)
}

// MarkedOverdueAlert is stored when a follow-up is manually moved to overdue.
func MarkedOverdueAlert(title string) string {
	return fmt.Sprintf("CRITICAL: Follow-up '%s' is now marked as OVERDUE.", title)
}
