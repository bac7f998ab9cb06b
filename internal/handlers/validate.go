package handlers

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Validation limits for form fields.
const (
	maxTitleLen   = 300
	maxSlugLen    = 300
	maxSummaryLen = 1_000
	maxContentLen = 100_000
	maxNameLen    = 200
	maxMessageLen = 10_000
	maxURLLen     = 2_000
)

// dateLayout is the wire format of <input type="date"> values.
const dateLayout = "2006-01-02"

// validatePost checks post form inputs and returns the first error found.
func validatePost(title, slug, content, publishedAt string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if strings.TrimSpace(slug) == "" {
		return "Slug is required."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	if _, err := time.Parse(dateLayout, publishedAt); err != nil {
		return "Published date must be a valid date (YYYY-MM-DD)."
	}
	return ""
}

// validateExperience checks work experience form inputs.
func validateExperience(companyName, position, startDate, endDate string, isCurrent bool) string {
	if strings.TrimSpace(companyName) == "" {
		return "Company name is required."
	}
	if utf8.RuneCountInString(companyName) > maxNameLen {
		return "Company name is too long (max 200 characters)."
	}
	if strings.TrimSpace(position) == "" {
		return "Position is required."
	}
	if utf8.RuneCountInString(position) > maxNameLen {
		return "Position is too long (max 200 characters)."
	}
	if _, err := time.Parse(dateLayout, startDate); err != nil {
		return "Start date must be a valid date (YYYY-MM-DD)."
	}
	if endDate != "" {
		if _, err := time.Parse(dateLayout, endDate); err != nil {
			return "End date must be a valid date (YYYY-MM-DD)."
		}
	}
	if isCurrent && endDate != "" {
		return "A current position cannot have an end date."
	}
	return ""
}

// validateContactForm checks contact form inputs before the relay call.
func validateContactForm(name, email, message string) string {
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if email == "" {
		return "Email is required."
	}
	if !strings.Contains(email, "@") {
		return "Email does not look valid."
	}
	if message == "" {
		return "Message is required."
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return "Message is too long (max 10,000 characters)."
	}
	return ""
}

// optionalURL trims and bounds an optional URL field, returning nil for
// an empty value.
func optionalURL(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" || utf8.RuneCountInString(v) > maxURLLen {
		return nil
	}
	return &v
}

// optionalString returns nil for an empty trimmed value.
func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
