package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"spiritfolio/internal/models"
)

// Validation limits for project form fields.
const (
	maxTitleLen       = 200
	maxDescriptionLen = 1_000
	maxRoleLen        = 200
	maxResultLen      = 200
	maxURLLen         = 2_048
)

// validateProject checks a project's form input and returns the first
// error found, or "" when the input is acceptable.
func validateProject(p *models.Project) string {
	if strings.TrimSpace(p.Title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(p.Title) > maxTitleLen {
		return "Title is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(p.Description) > maxDescriptionLen {
		return "Description is too long (max 1,000 characters)."
	}
	if utf8.RuneCountInString(p.Role) > maxRoleLen {
		return "Role is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(p.Result) > maxResultLen {
		return "Result is too long (max 200 characters)."
	}
	if len(p.ImageURL) > maxURLLen {
		return "Image URL is too long."
	}
	if len(p.Link) > maxURLLen {
		return "Link is too long."
	}
	if !p.RatingValid() {
		return fmt.Sprintf("Rating must be between %d and %d.", models.RatingMin, models.RatingMax)
	}
	return ""
}
