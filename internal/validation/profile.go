package validation

import (
	"regexp"

	"devconnect/internal/models"
)

// urlRegex accepts http(s) URLs with an optional scheme, the permissive rule
// the original profile form used for social links.
var urlRegex = regexp.MustCompile(`^(https?://)?[a-zA-Z0-9\-]+(\.[a-zA-Z0-9\-]+)+(/[^\s]*)?$`)

// ProfileInput is the request body for creating or updating a profile.
// Skills is a comma-separated string and is split server-side.
type ProfileInput struct {
	Handle         string `json:"handle"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// ValidateProfile checks profile input: handle and status and skills are
// required, URL-shaped fields must parse when present.
func ValidateProfile(in ProfileInput) (models.FieldErrors, bool) {
	errs := models.FieldErrors{}

	if len(in.Handle) < 2 || len(in.Handle) > 40 {
		errs["handle"] = "Handle needs to be between 2 and 40 characters"
	}
	if in.Handle == "" {
		errs["handle"] = "Profile handle is required"
	}

	if in.Status == "" {
		errs["status"] = "Status field is required"
	}
	if in.Skills == "" {
		errs["skills"] = "Skills field is required"
	}

	urlFields := map[string]string{
		"website":   in.Website,
		"youtube":   in.Youtube,
		"twitter":   in.Twitter,
		"facebook":  in.Facebook,
		"linkedin":  in.Linkedin,
		"instagram": in.Instagram,
	}
	for field, value := range urlFields {
		if value != "" && !urlRegex.MatchString(value) {
			errs[field] = "Make sure this is a valid http(s) address"
		}
	}

	return errs, len(errs) == 0
}

// ExperienceInput is the request body for adding a work history entry.
type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// ValidateExperience checks experience input.
func ValidateExperience(in ExperienceInput) (models.FieldErrors, bool) {
	errs := models.FieldErrors{}

	if in.Title == "" {
		errs["title"] = "Job title field is required"
	}
	if in.Company == "" {
		errs["company"] = "Company field is required"
	}
	if in.From == "" {
		errs["from"] = "From date field is required"
	}

	return errs, len(errs) == 0
}

// EducationInput is the request body for adding a schooling entry.
type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// ValidateEducation checks education input.
func ValidateEducation(in EducationInput) (models.FieldErrors, bool) {
	errs := models.FieldErrors{}

	if in.School == "" {
		errs["school"] = "School field is required"
	}
	if in.Degree == "" {
		errs["degree"] = "Degree field is required"
	}
	if in.FieldOfStudy == "" {
		errs["fieldofstudy"] = "Field of study field is required"
	}
	if in.From == "" {
		errs["from"] = "From date field is required"
	}

	return errs, len(errs) == 0
}
