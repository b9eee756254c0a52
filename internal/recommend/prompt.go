package recommend

import (
	"fmt"
	"strings"

	"bcasprint-backend/internal/models"
)

// buildRecommendationPrompt asks for at most 4 recommendations as a strict
// JSON array keyed name/reason/link/priority for the predicted band.
func buildRecommendationPrompt(salaryMin, salaryMax float64, role, district string) string {
	var sb strings.Builder

	sb.WriteString("You are a practical career advisor for BCA graduates in India. ")
	sb.WriteString("Your goal is to provide specific, job-role-based advice. ")
	sb.WriteString(fmt.Sprintf(
		"The candidate's predicted salary range is INR %d to %d for the role '%s'. ",
		int(salaryMin), int(salaryMax), role,
	))
	if district != "" {
		sb.WriteString(fmt.Sprintf("Their target location is %s, Maharashtra. ", district))
	}
	sb.WriteString(
		"Provide a maximum of 4 concise, actionable recommendations (courses, certifications, or skills) " +
			"that are MOST RELEVANT to the '" + role + "' position. " +
			"For each recommendation, find the BEST FREE website link (URL) to start learning or obtaining the certification/course. " +
			"Format the output STRICTLY as a JSON array of objects. Each object must have these keys: " +
			"'name' (string, the recommendation title), " +
			"'reason' (string, brief justification, max 15 words), " +
			"'link' (string, the exact free course URL), " +
			"'priority' (string, High or Medium).",
	)
	return sb.String()
}

// buildPseudoPredictPrompt asks for a bare numeric salary estimate for a
// free-text role. The response is expected to contain only digits, which the
// sanitizer then enforces.
func buildPseudoPredictPrompt(profile models.Profile, customRole string) string {
	district := profile.District
	if district == "" {
		district = "Maharashtra"
	}
	tier := profile.CollegeTier
	if tier == "" {
		tier = "Tier-3"
	}
	cgpa := profile.CGPA
	if cgpa == "" {
		cgpa = "7.0-7.9"
	}
	internship := profile.InternshipExp
	if internship == "" {
		internship = "None"
	}
	company := profile.CompanyType
	if company == "" {
		company = "Service-Based MNC"
	}

	return fmt.Sprintf(
		"You are an expert salary benchmarking AI. The candidate has the following profile details:\n"+
			"- Target Role: %s\n"+
			"- Location: %s\n"+
			"- Academic Level: %s college, CGPA %s\n"+
			"- Internship Experience: %s\n"+
			"- Targeting Company Type: %s\n\n"+
			"Estimate a realistic CENTER ANNUAL SALARY (in INR) for a fresh BCA graduate with this profile "+
			"in India applying for the %s role. "+
			"Output ONLY the raw numerical value of the estimated salary (e.g., 650000) with no text, commas, or currency symbols.",
		customRole, district, tier, cgpa, internship, company, customRole,
	)
}
