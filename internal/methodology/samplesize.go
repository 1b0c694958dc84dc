package methodology

import (
	"fmt"
	"strings"
)

// Sample-size floors. AbsoluteMinimumSample is the hard floor below which any
// quantitative design is flagged as an error; the per-type floors produce
// warnings.
const (
	AbsoluteMinimumSample = 10
	ExperimentMinimum     = 30
	SurveyMinimum         = 50
)

// SampleSizeGuidance returns a rule-of-thumb recommendation for the given
// method. Sequential substring checks, first match wins; falls through to a
// generic recommendation.
func SampleSizeGuidance(methodType, methodName string) Guidance {
	m := strings.ToLower(methodType + " " + methodName)

	switch {
	case strings.Contains(m, "experiment") || strings.Contains(m, "trial"):
		return Guidance{
			Guideline:   "At least 30 participants per condition",
			Example:     "A two-group experiment needs roughly 60 participants in total.",
			Explanation: "Group comparisons need about 30 per group for the usual statistical tests to have reasonable power.",
		}
	case strings.Contains(m, "survey") || strings.Contains(m, "questionnaire"):
		return Guidance{
			Guideline:   "At least 50 responses, more if you analyze subgroups",
			Example:     "A school-wide survey comparing year groups should target 50+ per year group.",
			Explanation: "Surveys need a larger sample to smooth out response noise and non-response bias.",
		}
	case strings.Contains(m, "correlat"):
		return Guidance{
			Guideline:   "At least 30 paired observations",
			Explanation: "Correlation coefficients are unstable below roughly 30 data points.",
		}
	case strings.Contains(m, "comparative") || strings.Contains(m, "cross-sectional"):
		return Guidance{
			Guideline:   "At least 30 per group being compared",
			Explanation: "Each compared group needs enough members for the difference to be interpretable.",
		}
	case strings.Contains(m, "observation"):
		return Guidance{
			Guideline:   "At least 20 observation sessions or subjects",
			Explanation: "Observational work needs repeated sessions before patterns separate from one-off events.",
		}
	case strings.Contains(m, "interview") || strings.Contains(m, "qualitative") || strings.Contains(m, "case study"):
		return Guidance{
			Guideline:   "8-15 participants, continue until saturation",
			Explanation: "Qualitative depth matters more than count; stop when new interviews stop adding themes.",
		}
	}

	return Guidance{
		Guideline:   "Discuss the target sample size with your advisor",
		Explanation: "No standard rule of thumb applies to this design; the right size depends on the analysis you plan.",
	}
}

// SampleSizeFeedback returns a warning when n is below the floor for the
// method type, or the empty string when n is adequate.
func SampleSizeFeedback(n int, methodType string) string {
	floor := sampleFloor(methodType)
	if n >= floor {
		return ""
	}
	if n < AbsoluteMinimumSample {
		return fmt.Sprintf("A sample of %d is too small to support any quantitative conclusion; aim for at least %d.", n, floor)
	}
	return fmt.Sprintf("A sample of %d is below the usual minimum of %d for this kind of study.", n, floor)
}

func sampleFloor(methodType string) int {
	m := strings.ToLower(methodType)
	switch {
	case strings.Contains(m, "experiment") || strings.Contains(m, "trial"):
		return ExperimentMinimum
	case strings.Contains(m, "survey"):
		return SurveyMinimum
	default:
		return AbsoluteMinimumSample
	}
}
