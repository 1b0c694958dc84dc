package methodology

import (
	"fmt"
	"strings"

	types "github.com/stembot/stembot-backend/internal/domain"
)

// Terms in the participant criteria that mark a vulnerable population and
// therefore require an explicit ethics/consent note.
var vulnerablePopulationTerms = []string{
	"children", "child", "minors", "minor",
	"pregnant", "elderly", "patients",
	"disabled", "disability",
	"prisoners", "refugees",
}

// Terms that count as an ethics/consent acknowledgement anywhere in the
// participant criteria or procedure draft.
var ethicsAcknowledgementTerms = []string{
	"consent", "assent", "ethics", "ethical approval",
	"irb", "review board", "guardian", "parental permission",
}

// CheckMethodology inspects a methodology record for a fixed set of red flags
// and returns a fresh report. Pure validation over the in-memory record; no
// I/O, runs well under a second.
func CheckMethodology(rec *types.MethodologyRecord) IssueReport {
	report := IssueReport{Issues: []Issue{}}
	if rec == nil {
		report.add(SeverityError, "methodology", "no methodology recorded for this project")
		report.Valid = false
		return report
	}

	checkVulnerablePopulation(rec, &report)
	checkSampleSize(rec, &report)
	checkProcedure(rec, &report)
	checkVariables(rec, &report)
	checkRecruitment(rec, &report)

	report.Valid = report.ErrorCount == 0
	return report
}

func checkVulnerablePopulation(rec *types.MethodologyRecord, report *IssueReport) {
	criteria := strings.ToLower(rec.ParticipantCriteria)
	if criteria == "" {
		return
	}
	var matched string
	for _, term := range vulnerablePopulationTerms {
		if strings.Contains(criteria, term) {
			matched = term
			break
		}
	}
	if matched == "" {
		return
	}
	haystack := criteria + " " + strings.ToLower(rec.ProcedureDraft)
	for _, ack := range ethicsAcknowledgementTerms {
		if strings.Contains(haystack, ack) {
			return
		}
	}
	report.add(SeverityError, "participant_criteria",
		fmt.Sprintf("participants include a vulnerable population (%q) but no consent or ethics note was found", matched))
}

func checkSampleSize(rec *types.MethodologyRecord, report *IssueReport) {
	n := rec.EstimatedSampleSize
	if n <= 0 {
		report.add(SeverityWarning, "estimated_sample_size", "no estimated sample size provided")
		return
	}
	if n < AbsoluteMinimumSample {
		report.add(SeverityError, "estimated_sample_size",
			fmt.Sprintf("sample size %d is below the absolute minimum of %d", n, AbsoluteMinimumSample))
		return
	}
	if msg := SampleSizeFeedback(n, rec.MethodType); msg != "" {
		report.add(SeverityWarning, "estimated_sample_size", msg)
	}
}

func checkProcedure(rec *types.MethodologyRecord, report *IssueReport) {
	if strings.TrimSpace(rec.ProcedureDraft) == "" {
		report.add(SeverityError, "procedure_draft", "procedure draft is missing")
	}
}

func checkVariables(rec *types.MethodologyRecord, report *IssueReport) {
	m := strings.ToLower(rec.MethodType)
	if !strings.Contains(m, "experiment") && !strings.Contains(m, "trial") {
		return
	}
	if len(rec.IndependentVariables) == 0 {
		report.add(SeverityWarning, "independent_variables", "experimental designs should name at least one independent variable")
	}
	if len(rec.DependentVariables) == 0 {
		report.add(SeverityWarning, "dependent_variables", "experimental designs should name at least one dependent variable")
	}
}

func checkRecruitment(rec *types.MethodologyRecord, report *IssueReport) {
	if strings.TrimSpace(rec.RecruitmentStrategy) == "" {
		report.add(SeverityWarning, "recruitment_strategy", "no recruitment strategy described")
	}
}
