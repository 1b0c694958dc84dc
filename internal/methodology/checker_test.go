package methodology

import (
	"testing"

	types "github.com/stembot/stembot-backend/internal/domain"
	"gorm.io/datatypes"
)

func validRecord() *types.MethodologyRecord {
	return &types.MethodologyRecord{
		MethodType:           "controlled experiment",
		MethodName:           "memory intervention study",
		IndependentVariables: datatypes.NewJSONSlice([]string{"study technique"}),
		DependentVariables:   datatypes.NewJSONSlice([]string{"recall score"}),
		ParticipantCriteria:  "university students aged 18-25, informed consent collected",
		EstimatedSampleSize:  60,
		RecruitmentStrategy:  "campus flyers and course credit",
		ProcedureDraft:       "Participants complete a baseline recall test, then...",
	}
}

func findIssue(report IssueReport, field string) *Issue {
	for i := range report.Issues {
		if report.Issues[i].Field == field {
			return &report.Issues[i]
		}
	}
	return nil
}

func TestCheckMethodologyValid(t *testing.T) {
	report := CheckMethodology(validRecord())
	if !report.Valid {
		t.Fatalf("expected valid report, got issues: %+v", report.Issues)
	}
	if report.ErrorCount != 0 {
		t.Fatalf("expected 0 errors, got %d", report.ErrorCount)
	}
}

func TestCheckMethodologyNilRecord(t *testing.T) {
	report := CheckMethodology(nil)
	if report.Valid {
		t.Fatalf("nil record must not be valid")
	}
	if report.ErrorCount != 1 {
		t.Fatalf("expected 1 error, got %d", report.ErrorCount)
	}
}

func TestCheckMethodologyVulnerablePopulation(t *testing.T) {
	rec := validRecord()
	rec.ParticipantCriteria = "primary school children aged 8-10"

	report := CheckMethodology(rec)
	if report.Valid {
		t.Fatalf("vulnerable population without consent note must fail")
	}
	issue := findIssue(report, "participant_criteria")
	if issue == nil || issue.Severity != SeverityError {
		t.Fatalf("expected participant_criteria error, got %+v", report.Issues)
	}

	// Same population with a consent note passes the ethics rule.
	rec.ParticipantCriteria = "primary school children aged 8-10, with parental permission and ethics approval"
	report = CheckMethodology(rec)
	if findIssue(report, "participant_criteria") != nil {
		t.Fatalf("consent note should clear the vulnerable-population flag: %+v", report.Issues)
	}
}

func TestCheckMethodologySampleSize(t *testing.T) {
	rec := validRecord()

	rec.EstimatedSampleSize = 5
	report := CheckMethodology(rec)
	issue := findIssue(report, "estimated_sample_size")
	if issue == nil || issue.Severity != SeverityError {
		t.Fatalf("sample below absolute minimum should be an error, got %+v", report.Issues)
	}

	rec.EstimatedSampleSize = 20 // above absolute minimum, below experiment floor
	report = CheckMethodology(rec)
	issue = findIssue(report, "estimated_sample_size")
	if issue == nil || issue.Severity != SeverityWarning {
		t.Fatalf("sample below type floor should be a warning, got %+v", report.Issues)
	}
	if !report.Valid {
		t.Fatalf("warnings alone must not invalidate the record: %+v", report.Issues)
	}

	rec.EstimatedSampleSize = 0
	report = CheckMethodology(rec)
	issue = findIssue(report, "estimated_sample_size")
	if issue == nil || issue.Severity != SeverityWarning {
		t.Fatalf("missing sample size should be a warning, got %+v", report.Issues)
	}
}

func TestCheckMethodologyMissingProcedure(t *testing.T) {
	rec := validRecord()
	rec.ProcedureDraft = "   "
	report := CheckMethodology(rec)
	issue := findIssue(report, "procedure_draft")
	if issue == nil || issue.Severity != SeverityError {
		t.Fatalf("missing procedure should be an error, got %+v", report.Issues)
	}
	if report.Valid {
		t.Fatalf("missing procedure must invalidate the record")
	}
}

func TestCheckMethodologyExperimentVariables(t *testing.T) {
	rec := validRecord()
	rec.IndependentVariables = nil
	rec.DependentVariables = nil
	report := CheckMethodology(rec)
	if findIssue(report, "independent_variables") == nil {
		t.Fatalf("experiment without IVs should warn: %+v", report.Issues)
	}
	if findIssue(report, "dependent_variables") == nil {
		t.Fatalf("experiment without DVs should warn: %+v", report.Issues)
	}

	// Non-experimental designs skip the variable rule.
	rec.MethodType = "survey"
	rec.EstimatedSampleSize = 80
	report = CheckMethodology(rec)
	if findIssue(report, "independent_variables") != nil {
		t.Fatalf("survey should not require IVs: %+v", report.Issues)
	}
}

func TestRecommend(t *testing.T) {
	r := Recommend("Does caffeine affect reaction time?")
	if r.QuestionType != QuestionCausal {
		t.Fatalf("expected causal, got %q", r.QuestionType)
	}
	if len(r.SuggestedMethods) == 0 {
		t.Fatalf("expected suggested methods")
	}
	if r.SampleSize.Guideline == "" {
		t.Fatalf("expected sample-size guidance for top suggestion")
	}
}
