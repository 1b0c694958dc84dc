package methodology

import (
	"strings"
	"testing"
)

func TestSampleSizeGuidance(t *testing.T) {
	cases := []struct {
		name       string
		methodType string
		methodName string
		wantSubstr string
	}{
		{"experiment", "controlled experiment", "", "30"},
		{"trial_by_name", "", "randomized trial", "30"},
		{"survey", "survey", "", "50"},
		{"correlational", "correlational study", "", "30"},
		{"observational", "observational study", "", "20"},
		{"qualitative", "qualitative", "interviews", "saturation"},
		{"fallback", "archival analysis", "", "advisor"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := SampleSizeGuidance(tc.methodType, tc.methodName)
			if g.Guideline == "" || g.Explanation == "" {
				t.Fatalf("SampleSizeGuidance(%q, %q) returned empty guidance: %+v", tc.methodType, tc.methodName, g)
			}
			if !strings.Contains(strings.ToLower(g.Guideline), strings.ToLower(tc.wantSubstr)) {
				t.Fatalf("SampleSizeGuidance(%q, %q).Guideline=%q, want substring %q", tc.methodType, tc.methodName, g.Guideline, tc.wantSubstr)
			}
		})
	}
}

func TestSampleSizeFeedback(t *testing.T) {
	// Experiments warn strictly below 30.
	for n := 10; n < 30; n++ {
		if SampleSizeFeedback(n, "experiment") == "" {
			t.Fatalf("SampleSizeFeedback(%d, experiment) should warn", n)
		}
	}
	for _, n := range []int{30, 31, 100} {
		if msg := SampleSizeFeedback(n, "experiment"); msg != "" {
			t.Fatalf("SampleSizeFeedback(%d, experiment)=%q, want empty", n, msg)
		}
	}

	// Surveys warn strictly below 50.
	if SampleSizeFeedback(49, "survey") == "" {
		t.Fatalf("SampleSizeFeedback(49, survey) should warn")
	}
	if msg := SampleSizeFeedback(50, "survey"); msg != "" {
		t.Fatalf("SampleSizeFeedback(50, survey)=%q, want empty", msg)
	}

	// Everything else uses the absolute minimum.
	if SampleSizeFeedback(9, "case study") == "" {
		t.Fatalf("SampleSizeFeedback(9, case study) should warn")
	}
	if msg := SampleSizeFeedback(10, "case study"); msg != "" {
		t.Fatalf("SampleSizeFeedback(10, case study)=%q, want empty", msg)
	}
}
