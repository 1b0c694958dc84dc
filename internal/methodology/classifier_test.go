package methodology

import (
	"strings"
	"testing"
)

func TestDetectQuestionType(t *testing.T) {
	cases := []struct {
		name     string
		question string
		want     QuestionType
	}{
		{
			name:     "causal_effect",
			question: "Does caffeine affect reaction time in teenagers?",
			want:     QuestionCausal,
		},
		{
			name:     "causal_improve",
			question: "Will spaced repetition improve vocabulary retention?",
			want:     QuestionCausal,
		},
		{
			name:     "correlational_relationship",
			question: "Is there a relationship between exercise and mood?",
			want:     QuestionCorrelational,
		},
		{
			name:     "correlational_association",
			question: "Are sleep hours associated with exam scores?",
			want:     QuestionCorrelational,
		},
		{
			name:     "descriptive",
			question: "What is the prevalence of smartphone use during lectures?",
			want:     QuestionDescriptive,
		},
		{
			name:     "comparative",
			question: "Is there a difference between online and in-person tutoring outcomes?",
			want:     QuestionComparative,
		},
		{
			name:     "mixed_causal_and_comparative",
			question: "Does tutoring improve grades more than self-study?",
			want:     QuestionMixed,
		},
		{
			name:     "unknown",
			question: "photosynthesis",
			want:     QuestionUnknown,
		},
		{
			name:     "empty",
			question: "",
			want:     QuestionUnknown,
		},
		{
			name:     "whitespace_only",
			question: "   ",
			want:     QuestionUnknown,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectQuestionType(tc.question)
			if got != tc.want {
				t.Fatalf("DetectQuestionType(%q)=%q, want %q", tc.question, got, tc.want)
			}
		})
	}
}

func TestDetectQuestionTypeCaseInsensitive(t *testing.T) {
	questions := []string{
		"Does caffeine affect reaction time?",
		"Is there a relationship between exercise and mood?",
		"What is the prevalence of smartphone use?",
	}
	for _, q := range questions {
		base := DetectQuestionType(q)
		if got := DetectQuestionType(strings.ToUpper(q)); got != base {
			t.Fatalf("DetectQuestionType(upper %q)=%q, want %q", q, got, base)
		}
		if got := DetectQuestionType(strings.ToLower(q)); got != base {
			t.Fatalf("DetectQuestionType(lower %q)=%q, want %q", q, got, base)
		}
	}
}

func TestDetectQuestionTypeCausalWithoutComparative(t *testing.T) {
	// Any question with a causal keyword and no comparative keyword must be
	// tagged causal.
	questions := []string{
		"Does fertilizer concentration affect plant growth?",
		"Will a reminder app increase homework completion?",
		"What is the effect of music on concentration?",
	}
	for _, q := range questions {
		if got := DetectQuestionType(q); got != QuestionCausal {
			t.Fatalf("DetectQuestionType(%q)=%q, want causal", q, got)
		}
	}
}
