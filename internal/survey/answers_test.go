package survey

import (
	"testing"

	"dccd/internal/api"
)

var questions = []api.Question{
	{ID: 1, Statement: "one"},
	{ID: 2, Statement: "two"},
	{ID: 3, Statement: "three"},
}

func TestAnswersWith(t *testing.T) {
	var a Answers
	a = a.With(2, Agree)
	b := a.With(1, StronglyAgree)

	if len(a) != 1 {
		t.Fatalf("With must not mutate the receiver, got %v", a)
	}
	if b.Get(1) != StronglyAgree || b.Get(2) != Agree || b.Get(3) != Unanswered {
		t.Fatalf("unexpected answers %v", b)
	}

	c := b.With(2, Unanswered)
	if _, ok := c[2]; ok {
		t.Fatalf("setting unanswered should remove the entry")
	}
}

func TestCompletion(t *testing.T) {
	a := Answers{}.With(1, Disagree).With(3, Agree)
	if got := a.AnsweredCount(questions); got != 2 {
		t.Fatalf("AnsweredCount = %d", got)
	}
	if got := a.CompletionPercent(questions); got != 67 {
		t.Fatalf("CompletionPercent = %d, want 67", got)
	}
	if a.Complete(questions) {
		t.Fatalf("survey should not be complete")
	}
	if _, err := a.Responses(questions); err == nil {
		t.Fatalf("expected error for unanswered question")
	}

	a = a.With(2, StronglyDisagree)
	if !a.Complete(questions) {
		t.Fatalf("survey should be complete")
	}
	got, err := a.Responses(questions)
	if err != nil {
		t.Fatalf("Responses: %v", err)
	}
	want := []api.ResponseOption{api.Disagree, api.StronglyDisagree, api.Agree}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Responses()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if (Answers{}).CompletionPercent(nil) != 0 || (Answers{}).Complete(nil) {
		t.Fatalf("empty question list must report 0%% and incomplete")
	}
}

func TestIDsSorted(t *testing.T) {
	a := Answers{5: Agree, 1: Agree, 3: Agree}
	ids := a.IDs()
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 3 || ids[2] != 5 {
		t.Fatalf("unexpected ids %v", ids)
	}
}
