package question

import "testing"

// TestCheckTF verifies index 0 maps to true and index 1 to false.
func TestCheckTF(t *testing.T) {
	q := Question{ID: 1, Category: CategoryTF, Thematic: "A", Prompt: "Q", Answer: BoolAnswer(false)}
	if q.Check(0) {
		t.Fatal("selecting True should be incorrect")
	}
	if !q.Check(1) {
		t.Fatal("selecting False should be correct")
	}
	if q.CorrectText() != "False" {
		t.Fatalf("expected correct text False, got %q", q.CorrectText())
	}
}

// TestCheckQCM verifies matching is case-insensitive on the stored answer.
func TestCheckQCM(t *testing.T) {
	q := Question{
		ID:       2,
		Category: CategoryQCM,
		Thematic: "A",
		Prompt:   "Q",
		Choices:  []string{"Von Mises", "Tresca", "Mohr-Coulomb"},
		Answer:   ChoiceAnswer("tresca"),
	}
	if q.CorrectIndex() != 1 {
		t.Fatalf("expected correct index 1, got %d", q.CorrectIndex())
	}
	if !q.Check(1) {
		t.Fatal("expected choice 1 to be correct")
	}
	if q.Check(0) || q.Check(-1) || q.Check(3) {
		t.Fatal("out-of-range or wrong selections must be incorrect")
	}
	if q.CorrectText() != "Tresca" {
		t.Fatalf("expected display text of the stored choice, got %q", q.CorrectText())
	}
}
