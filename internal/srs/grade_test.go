package srs

import "testing"

func TestGrade_IsValid(t *testing.T) {
	for g := GradeBlackout; g <= GradePerfect; g++ {
		if !g.IsValid() {
			t.Errorf("Grade(%d).IsValid() = false, want true", int(g))
		}
	}
	for _, g := range []Grade{-1, 6, 42} {
		if g.IsValid() {
			t.Errorf("Grade(%d).IsValid() = true, want false", int(g))
		}
	}
}

func TestGrade_IsValidRestricted(t *testing.T) {
	valid := map[Grade]bool{GradeIncorrect: true, GradeCorrect: true, GradePerfect: true}
	for g := Grade(-1); g <= 6; g++ {
		if got := g.IsValidRestricted(); got != valid[g] {
			t.Errorf("Grade(%d).IsValidRestricted() = %v, want %v", int(g), got, valid[g])
		}
	}
}

func TestGrade_Outcome(t *testing.T) {
	tests := []struct {
		grade Grade
		want  Outcome
	}{
		{GradeBlackout, OutcomeFail},
		{GradeIncorrect, OutcomeFail},
		{GradeIncorrectFamiliar, OutcomeFail},
		{GradeCorrectHard, OutcomePass},
		{GradeCorrect, OutcomePass},
		{GradePerfect, OutcomeEasy},
	}
	for _, tt := range tests {
		if got := tt.grade.Outcome(); got != tt.want {
			t.Errorf("Grade(%d).Outcome() = %v, want %v", int(tt.grade), got, tt.want)
		}
	}
}

// Both calling conventions must collapse to the same outcome for the same
// intent: Again/Good/Easy on the restricted scale behave exactly like their
// full-scale counterparts.
func TestGrade_ConventionsAgree(t *testing.T) {
	pairs := []struct {
		restricted Grade
		full       Grade
	}{
		{GradeIncorrect, GradeBlackout},
		{GradeCorrect, GradeCorrectHard},
		{GradePerfect, GradePerfect},
	}
	for _, p := range pairs {
		if p.restricted.Outcome() != p.full.Outcome() {
			t.Errorf("outcome mismatch: Grade(%d)=%v vs Grade(%d)=%v",
				int(p.restricted), p.restricted.Outcome(), int(p.full), p.full.Outcome())
		}
	}
}

func TestOutcome_String(t *testing.T) {
	if OutcomeFail.String() != "fail" || OutcomePass.String() != "pass" || OutcomeEasy.String() != "easy" {
		t.Error("unexpected outcome names")
	}
	if Outcome(9).String() != "Outcome(9)" {
		t.Errorf("Outcome(9).String() = %q", Outcome(9).String())
	}
}
