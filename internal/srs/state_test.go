package srs

import (
	"errors"
	"testing"
	"time"
)

func TestNewReviewState(t *testing.T) {
	rs := NewReviewState()
	if rs.State != StateNew {
		t.Errorf("State = %q, want %q", rs.State, StateNew)
	}
	if rs.EaseFactor != DefaultEase {
		t.Errorf("EaseFactor = %v, want %v", rs.EaseFactor, DefaultEase)
	}
	if rs.NextReviewDate != nil || rs.LastReviewedAt != nil {
		t.Error("fresh state should have nil timestamps")
	}
	if err := rs.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestReviewState_IsDue(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		rs   ReviewState
		want bool
	}{
		{"new never due", ReviewState{State: StateNew}, false},
		{"nil date not due", ReviewState{State: StateReview}, false},
		{"past date due", ReviewState{State: StateReview, NextReviewDate: &past}, true},
		{"exact date due", ReviewState{State: StateReview, NextReviewDate: &now}, true},
		{"future not due", ReviewState{State: StateReview, NextReviewDate: &future}, false},
	}
	for _, tt := range tests {
		if got := tt.rs.IsDue(now); got != tt.want {
			t.Errorf("%s: IsDue = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestReviewState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rs      ReviewState
		wantErr error
	}{
		{
			"unknown state",
			ReviewState{State: "archived", EaseFactor: 2.5},
			ErrInvalidState,
		},
		{
			"ease below floor",
			ReviewState{State: StateReview, EaseFactor: 1.2, LearningStep: GraduatedStep},
			ErrInvariant,
		},
		{
			"negative interval",
			ReviewState{State: StateReview, EaseFactor: 2.5, IntervalDays: -1, LearningStep: GraduatedStep},
			ErrInvariant,
		},
		{
			"new with repetitions",
			ReviewState{State: StateNew, EaseFactor: 2.5, Repetitions: 2},
			ErrInvariant,
		},
		{
			"review without graduated sentinel",
			ReviewState{State: StateReview, EaseFactor: 2.5, LearningStep: 1},
			ErrInvariant,
		},
		{
			"learning with graduated sentinel",
			ReviewState{State: StateLearning, EaseFactor: 2.5, LearningStep: GraduatedStep},
			ErrInvariant,
		},
		{
			"valid review",
			ReviewState{State: StateReview, EaseFactor: 2.5, IntervalDays: 6, Repetitions: 3, LearningStep: GraduatedStep},
			nil,
		},
		{
			"valid relearning",
			ReviewState{State: StateRelearning, EaseFactor: 1.3, IntervalDays: 6, LearningStep: 0, Lapses: 1},
			nil,
		},
	}
	for _, tt := range tests {
		err := tt.rs.Validate()
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("%s: Validate() = %v, want nil", tt.name, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: Validate() = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}
