package lead_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/alanyang/leadflow/internal/domain/lead"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		// Valid forward edges
		{name: "unassigned→assigned", from: StatusUnassigned, to: StatusAssigned, want: true},
		{name: "assigned→contacted", from: StatusAssigned, to: StatusContacted, want: true},
		{name: "assigned→bounced", from: StatusAssigned, to: StatusBounced, want: true},
		{name: "assigned→failed", from: StatusAssigned, to: StatusFailed, want: true},
		{name: "assigned→skipped", from: StatusAssigned, to: StatusSkipped, want: true},

		// Unassigned cannot skip straight to a work outcome
		{name: "unassigned→contacted invalid", from: StatusUnassigned, to: StatusContacted, want: false},
		{name: "unassigned→failed invalid", from: StatusUnassigned, to: StatusFailed, want: false},

		// No re-queue path
		{name: "assigned→unassigned invalid", from: StatusAssigned, to: StatusUnassigned, want: false},
		{name: "failed→unassigned invalid", from: StatusFailed, to: StatusUnassigned, want: false},
		{name: "bounced→assigned invalid", from: StatusBounced, to: StatusAssigned, want: false},

		// Terminal states stay terminal
		{name: "contacted→bounced invalid", from: StatusContacted, to: StatusBounced, want: false},
		{name: "skipped→contacted invalid", from: StatusSkipped, to: StatusContacted, want: false},

		// Self-transitions are never valid
		{name: "unassigned self-transition", from: StatusUnassigned, to: StatusUnassigned, want: false},
		{name: "assigned self-transition", from: StatusAssigned, to: StatusAssigned, want: false},

		{name: "unknown status", from: Status("PENDING"), to: StatusAssigned, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	for _, s := range TerminalStatuses() {
		assert.True(t, s.IsTerminal(), s)
		assert.True(t, s.IsWorkOutcome(), s)
	}
	assert.False(t, StatusAssigned.IsTerminal())
	assert.False(t, StatusUnassigned.IsTerminal())
	assert.False(t, StatusAssigned.IsWorkOutcome())
	assert.False(t, StatusUnassigned.IsWorkOutcome())
	assert.False(t, Status("SENT").IsValid())
	assert.False(t, Status("SENT").IsTerminal())
}

func TestOutcomeDeltas(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    Deltas
	}{
		{
			name:    "contacted with send",
			outcome: Outcome{Status: StatusContacted, EmailSent: true},
			want:    Deltas{LeadsWorked: 1, EmailsSent: 1},
		},
		{
			name:    "engagement flags each count once",
			outcome: Outcome{Status: StatusContacted, EmailSent: true, EmailOpened: true, EmailClicked: true, EmailReplied: true},
			want:    Deltas{LeadsWorked: 1, EmailsSent: 1, EmailsOpened: 1, EmailsClicked: 1, EmailsReplied: 1},
		},
		{
			name:    "bounce counts as bounced",
			outcome: Outcome{Status: StatusBounced, EmailSent: true},
			want:    Deltas{LeadsWorked: 1, EmailsSent: 1, EmailsBounced: 1},
		},
		{
			name:    "skipped only counts the worked lead",
			outcome: Outcome{Status: StatusSkipped},
			want:    Deltas{LeadsWorked: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.Deltas())
		})
	}
}
