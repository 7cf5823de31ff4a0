package scoring_test

import (
	"testing"

	"todoQuest/internal/models/todo"
	"todoQuest/internal/scoring"

	"github.com/stretchr/testify/assert"
)

func TestPointsForPriority(t *testing.T) {
	tests := []struct {
		name     string
		priority todo.Priority
		want     int
	}{
		{"high", todo.PriorityHigh, 15},
		{"medium", todo.PriorityMedium, 10},
		{"low", todo.PriorityLow, 5},
		{"unknown falls back to medium", todo.Priority("urgent"), 10},
		{"empty falls back to medium", todo.Priority(""), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoring.PointsForPriority(tt.priority))
		})
	}

	// high >= medium >= low
	assert.GreaterOrEqual(t, scoring.PointsForPriority(todo.PriorityHigh), scoring.PointsForPriority(todo.PriorityMedium))
	assert.GreaterOrEqual(t, scoring.PointsForPriority(todo.PriorityMedium), scoring.PointsForPriority(todo.PriorityLow))
}

func TestMMRForCompletion(t *testing.T) {
	tests := []struct {
		name       string
		priority   todo.Priority
		wasOverdue bool
		want       int
	}{
		{"high", todo.PriorityHigh, false, 20},
		{"medium", todo.PriorityMedium, false, 10},
		{"low", todo.PriorityLow, false, 5},
		{"unknown counts as medium", todo.Priority("???"), false, 10},
		{"overdue high gives nothing", todo.PriorityHigh, true, 0},
		{"overdue low gives nothing", todo.PriorityLow, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoring.MMRForCompletion(tt.priority, tt.wasOverdue))
		})
	}
}

func TestMMRPenaltiesAndRewards(t *testing.T) {
	assert.Equal(t, -15, scoring.MMRPenaltyForDeletion())
	assert.Equal(t, 15, scoring.MMRRewardForRestoration())
}

func TestApplyOverduePenalty(t *testing.T) {
	tests := []struct {
		name string
		mmr  int
		want int
	}{
		{"from zero", 0, -30},
		{"from positive", 100, 70},
		{"clamped at floor", -90, -100},
		{"already at floor", -100, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoring.ApplyOverduePenalty(tt.mmr))
		})
	}
}

func TestBonusForSubtasks(t *testing.T) {
	tests := []struct {
		name             string
		total, completed int
		want             int
	}{
		{"all completed", 3, 3, 5},
		{"partially completed", 3, 2, 0},
		{"none completed", 3, 0, 0},
		{"no subtasks - no bonus", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoring.BonusForSubtasks(tt.total, tt.completed))
		})
	}
}
