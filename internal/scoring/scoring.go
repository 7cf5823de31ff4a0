// Пакет scoring - чистые функции подсчёта наград.
// Никакого состояния: сервис вызывает их и сам применяет дельты.
package scoring

import (
	"todoQuest/internal/models/todo"
)

const (
	PointsHigh   = 15
	PointsMedium = 10
	PointsLow    = 5

	MMRHigh   = 20
	MMRMedium = 10
	MMRLow    = 5

	PointsPerSubtask = 2
	SubtaskFullBonus = 5

	DeletePenalty  = 15
	OverduePenalty = 30
	RestoreReward  = 15

	MMRFloor = -100
)

// PointsForPriority - базовая награда задачи, неизвестный приоритет считается средним
func PointsForPriority(p todo.Priority) int {
	switch p {
	case todo.PriorityHigh:
		return PointsHigh
	case todo.PriorityLow:
		return PointsLow
	}
	return PointsMedium
}

// MMRForCompletion - прирост MMR за завершение.
// Просроченная задача не приносит MMR вообще.
func MMRForCompletion(p todo.Priority, wasOverdue bool) int {
	if wasOverdue {
		return 0
	}
	switch p {
	case todo.PriorityHigh:
		return MMRHigh
	case todo.PriorityLow:
		return MMRLow
	}
	return MMRMedium
}

func MMRPenaltyForDeletion() int {
	return -DeletePenalty
}

func MMRRewardForRestoration() int {
	return RestoreReward
}

// ApplyOverduePenalty снимает штраф за просрочку с учётом нижней границы MMR
func ApplyOverduePenalty(mmr int) int {
	mmr -= OverduePenalty
	if mmr < MMRFloor {
		return MMRFloor
	}
	return mmr
}

// BonusForSubtasks - бонус за задачу, у которой к моменту
// завершения закрыты все подзадачи. Без подзадач бонуса нет.
func BonusForSubtasks(total, completed int) int {
	if total > 0 && completed == total {
		return SubtaskFullBonus
	}
	return 0
}
