package scoring

const (
	MaxLevel      = 10
	PointsPerLevel = 100

	// MMR после понижения с максимального уровня
	DerankResetMMR = 100
)

// ResolveLevel выводит уровень из накопленных очков.
// Особое правило вершины: на 10 уровне отрицательный MMR
// понижает до 9 и сбрасывает MMR в 100, обычный расчёт при этом не выполняется.
// Вызывается после каждого изменения очков или MMR.
func ResolveLevel(points, mmr, currentLevel int) (level, newMMR int) {
	if currentLevel == MaxLevel && mmr < 0 {
		return MaxLevel - 1, DerankResetMMR
	}

	candidate := points/PointsPerLevel + 1
	if candidate > MaxLevel {
		candidate = MaxLevel
	}
	return candidate, mmr
}
