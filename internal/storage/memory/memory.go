package memory

import (
	"errors"
)

var (
	ErrNotFound = errors.New("record not found")
)

// MemoryStorage — in-memory реализация Storage. Каталог блюд засеян
// стартовым набором, чтобы API работал без базы данных.
type MemoryStorage struct {
	prefs       *dietPrefsStorage
	meals       *mealsStorage
	planEntries *planEntriesStorage
	reports     *reportsStorage
}

// New создаёт новый MemoryStorage с засеянным каталогом блюд.
func New() *MemoryStorage {
	meals := newMealsStorage()
	return &MemoryStorage{
		prefs:       newDietPrefsStorage(),
		meals:       meals,
		planEntries: newPlanEntriesStorage(meals),
		reports:     newReportsStorage(),
	}
}

func (m *MemoryStorage) Close() error {
	// no-op для memory
	return nil
}
