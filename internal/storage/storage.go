package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DietPreference — активная диета пользователя.
type DietPreference struct {
	UserID         string
	ActiveDietName string
	CaloriesGoal   int
	Allergies      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Ingredient — ингредиент блюда. SmartGroup может быть пустым,
// классификация подставляет категорию по умолчанию.
type Ingredient struct {
	Name       string
	Quantity   string
	SmartGroup string
}

// Meal — блюдо из каталога. Read-only для ядра: источник внешний.
type Meal struct {
	ID           int64
	Name         string
	ImageURL     string
	Calories     int
	ProteinGrams int
	FatGrams     int
	CarbGrams    int
	Ingredients  []Ingredient
}

// PlanEntry — принятое блюдо в плане пользователя. Append-only.
type PlanEntry struct {
	ID          uuid.UUID
	UserID      string
	MealID      int64
	PlannedDate string // YYYY-MM-DD
	MealTime    string // Breakfast | Lunch | Dinner
	Status      string // "Accepted"
	CreatedAt   time.Time
}

// PlanEntryInsert — входные данные для создания записи плана.
type PlanEntryInsert struct {
	UserID      string
	MealID      int64
	PlannedDate string
	MealTime    string
	Status      string
}

// DailyTotals — агрегат питания за день, вычисленный хранилищем.
// Единственный авторитетный источник для vitals.
type DailyTotals struct {
	Date          string
	TotalCalories int
	TotalProtein  int
	TotalFat      int
	TotalCarbs    int
	MealCount     int
}

// DietPrefsStorage — интерфейс для хранения диет-предпочтений.
type DietPrefsStorage interface {
	// GetPreference returns the active preference. bool=false means not found.
	GetPreference(ctx context.Context, userID string) (DietPreference, bool, error)

	// UpsertPreference creates or updates the preference for a user.
	UpsertPreference(ctx context.Context, userID, dietName string, caloriesGoal int, allergies string) (DietPreference, error)
}

// MealsStorage — интерфейс каталога блюд и диет.
type MealsStorage interface {
	// ListDietPlans returns all selectable diet names in catalog order.
	ListDietPlans(ctx context.Context) ([]string, error)

	// GetRandomMealByDiet returns one random meal matching the diet, with its
	// ingredients. bool=false means the diet has no meals.
	GetRandomMealByDiet(ctx context.Context, dietName string) (Meal, bool, error)
}

// PlanEntriesStorage — интерфейс для записей плана питания.
type PlanEntriesStorage interface {
	// InsertPlanEntry durably records an accepted meal.
	InsertPlanEntry(ctx context.Context, ins PlanEntryInsert) (PlanEntry, error)

	// GetDailyTotals returns the server-computed aggregate over Accepted
	// entries for a date. bool=false means no entries exist for that date.
	GetDailyTotals(ctx context.Context, userID, date string) (DailyTotals, bool, error)

	// ListPlanEntries returns a user's entries for a date, oldest first.
	ListPlanEntries(ctx context.Context, userID, date string) ([]PlanEntry, error)
}

// ReportMeta — метаданные экспортированного списка покупок.
type ReportMeta struct {
	ID        uuid.UUID
	UserID    string
	Format    string  // "pdf" or "csv"
	ForDate   string  // YYYY-MM-DD
	ObjectKey *string // S3 object key (NULL for memory mode)
	SizeBytes int64
	Status    string // "ready" or "failed"
	Error     *string
	CreatedAt time.Time
	Data      []byte // Only used in memory mode (not stored in DB)
}

// ReportsStorage — интерфейс для работы с отчётами.
type ReportsStorage interface {
	// CreateReport сохраняет отчёт (metadata + optional data for memory mode).
	CreateReport(ctx context.Context, report *ReportMeta) error

	// GetReport возвращает отчёт по ID.
	GetReport(ctx context.Context, id uuid.UUID) (*ReportMeta, error)

	// ListReports возвращает отчёты пользователя с пагинацией.
	ListReports(ctx context.Context, userID string, limit, offset int) ([]ReportMeta, error)

	// DeleteReport удаляет отчёт.
	DeleteReport(ctx context.Context, id uuid.UUID) error
}

// Storage — корневой интерфейс хранилища.
type Storage interface {
	DietPrefsStorage
	MealsStorage
	PlanEntriesStorage
	ReportsStorage

	// Close закрывает соединение (для Postgres).
	Close() error
}
