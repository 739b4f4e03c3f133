package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
	"github.com/yusufkecer/fitness-tracker-backend/internal/repository"
)

const (
	DemoUsername = "johnsmith"
	DemoPassword = "password123"
)

// Seeder fills a store with the demo account and a day of sample data.
// Seed is not idempotent; every call adds another copy.
type Seeder struct {
	store  repository.Storage
	logger zerolog.Logger
	now    func() time.Time
}

func NewSeeder(store repository.Storage, logger zerolog.Logger) *Seeder {
	return &Seeder{store: store, logger: logger, now: time.Now}
}

// Seed returns the demo user so callers can use it as the default identity.
func (s *Seeder) Seed(ctx context.Context) (*domain.User, error) {
	if err := s.seedTips(ctx); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}
	user, err := s.store.CreateUser(ctx, domain.NewUser{
		Username: DemoUsername,
		Password: string(hash),
		Name:     "John Smith",
		Email:    "john@example.com",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed demo user: %w", err)
	}

	now := s.now()
	today := domain.DateOf(now)

	steps := []func(context.Context, int64, domain.Date, *time.Location) error{
		s.seedWorkouts,
		s.seedActivityLogs,
		s.seedNutritionLogs,
		s.seedGoals,
		s.seedStats,
	}
	for _, step := range steps {
		if err := step(ctx, user.ID, today, now.Location()); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("seeded demo data")
	return user, nil
}

func (s *Seeder) seedTips(ctx context.Context) error {
	tips := []domain.NewTip{
		{
			Title:    "Hydration Reminder",
			Content:  "Remember to drink water consistently throughout the day instead of all at once. This helps with better absorption.",
			Category: "hydration",
			IconName: "bx-droplet",
		},
		{
			Title:    "Today's Motivation",
			Content:  "The only bad workout is the one that didn't happen. Every step counts toward your goals.",
			Category: "motivation",
			IconName: "bx-heart",
		},
	}
	for _, t := range tips {
		if _, err := s.store.CreateTip(ctx, t); err != nil {
			return fmt.Errorf("failed to seed tip %q: %w", t.Title, err)
		}
	}
	return nil
}

func (s *Seeder) seedWorkouts(ctx context.Context, userID int64, today domain.Date, loc *time.Location) error {
	completedAt := today.At(10, 15, loc)
	workouts := []domain.NewWorkout{
		{
			UserID:         userID,
			Title:          "Upper Body Strength",
			Description:    ptr("Focus on chest, shoulders, and arms"),
			Duration:       45,
			CaloriesBurned: ptr(320),
			Status:         domain.WorkoutCompleted,
			ScheduledFor:   today.At(9, 30, loc),
			CompletedAt:    &completedAt,
		},
		{
			UserID:         userID,
			Title:          "Evening Run",
			Description:    ptr("5K run around the park"),
			Duration:       30,
			CaloriesBurned: ptr(280),
			Status:         domain.WorkoutScheduled,
			ScheduledFor:   today.At(19, 0, loc),
		},
	}
	for _, w := range workouts {
		if _, err := s.store.CreateWorkout(ctx, w); err != nil {
			return fmt.Errorf("failed to seed workout %q: %w", w.Title, err)
		}
	}
	return nil
}

func (s *Seeder) seedActivityLogs(ctx context.Context, userID int64, today domain.Date, _ *time.Location) error {
	logs := []domain.NewActivityLog{
		{
			UserID:         userID,
			ActivityType:   "workout",
			Description:    "Upper Body Strength",
			Duration:       45,
			CaloriesBurned: ptr(320),
			Date:           today,
			Status:         "completed",
		},
		{
			UserID:         userID,
			ActivityType:   "walking",
			Description:    "Morning Walk",
			Duration:       25,
			CaloriesBurned: ptr(180),
			Date:           today,
			Status:         "completed",
		},
		{
			UserID:         userID,
			ActivityType:   "hydration",
			Description:    "Hydration Goal",
			Duration:       0,
			CaloriesBurned: ptr(0),
			Date:           today,
			Status:         "in_progress",
		},
	}
	for _, l := range logs {
		if _, err := s.store.CreateActivityLog(ctx, l); err != nil {
			return fmt.Errorf("failed to seed activity log %q: %w", l.Description, err)
		}
	}
	return nil
}

func (s *Seeder) seedNutritionLogs(ctx context.Context, userID int64, today domain.Date, _ *time.Location) error {
	logs := []domain.NewNutritionLog{
		{UserID: userID, MealType: "breakfast", Description: "Oatmeal with fruits and nuts", Calories: 460, Date: today},
		{UserID: userID, MealType: "lunch", Description: "Grilled chicken salad with quinoa", Calories: 650, Date: today},
		{UserID: userID, MealType: "dinner", Description: "Salmon with roasted vegetables", Calories: 590, Date: today},
		{UserID: userID, MealType: "snack", Description: "Greek yogurt with honey", Calories: 142, Date: today},
	}
	for _, l := range logs {
		if _, err := s.store.CreateNutritionLog(ctx, l); err != nil {
			return fmt.Errorf("failed to seed nutrition log %q: %w", l.MealType, err)
		}
	}
	return nil
}

func (s *Seeder) seedGoals(ctx context.Context, userID int64, _ domain.Date, _ *time.Location) error {
	goals := []domain.NewGoal{
		{
			UserID:       userID,
			Title:        "Weight Goal",
			Description:  "Lose 10 pounds",
			TargetValue:  10,
			CurrentValue: 4,
			Unit:         "lbs",
			StartDate:    domain.NewDate(2023, time.May, 10),
			EndDate:      domain.NewDate(2023, time.July, 10),
		},
		{
			UserID:       userID,
			Title:        "Running Goal",
			Description:  "Run 50 miles this month",
			TargetValue:  50,
			CurrentValue: 31,
			Unit:         "mi",
			StartDate:    domain.NewDate(2023, time.June, 1),
			EndDate:      domain.NewDate(2023, time.June, 30),
		},
		{
			UserID:       userID,
			Title:        "Strength Goal",
			Description:  "Bench press 200 lbs",
			TargetValue:  200,
			CurrentValue: 185,
			Unit:         "lbs",
			StartDate:    domain.NewDate(2023, time.April, 15),
			EndDate:      domain.NewDate(2023, time.July, 15),
		},
	}
	for _, g := range goals {
		if _, err := s.store.CreateGoal(ctx, g); err != nil {
			return fmt.Errorf("failed to seed goal %q: %w", g.Title, err)
		}
	}
	return nil
}

func (s *Seeder) seedStats(ctx context.Context, userID int64, today domain.Date, _ *time.Location) error {
	_, err := s.store.CreateOrUpdateStats(ctx, domain.NewStat{
		UserID:       userID,
		Date:         today,
		Steps:        ptr(8946),
		Calories:     ptr(1842),
		CaloriesGoal: ptr(domain.DefaultCaloriesGoal),
		WaterIntake:  ptr(1800),
		WaterGoal:    ptr(domain.DefaultWaterGoal),
		SleepHours:   ptr(6.5),
		SleepGoal:    ptr(float64(domain.DefaultSleepGoal)),
	})
	if err != nil {
		return fmt.Errorf("failed to seed stats: %w", err)
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
