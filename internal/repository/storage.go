package repository

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
)

// DefaultTipLimit is used when GetTips is called with a non-positive limit.
const DefaultTipLimit = 5

var ErrUnknownBackend = errors.New("unknown storage backend")

// Storage is the only component allowed to mutate fitness data. Lookups that
// miss return a nil record and a nil error; deletes report whether anything
// was removed. Errors are reserved for backend failures.
type Storage interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, u domain.NewUser) (*domain.User, error)

	GetGoals(ctx context.Context, userID int64) ([]domain.Goal, error)
	GetGoal(ctx context.Context, id int64) (*domain.Goal, error)
	CreateGoal(ctx context.Context, g domain.NewGoal) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, id int64, patch domain.GoalPatch) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, id int64) (bool, error)

	// GetWorkouts is ordered by ScheduledFor, latest first.
	GetWorkouts(ctx context.Context, userID int64) ([]domain.Workout, error)
	GetWorkout(ctx context.Context, id int64) (*domain.Workout, error)
	CreateWorkout(ctx context.Context, w domain.NewWorkout) (*domain.Workout, error)
	UpdateWorkout(ctx context.Context, id int64, patch domain.WorkoutPatch) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, id int64) (bool, error)

	// GetNutritionLogs is ordered by CreatedAt, newest first. A nil date
	// returns every log of the user.
	GetNutritionLogs(ctx context.Context, userID int64, date *domain.Date) ([]domain.NutritionLog, error)
	CreateNutritionLog(ctx context.Context, l domain.NewNutritionLog) (*domain.NutritionLog, error)
	DeleteNutritionLog(ctx context.Context, id int64) (bool, error)

	// GetActivityLogs is ordered by CreatedAt, newest first.
	GetActivityLogs(ctx context.Context, userID int64, date *domain.Date) ([]domain.ActivityLog, error)
	CreateActivityLog(ctx context.Context, l domain.NewActivityLog) (*domain.ActivityLog, error)
	UpdateActivityLog(ctx context.Context, id int64, patch domain.ActivityLogPatch) (*domain.ActivityLog, error)
	DeleteActivityLog(ctx context.Context, id int64) (bool, error)

	GetStats(ctx context.Context, userID int64, date domain.Date) (*domain.Stat, error)
	CreateOrUpdateStats(ctx context.Context, s domain.NewStat) (*domain.Stat, error)

	GetTips(ctx context.Context, category string, limit int) ([]domain.Tip, error)
	GetTip(ctx context.Context, id int64) (*domain.Tip, error)
	CreateTip(ctx context.Context, t domain.NewTip) (*domain.Tip, error)

	Close() error
}

// Shuffler permutes n elements through swap, with the signature of rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

type options struct {
	shuffle Shuffler
	now     func() time.Time
}

type Option func(*options)

// WithShuffler replaces the random source used to pick tips.
func WithShuffler(s Shuffler) Option {
	return func(o *options) { o.shuffle = s }
}

// WithClock replaces time.Now for createdAt/updatedAt stamping.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{shuffle: rand.Shuffle, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// pickTips shuffles tips in place and keeps at most limit of them.
func pickTips(tips []domain.Tip, limit int, shuffle Shuffler) []domain.Tip {
	if limit <= 0 {
		limit = DefaultTipLimit
	}
	shuffle(len(tips), func(i, j int) { tips[i], tips[j] = tips[j], tips[i] })
	if len(tips) > limit {
		tips = tips[:limit]
	}
	return tips
}

// stampAfter returns now, nudged forward when the clock has not moved past prev.
func stampAfter(now, prev time.Time) time.Time {
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}
