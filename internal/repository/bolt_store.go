package repository

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
)

const (
	usersBucket     = "users"
	goalsBucket     = "goals"
	workoutsBucket  = "workouts"
	nutritionBucket = "nutrition_logs"
	activityBucket  = "activity_logs"
	statsBucket     = "stats"
	tipsBucket      = "tips"
)

var boltBuckets = []string{
	usersBucket, goalsBucket, workoutsBucket, nutritionBucket, activityBucket, statsBucket, tipsBucket,
}

// BoltStore keeps each entity type in its own bucket, keyed by the
// big-endian id and holding the JSON-encoded record. Ids come from the
// bucket sequence, which never goes backwards.
type BoltStore struct {
	db   *bolt.DB
	opts options
}

var _ Storage = (*BoltStore)(nil)

// userRecord exists because domain.User never serialises its password.
type userRecord struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

func OpenBoltStore(path string, opts ...Option) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range boltBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db, opts: buildOptions(opts)}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func itob(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func nextID(tx *bolt.Tx, bucket string) (int64, error) {
	seq, err := tx.Bucket([]byte(bucket)).NextSequence()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", bucket, err)
	}
	return int64(seq), nil
}

func boltGet[T any](tx *bolt.Tx, bucket string, id int64) (*T, error) {
	data := tx.Bucket([]byte(bucket)).Get(itob(id))
	if data == nil {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%d: %w", bucket, id, err)
	}
	return &v, nil
}

func boltPut[T any](tx *bolt.Tx, bucket string, id int64, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%d: %w", bucket, id, err)
	}
	return tx.Bucket([]byte(bucket)).Put(itob(id), data)
}

// boltEach decodes every record of bucket in id order.
func boltEach[T any](tx *bolt.Tx, bucket string, fn func(v T)) error {
	return tx.Bucket([]byte(bucket)).ForEach(func(k, data []byte) error {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("failed to decode %s record: %w", bucket, err)
		}
		fn(v)
		return nil
	})
}

func (s *BoltStore) remove(bucket string, id int64) (bool, error) {
	var removed bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b.Get(itob(id)) == nil {
			return nil
		}
		removed = true
		return b.Delete(itob(id))
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", bucket, err)
	}
	return removed, nil
}

// Users

func (r userRecord) toUser() *domain.User {
	return &domain.User{ID: r.ID, Username: r.Username, Password: r.Password, Name: r.Name, Email: r.Email}
}

func (s *BoltStore) GetUser(_ context.Context, id int64) (*domain.User, error) {
	var rec *userRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		rec, err = boltGet[userRecord](tx, usersBucket, id)
		return err
	})
	if err != nil || rec == nil {
		return nil, err
	}
	return rec.toUser(), nil
}

func (s *BoltStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	var found *domain.User
	err := s.db.View(func(tx *bolt.Tx) error {
		return boltEach(tx, usersBucket, func(r userRecord) {
			if found == nil && r.Username == username {
				found = r.toUser()
			}
		})
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *BoltStore) CreateUser(_ context.Context, in domain.NewUser) (*domain.User, error) {
	var rec userRecord
	err := s.db.Update(func(tx *bolt.Tx) error {
		id, err := nextID(tx, usersBucket)
		if err != nil {
			return err
		}
		rec = userRecord{ID: id, Username: in.Username, Password: in.Password, Name: in.Name, Email: in.Email}
		return boltPut(tx, usersBucket, id, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return rec.toUser(), nil
}

// Goals

func (s *BoltStore) GetGoals(_ context.Context, userID int64) ([]domain.Goal, error) {
	goals := []domain.Goal{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return boltEach(tx, goalsBucket, func(g domain.Goal) {
			if g.UserID == userID {
				goals = append(goals, g)
			}
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (s *BoltStore) GetGoal(_ context.Context, id int64) (*domain.Goal, error) {
	var g *domain.Goal
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		g, err = boltGet[domain.Goal](tx, goalsBucket, id)
		return err
	})
	return g, err
}

func (s *BoltStore) CreateGoal(_ context.Context, in domain.NewGoal) (*domain.Goal, error) {
	var g domain.Goal
	err := s.db.Update(func(tx *bolt.Tx) error {
		id, err := nextID(tx, goalsBucket)
		if err != nil {
			return err
		}
		g = domain.Goal{
			ID:           id,
			UserID:       in.UserID,
			Title:        in.Title,
			Description:  in.Description,
			TargetValue:  in.TargetValue,
			CurrentValue: in.CurrentValue,
			Unit:         in.Unit,
			StartDate:    in.StartDate,
			EndDate:      in.EndDate,
			CreatedAt:    s.opts.now(),
		}
		return boltPut(tx, goalsBucket, id, g)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &g, nil
}

func (s *BoltStore) UpdateGoal(_ context.Context, id int64, patch domain.GoalPatch) (*domain.Goal, error) {
	var g *domain.Goal
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		if g, err = boltGet[domain.Goal](tx, goalsBucket, id); err != nil || g == nil {
			return err
		}
		patch.Apply(g)
		return boltPut(tx, goalsBucket, id, *g)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return g, nil
}

func (s *BoltStore) DeleteGoal(_ context.Context, id int64) (bool, error) {
	return s.remove(goalsBucket, id)
}

// Workouts

func (s *BoltStore) GetWorkouts(_ context.Context, userID int64) ([]domain.Workout, error) {
	workouts := []domain.Workout{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return boltEach(tx, workoutsBucket, func(w domain.Workout) {
			if w.UserID == userID {
				workouts = append(workouts, w)
			}
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	sortWorkouts(workouts)
	return workouts, nil
}

func (s *BoltStore) GetWorkout(_ context.Context, id int64) (*domain.Workout, error) {
	var w *domain.Workout
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		w, err = boltGet[domain.Workout](tx, workoutsBucket, id)
		return err
	})
	return w, err
}

func (s *BoltStore) CreateWorkout(_ context.Context, in domain.NewWorkout) (*domain.Workout, error) {
	var w domain.Workout
	err := s.db.Update(func(tx *bolt.Tx) error {
		id, err := nextID(tx, workoutsBucket)
		if err != nil {
			return err
		}
		w = domain.Workout{
			ID:             id,
			UserID:         in.UserID,
			Title:          in.Title,
			Description:    in.Description,
			Duration:       in.Duration,
			CaloriesBurned: in.CaloriesBurned,
			Status:         in.Status,
			ScheduledFor:   in.ScheduledFor.UTC(),
			CompletedAt:    domain.UTCPtr(in.CompletedAt),
			CreatedAt:      s.opts.now(),
		}
		return boltPut(tx, workoutsBucket, id, w)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}
	return &w, nil
}

func (s *BoltStore) UpdateWorkout(_ context.Context, id int64, patch domain.WorkoutPatch) (*domain.Workout, error) {
	var w *domain.Workout
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		if w, err = boltGet[domain.Workout](tx, workoutsBucket, id); err != nil || w == nil {
			return err
		}
		patch.Apply(w)
		return boltPut(tx, workoutsBucket, id, *w)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update workout: %w", err)
	}
	return w, nil
}

func (s *BoltStore) DeleteWorkout(_ context.Context, id int64) (bool, error) {
	return s.remove(workoutsBucket, id)
}

// Nutrition logs

func (s *BoltStore) GetNutritionLogs(_ context.Context, userID int64, date *domain.Date) ([]domain.NutritionLog, error) {
	logs := []domain.NutritionLog{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return boltEach(tx, nutritionBucket, func(l domain.NutritionLog) {
			if l.UserID == userID && (date == nil || l.Date.Equal(*date)) {
				logs = append(logs, l)
			}
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list nutrition logs: %w", err)
	}
	sortNutritionLogs(logs)
	return logs, nil
}

func (s *BoltStore) CreateNutritionLog(_ context.Context, in domain.NewNutritionLog) (*domain.NutritionLog, error) {
	var l domain.NutritionLog
	err := s.db.Update(func(tx *bolt.Tx) error {
		id, err := nextID(tx, nutritionBucket)
		if err != nil {
			return err
		}
		l = domain.NutritionLog{
			ID:          id,
			UserID:      in.UserID,
			MealType:    in.MealType,
			Description: in.Description,
			Calories:    in.Calories,
			Date:        in.Date,
			CreatedAt:   s.opts.now(),
		}
		return boltPut(tx, nutritionBucket, id, l)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create nutrition log: %w", err)
	}
	return &l, nil
}

func (s *BoltStore) DeleteNutritionLog(_ context.Context, id int64) (bool, error) {
	return s.remove(nutritionBucket, id)
}

// Activity logs

func (s *BoltStore) GetActivityLogs(_ context.Context, userID int64, date *domain.Date) ([]domain.ActivityLog, error) {
	logs := []domain.ActivityLog{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return boltEach(tx, activityBucket, func(l domain.ActivityLog) {
			if l.UserID == userID && (date == nil || l.Date.Equal(*date)) {
				logs = append(logs, l)
			}
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	sortActivityLogs(logs)
	return logs, nil
}

func (s *BoltStore) CreateActivityLog(_ context.Context, in domain.NewActivityLog) (*domain.ActivityLog, error) {
	var l domain.ActivityLog
	err := s.db.Update(func(tx *bolt.Tx) error {
		id, err := nextID(tx, activityBucket)
		if err != nil {
			return err
		}
		l = domain.ActivityLog{
			ID:             id,
			UserID:         in.UserID,
			ActivityType:   in.ActivityType,
			Description:    in.Description,
			Duration:       in.Duration,
			CaloriesBurned: in.CaloriesBurned,
			Date:           in.Date,
			Status:         in.Status,
			CreatedAt:      s.opts.now(),
		}
		return boltPut(tx, activityBucket, id, l)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create activity log: %w", err)
	}
	return &l, nil
}

func (s *BoltStore) UpdateActivityLog(_ context.Context, id int64, patch domain.ActivityLogPatch) (*domain.ActivityLog, error) {
	var l *domain.ActivityLog
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		if l, err = boltGet[domain.ActivityLog](tx, activityBucket, id); err != nil || l == nil {
			return err
		}
		patch.Apply(l)
		return boltPut(tx, activityBucket, id, *l)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update activity log: %w", err)
	}
	return l, nil
}

func (s *BoltStore) DeleteActivityLog(_ context.Context, id int64) (bool, error) {
	return s.remove(activityBucket, id)
}

// Stats

func findBoltStat(tx *bolt.Tx, userID int64, date domain.Date) (*domain.Stat, error) {
	var found *domain.Stat
	err := boltEach(tx, statsBucket, func(st domain.Stat) {
		if found == nil && st.UserID == userID && st.Date.Equal(date) {
			found = &st
		}
	})
	return found, err
}

func (s *BoltStore) GetStats(_ context.Context, userID int64, date domain.Date) (*domain.Stat, error) {
	var st *domain.Stat
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		st, err = findBoltStat(tx, userID, date)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return st, nil
}

func (s *BoltStore) CreateOrUpdateStats(_ context.Context, in domain.NewStat) (*domain.Stat, error) {
	var st *domain.Stat
	err := s.db.Update(func(tx *bolt.Tx) error {
		now := s.opts.now()
		existing, err := findBoltStat(tx, in.UserID, in.Date)
		if err != nil {
			return err
		}
		if existing != nil {
			in.Apply(existing)
			existing.UpdatedAt = stampAfter(now, existing.UpdatedAt)
			st = existing
			return boltPut(tx, statsBucket, st.ID, *st)
		}

		id, err := nextID(tx, statsBucket)
		if err != nil {
			return err
		}
		created := domain.DefaultStat(in.UserID, in.Date)
		in.Apply(&created)
		created.ID = id
		created.CreatedAt = now
		created.UpdatedAt = now
		st = &created
		return boltPut(tx, statsBucket, id, created)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save stats: %w", err)
	}
	return st, nil
}

// Tips

func (s *BoltStore) GetTips(_ context.Context, category string, limit int) ([]domain.Tip, error) {
	tips := []domain.Tip{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return boltEach(tx, tipsBucket, func(t domain.Tip) {
			if category == "" || t.Category == category {
				tips = append(tips, t)
			}
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}
	sort.Slice(tips, func(i, j int) bool { return tips[i].ID < tips[j].ID })
	return pickTips(tips, limit, s.opts.shuffle), nil
}

func (s *BoltStore) GetTip(_ context.Context, id int64) (*domain.Tip, error) {
	var t *domain.Tip
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		t, err = boltGet[domain.Tip](tx, tipsBucket, id)
		return err
	})
	return t, err
}

func (s *BoltStore) CreateTip(_ context.Context, in domain.NewTip) (*domain.Tip, error) {
	var t domain.Tip
	err := s.db.Update(func(tx *bolt.Tx) error {
		id, err := nextID(tx, tipsBucket)
		if err != nil {
			return err
		}
		t = domain.Tip{
			ID:        id,
			Title:     in.Title,
			Content:   in.Content,
			Category:  in.Category,
			IconName:  in.IconName,
			CreatedAt: s.opts.now(),
		}
		return boltPut(tx, tipsBucket, id, t)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tip: %w", err)
	}
	return &t, nil
}
