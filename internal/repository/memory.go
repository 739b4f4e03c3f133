package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
)

// MemStorage keeps every entity in process memory. One lock guards all maps
// and counters, so concurrent requests observe the same ordering a single
// request loop would give. Records are stored and returned by value; callers
// never hold references into the maps.
type MemStorage struct {
	mu   sync.RWMutex
	opts options

	users         map[int64]domain.User
	goals         map[int64]domain.Goal
	workouts      map[int64]domain.Workout
	nutritionLogs map[int64]domain.NutritionLog
	activityLogs  map[int64]domain.ActivityLog
	stats         map[int64]domain.Stat
	tips          map[int64]domain.Tip

	userSeq      int64
	goalSeq      int64
	workoutSeq   int64
	nutritionSeq int64
	activitySeq  int64
	statSeq      int64
	tipSeq       int64
}

var _ Storage = (*MemStorage)(nil)

func NewMemStorage(opts ...Option) *MemStorage {
	return &MemStorage{
		opts:          buildOptions(opts),
		users:         make(map[int64]domain.User),
		goals:         make(map[int64]domain.Goal),
		workouts:      make(map[int64]domain.Workout),
		nutritionLogs: make(map[int64]domain.NutritionLog),
		activityLogs:  make(map[int64]domain.ActivityLog),
		stats:         make(map[int64]domain.Stat),
		tips:          make(map[int64]domain.Tip),
	}
}

func (s *MemStorage) Close() error { return nil }

// Users

func (s *MemStorage) GetUser(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemStorage) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemStorage) CreateUser(_ context.Context, in domain.NewUser) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userSeq++
	u := domain.User{
		ID:       s.userSeq,
		Username: in.Username,
		Password: in.Password,
		Name:     in.Name,
		Email:    in.Email,
	}
	s.users[u.ID] = u
	return &u, nil
}

// Goals

func (s *MemStorage) GetGoals(_ context.Context, userID int64) ([]domain.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	goals := []domain.Goal{}
	for _, g := range s.goals {
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	return goals, nil
}

func (s *MemStorage) GetGoal(_ context.Context, id int64) (*domain.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (s *MemStorage) CreateGoal(_ context.Context, in domain.NewGoal) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goalSeq++
	g := domain.Goal{
		ID:           s.goalSeq,
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
	s.goals[g.ID] = g
	return &g, nil
}

func (s *MemStorage) UpdateGoal(_ context.Context, id int64, patch domain.GoalPatch) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&g)
	s.goals[id] = g
	return &g, nil
}

func (s *MemStorage) DeleteGoal(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[id]; !ok {
		return false, nil
	}
	delete(s.goals, id)
	return true, nil
}

// Workouts

func (s *MemStorage) GetWorkouts(_ context.Context, userID int64) ([]domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	workouts := []domain.Workout{}
	for _, w := range s.workouts {
		if w.UserID == userID {
			workouts = append(workouts, w)
		}
	}
	sortWorkouts(workouts)
	return workouts, nil
}

func (s *MemStorage) GetWorkout(_ context.Context, id int64) (*domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workouts[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (s *MemStorage) CreateWorkout(_ context.Context, in domain.NewWorkout) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workoutSeq++
	w := domain.Workout{
		ID:             s.workoutSeq,
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
	s.workouts[w.ID] = w
	return &w, nil
}

func (s *MemStorage) UpdateWorkout(_ context.Context, id int64, patch domain.WorkoutPatch) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.workouts[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&w)
	s.workouts[id] = w
	return &w, nil
}

func (s *MemStorage) DeleteWorkout(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workouts[id]; !ok {
		return false, nil
	}
	delete(s.workouts, id)
	return true, nil
}

// Nutrition logs

func (s *MemStorage) GetNutritionLogs(_ context.Context, userID int64, date *domain.Date) ([]domain.NutritionLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := []domain.NutritionLog{}
	for _, l := range s.nutritionLogs {
		if l.UserID != userID {
			continue
		}
		if date != nil && !l.Date.Equal(*date) {
			continue
		}
		logs = append(logs, l)
	}
	sortNutritionLogs(logs)
	return logs, nil
}

func (s *MemStorage) CreateNutritionLog(_ context.Context, in domain.NewNutritionLog) (*domain.NutritionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nutritionSeq++
	l := domain.NutritionLog{
		ID:          s.nutritionSeq,
		UserID:      in.UserID,
		MealType:    in.MealType,
		Description: in.Description,
		Calories:    in.Calories,
		Date:        in.Date,
		CreatedAt:   s.opts.now(),
	}
	s.nutritionLogs[l.ID] = l
	return &l, nil
}

func (s *MemStorage) DeleteNutritionLog(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nutritionLogs[id]; !ok {
		return false, nil
	}
	delete(s.nutritionLogs, id)
	return true, nil
}

// Activity logs

func (s *MemStorage) GetActivityLogs(_ context.Context, userID int64, date *domain.Date) ([]domain.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := []domain.ActivityLog{}
	for _, l := range s.activityLogs {
		if l.UserID != userID {
			continue
		}
		if date != nil && !l.Date.Equal(*date) {
			continue
		}
		logs = append(logs, l)
	}
	sortActivityLogs(logs)
	return logs, nil
}

func (s *MemStorage) CreateActivityLog(_ context.Context, in domain.NewActivityLog) (*domain.ActivityLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activitySeq++
	l := domain.ActivityLog{
		ID:             s.activitySeq,
		UserID:         in.UserID,
		ActivityType:   in.ActivityType,
		Description:    in.Description,
		Duration:       in.Duration,
		CaloriesBurned: in.CaloriesBurned,
		Date:           in.Date,
		Status:         in.Status,
		CreatedAt:      s.opts.now(),
	}
	s.activityLogs[l.ID] = l
	return &l, nil
}

func (s *MemStorage) UpdateActivityLog(_ context.Context, id int64, patch domain.ActivityLogPatch) (*domain.ActivityLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.activityLogs[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&l)
	s.activityLogs[id] = l
	return &l, nil
}

func (s *MemStorage) DeleteActivityLog(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.activityLogs[id]; !ok {
		return false, nil
	}
	delete(s.activityLogs, id)
	return true, nil
}

// Stats

func (s *MemStorage) GetStats(_ context.Context, userID int64, date domain.Date) (*domain.Stat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.findStat(userID, date); ok {
		return &st, nil
	}
	return nil, nil
}

func (s *MemStorage) findStat(userID int64, date domain.Date) (domain.Stat, bool) {
	for _, st := range s.stats {
		if st.UserID == userID && st.Date.Equal(date) {
			return st, true
		}
	}
	return domain.Stat{}, false
}

func (s *MemStorage) CreateOrUpdateStats(_ context.Context, in domain.NewStat) (*domain.Stat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.opts.now()
	if st, ok := s.findStat(in.UserID, in.Date); ok {
		in.Apply(&st)
		st.UpdatedAt = stampAfter(now, st.UpdatedAt)
		s.stats[st.ID] = st
		return &st, nil
	}
	s.statSeq++
	st := domain.DefaultStat(in.UserID, in.Date)
	in.Apply(&st)
	st.ID = s.statSeq
	st.CreatedAt = now
	st.UpdatedAt = now
	s.stats[st.ID] = st
	return &st, nil
}

// Tips

func (s *MemStorage) GetTips(_ context.Context, category string, limit int) ([]domain.Tip, error) {
	s.mu.RLock()
	tips := []domain.Tip{}
	for _, t := range s.tips {
		if category == "" || t.Category == category {
			tips = append(tips, t)
		}
	}
	s.mu.RUnlock()
	// map iteration order is already random; sort so the shuffler alone
	// decides the outcome
	sort.Slice(tips, func(i, j int) bool { return tips[i].ID < tips[j].ID })
	return pickTips(tips, limit, s.opts.shuffle), nil
}

func (s *MemStorage) GetTip(_ context.Context, id int64) (*domain.Tip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tips[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *MemStorage) CreateTip(_ context.Context, in domain.NewTip) (*domain.Tip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tipSeq++
	t := domain.Tip{
		ID:        s.tipSeq,
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		IconName:  in.IconName,
		CreatedAt: s.opts.now(),
	}
	s.tips[t.ID] = t
	return &t, nil
}

func sortWorkouts(ws []domain.Workout) {
	sort.SliceStable(ws, func(i, j int) bool {
		if ws[i].ScheduledFor.Equal(ws[j].ScheduledFor) {
			return ws[i].ID > ws[j].ID
		}
		return ws[i].ScheduledFor.After(ws[j].ScheduledFor)
	})
}

func sortNutritionLogs(ls []domain.NutritionLog) {
	sort.SliceStable(ls, func(i, j int) bool {
		if ls[i].CreatedAt.Equal(ls[j].CreatedAt) {
			return ls[i].ID > ls[j].ID
		}
		return ls[i].CreatedAt.After(ls[j].CreatedAt)
	})
}

func sortActivityLogs(ls []domain.ActivityLog) {
	sort.SliceStable(ls, func(i, j int) bool {
		if ls[i].CreatedAt.Equal(ls[j].CreatedAt) {
			return ls[i].ID > ls[j].ID
		}
		return ls[i].CreatedAt.After(ls[j].CreatedAt)
	})
}
