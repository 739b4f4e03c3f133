package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yusufkecer/fitness-tracker-backend/internal/domain"
	"github.com/yusufkecer/fitness-tracker-backend/internal/middleware"
	"github.com/yusufkecer/fitness-tracker-backend/internal/repository"
)

const testSecret = "test-secret"

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

type testServer struct {
	store  *repository.MemStorage
	router http.Handler
}

func newTestServer(t *testing.T, mutate ...func(*Deps)) *testServer {
	t.Helper()
	store := repository.NewMemStorage(
		repository.WithShuffler(func(int, func(i, j int)) {}),
	)
	deps := Deps{
		Store:          store,
		Logger:         zerolog.Nop(),
		Metrics:        middleware.NewMetrics(),
		JWTSecret:      testSecret,
		AllowedOrigins: "*",
		DemoUserID:     1,
		Now:            func() time.Time { return testNow },
	}
	for _, m := range mutate {
		m(&deps)
	}
	return &testServer{store: store, router: NewRouter(deps)}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, userID int64) []string {
	t.Helper()
	token, err := middleware.GenerateToken(userID, "user", testSecret)
	require.NoError(t, err)
	return []string{"Authorization", "Bearer " + token}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func goalBody() map[string]interface{} {
	return map[string]interface{}{
		"title":        "Run 50mi",
		"description":  "Run 50 miles this month",
		"targetValue":  50,
		"currentValue": 0,
		"unit":         "mi",
		"startDate":    "2024-06-01",
		"endDate":      "2024-06-30",
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestGoalCRUD(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/goals", goalBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Goal](t, rec)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(1), created.UserID)
	assert.False(t, created.CreatedAt.IsZero())

	rec = srv.do(t, http.MethodPatch, "/api/goals/1", map[string]interface{}{"currentValue": 31})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[domain.Goal](t, rec)
	assert.Equal(t, 31, updated.CurrentValue)
	assert.Equal(t, "Run 50mi", updated.Title)

	rec = srv.do(t, http.MethodGet, "/api/goals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	goals := decode[[]domain.Goal](t, rec)
	require.Len(t, goals, 1)
	assert.Equal(t, "2024-06-30", goals[0].EndDate.String())

	rec = srv.do(t, http.MethodDelete, "/api/goals/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = srv.do(t, http.MethodDelete, "/api/goals/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGoalValidation(t *testing.T) {
	srv := newTestServer(t)

	body := goalBody()
	delete(body, "title")
	body["startDate"] = "June first"

	rec := srv.do(t, http.MethodPost, "/api/goals", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[errorResponse](t, rec)
	assert.Equal(t, "validation error", resp.Error)
	require.NotEmpty(t, resp.Errors)

	rec = srv.do(t, http.MethodPost, "/api/goals", map[string]interface{}{"unit": "mi"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp = decode[errorResponse](t, rec)
	fields := map[string]bool{}
	for _, f := range resp.Errors {
		fields[f.Field] = true
	}
	assert.True(t, fields["title"])
	assert.True(t, fields["targetValue"])
	assert.True(t, fields["startDate"])
	assert.False(t, fields["unit"])

	rec = srv.do(t, http.MethodPost, "/api/goals", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/goals", `{"title":"x","targetValue":"fifty"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp = decode[errorResponse](t, rec)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "targetValue", resp.Errors[0].Field)

	rec = srv.do(t, http.MethodPatch, "/api/goals/abc", map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	goals, err := srv.store.GetGoals(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestGoalOwnership(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/goals", goalBody(), bearer(t, 1)...)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodPatch, "/api/goals/1", map[string]interface{}{"title": "stolen"}, bearer(t, 2)...)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/goals/1", nil, bearer(t, 2)...)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	goal, err := srv.store.GetGoal(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, goal)
	assert.Equal(t, "Run 50mi", goal.Title)

	rec = srv.do(t, http.MethodGet, "/api/goals", nil, bearer(t, 2)...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = srv.do(t, http.MethodPatch, "/api/goals/99", map[string]interface{}{"title": "x"}, bearer(t, 2)...)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorkoutCompletionStamp(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/workouts", map[string]interface{}{
		"title":        "Evening Run",
		"duration":     30,
		"scheduledFor": "2024-06-15T19:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Workout](t, rec)
	assert.Equal(t, domain.WorkoutScheduled, created.Status)
	assert.Nil(t, created.CompletedAt)

	rec = srv.do(t, http.MethodPatch, "/api/workouts/1", map[string]interface{}{"status": "in_progress"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[domain.Workout](t, rec).CompletedAt)

	rec = srv.do(t, http.MethodPatch, "/api/workouts/1", map[string]interface{}{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code)
	completed := decode[domain.Workout](t, rec)
	require.NotNil(t, completed.CompletedAt)
	assert.True(t, completed.CompletedAt.Equal(testNow))

	rec = srv.do(t, http.MethodPatch, "/api/workouts/1", map[string]interface{}{"status": "cancelled"})
	require.Equal(t, http.StatusOK, rec.Code)
	cancelled := decode[domain.Workout](t, rec)
	require.NotNil(t, cancelled.CompletedAt)
	assert.True(t, cancelled.CompletedAt.Equal(testNow))

	rec = srv.do(t, http.MethodPatch, "/api/workouts/1", map[string]interface{}{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkoutCreatedCompleted(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/workouts", map[string]interface{}{
		"title":        "Upper Body Strength",
		"duration":     45,
		"status":       "completed",
		"scheduledFor": "2024-06-15T09:30:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[domain.Workout](t, rec)
	require.NotNil(t, created.CompletedAt)
	assert.True(t, created.CompletedAt.Equal(testNow))
}

// readBarrier holds each GetWorkout until every expected reader has arrived,
// so concurrent requests all pass their ownership check before any writes.
type readBarrier struct {
	repository.Storage
	arrived sync.WaitGroup
}

func (b *readBarrier) GetWorkout(ctx context.Context, id int64) (*domain.Workout, error) {
	w, err := b.Storage.GetWorkout(ctx, id)
	b.arrived.Done()
	b.arrived.Wait()
	return w, err
}

func TestWorkoutConcurrentCompletionKeepsFirstStamp(t *testing.T) {
	store := repository.NewMemStorage()
	_, err := store.CreateWorkout(context.Background(), domain.NewWorkout{
		UserID:       1,
		Title:        "Evening Run",
		Duration:     30,
		Status:       domain.WorkoutScheduled,
		ScheduledFor: testNow.Add(7 * time.Hour),
	})
	require.NoError(t, err)

	const requests = 2
	barrier := &readBarrier{Storage: store}
	barrier.arrived.Add(requests)
	var ticks atomic.Int64
	srv := newTestServer(t, func(d *Deps) {
		d.Store = barrier
		d.Now = func() time.Time { return testNow.Add(time.Duration(ticks.Add(1)) * time.Second) }
	})

	recs := make([]*httptest.ResponseRecorder, requests)
	var wg sync.WaitGroup
	for i := range recs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPatch, "/api/workouts/1", strings.NewReader(`{"status":"completed"}`))
			req.Header.Set("Content-Type", "application/json")
			recs[i] = httptest.NewRecorder()
			srv.router.ServeHTTP(recs[i], req)
		}(i)
	}
	wg.Wait()

	stored, err := store.GetWorkout(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAt)
	for _, rec := range recs {
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decode[domain.Workout](t, rec)
		require.NotNil(t, got.CompletedAt)
		assert.True(t, got.CompletedAt.Equal(*stored.CompletedAt))
	}
}

func TestWorkoutPatchClearsDescription(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/workouts", map[string]interface{}{
		"title":          "Evening Run",
		"description":    "5K",
		"duration":       30,
		"caloriesBurned": 280,
		"scheduledFor":   "2024-06-15T19:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPatch, "/api/workouts/1", `{"description":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[domain.Workout](t, rec)
	assert.Nil(t, updated.Description)
	require.NotNil(t, updated.CaloriesBurned)
	assert.Equal(t, 280, *updated.CaloriesBurned)

	rec = srv.do(t, http.MethodPatch, "/api/workouts/1", `{"caloriesBurned":"lots"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkoutOwnership(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/workouts", map[string]interface{}{
		"title":        "Evening Run",
		"duration":     30,
		"scheduledFor": "2024-06-15T19:00:00Z",
	}, bearer(t, 1)...)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(t, http.MethodPatch, "/api/workouts/1", map[string]interface{}{"status": "completed"}, bearer(t, 2)...)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	workout, err := srv.store.GetWorkout(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutScheduled, workout.Status)
	assert.Nil(t, workout.CompletedAt)

	rec = srv.do(t, http.MethodDelete, "/api/workouts/1", nil, bearer(t, 1)...)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNutritionLogs(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []map[string]interface{}{
		{"mealType": "breakfast", "description": "Oatmeal", "calories": 460, "date": "2024-06-15"},
		{"mealType": "lunch", "description": "Salad", "calories": 650, "date": "2024-06-16"},
	} {
		rec := srv.do(t, http.MethodPost, "/api/nutrition", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := srv.do(t, http.MethodGet, "/api/nutrition?date=2024-06-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	logs := decode[[]domain.NutritionLog](t, rec)
	require.Len(t, logs, 1)
	assert.Equal(t, "Oatmeal", logs[0].Description)

	rec = srv.do(t, http.MethodGet, "/api/nutrition", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.NutritionLog](t, rec), 2)

	rec = srv.do(t, http.MethodGet, "/api/nutrition?date=15/06/2024", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/nutrition", map[string]interface{}{
		"mealType": "brunch", "description": "Pancakes", "calories": 500, "date": "2024-06-15",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/nutrition/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = srv.do(t, http.MethodDelete, "/api/nutrition/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestActivityLogs(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/activities", map[string]interface{}{
		"activityType": "hydration",
		"description":  "Hydration Goal",
		"duration":     0,
		"date":         "2024-06-15T08:00:00Z",
		"status":       "in_progress",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/api/activities?date=2024-06-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]domain.ActivityLog](t, rec), 1)

	rec = srv.do(t, http.MethodPatch, "/api/activities/1", map[string]interface{}{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", decode[domain.ActivityLog](t, rec).Status)

	rec = srv.do(t, http.MethodPatch, "/api/activities/1", `{"caloriesBurned":120}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, decode[domain.ActivityLog](t, rec).CaloriesBurned)

	rec = srv.do(t, http.MethodPatch, "/api/activities/1", `{"caloriesBurned":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := decode[domain.ActivityLog](t, rec)
	assert.Nil(t, cleared.CaloriesBurned)
	assert.Equal(t, "completed", cleared.Status)

	rec = srv.do(t, http.MethodPatch, "/api/activities/42", map[string]interface{}{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/activities/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = srv.do(t, http.MethodDelete, "/api/activities/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStatsDefaultsAndUpsert(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"userId": 1,
		"date": "2024-06-15",
		"steps": 0,
		"calories": 0,
		"caloriesGoal": 2200,
		"waterIntake": 0,
		"waterGoal": 2500,
		"sleepHours": 0,
		"sleepGoal": 8
	}`, rec.Body.String())

	rec = srv.do(t, http.MethodPost, "/api/stats", map[string]interface{}{"date": "2024-06-15", "steps": 8946})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[domain.Stat](t, rec)

	rec = srv.do(t, http.MethodPost, "/api/stats", map[string]interface{}{"date": "2024-06-15", "waterIntake": 1800})
	require.Equal(t, http.StatusCreated, rec.Code)
	second := decode[domain.Stat](t, rec)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 8946, second.Steps)
	assert.Equal(t, 1800, second.WaterIntake)

	rec = srv.do(t, http.MethodGet, "/api/stats?date=2024-06-15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[domain.Stat](t, rec)
	assert.Equal(t, first.ID, got.ID)

	rec = srv.do(t, http.MethodPost, "/api/stats", map[string]interface{}{"steps": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTips(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	for _, tip := range []domain.NewTip{
		{Title: "Hydration Reminder", Category: "hydration", IconName: "bx-droplet"},
		{Title: "Today's Motivation", Category: "motivation", IconName: "bx-heart"},
		{Title: "Stretch", Category: "recovery", IconName: "bx-body"},
	} {
		_, err := srv.store.CreateTip(ctx, tip)
		require.NoError(t, err)
	}

	rec := srv.do(t, http.MethodGet, "/api/tips", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Tip](t, rec), 2)

	rec = srv.do(t, http.MethodGet, "/api/tips?category=motivation&limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tips := decode[[]domain.Tip](t, rec)
	require.Len(t, tips, 1)
	assert.Equal(t, "Today's Motivation", tips[0].Title)

	rec = srv.do(t, http.MethodGet, "/api/tips?limit=lots", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username": "janedoe",
		"password": "secret123",
		"name":     "Jane Doe",
		"email":    "Jane@Example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	registered := decode[domain.TokenResponse](t, rec)
	assert.NotEmpty(t, registered.Token)
	require.NotNil(t, registered.User)
	assert.Equal(t, "jane@example.com", registered.User.Email)
	assert.NotContains(t, rec.Body.String(), "secret123")
	assert.NotContains(t, rec.Body.String(), "password")

	rec = srv.do(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username": "janedoe",
		"password": "another1",
		"name":     "Jane Again",
		"email":    "jane2@example.com",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/auth/login", map[string]interface{}{"username": "janedoe", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/auth/login", map[string]interface{}{"username": "janedoe", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[domain.TokenResponse](t, rec)
	require.NotEmpty(t, login.Token)

	rec = srv.do(t, http.MethodGet, "/api/user", nil, "Authorization", "Bearer "+login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[domain.User](t, rec)
	assert.Equal(t, registered.User.ID, me.ID)
	assert.Equal(t, "janedoe", me.Username)
}

func TestMeUsesDemoIdentityWithoutToken(t *testing.T) {
	srv := newTestServer(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = srv.store.CreateUser(context.Background(), domain.NewUser{
		Username: "johnsmith", Password: string(hash), Name: "John Smith", Email: "john@example.com",
	})
	require.NoError(t, err)

	rec := srv.do(t, http.MethodGet, "/api/user", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "johnsmith", decode[domain.User](t, rec).Username)

	rec = srv.do(t, http.MethodGet, "/api/user", nil, "Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginDisabledWithoutSecret(t *testing.T) {
	srv := newTestServer(t, func(d *Deps) { d.JWTSecret = "" })

	rec := srv.do(t, http.MethodPost, "/api/auth/login", map[string]interface{}{"username": "a", "password": "b"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username": "janedoe", "password": "secret123", "name": "Jane", "email": "jane@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, decode[domain.TokenResponse](t, rec).Token)
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t, func(d *Deps) { d.AuthRequired = true })

	rec := srv.do(t, http.MethodGet, "/api/goals", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/goals", nil, bearer(t, 3)...)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKey(t *testing.T) {
	srv := newTestServer(t, func(d *Deps) { d.APIKey = "k3y" })

	rec := srv.do(t, http.MethodGet, "/api/goals", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/goals", nil, "X-API-Key", "k3y")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsCountRoutes(t *testing.T) {
	srv := newTestServer(t)

	srv.do(t, http.MethodGet, "/api/goals", nil)
	srv.do(t, http.MethodGet, "/api/goals", nil)

	rec := srv.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fitness_http_requests_total{code="200",method="GET",route="/api/goals"} 2`)
}
