package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/exercise-tracker/internal/application"
	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/exercise-tracker/internal/infrastructure/memory"
	"github.com/oksasatya/exercise-tracker/internal/interface/middleware"
	"github.com/oksasatya/exercise-tracker/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	m.Run()
}

type stubSearcher struct {
	users []entity.User
	err   error
	q     string
	size  int
}

func (s *stubSearcher) SearchUsers(_ context.Context, q string, size int) ([]entity.User, error) {
	s.q, s.size = q, size
	return s.users, s.err
}

type testServer struct {
	engine *gin.Engine
	users  *application.UserService
	search *stubSearcher
}

func newTestServer(search *stubSearcher) *testServer {
	store := memory.NewStore()
	users := application.NewUserService(store.Users(), nil, nil)
	exercises := application.NewExerciseService(store.Exercises(), users, nil, nil)

	var searcher UserSearcher
	if search != nil {
		searcher = search
	}
	uh := NewUserHandler(users, searcher, nil)
	eh := NewExerciseHandler(exercises, nil)

	r := gin.New()
	r.Use(middleware.ErrorHandler(nil))
	r.NoRoute(middleware.NotFound())
	r.GET("/", Index)
	r.GET("/healthz", Healthz)
	g := r.Group("/api/exercise")
	g.GET("", uh.FindByUsername)
	g.GET("/log", eh.Log)
	g.GET("/users/search", uh.Search)
	g.POST("/new-user", uh.NewUser)
	g.POST("/add", eh.Add)
	return &testServer{engine: r, users: users, search: search}
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (s *testServer) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) mustUser(t *testing.T, name string) *entity.User {
	t.Helper()
	u, err := s.users.Create(context.Background(), name)
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	s := newTestServer(nil)

	w := s.postForm("/api/exercise/new-user", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "alice", got["username"])
	require.NotEmpty(t, got["user_id"])
	require.Len(t, got, 2)

	w = s.postJSON("/api/exercise/new-user", `{"username":"alice"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"error":"Username already exists"}`, w.Body.String())

	w = s.postJSON("/api/exercise/new-user", `{"username":"bob"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"username":"bob"`)
}

func TestNewUserValidation(t *testing.T) {
	s := newTestServer(nil)

	w := s.postForm("/api/exercise/new-user", url.Values{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "username is required", w.Body.String())

	w = s.postJSON("/api/exercise/new-user", `{"username":}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid json", w.Body.String())
}

func TestFindByUsername(t *testing.T) {
	s := newTestServer(nil)
	u := s.mustUser(t, "alice")

	w := s.get("/api/exercise?username=alice")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[{"user_id":"`+u.ID+`","username":"alice"}]`, w.Body.String())

	w = s.get("/api/exercise?username=nobody")
	require.JSONEq(t, `[]`, w.Body.String())

	w = s.get("/api/exercise")
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestAddExercise(t *testing.T) {
	s := newTestServer(nil)
	u := s.mustUser(t, "alice")

	w := s.postForm("/api/exercise/add", url.Values{
		"userId":      {u.ID},
		"description": {"run"},
		"duration":    {"30"},
		"date":        {"2024-01-02"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"user_id":"`+u.ID+`","description":"run","duration":30,"date":"2024-01-02"}`, w.Body.String())

	w = s.postJSON("/api/exercise/add", `{"userId":"`+u.ID+`","description":"swim","duration":12.5,"date":"2024-01-03"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"user_id":"`+u.ID+`","description":"swim","duration":12.5,"date":"2024-01-03"}`, w.Body.String())

	w = s.postJSON("/api/exercise/add", `{"userId":"`+u.ID+`","duration":1e2,"date":"2024-01-04"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"user_id":"`+u.ID+`","description":"","duration":100,"date":"2024-01-04"}`, w.Body.String())

	w = s.postJSON("/api/exercise/add", `{"userId":"`+u.ID+`","duration":"45","date":"2024-01-05"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"duration":45`)
}

func TestAddExerciseErrors(t *testing.T) {
	s := newTestServer(nil)
	u := s.mustUser(t, "alice")

	tests := []struct {
		name   string
		form   url.Values
		status int
		body   string
	}{
		{"unknown user", url.Values{"userId": {"6f1c3f5e-6a57-4b0e-9d2b-0a4c7c1f2e11"}, "duration": {"5"}, "date": {"2024-01-01"}}, http.StatusOK, `{"error":"User not found."}`},
		{"unknown user with bad date", url.Values{"userId": {"6f1c3f5e-6a57-4b0e-9d2b-0a4c7c1f2e11"}, "duration": {"30"}, "date": {"not-a-date"}}, http.StatusOK, `{"error":"User not found."}`},
		{"unknown user without duration or date", url.Values{"userId": {"6f1c3f5e-6a57-4b0e-9d2b-0a4c7c1f2e11"}}, http.StatusOK, `{"error":"User not found."}`},
		{"missing user id", url.Values{"duration": {"long"}}, http.StatusOK, `{"error":"User not found."}`},
		{"missing duration", url.Values{"userId": {u.ID}, "date": {"2024-01-01"}}, http.StatusBadRequest, "duration is required"},
		{"non-numeric duration", url.Values{"userId": {u.ID}, "duration": {"long"}, "date": {"2024-01-01"}}, http.StatusBadRequest, "duration must be numeric"},
		{"missing date", url.Values{"userId": {u.ID}, "duration": {"5"}}, http.StatusBadRequest, "date is required"},
		{"bad date", url.Values{"userId": {u.ID}, "duration": {"5"}, "date": {"yesterday"}}, http.StatusBadRequest, "date must be a valid date (YYYY-MM-DD)"},
		{"infinite duration", url.Values{"userId": {u.ID}, "duration": {"Inf"}, "date": {"2024-01-01"}}, http.StatusBadRequest, "duration must be numeric"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.postForm("/api/exercise/add", tt.form)
			require.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				require.JSONEq(t, tt.body, w.Body.String())
			} else {
				require.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestLog(t *testing.T) {
	s := newTestServer(nil)
	u := s.mustUser(t, "alice")
	for _, f := range []url.Values{
		{"userId": {u.ID}, "description": {"run"}, "duration": {"30"}, "date": {"2024-01-01"}},
		{"userId": {u.ID}, "description": {"swim"}, "duration": {"45"}, "date": {"2024-01-05"}},
	} {
		require.Equal(t, http.StatusOK, s.postForm("/api/exercise/add", f).Code)
	}

	var list []map[string]any
	w := s.get("/api/exercise/log?userId=" + u.ID + "&from=2024-01-03")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "swim", list[0]["description"])

	w = s.get("/api/exercise/log?userId=" + u.ID + "&limit=0")
	require.JSONEq(t, `[]`, w.Body.String())

	w = s.get("/api/exercise/log?userId=" + u.ID + "&limit=nope")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)

	w = s.get("/api/exercise/log")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"error":"UserId is not provided."}`, w.Body.String())

	w = s.get("/api/exercise/log?userId=unknown")
	require.JSONEq(t, `{"error":"User not found."}`, w.Body.String())

	w = s.get("/api/exercise/log?userId=" + u.ID + "&to=01-05-2024")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "to must be a valid date (YYYY-MM-DD)", w.Body.String())
}

func TestSearch(t *testing.T) {
	stub := &stubSearcher{users: []entity.User{{ID: "id-1", Username: "alice"}}}
	s := newTestServer(stub)

	w := s.get("/api/exercise/users/search?q=al&size=5")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[{"user_id":"id-1","username":"alice"}]`, w.Body.String())
	require.Equal(t, "al", stub.q)
	require.Equal(t, 5, stub.size)

	w = s.get("/api/exercise/users/search")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "q is required", w.Body.String())

	stub.err = errors.New("es down")
	w = s.get("/api/exercise/users/search?q=al")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Internal Server Error", w.Body.String())
}

func TestSearchDisabled(t *testing.T) {
	s := newTestServer(nil)
	w := s.get("/api/exercise/users/search?q=al")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestPages(t *testing.T) {
	s := newTestServer(nil)

	w := s.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = s.get("/healthz")
	require.Equal(t, "ok", w.Body.String())

	w = s.get("/api/nothing-here")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "not found", w.Body.String())
}
