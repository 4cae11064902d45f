package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/nfrund/signupboard/internal/domain"
)

// DefaultActivities is a small collection in the shape the activities service
// serves.
const DefaultActivities = `{
	"Chess Club": {
		"description": "Learn strategies and compete in chess tournaments",
		"schedule": "Fridays, 3:30 PM - 5:00 PM",
		"max_participants": 2,
		"participants": ["michael@mergington.edu"]
	},
	"Programming Class": {
		"description": "Learn programming fundamentals and build software projects",
		"schedule": "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
		"max_participants": 20,
		"participants": []
	}
}`

// Request is one write call the fake service received.
type Request struct {
	Method   string
	Activity string
	Email    string
}

// ActivitiesServer is an in-memory activities service behind httptest. It
// answers like the real one: duplicate sign-ups and removals of absent
// students are 400s with a detail message, unknown activities are 404s.
type ActivitiesServer struct {
	*httptest.Server

	mu         sync.Mutex
	activities *domain.Collection
	requests   []Request
	listStatus int
}

// NewActivitiesServer starts a fake service seeded with the given collection
// JSON and stops it when the test ends.
func NewActivitiesServer(t *testing.T, seed string) *ActivitiesServer {
	t.Helper()

	activities, err := domain.ParseCollection([]byte(seed))
	if err != nil {
		t.Fatalf("invalid seed collection: %v", err)
	}

	s := &ActivitiesServer{activities: activities}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /activities", s.list)
	mux.HandleFunc("POST /activities/{name}/signup", s.signup)
	mux.HandleFunc("DELETE /activities/{name}/participants", s.unregister)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// FailList makes GET /activities answer with status and an empty body.
func (s *ActivitiesServer) FailList(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listStatus = status
}

// Requests returns the write calls received so far.
func (s *ActivitiesServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Participants returns the service's current participants of activity.
func (s *ActivitiesServer) Participants(activity string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.activities.Get(activity); ok {
		return append([]string(nil), a.Participants...)
	}
	return nil
}

func (s *ActivitiesServer) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listStatus != 0 {
		w.WriteHeader(s.listStatus)
		return
	}
	writeJSON(w, http.StatusOK, s.activities)
}

func (s *ActivitiesServer) signup(w http.ResponseWriter, r *http.Request) {
	name, email := r.PathValue("name"), r.URL.Query().Get("email")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, Request{Method: r.Method, Activity: name, Email: email})

	a, ok := s.activities.Get(name)
	switch {
	case !ok:
		writeDetail(w, http.StatusNotFound, "Activity not found")
	case a.HasParticipant(email):
		writeDetail(w, http.StatusBadRequest, "Student already signed up for this activity")
	case isFull(a):
		writeDetail(w, http.StatusBadRequest, "Activity is full")
	default:
		s.activities.AddParticipant(name, email)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Signed up " + email + " for " + name})
	}
}

func (s *ActivitiesServer) unregister(w http.ResponseWriter, r *http.Request) {
	name, email := r.PathValue("name"), r.URL.Query().Get("email")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, Request{Method: r.Method, Activity: name, Email: email})

	if _, ok := s.activities.Get(name); !ok {
		writeDetail(w, http.StatusNotFound, "Activity not found")
		return
	}
	if !s.activities.RemoveParticipant(name, email) {
		writeDetail(w, http.StatusBadRequest, "Student is not signed up for this activity")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Unregistered " + email + " from " + name})
}

func isFull(a *domain.Activity) bool {
	remaining, limited := a.RemainingSpots()
	return limited && remaining == 0
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
