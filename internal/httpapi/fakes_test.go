package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"sangha/internal/auth"
	"sangha/internal/cloudinary"
	"sangha/internal/profile"
	"sangha/internal/quiz"
	"sangha/internal/session"
)

type authStore struct {
	mu      sync.Mutex
	users   map[string]auth.User
	refresh map[string]string
}

func (s *authStore) CreateUser(_ context.Context, u auth.User) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return auth.User{}, auth.ErrEmailTaken
		}
	}
	u.ID = uuid.NewString()
	s.users[u.ID] = u
	return u, nil
}

func (s *authStore) find(match func(auth.User) bool) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *authStore) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	return s.find(func(u auth.User) bool { return u.Email == email })
}

func (s *authStore) GetUserByID(_ context.Context, id string) (*auth.User, error) {
	return s.find(func(u auth.User) bool { return u.ID == id })
}

func (s *authStore) GetUserByGoogleSub(context.Context, string) (*auth.User, error) {
	return nil, nil
}

func (s *authStore) LinkGoogle(context.Context, string, string) error { return nil }

func (s *authStore) SaveRefreshToken(_ context.Context, userID, token string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[token] = userID
	return nil
}

func (s *authStore) ConsumeRefreshToken(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.refresh[token]
	if !ok {
		return "", auth.ErrInvalidToken
	}
	delete(s.refresh, token)
	return id, nil
}

func (s *authStore) RevokeRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refresh, token)
	return nil
}

type blacklist struct {
	mu  sync.Mutex
	ids map[string]bool
}

func (b *blacklist) Revoke(_ context.Context, jti string, _ time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ids[jti] = true
	return nil
}

func (b *blacklist) Revoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ids[jti], nil
}

type profileStore struct {
	mu   sync.Mutex
	rows map[string]profile.Profile
}

func (s *profileStore) Insert(_ context.Context, p profile.Profile) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.rows {
		if existing.Email == p.Email {
			return profile.Profile{}, profile.ErrEmailTaken
		}
	}
	s.rows[p.ID] = p
	return p, nil
}

func (s *profileStore) Get(_ context.Context, id string) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *profileStore) GetByEmail(_ context.Context, email string) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.rows {
		if p.Email == email {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (s *profileStore) List(_ context.Context, f profile.Filter) ([]profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []profile.Profile{}
	for _, p := range s.rows {
		if (f.Role == "" || p.Role == f.Role) && (f.Category == "" || p.Category == f.Category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *profileStore) Update(_ context.Context, p profile.Profile) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[p.ID]; !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	s.rows[p.ID] = p
	return p, nil
}

func (s *profileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func (s *profileStore) promote(email string, role profile.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.rows {
		if p.Email == email {
			p.Role = role
			s.rows[id] = p
		}
	}
}

type sessionStore struct {
	mu   sync.Mutex
	rows map[string]session.Session
}

func (s *sessionStore) Insert(_ context.Context, in session.Session) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[in.ID] = in
	return in, nil
}

func (s *sessionStore) Get(_ context.Context, id string) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.rows[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return in, nil
}

func (s *sessionStore) List(context.Context) ([]session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []session.Session{}
	for _, in := range s.rows {
		out = append(out, in)
	}
	return out, nil
}

func (s *sessionStore) ListAttendedBy(ctx context.Context, profileID string) ([]session.Session, error) {
	all, _ := s.List(ctx)
	out := []session.Session{}
	for _, in := range all {
		if in.Attended(profileID) {
			out = append(out, in)
		}
	}
	return out, nil
}

func (s *sessionStore) Update(_ context.Context, in session.Session) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[in.ID] = in
	return in, nil
}

func (s *sessionStore) UpdateAttendees(_ context.Context, id string, fn func([]string) []string) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.rows[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	in.AttendeeIDs = fn(in.AttendeeIDs)
	s.rows[id] = in
	return in, nil
}

func (s *sessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

type quizStore struct {
	mu      sync.Mutex
	rows    map[string]quiz.Quiz
	results []quiz.Result
}

func (s *quizStore) Insert(_ context.Context, q quiz.Quiz) (quiz.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[q.ID] = q
	return q, nil
}

func (s *quizStore) Get(_ context.Context, id string) (quiz.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.rows[id]
	if !ok {
		return quiz.Quiz{}, quiz.ErrNotFound
	}
	return q, nil
}

func (s *quizStore) List(context.Context) ([]quiz.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []quiz.Quiz{}
	for _, q := range s.rows {
		out = append(out, q)
	}
	return out, nil
}

func (s *quizStore) ListBySessions(ctx context.Context, ids []string) ([]quiz.Quiz, error) {
	all, _ := s.List(ctx)
	out := []quiz.Quiz{}
	for _, q := range all {
		for _, id := range ids {
			if q.SessionID != nil && *q.SessionID == id {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

func (s *quizStore) Update(_ context.Context, q quiz.Quiz) (quiz.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[q.ID] = q
	return q, nil
}

func (s *quizStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func (s *quizStore) InsertResult(_ context.Context, r quiz.Result) (quiz.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return r, nil
}

func (s *quizStore) ListResults(_ context.Context, quizID, studentID string) ([]quiz.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []quiz.Result{}
	for _, r := range s.results {
		if (quizID == "" || r.QuizID == quizID) && (studentID == "" || r.StudentID == studentID) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUploader struct {
	kind cloudinary.Kind
	name string
}

func (f *fakeUploader) UploadBytes(_ context.Context, kind cloudinary.Kind, data []byte, filename string) (*cloudinary.UploadResult, error) {
	f.kind, f.name = kind, filename
	return &cloudinary.UploadResult{SecureURL: "https://cdn.example.org/" + filename, Bytes: len(data)}, nil
}

func (f *fakeUploader) UploadBase64(_ context.Context, kind cloudinary.Kind, data string) (*cloudinary.UploadResult, error) {
	f.kind = kind
	if data == "" {
		return nil, cloudinary.ErrEmpty
	}
	return &cloudinary.UploadResult{SecureURL: "https://cdn.example.org/inline"}, nil
}
