package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/backlink/internal/account/entity"
	"github.com/shandysiswandi/backlink/internal/pkg/clock"
	"github.com/shandysiswandi/backlink/internal/pkg/goerror"
	"github.com/shandysiswandi/backlink/internal/pkg/hash"
	"github.com/shandysiswandi/backlink/internal/pkg/instrument"
	"github.com/shandysiswandi/backlink/internal/pkg/jwt"
	"github.com/shandysiswandi/backlink/internal/pkg/otp"
	"github.com/shandysiswandi/backlink/internal/pkg/validator"
)

type fakeRepo struct {
	mu        sync.Mutex
	users     map[int64]entity.User
	getErr    error
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int64]entity.User{}}
}

func (r *fakeRepo) find(match func(entity.User) bool) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, u := range r.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (r *fakeRepo) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

func (r *fakeRepo) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username })
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r *fakeRepo) GetUserByPhone(_ context.Context, phone string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Phone == phone })
}

func (r *fakeRepo) CreateUser(_ context.Context, user entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email || u.Phone == user.Phone {
			return goerror.ErrConflict
		}
	}
	r.users[user.ID] = user
	return nil
}

type recordingSender struct {
	mu   sync.Mutex
	sent []otp.Delivery
	fail error
}

func (s *recordingSender) Send(_ context.Context, d otp.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, d)
	return s.fail
}

func (s *recordingSender) lastCode(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sent) == 0 {
		t.Fatalf("no code was sent")
	}
	return s.sent[len(s.sent)-1].Code
}

type staticID int64

func (s staticID) Generate() int64 { return int64(s) }

type fakeJWT struct{}

func (fakeJWT) Generate(sub jwt.Subject) (string, error) { return "token-" + sub.Role, nil }

func (fakeJWT) Verify(string) (jwt.Claims, error) { return jwt.Claims{}, jwt.ErrInvalidToken }

type fixture struct {
	uc     *Usecase
	repo   *fakeRepo
	sender *recordingSender
	clock  *clock.Manual
	bcrypt hash.Hash
}

func newFixture(t *testing.T, mutate func(*otp.Config[entity.PendingRegistration])) fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	f := fixture{
		repo:   newFakeRepo(),
		sender: &recordingSender{},
		clock:  clock.NewManual(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)),
		bcrypt: hash.NewBcrypt(4, "pepper"),
	}

	cfg := otp.Config[entity.PendingRegistration]{
		Store:  otp.NewMemoryStore[entity.PendingRegistration](4),
		Sender: f.sender,
		Clock:  f.clock,
	}
	codes := []string{"111111", "222222", "333333"}
	var mu sync.Mutex
	next := 0
	cfg.Codes = otp.CodeGeneratorFunc(func() (string, error) {
		mu.Lock()
		defer mu.Unlock()

		c := codes[next%len(codes)]
		next++
		return c, nil
	})
	if mutate != nil {
		mutate(&cfg)
	}

	f.uc = New(Dependency{
		RepoDB:     f.repo,
		Registry:   otp.NewRegistry(cfg),
		Validator:  v,
		Bcrypt:     f.bcrypt,
		UID:        staticID(42),
		Clock:      f.clock,
		JWT:        fakeJWT{},
		Instrument: instrument.NewNoop(),
	})
	return f
}

func validRegister() RegisterInput {
	return RegisterInput{
		Username: "alice_01",
		Email:    " Alice@Example.com ",
		Password: "correct-horse",
		Phone:    "+62 812-3456-7890",
		Role:     "Publisher",
	}
}

const normalizedPhone = "+6281234567890"

func assertCode(t *testing.T, err error, want goerror.Code) *goerror.Error {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *goerror.Error, got %v", err)
	}
	if gerr.Code() != want {
		t.Fatalf("code = %s, want %s (err: %v)", gerr.Code(), want, err)
	}
	return gerr
}
