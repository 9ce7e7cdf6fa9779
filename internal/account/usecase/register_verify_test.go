package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/backlink/internal/account/entity"
	"github.com/shandysiswandi/backlink/internal/pkg/goerror"
)

func registered(t *testing.T, f fixture) string {
	t.Helper()

	if _, err := f.uc.Register(context.Background(), validRegister()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return f.sender.lastCode(t)
}

func TestUsecase_RegisterVerify(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	code := registered(t, f)
	f.clock.Advance(3 * time.Minute)

	// Act
	out, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{Phone: "+62 (812) 3456-7890", OTP: code})

	// Assert
	if err != nil {
		t.Fatalf("RegisterVerify() error = %v", err)
	}
	if out.AccessToken != "token-publisher" {
		t.Fatalf("AccessToken = %q", out.AccessToken)
	}
	want := entity.User{
		ID:              42,
		Username:        "alice_01",
		Email:           "alice@example.com",
		Phone:           normalizedPhone,
		Role:            entity.RolePublisher,
		PhoneVerifiedAt: f.clock.Now(),
		CreatedAt:       f.clock.Now(),
	}
	got := out.User
	got.PasswordHash = ""
	if got != want {
		t.Fatalf("User = %+v, want %+v", got, want)
	}
	if _, ok := f.repo.users[42]; !ok {
		t.Fatalf("user was not persisted")
	}
}

func TestUsecase_RegisterVerifySingleUse(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	code := registered(t, f)
	ctx := context.Background()
	if _, err := f.uc.RegisterVerify(ctx, RegisterVerifyInput{Phone: normalizedPhone, OTP: code}); err != nil {
		t.Fatalf("RegisterVerify() error = %v", err)
	}

	// Act
	_, err := f.uc.RegisterVerify(ctx, RegisterVerifyInput{Phone: normalizedPhone, OTP: code})

	// Assert
	assertCode(t, err, goerror.CodeBadRequest)
}

func TestUsecase_RegisterVerifyAttempts(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	code := registered(t, f)
	ctx := context.Background()
	wrong := RegisterVerifyInput{Phone: normalizedPhone, OTP: "999999"}

	// Act & Assert
	for _, remaining := range []int{2, 1, 0} {
		_, err := f.uc.RegisterVerify(ctx, wrong)
		gerr := assertCode(t, err, goerror.CodeBadRequest)
		if got := gerr.Fields()["attempts_remaining"]; got != remaining {
			t.Fatalf("attempts_remaining = %v (%T), want %d", got, got, remaining)
		}
	}

	_, err := f.uc.RegisterVerify(ctx, RegisterVerifyInput{Phone: normalizedPhone, OTP: code})
	gerr := assertCode(t, err, goerror.CodeBadRequest)
	if gerr.Msg() != "Too many failed attempts. Please register again." {
		t.Fatalf("message = %q", gerr.Msg())
	}

	_, err = f.uc.RegisterVerify(ctx, RegisterVerifyInput{Phone: normalizedPhone, OTP: code})
	gerr = assertCode(t, err, goerror.CodeBadRequest)
	if gerr.Msg() != "No pending verification for this phone number. Please register again." {
		t.Fatalf("message = %q", gerr.Msg())
	}
}

func TestUsecase_RegisterVerifyExpired(t *testing.T) {
	// Arrange
	f := newFixture(t, nil)
	code := registered(t, f)
	f.clock.Advance(10*time.Minute + time.Second)

	// Act
	_, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{Phone: normalizedPhone, OTP: code})

	// Assert
	gerr := assertCode(t, err, goerror.CodeBadRequest)
	if gerr.Msg() != "Verification code expired. Please register again." {
		t.Fatalf("message = %q", gerr.Msg())
	}
}

func TestUsecase_RegisterVerifyValidation(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterVerifyInput
	}{
		{name: "short code", in: RegisterVerifyInput{Phone: normalizedPhone, OTP: "123"}},
		{name: "letters", in: RegisterVerifyInput{Phone: normalizedPhone, OTP: "12345a"}},
		{name: "missing phone", in: RegisterVerifyInput{OTP: "123456"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture(t, nil)

			// Act
			_, err := f.uc.RegisterVerify(context.Background(), tt.in)

			// Assert
			assertCode(t, err, goerror.CodeInvalidInput)
		})
	}
}

func TestUsecase_RegisterVerifyCreateUserErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want goerror.Code
	}{
		{name: "conflict", err: goerror.ErrConflict, want: goerror.CodeConflict},
		{name: "database down", err: errors.New("connection reset"), want: goerror.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture(t, nil)
			code := registered(t, f)
			f.repo.createErr = tt.err

			// Act
			_, err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{Phone: normalizedPhone, OTP: code})

			// Assert
			assertCode(t, err, tt.want)
		})
	}
}
