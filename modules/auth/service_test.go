package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/example/task-tracker/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestService creates an AuthService backed by an in-memory SQLite
// database.
func setupTestService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	jwtConfig := JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 24 * time.Hour,
		Issuer:        "test-issuer",
	}
	return NewAuthService(NewUserRepository(db), NewPasswordHasher(), NewJWTManager(jwtConfig))
}

func TestAuthService_Register(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, "Alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Register() user.ID is empty")
	}
	if user.Name != "Alice" {
		t.Errorf("user.Name = %q, want %q", user.Name, "Alice")
	}
	if user.PasswordHash == "secret123" {
		t.Error("Register() stored the password in plaintext")
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{name: "missing name", userName: "", email: "a@example.com", password: "pw123456"},
		{name: "missing email", userName: "Alice", email: "", password: "pw123456"},
		{name: "missing password", userName: "Alice", email: "a@example.com", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.userName, tt.email, tt.password)
			if !errors.Is(err, ErrMissingFields) {
				t.Errorf("Register() error = %v, want ErrMissingFields", err)
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("Register() setup error = %v", err)
	}

	// Duplicate registration fails identically regardless of the password.
	for _, password := range []string{"secret123", "differentpw"} {
		_, err := service.Register(ctx, "Other Alice", "alice@example.com", password)
		if !errors.Is(err, ErrUserExists) {
			t.Errorf("Register() with password %q error = %v, want ErrUserExists", password, err)
		}
	}
}

func TestAuthService_Login(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, "Bob", "bob@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register() setup error = %v", err)
	}

	result, err := service.Login(ctx, "bob@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if result.Token == "" {
		t.Error("Login() returned empty token")
	}
	if result.User.ID != registered.ID {
		t.Errorf("result.User.ID = %q, want %q", result.User.ID, registered.ID)
	}
	if result.User.Email != "bob@example.com" {
		t.Errorf("result.User.Email = %q, want %q", result.User.Email, "bob@example.com")
	}

	// The token must carry the identity claims.
	claims, err := service.ValidateToken(ctx, result.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != registered.ID {
		t.Errorf("claims.UserID = %q, want %q", claims.UserID, registered.ID)
	}
	if claims.Name != "Bob" {
		t.Errorf("claims.Name = %q, want %q", claims.Name, "Bob")
	}
}

func TestAuthService_Login_IdenticalFailures(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "Carol", "carol@example.com", "correcthorse"); err != nil {
		t.Fatalf("Register() setup error = %v", err)
	}

	_, wrongPassErr := service.Login(ctx, "carol@example.com", "wrongpassword")
	_, unknownEmailErr := service.Login(ctx, "nobody@example.com", "correcthorse")

	if !errors.Is(wrongPassErr, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPassErr)
	}
	if !errors.Is(unknownEmailErr, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknownEmailErr)
	}
	if wrongPassErr.Error() != unknownEmailErr.Error() {
		t.Errorf("login failures differ: %q vs %q", wrongPassErr, unknownEmailErr)
	}
}

func TestAuthService_ListUsers(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for i, email := range emails {
		if _, err := service.Register(ctx, "User "+string(rune('A'+i)), email, "password1"); err != nil {
			t.Fatalf("Register() setup error = %v", err)
		}
	}

	users, err := service.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}

	if len(users) != len(emails) {
		t.Fatalf("ListUsers() returned %d users, want %d", len(users), len(emails))
	}
	for _, u := range users {
		if u.ID == "" || u.Name == "" || u.Email == "" {
			t.Errorf("ListUsers() returned incomplete user: %+v", u)
		}
	}
}
