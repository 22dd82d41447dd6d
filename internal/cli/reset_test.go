package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/aletheia-health/aletheia/internal/db"
	"github.com/aletheia-health/aletheia/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateTemporaryPasswordMinimumLength(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(4)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 8 {
		t.Fatalf("generateTemporaryPassword minimum len = %d, want 8", len(password))
	}
}

func TestGenerateTemporaryPasswordAlphabet(t *testing.T) {
	t.Parallel()

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	password, err := generateTemporaryPassword(24)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 24 {
		t.Fatalf("generateTemporaryPassword len = %d, want 24", len(password))
	}

	for _, char := range password {
		if !strings.ContainsRune(alphabet, char) {
			t.Fatalf("password %q contains char %q outside alphabet", password, char)
		}
	}
}

func TestResetPasswordForcesChangeOnNextLogin(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "reset-test.db")
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	originalHash, err := bcrypt.GenerateFromPassword([]byte("OldPassword1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash original password: %v", err)
	}
	user := models.User{Email: "reset@example.com", Name: "Reset", PasswordHash: string(originalHash)}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	if err := RunResetPasswordCommand(dbPath, "Reset@Example.com"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	reopened, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	var updated models.User
	if err := reopened.Where("email = ?", "reset@example.com").First(&updated).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}

	if !updated.MustChangePassword {
		t.Fatal("expected must_change_password to be set")
	}
	if updated.PasswordHash == string(originalHash) {
		t.Fatal("expected the password hash to change")
	}
}

func TestResetPasswordUnknownUser(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "reset-missing.db")
	if _, err := db.OpenSQLite(dbPath); err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := RunResetPasswordCommand(dbPath, "nobody@example.com"); err == nil {
		t.Fatal("expected an error for an unknown user")
	}
}

func TestResetPasswordRejectsInvalidEmail(t *testing.T) {
	t.Parallel()

	if err := RunResetPasswordCommand(filepath.Join(t.TempDir(), "unused.db"), "not-an-email"); err == nil {
		t.Fatal("expected an error for an invalid email")
	}
}
