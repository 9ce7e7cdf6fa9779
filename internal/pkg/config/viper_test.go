package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

const sample = `
app:
  name: backlink
  debug: true
otp:
  ttl_minutes: 10
  max_attempts: 3
  resend_cooldown_seconds: 30
  sweep_ratio: 0.5
instrument:
  log_mask_fields: "password, otp,,code "
jwt:
  secret: "c2VjcmV0"
`

func TestViper_Getters(t *testing.T) {
	// Arrange
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}

	// Act & Assert
	if got := cfg.GetString("app.name"); got != "backlink" {
		t.Fatalf("GetString() = %q", got)
	}
	if !cfg.GetBool("app.debug") {
		t.Fatalf("GetBool() = false, want true")
	}
	if got := cfg.GetMinute("otp.ttl_minutes"); got != 10*time.Minute {
		t.Fatalf("GetMinute() = %v", got)
	}
	if got := cfg.GetSecond("otp.resend_cooldown_seconds"); got != 30*time.Second {
		t.Fatalf("GetSecond() = %v", got)
	}
	if got := cfg.GetInt("otp.max_attempts"); got != 3 {
		t.Fatalf("GetInt() = %d", got)
	}
	if got := cfg.GetFloat64("otp.sweep_ratio"); got != 0.5 {
		t.Fatalf("GetFloat64() = %v", got)
	}
	if got := string(cfg.GetBinary("jwt.secret")); got != "secret" {
		t.Fatalf("GetBinary() = %q", got)
	}
}

func TestViper_GetArray(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}

	want := []string{"password", "otp", "code"}
	if got := cfg.GetArray("instrument.log_mask_fields"); !reflect.DeepEqual(got, want) {
		t.Fatalf("GetArray() = %#v, want %#v", got, want)
	}
	if got := cfg.GetArray("missing.key"); got != nil {
		t.Fatalf("GetArray(missing) = %#v, want nil", got)
	}
}

func TestViper_IsSet(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}

	if !cfg.IsSet("otp.max_attempts") {
		t.Fatalf("IsSet(otp.max_attempts) = false")
	}
	if cfg.IsSet("otp.max_resends") {
		t.Fatalf("IsSet(otp.max_resends) = true")
	}
}

func TestNewViperFromBytes_RequiresType(t *testing.T) {
	if _, err := NewViperFromBytes(" ", []byte(sample)); err == nil {
		t.Fatalf("expected error for empty config type")
	}
}

func TestNewViper_File(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte(sample), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// Act
	cfg, err := NewViper(file)
	if err != nil {
		t.Fatalf("NewViper() error = %v", err)
	}
	defer cfg.Close()

	// Assert
	if got := cfg.GetString("app.name"); got != "backlink" {
		t.Fatalf("GetString() = %q", got)
	}
}
