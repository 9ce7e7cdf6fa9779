package strcase

import "testing"

func TestToLowerSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "Phone", want: "phone"},
		{in: "AttemptsRemaining", want: "attempts_remaining"},
		{in: "UserID", want: "user_id"},
		{in: "HTTPServer", want: "http_server"},
		{in: "OTP", want: "otp"},
		{in: "Code6Digits", want: "code6_digits"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ToLowerSnake(tt.in); got != tt.want {
				t.Fatalf("ToLowerSnake(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
