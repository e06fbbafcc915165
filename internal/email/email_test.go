package email

import (
	"strings"
	"testing"

	"ranklens/internal/config"
)

func TestNewService(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.Config
		wantEnabled bool
	}{
		{
			name: "enabled when SMTP settings configured",
			cfg: &config.Config{
				SMTPHost: "smtp.example.com",
				SMTPPort: 587,
				SMTPFrom: "noreply@example.com",
			},
			wantEnabled: true,
		},
		{
			name: "disabled when SMTPHost is empty",
			cfg: &config.Config{
				SMTPPort: 587,
				SMTPFrom: "noreply@example.com",
			},
			wantEnabled: false,
		},
		{
			name: "disabled when SMTPFrom is empty",
			cfg: &config.Config{
				SMTPHost: "smtp.example.com",
				SMTPPort: 587,
			},
			wantEnabled: false,
		},
		{
			name:        "disabled with empty config",
			cfg:         &config.Config{},
			wantEnabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.cfg)
			if svc.IsEnabled() != tt.wantEnabled {
				t.Errorf("IsEnabled() = %v, want %v", svc.IsEnabled(), tt.wantEnabled)
			}
		})
	}
}

func TestService_buildMessage(t *testing.T) {
	svc := NewService(&config.Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPFrom:     "noreply@example.com",
		SMTPFromName: "RankLens Alerts",
	})

	msg := svc.buildMessage([]string{"a@example.com", "b@example.com"}, "2 keywords flagged", "<p>hi</p>", "hi")

	wantFragments := []string{
		"From: RankLens Alerts <noreply@example.com>\r\n",
		"To: a@example.com, b@example.com\r\n",
		"Subject: 2 keywords flagged\r\n",
		"Content-Type: multipart/alternative; boundary=\"" + mimeBoundary + "\"\r\n",
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n",
		"Content-Type: text/html; charset=\"UTF-8\"\r\n",
		"--" + mimeBoundary + "--\r\n",
	}
	for _, want := range wantFragments {
		if !strings.Contains(msg, want) {
			t.Errorf("buildMessage() missing %q", want)
		}
	}

	// Text part must precede the HTML part so simple clients use it.
	if strings.Index(msg, "hi") > strings.Index(msg, "<p>hi</p>") {
		t.Error("buildMessage() put the HTML part before the text part")
	}
}

func TestService_buildMessage_HTMLOnly(t *testing.T) {
	svc := NewService(&config.Config{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		SMTPFrom: "noreply@example.com",
	})

	msg := svc.buildMessage([]string{"a@example.com"}, "Subject", "<p>hi</p>", "")

	if strings.Contains(msg, "text/plain") {
		t.Error("buildMessage() emitted an empty text part")
	}
	if !strings.Contains(msg, "From: noreply@example.com\r\n") {
		t.Error("buildMessage() should use the bare address without SMTPFromName")
	}
}

func TestService_SendEmail_Disabled(t *testing.T) {
	svc := NewService(&config.Config{})

	// Should return nil when disabled
	if err := svc.SendEmail([]string{"test@example.com"}, "Test", "<p>HTML</p>", "Text"); err != nil {
		t.Errorf("SendEmail() on disabled service = %v, want nil", err)
	}
}

func TestService_SendEmail_NoRecipients(t *testing.T) {
	svc := NewService(&config.Config{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		SMTPFrom: "noreply@example.com",
	})

	if err := svc.SendEmail(nil, "Test", "<p>HTML</p>", "Text"); err != nil {
		t.Errorf("SendEmail() with no recipients = %v, want nil", err)
	}
}
