package config

import "strconv"

type Mail struct{}

var _ MailConfig = Mail{}

func (Mail) GetSmtpHost() string {
	return GetEnv("SMTP_HOST", "smtp.gmail.com")
}

func (Mail) GetSmtpPort() int {
	port, err := strconv.Atoi(GetEnv("SMTP_PORT", "587"))
	if err != nil {
		return 587
	}
	return port
}

func (Mail) GetSmtpAccount() string {
	return GetEnv("SMTP_ACCOUNT", "")
}

func (Mail) GetSmtpPassword() string {
	return GetEnv("SMTP_PASSWORD", "")
}

// GetMailSender returns the From address used for outgoing mail. Falls back
// to the SMTP account when no explicit sender is configured.
func (m Mail) GetMailSender() string {
	return GetEnv("MAIL_SENDER", m.GetSmtpAccount())
}
