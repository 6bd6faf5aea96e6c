package notify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/email"

	"github.com/assocweb/ingest/pkg/domain"
)

// SMTPConfig holds mail server settings
type SMTPConfig struct {
	Host     string        `yaml:"host" json:"host" jsonschema:"description=SMTP server host"`
	Port     int           `yaml:"port" json:"port" jsonschema:"default=587,description=SMTP server port"`
	Username string        `yaml:"username" json:"username" jsonschema:"description=SMTP auth user"`
	Password string        `yaml:"password" json:"password" jsonschema:"description=SMTP auth password"`
	From     string        `yaml:"from" json:"from" jsonschema:"description=sender address"`
	TLS      bool          `yaml:"tls" json:"tls" jsonschema:"description=use implicit TLS"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"type=string,description=SMTP timeout"`
}

// Message is a rendered notification for one recipient
type Message struct {
	To      string
	Subject string
	Body    string // html
}

// SMTPMailer sends messages with go-pkgz/email
type SMTPMailer struct {
	sender *email.Sender
	from   string
}

// NewSMTPMailer makes a mailer, host and from address are required
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host not configured")
	}
	if cfg.From == "" {
		return nil, errors.New("smtp from address not configured")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	opts := []email.Option{
		email.Port(cfg.Port),
		email.TLS(cfg.TLS),
		email.ContentType("text/html"),
		email.TimeOut(cfg.Timeout),
	}
	if cfg.Username != "" {
		opts = append(opts, email.Auth(cfg.Username, cfg.Password))
	}
	return &SMTPMailer{sender: email.NewSender(cfg.Host, opts...), from: cfg.From}, nil
}

// Send delivers msg, ctx is checked before the SMTP session starts
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.sender.Send(msg.Body, email.Params{From: m.from, To: []string{msg.To}, Subject: msg.Subject}); err != nil {
		return fmt.Errorf("send to %s: %w", msg.To, err)
	}
	return nil
}

// settingKeys are read from the settings collaborator once per dispatch
var settingKeys = []string{
	domain.SettingSMTPHost, domain.SettingSMTPPort, domain.SettingSMTPUsername, domain.SettingSMTPPassword,
	domain.SettingSMTPFrom, domain.SettingSMTPTLS, domain.SettingSiteName,
}

// mergeSettings overrides fallback with non-empty stored settings
func mergeSettings(fallback SMTPConfig, siteName string, stored map[string]string) (SMTPConfig, string) {
	cfg := fallback
	if v := strings.TrimSpace(stored[domain.SettingSMTPHost]); v != "" {
		cfg.Host = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(stored[domain.SettingSMTPPort])); err == nil && v > 0 {
		cfg.Port = v
	}
	if v := stored[domain.SettingSMTPUsername]; v != "" {
		cfg.Username = v
	}
	if v := stored[domain.SettingSMTPPassword]; v != "" {
		cfg.Password = v
	}
	if v := strings.TrimSpace(stored[domain.SettingSMTPFrom]); v != "" {
		cfg.From = v
	}
	if v, err := strconv.ParseBool(strings.TrimSpace(stored[domain.SettingSMTPTLS])); err == nil {
		cfg.TLS = v
	}
	if v := strings.TrimSpace(stored[domain.SettingSiteName]); v != "" {
		siteName = v
	}
	return cfg, siteName
}
