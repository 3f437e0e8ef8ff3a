package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/commission-tracker/internal/config"
	"github.com/Dan9191/commission-tracker/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendMilestoneNotification tells an agent about newly earned achievements
func (s *Sender) SendMilestoneNotification(to, name string, achievements []models.Achievement) error {
	if len(achievements) == 0 {
		return nil
	}
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if len(achievements) == 1 {
		e.Subject = fmt.Sprintf("Milestone reached: %s", achievements[0].Name)
	} else {
		e.Subject = fmt.Sprintf("You reached %d new milestones", len(achievements))
	}
	e.Text = []byte(milestoneBody(name, achievements))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send milestone email to %s: %v", to, err)
		return fmt.Errorf("failed to send milestone email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func milestoneBody(name string, achievements []models.Achievement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	b.WriteString("Congratulations! You have earned the following achievements:\n\n")
	for _, a := range achievements {
		fmt.Fprintf(&b, "  * %s (%s): %s\n", a.Name, a.Level, a.Description)
	}
	b.WriteString("\nKeep up the momentum.\n\nBest regards,\nCommission Tracker")
	return b.String()
}
