package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendAnalysisReady(toEmail, name, primaryProfile string) error
	SendRoadmapReady(toEmail, name, role string, duration int) error
}

// Sender is the part of gomail.Dialer the service needs.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	sender      Sender
	senderEmail string
	senderName  string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderName, clientURL string) IEmailService {
	return NewEmailServiceWithSender(gomail.NewDialer(host, port, username, password), username, senderName, clientURL)
}

func NewEmailServiceWithSender(sender Sender, senderEmail, senderName, clientURL string) IEmailService {
	return &emailService{
		sender:      sender,
		senderEmail: senderEmail,
		senderName:  senderName,
		clientURL:   clientURL,
	}
}

var analysisReadyTmpl = template.Must(template.New("analysis").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
	<h2>Hi {{.Name}}, your career analysis is ready!</h2>
	<p>Your profile: <strong>{{.Profile}}</strong></p>
	<p>Pick the role that fits you best to unlock your personalised roadmap.</p>
	<a href="{{.Link}}" style="background-color: #4F46E5; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">View results</a>
</div>`))

var roadmapReadyTmpl = template.Must(template.New("roadmap").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
	<h2>Your {{.Duration}}-month roadmap is ready, {{.Name}}</h2>
	<p>We built a month-by-month plan to become a <strong>{{.Role}}</strong>.</p>
	<a href="{{.Link}}" style="background-color: #4F46E5; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open roadmap</a>
</div>`))

func (s *emailService) SendAnalysisReady(toEmail, name, primaryProfile string) error {
	body, err := render(analysisReadyTmpl, map[string]interface{}{
		"Name":    displayName(name),
		"Profile": primaryProfile,
		"Link":    s.clientURL + "/onboarding/career-path",
	})
	if err != nil {
		return err
	}
	return s.send(toEmail, "Your career analysis is ready", body)
}

func (s *emailService) SendRoadmapReady(toEmail, name, role string, duration int) error {
	body, err := render(roadmapReadyTmpl, map[string]interface{}{
		"Name":     displayName(name),
		"Role":     role,
		"Duration": duration,
		"Link":     s.clientURL + "/roadmap",
	})
	if err != nil {
		return err
	}
	return s.send(toEmail, fmt.Sprintf("Your %d-month roadmap is ready", duration), body)
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send %q to %s: %w", subject, toEmail, err)
	}
	return nil
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}

func displayName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}
