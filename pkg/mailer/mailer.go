// Package mailer sends transactional email over SMTP: account activation,
// welcome, password reset, contact-form OTPs, and owner notifications.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/arpansahu/portfolio-api/internal/models"
)

// Config carries SMTP credentials and the site identity used in links.
type Config struct {
	Host       string
	Port       string
	Username   string
	Password   string
	FromEmail  string
	FromName   string
	AdminEmail string
	Protocol   string
	Domain     string
}

// Mailer sends HTML mail synchronously; callers decide whether a send
// failure fails the request.
type Mailer struct {
	cfg Config
}

func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) siteURL() string {
	return fmt.Sprintf("%s://%s", m.cfg.Protocol, m.cfg.Domain)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", m.cfg.FromName, m.cfg.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.FromEmail, []string{to}, msg.Bytes())
}

func renderTemplate(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var activationTmpl = template.Must(template.New("activation").Parse(`
<p>Hi {{.Name}},</p>
<p>Thank you for registering at {{.Site}}!</p>
<p>To activate your account, please click the link below:</p>
<p><a href="{{.Link}}">Activate my account</a></p>
<p>If you didn't request this, please ignore this email. This link will expire in 24 hours.</p>
`))

// SendActivationEmail mails the account-activation link issued at signup.
func (m *Mailer) SendActivationEmail(toEmail, name, token string) error {
	link := fmt.Sprintf("%s/api/v1/auth/activate?token=%s", m.siteURL(), token)
	body, err := renderTemplate(activationTmpl, map[string]string{
		"Name": name, "Site": m.cfg.Domain, "Link": link,
	})
	if err != nil {
		return err
	}
	return m.send(toEmail, "Confirm Your Email - "+m.cfg.FromName, body)
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<p>Hi {{.Name}},</p>
<p>Welcome aboard! Your account has been successfully activated.</p>
<p>You can now comment on blog posts, receive notifications when someone
replies to you, and like posts and comments.</p>
<p>Explore the blog: <a href="{{.Site}}/blog/">{{.Site}}/blog/</a></p>
`))

// SendWelcomeEmail mails the post-activation welcome note.
func (m *Mailer) SendWelcomeEmail(toEmail, name string) error {
	body, err := renderTemplate(welcomeTmpl, map[string]string{
		"Name": name, "Site": m.siteURL(),
	})
	if err != nil {
		return err
	}
	return m.send(toEmail, "Welcome to "+m.cfg.Domain, body)
}

var resetTmpl = template.Must(template.New("reset").Parse(`
<p>Hi {{.Name}},</p>
<p>We received a request to reset your password. Click the link below to choose a new one:</p>
<p><a href="{{.Link}}">Reset my password</a></p>
<p>If you didn't request this, you can safely ignore this email.</p>
`))

// SendPasswordResetEmail mails a single-use password reset link.
func (m *Mailer) SendPasswordResetEmail(toEmail, name, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.siteURL(), token)
	body, err := renderTemplate(resetTmpl, map[string]string{
		"Name": name, "Link": link,
	})
	if err != nil {
		return err
	}
	return m.send(toEmail, "Password Reset - "+m.cfg.Domain, body)
}

var otpTmpl = template.Must(template.New("otp").Parse(`
<p>Your one-time code for the contact form is:</p>
<h2>{{.Code}}</h2>
<p>It is valid for about a minute. If you didn't request it, ignore this email.</p>
`))

// SendOTPEmail mails a contact-form verification code.
func (m *Mailer) SendOTPEmail(toEmail, code string) error {
	body, err := renderTemplate(otpTmpl, map[string]string{"Code": code})
	if err != nil {
		return err
	}
	return m.send(toEmail, "Your verification code - "+m.cfg.Domain, body)
}

var contactTmpl = template.Must(template.New("contact").Parse(`
<p>New contact form submission ({{.Reference}}):</p>
<ul>
<li><b>Name:</b> {{.Name}}</li>
<li><b>Email:</b> {{.Email}}</li>
<li><b>Phone:</b> {{.Phone}}</li>
<li><b>Subject:</b> {{.Subject}}</li>
</ul>
<p>{{.Message}}</p>
`))

// SendContactNotification forwards an accepted submission to the site owner.
func (m *Mailer) SendContactNotification(msg *models.ContactMessage) error {
	body, err := renderTemplate(contactTmpl, msg)
	if err != nil {
		return err
	}
	return m.send(m.cfg.AdminEmail, "Contact form: "+msg.Subject, body)
}
