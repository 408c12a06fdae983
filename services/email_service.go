package services

import (
	"bytes"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/edugroup/site-api/config"
	"github.com/edugroup/site-api/model"
	applog "github.com/edugroup/site-api/utils/logger"
	"go.uber.org/zap"
)

// EmailService mails the admission acknowledgement and office notice
type EmailService struct {
	addr   string
	auth   smtp.Auth
	from   string
	office string
	site   string
	ready  bool

	// send is smtp.SendMail outside tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService reads the SMTP_* settings. Without credentials the
// service stays unconfigured and NotifyAdmission does nothing.
func NewEmailService(env *config.EnvironmentVariables) *EmailService {
	return &EmailService{
		addr:   net.JoinHostPort(env.SMTP_HOST, strconv.Itoa(env.SMTP_PORT)),
		auth:   smtp.PlainAuth("", env.SMTP_USERNAME, env.SMTP_PASSWORD, env.SMTP_HOST),
		from:   env.SMTP_FROM,
		office: env.ADMISSIONS_EMAIL,
		site:   env.SITE_NAME,
		ready:  env.SMTP_USERNAME != "" && env.SMTP_PASSWORD != "",
		send:   smtp.SendMail,
	}
}

func (e *EmailService) IsConfigured() bool {
	return e.ready
}

var acknowledgementTmpl = template.Must(template.New("ack").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Application received - {{.Site}}</title></head>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #1e3a8a;">Thank you, {{.Form.ParentName}}</h2>
  <p>We have received the application for <strong>{{.Form.StudentName}}</strong>
  to <strong>{{.Form.Course}}</strong> at {{.Form.InstitutionCode}}.</p>
  <p>Our admissions team will review it and contact you at {{.Form.Phone}} or this address.</p>
  <p style="font-size: 12px; color: #666;">Reference: {{.Form.ID}}</p>
  <p style="font-size: 12px; color: #666;">{{.Site}}</p>
</body>
</html>`))

var noticeTmpl = template.Must(template.New("notice").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>New application</title></head>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #333;">
  <h2>New admission application</h2>
  <table cellpadding="4">
    <tr><td>Student</td><td>{{.Form.StudentName}}</td></tr>
    <tr><td>Parent</td><td>{{.Form.ParentName}}</td></tr>
    <tr><td>Email</td><td>{{.Form.Email}}</td></tr>
    <tr><td>Phone</td><td>{{.Form.Phone}}</td></tr>
    <tr><td>Institution</td><td>{{.Form.InstitutionCode}}</td></tr>
    <tr><td>Course</td><td>{{.Form.Course}}</td></tr>
    <tr><td>Previous school</td><td>{{.Form.PreviousSchool}}</td></tr>
    <tr><td>Message</td><td>{{.Form.Message}}</td></tr>
  </table>
  <p style="font-size: 12px; color: #666;">Reference: {{.Form.ID}}</p>
</body>
</html>`))

// NotifyAdmission sends the applicant an acknowledgement and, when
// ADMISSIONS_EMAIL is set, the admissions office a notice
func (e *EmailService) NotifyAdmission(form model.AdmissionForm) error {
	if !e.ready {
		applog.L().Debug("admission mail skipped, SMTP not configured", zap.Stringer("admission_id", form.ID))
		return nil
	}

	data := struct {
		Site string
		Form model.AdmissionForm
	}{Site: e.site, Form: form}

	if err := e.mail(form.Email, "Application received - "+e.site, acknowledgementTmpl, data); err != nil {
		return fmt.Errorf("acknowledgement: %w", err)
	}
	if e.office == "" {
		return nil
	}
	if err := e.mail(e.office, "New application: "+form.StudentName, noticeTmpl, data); err != nil {
		return fmt.Errorf("admissions notice: %w", err)
	}
	return nil
}

func (e *EmailService) mail(to, subject string, t *template.Template, data any) error {
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("render %s: %w", t.Name(), err)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", e.site), e.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.Write(body.Bytes())

	if err := e.send(e.addr, e.auth, e.from, []string{to}, []byte(msg.String())); err != nil {
		return err
	}
	applog.L().Info("admission mail sent", zap.String("template", t.Name()))
	return nil
}
