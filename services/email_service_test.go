package services

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/edugroup/site-api/config"
	"github.com/edugroup/site-api/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to  []string
	msg string
}

func newTestMailer(office string, fail error) (*EmailService, *[]sentMail) {
	e := NewEmailService(&config.EnvironmentVariables{
		SMTP_HOST:        "smtp.test",
		SMTP_PORT:        2525,
		SMTP_USERNAME:    "user",
		SMTP_PASSWORD:    "pass",
		SMTP_FROM:        "noreply@site.test",
		ADMISSIONS_EMAIL: office,
		SITE_NAME:        "Test Group",
	})
	var sent []sentMail
	e.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		if fail != nil {
			return fail
		}
		sent = append(sent, sentMail{to: to, msg: string(msg)})
		return nil
	}
	return e, &sent
}

func testForm() model.AdmissionForm {
	return model.AdmissionForm{
		ID:              uuid.New(),
		StudentName:     "Asha <b>Rao</b>",
		ParentName:      "Ravi Rao",
		Email:           "parent@example.com",
		Phone:           "9876543210",
		InstitutionCode: "alpha",
		Course:          "Grade 6",
	}
}

func TestNotifyAdmissionSendsBothMails(t *testing.T) {
	e, sent := newTestMailer("office@site.test", nil)
	require.NoError(t, e.NotifyAdmission(testForm()))

	require.Len(t, *sent, 2)
	assert.Equal(t, []string{"parent@example.com"}, (*sent)[0].to)
	assert.Contains(t, (*sent)[0].msg, "Subject: Application received - Test Group")
	assert.Contains(t, (*sent)[0].msg, "Content-Type: text/html; charset=UTF-8")
	assert.Equal(t, []string{"office@site.test"}, (*sent)[1].to)

	// applicant input is escaped in the office notice
	assert.Contains(t, (*sent)[1].msg, "Asha &lt;b&gt;Rao&lt;/b&gt;")
}

func TestNotifyAdmissionWithoutOffice(t *testing.T) {
	e, sent := newTestMailer("", nil)
	require.NoError(t, e.NotifyAdmission(testForm()))
	assert.Len(t, *sent, 1)
}

func TestNotifyAdmissionUnconfigured(t *testing.T) {
	e := NewEmailService(&config.EnvironmentVariables{SMTP_HOST: "smtp.test", SMTP_PORT: 587})
	assert.False(t, e.IsConfigured())
	e.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("unconfigured mailer must not send")
		return nil
	}
	assert.NoError(t, e.NotifyAdmission(testForm()))
}

func TestNotifyAdmissionSendFailure(t *testing.T) {
	boom := errors.New("relay refused")
	e, _ := newTestMailer("office@site.test", boom)
	err := e.NotifyAdmission(testForm())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "acknowledgement")
}
