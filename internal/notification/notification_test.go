package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingEmail struct {
	to      []string
	subject string
	body    string
}

func (c *capturingEmail) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	c.to = to
	c.subject = subject
	c.body = htmlBody
	return nil
}

func TestMailerSendResetCode(t *testing.T) {
	email := &capturingEmail{}
	m := NewMailer(email)

	require.NoError(t, m.SendResetCode(context.Background(), "a@example.com", "Asha", "654321", 10))

	assert.Equal(t, []string{"a@example.com"}, email.to)
	assert.Contains(t, email.subject, "Password Reset OTP")
	assert.Contains(t, email.body, "654321")
	assert.Contains(t, email.body, "Asha")
	assert.Contains(t, email.body, "10 minutes")
}

func TestMailerSendResetCodeDefaultsName(t *testing.T) {
	email := &capturingEmail{}
	m := NewMailer(email)

	require.NoError(t, m.SendResetCode(context.Background(), "a@example.com", "", "111111", 10))
	assert.Contains(t, email.body, "Hello User")
}

func TestMailerSendResetConfirmation(t *testing.T) {
	email := &capturingEmail{}
	m := NewMailer(email)

	require.NoError(t, m.SendResetConfirmation(context.Background(), "a@example.com", "Asha"))
	assert.Contains(t, email.subject, "Has Been Reset")
	assert.Contains(t, email.body, "successfully reset")
}

func TestOTPSMSBody(t *testing.T) {
	assert.Equal(t, "This is from FIXIT Service and Your OTP is 123456", OTPSMSBody("123456"))
}

func TestTwilioSend(t *testing.T) {
	var gotPath, gotFrom, gotTo, gotBody string
	var gotAuthUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuthUser, _, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotFrom = r.PostFormValue("From")
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	p := NewTwilio(TwilioConfig{AccountSID: "AC123", AuthToken: "tok", FromNumber: "+15550100"})
	p.baseURL = srv.URL

	require.NoError(t, p.Send(context.Background(), "+919876543210", "hello"))
	assert.Equal(t, "/Accounts/AC123/Messages.json", gotPath)
	assert.Equal(t, "AC123", gotAuthUser)
	assert.Equal(t, "+15550100", gotFrom)
	assert.Equal(t, "+919876543210", gotTo)
	assert.Equal(t, "hello", gotBody)
}

func TestTwilioSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code": 20003}`))
	}))
	defer srv.Close()

	p := NewTwilio(TwilioConfig{AccountSID: "AC123", AuthToken: "bad", FromNumber: "+15550100"})
	p.baseURL = srv.URL

	err := p.Send(context.Background(), "+919876543210", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "20003")
}
