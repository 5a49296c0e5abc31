package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/repositories"
)

type fakeOTPMailer struct {
	sent []string
	err  error
}

func (m *fakeOTPMailer) SendOTPEmail(toEmail, code string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, code)
	return nil
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	mailer := &fakeOTPMailer{}
	svc := NewOTPService(repositories.NewPostgresOTPRepository(db), mailer, "test-process-secret")
	fixed := time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	require.NoError(t, svc.Issue("visitor@example.com"))
	require.Len(t, mailer.sent, 1)
	code := mailer.sent[0]
	assert.Len(t, code, 6)

	assert.True(t, svc.Verify("visitor@example.com", code))
	assert.False(t, svc.Verify("other@example.com", code))
	assert.False(t, svc.Verify("visitor@example.com", "000000"))
}

func TestVerifyAcceptsAdjacentWindow(t *testing.T) {
	db := setupTestDB(t)
	mailer := &fakeOTPMailer{}
	svc := NewOTPService(repositories.NewPostgresOTPRepository(db), mailer, "test-process-secret")
	fixed := time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	require.NoError(t, svc.Issue("visitor@example.com"))
	code := mailer.sent[0]

	// One step later the code is still inside the skew window.
	svc.now = func() time.Time { return fixed.Add(60 * time.Second) }
	assert.True(t, svc.Verify("visitor@example.com", code))

	// Far outside the window it no longer validates.
	svc.now = func() time.Time { return fixed.Add(10 * time.Minute) }
	assert.False(t, svc.Verify("visitor@example.com", code))
}

func TestIssueDailyLimit(t *testing.T) {
	db := setupTestDB(t)
	mailer := &fakeOTPMailer{}
	svc := NewOTPService(repositories.NewPostgresOTPRepository(db), mailer, "test-process-secret")
	fixed := time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	for i := 0; i < otpDailyLimit; i++ {
		require.NoError(t, svc.Issue("visitor@example.com"), fmt.Sprintf("issuance %d", i+1))
	}
	require.Len(t, mailer.sent, otpDailyLimit)

	err := svc.Issue("visitor@example.com")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Len(t, mailer.sent, otpDailyLimit, "no email on a rate-limited request")

	// Another address is unaffected.
	assert.NoError(t, svc.Issue("other@example.com"))

	// The next day resets the counter.
	svc.now = func() time.Time { return fixed.Add(24 * time.Hour) }
	assert.NoError(t, svc.Issue("visitor@example.com"))
}

func TestFailedSendDoesNotBurnIssuance(t *testing.T) {
	db := setupTestDB(t)
	mailer := &fakeOTPMailer{err: fmt.Errorf("smtp down")}
	svc := NewOTPService(repositories.NewPostgresOTPRepository(db), mailer, "test-process-secret")
	fixed := time.Date(2026, time.March, 14, 10, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	require.Error(t, svc.Issue("visitor@example.com"))

	var count int64
	require.NoError(t, db.Model(&models.EmailOTPRecord{}).Count(&count).Error)
	assert.Zero(t, count)

	mailer.err = nil
	require.NoError(t, svc.Issue("visitor@example.com"))
	require.NoError(t, db.Model(&models.EmailOTPRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
