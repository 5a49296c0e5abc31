package services

import (
	"encoding/base32"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/arpansahu/portfolio-api/internal/repositories"
)

const (
	// otpPeriod is the TOTP time step; a code stays valid for the whole
	// window (plus one step of skew) and is NOT invalidated on first use.
	otpPeriod = 60
	// otpDailyLimit caps issuances per email per calendar day.
	otpDailyLimit = 5
)

// OTPMailer delivers the generated code.
type OTPMailer interface {
	SendOTPEmail(toEmail, code string) error
}

// OTPService gates the contact form with emailed time-based codes.
//
// The per-email secret is derived from the address concatenated with a
// single process-wide secret. This mirrors the deployed system; swapping in
// per-record random secrets would invalidate codes in flight across
// deploys, so the scheme is kept as-is and the secret is treated as
// equivalent to a signing key.
type OTPService struct {
	records repositories.OTPRepository
	mailer  OTPMailer
	secret  string
	now     func() time.Time
}

func NewOTPService(otpRepo repositories.OTPRepository, mailer OTPMailer, secret string) *OTPService {
	return &OTPService{
		records: otpRepo,
		mailer:  mailer,
		secret:  secret,
		now:     time.Now,
	}
}

func (s *OTPService) validateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    otpPeriod,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

func (s *OTPService) deriveSecret(email string) string {
	return base32.StdEncoding.EncodeToString([]byte(email + s.secret))
}

// Issue generates a code for the email and mails it, unless the address has
// already hit today's cap. The counter is bumped only after a successful
// send, so a failed email doesn't burn an issuance.
func (s *OTPService) Issue(email string) error {
	date := s.now().Format("2006-01-02")

	count, err := s.records.GetDailyCount(email, date)
	if err != nil {
		return err
	}
	if count >= otpDailyLimit {
		return ErrRateLimited
	}

	code, err := totp.GenerateCodeCustom(s.deriveSecret(email), s.now(), s.validateOpts())
	if err != nil {
		return err
	}
	if err := s.mailer.SendOTPEmail(email, code); err != nil {
		return err
	}
	return s.records.IncrementDailyCount(email, date)
}

// Verify checks the submitted code against the current time window.
func (s *OTPService) Verify(email, code string) bool {
	ok, err := totp.ValidateCustom(code, s.deriveSecret(email), s.now(), s.validateOpts())
	return err == nil && ok
}
