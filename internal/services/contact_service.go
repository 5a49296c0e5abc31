package services

import (
	"github.com/google/uuid"

	"github.com/arpansahu/portfolio-api/internal/models"
	"github.com/arpansahu/portfolio-api/internal/repositories"
)

// ContactMailer forwards accepted submissions to the site owner.
type ContactMailer interface {
	SendContactNotification(msg *models.ContactMessage) error
}

// CodeVerifier is the slice of OTPService the contact flow needs.
type CodeVerifier interface {
	Verify(email, code string) bool
}

// ContactService accepts OTP-gated contact-form submissions.
type ContactService struct {
	contacts repositories.ContactRepository
	verifier CodeVerifier
	mailer   ContactMailer
}

func NewContactService(contactRepo repositories.ContactRepository, verifier CodeVerifier, mailer ContactMailer) *ContactService {
	return &ContactService{
		contacts: contactRepo,
		verifier: verifier,
		mailer:   mailer,
	}
}

// Submit verifies the OTP, stores the message under a fresh reference, and
// emails the site owner. An invalid code stores and sends nothing.
func (s *ContactService) Submit(req models.ContactRequest) (*models.ContactMessage, error) {
	if !s.verifier.Verify(req.Email, req.OTP) {
		return nil, ErrInvalidOTP
	}

	msg := &models.ContactMessage{
		Reference: uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
	}
	if err := s.contacts.CreateContactMessage(msg); err != nil {
		return nil, err
	}
	if err := s.mailer.SendContactNotification(msg); err != nil {
		return nil, err
	}
	return msg, nil
}
