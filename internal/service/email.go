package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(_ context.Context, to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendJoinApproved(ctx context.Context, email, name, communityName string) error {
	subject := fmt.Sprintf("Welcome to %s", communityName)
	body := fmt.Sprintf("Hello %s,\n\nYour request to join %s has been approved. You are now a member.\n\nThe UniHub Team", name, communityName)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendJoinDenied(ctx context.Context, email, name, communityName string) error {
	subject := fmt.Sprintf("Your request to join %s", communityName)
	body := fmt.Sprintf("Hello %s,\n\nYour request to join %s was not approved by the community leader.\n\nThe UniHub Team", name, communityName)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendOwnershipTransferred(ctx context.Context, email, name, communityName string) error {
	subject := fmt.Sprintf("You are now the leader of %s", communityName)
	body := fmt.Sprintf("Hello %s,\n\nOwnership of %s has been transferred to you. You can now manage members, events and pinned posts.\n\nThe UniHub Team", name, communityName)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendPendingRequestReminder(ctx context.Context, email, name, communityName string, pending int) error {
	subject := fmt.Sprintf("Pending join requests for %s", communityName)
	body := fmt.Sprintf("Hello %s,\n\n%s has %d join request(s) waiting for your review.\n\nThe UniHub Team", name, communityName, pending)
	return s.send(ctx, email, name, subject, body)
}
