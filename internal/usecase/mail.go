package usecase

import (
	"context"
	"fmt"

	"github.com/thinktodo/tt/internal/domain"
)

// SendMailInput contains the parameters for sending a message.
type SendMailInput struct {
	Sender   string // Defaults to "user"
	Receiver string
	Subject  string
	Body     string
}

// SendMail is the use case for sending a message to an agent's inbox.
type SendMail struct {
	mail  domain.Mailbox
	clock domain.Clock
}

// NewSendMail creates a new SendMail use case.
func NewSendMail(mail domain.Mailbox, clock domain.Clock) *SendMail {
	return &SendMail{mail: mail, clock: clock}
}

// Execute stores the message and returns its ID.
func (uc *SendMail) Execute(_ context.Context, in SendMailInput) (int, error) {
	sender := in.Sender
	if sender == "" {
		sender = "user"
	}
	id, err := uc.mail.Send(domain.Message{
		Time:     uc.clock.Now(),
		Sender:   sender,
		Receiver: in.Receiver,
		Subject:  in.Subject,
		Body:     in.Body,
	})
	if err != nil {
		return 0, fmt.Errorf("send mail: %w", err)
	}
	return id, nil
}

// Inbox is the use case for listing messages.
type Inbox struct {
	mail domain.Mailbox
}

// NewInbox creates a new Inbox use case.
func NewInbox(mail domain.Mailbox) *Inbox {
	return &Inbox{mail: mail}
}

// Execute returns all messages, newest first.
func (uc *Inbox) Execute(_ context.Context) ([]domain.Message, error) {
	return uc.mail.Inbox()
}

// ReadMail is the use case for reading one message, marking it read.
type ReadMail struct {
	mail domain.Mailbox
}

// NewReadMail creates a new ReadMail use case.
func NewReadMail(mail domain.Mailbox) *ReadMail {
	return &ReadMail{mail: mail}
}

// Execute returns the message by ID. Reading marks it read.
func (uc *ReadMail) Execute(_ context.Context, id int) (*domain.Message, error) {
	return uc.mail.Read(id)
}
