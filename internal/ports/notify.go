package ports

import "context"

// EmailMessage is a provider-neutral outbound email.
type EmailMessage struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer is the outbound notification port. A send either fully succeeds or
// returns an error; the lifecycle engine rolls back pending secrets on failure.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}
