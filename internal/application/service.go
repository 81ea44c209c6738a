package application

import (
	"time"

	"github.com/consolebusters/account-service/internal/ports"
)

const serviceName = "account-service"

// Service is the account lifecycle engine. It consumes only ports, so every
// adapter (postgres, redis, sendgrid, jwt) stays swappable in tests.
type Service struct {
	cfg      Config
	accounts ports.AccountRepository
	lockouts ports.LockoutStore
	hasher   ports.PasswordHasher
	tokens   ports.TokenCodec
	mailer   ports.Mailer
	nowFn    func() time.Time
}

type Dependencies struct {
	Config   Config
	Accounts ports.AccountRepository
	Lockouts ports.LockoutStore
	Hasher   ports.PasswordHasher
	Tokens   ports.TokenCodec
	Mailer   ports.Mailer
}

func NewService(deps Dependencies) *Service {
	return &Service{
		cfg:      deps.Config,
		accounts: deps.Accounts,
		lockouts: deps.Lockouts,
		hasher:   deps.Hasher,
		tokens:   deps.Tokens,
		mailer:   deps.Mailer,
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}
