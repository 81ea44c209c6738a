package postgres

import (
	"github.com/consolebusters/account-service/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
	Accounts ports.AccountRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Accounts: &accountRepository{db: db},
	}
}
