package importer

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"stealthcompany.com/notesync/internal/dal"
)

// resolveUser maps a legacy author login to a company user, creating one on
// first sight. The run-local cache guarantees at most one store lookup and
// at most one creation per distinct login per run; the login-keyed document
// in the store is the backstop against racing runs.
func (imp *Importer) resolveUser(ctx context.Context, cache map[string]*dal.CompanyUser, login string) (*dal.CompanyUser, error) {
	if user, ok := cache[login]; ok {
		return user, nil
	}

	user, err := imp.users.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	if user == nil {
		log.Info().Str("login", login).Msg("Creating new user")
		user = &dal.CompanyUser{
			ID:    uuid.NewString(),
			Login: login,
		}
		if err := imp.users.Insert(ctx, user); err != nil {
			return nil, err
		}
	}

	cache[login] = user
	return user, nil
}
