package main

import (
	"chat-sync/domain"
	"chat-sync/errors"
	"chat-sync/internal"
	"chat-sync/repositories"
	errs "errors"
	"fmt"
	"strings"
)

// resolveIdentity picks the name from the environment, else the store, else
// asks for it. The color follows the same order and is drawn at random last.
// The result is remembered when a store is available.
func resolveIdentity(config internal.Config, repository repositories.IIdentityRepository, ask func() (string, error)) (domain.Identity, error) {
	var stored domain.Identity
	if repository != nil {
		loaded, err := repository.Load()
		switch {
		case err == nil:
			stored = loaded
		case !errs.Is(err, errors.ErrIdentityNotFound):
			return domain.Identity{}, err
		}
	}

	name := strings.TrimSpace(config.Name)
	if name == "" {
		name = stored.Name
	}
	if name == "" {
		answer, err := ask()
		if err != nil {
			return domain.Identity{}, fmt.Errorf("could not read name: %w", err)
		}
		name = strings.TrimSpace(answer)
	}
	if name == "" {
		return domain.Identity{}, errors.ErrEmptyName
	}

	color := config.Color
	if color == "" {
		color = stored.Color
	}
	if color == "" {
		color = domain.RandomColor()
	}

	me := domain.Identity{Name: name, Color: color}
	if repository != nil && me != stored {
		if err := repository.Save(me); err != nil {
			return domain.Identity{}, err
		}
	}
	return me, nil
}
