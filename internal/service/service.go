package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/nurpe/painel-mulher/internal/model"
	"github.com/nurpe/painel-mulher/internal/region"
)

func canRead(p model.Principal) error {
	if !p.CanRead() {
		return ErrPermissionDenied
	}
	return nil
}

func canEdit(p model.Principal) error {
	if !p.CanEdit() {
		return ErrPermissionDenied
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// canonicalMunicipality resolves a user-typed name to the stored spelling.
func canonicalMunicipality(regions *region.Resolver, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: municipio is required", ErrInvalidInput)
	}
	name, _, ok := regions.Lookup(raw)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownMunicipality, raw)
	}
	return name, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
