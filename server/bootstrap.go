package server

import (
	"fmt"
	"time"

	"github.com/jrsteele09/boutik-admin/internal/utils"
	"github.com/jrsteele09/boutik-admin/units"
	"github.com/jrsteele09/boutik-admin/users"
	"github.com/rs/zerolog/log"
)

// DemoOwnerPassword is the password of every owner created by SeedDemoData
const DemoOwnerPassword = "boutik123"

// InitialiseSystem creates the configured superuser if it does not exist yet
func (s *Server) InitialiseSystem() error {
	email := s.config.GetSuperuserEmail()
	if _, err := s.repos.Users.GetByEmail(email); err == nil {
		log.Info().Str("email", email).Msg("Bootstrap: superuser already configured")
		return nil
	}

	hash, err := users.HashPassword(s.config.GetSuperuserPassword())
	if err != nil {
		return fmt.Errorf("failed to hash superuser password: %w", err)
	}
	admin := &users.User{
		Email:        email,
		Name:         utils.Ptr("Admin"),
		LastName:     "Tantana",
		IsActive:     true,
		IsSuperuser:  true,
		PasswordHash: hash,
		Roles:        []users.Role{{ID: 1, Name: string(users.RoleAdmin)}},
	}
	if err := s.repos.Users.Upsert(admin); err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}

	log.Info().Str("email", email).Int("id", admin.ID).Msg("Bootstrap: created superuser")
	return nil
}

type demoOwner struct {
	name, lastName, email string
	active                bool
	shops                 []string
}

var demoOwners = []demoOwner{
	{"Hery", "Rakoto", "hery.rakoto@tantana.mg", true, []string{"Analakely", "Behoririka"}},
	{"Voahangy", "Rasoa", "voahangy.rasoa@tantana.mg", true, []string{"Ivandry"}},
	{"Faly", "Andriama", "faly.andriama@tantana.mg", false, nil},
	{"Mialy", "Razafy", "mialy.razafy@tantana.mg", true, []string{"Antsirabe", "Ambositra", "Fianarantsoa"}},
	{"Tiana", "Ravelo", "tiana.ravelo@tantana.mg", false, []string{"Toamasina"}},
}

// SeedDemoData adds a handful of owners and their points of sale. Owners that
// already exist are left untouched.
func (s *Server) SeedDemoData() error {
	hash, err := users.HashPassword(DemoOwnerPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	for i, d := range demoOwners {
		if _, err := s.repos.Users.GetByEmail(d.email); err == nil {
			continue
		}
		created := time.Now().UTC().Add(-time.Duration(len(demoOwners)-i) * 24 * time.Hour)
		owner := &users.User{
			Email:        d.email,
			Name:         utils.Ptr(d.name),
			LastName:     d.lastName,
			IsActive:     d.active,
			IsOwner:      true,
			CreatedAt:    &created,
			PasswordHash: hash,
			Roles:        []users.Role{{ID: 2, Name: string(users.RoleOwner)}},
		}
		if err := s.repos.Users.Upsert(owner); err != nil {
			return fmt.Errorf("failed to seed owner %s: %w", d.email, err)
		}
		for _, shop := range d.shops {
			pos := &units.PointOfSale{
				Name:      "Boutik " + shop,
				Location:  utils.Ptr(shop),
				OwnerID:   utils.Ptr(owner.ID),
				CreatedAt: &created,
			}
			if err := s.repos.Units.Create(pos); err != nil {
				return fmt.Errorf("failed to seed point of sale %s: %w", shop, err)
			}
		}
	}
	log.Info().Int("owners", len(demoOwners)).Msg("Bootstrap: demo data seeded")
	return nil
}
