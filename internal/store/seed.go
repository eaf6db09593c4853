package store

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bookit/internal/credentials"
	"github.com/dmitrijs2005/bookit/internal/dbx"
	"github.com/dmitrijs2005/bookit/internal/models"
	"github.com/dmitrijs2005/bookit/internal/repositories/businesses"
	"github.com/dmitrijs2005/bookit/internal/repositories/users"
)

func (s *Store) seedUsers() []models.User {
	return []models.User{
		{
			ID:       "admin",
			Email:    s.cfg.AdminEmail,
			Name:     "Administrator",
			Role:     models.RoleAdmin,
			Password: credentials.Hash(s.cfg.AdminPassword),
			IsActive: true,
		},
		{
			ID:         "pro1",
			Email:      s.cfg.ProfessionalEmail,
			Name:       "Professional User",
			Role:       models.RoleProfessional,
			BusinessID: "1",
			Password:   credentials.Hash(s.cfg.ProfessionalPassword),
			IsActive:   true,
		},
	}
}

func seedBusinesses() []models.Business {
	categories := []models.Category{
		{ID: "1", Name: "garagiste", Slug: "garagiste", Icon: "car"},
		{ID: "2", Name: "coiffeur", Slug: "coiffeur", Icon: "scissors"},
	}

	return []models.Business{
		{
			ID:           "1",
			Name:         "Garage Premium Auto",
			Category:     categories[0],
			Address:      "123 rue de la Réparation",
			City:         "Paris",
			Rating:       4.8,
			TotalReviews: 127,
			Reviews: []models.Review{
				{ID: "1", Rating: 5, Comment: "Excellent service, très professionnel", Author: "Jean Dupont", Date: "2024-03-01"},
			},
			Services: []models.Service{
				{ID: "1", Name: "Révision complète", Duration: 120, Price: 149.99, Description: "Révision complète du véhicule"},
				{ID: "2", Name: "Vidange", Duration: 60, Price: 79.99, Description: "Vidange moteur et filtres"},
			},
		},
		{
			ID:           "2",
			Name:         "Salon Élégance",
			Category:     categories[1],
			Address:      "45 avenue des Coiffeurs",
			City:         "Lyon",
			Rating:       4.9,
			TotalReviews: 89,
			Reviews: []models.Review{
				{ID: "2", Rating: 5, Comment: "Superbe coupe, je recommande !", Author: "Marie Martin", Date: "2024-03-02"},
			},
			Services: []models.Service{
				{ID: "3", Name: "Coupe Homme", Duration: 30, Price: 25, Description: "Coupe, shampoing et coiffage"},
				{ID: "4", Name: "Coupe Femme", Duration: 60, Price: 45, Description: "Coupe, shampoing et brushing"},
			},
		},
	}
}

// seed inserts the bootstrap users and businesses, in one transaction, only
// when the respective collections are empty (first-ever store creation).
// Seed passwords go through the same key derivation as every other
// credential; plaintext is never written.
func (s *Store) seed(ctx context.Context, db *sql.DB) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var userCount int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
			return err
		}
		if userCount == 0 {
			repo := users.NewSQLiteRepository(tx)
			for _, u := range s.seedUsers() {
				if err := repo.Add(ctx, &u); err != nil {
					return err
				}
			}
			s.log.Info(ctx, "seeded bootstrap users")
		}

		var businessCount int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM businesses`).Scan(&businessCount); err != nil {
			return err
		}
		if businessCount == 0 {
			repo := businesses.NewSQLiteRepository(tx)
			for _, b := range seedBusinesses() {
				if err := repo.Add(ctx, &b); err != nil {
					return err
				}
			}
			s.log.Info(ctx, "seeded bootstrap businesses")
		}

		return nil
	})
}
