package seed

import (
	"os"

	"perfume-shop-backend/internal/models"
	"perfume-shop-backend/internal/repository"
	"perfume-shop-backend/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdminUser creates the initial admin account when the user table is
// empty. Credentials come from the environment so fresh deployments are
// never left without a way into the back office.
func EnsureAdminUser(userRepo repository.UserRepository) {
	count, err := userRepo.Count()
	if err != nil {
		logger.Error(err, "Failed to count users for seeding", nil)
		return
	}
	if count > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Warn("No admin user exists and ADMIN_EMAIL/ADMIN_PASSWORD are unset, skipping seed", nil)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error(err, "Failed to hash admin password", nil)
		return
	}

	user := &models.User{
		Username: "admin",
		Email:    email,
		Password: string(hashed),
		Role:     "admin",
	}

	if err := userRepo.Create(user); err != nil {
		logger.Error(err, "Failed to seed admin user", nil)
		return
	}

	logger.Info("Seeded initial admin user", map[string]interface{}{"email": email})
}

// EnsureStarterCatalog seeds a handful of perfumes on an empty catalog so
// the storefront has something to render out of the box.
func EnsureStarterCatalog(productRepo repository.ProductRepository) {
	existing, err := productRepo.GetAll()
	if err != nil {
		logger.Error(err, "Failed to inspect catalog for seeding", nil)
		return
	}
	if len(existing) > 0 {
		return
	}

	starters := []models.Product{
		{
			PublicID:    uuid.New().String(),
			Name:        "Nuit de Velours",
			Brand:       "Maison des Parfums",
			Description: "A velvet evening scent with amber and dark vanilla.",
			PriceCents:  14900,
			Volume:      "50ml",
			Notes:       models.StringList{"amber", "vanilla", "oud"},
			InStock:     true,
		},
		{
			PublicID:    uuid.New().String(),
			Name:        "Jardin d'Agrumes",
			Brand:       "Maison des Parfums",
			Description: "Bright citrus over a green vetiver base.",
			PriceCents:  11900,
			Volume:      "100ml",
			Notes:       models.StringList{"bergamot", "neroli", "vetiver"},
			InStock:     true,
		},
		{
			PublicID:    uuid.New().String(),
			Name:        "Bois Fumé",
			Brand:       "Maison des Parfums",
			Description: "Smoked cedar and leather for colder days.",
			PriceCents:  16900,
			Volume:      "50ml",
			Notes:       models.StringList{"cedar", "leather", "incense"},
			InStock:     true,
		},
	}

	for i := range starters {
		if err := productRepo.Create(&starters[i]); err != nil {
			logger.Error(err, "Failed to seed product", map[string]interface{}{"name": starters[i].Name})
			return
		}
	}

	logger.Info("Seeded starter catalog", map[string]interface{}{"count": len(starters)})
}
