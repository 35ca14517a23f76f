package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"smartbooking/internal/config"
	"smartbooking/internal/database"
	"smartbooking/internal/domain"
	"smartbooking/internal/repository"
)

// Seeds a local database with two accounts and a handful of resources
// covering every policy combination. Intended for dev and demo setups only.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	resources := repository.NewResourceRepository(db)

	seedUser(ctx, users, "admin", "admin-password", domain.RoleAdmin)
	seedUser(ctx, users, "alice", "alice-password", domain.RoleUser)

	seedResources := []domain.Resource{
		{
			Name:                  "Conference Room A",
			Type:                  domain.ResourceRoom,
			BasePricePerHour:      10,
			PricingPolicyKey:      "PEAK_HOURS",
			ApprovalPolicyKey:     "AUTO",
			CancellationPolicyKey: "FLEXIBLE",
		},
		{
			Name:                  "Recording Studio",
			Type:                  domain.ResourceStudio,
			BasePricePerHour:      45,
			PricingPolicyKey:      "PEAK_WEEKEND",
			ApprovalPolicyKey:     "ADMIN_REQUIRED",
			CancellationPolicyKey: "STRICT",
		},
		{
			Name:                  "Projector Kit",
			Type:                  domain.ResourceEquipment,
			BasePricePerHour:      5,
			PricingPolicyKey:      "DEFAULT",
			ApprovalPolicyKey:     "AUTO",
			CancellationPolicyKey: "FLEXIBLE",
		},
		{
			Name:                  "Photo Studio Loft",
			Type:                  domain.ResourceStudio,
			BasePricePerHour:      30,
			PricingPolicyKey:      "WEEKEND",
			ApprovalPolicyKey:     "ADMIN_REQUIRED",
			CancellationPolicyKey: "FLEXIBLE",
		},
	}
	for i := range seedResources {
		if err := resources.Create(ctx, &seedResources[i]); err != nil {
			log.Fatalf("seed resource %q: %v", seedResources[i].Name, err)
		}
		log.Printf("resource %d: %s (%s/%s/%s)",
			seedResources[i].ID, seedResources[i].Name,
			seedResources[i].PricingPolicyKey,
			seedResources[i].ApprovalPolicyKey,
			seedResources[i].CancellationPolicyKey)
	}

	log.Println("seed complete")
}

func seedUser(ctx context.Context, users *repository.UserRepository, username, password string, role domain.UserRole) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	u := &domain.User{Username: username, PasswordHash: string(hash), Role: role}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("seed user %q: %v", username, err)
	}
	log.Printf("user %d: %s (%s)", u.ID, username, role)
}
