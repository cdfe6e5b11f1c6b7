package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/avelichko/immun-registry/internal/logger"
	"github.com/avelichko/immun-registry/models"
	"golang.org/x/crypto/bcrypt"
)

// Demo data seeded into development deployments: 25 regular users with
// generated names plus one account per admin-family role. Every seeded
// account uses the password "password".
const (
	seedUserCount = 25
	seedPassword  = "password"
)

var seedFirstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael",
	"Linda", "William", "Elizabeth", "David", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen", "Daniel",
	"Lisa", "Matthew", "Margaret", "Anthony", "Betty", "Mark", "Sandra",
	"Steven", "Kimberly", "Paul", "Emily", "Andrew", "Donna", "Joshua",
	"Michelle",
}

var seedLastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
	"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
}

// Seed populates the database with demo users ("user1".."user25") and one
// account per admin-family role ("admin", "sysadmin", "frontdesk", none
// linked to a user profile). The operation is idempotent: if any user
// profiles already exist the seeding is skipped entirely.
func Seed(ctx context.Context, db *DB, storages *Storages, log *logger.Logger) error {
	existing, err := storages.UserRepository.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: counting users: %w", err)
	}
	if existing > 0 {
		log.Info().Int64("users", existing).Msg("demo data already present, skipping seed")
		return nil
	}

	// One hash shared across all demo accounts keeps seeding fast.
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hashing demo password: %w", err)
	}

	for i := 1; i <= seedUserCount; i++ {
		user := models.User{
			Name:       randomName(),
			DOB:        randomDOB(),
			Identifier: fmt.Sprintf("ID%d", 1000+rand.IntN(9000)),
		}
		account := models.Account{
			Username:     fmt.Sprintf("user%d", i),
			PasswordHash: string(hash),
			Role:         models.RoleUser,
		}

		if _, _, err := storages.UserRepository.CreateWithAccount(ctx, user, account); err != nil {
			return fmt.Errorf("seed: creating demo user %d: %w", i, err)
		}
	}

	adminAccounts := map[string]string{
		"admin":     models.RoleAdmin,
		"sysadmin":  models.RoleSysadmin,
		"frontdesk": models.RoleFrontdesk,
	}
	for username, role := range adminAccounts {
		var accountID int64
		err := db.QueryRowContext(ctx, insertAccount, username, string(hash), role, nil).Scan(&accountID)
		if err != nil {
			return fmt.Errorf("seed: creating %s account: %w", role, err)
		}
	}

	log.Info().Int("users", seedUserCount).Msg("seeded demo users and admin accounts")
	return nil
}

func randomName() string {
	return seedFirstNames[rand.IntN(len(seedFirstNames))] + " " + seedLastNames[rand.IntN(len(seedLastNames))]
}

func randomDOB() models.Date {
	return models.NewDate(1990+rand.IntN(31), time.Month(1+rand.IntN(12)), 1+rand.IntN(28))
}
