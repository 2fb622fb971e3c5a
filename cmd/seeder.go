package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	categoryDatamodel "github.com/gastora/expense-api/internal/core/datamodel/category"
	expenseDatamodel "github.com/gastora/expense-api/internal/core/datamodel/expense"
	userDatamodel "github.com/gastora/expense-api/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"attachments", "expenses", "expense_categories", "users", "companies"} {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		if err := seedDemoData(gormDB); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
	},
}

func seedDemoData(db *gorm.DB) error {
	var existing int64
	if err := db.Model(&userDatamodel.Company{}).Where("name = ?", "Acme de México").Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		fmt.Println("demo company already exists; skipping seed")
		return nil
	}

	now := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	company := &userDatamodel.Company{
		ID:        uuid.NewString(),
		Name:      "Acme de México",
		Status:    "active",
		Plan:      "trial",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(company).Error; err != nil {
		return err
	}

	admin := &userDatamodel.User{
		ID:           uuid.NewString(),
		Email:        "admin@acme.mx",
		PasswordHash: string(hash),
		FirstName:    "Adriana",
		LastName:     "Ruiz",
		Role:         "admin",
		Status:       "active",
		CompanyID:    company.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	employee := &userDatamodel.User{
		ID:           uuid.NewString(),
		Email:        "empleado@acme.mx",
		PasswordHash: string(hash),
		FirstName:    "Luis",
		LastName:     "Hernández",
		Role:         "employee",
		Status:       "active",
		CompanyID:    company.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create([]*userDatamodel.User{admin, employee}).Error; err != nil {
		return err
	}
	fmt.Println("Seeded users:", admin.Email, employee.Email)

	travelLimit := decimal.RequireFromString("25000.00")
	categories := []*categoryDatamodel.ExpenseCategory{
		{ID: uuid.NewString(), CompanyID: company.ID, Name: "Viajes", MaxAmount: &travelLimit, RequiresApproval: true, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), CompanyID: company.ID, Name: "Comidas", RequiresApproval: true, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), CompanyID: company.ID, Name: "Oficina", RequiresApproval: false, IsActive: true, CreatedAt: now, UpdatedAt: now},
	}
	if err := db.Create(categories).Error; err != nil {
		return err
	}
	fmt.Println("Seeded categories:", len(categories))

	merchant := "Restaurante El Cardenal"
	expenses := []*expenseDatamodel.Expense{
		{
			ID:           uuid.NewString(),
			CompanyID:    company.ID,
			UserID:       employee.ID,
			CategoryID:   &categories[1].ID,
			ExpenseDate:  now.AddDate(0, 0, -3),
			Amount:       decimal.RequireFromString("842.50"),
			Currency:     "MXN",
			Description:  "Comida con cliente para revisión de contrato",
			MerchantName: &merchant,
			Status:       "pending",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:          uuid.NewString(),
			CompanyID:   company.ID,
			UserID:      employee.ID,
			CategoryID:  &categories[0].ID,
			ExpenseDate: now.AddDate(0, 0, -10),
			Amount:      decimal.RequireFromString("4380.00"),
			Currency:    "MXN",
			Description: "Vuelo redondo CDMX - Monterrey para visita de planta",
			Status:      "approved",
			ApprovedBy:  &admin.ID,
			ApprovedAt:  &now,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	if err := db.Create(expenses).Error; err != nil {
		return err
	}
	fmt.Println("Seeded expenses:", len(expenses))

	return nil
}
