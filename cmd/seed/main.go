package main

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskmanager/internal/config"
	"taskmanager/internal/db"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

var starterCategories = []string{
	"Home",
	"School",
	"Work",
}

const (
	demoUsername = "demo"
	demoPassword = "demo1234"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	categoryRepo := repository.NewCategoryRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	created, err := seedCategories(ctx, gormDB, categoryRepo)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	log.Printf("Categories seeded (%d new)", created)

	if err := seedDemoUser(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	if err := seedDemoTask(ctx, gormDB, userRepo); err != nil {
		log.Fatalf("Failed to seed demo task: %v", err)
	}

	log.Println("Seed completed successfully!")
}

// seedCategories inserts the starter categories, skipping ones that exist.
func seedCategories(ctx context.Context, gormDB *gorm.DB, repo repository.CategoryRepository) (int, error) {
	created := 0
	for _, name := range starterCategories {
		var existing model.Category
		err := gormDB.WithContext(ctx).Where("category_name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}
		if err := repo.Create(ctx, &model.Category{CategoryName: name}); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// seedDemoUser creates the demo account if it is absent.
func seedDemoUser(ctx context.Context, repo repository.UserRepository) error {
	if _, err := repo.FindByUsername(ctx, demoUsername); err == nil {
		log.Printf("Demo user %q already present", demoUsername)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := repo.Create(ctx, &model.User{
		Username: demoUsername,
		Password: string(hashed),
	}); err != nil {
		return err
	}
	log.Printf("Demo user %q created", demoUsername)
	return nil
}

// seedDemoTask gives the demo user one example task so the profile page is
// not empty on first login.
func seedDemoTask(ctx context.Context, gormDB *gorm.DB, userRepo repository.UserRepository) error {
	user, err := userRepo.FindByUsername(ctx, demoUsername)
	if err != nil {
		return err
	}

	var existing model.Task
	err = gormDB.WithContext(ctx).Where("task_name = ?", "Try the task tracker").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var category model.Category
	if err := gormDB.WithContext(ctx).Order("category_name ASC").First(&category).Error; err != nil {
		return err
	}

	task := model.Task{
		TaskName:        "Try the task tracker",
		TaskDescription: "Add, edit and delete a task of your own.",
		IsUrgent:        false,
		DueDate:         time.Now().AddDate(0, 0, 7),
		CategoryID:      category.ID,
		TaskOwnerID:     &user.ID,
	}
	if err := gormDB.WithContext(ctx).Create(&task).Error; err != nil {
		return err
	}
	log.Println("Demo task created")
	return nil
}
