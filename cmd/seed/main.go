package main

import (
	"log"
	"os"
	"time"

	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/internal/model"
	"shiksha-saathi-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting Demo Data Seeder...")

	teacher := seedUser(db, "Asha Patel", "teacher@shiksha.local", entity.RoleTeacher, "")
	student := seedUser(db, "Ravi Kumar", "student@shiksha.local", entity.RoleStudent, "7th")
	_ = teacher

	seedMessages(db, student.Id)

	color.Green("✅ Success: Demo data seeding completed.")
}

func seedUser(db *gorm.DB, fullName, email, role, grade string) *model.User {
	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("Skip: user %s already exists", email)
		return &existing
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error: Failed to hash password:", err)
	}

	user := model.User{
		Id:              uuid.New(),
		FullName:        fullName,
		Email:           email,
		Password:        string(hashed),
		Role:            role,
		IsEmailVerified: true,
	}
	if grade != "" {
		user.Grade = grade
	}

	if err := db.Create(&user).Error; err != nil {
		log.Fatal("Error: Failed to seed user:", err)
	}
	color.Green("Seeded user %s (%s)", email, role)
	return &user
}

func seedMessages(db *gorm.DB, studentId uuid.UUID) {
	var count int64
	db.Model(&model.ChatMessage{}).Where("user_id = ?", studentId).Count(&count)
	if count > 0 {
		color.Yellow("Skip: chat history already seeded")
		return
	}

	base := time.Now().Add(-2 * time.Hour)
	messages := []model.ChatMessage{
		{
			Id:          uuid.New(),
			UserId:      studentId,
			Role:        entity.RoleUser,
			Content:     "What is photosynthesis?",
			Timestamp:   base,
			DoubtStatus: entity.DoubtStatusPending,
		},
		{
			Id:           uuid.New(),
			UserId:       studentId,
			Role:         entity.RoleAssistant,
			Content:      "Photosynthesis is the process plants use to turn sunlight, water and carbon dioxide into food.",
			Timestamp:    base.Add(1 * time.Minute),
			ResponseType: "explain",
		},
		{
			Id:        uuid.New(),
			UserId:    studentId,
			Role:      entity.RoleSeparator,
			Content:   entity.SeparatorContent,
			Timestamp: base.Add(2 * time.Minute),
		},
		{
			Id:          uuid.New(),
			UserId:      studentId,
			Role:        entity.RoleUser,
			Content:     "How do I solve the equation 2x + 3 = 11?",
			Timestamp:   base.Add(3 * time.Minute),
			DoubtStatus: entity.DoubtStatusPending,
		},
		{
			Id:           uuid.New(),
			UserId:       studentId,
			Role:         entity.RoleAssistant,
			Content:      "Subtract 3 from both sides to get 2x = 8, then divide by 2. So x = 4.",
			Timestamp:    base.Add(4 * time.Minute),
			ResponseType: "solve",
		},
	}

	for _, m := range messages {
		if err := db.Create(&m).Error; err != nil {
			log.Fatal("Error: Failed to seed chat message:", err)
		}
	}
	color.Green("Seeded %d chat messages", len(messages))
}
