package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

var defaultFacilities = []models.Facility{
	{Name: "Library", Icon: "ti ti-books", Description: "A quiet reading room with a curated collection for every grade."},
	{Name: "Science Laboratory", Icon: "ti ti-flask", Description: "Fully equipped physics, chemistry and biology lab."},
	{Name: "Computer Laboratory", Icon: "ti ti-device-desktop", Description: "Modern workstations with internet access for digital literacy classes."},
	{Name: "Sports Hall", Icon: "ti ti-ball-basketball", Description: "Indoor court for basketball, volleyball and badminton."},
	{Name: "Art Studio", Icon: "ti ti-palette", Description: "Dedicated space for painting, music and performance practice."},
	{Name: "Cafeteria", Icon: "ti ti-tools-kitchen-2", Description: "Clean and affordable canteen serving daily meals."},
}

// SeedFacilities inserts the default facility cards when the table is empty.
// Existing rows are never touched.
func SeedFacilities(db *gorm.DB) error {
	var total int64
	if err := db.Model(&models.Facility{}).Count(&total).Error; err != nil {
		return fmt.Errorf("failed to count facilities: %w", err)
	}
	if total > 0 {
		return nil
	}

	facilities := make([]models.Facility, len(defaultFacilities))
	copy(facilities, defaultFacilities)
	if err := db.Create(&facilities).Error; err != nil {
		return fmt.Errorf("failed to seed facilities: %w", err)
	}
	return nil
}
