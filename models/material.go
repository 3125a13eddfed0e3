package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialCategory string

const (
	CategoryFertilizer MaterialCategory = "Fertilizer"
	CategoryPesticide  MaterialCategory = "Pesticide"
	CategorySeeds      MaterialCategory = "Seeds"
	CategoryEquipment  MaterialCategory = "Equipment"
)

var MaterialCategories = []MaterialCategory{
	CategoryFertilizer,
	CategoryPesticide,
	CategorySeeds,
	CategoryEquipment,
}

func IsValidCategory(c MaterialCategory) bool {
	for _, cat := range MaterialCategories {
		if c == cat {
			return true
		}
	}
	return false
}

type UnitType string

const (
	UnitKg     UnitType = "kg"
	UnitLiters UnitType = "liters"
	UnitPacks  UnitType = "packs"
)

func IsValidUnitType(u UnitType) bool {
	return u == UnitKg || u == UnitLiters || u == UnitPacks
}

// DiseaseUsageTags are the disease targets a material may be tagged with.
var DiseaseUsageTags = []string{"Fungal Infection", "Bacterial Wilt"}

func IsValidDiseaseUsage(tag string) bool {
	for _, t := range DiseaseUsageTags {
		if tag == t {
			return true
		}
	}
	return false
}

type Material struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	MaterialName      string           `gorm:"size:150;not null" json:"materialName"`
	Category          MaterialCategory `gorm:"type:varchar(30);not null" json:"category"`
	DiseaseUsage      []string         `gorm:"serializer:json" json:"diseaseUsage"`
	UsageInstructions string           `gorm:"type:text;not null" json:"usageInstructions"`
	UnitType          UnitType         `gorm:"type:varchar(10);not null" json:"unitType"`
	PricePerUnit      float64          `gorm:"not null" json:"pricePerUnit"`
	SupplierName      string           `gorm:"size:150;not null" json:"supplierName"`
	SupplierContact   string           `gorm:"size:10;not null" json:"supplierContact"`
	Image             string           `gorm:"type:text" json:"image,omitempty"`
	CreatedAt         time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
