package seed

import (
	_ "embed"
	"fmt"

	"stayhub/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed cities.yml
var citiesYAML []byte

type cityFixture struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
}

type cityFixtureFile struct {
	Cities []cityFixture `yaml:"cities"`
}

// Cities upserts the built-in city list. Existing rows keep their IDs so
// properties stay attached across re-seeds.
func Cities(db *gorm.DB) ([]models.City, error) {
	var file cityFixtureFile
	if err := yaml.Unmarshal(citiesYAML, &file); err != nil {
		return nil, fmt.Errorf("parse city fixtures: %w", err)
	}

	cities := make([]models.City, len(file.Cities))
	for i, fx := range file.Cities {
		cities[i] = models.City{Name: fx.Name, Image: fx.Image}
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"image"}),
	}).Create(&cities).Error; err != nil {
		return nil, fmt.Errorf("upsert cities: %w", err)
	}

	// Re-read so callers see the persisted IDs even for conflicting rows.
	var out []models.City
	if err := db.Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	return out, nil
}
