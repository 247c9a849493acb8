package database

// Reference-table models. Surrogate IDs are assigned by the database; natural
// keys (names) are what the pipeline resolves against.

// Country is a distinct plant-origin country.
type Country struct {
	CountryID int    `gorm:"column:country_id;primaryKey;autoIncrement"`
	Name      string `gorm:"column:country_name;uniqueIndex"`
}

// TableName customizes the table name used by GORM.
func (Country) TableName() string { return "countries" }

// OriginLocation is a distinct city within a country.
type OriginLocation struct {
	LocationID int      `gorm:"column:location_id;primaryKey;autoIncrement"`
	City       string   `gorm:"column:city;index:idx_city_country,unique"`
	CountryID  int      `gorm:"column:country_id;index:idx_city_country,unique"`
	Latitude   *float64 `gorm:"column:latitude"`
	Longitude  *float64 `gorm:"column:longitude"`
}

func (OriginLocation) TableName() string { return "origin_locations" }

// Botanist is the reference entity resolved by name during transform runs.
type Botanist struct {
	BotanistID int     `gorm:"column:botanist_id;primaryKey;autoIncrement"`
	Name       string  `gorm:"column:name;uniqueIndex"`
	Email      *string `gorm:"column:email"`
	Phone      *string `gorm:"column:phone"`
}

func (Botanist) TableName() string { return "botanists" }

// Plant keeps its API-assigned identifier rather than an auto-increment key.
type Plant struct {
	PlantID        int     `gorm:"column:plant_id;primaryKey"`
	Name           string  `gorm:"column:name"`
	ScientificName *string `gorm:"column:scientific_name"`
	LocationID     *int    `gorm:"column:location_id"`
}

func (Plant) TableName() string { return "plants" }
