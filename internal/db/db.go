package db

import (
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL driver
)

// Link represents the data model for a shortened URL. The short string is
// the checksum-bearing identifier produced by the shortstr package.
type Link struct {
	gorm.Model
	ShortString string `gorm:"unique_index;not null"`
	OriginalURL string `gorm:"not null;index"`
}

var DB *gorm.DB

// InitDB initializes the database connection and migrates the schema.
func InitDB(dataSourceName string) error {
	var err error
	DB, err = gorm.Open("postgres", dataSourceName)
	if err != nil {
		return err
	}

	// Migrate the schema
	DB.AutoMigrate(&Link{})

	return nil
}

// GetLinkByShortString retrieves a link by its short string.
func GetLinkByShortString(shortString string) (*Link, error) {
	var link Link
	if err := DB.Where("short_string = ?", shortString).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// GetLinkByOriginalURL retrieves the existing link for a URL, if any.
func GetLinkByOriginalURL(originalURL string) (*Link, error) {
	var link Link
	if err := DB.Where("original_url = ?", originalURL).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// ShortStringExists reports whether a short string is already taken. It is
// what the service plugs into the generator's repeat-check predicate.
func ShortStringExists(shortString string) bool {
	var count int
	if err := DB.Model(&Link{}).Where("short_string = ?", shortString).Count(&count).Error; err != nil {
		// Treat a failed lookup as a collision so generation retries rather
		// than handing out a possibly duplicate short string.
		return true
	}
	return count > 0
}

// CreateLink creates a new link record in the database.
func CreateLink(link *Link) error {
	if err := DB.Create(link).Error; err != nil {
		return err
	}
	return nil
}

// CountLinks returns the total number of stored links.
func CountLinks() (int, error) {
	var count int
	if err := DB.Model(&Link{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
