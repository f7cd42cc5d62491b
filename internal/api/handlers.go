package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"shortstr-url-shortener/internal/config"
	"shortstr-url-shortener/internal/db"
	"shortstr-url-shortener/internal/pool"
	"shortstr-url-shortener/internal/shortstr"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// ShortenRequest is the structure for the /shorten endpoint request body.
type ShortenRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ShortenResponse is the structure for the /shorten endpoint response body.
type ShortenResponse struct {
	ShortString string `json:"short_string"`
	OriginalURL string `json:"original_url"`
}

// ValidateRequest is the structure for the /validate endpoint request body.
type ValidateRequest struct {
	Candidate string `json:"candidate" binding:"required"`
}

// ValidateResponse is the structure for the /validate endpoint response body.
type ValidateResponse struct {
	Candidate string `json:"candidate"`
	Valid     bool   `json:"valid"`
}

// ShortenHandler handles the creation of new short URLs. It takes a URL,
// draws a shortstring from the pool, and saves the mapping to the database.
func ShortenHandler(c *gin.Context) {
	var req ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	// Check if the domain is allowed
	if config.AppConfig.AllowedDomains != "" {
		parsedURL, err := url.Parse(req.URL)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL format: " + err.Error()})
			return
		}
		hostname := parsedURL.Hostname()

		allowedDomainsList := strings.Split(config.AppConfig.AllowedDomains, ",")
		foundMatch := slices.IndexFunc(allowedDomainsList, func(allowedDomain string) bool {
			return strings.TrimSpace(allowedDomain) == hostname
		}) != -1

		if !foundMatch {
			c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("Domain '%s' is not allowed for shortening.", hostname)})
			return
		}
	}

	// Return the existing short string if this URL was shortened before.
	if existing, err := db.GetLinkByOriginalURL(req.URL); err == nil {
		c.JSON(http.StatusOK, ShortenResponse{
			ShortString: existing.ShortString,
			OriginalURL: existing.OriginalURL,
		})
		return
	} else if !gorm.IsRecordNotFoundError(err) {
		log.Printf("Error looking up existing URL %s: %v", req.URL, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error while checking existing URL"})
		return
	}

	// The pool's repeat check keeps collisions out, but the unique index is
	// the final arbiter; retry a few times if an insert still conflicts.
	maxAttempts := config.AppConfig.MaxGenerateAttempts
	for attempt := 1; ; attempt++ {
		shortString, err := pool.GlobalPool.Take()
		if err != nil {
			log.Printf("Error generating short string: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate short string"})
			return
		}

		newLink := db.Link{
			ShortString: shortString,
			OriginalURL: req.URL,
		}
		if err := db.CreateLink(&newLink); err != nil {
			if attempt < maxAttempts {
				log.Printf("Short string collision for %s on insert, retrying (%d/%d)...", shortString, attempt, maxAttempts)
				continue
			}
			log.Printf("Error creating link for short string %s, URL %s: %v", shortString, req.URL, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save link to database"})
			return
		}

		log.Printf("Shortened URL %s as %s", req.URL, shortString)
		c.JSON(http.StatusCreated, ShortenResponse{
			ShortString: newLink.ShortString,
			OriginalURL: newLink.OriginalURL,
		})
		return
	}
}

// RedirectHandler handles requests for short URLs, redirecting to the
// original URL. When checksums are enabled, malformed shortstrings are
// rejected up front without touching the database.
func RedirectHandler(c *gin.Context) {
	shortString := c.Param("shortString")
	if shortString == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Short string parameter is missing"})
		return
	}

	if config.AppConfig.IncludeChecksum {
		valid, err := shortstr.IsValid(shortString)
		if err != nil || !valid {
			log.Printf("Rejected short string %q with bad checksum without database lookup", shortString)
			c.JSON(http.StatusNotFound, gin.H{"error": "Short string not found"})
			return
		}
	}

	link, err := db.GetLinkByShortString(shortString)
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Short string not found"})
		} else {
			log.Printf("Error retrieving link for short string %s: %v", shortString, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	c.Redirect(http.StatusFound, link.OriginalURL)
}

// ValidateHandler checks whether a candidate shortstring carries a valid
// checksum, without any database lookup.
func ValidateHandler(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	valid, err := shortstr.IsValid(req.Candidate)
	if err != nil {
		if errors.Is(err, shortstr.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate candidate"})
		return
	}

	c.JSON(http.StatusOK, ValidateResponse{
		Candidate: req.Candidate,
		Valid:     valid,
	})
}

// HealthCheckHandler provides a simple health check endpoint.
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// StatusHandler reports pool state and link count.
func StatusHandler(c *gin.Context) {
	linkCount, err := db.CountLinks()
	if err != nil {
		log.Printf("Error counting links: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "UP",
		"link_count": linkCount,
		"pool":       pool.GlobalPool.GetStatus(),
		"shortstring_format": gin.H{
			"format":           config.AppConfig.ShortStringFormat,
			"include_checksum": config.AppConfig.IncludeChecksum,
		},
	})
}
