package db

import (
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite" // SQLite driver for testing
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) {
	var err error
	DB, err = gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err, "Failed to create test database")

	// Migrate the schema
	err = DB.AutoMigrate(&Link{}).Error
	require.NoError(t, err, "Failed to migrate test database")
}

func teardownTestDB(t *testing.T) {
	if DB != nil {
		err := DB.Close()
		assert.NoError(t, err, "Failed to close test database")
	}
}

func TestInitDB(t *testing.T) {
	// Skip this test since InitDB is hardcoded for postgres
	// We test the database operations with in-memory SQLite in other tests
	t.Skip("InitDB is hardcoded for postgres, skipping in tests")
}

func TestCreateLink(t *testing.T) {
	setupTestDB(t)
	defer teardownTestDB(t)

	tests := []struct {
		name    string
		link    *Link
		wantErr bool
	}{
		{
			name: "valid link",
			link: &Link{
				ShortString: "QEynbi",
				OriginalURL: "https://example.com",
			},
			wantErr: false,
		},
		{
			name: "duplicate short string",
			link: &Link{
				ShortString: "QEynbi", // Same as above
				OriginalURL: "https://different.com",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CreateLink(tt.link)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, tt.link.ID)
			}
		})
	}
}

func TestGetLinkByShortString(t *testing.T) {
	setupTestDB(t)
	defer teardownTestDB(t)

	testLink := &Link{
		ShortString: "aB3dEf",
		OriginalURL: "https://test.com",
	}
	err := CreateLink(testLink)
	require.NoError(t, err)

	tests := []struct {
		name        string
		shortString string
		wantErr     bool
	}{
		{
			name:        "existing short string",
			shortString: "aB3dEf",
			wantErr:     false,
		},
		{
			name:        "non-existing short string",
			shortString: "NTFND2",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := GetLinkByShortString(tt.shortString)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, gorm.IsRecordNotFoundError(err))
				assert.Nil(t, link)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, link)
				assert.Equal(t, testLink.ShortString, link.ShortString)
				assert.Equal(t, testLink.OriginalURL, link.OriginalURL)
			}
		})
	}
}

func TestGetLinkByOriginalURL(t *testing.T) {
	setupTestDB(t)
	defer teardownTestDB(t)

	testLink := &Link{
		ShortString: "xY7zW2",
		OriginalURL: "https://already-shortened.com/page",
	}
	require.NoError(t, CreateLink(testLink))

	link, err := GetLinkByOriginalURL("https://already-shortened.com/page")
	assert.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, "xY7zW2", link.ShortString)

	link, err = GetLinkByOriginalURL("https://never-seen.com")
	assert.Error(t, err)
	assert.True(t, gorm.IsRecordNotFoundError(err))
	assert.Nil(t, link)
}

func TestShortStringExists(t *testing.T) {
	setupTestDB(t)
	defer teardownTestDB(t)

	require.NoError(t, CreateLink(&Link{
		ShortString: "TAKEN5",
		OriginalURL: "https://example.com",
	}))

	assert.True(t, ShortStringExists("TAKEN5"))
	assert.False(t, ShortStringExists("FREE42"))
}

func TestCountLinks(t *testing.T) {
	setupTestDB(t)
	defer teardownTestDB(t)

	count, err := CountLinks()
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, CreateLink(&Link{ShortString: "abc24", OriginalURL: "https://a.com"}))
	require.NoError(t, CreateLink(&Link{ShortString: "def35", OriginalURL: "https://b.com"}))

	count, err = CountLinks()
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
