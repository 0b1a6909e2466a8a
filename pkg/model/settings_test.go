package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings_Valid(t *testing.T) {
	s := DefaultSettings()
	assert.Empty(t, s.Validate())
	assert.Equal(t, "pkexec", s.PrivilegeFrontend)
	assert.Equal(t, 10, s.Swappiness.Apply)
	assert.Equal(t, 60, s.Swappiness.Restore)
	assert.Equal(t, "powersave", s.Governor.Apply)
	assert.Equal(t, "performance", s.Governor.Restore)
}

func TestSettings_HomePath(t *testing.T) {
	s := DefaultSettings()
	s.Home = "/home/alice"
	assert.Equal(t, "/home/alice/.cache/thumbnails/large", s.HomePath(".cache/thumbnails/large"))
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{"empty frontend", func(s *Settings) { s.PrivilegeFrontend = " " }, "privilege-frontend"},
		{"relative home", func(s *Settings) { s.Home = "home/alice" }, "home"},
		{"swappiness too high", func(s *Settings) { s.Swappiness.Apply = 201 }, "swappiness.apply"},
		{"negative swappiness", func(s *Settings) { s.Swappiness.Restore = -1 }, "swappiness.restore"},
		{"unknown governor", func(s *Settings) { s.Governor.Apply = "turbo" }, "governor.apply"},
		{"relative defrag target", func(s *Settings) { s.DefragTarget = "data" }, "defrag-target"},
		{"empty binary", func(s *Settings) { s.Binaries.Shred = "" }, "binaries.shred"},
		{"binary with arguments", func(s *Settings) { s.Binaries.Apt = "apt -q" }, "binaries.apt"},
		{"absolute cache dir", func(s *Settings) { s.UserCaches = []string{"/var/cache"} }, "user-caches[0]"},
		{"escaping cache dir", func(s *Settings) { s.UserCaches = []string{".cache", "../other"} }, "user-caches[1]"},
		{"home itself as cache dir", func(s *Settings) { s.UserCaches = []string{"."} }, "user-caches[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)

			errs := s.Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestSettings_ValidateCollectsAllErrors(t *testing.T) {
	s := DefaultSettings()
	s.PrivilegeFrontend = ""
	s.Swappiness.Apply = 500
	s.Governor.Restore = "fast"

	errs := s.Validate()
	assert.Len(t, errs, 3)
	assert.Contains(t, errs.Error(), "invalid settings:")
	assert.Contains(t, errs.Error(), "swappiness.apply: must be between 0 and 200, got 500")
	assert.Contains(t, errs.Error(), `governor.restore: unknown governor "fast"`)
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "home: bad", ValidationError{Field: "home", Message: "bad"}.Error())
	assert.Equal(t, "", ValidationErrors{}.Error())
}
