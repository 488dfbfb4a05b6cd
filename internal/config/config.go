package config

import (
	"os"
	"strconv"
)

type Config struct {
	ProjectID       string
	LogLevel        string
	ImageBucket     string
	ExternalBaseURL string // absolute base URL the service is reachable at
	PageSize        int    // search page size
}

func New() *Config {
	return &Config{
		ProjectID:       os.Getenv("PROJECTID"),
		LogLevel:        os.Getenv("LOGLEVEL"),
		ImageBucket:     os.Getenv("IMAGEBUCKET"),
		ExternalBaseURL: os.Getenv("EXTERNALBASEURL"),
		PageSize:        getPageSize(os.Getenv("PAGESIZE")),
	}
}

func getPageSize(raw string) int {
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return 10
	}
	return size
}
