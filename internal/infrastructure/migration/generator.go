package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

var migrationNamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Generator handles creation of new migration files
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

// NewGenerator creates a new migration generator
func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.With("component", "migration.generator"),
		now:         time.Now,
	}
}

// CreateMigration writes a goose SQL file with Up and Down sections and returns its path.
func (g *Generator) CreateMigration(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !migrationNamePattern.MatchString(name) {
		return "", fmt.Errorf("invalid migration name %q: use lowercase letters, digits and underscores", name)
	}

	g.logger.Infow("creating new migration", "name", name)

	createdAt := g.now().UTC()
	fileName := fmt.Sprintf("%s_%s.sql", createdAt.Format("20060102150405"), name)
	filePath := filepath.Join(g.scriptsPath, fileName)

	// Ensure scripts directory exists
	if err := os.MkdirAll(g.scriptsPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	if _, err := os.Stat(filePath); err == nil {
		return "", fmt.Errorf("migration file already exists: %s", filePath)
	}

	if err := os.WriteFile(filePath, []byte(g.template(name, createdAt)), 0644); err != nil {
		return "", fmt.Errorf("failed to create migration file: %w", err)
	}

	g.logger.Infow("migration file created successfully", "file", filePath)
	return filePath, nil
}

func (g *Generator) template(name string, createdAt time.Time) string {
	return fmt.Sprintf(`-- Migration: %s
-- Created: %s

-- +goose Up
-- Add your SQL statements here

-- +goose Down
-- Add your rollback SQL statements here
`, name, createdAt.Format("2006-01-02 15:04:05"))
}
