package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/packt/internal/model"
)

// ArchiveVersion is written to every archive.
const ArchiveVersion = "1.0.0"

// Archive is the JSON record of a sweep or batch run.
type Archive struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Solver    string          `json:"solver,omitempty"`
	Config    model.AppConfig `json:"config"`
	Records   []model.Record  `json:"records"`
}

// NewArchive snapshots the configuration and records of a run.
func NewArchive(solver model.SolverSpec, config model.AppConfig, records []model.Record) Archive {
	return Archive{
		Version:   ArchiveVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Solver:    solver.String(),
		Config:    config,
		Records:   append([]model.Record{}, records...),
	}
}

// ExportArchive writes the archive as indented JSON.
func ExportArchive(exportPath string, archive Archive) error {
	if archive.Version == "" {
		archive.Version = ArchiveVersion
	}
	if archive.CreatedAt == "" {
		archive.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal archive: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write archive file: %w", err)
	}
	return nil
}

// ImportArchive reads an archive written by ExportArchive.
func ImportArchive(importPath string) (Archive, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return Archive{}, fmt.Errorf("failed to read archive file: %w", err)
	}
	var archive Archive
	if err := json.Unmarshal(data, &archive); err != nil {
		return Archive{}, fmt.Errorf("failed to parse archive file: %w", err)
	}
	if archive.Version == "" {
		return Archive{}, fmt.Errorf("invalid archive file: missing version field")
	}
	if archive.Config.RecentProblems == nil {
		archive.Config.RecentProblems = []string{}
	}
	if archive.Records == nil {
		archive.Records = []model.Record{}
	}
	return archive, nil
}
