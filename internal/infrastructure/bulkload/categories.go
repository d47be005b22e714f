package bulkload

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"floe/internal/domain/category"
	"floe/internal/shared/logger"
)

// schemeFile is the YAML layout of one category scheme bulk file.
type schemeFile struct {
	Namespace    string         `yaml:"namespace"`
	Name         string         `yaml:"name"`
	RootConcepts []string       `yaml:"root_concepts"`
	Metadata     map[string]any `yaml:"metadata"`
	Terms        []termRecord   `yaml:"terms"`
}

type termRecord struct {
	Identifier string `yaml:"identifier"`
	Name       string `yaml:"name"`
	Path       string `yaml:"path"`
}

// CategoryLoader upserts one category scheme and its terms from a YAML
// bulk file, keyed by namespace and scheme-local identifier.
type CategoryLoader struct {
	schemeRepo category.SchemeRepository
	termRepo   category.TermRepository
	logger     logger.Interface
}

// NewCategoryLoader creates a new category loader.
func NewCategoryLoader(schemeRepo category.SchemeRepository, termRepo category.TermRepository, logger logger.Interface) *CategoryLoader {
	return &CategoryLoader{
		schemeRepo: schemeRepo,
		termRepo:   termRepo,
		logger:     logger.With("component", "bulkload.categories"),
	}
}

// Load reads the file and upserts the scheme and every term. It
// returns the number of terms applied.
func (l *CategoryLoader) Load(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read category file %s: %w", path, err)
	}

	var file schemeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("failed to parse category file %s: %w", path, err)
	}

	scheme, err := l.upsertScheme(ctx, &file)
	if err != nil {
		return 0, err
	}

	applied := 0
	for i, record := range file.Terms {
		if err := l.upsertTerm(ctx, scheme.ID(), record); err != nil {
			return applied, fmt.Errorf("term entry %d in %s: %w", i, path, err)
		}
		applied++
	}

	l.logger.Infow("category scheme loaded", "path", path, "namespace", file.Namespace, "terms", applied)
	return applied, nil
}

func (l *CategoryLoader) upsertScheme(ctx context.Context, file *schemeFile) (*category.Scheme, error) {
	existing, err := l.schemeRepo.GetByNamespace(ctx, file.Namespace)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := existing.UpdateDetails(file.Name, file.RootConcepts, file.Metadata); err != nil {
			return nil, fmt.Errorf("invalid scheme %s: %w", file.Namespace, err)
		}
		if err := l.schemeRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	scheme, err := category.NewScheme(file.Namespace, file.Name, file.RootConcepts, file.Metadata)
	if err != nil {
		return nil, fmt.Errorf("invalid scheme %s: %w", file.Namespace, err)
	}
	if err := l.schemeRepo.Create(ctx, scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

func (l *CategoryLoader) upsertTerm(ctx context.Context, schemeID uint, record termRecord) error {
	existing, err := l.termRepo.GetByIdentifier(ctx, record.Identifier)
	if err != nil {
		return err
	}

	if existing != nil {
		if err := existing.Upsert(schemeID, record.Name, record.Path); err != nil {
			return err
		}
		return l.termRepo.Update(ctx, existing)
	}

	term, err := category.NewTerm(schemeID, record.Identifier, record.Name, record.Path)
	if err != nil {
		return err
	}
	return l.termRepo.Create(ctx, term)
}
