package gtr

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"floe/internal/shared/config"
	"floe/internal/shared/logger"
)

// MappingTables translate external registry identifiers into local
// model identifiers. They are loaded once at construction and treated
// as immutable configuration for the lifetime of the process.
type MappingTables struct {
	organisations map[string]string
	people        map[string]string
	topics        map[string]string
	subjects      map[string]string
}

// LoadMappingTables reads the four identifier mapping files. A missing
// file is tolerated and yields an empty table so operators can roll out
// mappings incrementally.
func LoadMappingTables(cfg *config.MappingTablesConfig, log logger.Interface) (*MappingTables, error) {
	tablesLog := log.With("component", "gtr.mappingtables")

	organisations, err := loadTable(cfg.Organisations, tablesLog)
	if err != nil {
		return nil, fmt.Errorf("failed to load organisation mapping table: %w", err)
	}
	people, err := loadTable(cfg.People, tablesLog)
	if err != nil {
		return nil, fmt.Errorf("failed to load people mapping table: %w", err)
	}
	topics, err := loadTable(cfg.Topics, tablesLog)
	if err != nil {
		return nil, fmt.Errorf("failed to load topic mapping table: %w", err)
	}
	subjects, err := loadTable(cfg.Subjects, tablesLog)
	if err != nil {
		return nil, fmt.Errorf("failed to load subject mapping table: %w", err)
	}

	return &MappingTables{
		organisations: organisations,
		people:        people,
		topics:        topics,
		subjects:      subjects,
	}, nil
}

// NewMappingTables builds tables from in-memory maps.
func NewMappingTables(organisations, people, topics, subjects map[string]string) *MappingTables {
	if organisations == nil {
		organisations = map[string]string{}
	}
	if people == nil {
		people = map[string]string{}
	}
	if topics == nil {
		topics = map[string]string{}
	}
	if subjects == nil {
		subjects = map[string]string{}
	}
	return &MappingTables{
		organisations: organisations,
		people:        people,
		topics:        topics,
		subjects:      subjects,
	}
}

// Organisation resolves an external organisation resource URI to a
// local registry identifier.
func (t *MappingTables) Organisation(externalID string) (string, bool) {
	v, ok := t.organisations[externalID]
	return v, ok
}

// Person resolves an external person resource URI to a local
// external-identifier URI.
func (t *MappingTables) Person(externalID string) (string, bool) {
	v, ok := t.people[externalID]
	return v, ok
}

// Topic resolves an external research topic identifier to a local
// category scheme identifier.
func (t *MappingTables) Topic(externalID string) (string, bool) {
	v, ok := t.topics[externalID]
	return v, ok
}

// Subject resolves an external research subject identifier to a local
// category scheme identifier.
func (t *MappingTables) Subject(externalID string) (string, bool) {
	v, ok := t.subjects[externalID]
	return v, ok
}

// loadTable parses one delimited mapping file into a map. Lines hold an
// external identifier and a local identifier separated by a pipe or a
// comma; blank lines and # comments are skipped.
func loadTable(path string, log logger.Interface) (map[string]string, error) {
	table := make(map[string]string)
	if path == "" {
		return table, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnw("mapping table file missing, using empty table", "path", path)
			return table, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		delimiter := ","
		if strings.Contains(line, "|") {
			delimiter = "|"
		}
		parts := strings.SplitN(line, delimiter, 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed mapping entry at %s:%d", path, lineNo)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" || value == "" {
			return nil, fmt.Errorf("empty mapping entry at %s:%d", path, lineNo)
		}
		table[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	log.Debugw("mapping table loaded", "path", path, "entries", len(table))
	return table, nil
}
