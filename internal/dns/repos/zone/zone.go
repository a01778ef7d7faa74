// Package zone loads authoritative records from a directory of zone files.
// Plain files (.zone, .txt) use a line-oriented format; YAML, JSON and TOML
// files describe one zone each under a zone_root key.
package zone

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// LoadZoneDirectory walks dir in lexical order and returns the records of every
// supported file, in file order. Files with other extensions are ignored.
func LoadZoneDirectory(dir string, defaultTTL uint32, logger log.Logger) ([]domain.Record, error) {
	var records []domain.Record

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		recs, err := loadZoneFile(path, defaultTTL, logger)
		if err != nil {
			return fmt.Errorf("error parsing zone file %s: %w", path, err)
		}
		if len(recs) > 0 {
			logger.Debug(map[string]any{"file": path, "records": len(recs)}, "Loaded zone file")
		}
		records = append(records, recs...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func loadZoneFile(path string, defaultTTL uint32, logger log.Logger) ([]domain.Record, error) {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zone", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ParseZone(f, path, defaultTTL, logger)
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return nil, nil
	}
	return loadStructuredZone(path, parser, defaultTTL, logger)
}

// loadStructuredZone reads a file of the form
//
//	zone_root: example.com
//	ttl: 60            # optional
//	"@":   {A: 192.0.2.1}
//	www:   {A: [192.0.2.2, 192.0.2.3]}
//
// Owner labels are relative to zone_root unless they end in a dot.
func loadStructuredZone(path string, parser koanf.Parser, defaultTTL uint32, logger log.Logger) ([]domain.Record, error) {
	// owner names contain dots, so they must not be treated as key paths
	k := koanf.New("/")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load zone file %s: %w", path, err)
	}

	root := strings.TrimSuffix(strings.TrimSpace(k.String("zone_root")), ".")
	if root == "" {
		return nil, fmt.Errorf("zone file %s missing 'zone_root'", path)
	}

	ttl := defaultTTL
	if k.Exists("ttl") {
		v, err := parseTTL(k.String("ttl"))
		if err != nil {
			return nil, fmt.Errorf("zone file %s: invalid ttl: %w", path, err)
		}
		ttl = v
	}

	raw := k.Raw()
	var records []domain.Record
	for _, label := range sortedKeys(raw) {
		if label == "zone_root" || label == "ttl" {
			continue
		}
		byType, ok := raw[label].(map[string]any)
		if !ok {
			logger.Warn(map[string]any{"file": path, "label": label}, "Skipping zone entry without record types")
			continue
		}
		owner := expandName(label, root)
		for _, rrtype := range sortedKeys(byType) {
			for _, value := range toStringValues(byType[rrtype]) {
				rec, err := domain.ParseRecord(owner, "IN", rrtype, value, ttl)
				if skippable(err) {
					logger.Warn(map[string]any{"file": path, "name": owner, "error": err.Error()}, "Skipping unsupported zone entry")
					continue
				}
				if err != nil {
					return nil, fmt.Errorf("invalid record in %s: %w", path, err)
				}
				records = append(records, rec)
			}
		}
	}
	return records, nil
}

// expandName qualifies label with root. "@" is the root itself.
func expandName(label, root string) string {
	if label == "@" {
		return root
	}
	if strings.HasSuffix(label, ".") {
		return label
	}
	return label + "." + root
}

// toStringValues accepts a string or a list of strings and drops empty or
// non-string elements.
func toStringValues(val any) []string {
	switch v := val.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
