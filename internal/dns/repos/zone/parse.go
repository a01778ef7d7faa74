package zone

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/haukened/rr-authdns/internal/dns/common/log"
	"github.com/haukened/rr-authdns/internal/dns/domain"
)

// MaxTTL is the largest TTL accepted from zone data (RFC 2181 §8).
const MaxTTL = 2147483647

// ParseZone reads line-oriented zone data from r. Each non-blank line has the form
//
//	<name> [<ttl>] <class> <type> <data>
//
// and ';' or '#' starts a comment. Entries with an unsupported class or type,
// a wrong number of fields or a bad TTL are logged and skipped. A malformed
// name or address aborts the parse.
func ParseZone(r io.Reader, source string, defaultTTL uint32, logger log.Logger) ([]domain.Record, error) {
	var records []domain.Record

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(stripComment(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		ttl := defaultTTL
		switch len(fields) {
		case 4:
		case 5:
			v, err := parseTTL(fields[1])
			if err != nil {
				logger.Warn(map[string]any{"source": source, "line": lineNo, "ttl": fields[1]}, "Skipping zone entry with invalid TTL")
				continue
			}
			ttl = v
			fields = append(fields[:1], fields[2:]...)
		default:
			logger.Warn(map[string]any{"source": source, "line": lineNo, "fields": len(fields)}, "Skipping malformed zone entry")
			continue
		}

		rec, err := domain.ParseRecord(fields[0], fields[1], fields[2], fields[3], ttl)
		if skippable(err) {
			logger.Warn(map[string]any{"source": source, "line": lineNo, "error": err.Error()}, "Skipping unsupported zone entry")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", source, lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return records, nil
}

func stripComment(line string) string {
	if i := strings.IndexAny(line, ";#"); i >= 0 {
		return line[:i]
	}
	return line
}

func parseTTL(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if v > MaxTTL {
		return 0, fmt.Errorf("ttl %d exceeds %d", v, MaxTTL)
	}
	return uint32(v), nil
}

// skippable reports whether err only means the entry is outside what the store can hold.
func skippable(err error) bool {
	return errors.Is(err, domain.ErrUnsupportedClass) || errors.Is(err, domain.ErrUnsupportedRecordType)
}
