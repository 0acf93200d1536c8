package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chris-regnier/calnotes/internal/note"
)

// Document is the nested year -> month -> day -> text shape of the persisted
// store. Keys are decimal integers without leading zeros.
type Document map[string]map[string]map[string]string

// ToDocument nests a collection by year, month and day.
func ToDocument(c Collection) Document {
	doc := make(Document)
	for d, text := range c {
		y, m := strconv.Itoa(d.Year), strconv.Itoa(int(d.Month))
		if doc[y] == nil {
			doc[y] = make(map[string]map[string]string)
		}
		if doc[y][m] == nil {
			doc[y][m] = make(map[string]string)
		}
		doc[y][m][strconv.Itoa(d.Day)] = text
	}
	return doc
}

// Collection flattens the document, validating every key. Blank leaves are
// skipped since empty text means "no note".
func (doc Document) Collection() (Collection, error) {
	c := make(Collection)
	for ys, months := range doc {
		year, err := parseKey("year", ys)
		if err != nil {
			return nil, err
		}
		for ms, days := range months {
			month, err := parseKey("month", ms)
			if err != nil {
				return nil, err
			}
			for ds, text := range days {
				day, err := parseKey("day", ds)
				if err != nil {
					return nil, err
				}
				d, err := note.NewDate(year, time.Month(month), day)
				if err != nil {
					return nil, fmt.Errorf("%w: %s/%s/%s: %v", ErrCorrupt, ys, ms, ds, err)
				}
				if text = note.NormalizeText(text); text != "" {
					c[d] = text
				}
			}
		}
	}
	return c, nil
}

func parseKey(kind, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s {
		return 0, fmt.Errorf("%w: %s key %q is not a decimal integer", ErrCorrupt, kind, s)
	}
	return n, nil
}

// EncodeJSON writes the collection as an indented JSON document with year,
// month and day keys in numeric order.
func EncodeJSON(c Collection) ([]byte, error) {
	doc := ToDocument(c)
	var b bytes.Buffer
	b.WriteByte('{')
	for i, y := range numericKeys(doc) {
		if i > 0 {
			b.WriteByte(',')
		}
		writeKey(&b, y)
		b.WriteByte('{')
		months := doc[y]
		for j, m := range numericKeys(months) {
			if j > 0 {
				b.WriteByte(',')
			}
			writeKey(&b, m)
			b.WriteByte('{')
			days := months[m]
			for k, d := range numericKeys(days) {
				if k > 0 {
					b.WriteByte(',')
				}
				writeKey(&b, d)
				text, err := json.Marshal(days[d])
				if err != nil {
					return nil, err
				}
				b.Write(text)
			}
			b.WriteByte('}')
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, b.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeKey(b *bytes.Buffer, k string) {
	b.WriteByte('"')
	b.WriteString(k)
	b.WriteString(`":`)
}

// numericKeys returns the map's keys ordered by integer value. Keys come from
// ToDocument and are always valid integers.
func numericKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	return keys
}

// DecodeJSON parses a persisted document. Blank input is an empty store; any
// structural or key error wraps ErrCorrupt.
func DecodeJSON(data []byte) (Collection, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return make(Collection), nil
	}
	// Pointers at every level let null be told apart from an empty object.
	var raw map[string]map[string]map[string]*string
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after document", ErrCorrupt)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is null", ErrCorrupt)
	}

	doc := make(Document, len(raw))
	for y, months := range raw {
		if months == nil {
			return nil, fmt.Errorf("%w: year %s is null", ErrCorrupt, y)
		}
		doc[y] = make(map[string]map[string]string, len(months))
		for m, days := range months {
			if days == nil {
				return nil, fmt.Errorf("%w: month %s/%s is null", ErrCorrupt, y, m)
			}
			doc[y][m] = make(map[string]string, len(days))
			for d, text := range days {
				if text == nil {
					return nil, fmt.Errorf("%w: day %s/%s/%s is null", ErrCorrupt, y, m, d)
				}
				doc[y][m][d] = *text
			}
		}
	}
	return doc.Collection()
}

// DecodeLegacy parses the older layout keyed by English month name with a
// list of lines per day, e.g. {"2024": {"August": {"4": ["Doctor"]}}}.
// Lines are trimmed and joined with newlines; days with no lines are skipped.
func DecodeLegacy(data []byte) (Collection, error) {
	var raw map[string]map[string]map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	doc := make(Document)
	for y, months := range raw {
		doc[y] = make(map[string]map[string]string)
		for name, days := range months {
			month, ok := monthByName(name)
			if !ok {
				return nil, fmt.Errorf("%w: unknown month %q", ErrCorrupt, name)
			}
			m := strconv.Itoa(int(month))
			if doc[y][m] == nil {
				doc[y][m] = make(map[string]string)
			}
			for d, lines := range days {
				var kept []string
				for _, line := range lines {
					if line = strings.TrimSpace(line); line != "" {
						kept = append(kept, line)
					}
				}
				doc[y][m][d] = strings.Join(kept, "\n")
			}
		}
	}
	return doc.Collection()
}

func monthByName(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), strings.TrimSpace(name)) {
			return m, true
		}
	}
	return 0, false
}
