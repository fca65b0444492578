package pkgjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Section is a top-level package.json object Update can patch.
type Section string

const (
	Dependencies    Section = "dependencies"
	DevDependencies Section = "devDependencies"
	Scripts         Section = "scripts"
)

// Entry is one key to set in a section. An empty Value in a dependency
// section means "latest".
type Entry struct {
	Key   string
	Value string
}

// Resolver returns the latest version of a package, or "" when none could
// be determined.
type Resolver func(pkg string) (string, error)

// Update sets entries in section of projectPath/package.json. Empty
// dependency versions are resolved through resolve and pinned as ^version;
// entries that resolve to "" are skipped. A missing section is created.
//
// Key order and the file's indentation are preserved.
func Update(projectPath string, section Section, entries []Entry, resolve Resolver) error {
	path := filepath.Join(projectPath, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading package.json: %w", err)
	}

	root, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	sec := &object{}
	if raw, ok := root.get(string(section)); ok {
		if sec, err = decodeObject(raw); err != nil {
			return fmt.Errorf("%s in %s is not an object: %w", section, path, err)
		}
	}

	for _, e := range entries {
		value := e.Value
		if value == "" && section != Scripts {
			if resolve == nil {
				continue
			}
			v, err := resolve(e.Key)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", e.Key, err)
			}
			if v == "" {
				continue
			}
			value = "^" + v
		}
		enc, err := marshalString(value)
		if err != nil {
			return err
		}
		sec.set(e.Key, enc)
	}

	encSec, err := sec.encode()
	if err != nil {
		return err
	}
	root.set(string(section), encSec)
	compact, err := root.encode()
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", detectIndent(data)); err != nil {
		return fmt.Errorf("formatting package.json: %w", err)
	}
	out.WriteByte('\n')
	return os.WriteFile(path, out.Bytes(), 0o644)
}

// detectIndent returns the leading whitespace of the first indented line,
// defaulting to two spaces.
func detectIndent(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" || (line[0] != ' ' && line[0] != '\t') {
			continue
		}
		ws := line[:len(line)-len(strings.TrimLeft(line, string(line[0])))]
		return ws
	}
	return "  "
}

// object is a JSON object that remembers key order.
type object struct {
	keys   []string
	values map[string]json.RawMessage
}

func (o *object) get(key string) (json.RawMessage, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *object) set(key string, v json.RawMessage) {
	if o.values == nil {
		o.values = make(map[string]json.RawMessage)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func decodeObject(data []byte) (*object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, found %v", tok)
	}
	o := &object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected key, found %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		o.set(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *object) encode() (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := json.Compact(&buf, o.values[k]); err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalString encodes s without HTML escaping, so ranges like ">=1 <2"
// stay readable.
func marshalString(s string) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
