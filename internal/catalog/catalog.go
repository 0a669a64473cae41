package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const catalogMode fs.FileMode = 0o644

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Catalog is one locale file held in memory. Keys keep the order of the file
// and new keys are appended. Values are kept as raw JSON so entries that are
// not plain strings survive a rewrite untouched.
type Catalog struct {
	Path    string
	entries *orderedmap.OrderedMap[string, json.RawMessage]
}

// New returns an empty catalog that will be saved to path.
func New(path string) *Catalog {
	return &Catalog{
		Path:    path,
		entries: orderedmap.New[string, json.RawMessage](),
	}
}

// Load reads a catalog file. The file must hold a single JSON object.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse catalog %s: invalid JSON", path)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("parse catalog %s: top level is not an object", path)
	}

	c := New(path)
	root.ForEach(func(key, value gjson.Result) bool {
		c.entries.Set(key.String(), json.RawMessage(value.Raw))
		return true
	})
	return c, nil
}

// Has reports whether key is present, whatever its value.
func (c *Catalog) Has(key string) bool {
	_, ok := c.entries.Get(key)
	return ok
}

// Get returns the string value of key. Entries that are not strings report
// false.
func (c *Catalog) Get(key string) (string, bool) {
	raw, ok := c.entries.Get(key)
	if !ok {
		return "", false
	}
	v := gjson.ParseBytes(raw)
	if v.Type != gjson.String {
		return "", false
	}
	return v.String(), true
}

// Set stores a string value for key, replacing any previous value.
func (c *Catalog) Set(key, value string) error {
	raw, err := encodeString(value)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", key, err)
	}
	c.entries.Set(key, raw)
	return nil
}

// Delete removes key.
func (c *Catalog) Delete(key string) {
	c.entries.Delete(key)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return c.entries.Len()
}

// Keys returns the keys in file order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, c.entries.Len())
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Bytes renders the catalog as an indented JSON object with a trailing
// newline.
func (c *Catalog) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := encodeString(pair.Key)
		if err != nil {
			return nil, fmt.Errorf("encode key %q: %w", pair.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(pair.Value)
	}
	buf.WriteByte('}')

	return pretty.PrettyOptions(buf.Bytes(), prettyOptions), nil
}

// Save replaces the file at Path with the rendered catalog. The write goes
// through a temporary file and a rename. A catalog written for the first time
// gets mode 0644.
func (c *Catalog) Save() error {
	if c.Path == "" {
		return errors.New("save catalog: no path")
	}

	data, err := c.Bytes()
	if err != nil {
		return err
	}

	_, statErr := os.Stat(c.Path)
	fresh := errors.Is(statErr, fs.ErrNotExist)

	if err := atomic.WriteFile(c.Path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write catalog %s: %w", c.Path, err)
	}

	// atomic creates new files 0600; existing catalogs keep their mode.
	if fresh {
		if err := os.Chmod(c.Path, catalogMode); err != nil {
			return fmt.Errorf("chmod catalog %s: %w", c.Path, err)
		}
	}
	return nil
}

// encodeString encodes s as a JSON string without escaping HTML characters.
func encodeString(s string) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
