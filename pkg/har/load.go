package har

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrParse is matched by every *ParseError via errors.Is.
var ErrParse = errors.New("har parse error")

// ParseError reports a document that is not valid JSON or lacks log.entries.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", where, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", where, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) true for any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// document mirrors only the structure Load requires to be present.
type document struct {
	Log *struct {
		Version string   `json:"version"`
		Creator Creator  `json:"creator"`
		Entries *[]Entry `json:"entries"`
	} `json:"log"`
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads and parses the HAR document at path. The file is closed before
// Load returns on every path.
func Load(path string) (*Archive, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	archive, err := Parse(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	archive.Path = path
	return archive, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", path, err)
	}
	return data, nil
}

// Parse decodes a HAR document from memory.
func Parse(data []byte) (*Archive, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Reason: "invalid JSON", Err: err}
	}
	if doc.Log == nil {
		return nil, &ParseError{Reason: "missing log"}
	}
	if doc.Log.Entries == nil {
		return nil, &ParseError{Reason: "missing log.entries"}
	}

	return &Archive{
		Version: doc.Log.Version,
		Creator: doc.Log.Creator,
		Entries: *doc.Log.Entries,
	}, nil
}
