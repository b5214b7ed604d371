package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gowebpki/jcs"
)

// Envelope wraps the JSON rendering of a report with a digest of its scan
// content. Two runs over identical scan results share a digest even though
// run id and timestamp differ.
type Envelope struct {
	Digest string  `json:"digest"`
	Report *Report `json:"report"`
}

// JSONEmitter renders a report as an indented JSON envelope.
type JSONEmitter struct {
	out io.Writer
}

var _ Emitter = (*JSONEmitter)(nil)

// NewJSONEmitter creates a JSONEmitter writing to out.
func NewJSONEmitter(out io.Writer) *JSONEmitter {
	return &JSONEmitter{out: out}
}

// Emit writes the report envelope.
func (e *JSONEmitter) Emit(rep *Report) error {
	digest, err := ContentDigest(rep)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(Envelope{Digest: digest, Report: rep})
}

// ContentDigest returns the hex SHA-256 of the canonical JSON form
// (RFC 8785) of the report's sections. Run id, timestamp, host, and
// warnings do not contribute.
func ContentDigest(rep *Report) (string, error) {
	raw, err := json.Marshal(rep.Sections)
	if err != nil {
		return "", fmt.Errorf("marshaling sections: %w", err)
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalizing sections: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
