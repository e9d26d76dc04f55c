package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/unkn0wn-root/veilhex/codec"
)

// save writes detailed_results_<ts><ext> and summary_<ts><ext>.
func (p *Processor) save(results map[string]Result, sum *Summary) (string, string, error) {
	detailed, err := writeArtifact(p.outputDir, "detailed_results_"+sum.Timestamp, p.format, p.veil, results)
	if err != nil {
		return "", "", err
	}
	summary, err := writeArtifact(p.outputDir, "summary_"+sum.Timestamp, p.format, p.veil, *sum)
	if err != nil {
		return "", "", err
	}
	return detailed, summary, nil
}

func writeArtifact[V any](dir, base string, f codec.Format, veil bool, v V) (string, error) {
	c, ext, err := codec.ForFormat[V](f, veil)
	if err != nil {
		return "", err
	}
	b, err := c.Encode(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", base, err)
	}
	path := filepath.Join(dir, base+ext)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// maxArtifactSize bounds what ReadArtifact will decode.
var maxArtifactSize = 512 << 20

// ReadArtifact decodes an artifact written by a Processor with the same
// format and veil settings.
func ReadArtifact[V any](path string, f codec.Format, veil bool) (V, error) {
	var zero V
	c, _, err := codec.ForFormat[V](f, veil)
	if err != nil {
		return zero, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return zero, err
	}
	return codec.LimitCodec[V]{Inner: c, MaxDecode: maxArtifactSize}.Decode(b)
}
