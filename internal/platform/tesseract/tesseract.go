// Package tesseract implements the OCR collaborator by shelling out to the
// tesseract binary in TSV mode. Recognition failures of any kind yield an
// empty result, never an error: OCR is a fallback tier and replay must
// degrade, not crash.
package tesseract

import (
	"bytes"
	"image"
	"image/png"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mj1618/desktop-rpa/internal/logger"
	"github.com/mj1618/desktop-rpa/internal/platform"
)

// Engine runs the tesseract CLI.
type Engine struct {
	path  string
	langs string
}

// New returns an Engine. path "" uses "tesseract" from PATH; langs is a
// tesseract language spec like "eng" or "eng+chi_tra".
func New(path, langs string) *Engine {
	if path == "" {
		path = "tesseract"
	}
	if langs == "" {
		langs = "eng"
	}
	return &Engine{path: path, langs: langs}
}

// Available reports whether the tesseract binary can be found.
func (e *Engine) Available() bool {
	_, err := exec.LookPath(e.path)
	return err == nil
}

// ExtractTextBoxes implements platform.OCR.
func (e *Engine) ExtractTextBoxes(img image.Image) []platform.TextBox {
	var in bytes.Buffer
	if err := png.Encode(&in, img); err != nil {
		logger.Debug().Err(err).Msg("ocr: image encode failed")
		return nil
	}

	cmd := exec.Command(e.path, "stdin", "stdout", "-l", e.langs, "tsv")
	cmd.Stdin = &in
	out, err := cmd.Output()
	if err != nil {
		logger.Debug().Err(err).Msg("ocr: tesseract invocation failed")
		return nil
	}

	return parseTSV(out)
}

// parseTSV reads tesseract's TSV output. Columns:
// level page block par line word left top width height conf text.
// Rows with conf < 0 are layout nodes, not recognized words.
func parseTSV(out []byte) []platform.TextBox {
	var boxes []platform.TextBox

	lines := strings.Split(string(out), "\n")
	for i, line := range lines {
		if i == 0 || line == "" { // header
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 12 {
			continue
		}

		text := strings.TrimSpace(fields[11])
		if text == "" {
			continue
		}
		conf, err := strconv.ParseFloat(fields[10], 64)
		if err != nil || conf < 0 {
			continue
		}

		var geom [4]int
		ok := true
		for j, f := range fields[6:10] {
			v, err := strconv.Atoi(f)
			if err != nil {
				ok = false
				break
			}
			geom[j] = v
		}
		if !ok {
			continue
		}

		boxes = append(boxes, platform.TextBox{
			Text:       text,
			Confidence: conf,
			Bounds:     geom,
		})
	}
	return boxes
}
