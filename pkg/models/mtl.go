package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/asciiview/internal/logger"
	"go.uber.org/zap"
)

// DefaultDiffuse is the diffuse color of a material that never sets Kd.
var DefaultDiffuse = colorful.Color{R: 1, G: 1, B: 1}

// loadMTLFile appends the materials of an MTL file to mesh.
func loadMTLFile(mesh *Mesh, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return readMTL(mesh, f, filepath.Base(path))
}

// readMTL reads newmtl and Kd statements. Other statements are ignored and
// malformed ones are logged and skipped, since colors are never essential
// to the geometry.
func readMTL(mesh *Mesh, r io.Reader, name string) error {
	// Kd applies to the last material declared in this file.
	current := -1

	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				logger.Warn("newmtl without a name", zap.String("file", name), zap.Int("line", lineNo))
				continue
			}
			mesh.Materials = append(mesh.Materials, Material{Name: fields[1], Diffuse: DefaultDiffuse})
			current = len(mesh.Materials) - 1

		case "Kd":
			if current < 0 {
				logger.Warn("expected newmtl before Kd", zap.String("file", name), zap.Int("line", lineNo))
				continue
			}
			rgb, err := parseVec3(fields[1:])
			if err != nil {
				logger.Warn("invalid Kd", zap.String("file", name), zap.Int("line", lineNo), zap.Error(err))
				continue
			}
			mesh.Materials[current].Diffuse = colorful.Color{R: rgb.X, G: rgb.Y, B: rgb.Z}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read mtl: %w", err)
	}
	return nil
}
