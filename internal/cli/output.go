package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/dungeonforge/pkg/core/geom"
	"github.com/matzehuels/dungeonforge/pkg/errors"
)

// writeFile writes data to path, or to stdout when path is empty.
func writeFile(stdout io.Writer, data []byte, path string) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// parsePoint parses "x,y" into a point.
func parsePoint(s string) (geom.Vec2, error) {
	if err := errors.ValidatePoint(s); err != nil {
		return geom.Vec2{}, err
	}
	xs, ys, _ := strings.Cut(s, ",")
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("parse x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("parse y: %w", err)
	}
	return geom.V(x, y), nil
}
