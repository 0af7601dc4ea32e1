// Package c2patool reads manifest stores by running the c2patool executable.
package c2patool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"github.com/sonnes/pramaan/sdk"
)

// DefaultTool is looked up on PATH when no codec location is configured.
const DefaultTool = "c2patool"

// RunFunc executes name with args and returns what it wrote to stdout and
// stderr.
type RunFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// Reader runs c2patool on a temporary copy of each asset.
type Reader struct {
	Tool     string // executable path
	Settings string // optional settings file passed with --settings
	Run      RunFunc
}

// Load resolves the tool named by res.CodecSrc (DefaultTool when empty) and
// uses res.WorkerSrc as the settings file.
func Load(ctx context.Context, res sdk.Resources) (sdk.Reader, error) {
	tool := res.CodecSrc
	if tool == "" {
		tool = DefaultTool
	}
	path, err := exec.LookPath(tool)
	if err != nil {
		return nil, fmt.Errorf("locate %s: %w", tool, err)
	}
	return &Reader{Tool: path, Settings: res.WorkerSrc, Run: run}, nil
}

// Read implements sdk.Reader.
func (r *Reader) Read(ctx context.Context, data []byte) (*sdk.Store, error) {
	ext, err := extension(data)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "pramaan-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp asset: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp asset: %w", err)
	}

	args := []string{tmp.Name()}
	if r.Settings != "" {
		args = append(args, "--settings", r.Settings)
	}

	runner := r.Run
	if runner == nil {
		runner = run
	}
	tool := r.Tool
	if tool == "" {
		tool = DefaultTool
	}

	stdout, stderr, err := runner(ctx, tool, args...)
	if err != nil {
		if noManifest(stderr) || noManifest(stdout) {
			return &sdk.Store{}, nil
		}
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return nil, fmt.Errorf("c2patool: %s", msg)
		}
		return nil, fmt.Errorf("c2patool: %w", err)
	}
	return sdk.DecodeStore(stdout)
}

func run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// noManifest reports whether c2patool output says the asset simply has no
// manifest, which is not a read failure.
func noManifest(out []byte) bool {
	s := string(out)
	return strings.Contains(s, "No claim found") ||
		strings.Contains(s, "ManifestNotFound") ||
		strings.Contains(s, "JumbfNotFound")
}

// c2patool picks its asset handler from the file extension.
var extensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/bmp":       ".bmp",
	"image/avif":      ".avif",
	"image/tiff":      ".tif",
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"audio/mpeg":      ".mp3",
	"audio/wave":      ".wav",
	"application/pdf": ".pdf",
}

var errUnsupported = errors.New("unsupported asset type")

func extension(data []byte) (string, error) {
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	if ext, ok := extensions[ct]; ok {
		return ext, nil
	}
	// DetectContentType knows no TIFF or HEIF signatures.
	switch {
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return ".tif", nil
	case len(data) >= 12 && string(data[4:8]) == "ftyp":
		switch string(data[8:12]) {
		case "heic", "heix", "mif1":
			return ".heic", nil
		case "avif":
			return ".avif", nil
		}
		return ".mp4", nil
	}
	return "", fmt.Errorf("%w: %s", errUnsupported, ct)
}
