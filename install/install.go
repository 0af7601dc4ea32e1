// Package install prepares a git repository to publish articles with
// Content Credentials. It creates the asset directory and article catalog
// the server expects, and a git pre-commit hook that validates the catalog
// and reports the provenance of staged images.
package install

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sonnes/pramaan/articles"
)

// Config holds the settings for the install command. Articles and Assets are
// relative to Dir.
type Config struct {
	Articles string // catalog file, e.g. "articles.json"
	Assets   string // asset directory, e.g. "assets"
	Dir      string // git repository root (auto-detected if empty)
}

const (
	hookStart = "# pm-credentials-start"
	hookEnd   = "# pm-credentials-end"
)

// Run executes the full install sequence. Running it again is harmless:
// existing files are kept and the hook is added once.
func Run(cfg Config) error {
	if cfg.Dir == "" {
		dir, err := gitRoot()
		if err != nil {
			return fmt.Errorf("not a git repository (run from inside a repo): %w", err)
		}
		cfg.Dir = dir
	}
	if cfg.Articles == "" {
		cfg.Articles = "articles.json"
	}
	if cfg.Assets == "" {
		cfg.Assets = "assets"
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"create asset directory", func() error { return os.MkdirAll(filepath.Join(cfg.Dir, cfg.Assets), 0o755) }},
		{"create article catalog", func() error { return ensureCatalog(filepath.Join(cfg.Dir, cfg.Articles)) }},
		{"install git pre-commit hook", func() error { return installPreCommitHook(cfg.Dir, cfg.Articles, cfg.Assets) }},
	}

	for _, s := range steps {
		if err := s.fn(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	return nil
}

// gitRoot returns the top-level directory of the current git repo.
func gitRoot() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ensureCatalog writes an empty catalog unless one already exists.
func ensureCatalog(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return (&articles.Catalog{}).WriteFile(path)
}

// installPreCommitHook installs or appends to the pre-commit hook. Uses
// git rev-parse --git-common-dir to find the hooks directory, which works in
// both normal repos and worktrees.
func installPreCommitHook(repoDir, catalog, assets string) error {
	gitDir, err := gitOutput(repoDir, "rev-parse", "--git-common-dir")
	if err != nil {
		return fmt.Errorf("find git dir: %w", err)
	}
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(repoDir, gitDir)
	}
	hookPath := filepath.Join(gitDir, "hooks", "pre-commit")

	if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
		return err
	}

	data, err := os.ReadFile(hookPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if strings.Contains(string(data), hookStart) {
		return nil // already installed
	}

	f, err := os.OpenFile(hookPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o755)
	if err != nil {
		return err
	}
	defer f.Close()

	// Add shebang if file is new/empty
	if len(data) == 0 {
		if _, err := f.WriteString("#!/bin/bash\n"); err != nil {
			return err
		}
	} else if data[len(data)-1] != '\n' {
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}

	_, err = f.WriteString(buildPreCommitScript(catalog, assets))
	return err
}

// gitOutput runs a git command and returns its stdout.
func gitOutput(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// buildPreCommitScript generates the hook body. A broken catalog blocks the
// commit; images without readable credentials only produce a warning.
func buildPreCommitScript(catalog, assets string) string {
	assets = strings.TrimSuffix(filepath.ToSlash(assets), "/") + "/"
	return fmt.Sprintf(`
%s
# Validate the article catalog and show the Content Credentials of staged
# images. Installed by pm install.
if command -v pm >/dev/null 2>&1; then
  if ! pm article list --articles %q >/dev/null; then
    echo "pm: %s is not a valid article catalog" >&2
    exit 1
  fi
  git diff --cached --name-only --diff-filter=AM -- %q | while read -r f; do
    case "$(echo "$f" | tr '[:upper:]' '[:lower:]')" in
      *.jpg|*.jpeg|*.png|*.gif|*.webp|*.avif|*.heic|*.tif|*.tiff)
        pm inspect --compact -o terminal "$f" >&2 || echo "pm: $f has no readable Content Credentials" >&2 ;;
    esac
  done
fi
%s
`, hookStart, catalog, catalog, assets, hookEnd)
}
