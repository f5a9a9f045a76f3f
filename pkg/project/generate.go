package project

import (
	"path/filepath"

	"github.com/arthur-debert/latex-templates/pkg/errors"
	"github.com/arthur-debert/latex-templates/pkg/filesystem"
	"github.com/arthur-debert/latex-templates/pkg/logging"
	"github.com/spf13/afero"
)

// Generate writes every manifest entry into targetDir, in manifest order,
// overwriting existing files. It returns the manifest that was generated.
func (t *Template) Generate(cfg map[string]any, targetDir string) ([]GeneratedFile, error) {
	done := logging.LogOperationStart(t.logger, "generate")
	defer done()

	merged, err := t.mergedConfig(cfg)
	if err != nil {
		return nil, err
	}

	entries, err := t.manifest(merged)
	if err != nil {
		return nil, err
	}

	if err := filesystem.EnsureDir(t.fs, targetDir); err != nil {
		return nil, errors.Wrap(err, errors.ErrGenerationIO, "cannot create target directory").
			WithDetail("path", targetDir)
	}

	for _, entry := range entries {
		if err := t.generateEntry(entry, merged, targetDir); err != nil {
			return nil, err
		}
	}

	t.logger.Info().Str("target", targetDir).Int("files", len(entries)).Msg("Generated project")
	return entries, nil
}

func (t *Template) generateEntry(entry GeneratedFile, merged map[string]any, targetDir string) error {
	out := filepath.Join(targetDir, filepath.FromSlash(entry.Tgt))

	if err := filesystem.EnsureDir(t.fs, filepath.Dir(out)); err != nil {
		return errors.Wrap(err, errors.ErrGenerationIO, "cannot create directory").
			WithDetail("path", filepath.Dir(out))
	}

	if entry.IsRaw {
		src := filepath.Join(t.Root, filepath.FromSlash(entry.Src))
		t.logger.Debug().Str("src", src).Str("tgt", out).Msg("Copying raw file")
		if err := filesystem.CopyFile(t.fs, src, out); err != nil {
			return errors.Wrap(err, errors.ErrGenerationIO, "cannot copy file").
				WithDetail("path", out).
				WithDetail("src", src)
		}
		return nil
	}

	t.logger.Debug().Str("src", entry.Src).Str("tgt", out).Msg("Rendering file")
	text, err := t.engine.Render(entry.Src, merged)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(t.fs, out, []byte(text), 0644); err != nil {
		return errors.Wrap(err, errors.ErrGenerationIO, "cannot write file").
			WithDetail("path", out)
	}
	return nil
}
