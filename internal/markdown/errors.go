package markdown

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	fileUnreadableCode = "MARKDOWN_FILE_UNREADABLE"
	fileNotUTF8Code    = "MARKDOWN_FILE_NOT_UTF8"
	renderFailedCode   = "MARKDOWN_RENDER_FAILED"
)

var (
	// ErrFileUnreadable marks any failure to open, stat or read a requested file.
	ErrFileUnreadable = errors.New("markdown: file unreadable")
	// ErrFileNotUTF8 marks files whose content is not valid UTF-8 text.
	ErrFileNotUTF8 = errors.New("markdown: file is not valid utf-8")
	// ErrIsDirectory is returned when the resolved path names a directory.
	ErrIsDirectory = errors.New("markdown: path is a directory")
)

// IsNotFound reports whether err describes a file that could not be served.
// Missing files, permission errors, directories and invalid encodings all
// land in the same category.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return goerrors.IsCategory(err, goerrors.CategoryNotFound)
}

func wrapReadError(resolved string, err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrFileUnreadable, resolved, err), goerrors.CategoryNotFound, "markdown file unreadable").
		WithTextCode(fileUnreadableCode)
}

func wrapEncodingError(resolved string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s", ErrFileNotUTF8, resolved), goerrors.CategoryNotFound, "markdown file is not utf-8").
		WithTextCode(fileNotUTF8Code)
}

func wrapRenderError(resolved string, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(fmt.Errorf("markdown render document %s: %w", resolved, err), goerrors.CategoryInternal, "markdown render failed").
		WithTextCode(renderFailedCode)
}
