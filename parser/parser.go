package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TFMV/bigocode/types"
	"github.com/rs/zerolog"
)

// ErrUnsupportedFile is returned for files whose extension maps to no
// supported language.
var ErrUnsupportedFile = errors.New("unsupported source file")

var extensions = map[string]types.Language{
	".py":   types.Python,
	".pyw":  types.Python,
	".js":   types.JavaScript,
	".mjs":  types.JavaScript,
	".cjs":  types.JavaScript,
	".jsx":  types.JavaScript,
	".java": types.Java,
	".cpp":  types.Cpp,
	".cc":   types.Cpp,
	".cxx":  types.Cpp,
	".hpp":  types.Cpp,
	".h":    types.Cpp,
}

// LanguageOf infers the language of path from its extension.
func LanguageOf(path string) (types.Language, bool) {
	lang, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// SourceFile is a loaded snippet ready for classification.
type SourceFile struct {
	Path     string
	Language types.Language
	Content  string
}

// Parser loads source files from disk.
type Parser struct {
	logger zerolog.Logger
}

func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{
		logger: logger.With().Str("component", "parser").Logger(),
	}
}

// ParseFile reads path and infers its language. A non-empty override is used
// instead of the extension.
func (p *Parser) ParseFile(path string, override types.Language) (SourceFile, error) {
	lang := override
	if lang == "" {
		var ok bool
		if lang, ok = LanguageOf(path); !ok {
			return SourceFile{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
		}
	}

	p.logger.Debug().Str("file", path).Str("language", string(lang)).Msg("reading source")
	data, err := os.ReadFile(path)
	if err != nil {
		return SourceFile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return SourceFile{
		Path:     path,
		Language: lang,
		Content:  string(data),
	}, nil
}
