package corpus

import "fmt"

// Format enumerates the supported source corpus schemas. Dispatch is a
// closed switch, so an unsupported format fails at the edge instead of
// deep inside a conversion.
type Format int

const (
	FormatMLQA Format = iota
	FormatXQUAD
	FormatXQUADContext
	FormatTyDi
)

var formatNames = map[string]Format{
	"mlqa":          FormatMLQA,
	"xquad":         FormatXQUAD,
	"xquad-context": FormatXQUADContext,
	"tydi":          FormatTyDi,
}

// ParseFormat resolves a CLI format name.
func ParseFormat(name string) (Format, error) {
	f, ok := formatNames[name]
	if !ok {
		return 0, fmt.Errorf("unsupported corpus format: %q", name)
	}
	return f, nil
}

func (f Format) String() string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Convert reads a source corpus file in the given format and returns it
// in the unified representation. language is only consulted by formats
// that filter on it (TyDi); it is the full language name, e.g. "finnish".
func Convert(f Format, path, language string) (*Corpus, error) {
	switch f {
	case FormatMLQA:
		return ReadMLQA(path)
	case FormatXQUAD:
		return ReadXQUAD(path)
	case FormatXQUADContext:
		return ReadXQUADContext(path)
	case FormatTyDi:
		return ReadTyDi(path, language)
	default:
		return nil, fmt.Errorf("unsupported corpus format: %v", f)
	}
}
