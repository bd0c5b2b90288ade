package vcf

import (
	"strings"

	"github.com/pkg/errors"
)

// Dialect is the upstream tool convention a VCF file follows.
type Dialect int

const (
	Unknown Dialect = iota
	Stacks
	Ipyrad
)

var (
	ErrUnknownDialect  = errors.New("unknown vcf dialect, no recognized ##source= header")
	ErrInfoField       = errors.New("malformed INFO field, no NS=<int> leading subfield")
	ErrMalformedRecord = errors.New("malformed vcf record")
)

func (d Dialect) String() string {
	switch d {
	case Stacks:
		return "Stacks"
	case Ipyrad:
		return "ipyrad"
	}
	return "unknown"
}

// DetectDialect classifies the value of a ##source= header line by the tool
// name it carries.
func DetectDialect(source string) Dialect {
	source = strings.ToLower(source)
	switch {
	case strings.Contains(source, "stacks"):
		return Stacks
	case strings.Contains(source, "ipyrad"):
		return Ipyrad
	}
	return Unknown
}

// Extractor returns the per-record depth rules of the dialect.
func (d Dialect) Extractor() (Extractor, error) {
	switch d {
	case Stacks:
		return stacksExtractor{}, nil
	case Ipyrad:
		return ipyradExtractor{}, nil
	}
	return nil, ErrUnknownDialect
}
