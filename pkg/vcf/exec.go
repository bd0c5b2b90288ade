package vcf

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/pkg/errors"
)

// Context is what a file's header fixes for the rest of the run. It is
// written while the header is read and only read afterwards.
type Context struct {
	Individuals []string
	Dialect     Dialect
	HeaderLines int

	extractor Extractor
}

// LineError reports a data line that produced no row. Parsing may continue
// with the next line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Parser turns VCF lines into depth table rows, one record at a time.
type Parser struct {
	Context

	// Dropped counts records whose heterozygote depth summed to zero.
	Dropped int

	scanner *bufio.Scanner
	line    int
}

func NewParser(r io.Reader) *Parser {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Parser{scanner: scanner}
}

// Next returns the next aggregated row, consuming header lines on the way.
// A *LineError means one data line was skipped; Next may be called again.
// io.EOF marks the end of input.
func (p *Parser) Next() (*LocusRow, error) {
	for p.scanner.Scan() {
		p.line++
		line := p.scanner.Text()
		switch {
		case strings.HasPrefix(line, MetaMarker):
			p.meta(line)
		case strings.HasPrefix(line, HeaderMarker):
			p.header(line)
		case strings.TrimSpace(line) == "":
		default:
			row, err := p.record(line)
			if err != nil {
				return nil, &LineError{Line: p.line, Err: err}
			}
			if row == nil {
				p.Dropped++
				continue
			}
			return row, nil
		}
	}
	if err := p.scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read line %d", p.line+1)
	}
	return nil, io.EOF
}

func (p *Parser) meta(line string) {
	p.HeaderLines++
	if p.extractor != nil || !strings.HasPrefix(line, SourceMarker) {
		return
	}
	dialect := DetectDialect(strings.TrimPrefix(line, SourceMarker))
	if dialect == Unknown {
		return
	}
	p.Dialect = dialect
	p.extractor, _ = dialect.Extractor()
	slog.Info("detected dialect", "dialect", dialect, "source", strings.TrimPrefix(line, SourceMarker))
}

func (p *Parser) header(line string) {
	slog.Info(fmt.Sprintf("skipped %d header lines", p.HeaderLines))
	columns := strings.Split(strings.TrimRight(strings.TrimPrefix(line, "#"), "\r\n"), "\t")
	if len(columns) > GenotypeStart {
		p.Individuals = append([]string(nil), columns[GenotypeStart:]...)
	}
	slog.Info(fmt.Sprintf("found %d individuals", len(p.Individuals)))
}

func (p *Parser) record(line string) (*LocusRow, error) {
	if p.extractor == nil {
		return nil, ErrUnknownDialect
	}
	rec, err := ParseRecord(line)
	if err != nil {
		return nil, err
	}
	return Aggregate(rec, p.extractor, p.Individuals)
}

// Summary counts the outcome of one pass over a VCF file.
type Summary struct {
	Rows    int
	Dropped int
	Errors  int
}

// WriteDepths streams every aggregated row of r to w as the headerless depth
// table. Line errors are logged and counted; only read errors abort.
func WriteDepths(r io.Reader, w io.Writer) (*Context, *Summary, error) {
	var (
		p       = NewParser(r)
		summary = &Summary{}
	)
	for {
		row, err := p.Next()
		if err == io.EOF {
			break
		}
		var lineErr *LineError
		if errors.As(err, &lineErr) {
			slog.Error("skip record", "line", lineErr.Line, "err", lineErr.Err)
			summary.Errors++
			continue
		}
		if err != nil {
			return &p.Context, summary, err
		}
		fmtUtil.Fprintln(w, row)
		summary.Rows++
	}
	summary.Dropped = p.Dropped
	return &p.Context, summary, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	err := g.Reader.Close()
	if e := g.file.Close(); err == nil {
		err = e
	}
	return err
}

// Open opens a plain or, by .gz suffix, gzip-compressed VCF file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "gunzip %s", path)
	}
	return &gzipFile{Reader: gz, file: f}, nil
}
