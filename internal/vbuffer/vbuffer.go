// Package vbuffer implements the vertex buffer (spec §4.7, C7): it
// streams vertex files collection by collection, learning each smart
// key into a translation table until a memory budget is reached, so
// that edge files larger than RAM can still be resolved against vertex
// data larger than RAM, one batch at a time.
package vbuffer

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/arangodb-helper/graphutils/internal/csvcodec"
	"github.com/arangodb-helper/graphutils/internal/dataformat"
	"github.com/arangodb-helper/graphutils/internal/jsonrecord"
	"github.com/arangodb-helper/graphutils/internal/logging"
	"github.com/arangodb-helper/graphutils/internal/xlat"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// FileSource is one --vertices entry: a collection name and the path to
// its vertex file.
type FileSource struct {
	CollName string
	Path     string
}

const progressInterval = 1_000_000

// Buffer is the vertex buffer of spec §4.7. The zero value is not
// usable; construct with New.
type Buffer struct {
	format dataformat.Format
	sep    byte
	quo    byte
	files  []FileSource
	logger logging.Logger

	table *xlat.Table

	filePos  int
	fileOpen bool
	cur      *os.File
	reader   *bufio.Reader
	keyPos   int
	count    int64
}

// New builds a vertex buffer over files, to be read in CSV or JSONL
// form depending on format. sep/quo only matter for CSV.
func New(format dataformat.Format, sep, quo byte, files []FileSource, logger logging.Logger) *Buffer {
	return &Buffer{
		format: format,
		sep:    sep,
		quo:    quo,
		files:  files,
		logger: logger,
		table:  xlat.New(),
	}
}

// Translation returns the table filled by the most recent ReadMore.
func (b *Buffer) Translation() *xlat.Table {
	return b.table
}

// IsDone reports whether every vertex file has been fully consumed. An
// empty Buffer (no files at all) is done from the start, but ReadMore
// may still be called once on it, for the edge-only, --smart-index-only
// use case that needs no vertex data at all.
func (b *Buffer) IsDone() bool {
	return b.filePos >= len(b.files)
}

// ReadMore clears the translation table and refills it from wherever
// the last call left off, stopping once the table's estimated memory
// usage reaches memLimit (or the files run out). Each vertex file's
// read position and open handle persist across calls; only the table
// is reset every time.
func (b *Buffer) ReadMore(memLimit int64) error {
	b.logger.Infof("reading vertices...")
	b.table.Clear()

	for b.filePos < len(b.files) {
		if b.table.MemUsage() >= memLimit {
			break
		}
		if !b.fileOpen {
			if err := b.openCurrent(); err != nil {
				return err
			}
		}

		line, err := b.reader.ReadString('\n')
		if line == "" {
			b.cur.Close()
			b.filePos++
			b.fileOpen = false
			continue
		}
		if err != nil && err != io.EOF {
			return errors.Wrapf(err, "read vertex file %s", b.files[b.filePos].Path)
		}
		line = strings.TrimRight(line, "\r\n")
		b.count++

		collName := b.files[b.filePos].CollName
		switch b.format {
		case dataformat.CSV:
			parts := csvcodec.Split(line, b.sep, b.quo)
			if b.keyPos < len(parts) {
				key := csvcodec.Unquote(parts[b.keyPos], b.quo)
				b.table.Learn(collName, key)
			}
		case dataformat.JSONL:
			rec, perr := jsonrecord.Parse([]byte(line))
			if perr != nil {
				b.logger.Warnf("file %s: line %d: %v", b.files[b.filePos].Path, b.count, perr)
				continue
			}
			if f, ok := rec.Get("_key"); ok && f.IsString() {
				if key, serr := f.String(); serr == nil {
					b.table.Learn(collName, key)
				}
			}
		}

		if b.count%progressInterval == 0 {
			b.logger.Infof("have read %d vertices (needs %s of RAM)", b.count, humanize.Bytes(uint64(b.table.MemUsage())))
		}
	}

	b.logger.Infof("have read %s of vertex data", humanize.Bytes(uint64(b.table.MemUsage())))
	return nil
}

func (b *Buffer) openCurrent() error {
	src := b.files[b.filePos]
	b.logger.Infof("opening vertex file %s ...", src.Path)
	f, err := os.Open(src.Path)
	if err != nil {
		return errors.Wrapf(err, "open vertex file %s", src.Path)
	}
	b.cur = f
	b.reader = bufio.NewReaderSize(f, 1<<20)
	b.count = 0
	b.fileOpen = true

	if b.format != dataformat.CSV {
		return nil
	}

	line, err := b.reader.ReadString('\n')
	if line == "" {
		return errors.Errorf("could not read header line in vertex file %s", src.Path)
	}
	line = strings.TrimRight(line, "\r\n")
	header := csvcodec.Split(line, b.sep, b.quo)
	if len(header) == 1 {
		b.logger.Warnf("file %s: found only one column in header, did you specify the right separator character?", src.Path)
	}
	for i := range header {
		header[i] = csvcodec.Unquote(header[i], b.quo)
	}
	keyPos := csvcodec.FindColumn(header, "_key")
	if keyPos < 0 {
		return errors.Errorf("could not find _key column in vertex file %s", src.Path)
	}
	b.keyPos = keyPos
	return nil
}
