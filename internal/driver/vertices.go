// Package driver wires the vertex and edge transformers, the vertex
// buffer and the CLI options together into the two top-level
// operations, "vertices" and "edges" (spec §4.8).
package driver

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/arangodb-helper/graphutils/internal/cliopts"
	"github.com/arangodb-helper/graphutils/internal/csvcodec"
	"github.com/arangodb-helper/graphutils/internal/dataformat"
	"github.com/arangodb-helper/graphutils/internal/logging"
	"github.com/arangodb-helper/graphutils/internal/stopwatch"
	"github.com/arangodb-helper/graphutils/internal/vertex"
	"github.com/pkg/errors"
)

const progressInterval = 1_000_000

// RunVertices implements the "vertices" subcommand: a single streaming
// pass over one input file, rewriting the smart graph attribute and
// _key of every record.
func RunVertices(opts cliopts.VerticesOptions, logger logging.Logger) error {
	format, err := dataformat.Parse(opts.Type)
	if err != nil {
		return err
	}

	in, err := os.Open(opts.Input)
	if err != nil {
		return errors.Wrapf(err, "open input file %s", opts.Input)
	}
	defer in.Close()

	out, err := os.Create(opts.Output)
	if err != nil {
		return errors.Wrapf(err, "create output file %s", opts.Output)
	}

	vOpts := vertex.Options{
		SmartAttr:      opts.SmartGraphAttribute,
		SmartValue:     opts.SmartValue,
		SmartIndex:     opts.SmartIndex,
		HashSmartValue: cliopts.ParseBool(opts.HashSmartValue),
		SmartDefault:   opts.SmartDefault,
		WriteKey:       cliopts.ParseBool(opts.WriteKey),
		KeyValue:       opts.KeyValue,
	}

	renames := make(map[int]string, len(opts.RenameColumn))
	for _, r := range opts.RenameColumn {
		cr, err := cliopts.ParseRenameColumn(r)
		if err != nil {
			return err
		}
		renames[cr.Index] = cr.NewName
	}

	reader := bufio.NewReaderSize(in, 1<<20)
	writer := bufio.NewWriterSize(out, 1<<20)
	watch := stopwatch.Start()

	var count int64
	switch format {
	case dataformat.CSV:
		count, err = runVerticesCSV(vOpts, opts.SeparatorByte(), opts.QuoteByte(), renames, opts.Input, reader, writer, logger, watch)
	case dataformat.JSONL:
		count, err = runVerticesJSONL(vOpts, reader, writer, logger, watch)
	}
	if err != nil {
		out.Close()
		return err
	}

	if ferr := writer.Flush(); ferr != nil {
		out.Close()
		return errors.Wrapf(ferr, "flush output file %s", opts.Output)
	}
	if cerr := out.Close(); cerr != nil {
		return errors.Wrapf(cerr, "close output file %s", opts.Output)
	}

	logger.Infof("have transformed %d vertices, finished", count)
	return nil
}

func runVerticesCSV(opts vertex.Options, sep, quo byte, renames map[int]string, fileName string, reader *bufio.Reader, writer *bufio.Writer, logger logging.Logger, watch stopwatch.Watch) (int64, error) {
	headerLine, herr := readLine(reader)
	if headerLine == "" && herr != nil {
		return 0, errors.Wrapf(herr, "read header line in vertex file %s", fileName)
	}
	if herr != nil && herr != io.EOF {
		return 0, errors.Wrapf(herr, "read header line in vertex file %s", fileName)
	}
	atEOF := herr == io.EOF

	cols, tr := vertex.NewCSVHeader(opts, sep, quo, splitHeader(headerLine, sep, quo), renames, fileName, logger)
	if _, err := writer.WriteString(vertex.HeaderLine(cols, sep, quo)); err != nil {
		return 0, err
	}
	if _, err := writer.WriteString("\n"); err != nil {
		return 0, err
	}

	var count int64
	for !atEOF {
		line, err := readLine(reader)
		if line == "" && err != nil {
			break
		}
		if err != nil && err != io.EOF {
			return count, err
		}
		atEOF = err == io.EOF
		count++
		out, terr := tr.TransformLine(line, count+1)
		if terr != nil {
			return count, terr
		}
		if _, werr := writer.WriteString(out); werr != nil {
			return count, werr
		}
		if _, werr := writer.WriteString("\n"); werr != nil {
			return count, werr
		}
		logProgress(logger, count, "vertices", fileName, watch)
	}
	return count, nil
}

func runVerticesJSONL(opts vertex.Options, reader *bufio.Reader, writer *bufio.Writer, logger logging.Logger, watch stopwatch.Watch) (int64, error) {
	tr := vertex.NewJSONLTransformer(opts, logger)
	var count int64
	for {
		line, err := readLine(reader)
		if line == "" && err != nil {
			break
		}
		if err != nil && err != io.EOF {
			return count, err
		}
		count++
		out, terr := tr.TransformLine([]byte(line), count)
		if terr != nil {
			return count, terr
		}
		if _, werr := writer.Write(out); werr != nil {
			return count, werr
		}
		logProgress(logger, count, "vertices", "", watch)
		if err == io.EOF {
			break
		}
	}
	return count, nil
}

func splitHeader(line string, sep, quo byte) []string {
	cols := csvcodec.Split(line, sep, quo)
	for i := range cols {
		cols[i] = csvcodec.Unquote(cols[i], quo)
	}
	return cols
}

func logProgress(logger logging.Logger, count int64, noun, fileName string, watch stopwatch.Watch) {
	if count%progressInterval == 0 {
		if fileName != "" {
			logger.Infof("[%.1fs] have transformed %d %s in %s...", watch.Elapsed(), count, noun, fileName)
		} else {
			logger.Infof("[%.1fs] have transformed %d %s...", watch.Elapsed(), count, noun)
		}
	}
}

// readLine reads one line, stripped of its trailing newline. It returns
// io.EOF alongside the final unterminated line, if any, matching
// bufio.Reader.ReadString's contract.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	return line, err
}
