package driver

import (
	"bufio"
	"io"
	"os"

	"github.com/arangodb-helper/graphutils/internal/cliopts"
	"github.com/arangodb-helper/graphutils/internal/dataformat"
	"github.com/arangodb-helper/graphutils/internal/edge"
	"github.com/arangodb-helper/graphutils/internal/logging"
	"github.com/arangodb-helper/graphutils/internal/stopwatch"
	"github.com/arangodb-helper/graphutils/internal/vbuffer"
	"github.com/arangodb-helper/graphutils/internal/workerpool"
	"github.com/arangodb-helper/graphutils/internal/xlat"
	"github.com/pkg/errors"
)

// RunEdges implements the "edges" subcommand: vertex data is read into
// the translation table batch by batch (spec §4.7); for every batch,
// every edge file is rewritten in place by a pool of worker goroutines,
// until the vertex buffer has been consumed once in full.
func RunEdges(opts cliopts.EdgesOptions, logger logging.Logger) error {
	format, err := dataformat.Parse(opts.Type)
	if err != nil {
		return err
	}

	memLimit, err := cliopts.ParseMemoryBytes(opts.Memory)
	if err != nil {
		return err
	}

	var vertexFiles []vbuffer.FileSource
	for _, v := range opts.Vertices {
		vf, err := cliopts.ParseVertexDescriptor(v)
		if err != nil {
			return err
		}
		vertexFiles = append(vertexFiles, vbuffer.FileSource{CollName: vf.Collection, Path: vf.Path})
	}
	if len(vertexFiles) == 0 && opts.SmartIndex <= 0 {
		return errors.Errorf("need at least one vertex collection via --vertices, or --smart-index > 0")
	}

	var edgeFiles []cliopts.EdgeFile
	for _, e := range opts.Edges {
		ef, err := cliopts.ParseEdgeDescriptor(e)
		if err != nil {
			return err
		}
		edgeFiles = append(edgeFiles, ef)
	}
	if len(edgeFiles) == 0 {
		return errors.Errorf("need at least one edge file via --edges")
	}

	nrThreads := opts.Threads
	if nrThreads < 1 {
		nrThreads = 1
	}

	buf := vbuffer.New(format, opts.SeparatorByte(), opts.QuoteByte(), vertexFiles, logger)
	syncLogger := logging.NewSynchronized(logger)
	watch := stopwatch.Start()

	for {
		if err := buf.ReadMore(memLimit); err != nil {
			return err
		}

		pool := workerpool.New(nrThreads)
		for _, ef := range edgeFiles {
			ef := ef
			pool.Go(func() error {
				return processEdgeFile(ef, format, opts, buf.Translation(), syncLogger, watch)
			})
		}
		if err := pool.Wait(); err != nil {
			return err
		}

		if buf.IsDone() {
			break
		}
	}
	return nil
}

// processEdgeFile rewrites one edge file to a sibling ".out" file and
// replaces the original with it, matching the original tool's
// unlink-then-rename replacement so a crash mid-write never leaves a
// half-written file under the original name.
func processEdgeFile(ef cliopts.EdgeFile, format dataformat.Format, opts cliopts.EdgesOptions, table *xlat.Table, logger logging.Logger, watch stopwatch.Watch) error {
	eopts := edge.Options{
		FromVertColl:  ef.FromVertColl,
		ToVertColl:    ef.ToVertColl,
		SmartIndex:    opts.SmartIndex,
		FromAttribute: opts.FromAttribute,
		ToAttribute:   opts.ToAttribute,
	}

	renames := make(map[int]string, len(ef.Renames))
	for _, r := range ef.Renames {
		renames[r.Index] = r.NewName
	}

	in, err := os.Open(ef.Path)
	if err != nil {
		return errors.Wrapf(err, "open edge file %s", ef.Path)
	}
	defer in.Close()

	outPath := ef.Path + ".out"
	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", outPath)
	}

	reader := bufio.NewReaderSize(in, 1<<20)
	writer := bufio.NewWriterSize(out, 1<<20)

	var werr error
	switch format {
	case dataformat.CSV:
		werr = processEdgeFileCSV(eopts, table, opts.SeparatorByte(), opts.QuoteByte(), renames, ef.Path, reader, writer, logger, watch)
	case dataformat.JSONL:
		werr = processEdgeFileJSONL(eopts, table, ef.Path, reader, writer, logger, watch)
	}
	if werr != nil {
		out.Close()
		return werr
	}

	if ferr := writer.Flush(); ferr != nil {
		out.Close()
		return errors.Wrapf(ferr, "flush %s", outPath)
	}
	if cerr := out.Close(); cerr != nil {
		return errors.Wrapf(cerr, "close %s", outPath)
	}

	if err := os.Remove(ef.Path); err != nil {
		return errors.Wrapf(err, "remove original edge file %s", ef.Path)
	}
	if err := os.Rename(outPath, ef.Path); err != nil {
		return errors.Wrapf(err, "rename %s to %s", outPath, ef.Path)
	}
	return nil
}

func processEdgeFileCSV(opts edge.Options, table *xlat.Table, sep, quo byte, renames map[int]string, fileName string, reader *bufio.Reader, writer *bufio.Writer, logger logging.Logger, watch stopwatch.Watch) error {
	headerLine, herr := readLine(reader)
	if headerLine == "" && herr != nil {
		return errors.Wrapf(herr, "read header line in edge file %s", fileName)
	}
	if herr != nil && herr != io.EOF {
		return errors.Wrapf(herr, "read header line in edge file %s", fileName)
	}
	atEOF := herr == io.EOF

	cols, tr, err := edge.NewCSVHeader(opts, table, sep, quo, splitHeader(headerLine, sep, quo), renames, fileName, logger)
	if err != nil {
		return err
	}
	if _, err := writer.WriteString(edge.HeaderLine(cols, sep, quo)); err != nil {
		return err
	}
	if _, err := writer.WriteString("\n"); err != nil {
		return err
	}

	var count int64
	for !atEOF {
		line, err := readLine(reader)
		if line == "" && err != nil {
			break
		}
		if err != nil && err != io.EOF {
			return err
		}
		atEOF = err == io.EOF
		count++
		out, terr := tr.TransformLine(line, count+1)
		if terr != nil {
			return terr
		}
		if _, werr := writer.WriteString(out); werr != nil {
			return werr
		}
		if _, werr := writer.WriteString("\n"); werr != nil {
			return werr
		}
		logProgress(logger, count, "edges", fileName, watch)
	}
	logger.Infof("[%.1fs] have transformed %d edges in %s, finished", watch.Elapsed(), count, fileName)
	return nil
}

func processEdgeFileJSONL(opts edge.Options, table *xlat.Table, fileName string, reader *bufio.Reader, writer *bufio.Writer, logger logging.Logger, watch stopwatch.Watch) error {
	tr := edge.NewJSONLTransformer(opts, table, logger)
	var count int64
	for {
		line, err := readLine(reader)
		if line == "" && err != nil {
			break
		}
		if err != nil && err != io.EOF {
			return err
		}
		count++
		out, terr := tr.TransformLine([]byte(line), count)
		if terr != nil {
			return terr
		}
		if _, werr := writer.Write(out); werr != nil {
			return werr
		}
		logProgress(logger, count, "edges", fileName, watch)
		if err == io.EOF {
			break
		}
	}
	logger.Infof("[%.1fs] have transformed %d edges in %s, finished", watch.Elapsed(), count, fileName)
	return nil
}
