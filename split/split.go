// SPDX-License-Identifier: EPL-2.0

package split

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audiscope/audio"
	"github.com/ik5/audiscope/progress"
)

// DefaultPatchThreshold is the WAV file size above which parts are written
// by patching a copy of the source header.
const DefaultPatchThreshold = 4294967000

// Limit is the size of one part, either in bytes or as a duration. A
// duration is converted per file, since files in a batch may differ in
// format.
type Limit struct {
	Bytes   int64
	Minutes int
	Seconds int
}

func (l Limit) byTime() bool { return l.Minutes > 0 || l.Seconds > 0 }

// For returns the byte limit for a file of format f.
func (l Limit) For(f audio.Format) int64 {
	if l.byTime() {
		return TimeLimit(l.Minutes, l.Seconds, f)
	}

	return l.Bytes
}

type Options struct {
	Limit Limit
	// OutputDir receives the parts. Empty means the source's directory.
	OutputDir string
	// DeleteOriginal removes the source once every part is written.
	DeleteOriginal bool
	// PatchThreshold defaults to DefaultPatchThreshold.
	PatchThreshold int64
	// BufferSize is the copy chunk size in bytes; it defaults to
	// audio.DefaultBufferSize.
	BufferSize int
	Reporter   *progress.Reporter
}

// File splits the AIFF, AU or WAV file at path into numbered parts and
// returns their paths in order. Parts are written back to front from a
// working copy that is truncated after each part. On error or
// cancellation every temporary file and every part already written for
// this source is removed.
func File(ctx context.Context, path string, opts Options) (paths []string, err error) {
	c, err := containerFor(path)
	if err != nil {
		return nil, err
	}
	if opts.PatchThreshold <= 0 {
		opts.PatchThreshold = DefaultPatchThreshold
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = audio.DefaultBufferSize
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	name := filepath.Base(path)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	base := strings.TrimSuffix(name, filepath.Ext(name))

	s := &splitter{ctx: ctx, opts: opts}
	defer s.cleanup(&err)

	work, size, err := s.workingCopy(path, dir)
	if err != nil {
		return nil, err
	}

	l, err := readLayout(work, c, size)
	if err != nil {
		return nil, err
	}

	if frame := l.format.FrameSize(); len(s.buf) < frame {
		s.buf = make([]byte, frame)
	}

	limit := opts.Limit.For(l.format)
	plan, err := NewPlan(size, l.dataStart, l.dataEnd, limit, l.format.FrameSize())
	if err != nil {
		return nil, err
	}

	pw, err := s.partWriter(work, l, size)
	if err != nil {
		return nil, err
	}

	count := plan.Len()
	paths = make([]string, count)
	for i := count - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start, end := plan.Part(i)
		out := filepath.Join(dir, PartName(base, ext, i+1, count))
		if err := s.writePart(out, func(f *os.File) error { return pw(f, work, start, end) }); err != nil {
			return nil, err
		}
		paths[i] = out
		opts.Reporter.Printf("Saving file: %s", filepath.Base(out))

		if i > 0 {
			if err := work.Truncate(start); err != nil {
				return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Every part is complete; keep them even if the source cannot be
	// removed.
	s.written = nil
	if opts.DeleteOriginal {
		if err := os.Remove(path); err != nil {
			return paths, fmt.Errorf("%w: %w", audio.ErrIO, err)
		}
	}

	return paths, nil
}

type splitter struct {
	ctx     context.Context
	opts    Options
	buf     []byte
	work    *os.File
	temps   []string
	written []string
}

// cleanup removes temporary files and, when the split failed, the parts
// written so far.
func (s *splitter) cleanup(errp *error) {
	if s.work != nil {
		_ = s.work.Close()
	}
	for _, p := range s.temps {
		_ = os.Remove(p)
	}
	if *errp != nil {
		for _, p := range s.written {
			_ = os.Remove(p)
		}
	}
}

func (s *splitter) tempFile(dir, pattern string) (*os.File, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	s.temps = append(s.temps, f.Name())

	return f, nil
}

// workingCopy copies the source next to the parts and returns the open
// copy and its size.
func (s *splitter) workingCopy(path, dir string) (*os.File, int64, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	work, err := s.tempFile(dir, ".audiscope-*.work")
	if err != nil {
		return nil, 0, err
	}
	s.work = work

	s.buf = make([]byte, max(1, min(int64(s.opts.BufferSize), info.Size())))
	s.opts.Reporter.Restart()
	if err := s.copyRange(work, src, 0, info.Size()); err != nil {
		return nil, 0, err
	}

	return work, info.Size(), nil
}

// copyRange copies [start, end) of src to dst in buffer sized chunks,
// checking for cancellation between chunks.
func (s *splitter) copyRange(dst io.Writer, src io.ReaderAt, start, end int64) error {
	for pos := start; pos < end; {
		if err := s.ctx.Err(); err != nil {
			return err
		}

		n := int(min(int64(len(s.buf)), end-pos))
		m, err := src.ReadAt(s.buf[:n], pos)
		if m < n {
			if err == nil || errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("%w: %w", audio.ErrIO, err)
		}
		if _, err := dst.Write(s.buf[:n]); err != nil {
			return fmt.Errorf("%w: %w", audio.ErrIO, err)
		}

		pos += int64(n)
		s.opts.Reporter.Percent(pos-start, end-start)
	}

	return nil
}

// writePart writes one part under a temporary name and renames it into
// place once it is complete.
func (s *splitter) writePart(out string, write func(*os.File) error) error {
	f, err := s.tempFile(filepath.Dir(out), ".audiscope-*.part")
	if err != nil {
		return err
	}

	werr := write(f)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	if cerr != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, cerr)
	}
	if err := s.ctx.Err(); err != nil {
		return err
	}

	if err := os.Rename(f.Name(), out); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	s.written = append(s.written, out)

	return nil
}
