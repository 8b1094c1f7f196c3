package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mfroeh/tokre/regex"
	"github.com/mfroeh/tokre/tagged"
)

var submatchColors = []*color.Color{
	color.New(color.FgRed),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgBlue),
	color.New(color.FgMagenta),
	color.New(color.FgCyan),
}

type searcher struct {
	re     *regex.Regex[tagged.Token]
	words  bool
	count  bool
	whole  bool
	jobs   int
	logger *zap.Logger
}

// run searches all files below paths and writes the results to w in the
// order the files were found.
func (s *searcher) run(ctx context.Context, paths []string, w io.Writer) error {
	var files []string
	for _, path := range paths {
		info, err := os.Lstat(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if info.IsDir() {
			found, err := collectFiles(path)
			if err != nil {
				return err
			}
			files = append(files, found...)
		} else {
			files = append(files, path)
		}
	}
	s.logger.Debug("collected files", zap.Int("files", len(files)))

	results := make([]bytes.Buffer, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.jobs, 1))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.searchFile(path, &results[i])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range results {
		if _, err := results[i].WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

func collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		// symlinks may be broken or point to a directory, both are ignored
		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

func (s *searcher) searchFile(path string, out *bytes.Buffer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s.logger.Debug("searching file", zap.String("file", path))

	printFileHeader := false
	matchingLines := 0
	for i, line := range strings.Split(string(content), "\n") {
		sentence, err := s.sentence(line)
		if err != nil {
			s.logger.Warn("skipping line", zap.String("file", path), zap.Int("line", i+1), zap.Error(err))
			continue
		}

		matches := s.find(sentence)
		if len(matches) == 0 {
			continue
		}
		matchingLines++
		if s.count {
			continue
		}

		if !printFileHeader {
			printFileHeader = true
			fmt.Fprintln(out, path, ":")
		}
		fmt.Fprintf(out, "%d:%s\n", i+1, formatLine(strings.Fields(line), matches))
	}

	if s.count {
		if matchingLines > 0 {
			fmt.Fprintf(out, "%s:%d\n", path, matchingLines)
		}
		return nil
	}

	if printFileHeader {
		fmt.Fprintln(out)
	}
	return nil
}

func (s *searcher) sentence(line string) ([]tagged.Token, error) {
	if s.words {
		return tagged.Words(line), nil
	}
	return tagged.ParseSentence(line)
}

func (s *searcher) find(sentence []tagged.Token) []*regex.Match[tagged.Token] {
	if len(sentence) == 0 {
		return nil
	}
	if s.whole {
		if m := s.re.Match(sentence); m != nil {
			return []*regex.Match[tagged.Token]{m}
		}
		return nil
	}
	return s.re.FindAll(sentence, -1)
}

// formatLine joins the fields of a line with the matches highlighted. Every
// token of a match takes the color of the innermost group it belongs to.
func formatLine(fields []string, matches []*regex.Match[tagged.Token]) string {
	out := strings.Builder{}
	last := 0
	for _, m := range matches {
		writeFields(&out, fields[last:m.StartIndex()], nil)
		writeFields(&out, fields[m.StartIndex():m.EndIndex()], tokenColors(m))
		last = m.EndIndex()
	}
	writeFields(&out, fields[last:], nil)
	return out.String()
}

func writeFields(out *strings.Builder, fields []string, colors []*color.Color) {
	for i, f := range fields {
		if out.Len() > 0 {
			out.WriteByte(' ')
		}
		if colors == nil {
			out.WriteString(f)
			continue
		}
		colors[i].Fprint(out, f)
	}
}

func tokenColors(m *regex.Match[tagged.Token]) []*color.Color {
	colors := make([]*color.Color, m.Len())
	for i := range colors {
		colors[i] = submatchColors[0]
	}

	// groups are in pre-order, so inner groups come after the ones they are in
	groups := m.Groups()
	for gi, g := range groups[1:] {
		c := submatchColors[1+gi%(len(submatchColors)-1)]
		for _, tok := range g.Indexed() {
			colors[tok.Index-m.StartIndex()] = c
		}
	}
	return colors
}
