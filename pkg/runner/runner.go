package runner

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/jdkup/internal/logging"
	"github.com/yaklabco/jdkup/pkg/discovery"
	"github.com/yaklabco/jdkup/pkg/extract"
	"github.com/yaklabco/jdkup/pkg/langdetect"
)

// Extract discovers files under opts.Paths and extracts the blocks worth
// analysing from each. Source files are narrowed to the blocks around
// keyword hits for their language; build and CI files are returned whole.
// Files are read concurrently and reported in path order.
func Extract(ctx context.Context, opts ExtractOptions) (*ExtractResult, error) {
	cfg := opts.effectiveConfig()
	logger := logging.FromContext(ctx)

	files, err := discovery.Discover(ctx, opts.discoveryOptions())
	if err != nil {
		return nil, err
	}

	sink := newWarningSink()
	extractors, err := newExtractors(cfg.Keywords.For, cfg.MaxBlockLines, logger, sink.add)
	if err != nil {
		return nil, err
	}

	result := &ExtractResult{Files: make([]FileBlocks, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	logger.Debug("files discovered", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan discovery.File)
	outCh := make(chan FileBlocks)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, workCh, outCh, extractors)
		}()
	}

	go func() {
		defer close(workCh)
		for _, file := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- file:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileBlocks, len(files))
	for outcome := range outCh {
		outcomes[outcome.File.Path] = outcome
	}

	for _, file := range files {
		outcome, ok := outcomes[file.Path]
		if !ok {
			continue
		}
		outcome.Warnings = sink.take(file.Rel)
		if len(outcome.Blocks) > 0 {
			logger.Debug("blocks extracted",
				logging.FieldPath, file.Rel,
				logging.FieldLanguage, outcome.Language,
				logging.FieldBlocks, len(outcome.Blocks),
			)
		}
		result.accumulate(outcome)
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("extract cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func worker(
	ctx context.Context,
	workCh <-chan discovery.File,
	outCh chan<- FileBlocks,
	extractors map[langdetect.Language]*extract.Extractor,
) {
	for file := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := extractFile(file, extractors)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func extractFile(file discovery.File, extractors map[langdetect.Language]*extract.Extractor) FileBlocks {
	outcome := FileBlocks{File: file}

	content, err := os.ReadFile(file.Path)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", file.Rel, err)
		return outcome
	}

	if file.Category != discovery.CategorySource {
		if block, ok := wholeFile(file.Rel, content); ok {
			outcome.Blocks = []extract.Block{block}
		}
		return outcome
	}

	outcome.Language = langdetect.Detect(file.Path, content)
	if ext, ok := extractors[outcome.Language]; ok {
		outcome.Blocks = ext.Extract(file.Rel, content)
	}
	return outcome
}

// wholeFile returns content as a single block. Empty files yield no block.
func wholeFile(path string, content []byte) (extract.Block, bool) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if strings.TrimSpace(text) == "" {
		return extract.Block{}, false
	}

	lines := strings.Count(text, "\n") + 1
	return extract.Block{
		Path:      path,
		StartLine: 1,
		EndLine:   lines,
		Content:   text,
	}, true
}

// newExtractors compiles one extractor per language.
func newExtractors(
	keywords func(langdetect.Language) []string,
	maxBlockLines int,
	logger *log.Logger,
	warn func(extract.Warning),
) (map[langdetect.Language]*extract.Extractor, error) {
	out := make(map[langdetect.Language]*extract.Extractor, 3)
	for _, lang := range []langdetect.Language{langdetect.Java, langdetect.Groovy, langdetect.Kotlin} {
		ext, err := extract.New(keywords(lang),
			extract.WithMaxBlockLines(maxBlockLines),
			extract.WithLogger(logger),
			extract.WithWarnFunc(warn),
		)
		if err != nil {
			return nil, fmt.Errorf("%s keywords: %w", lang, err)
		}
		out[lang] = ext
	}
	return out, nil
}

// warningSink collects large-block warnings from concurrent workers.
type warningSink struct {
	mu     sync.Mutex
	byPath map[string][]extract.Warning
}

func newWarningSink() *warningSink {
	return &warningSink{byPath: make(map[string][]extract.Warning)}
}

func (s *warningSink) add(w extract.Warning) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byPath[w.Block.Path] = append(s.byPath[w.Block.Path], w)
}

func (s *warningSink) take(path string) []extract.Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	warnings := s.byPath[path]
	delete(s.byPath, path)
	return warnings
}
