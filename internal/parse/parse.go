// Package parse turns source documents into index entries. It drains an
// inbox directory, extracts a title and release date from each document,
// de-duplicates by title and appends the entries to a JSON dump that
// populate can index. Processed documents move to an archive directory;
// untitled or duplicate ones stay in the inbox.
package parse

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"filmseek/internal/domain"
)

// DumpFileName is the dump written into the out directory.
const DumpFileName = "dump.json"

var dateRE = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})`)

// Parser extracts index entries from documents.
type Parser struct {
	logger   zerolog.Logger
	keywords []string
	linkBase string
}

// Report summarizes one parse run.
type Report struct {
	Parsed     int
	Duplicates int
	Untitled   int
}

// NewParser creates a parser. A line containing any of the keywords
// becomes the title; with no keywords the first non-empty line does.
// linkBase, when set, is used to rebuild each document's source URL from
// its file name.
func NewParser(logger zerolog.Logger, keywords []string, linkBase string) *Parser {
	return &Parser{
		logger:   logger,
		keywords: keywords,
		linkBase: linkBase,
	}
}

// Run processes every document in inDir. New entries are merged into
// outDir's dump, de-duplicated by title against entries from earlier
// runs, and the documents they came from move to oldDir.
func (p *Parser) Run(inDir, outDir, oldDir string) (*Report, error) {
	for _, dir := range []string{inDir, outDir, oldDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	dumpPath := filepath.Join(outDir, DumpFileName)
	entries, err := loadDump(dumpPath)
	if err != nil {
		return nil, err
	}

	seenTitles := make(map[string]bool)
	for _, e := range entries {
		seenTitles[e.Title] = true
	}

	files, err := os.ReadDir(inDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inDir, err)
	}

	report := &Report{}
	for _, f := range files {
		if f.IsDir() || !parsableFile(f.Name()) {
			continue
		}
		path := filepath.Join(inDir, f.Name())

		text, err := extractText(path)
		if err != nil {
			return nil, err
		}

		title, ok := findTitle(text, p.keywords)
		if !ok {
			p.logger.Warn().Str("file", f.Name()).Msg("no title found")
			report.Untitled++
			continue
		}
		if seenTitles[title] {
			p.logger.Warn().Str("file", f.Name()).Str("title", title).Msg("duplicate entry")
			report.Duplicates++
			continue
		}
		seenTitles[title] = true

		entry := domain.Movie{
			ID:       idForTitle(title),
			Title:    title,
			Poster:   documentLink(p.linkBase, f.Name()),
			Overview: strings.TrimSpace(text),
		}
		if secs, ok := extractDate(text); ok {
			entry.ReleaseDate = json.Number(strconv.FormatInt(secs, 10))
		} else {
			p.logger.Warn().Str("file", f.Name()).Msg("no date found")
		}
		entries = append(entries, entry)
		report.Parsed++

		if err := os.Rename(path, filepath.Join(oldDir, f.Name())); err != nil {
			return nil, fmt.Errorf("failed to archive %s: %w", f.Name(), err)
		}
	}

	if err := writeDump(dumpPath, entries); err != nil {
		return nil, err
	}

	p.logger.Info().
		Int("parsed", report.Parsed).
		Int("duplicates", report.Duplicates).
		Int("untitled", report.Untitled).
		Msg("parse run finished")
	return report, nil
}

func parsableFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".txt" || ext == ".pdf"
}

// extractText reads a text document, shelling out to pdftotext for PDFs.
func extractText(path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) == ".pdf" {
		out, err := exec.Command("pdftotext", "-q", path, "-").Output()
		if err != nil {
			return "", fmt.Errorf("pdftotext failed for %s: %w", path, err)
		}
		return string(out), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// findTitle returns the first non-empty line containing any keyword, or
// simply the first non-empty line when no keywords are configured.
func findTitle(text string, keywords []string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(keywords) == 0 {
			return line, true
		}
		for _, kw := range keywords {
			if strings.Contains(line, kw) {
				return line, true
			}
		}
	}
	return "", false
}

// extractDate returns the first dd/mm/yyyy date in the text as epoch
// seconds at UTC midnight. Two-digit years at or below the current one
// fall in this century, the rest in the previous.
func extractDate(text string) (int64, bool) {
	m := dateRE.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) == 2 {
		if year <= time.Now().Year()%100 {
			year += 2000
		} else {
			year += 1900
		}
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || int(date.Month()) != month {
		return 0, false // the components didn't name a real calendar day
	}
	return date.Unix(), true
}

// idForTitle derives a stable positive ID from the title's sha256, so
// re-parsing the same document can only ever overwrite its own entry.
func idForTitle(title string) int {
	sum := sha256.Sum256([]byte(title))
	return int(binary.BigEndian.Uint32(sum[:4]) & 0x7fffffff)
}

// documentLink rebuilds a document's source URL from an "id_key" file
// stem, empty when the stem or base doesn't allow it.
func documentLink(base, name string) string {
	if base == "" {
		return ""
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.SplitN(stem, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return fmt.Sprintf("%s?idArquivo=%s&key=%s", base, parts[0], parts[1])
}

func loadDump(path string) ([]domain.Movie, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}

	var dump domain.SearchResponse
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("failed to parse existing dump: %w", err)
	}
	return dump.Results, nil
}

func writeDump(path string, entries []domain.Movie) error {
	if entries == nil {
		entries = []domain.Movie{}
	}
	data, err := json.MarshalIndent(domain.SearchResponse{Results: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dump: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dump: %w", err)
	}
	return nil
}
