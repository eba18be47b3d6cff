// Package scanner discovers the video hierarchy of a course folder. It walks
// one level deep only: files in the root become root videos, immediate
// subdirectories with at least one video become sections. It never mutates
// the filesystem.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"coursetrack/internal/domain"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".webm": true,
	".mov":  true,
}

// IsVideoFile reports whether the filename has a recognized video extension.
func IsVideoFile(filename string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Scan lists the immediate entries of root and classifies them into root
// videos and sections. Subdirectories without videos are ignored; hidden
// directories are skipped. The caller guarantees root exists and is readable.
func Scan(root string) (*domain.CourseStructure, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read course folder: %w", err)
	}

	structure := &domain.CourseStructure{
		Videos:   []domain.ScannedVideo{},
		Sections: []domain.ScannedSection{},
	}

	for _, entry := range entries {
		fullPath := filepath.Join(root, entry.Name())

		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") {
				continue
			}

			videos, err := scanSection(fullPath)
			if err != nil {
				return nil, err
			}
			if len(videos) == 0 {
				continue
			}

			structure.Sections = append(structure.Sections, domain.ScannedSection{
				Name:   entry.Name(),
				Path:   fullPath,
				Videos: videos,
			})
			continue
		}

		if !IsVideoFile(entry.Name()) {
			continue
		}

		structure.Videos = append(structure.Videos, domain.ScannedVideo{
			Name: titleOf(entry.Name()),
			Path: fullPath,
		})
	}

	sortStructure(structure)
	return structure, nil
}

// scanSection lists the immediate regular files of one subdirectory. Nested
// directories are not recursed into; only one level is supported.
func scanSection(dir string) ([]domain.ScannedVideo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read section folder %s: %w", filepath.Base(dir), err)
	}

	var videos []domain.ScannedVideo
	for _, entry := range entries {
		if entry.IsDir() || !IsVideoFile(entry.Name()) {
			continue
		}
		videos = append(videos, domain.ScannedVideo{
			Name: titleOf(entry.Name()),
			Path: filepath.Join(dir, entry.Name()),
		})
	}
	return videos, nil
}

func titleOf(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// sortStructure orders everything with a numeric-aware collation so that
// "Lesson 2" sorts before "Lesson 10".
func sortStructure(s *domain.CourseStructure) {
	c := collate.New(language.Und, collate.Numeric)

	byName := func(videos []domain.ScannedVideo) func(i, j int) bool {
		return func(i, j int) bool {
			return c.CompareString(videos[i].Name, videos[j].Name) < 0
		}
	}

	sort.SliceStable(s.Videos, byName(s.Videos))
	sort.SliceStable(s.Sections, func(i, j int) bool {
		return c.CompareString(s.Sections[i].Name, s.Sections[j].Name) < 0
	})
	for i := range s.Sections {
		sort.SliceStable(s.Sections[i].Videos, byName(s.Sections[i].Videos))
	}
}
