package dataset_prep

import (
	"os"
	"sort"
	"time"

	"github.com/yargevad/filepathx"
)

type PathInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// GlobTexts
// Given a directory path, recursively finds all `.txt` and `.txt.utf8`
// files, returning a slice of PathInfo sorted in ascending path order. An
// empty directory yields an empty slice, not an error.
func GlobTexts(dirPath string) (pathInfos []PathInfo, err error) {
	patterns := []string{
		dirPath + "/**/*.txt",
		dirPath + "/**/*.txt.utf8",
	}
	textPaths := make([]string, 0)
	for _, pattern := range patterns {
		matches, globErr := filepathx.Glob(pattern)
		if globErr != nil {
			return nil, globErr
		}
		textPaths = append(textPaths, matches...)
	}
	pathInfos = make([]PathInfo, 0, len(textPaths))
	for matchIdx := range textPaths {
		currPath := textPaths[matchIdx]
		if stat, statErr := os.Stat(currPath); statErr != nil {
			return nil, statErr
		} else if !stat.IsDir() {
			pathInfos = append(pathInfos, PathInfo{
				Path:    currPath,
				Size:    stat.Size(),
				ModTime: stat.ModTime(),
			})
		}
	}
	SortPathInfoByPath(pathInfos, true)
	return pathInfos, nil
}

func SortPathInfoByPath(pathInfos []PathInfo, ascending bool) {
	if ascending {
		sort.Slice(pathInfos, func(i, j int) bool {
			return pathInfos[i].Path < pathInfos[j].Path
		})
	} else {
		sort.Slice(pathInfos, func(i, j int) bool {
			return pathInfos[i].Path > pathInfos[j].Path
		})
	}
}

func Paths(pathInfos []PathInfo) (paths []string) {
	for _, pathInfo := range pathInfos {
		paths = append(paths, pathInfo.Path)
	}
	return paths
}

func TotalSize(pathInfos []PathInfo) (total int64) {
	for _, pathInfo := range pathInfos {
		total += pathInfo.Size
	}
	return total
}
