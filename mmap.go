package dataset_prep

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

// ReadTextMmap
// Reads a whole file through a read-only memory mapping and returns its
// contents as a string. The mapping is released before returning.
// Zero-length files cannot be mapped, so they come back as an empty string
// directly.
func ReadTextMmap(path string) (string, error) {
	file, openErr := os.Open(path)
	if openErr != nil {
		return "", openErr
	}
	defer file.Close()
	if stat, statErr := file.Stat(); statErr != nil {
		return "", statErr
	} else if stat.Size() == 0 {
		return "", nil
	}
	fileMmap, mmapErr := mmap.Map(file, mmap.RDONLY, 0)
	if mmapErr != nil {
		return "", mmapErr
	}
	defer fileMmap.Unmap()
	return string(fileMmap), nil
}
