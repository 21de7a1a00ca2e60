package app

import (
	"fmt"
	"io"
	"os"

	"github.com/ludo-technologies/plagscan/domain"
)

// StdinPath names standard input in place of a file path
const StdinPath = "-"

// loadSource reads one input path. StdinPath reads from stdin.
func loadSource(fileReader domain.FileReader, stdin io.Reader, path string) (string, error) {
	if path == StdinPath {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", domain.NewInvalidInputError("failed to read standard input", err)
		}
		return string(data), nil
	}

	data, err := fileReader.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sourceFilename is the filename passed on for language detection
func sourceFilename(path string) string {
	if path == StdinPath {
		return ""
	}
	return path
}

// resolveSourceFiles expands paths into source files, failing when none are found
func resolveSourceFiles(fileReader domain.FileReader, paths []string, recursive bool, include, exclude []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, domain.NewInvalidInputError("no input paths specified", nil)
	}
	files, err := fileReader.CollectSourceFiles(paths, recursive, include, exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("no source files found in %v", paths), nil)
	}
	return files, nil
}
