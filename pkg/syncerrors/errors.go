package syncerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrRead indicates an error occurred while reading.
	ErrRead = errors.New("read")

	// ErrReadFile indicates an error occurred while reading a file.
	ErrReadFile = fmt.Errorf("file: %w", ErrRead)

	// ErrWrite indicates an error occurred while writing.
	ErrWrite = errors.New("write")

	// ErrWriteFile indicates an error occurred while writing a file.
	ErrWriteFile = fmt.Errorf("file: %w", ErrWrite)

	// ErrFileNotFound indicates a file wasn't found in the specified path.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFormat indicates an unexpected or invalid format was encountered.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidArguments indicates invalid arguments were provided.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrJSONMarshal indicates an error occurred while marshaling JSON.
	ErrJSONMarshal = errors.New("marshal JSON")

	// ErrYAMLMarshal indicates an error occurred while marshaling YAML.
	ErrYAMLMarshal = errors.New("marshal YAML")
)
