// Package psf has functions for loading intake data using the PSF (Posy
// Stand File) format, a TOML-based format that describes bouquet designs and
// available flowers for the assembler to work from.
package psf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/posy/internal/stand"
)

const MaxManifestRecursionDepth = 32

var (
	// ErrManifestEmpty is the error returned when a manifest file is read
	// successfully but specifies no additional files to load.
	ErrManifestEmpty = errors.New("does not list any valid files to include")

	// ErrManifestStackOverflow is the error returned when the recursion level
	// of MaxManifestRecursionDepth is reached and an additional manifest is
	// then specified, which would cause recursion to go deeper.
	ErrManifestStackOverflow = errors.New("too many manifests deep")

	// ErrManifestCircularRef is the error returned when a manifest specifies
	// any series of files that with their own manifests refer back to the
	// original manifest, and therefore cannot be followed.
	ErrManifestCircularRef = errors.New("manifest inclusion chain refers back to itself")
)

// Manifest contains data loaded from a PSF manifest file.
type Manifest struct {
	Files []string
}

// FileInfo contains the essential information all PSF files must contain. It
// can be obtained from a file by reading it into memory and calling
// ScanFileInfo on the bytes.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

type topLevelStandData struct {
	Format string       `toml:"format"`
	Type   string       `toml:"type"`
	Stand  standSection `toml:"stand"`
}

type standSection struct {
	Designs []string `toml:"designs"`
	Flowers []string `toml:"flowers"`
}

type topLevelManifest struct {
	Format string   `toml:"format"`
	Type   string   `toml:"type"`
	Files  []string `toml:"files"`
}

// IsBundle reports whether the given file data looks like a PSF document at
// all, by checking whether a PSF format header can be scanned from it. It is
// used to decide whether a file should be loaded as a bundle or as plain
// line-oriented intake text.
func IsBundle(data []byte) bool {
	info, err := ScanFileInfo(data)
	if err != nil {
		return false
	}
	return strings.EqualFold(info.Format, "POSY")
}

// LoadBundle loads intake data from the given PSF file. The file's type is
// auto-detected and decoding is handled appropriately; the type can either
// be "STAND" type or "MANIFEST" type; if it's manifest type, the files
// listed in it relative to it will also be loaded. All files included are
// combined into one single intake, and if a manifest is encountered, all
// files in it are recursively included.
func LoadBundle(path string) (stand.Intake, error) {
	unmarshaled, err := recursiveUnmarshalBundle(path, nil)
	if err != nil {
		return stand.Intake{}, err
	}

	return parseStandData(unmarshaled)
}

// ScanFileInfo takes the given data bytes and attempts to read the PSF
// format common header info from it. The bytes are read up to the first
// instance of a table definition header and those bytes are parsed for the
// info. If there is an error reading the info, returns a non-nil error.
func ScanFileInfo(data []byte) (FileInfo, error) {
	// only run the toml parser up to the end of the top-lev table
	var topLevelEnd int = -1
	var onNewLine bool
	for b := range data {
		if onNewLine {
			if data[b] == '[' {
				topLevelEnd = b
				break
			}
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	return info, err
}

func recursiveUnmarshalBundle(path string, manifStack []string) (data topLevelStandData, err error) {
	path = filepath.Clean(path)

	fileData, loadErr := os.ReadFile(path)
	if loadErr != nil {
		return topLevelStandData{}, fmt.Errorf("%q: reading from disk: %w", path, loadErr)
	}

	fileInfo, err := ScanFileInfo(fileData)
	if err != nil {
		return topLevelStandData{}, fmt.Errorf("%q: detecting file type: %w", path, err)
	}

	if !strings.EqualFold(fileInfo.Format, "POSY") {
		return topLevelStandData{}, fmt.Errorf("%q: file does not have a 'format = \"POSY\"' entry", path)
	}

	fileType := strings.ToUpper(fileInfo.Type)
	switch fileType {
	case "STAND":
		unmarshaled, err := unmarshalStandData(fileData)
		if err != nil {
			return unmarshaled, fmt.Errorf("stand file %q: %w", path, err)
		}
		return unmarshaled, nil
	case "MANIFEST":
		// check the stack to be sure we havent recursed too far and to be
		// sure we aren't about to re-scan a circular-ref'd manifest file
		// we've already brought in.
		if len(manifStack) >= MaxManifestRecursionDepth {
			return topLevelStandData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestStackOverflow)
		}
		for i := range manifStack {
			if manifStack[i] == path {
				return topLevelStandData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestCircularRef)
			}
		}

		unmarshaledManif, err := unmarshalManifest(fileData)
		if err != nil {
			return topLevelStandData{}, fmt.Errorf("manifest file %q: %w", path, err)
		}
		manif := Manifest{Files: unmarshaledManif.Files}

		// the len of manifStack is included in the check because an empty
		// manifest error is really only a problem for the very first
		// manifest.
		if len(manif.Files) < 1 && len(manifStack) == 0 {
			return topLevelStandData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}

		// combine all referred-to files into one single unmarshaled data
		// struct

		unmarshaled := topLevelStandData{}

		// copy the manif stack into a new value and add self to it for
		// recursive calls
		manifSubStack := make([]string, len(manifStack)+1)
		copy(manifSubStack, manifStack)
		manifSubStack[len(manifSubStack)-1] = path

		manifDir := filepath.Dir(path)
		for _, includedFile := range manif.Files {
			includedFilePath := filepath.Join(manifDir, includedFile)

			unmarshaledFileData, err := recursiveUnmarshalBundle(includedFilePath, manifSubStack)
			if err != nil {
				// if it's a circular reference, that's actually okay. we
				// will just skip reading it and move on to the next entry.
				if errors.Is(err, ErrManifestCircularRef) {
					continue
				}

				return topLevelStandData{}, fmt.Errorf("in file referred to by manifest file:\n    %q\n%w", path, err)
			}

			unmarshaled.Stand.Designs = append(unmarshaled.Stand.Designs, unmarshaledFileData.Stand.Designs...)
			unmarshaled.Stand.Flowers = append(unmarshaled.Stand.Flowers, unmarshaledFileData.Stand.Flowers...)
		}

		return unmarshaled, nil
	default:
		return topLevelStandData{}, fmt.Errorf("%q: file has unknown PSF type %q", path, fileInfo.Type)
	}
}

func unmarshalStandData(tomlData []byte) (topLevelStandData, error) {
	var psf topLevelStandData
	if tomlErr := toml.Unmarshal(tomlData, &psf); tomlErr != nil {
		return psf, tomlErr
	}
	return psf, nil
}

func unmarshalManifest(tomlData []byte) (topLevelManifest, error) {
	var psf topLevelManifest
	if tomlErr := toml.Unmarshal(tomlData, &psf); tomlErr != nil {
		return psf, tomlErr
	}
	return psf, nil
}

func parseStandData(psf topLevelStandData) (stand.Intake, error) {
	var intake stand.Intake

	for i, line := range psf.Stand.Designs {
		d, err := stand.ParseDesign(line)
		if err != nil {
			return stand.Intake{}, fmt.Errorf("designs[%d]: %w", i, err)
		}
		intake.Designs = append(intake.Designs, d)
	}

	for i, line := range psf.Stand.Flowers {
		lot, err := stand.ParseFlower(line)
		if err != nil {
			return stand.Intake{}, fmt.Errorf("flowers[%d]: %w", i, err)
		}
		intake.Flowers = append(intake.Flowers, lot)
	}

	return intake, nil
}
