// Package manifest parses the user-edited groupings file that assigns the
// numbered Phase 1 files to named chapters.
//
// The format is line oriented. Blank lines and lines starting with '#' are
// ignored. A line ending in ".mp3" names a member file of the current
// chapter; any other line starts a new chapter with that name. Files listed
// before the first chapter name form an implicit chapter "00".
//
// A chapter name that itself ends in ".mp3" cannot be expressed: it is read
// as a member file.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"strings"
)

// Filename is the manifest's name in the working directory.
const Filename = "groupings.txt"

// ImplicitGroupDir is the directory for files listed before any chapter name.
const ImplicitGroupDir = "00"

const memberSuffix = ".mp3"

// maxLineBytes bounds a single manifest line.
const maxLineBytes = 1 << 20

// Group is one chapter: a directory name and its member files in playback order.
type Group struct {
	// Index is the chapter's position, starting at 0.
	Index int
	// Name is the chapter name as written; empty for the implicit group.
	Name string
	// Dir is the chapter directory, "<index:02d>_<name>" or "00".
	Dir string
	// Members are the audio files to join, in order.
	Members []string
}

// IsMember reports whether a trimmed manifest line names a member file.
func IsMember(line string) bool {
	return strings.HasSuffix(line, memberSuffix)
}

// DirName returns the chapter directory for the chapter at index.
func DirName(index int, name string) string {
	return filepath.Clean(fmt.Sprintf("%02d_%s", index, name))
}

// Parse returns a lazy sequence of the chapters described by r.
//
// A group is yielded as soon as the next chapter name (or end of input)
// closes it, so the consumer finishes one chapter before any later line is
// read. Groups without members are yielded too, since their directory is
// still part of the output. A read error is yielded once as the final
// element.
func Parse(r io.Reader) iter.Seq2[Group, error] {
	return func(yield func(Group, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

		index := -1
		var current *Group

		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			if !IsMember(line) {
				if current != nil && !yield(*current, nil) {
					return
				}
				index++
				current = &Group{
					Index: index,
					Name:  line,
					Dir:   DirName(index, line),
				}
				continue
			}

			if current == nil {
				index = 0
				current = &Group{Index: 0, Dir: ImplicitGroupDir}
			}
			current.Members = append(current.Members, line)
		}

		if err := sc.Err(); err != nil {
			yield(Group{}, fmt.Errorf("read manifest: %w", err))
			return
		}

		if current != nil {
			yield(*current, nil)
		}
	}
}
