package manifest

import "strings"

// InstructionsFilename is the how-to file written after Phase 1.
const InstructionsFilename = "step2-instructsions.txt"

// Instructions returns the text explaining how to author the manifest.
func Instructions() string {
	lines := []string{
		"To start step 2, create a file named " + Filename + " with the names of all of the mp3 files in this directory. ($ ls *.mp3 > " + Filename + ")",
		"Edit this file by inserting chapter names wherever you want a new chapter to start. For example:",
		"",
		"# " + Filename,
		"prologue",
		"00.mp3",
		"01.mp3",
		"",
		"chap1",
		"02.mp3",
		"03.mp3",
		"04.mp3",
		"05.mp3",
		"",
		"chap2",
		"06.mp3",
		"07.mp3",
		"... and so on",
		"",
		"Then just run the command again in this directory.",
	}
	return strings.Join(lines, "\n") + "\n"
}
