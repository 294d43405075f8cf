package links

import (
	"regexp"
	"strconv"

	"linkdrop-bot/internal/storage"
)

// uploadLineRe matches one "№10: https://..." line of an admin upload
var uploadLineRe = regexp.MustCompile(`№(\d+):\s*(http\S+)`)

// ParseUploadList extracts (number, url) pairs from a bulk upload message.
// Lines that do not match the format are skipped.
func ParseUploadList(text string) []storage.ResourceEntry {
	matches := uploadLineRe.FindAllStringSubmatch(text, -1)
	entries := make([]storage.ResourceEntry, 0, len(matches))
	for _, m := range matches {
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		entries = append(entries, storage.ResourceEntry{Number: number, URL: m[2]})
	}
	return entries
}
