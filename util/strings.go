package util

import "unicode/utf8"

// shortenKeep is how many leading and trailing runes Shorten keeps.
const shortenKeep = 5

/*
Shorten returns preview form of long identifier like strings: values longer
than 10 runes are returned as first five runes, "..." and last five runes.
Shorter values are returned unchanged. Meant for display only.
*/
func Shorten(s string) string {
	if utf8.RuneCountInString(s) <= 2*shortenKeep {
		return s
	}
	head, tail := 0, len(s)
	for range shortenKeep {
		_, n := utf8.DecodeRuneInString(s[head:])
		head += n
		_, n = utf8.DecodeLastRuneInString(s[:tail])
		tail -= n
	}
	return s[:head] + "..." + s[tail:]
}
