package util

// SplitRunes cuts text into consecutive pieces of at most size runes. Unlike a
// display chunker it is lossless: joining the pieces gives text back.
func SplitRunes(text string, size int) []string {
	if size <= 0 {
		size = 32000
	}
	if text == "" {
		return nil
	}
	out := make([]string, 0, len(text)/size+1)
	start, n := 0, 0
	for i := range text {
		if n == size {
			out = append(out, text[start:i])
			start, n = i, 0
		}
		n++
	}
	return append(out, text[start:])
}
