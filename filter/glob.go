package filter

// Translate converts a shell glob into an equivalent regex source
// string. Every input is translatable; there is no error case.
//
// '*' and '?' become '.*' and '.'; regex metacharacters that shell
// globs treat literally are escaped; bracket expressions pass through
// verbatim (shell class syntax is already valid regex); a backslash
// escapes the next character and is dropped when the escape carries no
// meaning in regex. The result is anchored with a leading '^' and a
// trailing '(?!\n)$', the lookahead guarding against '$' matching
// before a final newline.
//
// The translation runs in two passes: the first computes the output
// buffer size (the output is not a fixed multiple of the input, since
// escaping expands and wildcard handling contracts), the second writes
// the translated bytes.
func Translate(glob string) string {
	size := 0
	escaped := false
	for i := 0; i < len(glob); i++ {
		switch glob[i] {
		case '\\':
			escaped = !escaped
		case '*', '?', '|', '+', '(', ')', '{', '}':
			if !escaped {
				size++
			}
			escaped = false
		case '[', ']':
			escaped = false
		default:
			if escaped {
				size--
			}
			escaped = false
		}
		size++
	}

	buf := make([]byte, 0, size+len(`^(?!\n)$`))
	buf = append(buf, '^')

	// j marks the start of the pending verbatim segment; segments are
	// flushed whenever a byte needs rewriting around them.
	escaped = false
	j := 0
	for i := 0; i < len(glob); i++ {
		switch glob[i] {
		case '\\':
			escaped = !escaped
		case '*':
			if !escaped {
				buf = append(buf, glob[j:i]...)
				j = i
				buf = append(buf, '.')
			}
			escaped = false
		case '?':
			if !escaped {
				buf = append(buf, glob[j:i]...)
				j = i + 1
				buf = append(buf, '.')
			}
			escaped = false
		case '.', '|', '+', '(', ')', '{', '}':
			if !escaped {
				buf = append(buf, glob[j:i]...)
				j = i
				buf = append(buf, '\\')
			}
			escaped = false
		case '[', ']':
			escaped = false
		default:
			if escaped {
				// Drop the escape byte, it is meaningless here.
				buf = append(buf, glob[j:i-1]...)
				j = i
			}
			escaped = false
		}
	}
	buf = append(buf, glob[j:]...)
	buf = append(buf, `(?!\n)$`...)

	return string(buf)
}
