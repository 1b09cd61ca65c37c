package attribute

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrOutOfRange reports a well-formed literal whose value does not fit.
var ErrOutOfRange = errors.New("value out of range")

// DecodeInt decodes a decimal, octal (leading zero) or hexadecimal (0x)
// integer literal.
func DecodeInt(lexeme string) (uint64, error) {
	var digits string
	var base int
	switch {
	case len(lexeme) > 1 && lexeme[0] == '0' && (lexeme[1] == 'x' || lexeme[1] == 'X'):
		digits, base = lexeme[2:], 16
	case len(lexeme) > 0 && lexeme[0] == '0':
		if len(lexeme) == 1 {
			return 0, nil
		}
		digits, base = lexeme[1:], 8
	default:
		digits, base = lexeme, 10
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, numError(lexeme, err)
	}
	return v, nil
}

// DecodeFloat decodes a floating-point literal with an optional fractional
// part and an optional signed exponent.
func DecodeFloat(lexeme string) (float64, error) {
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return 0, numError(lexeme, err)
	}
	return v, nil
}

func numError(lexeme string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%w: %v", ErrOutOfRange, lexeme)
	}
	return fmt.Errorf("%w: malformed number: %v", ErrInternal, lexeme)
}

// DecodeRune decodes a rune literal including its single quotes.
func DecodeRune(lexeme string) (rune, error) {
	body, err := unquote(lexeme, '\'')
	if err != nil {
		return 0, err
	}
	s, err := unescape(body)
	if err != nil {
		return 0, err
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%w: a rune literal must hold exactly one character: %v", ErrInternal, lexeme)
	}
	return r, nil
}

// DecodeString decodes a double-quoted string literal.
func DecodeString(lexeme string) (string, error) {
	body, err := unquote(lexeme, '"')
	if err != nil {
		return "", err
	}
	return unescape(body)
}

// DecodeRawString returns the text between the backquotes verbatim.
func DecodeRawString(lexeme string) (string, error) {
	return unquote(lexeme, '`')
}

func unquote(lexeme string, quote byte) (string, error) {
	if len(lexeme) < 2 || lexeme[0] != quote || lexeme[len(lexeme)-1] != quote {
		return "", fmt.Errorf("%w: unterminated literal: %v", ErrInternal, lexeme)
	}
	return lexeme[1 : len(lexeme)-1], nil
}

func unescape(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("%w: incomplete escape sequence", ErrInternal)
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\\', '\'', '"':
			b.WriteByte(s[i])
		default:
			return "", fmt.Errorf("%w: unknown escape sequence: \\%c", ErrInternal, s[i])
		}
	}
	return b.String(), nil
}
