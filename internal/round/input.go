package round

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/fairplay/internal/rules"
)

// ErrInvalidInput is returned for a line that is not "0", "?", a move number
// or a move name. The player is asked again.
var ErrInvalidInput = errors.New("invalid input")

// InputKind classifies a line typed at the move prompt.
type InputKind int

const (
	InputMove InputKind = iota
	InputExit
	InputHelp
)

// Input is a parsed prompt line.
type Input struct {
	Kind InputKind
	Move int // 1-based, set for InputMove
}

// ParseInput interprets one line of user input against table.
func ParseInput(line string, table *rules.Table) (Input, error) {
	line = strings.TrimSpace(line)
	switch line {
	case "0":
		return Input{Kind: InputExit}, nil
	case "?":
		return Input{Kind: InputHelp}, nil
	case "":
		return Input{}, fmt.Errorf("%w: empty line", ErrInvalidInput)
	}

	if isNumber(line) {
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > table.Len() {
			return Input{}, fmt.Errorf("%w: %s is not between 1 and %d", ErrInvalidInput, line, table.Len())
		}
		return Input{Kind: InputMove, Move: n}, nil
	}
	if strings.TrimLeft(line, "+-0123456789") == "" {
		return Input{}, fmt.Errorf("%w: %q is not a plain move number", ErrInvalidInput, line)
	}

	if move, ok := table.Index(line); ok {
		return Input{Kind: InputMove, Move: move}, nil
	}

	return Input{}, fmt.Errorf("%w: %q is not a move", ErrInvalidInput, line)
}

// isNumber reports whether s is a plain decimal number: digits only, with no
// sign and no leading zero.
func isNumber(s string) bool {
	if s == "" || s[0] == '0' {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
