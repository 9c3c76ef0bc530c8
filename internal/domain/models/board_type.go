package models

import (
	"strconv"
	"strings"
)

// BoardKind classifies a limit-up event.
type BoardKind int

const (
	BoardOther       BoardKind = iota // label kept verbatim from the source
	BoardFirst                        // first limit-up after a break
	BoardConsecutive                  // continuation of a streak
	BoardReopened                     // sealed again after opening intraday
	BoardHighOpen                     // gapped up and sealed
	BoardOneWord                      // opened at the limit and never traded below it
)

const unknownBoardLabel = "unknown"

var boardLabels = map[BoardKind]string{
	BoardFirst:       "first",
	BoardConsecutive: "consecutive",
	BoardReopened:    "reopened",
	BoardHighOpen:    "high-open",
	BoardOneWord:     "one-word",
}

// boardAliases maps the spellings seen in ladder files to a kind.
var boardAliases = map[string]BoardKind{
	"first":       BoardFirst,
	"first-time":  BoardFirst,
	"first_board": BoardFirst,
	"首板":          BoardFirst,
	"consecutive": BoardConsecutive,
	"连板":          BoardConsecutive,
	"reopened":    BoardReopened,
	"reopen":      BoardReopened,
	"回封":          BoardReopened,
	"反包":          BoardReopened,
	"high-open":   BoardHighOpen,
	"high_open":   BoardHighOpen,
	"high open":   BoardHighOpen,
	"高开":          BoardHighOpen,
	"one-word":    BoardOneWord,
	"one_word":    BoardOneWord,
	"一字":          BoardOneWord,
	"一字板":         BoardOneWord,
}

// boardCodes maps the integer encoding used by the pipeline.
var boardCodes = map[int64]BoardKind{
	1: BoardFirst,
	2: BoardConsecutive,
	3: BoardReopened,
	4: BoardHighOpen,
	5: BoardOneWord,
}

// BoardType is the display value of a record's board classification.
// Aggregations compare by Label, whatever the source encoding was.
type BoardType struct {
	Kind  BoardKind
	Label string
}

// BoardTypeFromText classifies a text tag. Unknown tags keep their text.
func BoardTypeFromText(s string) BoardType {
	s = strings.TrimSpace(s)
	if s == "" {
		return BoardType{Kind: BoardOther, Label: unknownBoardLabel}
	}
	if k, ok := boardAliases[strings.ToLower(s)]; ok {
		return BoardType{Kind: k, Label: boardLabels[k]}
	}
	return BoardType{Kind: BoardOther, Label: s}
}

// BoardTypeFromCode classifies an integer code. Unknown codes keep their
// decimal text.
func BoardTypeFromCode(code int64) BoardType {
	if k, ok := boardCodes[code]; ok {
		return BoardType{Kind: k, Label: boardLabels[k]}
	}
	return BoardType{Kind: BoardOther, Label: strconv.FormatInt(code, 10)}
}

func (b BoardType) String() string {
	if b.Label == "" {
		return unknownBoardLabel
	}
	return b.Label
}
