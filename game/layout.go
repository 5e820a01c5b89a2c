package game

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Layout cell notation
const (
	WallCell    = '%'
	FoodCell    = '.'
	CapsuleCell = 'o'
	GhostCell   = 'G'
	PacmanCell  = 'P'
	EmptyCell   = ' '
)

var (
	ErrEmptyLayout   = errors.New("layout is empty")
	ErrRaggedLayout  = errors.New("layout rows differ in width")
	ErrNoPacman      = errors.New("layout has no pacman")
	ErrManyPacmen    = errors.New("layout has more than one pacman")
	ErrUnknownLayout = errors.New("unknown layout")
)

var layouts = map[string]string{
	"default": `
%%%%%%%%%%%%%%%%%%%%
%......%G  G%......%
%.%%...%%  %%...%%.%
%.%o.%........%.o%.%
%.%%.%.%%%%%%.%.%%.%
%........P.........%
%%%%%%%%%%%%%%%%%%%%
`,
	"small": `
%%%%%%%
%P...G%
%.%%%.%
%o....%
%%%%%%%
`,
	"open": `
%%%%%%%%%%
%P.......%
%........%
%....o...%
%.......G%
%%%%%%%%%%
`,
	"corridor": `
%%%%%%%%%
%P.....G%
%%%%%%%%%
`,
}

// LayoutNames lists the built-in layouts in sorted order.
func LayoutNames() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NamedLayout builds the initial state of a built-in layout.
func NamedLayout(name string, rules Rules) (*GameState, error) {
	text, ok := layouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	return ParseLayout(text, rules)
}

// LoadLayout reads a layout file from disk.
func LoadLayout(path string, rules Rules) (*GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	gs, err := ParseLayout(string(data), rules)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout %s: %w", path, err)
	}
	return gs, nil
}

// ParseLayout builds an initial state from layout text. Leading and trailing blank lines are
// ignored; every remaining row must have the same width. Ghosts are numbered in reading order.
func ParseLayout(text string, rules Rules) (*GameState, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Trim(text, "\n")
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyLayout
	}

	rows := strings.Split(text, "\n")
	width := len(rows[0])
	walls := NewGrid(width, len(rows))

	var (
		pacman   Position
		found    bool
		food     []Position
		capsules []Position
		ghosts   []Position
	)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", ErrRaggedLayout, y, len(row), width)
		}
		for x := 0; x < width; x++ {
			p := Position{X: x, Y: y}
			switch row[x] {
			case WallCell:
				walls.SetWall(x, y)
			case FoodCell:
				food = append(food, p)
			case CapsuleCell:
				capsules = append(capsules, p)
			case GhostCell:
				ghosts = append(ghosts, p)
			case PacmanCell:
				if found {
					return nil, fmt.Errorf("%w: second pacman at (%d, %d)", ErrManyPacmen, x, y)
				}
				pacman, found = p, true
			}
		}
	}
	if !found {
		return nil, ErrNoPacman
	}

	return NewGameState(walls, rules, pacman, food, capsules, ghosts), nil
}
