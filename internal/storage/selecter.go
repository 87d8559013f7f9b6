package storage

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-tilequest/internal"
)

const (
	defaultSelectorRowLength = 80
	defaultSelectorRowCount  = 5
)

type Selectable interface {
	Selector() string
}

type validatingSelectable interface {
	ValidatingSpec
	Selectable
}

// Selector prints a numbered, column filled menu of options and reads the
// player's choice.
type Selector[T Selectable] struct {
	options []option[T]
	output  []string
}

type option[T Selectable] struct {
	id  string
	val T
}

// NewSelector builds a menu from options keyed by id, ordered by label.
func NewSelector[T Selectable](options map[string]T) *Selector[T] {
	s := &Selector[T]{}

	for id, val := range options {
		s.options = append(s.options, option[T]{id: id, val: val})
	}
	slices.SortFunc(s.options, func(a, b option[T]) int {
		return strings.Compare(a.val.Selector(), b.val.Selector())
	})
	s.build()

	return s
}

// NewSelectableStorer builds a menu over everything in a store.
func NewSelectableStorer[T validatingSelectable](st Storer[T]) *Selector[T] {
	return NewSelector(st.GetAll())
}

func (s *Selector[T]) build() {
	// Calculate column width
	colWidth := 1
	for _, v := range s.options {
		l := len(v.val.Selector()) + 7 // Plus 7 for number and spacing (nn. <val>  )
		if l > colWidth {
			colWidth = l
		}
	}

	// Fill columns first, left to right, adding rows when the options do not
	// fit in the default number of rows.
	numVals := len(s.options)
	numCols := max(defaultSelectorRowLength/colWidth, 1)
	numRows := max((numVals+numCols-1)/numCols, defaultSelectorRowCount)

	rows := make([]string, numRows)
	for i, v := range s.options {
		rows[i%numRows] += fmt.Sprintf("%2d. %-*s  ", i+1, colWidth-5, v.val.Selector())
	}

	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], " ")
	}
	s.output = rows
}

func (s *Selector[T]) Prompt(rw io.ReadWriter, prompt string) (string, error) {
	_, err := fmt.Fprintf(rw, "%s\n", prompt)
	if err != nil {
		return "", err
	}

	for _, str := range s.output {
		if len(str) > 0 {
			_, err = fmt.Fprintf(rw, "%s\n", str)
			if err != nil {
				return "", err
			}
		}
	}

	selection, err := internal.Prompt(rw, "Make your selection: ", internal.WithValidator(
		func(str string) (bool, string) {
			i, err := strconv.Atoi(str)
			if err != nil || s.Select(i) == "" {
				return false, "Invalid selection!\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return "", err
	}

	i, err := strconv.Atoi(selection)
	if err != nil {
		return "", err
	}

	return s.Select(i), nil
}

// Select returns the id of the i-th option, counting from 1, or "".
func (s *Selector[T]) Select(i int) string {
	if i < 1 || i > len(s.options) {
		return ""
	}
	return s.options[i-1].id
}

// Len is the number of options.
func (s *Selector[T]) Len() int {
	return len(s.options)
}
