package game

import (
	"errors"

	"github.com/ncruces/zenity"
)

// errCanceled is returned by dialogs the user dismissed.
var errCanceled = zenity.ErrCanceled

// dialogs abstracts the native windows the control surface opens.
type dialogs interface {
	choose(title string, items []string) (string, error)
	name(title, initial string) (string, error)
	savePath(defaultName string) (string, error)
	warn(msg string)
}

type zenityDialogs struct{}

func (zenityDialogs) choose(title string, items []string) (string, error) {
	if len(items) == 0 {
		return "", errCanceled
	}
	return zenity.List(title, items,
		zenity.Title(title),
		zenity.DisallowEmpty(),
	)
}

func (zenityDialogs) name(title, initial string) (string, error) {
	return zenity.Entry(title,
		zenity.Title(title),
		zenity.EntryText(initial),
	)
}

func (zenityDialogs) savePath(defaultName string) (string, error) {
	return zenity.SelectFileSave(
		zenity.Title("Export pattern"),
		zenity.Filename(defaultName),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{
			{Name: "SVG image", Patterns: []string{"*.svg"}},
			{Name: "PNG image", Patterns: []string{"*.png"}},
			{Name: "PDF document", Patterns: []string{"*.pdf"}},
			{Name: "Oscilloscope audio", Patterns: []string{"*.wav"}},
		},
	)
}

func (zenityDialogs) warn(msg string) {
	_ = zenity.Warning(msg, zenity.Title("Guilloche"), zenity.WarningIcon)
}

func canceled(err error) bool {
	return errors.Is(err, zenity.ErrCanceled)
}
