package modal

import (
	"fmt"
	"log/slog"

	"github.com/mitchellh/mapstructure"

	"github.com/chrisuehlinger/tingle/binding"
)

// CloseMethod is a way the user may dismiss a dialog.
type CloseMethod string

const (
	CloseOverlay CloseMethod = "overlay"
	CloseButton  CloseMethod = "button"
	CloseEscape  CloseMethod = "escape"
)

// Options configures a dialog. A nil CloseMethods enables every method; an
// empty, non-nil slice disables them all.
type Options struct {
	Footer       bool          `mapstructure:"footer"`
	StickyFooter bool          `mapstructure:"stickyFooter"`
	CSSClass     []string      `mapstructure:"cssClass"`
	CloseLabel   string        `mapstructure:"closeLabel"`
	CloseMethods []CloseMethod `mapstructure:"closeMethods"`

	BeforeOpen  func(m *Modal)      `mapstructure:"-"`
	OnOpen      func(m *Modal)      `mapstructure:"-"`
	BeforeClose func(m *Modal) bool `mapstructure:"-"`
	OnClose     func(m *Modal)      `mapstructure:"-"`

	// EntityDefaults replaces the template that fills absent entity fields.
	EntityDefaults *binding.Entity `mapstructure:"-"`
	Viewport       Viewport        `mapstructure:"-"`
	Logger         *slog.Logger    `mapstructure:"-"`
}

// DefaultOptions returns the options of a dialog built without any.
func DefaultOptions() Options {
	return Options{
		CloseLabel:   "Close",
		CloseMethods: []CloseMethod{CloseOverlay, CloseButton, CloseEscape},
	}
}

// DecodeOptions decodes the plain data form of Options over the defaults.
func DecodeOptions(data map[string]any) (Options, error) {
	opts := DefaultOptions()
	if len(data) == 0 {
		return opts, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &opts,
		ZeroFields: true,
	})
	if err != nil {
		return opts, err
	}
	if err := decoder.Decode(data); err != nil {
		return opts, fmt.Errorf("decode modal options: %w", err)
	}
	for _, cm := range opts.CloseMethods {
		switch cm {
		case CloseOverlay, CloseButton, CloseEscape:
		default:
			return opts, fmt.Errorf("decode modal options: unknown close method %q", cm)
		}
	}
	return opts, nil
}

func (o Options) allows(cm CloseMethod) bool {
	for _, m := range o.CloseMethods {
		if m == cm {
			return true
		}
	}
	return false
}

func (o Options) withDefaults() Options {
	if o.CloseLabel == "" {
		o.CloseLabel = "Close"
	}
	if o.CloseMethods == nil {
		o.CloseMethods = DefaultOptions().CloseMethods
	}
	return o
}
