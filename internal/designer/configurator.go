package designer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

const (
	CustomCakeName     = "Custom Designed Cake"
	CustomCakeCategory = "Custom Orders"
	CustomCakeLeadTime = 7
	customCakeImage    = "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=400&h=300&fit=crop"
)

type Field string

const (
	FieldSize            Field = "size"
	FieldShape           Field = "shape"
	FieldFlavor          Field = "flavor"
	FieldFrosting        Field = "frosting"
	FieldFilling         Field = "filling"
	FieldCustomText      Field = "customText"
	FieldOccasion        Field = "occasion"
	FieldSpecialRequests Field = "specialRequests"
)

// CustomCake is the finalized design, ready for cart.Store.AddItem.
type CustomCake struct {
	Product       catalog.Product
	Customization cart.Customization
}

// Configurator walks one shopper through the cake designer. It is not safe for
// concurrent use.
type Configurator struct {
	step  Step
	draft Draft
	now   func() time.Time
}

type Option func(*Configurator)

func WithClock(now func() time.Time) Option {
	return func(c *Configurator) {
		if now != nil {
			c.now = now
		}
	}
}

func New(opts ...Option) *Configurator {
	c := &Configurator{
		step:  StepSizeShape,
		draft: newDraft(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Configurator) Step() Step { return c.step }

func (c *Configurator) Draft() Draft { return c.draft.clone() }

func (c *Configurator) Price() decimal.Decimal { return Price(c.draft) }

// Reset discards the draft and returns to the first step.
func (c *Configurator) Reset() {
	c.step = StepSizeShape
	c.draft = newDraft()
}

// CanAdvance reports whether Advance would succeed.
func (c *Configurator) CanAdvance() bool {
	return c.step < StepReview && c.guard() == nil
}

func (c *Configurator) guard() error {
	switch c.step {
	case StepSizeShape:
		if _, ok := SizePrice(c.draft.Size); !ok {
			return fmt.Errorf("%w: choose a size", ErrStepIncomplete)
		}
	case StepFlavors:
		if c.draft.Flavor == "" || c.draft.Frosting == "" {
			return fmt.Errorf("%w: choose a flavor and a frosting", ErrStepIncomplete)
		}
	}
	return nil
}

// Advance moves to the next step. The step is unchanged when an error is returned.
func (c *Configurator) Advance() error {
	if c.step >= StepReview {
		return ErrLastStep
	}
	if err := c.guard(); err != nil {
		return err
	}
	c.step++
	return nil
}

// Retreat moves back one step; at the first step it does nothing.
func (c *Configurator) Retreat() {
	if c.step > StepSizeShape {
		c.step--
	}
}

func (c *Configurator) SetField(f Field, value string) error {
	switch f {
	case FieldSize:
		c.draft.Size = value
	case FieldShape:
		c.draft.Shape = value
	case FieldFlavor:
		c.draft.Flavor = value
	case FieldFrosting:
		c.draft.Frosting = value
	case FieldFilling:
		c.draft.Filling = value
	case FieldCustomText:
		c.draft.CustomText = value
	case FieldOccasion:
		c.draft.Occasion = value
	case FieldSpecialRequests:
		c.draft.SpecialRequests = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return nil
}

func (c *Configurator) ToggleDecoration(name string) {
	c.draft.Decorations = toggle(c.draft.Decorations, name)
}

func (c *Configurator) ToggleColor(name string) {
	c.draft.Colors = toggle(c.draft.Colors, name)
}

func (c *Configurator) IncrementLayers() {
	c.draft.Layers = min(MaxLayers, c.draft.Layers+1)
}

func (c *Configurator) DecrementLayers() {
	c.draft.Layers = max(MinLayers, c.draft.Layers-1)
}

// Finalize turns the draft into a custom cake product and starts a fresh design.
// It does not add anything to a cart.
func (c *Configurator) Finalize() (CustomCake, error) {
	if c.step != StepReview {
		return CustomCake{}, ErrNotAtReview
	}

	cake := CustomCake{
		Product: catalog.Product{
			ID:           int(c.now().UnixMilli()),
			Name:         CustomCakeName,
			Category:     CustomCakeCategory,
			BasePrice:    c.Price(),
			Images:       []string{customCakeImage},
			Customizable: true,
			LeadTime:     CustomCakeLeadTime,
		},
		Customization: c.draft.Customization(),
	}
	c.Reset()
	return cake, nil
}
