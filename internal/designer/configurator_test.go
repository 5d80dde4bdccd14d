package designer

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

func TestAdvance_SizeGuard(t *testing.T) {
	c := New()

	err := c.Advance()
	require.ErrorIs(t, err, ErrStepIncomplete)
	assert.Equal(t, StepSizeShape, c.Step())
	assert.False(t, c.CanAdvance())

	require.NoError(t, c.SetField(FieldSize, "8 inch"))
	require.NoError(t, c.Advance())
	assert.Equal(t, StepFlavors, c.Step())
}

func TestAdvance_UnknownSizeIsIncomplete(t *testing.T) {
	c := New()
	require.NoError(t, c.SetField(FieldSize, "9 inch"))

	assert.ErrorIs(t, c.Advance(), ErrStepIncomplete)
	assert.Equal(t, StepSizeShape, c.Step())
}

func TestAdvance_FlavorGuard(t *testing.T) {
	c := New()
	require.NoError(t, c.SetField(FieldSize, "6 inch"))
	require.NoError(t, c.Advance())

	require.NoError(t, c.SetField(FieldFlavor, "Lemon"))
	assert.ErrorIs(t, c.Advance(), ErrStepIncomplete)
	assert.Equal(t, StepFlavors, c.Step())

	require.NoError(t, c.SetField(FieldFrosting, "Cream Cheese"))
	require.NoError(t, c.Advance())
	assert.Equal(t, StepDecorations, c.Step())
}

func TestAdvance_StopsAtReview(t *testing.T) {
	c := walkToReview(t)

	assert.ErrorIs(t, c.Advance(), ErrLastStep)
	assert.Equal(t, StepReview, c.Step())
	assert.False(t, c.CanAdvance())
}

func TestRetreat(t *testing.T) {
	c := New()
	c.Retreat()
	assert.Equal(t, StepSizeShape, c.Step())

	c = walkToReview(t)
	c.Retreat()
	assert.Equal(t, StepPersonalization, c.Step())
}

func TestToggles(t *testing.T) {
	c := New()

	c.ToggleDecoration("Pearls")
	c.ToggleDecoration("Fruit")
	c.ToggleDecoration("Gold Accents")
	c.ToggleDecoration("Fruit")
	assert.Equal(t, []string{"Pearls", "Gold Accents"}, c.Draft().Decorations)

	c.ToggleColor("Pink")
	c.ToggleColor("Pink")
	assert.Empty(t, c.Draft().Colors)
}

func TestLayersClamp(t *testing.T) {
	c := New()
	assert.Equal(t, 1, c.Draft().Layers)

	c.DecrementLayers()
	assert.Equal(t, 1, c.Draft().Layers)

	for i := 0; i < 10; i++ {
		c.IncrementLayers()
	}
	assert.Equal(t, 5, c.Draft().Layers)
}

func TestSetField_Unknown(t *testing.T) {
	c := New()
	err := c.SetField(Field("layers"), "3")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.True(t, IsPrecondition(err))
	assert.False(t, IsPrecondition(errors.New("boom")))
}

func TestPrice(t *testing.T) {
	cases := []struct {
		name  string
		draft Draft
		want  int64
	}{
		{name: "empty", draft: newDraft(), want: 0},
		{name: "size only", draft: Draft{Size: "10 inch"}, want: 110},
		{name: "unknown size", draft: Draft{Size: "9 inch", Decorations: []string{"Pearls"}}, want: 15},
		{
			name:  "decorations and text",
			draft: Draft{Size: "8 inch", Decorations: []string{"Gold Accents", "Pearls"}, CustomText: "Hi"},
			want:  125,
		},
		{
			name:  "layers and colors are free",
			draft: Draft{Size: "12 inch", Layers: 5, Colors: []string{"Red", "Gold"}, Filling: "Lemon Curd", Occasion: "Wedding"},
			want:  135,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Price(tc.draft)
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)), "got %s want %d", got, tc.want)
		})
	}
}

func TestFinalize(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New(WithClock(func() time.Time { return at }))

	_, err := c.Finalize()
	require.ErrorIs(t, err, ErrNotAtReview)

	require.NoError(t, c.SetField(FieldSize, "8 inch"))
	require.NoError(t, c.Advance())
	require.NoError(t, c.SetField(FieldFlavor, "Chocolate"))
	require.NoError(t, c.SetField(FieldFrosting, "Caramel"))
	require.NoError(t, c.Advance())
	c.ToggleDecoration("Gold Accents")
	c.ToggleDecoration("Pearls")
	require.NoError(t, c.Advance())
	require.NoError(t, c.SetField(FieldCustomText, "Hi"))
	require.NoError(t, c.Advance())

	cake, err := c.Finalize()
	require.NoError(t, err)

	assert.Equal(t, CustomCakeName, cake.Product.Name)
	assert.Equal(t, CustomCakeCategory, cake.Product.Category)
	assert.True(t, cake.Product.Customizable)
	assert.Equal(t, 7, cake.Product.LeadTime)
	assert.Equal(t, int(at.UnixMilli()), cake.Product.ID)
	assert.True(t, cake.Product.BasePrice.Equal(decimal.NewFromInt(125)))
	assert.Equal(t, "Chocolate", cake.Customization["flavor"])
	assert.Equal(t, []string{"Gold Accents", "Pearls"}, cake.Customization["decorations"])

	assert.Equal(t, StepSizeShape, c.Step(), "finalize starts a new session")
	assert.Equal(t, newDraft(), c.Draft())

	store := cart.NewStore("s")
	l := store.AddItem(cake.Product, cake.Customization, 1)
	assert.True(t, l.UnitPrice.Equal(decimal.NewFromInt(125)))
	assert.Equal(t, CustomCakeName, l.ProductName)
}

func TestDraftIsCopied(t *testing.T) {
	c := New()
	c.ToggleDecoration("Pearls")

	d := c.Draft()
	d.Decorations[0] = "Fruit"

	assert.Equal(t, []string{"Pearls"}, c.Draft().Decorations)
}

func TestStepNames(t *testing.T) {
	names := make([]string, 0)
	for _, s := range Steps() {
		names = append(names, s.String())
	}
	assert.Equal(t, []string{"Size & Shape", "Flavors", "Decorations", "Personalization", "Review"}, names)
	assert.Equal(t, "Unknown", Step(9).String())
}

func walkToReview(t *testing.T) *Configurator {
	t.Helper()
	c := New()
	require.NoError(t, c.SetField(FieldSize, "6 inch"))
	require.NoError(t, c.Advance())
	require.NoError(t, c.SetField(FieldFlavor, "Vanilla"))
	require.NoError(t, c.SetField(FieldFrosting, "Whipped Cream"))
	for c.Step() < StepReview {
		require.NoError(t, c.Advance())
	}
	return c
}
