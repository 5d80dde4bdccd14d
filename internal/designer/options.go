package designer

import "github.com/shopspring/decimal"

// Step is a position in the designer wizard.
type Step int

const (
	StepSizeShape Step = iota
	StepFlavors
	StepDecorations
	StepPersonalization
	StepReview
)

const stepCount = int(StepReview) + 1

var stepNames = [stepCount]string{
	"Size & Shape",
	"Flavors",
	"Decorations",
	"Personalization",
	"Review",
}

func (s Step) String() string {
	if s < 0 || int(s) >= stepCount {
		return "Unknown"
	}
	return stepNames[s]
}

// Steps lists the wizard steps in order.
func Steps() []Step {
	out := make([]Step, stepCount)
	for i := range out {
		out[i] = Step(i)
	}
	return out
}

type SizeOption struct {
	Name   string          `json:"name"`
	Serves string          `json:"serves"`
	Price  decimal.Decimal `json:"price"`
}

var sizes = []SizeOption{
	{Name: "6 inch", Serves: "6-8 people", Price: decimal.NewFromInt(65)},
	{Name: "8 inch", Serves: "12-15 people", Price: decimal.NewFromInt(85)},
	{Name: "10 inch", Serves: "20-25 people", Price: decimal.NewFromInt(110)},
	{Name: "12 inch", Serves: "30-35 people", Price: decimal.NewFromInt(135)},
}

var (
	DecorationSurcharge = decimal.NewFromInt(15)
	CustomTextSurcharge = decimal.NewFromInt(10)
)

const (
	MinLayers = 1
	MaxLayers = 5

	defaultShape = "Round"
)

// Options is the menu the presentation layer renders for each step.
type Options struct {
	Sizes       []SizeOption `json:"sizes"`
	Flavors     []string     `json:"flavors"`
	Frostings   []string     `json:"frostings"`
	Fillings    []string     `json:"fillings"`
	Decorations []string     `json:"decorations"`
	Colors      []string     `json:"colors"`
}

func DefaultOptions() Options {
	return Options{
		Sizes: append([]SizeOption(nil), sizes...),
		Flavors: []string{
			"Vanilla", "Chocolate", "Strawberry", "Red Velvet", "Lemon", "Carrot",
			"Funfetti", "Banana", "Coconut", "Almond",
		},
		Frostings: []string{
			"Vanilla Buttercream", "Chocolate Buttercream", "Cream Cheese",
			"Whipped Cream", "Caramel", "Peanut Butter",
		},
		Fillings: []string{
			"None", "Strawberry Jam", "Chocolate Ganache", "Lemon Curd",
			"Raspberry Filling", "Caramel Sauce",
		},
		Decorations: []string{
			"Fresh Flowers", "Sugar Flowers", "Chocolate Drip", "Gold Accents",
			"Pearls", "Sprinkles", "Fruit", "Macarons",
		},
		Colors: []string{"White", "Pink", "Blue", "Purple", "Yellow", "Green", "Red", "Gold"},
	}
}

// SizePrice returns the base price for a size name; unknown or empty sizes cost 0.
func SizePrice(name string) (decimal.Decimal, bool) {
	for _, s := range sizes {
		if s.Name == name {
			return s.Price, true
		}
	}
	return decimal.Zero, false
}
