package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/designer"
)

var (
	quoteSize        string
	quoteLayers      int
	quoteDecorations []string
	quoteText        string
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a custom cake design",
	Example: `  storefront quote --size "8 inch" --decoration "Fresh Flowers" --decoration Pearls --text "Happy Birthday"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeQuote(cmd.OutOrStdout(), quoteSize, quoteLayers, quoteDecorations, quoteText)
	},
}

func init() {
	quoteCmd.Flags().StringVar(&quoteSize, "size", "", "cake size, e.g. \"8 inch\"")
	quoteCmd.Flags().IntVar(&quoteLayers, "layers", designer.MinLayers, "number of layers (does not change the price)")
	quoteCmd.Flags().StringArrayVar(&quoteDecorations, "decoration", nil, "decoration to add; repeatable")
	quoteCmd.Flags().StringVar(&quoteText, "text", "", "custom message on the cake")
	_ = quoteCmd.MarkFlagRequired("size")
}

func writeQuote(w io.Writer, size string, layers int, decorations []string, text string) error {
	c := designer.New()
	if err := c.SetField(designer.FieldSize, size); err != nil {
		return err
	}
	if !c.CanAdvance() {
		return fmt.Errorf("unknown size %q", size)
	}
	for c.Draft().Layers < layers && c.Draft().Layers < designer.MaxLayers {
		c.IncrementLayers()
	}
	for _, d := range decorations {
		c.ToggleDecoration(d)
	}
	if err := c.SetField(designer.FieldCustomText, text); err != nil {
		return err
	}

	d := c.Draft()
	base, _ := designer.SizePrice(d.Size)
	fmt.Fprintf(w, "%-22s %10s\n", d.Size+" base", base.StringFixed(2))
	for _, dec := range d.Decorations {
		fmt.Fprintf(w, "%-22s %10s\n", dec, designer.DecorationSurcharge.StringFixed(2))
	}
	if d.CustomText != "" {
		fmt.Fprintf(w, "%-22s %10s\n", "custom text", designer.CustomTextSurcharge.StringFixed(2))
	}
	fmt.Fprintf(w, "%-22s %10d\n", "layers", d.Layers)
	fmt.Fprintf(w, "%-22s %10s\n", "total", c.Price().StringFixed(2))
	return nil
}
