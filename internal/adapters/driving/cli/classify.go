package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

var classifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify [title...]",
	Short: "Classify a product title as an electronic component",
	Long: `Runs the component classifier on a free-text product title and prints
the inferred category, part number, package and electrical attributes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "output the component as JSON")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	if svc.Classify == nil {
		return errors.New("classify service not configured")
	}

	component := svc.Classify.Classify(strings.Join(args, " "), nil)

	if classifyJSON {
		return outputJSON(cmd.OutOrStdout(), component)
	}
	printComponent(cmd.OutOrStdout(), &component)
	return nil
}

func printComponent(w io.Writer, c *domain.ParsedComponent) {
	st := stylesFor(w)
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%s %s\n", st.Label.Render(label+":"), value)
		}
	}

	fmt.Fprintln(w, st.Title.Render(c.Name))
	field("Category", c.Category)
	field("Subcategory", c.Subcategory)
	field("Part number", c.PartNumber)
	field("Manufacturer", c.Manufacturer)
	field("Package", c.PackageType)
	if c.Resistance != nil {
		field("Resistance", strings.TrimSpace(fmt.Sprintf("%g%s %s", c.Resistance.Value, c.Resistance.Unit, c.Resistance.Tolerance)))
	}
	if c.Capacitance != nil {
		field("Capacitance", fmt.Sprintf("%g%s", c.Capacitance.Value, c.Capacitance.Unit))
	}
	if v := c.Voltage; v != nil {
		switch {
		case v.Nominal != nil:
			field("Voltage", fmt.Sprintf("%g%s", *v.Nominal, v.Unit))
		case v.Min != nil && v.Max != nil:
			field("Voltage", fmt.Sprintf("%g-%g%s", *v.Min, *v.Max, v.Unit))
		}
	}
	if c.Current != nil {
		field("Current", fmt.Sprintf("%g%s", c.Current.Value, c.Current.Unit))
	}
	if c.Frequency != nil {
		field("Frequency", fmt.Sprintf("%g%s", c.Frequency.Value, c.Frequency.Unit))
	}
	if c.PinCount != nil {
		field("Pins", fmt.Sprintf("%d", *c.PinCount))
	}
	field("Protocols", strings.Join(c.Protocols, ", "))
	field("Tags", strings.Join(c.Tags, ", "))
	field("Description", c.Description)
}
