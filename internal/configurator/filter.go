package configurator

import "fmt"

// FilterMaterials returns the materials that remain legal for the requested
// dimension. Materials without constraints are always kept; bounds are
// compared in millimeters regardless of the units either side declares.
func FilterMaterials(product *ConfiguratorProduct, selections *Selections) *MaterialFilterResult {
	result := &MaterialFilterResult{
		Materials: make([]MaterialRef, 0, len(product.Materials)),
		Issues:    []string{},
	}

	var dimension *Dimension
	if selections != nil {
		dimension = selections.Dimension
	}

	for _, material := range product.Materials {
		if dimension == nil || material.Constraints == nil || fitsConstraints(material.Constraints, dimension) {
			result.Materials = append(result.Materials, material)
			continue
		}
		result.Issues = append(result.Issues,
			fmt.Sprintf("material %s is not compatible with the requested size", material.Name))
	}
	return result
}

func fitsConstraints(c *MaterialConstraints, d *Dimension) bool {
	width := d.Unit.Millimeters(d.Width)
	height := d.Unit.Millimeters(d.Height)

	if c.MinWidth != nil && width < c.Unit.Millimeters(*c.MinWidth) {
		return false
	}
	if c.MaxWidth != nil && width > c.Unit.Millimeters(*c.MaxWidth) {
		return false
	}
	if c.MinHeight != nil && height < c.Unit.Millimeters(*c.MinHeight) {
		return false
	}
	if c.MaxHeight != nil && height > c.Unit.Millimeters(*c.MaxHeight) {
		return false
	}
	return true
}

// FilterPrintMethods returns the print methods compatible with the selected
// material. An empty allow-list means the method works on any material; an
// empty material selection keeps everything.
func FilterPrintMethods(product *ConfiguratorProduct, selections *Selections) *PrintMethodFilterResult {
	result := &PrintMethodFilterResult{
		PrintMethods: make([]PrintMethodRef, 0, len(product.PrintMethods)),
		Issues:       []string{},
	}

	materialID := ""
	if selections != nil {
		materialID = selections.MaterialID
	}

	for _, method := range product.PrintMethods {
		if materialID == "" || len(method.MaterialIDs) == 0 || containsString(method.MaterialIDs, materialID) {
			result.PrintMethods = append(result.PrintMethods, method)
			continue
		}
		result.Issues = append(result.Issues,
			fmt.Sprintf("print method %s is not compatible with material %s", method.Name, materialID))
	}
	return result
}

// FilterFinishing returns the finishing operations compatible with both the
// selected material and the selected print method.
func FilterFinishing(product *ConfiguratorProduct, selections *Selections) *FinishingFilterResult {
	result := &FinishingFilterResult{
		Finishing: make([]FinishingRef, 0, len(product.Finishing)),
		Issues:    []string{},
	}

	materialID, printMethodID := "", ""
	if selections != nil {
		materialID = selections.MaterialID
		printMethodID = selections.PrintMethodID
	}

	for _, finishing := range product.Finishing {
		if materialID != "" && len(finishing.CompatibleMaterialIDs) > 0 &&
			!containsString(finishing.CompatibleMaterialIDs, materialID) {
			result.Issues = append(result.Issues,
				fmt.Sprintf("finishing %s is not compatible with material %s", finishing.Name, materialID))
			continue
		}
		if printMethodID != "" && len(finishing.CompatiblePrintMethodIDs) > 0 &&
			!containsString(finishing.CompatiblePrintMethodIDs, printMethodID) {
			result.Issues = append(result.Issues,
				fmt.Sprintf("finishing %s is not compatible with print method %s", finishing.Name, printMethodID))
			continue
		}
		result.Finishing = append(result.Finishing, finishing)
	}
	return result
}

func containsString(list []string, target string) bool {
	for _, entry := range list {
		if entry == target {
			return true
		}
	}
	return false
}
