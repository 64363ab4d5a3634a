package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"pet-registry/internal/domain/microchips"
	"pet-registry/internal/domain/pets"
)

type chipView struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Brand   string `json:"brand"`
	Deleted bool   `json:"deleted,omitempty"`
}

type petView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	TagCode   string    `json:"tag_code"`
	Microchip *chipView `json:"microchip"`
}

func toChipView(m microchips.Microchip) chipView {
	return chipView{ID: m.ID, Code: m.Code, Brand: m.Brand, Deleted: m.Deleted}
}

func toPetView(p pets.Pet) petView {
	v := petView{ID: p.ID, Name: p.Name, Species: p.Species, TagCode: p.TagCode}
	if p.Microchip != nil {
		c := toChipView(*p.Microchip)
		v.Microchip = &c
	}
	return v
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func printPets(w io.Writer, asJSON bool, items []pets.Pet) error {
	views := make([]petView, 0, len(items))
	for _, p := range items {
		views = append(views, toPetView(p))
	}
	if asJSON {
		return printJSON(w, views)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tTAG\tMICROCHIP")
	for _, v := range views {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Species, v.TagCode, chipLabel(v.Microchip))
	}
	return tw.Flush()
}

func printPet(w io.Writer, asJSON bool, p pets.Pet) error {
	if asJSON {
		return printJSON(w, toPetView(p))
	}
	return printPets(w, false, []pets.Pet{p})
}

func printChips(w io.Writer, asJSON bool, items []microchips.Microchip) error {
	views := make([]chipView, 0, len(items))
	for _, m := range items {
		views = append(views, toChipView(m))
	}
	if asJSON {
		return printJSON(w, views)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCODE\tBRAND")
	for _, v := range views {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", v.ID, v.Code, v.Brand)
	}
	return tw.Flush()
}

func printChip(w io.Writer, asJSON bool, m microchips.Microchip) error {
	if asJSON {
		return printJSON(w, toChipView(m))
	}
	return printChips(w, false, []microchips.Microchip{m})
}

func chipLabel(c *chipView) string {
	switch {
	case c == nil:
		return "-"
	case c.Deleted:
		return fmt.Sprintf("%d (deleted)", c.ID)
	default:
		return fmt.Sprintf("%d", c.ID)
	}
}
