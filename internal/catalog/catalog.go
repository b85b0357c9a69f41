package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
)

// Questionnaire types delivered by the practice.
const (
	TypeSMI   = "SMI"
	TypeYSQ   = "YSQ"
	TypeBecks = "BECKS"
	TypeBurns = "BURNS"
)

// Types lists all questionnaire types in issue order.
var Types = []string{TypeSMI, TypeYSQ, TypeBecks, TypeBurns}

func ValidType(t string) bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

type Option struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

// Item is one clinical statement. Category is the SMI mode name or the
// two-letter YSQ schema code; BECKS and BURNS items carry no category.
type Item struct {
	ID       string   `json:"id"`
	Prompt   string   `json:"prompt"`
	Category string   `json:"category,omitempty"`
	Options  []Option `json:"options"`
}

// YSQSchema is one of the 18 fixed early-maladaptive-schema clusters.
type YSQSchema struct {
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	ItemIDs    []string  `json:"item_ids"`
	Max        int       `json:"max"`
	Boundaries []float64 `json:"boundaries"`
}

// Catalog is the full static questionnaire content. Loaded once at process
// start; never mutated afterwards.
type Catalog struct {
	items      map[string][]Item
	ysqSchemas []YSQSchema
}

//go:embed data/*.json
var dataFS embed.FS

var smiOptions = []Option{
	{Value: 1, Text: "Never or almost never"},
	{Value: 2, Text: "Rarely"},
	{Value: 3, Text: "Occasionally"},
	{Value: 4, Text: "Frequently"},
	{Value: 5, Text: "Most of the time"},
	{Value: 6, Text: "All of the time"},
}

var ysqOptions = []Option{
	{Value: 1, Text: "Completely untrue of me"},
	{Value: 2, Text: "Mostly untrue of me"},
	{Value: 3, Text: "Slightly more true than untrue"},
	{Value: 4, Text: "Moderately true of me"},
	{Value: 5, Text: "Mostly true of me"},
	{Value: 6, Text: "Describes me perfectly"},
}

var burnsOptions = []Option{
	{Value: 0, Text: "Not at all"},
	{Value: 1, Text: "Somewhat"},
	{Value: 2, Text: "Moderately"},
	{Value: 3, Text: "A lot"},
}

// Load parses the embedded questionnaire content and builds the immutable
// catalog. It fails on malformed content, never at runtime afterwards.
func Load() (*Catalog, error) {
	c := &Catalog{items: make(map[string][]Item, len(Types))}

	smi, err := loadItems("data/smi_items.json", smiOptions)
	if err != nil {
		return nil, fmt.Errorf("smi items: %w", err)
	}
	c.items[TypeSMI] = smi

	ysq, err := loadItems("data/ysq_items.json", ysqOptions)
	if err != nil {
		return nil, fmt.Errorf("ysq items: %w", err)
	}
	c.items[TypeYSQ] = ysq

	becks, err := loadItems("data/becks_items.json", nil)
	if err != nil {
		return nil, fmt.Errorf("becks items: %w", err)
	}
	c.items[TypeBecks] = becks

	burns, err := loadItems("data/burns_items.json", burnsOptions)
	if err != nil {
		return nil, fmt.Errorf("burns items: %w", err)
	}
	c.items[TypeBurns] = burns

	schemas, err := buildYSQSchemas(ysq)
	if err != nil {
		return nil, fmt.Errorf("ysq schemas: %w", err)
	}
	c.ysqSchemas = schemas

	return c, nil
}

func loadItems(path string, defaultOptions []Option) ([]Item, error) {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s contains no items", path)
	}

	seen := make(map[string]bool, len(items))
	for i := range items {
		it := &items[i]
		if it.ID == "" || it.Prompt == "" {
			return nil, fmt.Errorf("%s item %d missing id or prompt", path, i)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("%s duplicate item id %q", path, it.ID)
		}
		seen[it.ID] = true
		if len(it.Options) == 0 {
			if defaultOptions == nil {
				return nil, fmt.Errorf("%s item %q has no options", path, it.ID)
			}
			it.Options = defaultOptions
		}
	}
	return items, nil
}

func buildYSQSchemas(items []Item) ([]YSQSchema, error) {
	byCode := make(map[string][]string, len(ysqSchemaDefs))
	for _, it := range items {
		if it.Category == "" {
			return nil, fmt.Errorf("item %q has no schema code", it.ID)
		}
		byCode[it.Category] = append(byCode[it.Category], it.ID)
	}

	schemas := make([]YSQSchema, 0, len(ysqSchemaDefs))
	for _, def := range ysqSchemaDefs {
		ids := byCode[def.code]
		if len(ids) == 0 {
			return nil, fmt.Errorf("schema %q has no items", def.code)
		}
		if len(def.boundaries) != 6 {
			return nil, fmt.Errorf("schema %q boundary table has %d values", def.code, len(def.boundaries))
		}
		schemas = append(schemas, YSQSchema{
			Code:       def.code,
			Name:       def.name,
			ItemIDs:    ids,
			Max:        len(ids) * 6,
			Boundaries: def.boundaries,
		})
		delete(byCode, def.code)
	}
	if len(byCode) > 0 {
		for code := range byCode {
			return nil, fmt.Errorf("items reference unknown schema %q", code)
		}
	}
	return schemas, nil
}

// ItemsFor returns the item list for a questionnaire type, nil for unknown types.
func (c *Catalog) ItemsFor(formType string) []Item {
	return c.items[formType]
}

// YSQSchemas returns the 18 schemas in fixed registry order.
func (c *Catalog) YSQSchemas() []YSQSchema {
	return c.ysqSchemas
}

func (c *Catalog) SchemaByCode(code string) (YSQSchema, bool) {
	for _, s := range c.ysqSchemas {
		if s.Code == code {
			return s, true
		}
	}
	return YSQSchema{}, false
}
