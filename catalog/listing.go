package catalog

import (
	"sort"
	"strings"

	"bracelet-customizer/models"
	"bracelet-customizer/utils"
)

// Charm category labels with special meaning
const (
	CategoryAll         = "All"
	CategoryBestsellers = "Bestsellers"
	CategoryNewDrops    = "New Drops & Favs"
)

// Bracelets lists every non-charm product, optionally filtered by category.
// The category matches either the product's own category or its type label.
func (c *Catalog) Bracelets(category string) []models.BraceletItem {
	want := categoryFilter(category)

	items := []models.BraceletItem{}
	for _, id := range c.order {
		cfg := c.products[id]
		if cfg.ProductType == models.ProductTypeCharm {
			continue
		}
		if want != "" && utils.Slugify(cfg.Category) != want && utils.Slugify(cfg.ProductType.Category()) != want {
			continue
		}
		items = append(items, c.braceletItem(cfg))
	}
	return items
}

// BraceletCategories returns the distinct category labels of listed bracelets
func (c *Catalog) BraceletCategories() []string {
	if len(c.settings.BraceletCategories) > 0 {
		return c.settings.BraceletCategories
	}
	var labels []string
	seen := map[string]bool{}
	for _, id := range c.order {
		cfg := c.products[id]
		if cfg.ProductType == models.ProductTypeCharm {
			continue
		}
		label := cfg.ProductType.Category()
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}

// Charms lists charms filtered by category and a free-text query over name, description and tags
func (c *Catalog) Charms(category, query string) []models.CharmItem {
	want := categoryFilter(category)
	q := strings.ToLower(strings.TrimSpace(query))

	items := []models.CharmItem{}
	for _, id := range c.order {
		cfg := c.products[id]
		if cfg.ProductType != models.ProductTypeCharm {
			continue
		}
		if want != "" && !charmInCategory(cfg, category, want) {
			continue
		}
		if q != "" && !charmMatches(cfg, q) {
			continue
		}
		items = append(items, c.charmItem(cfg))
	}
	return items
}

// CharmCategories returns the configured charm categories
func (c *Catalog) CharmCategories() []string {
	if len(c.settings.CharmCategories) > 0 {
		return c.settings.CharmCategories
	}
	return []string{CategoryAll, CategoryBestsellers, CategoryNewDrops}
}

func categoryFilter(category string) string {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, CategoryAll) {
		return ""
	}
	return utils.Slugify(category)
}

func charmInCategory(cfg *models.ProductConfig, label, slug string) bool {
	switch {
	case strings.EqualFold(strings.TrimSpace(label), CategoryBestsellers):
		return cfg.IsBestSeller || utils.Slugify(cfg.Category) == "bestsellers"
	case strings.EqualFold(strings.TrimSpace(label), CategoryNewDrops):
		return cfg.IsNew || utils.Slugify(cfg.Category) == "new-drops"
	}
	return utils.Slugify(cfg.Category) == slug
}

func charmMatches(cfg *models.ProductConfig, q string) bool {
	if strings.Contains(strings.ToLower(cfg.Name), q) || strings.Contains(strings.ToLower(cfg.Description), q) {
		return true
	}
	for _, tag := range cfg.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (c *Catalog) braceletItem(cfg *models.ProductConfig) models.BraceletItem {
	gaps := make(map[int]string, len(cfg.GapImageByLength))
	for n, ref := range cfg.GapImageByLength {
		gaps[n] = string(ref)
	}
	stones := make(map[string]string, len(cfg.SpaceStoneImageByPositionAndParity))
	for k, ref := range cfg.SpaceStoneImageByPositionAndParity {
		stones[k.String()] = string(ref)
	}
	colors := cfg.AvailableLetterColors
	if colors == nil {
		colors = []models.LetterColor{}
	}

	return models.BraceletItem{
		ID:                    cfg.ProductID,
		Name:                  cfg.Name,
		Description:           cfg.Description,
		BasePrice:             cfg.BasePrice,
		FormattedPrice:        utils.FormatMoney(cfg.BasePrice, c.settings.Currency),
		Image:                 string(cfg.MainImage),
		GapImages:             gaps,
		SpaceStoneImages:      stones,
		AvailableSizes:        cfg.Sizes(),
		AvailableLetterColors: colors,
		IsBestSeller:          cfg.IsBestSeller,
		Category:              cfg.Category,
		ProductType:           cfg.ProductType,
		MinWordLength:         cfg.MinWordLength,
		MaxWordLength:         cfg.MaxWordLength,
		SupportsCharms:        cfg.SupportsCharms,
		Slug:                  cfg.Slug,
		SKU:                   cfg.SKU,
	}
}

func (c *Catalog) charmItem(cfg *models.ProductConfig) models.CharmItem {
	return models.CharmItem{
		ID:                    cfg.ProductID,
		Name:                  cfg.Name,
		Description:           cfg.Description,
		Price:                 cfg.BasePrice,
		FormattedPrice:        utils.FormatMoney(cfg.BasePrice, c.settings.Currency),
		Image:                 string(cfg.MainImage),
		PositionImages:        stringImages(cfg.PositionImages),
		NoWordsPositionImages: stringImages(cfg.NoWordsPositionImages),
		IsNew:                 cfg.IsNew,
		IsBestSeller:          cfg.IsBestSeller,
		Category:              cfg.Category,
		Vibe:                  cfg.Vibe,
		Tags:                  cfg.Tags,
		Slug:                  cfg.Slug,
		SKU:                   cfg.SKU,
	}
}

func stringImages(in map[int]models.ImageRef) map[int]string {
	out := make(map[int]string, len(in))
	for n, ref := range in {
		out[n] = string(ref)
	}
	return out
}
