package menu

import "log/slog"

// Validate gates a normalized structure against the aggregate
// invariants. It performs no transformation: the input is returned to
// the caller unchanged on success, and a typed error aborts the call on
// the first violated rule.
func Validate(s *ParsedMenuStructure, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if len(s.Categories) == 0 {
		return &EmptyMenuError{}
	}

	if s.Metadata.TotalItems == 0 {
		return &EmptyItemsError{}
	}

	// All-zero prices are suspicious but not structurally invalid;
	// surface it as a quality warning only.
	if !anyPositivePrice(s) {
		logger.Warn("extracted menu has no positive prices",
			"categories", s.Metadata.TotalCategories,
			"items", s.Metadata.TotalItems)
	}

	return nil
}

func anyPositivePrice(s *ParsedMenuStructure) bool {
	for _, cat := range s.Categories {
		for _, item := range cat.Items {
			if item.Price > 0 {
				return true
			}
		}
	}
	return false
}
