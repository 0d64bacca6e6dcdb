package usecase

import (
	"net/url"
	"strings"

	"github.com/pricelens/backend/internal/domain"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ValidateRecord checks the field contract a raw record must meet before it
// may reach deduplication and categorization
func ValidateRecord(r domain.RawRecord) error {
	if strings.TrimSpace(string(r.Platform)) == "" {
		return eris.Wrap(domain.ErrInvalidRecord, "missing platform")
	}
	if strings.TrimSpace(r.Title) == "" {
		return eris.Wrap(domain.ErrInvalidRecord, "missing title")
	}
	if _, ok := ParsePrice(r.Price); !ok {
		return eris.Wrapf(domain.ErrInvalidRecord, "unparseable price %q", r.Price)
	}
	if !isAbsoluteURL(r.Link) {
		return eris.Wrapf(domain.ErrInvalidRecord, "link %q is not an absolute URL", r.Link)
	}
	return nil
}

// FilterValid drops every record that fails ValidateRecord
func FilterValid(records []domain.RawRecord) []domain.RawRecord {
	valid := make([]domain.RawRecord, 0, len(records))
	for _, r := range records {
		if err := ValidateRecord(r); err != nil {
			zap.L().Debug("dropping invalid record",
				zap.String("platform", string(r.Platform)),
				zap.String("title", r.Title),
				zap.Error(err),
			)
			continue
		}
		valid = append(valid, r)
	}
	return valid
}

func isAbsoluteURL(link string) bool {
	if link == "" {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
