package common

import (
	"context"

	"github.com/pulsegram/backend/internal/model"
	"github.com/pulsegram/backend/pkg/errorx"
	"github.com/pulsegram/backend/pkg/xcontext"
)

// NormalizePage clamps page/limit to sane values. Page is 1-based. A zero
// limit falls back to defaultLimit, anything above the configured maximum
// is rejected.
func NormalizePage(ctx context.Context, page, limit, defaultLimit int) (int, int, error) {
	if page <= 0 {
		page = 1
	}

	if limit == 0 {
		limit = defaultLimit
	}

	if limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Limit must not be negative")
	}

	maxLimit := xcontext.Configs(ctx).ApiServer.MaxLimit
	if limit > maxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceeded the maximum limit of %d", maxLimit)
	}

	return page, limit, nil
}

// Offset converts a 1-based page to a row offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

func NewPagination(total int64, page, limit int) model.Pagination {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}

	return model.Pagination{
		Total:   total,
		Page:    page,
		Pages:   pages,
		HasMore: page < pages,
	}
}
