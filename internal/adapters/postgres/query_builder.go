package postgres_adapter

import (
	"fmt"
	"strings"

	"github.com/MrSprintALot/job-feed/internal/core/domain"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		args:  make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyFeedFilters turns the feed filters into a WHERE clause over the
// job_posts table (aliased jp).
func applyFeedFilters(filters domain.FeedFilters) (string, []interface{}) {
	qb := newQueryBuilder()

	if filters.Source != "" {
		qb.addCondition("jp.source_platform = $%d", filters.Source)
	}

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		qb.addCondition("(jp.title ILIKE $%d OR jp.company ILIKE $%[1]d OR jp.tags ILIKE $%[1]d)", pattern)
	}

	// make_interval keeps the parameter an integer; a text-typed placeholder
	// here has no pgx encode plan from a Go int.
	if filters.Days > 0 {
		qb.addCondition("jp.scraped_at >= NOW() - make_interval(days => $%d)", filters.Days)
	}

	return qb.build()
}
