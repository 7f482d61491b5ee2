package persistence

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// buildArticleFilter composes the WHERE clause for an article list query.
//
// Search and preference each form one disjunctive group; the explicit
// category/source/date restrictions and the groups themselves compose
// conjunctively. The preference group is inclusive: a row qualifies by
// matching any non-empty preferred dimension, and dimensions with empty sets
// impose no restriction at all.
//
// Returns the clause (including the leading " WHERE ", or "" when
// unrestricted) and the positional arguments.
func buildArticleFilter(opts QueryOptions) (string, []any) {
	var groups []string
	var args []any

	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		p := len(args)
		groups = append(groups, fmt.Sprintf(
			"(title ILIKE $%d OR source_name ILIKE $%d OR author ILIKE $%d OR category ILIKE $%d)",
			p, p, p, p))
	}

	if opts.Preference != nil {
		var dims []string
		if len(opts.Preference.Source) > 0 {
			args = append(args, pq.Array(opts.Preference.Source))
			dims = append(dims, fmt.Sprintf("source_name = ANY($%d)", len(args)))
		}
		if len(opts.Preference.Category) > 0 {
			args = append(args, pq.Array(opts.Preference.Category))
			dims = append(dims, fmt.Sprintf("category = ANY($%d)", len(args)))
		}
		if len(opts.Preference.Author) > 0 {
			args = append(args, pq.Array(opts.Preference.Author))
			dims = append(dims, fmt.Sprintf("author = ANY($%d)", len(args)))
		}
		if len(dims) > 0 {
			groups = append(groups, "("+strings.Join(dims, " OR ")+")")
		}
	}

	if opts.Category != "" {
		args = append(args, opts.Category)
		groups = append(groups, fmt.Sprintf("category = $%d", len(args)))
	}

	if opts.Source != "" {
		args = append(args, opts.Source)
		groups = append(groups, fmt.Sprintf("source_name = $%d", len(args)))
	}

	if opts.PublishedDate != nil {
		args = append(args, opts.PublishedDate.Format("2006-01-02"))
		groups = append(groups, fmt.Sprintf("published_at::date = $%d", len(args)))
	}

	if len(groups) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(groups, " AND "), args
}

// page normalizes a 1-based page number.
func page(opts QueryOptions) int {
	if opts.Page < 1 {
		return 1
	}
	return opts.Page
}
