package store

import (
	sq "github.com/Masterminds/squirrel"
)

const schema = "givehaven"

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
