package postgres

import "database/sql"

func nullString(value *string) any {
	if value == nil {
		return sql.NullString{}
	}
	return *value
}

func nullFloat(value *float64) any {
	if value == nil {
		return sql.NullFloat64{}
	}
	return *value
}
