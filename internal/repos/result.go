package repos

import "database/sql"

// affected turns "no row matched" into sql.ErrNoRows so callers can treat
// updates and deletes like lookups.
func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
