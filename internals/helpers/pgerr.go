package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation deteksi pelanggaran unique constraint sebagai jaring
// pengaman di belakang duplicate check berbasis query. Driver gorm postgres
// memakai pgx, jadi error Postgres muncul sebagai *pgconn.PgError (23505);
// sqlite di test hanya ketangkap lewat fallback string.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}
