package admin

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listAdminsQuery      = `SELECT id, name, email, password, created_at FROM admin ORDER BY created_at`
	getAdminByIDQuery    = `SELECT id, name, email, password, created_at FROM admin WHERE id = $1`
	getAdminByEmailQuery = `SELECT id, name, email, password, created_at FROM admin WHERE lower(email) = lower($1)`
	insertAdminQuery     = `INSERT INTO admin (id, name, email, password, created_at) VALUES ($1,$2,$3,$4,$5)`
	updateAdminQuery     = `UPDATE admin SET name = $1, email = $2, password = $3 WHERE id = $4`
	deleteAdminQuery     = `DELETE FROM admin WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Admin, error) {
	rows, err := r.db.Query(listAdminsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Admin, 0)
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Admin, error) {
	a, err := scanAdmin(r.db.QueryRow(getAdminByIDQuery, id))
	if err == sql.ErrNoRows {
		return Admin{}, ErrNotFound
	}
	return a, err
}

func (r *PostgresRepository) GetByEmail(email string) (Admin, error) {
	a, err := scanAdmin(r.db.QueryRow(getAdminByEmailQuery, email))
	if err == sql.ErrNoRows {
		return Admin{}, ErrNotFound
	}
	return a, err
}

func (r *PostgresRepository) Create(a Admin) (Admin, error) {
	if _, err := r.db.Exec(insertAdminQuery, a.ID, a.Name, a.Email, a.Password, a.CreatedAt); err != nil {
		return Admin{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Update(id string, a Admin) (Admin, error) {
	result, err := r.db.Exec(updateAdminQuery, a.Name, a.Email, a.Password, id)
	if err != nil {
		return Admin{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Admin{}, err
	}
	if affected == 0 {
		return Admin{}, ErrNotFound
	}
	a.ID = id
	return a, nil
}

func (r *PostgresRepository) Delete(id string) error {
	result, err := r.db.Exec(deleteAdminQuery, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdmin(scanner rowScanner) (Admin, error) {
	a := Admin{}
	var createdAt sql.NullString
	if err := scanner.Scan(&a.ID, &a.Name, &a.Email, &a.Password, &createdAt); err != nil {
		return Admin{}, err
	}
	if createdAt.Valid {
		a.CreatedAt = createdAt.String
	}
	return a, nil
}
