package employees

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// Database is the subset of pgxpool.Pool the repository relies on.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository provides CRUD primitives over the employees table. It carries
// no business validation.
type Repository interface {
	Insert(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context, limit, offset int) ([]Employee, error)
	Update(ctx context.Context, id int64, fields FieldSet) (Employee, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db Database
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(db Database) Repository {
	return &repository{db: db}
}

const employeeColumns = `id, first_name, last_name, email, position, salary, created_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Position, &e.Salary, &e.CreatedAt)
	return e, err
}

// Insert persists a new employee. The database assigns id and created_at;
// the unique constraint on email is the final arbiter against concurrent
// writers.
func (r *repository) Insert(ctx context.Context, e Employee) (Employee, error) {
	query := `
		INSERT INTO employees (first_name, last_name, email, position, salary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, e.FirstName, e.LastName, e.Email, e.Position, e.Salary).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Employee{}, ErrDuplicateEmail
		}
		return Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	return e, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, fmt.Errorf("get employee by id: %w", err)
	}
	return e, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`

	e, err := scanEmployee(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, fmt.Errorf("get employee by email: %w", err)
	}
	return e, nil
}

// List returns employees ordered by id ascending for determinism.
func (r *repository) List(ctx context.Context, limit, offset int) ([]Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := []Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// Update applies only the supplied fields and returns the full updated row.
func (r *repository) Update(ctx context.Context, id int64, fields FieldSet) (Employee, error) {
	set := make([]string, 0, 5)
	args := make([]any, 0, 6)

	appendSet := func(column string, value any) {
		args = append(args, value)
		set = append(set, column+" = $"+strconv.Itoa(len(args)))
	}
	if fields.FirstName != nil {
		appendSet("first_name", *fields.FirstName)
	}
	if fields.LastName != nil {
		appendSet("last_name", *fields.LastName)
	}
	if fields.Email != nil {
		appendSet("email", *fields.Email)
	}
	if fields.Position != nil {
		appendSet("position", *fields.Position)
	}
	if fields.Salary != nil {
		appendSet("salary", *fields.Salary)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := `UPDATE employees SET ` + strings.Join(set, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) +
		` RETURNING ` + employeeColumns

	e, err := scanEmployee(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return Employee{}, ErrDuplicateEmail
		}
		return Employee{}, fmt.Errorf("update employee: %w", err)
	}
	return e, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return total, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
