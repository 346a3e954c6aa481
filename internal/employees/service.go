package employees

import (
	"context"
	"errors"
	"fmt"
)

// DefaultLimit is applied when a listing does not specify one.
const DefaultLimit = 100

// Service orchestrates validation and persistence. It is the only place
// where rules spanning both live, and the sole translator from repository
// failures to domain errors.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the full payload, pre-checks email uniqueness for a
// friendlier error, and inserts. The storage constraint remains the final
// arbiter: a duplicate detected at insert time surfaces the same conflict.
func (s *Service) Create(ctx context.Context, fields FieldSet) (Employee, error) {
	fields.Normalize()
	if errs := Validate(fields, false); errs != nil {
		return Employee{}, &ValidationError{Fields: errs}
	}

	if _, err := s.repo.GetByEmail(ctx, *fields.Email); err == nil {
		return Employee{}, emailConflict(*fields.Email)
	} else if !errors.Is(err, ErrNotFound) {
		return Employee{}, fmt.Errorf("check email uniqueness: %w", err)
	}

	created, err := s.repo.Insert(ctx, Employee{
		FirstName: *fields.FirstName,
		LastName:  *fields.LastName,
		Email:     *fields.Email,
		Position:  *fields.Position,
		Salary:    *fields.Salary,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return Employee{}, emailConflict(*fields.Email)
		}
		return Employee{}, err
	}
	return created, nil
}

// List returns a page of employees ordered by id, plus the size of the
// returned set. Negative pagination values are rejected; a missing limit
// falls back to DefaultLimit.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Employee, int, error) {
	errs := make(map[string]string)
	if limit < 0 {
		errs["limit"] = "Limit must be a non-negative integer"
	}
	if offset < 0 {
		errs["offset"] = "Offset must be a non-negative integer"
	}
	if len(errs) > 0 {
		return nil, 0, &ValidationError{Fields: errs}
	}
	if limit == 0 {
		limit = DefaultLimit
	}

	records, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return records, len(records), nil
}

// Get fetches a single employee by id.
func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Employee{}, &NotFoundError{ID: id}
		}
		return Employee{}, err
	}
	return e, nil
}

// Update merges the supplied fields into the stored record. Only supplied
// fields are validated; the email uniqueness check runs only when the email
// is supplied and differs from the current value, and tolerates the record's
// own row.
func (s *Service) Update(ctx context.Context, id int64, fields FieldSet) (Employee, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if fields.Empty() {
		return existing, nil
	}

	fields.Normalize()
	if errs := Validate(fields, true); errs != nil {
		return Employee{}, &ValidationError{Fields: errs}
	}

	if fields.Email != nil && *fields.Email != existing.Email {
		other, err := s.repo.GetByEmail(ctx, *fields.Email)
		switch {
		case err == nil && other.ID != id:
			return Employee{}, emailConflict(*fields.Email)
		case err != nil && !errors.Is(err, ErrNotFound):
			return Employee{}, fmt.Errorf("check email uniqueness: %w", err)
		}
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return Employee{}, &NotFoundError{ID: id}
		case errors.Is(err, ErrDuplicateEmail):
			return Employee{}, emailConflict(*fields.Email)
		}
		return Employee{}, err
	}
	return updated, nil
}

// Delete removes the employee and returns a confirmation carrying the
// captured name fields.
func (s *Service) Delete(ctx context.Context, id int64) (DeleteResult, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return DeleteResult{}, &NotFoundError{ID: id}
		}
		return DeleteResult{}, err
	}

	return DeleteResult{
		ID:      id,
		Message: fmt.Sprintf("Employee %s %s deleted successfully", existing.FirstName, existing.LastName),
	}, nil
}
