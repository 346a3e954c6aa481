package employees_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewdesk/crewdesk/internal/employees"
)

type memoryRepo struct {
	records map[int64]employees.Employee
	nextID  int64

	getByEmailCalls int
	updateCalls     int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[int64]employees.Employee)}
}

func (r *memoryRepo) Insert(ctx context.Context, e employees.Employee) (employees.Employee, error) {
	for _, existing := range r.records {
		if existing.Email == e.Email {
			return employees.Employee{}, employees.ErrDuplicateEmail
		}
	}
	r.nextID++
	e.ID = r.nextID
	e.CreatedAt = time.Now()
	r.records[e.ID] = e
	return e, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id int64) (employees.Employee, error) {
	e, ok := r.records[id]
	if !ok {
		return employees.Employee{}, employees.ErrNotFound
	}
	return e, nil
}

func (r *memoryRepo) GetByEmail(ctx context.Context, email string) (employees.Employee, error) {
	r.getByEmailCalls++
	for _, e := range r.records {
		if e.Email == email {
			return e, nil
		}
	}
	return employees.Employee{}, employees.ErrNotFound
}

func (r *memoryRepo) List(ctx context.Context, limit, offset int) ([]employees.Employee, error) {
	out := []employees.Employee{}
	for id := int64(1); id <= r.nextID; id++ {
		if e, ok := r.records[id]; ok {
			out = append(out, e)
		}
	}
	if offset >= len(out) {
		return []employees.Employee{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, fields employees.FieldSet) (employees.Employee, error) {
	r.updateCalls++
	e, ok := r.records[id]
	if !ok {
		return employees.Employee{}, employees.ErrNotFound
	}
	if fields.Email != nil {
		for otherID, other := range r.records {
			if otherID != id && other.Email == *fields.Email {
				return employees.Employee{}, employees.ErrDuplicateEmail
			}
		}
		e.Email = *fields.Email
	}
	if fields.FirstName != nil {
		e.FirstName = *fields.FirstName
	}
	if fields.LastName != nil {
		e.LastName = *fields.LastName
	}
	if fields.Position != nil {
		e.Position = *fields.Position
	}
	if fields.Salary != nil {
		e.Salary = *fields.Salary
	}
	r.records[id] = e
	return e, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.records[id]; !ok {
		return employees.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *memoryRepo) Count(ctx context.Context) (int, error) {
	return len(r.records), nil
}

// blindRepo hides existing emails from the pre-check so the storage
// constraint is the one that catches the duplicate.
type blindRepo struct {
	*memoryRepo
}

func (r *blindRepo) GetByEmail(ctx context.Context, email string) (employees.Employee, error) {
	return employees.Employee{}, employees.ErrNotFound
}

func janeFields() employees.FieldSet {
	return employees.FieldSet{
		FirstName: str("Jane"),
		LastName:  str("Smith"),
		Email:     str("jane@example.com"),
		Position:  str("PM"),
		Salary:    num(85000),
	}
}

func TestServiceCreate_Valid(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())
	before := time.Now()

	created, err := svc.Create(context.Background(), janeFields())
	require.NoError(t, err)

	assert.Positive(t, created.ID)
	assert.False(t, created.CreatedAt.Before(before))
	assert.Equal(t, "Jane", created.FirstName)
	assert.Equal(t, "jane@example.com", created.Email)

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestServiceCreate_TrimsBeforeStorage(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())
	fields := janeFields()
	fields.FirstName = str("  Jane ")
	fields.Email = str(" jane@example.com ")

	created, err := svc.Create(context.Background(), fields)
	require.NoError(t, err)
	assert.Equal(t, "Jane", created.FirstName)
	assert.Equal(t, "jane@example.com", created.Email)
}

func TestServiceCreate_ValidationBatch(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), employees.FieldSet{})

	var validationErr *employees.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields, 5)
}

func TestServiceCreate_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())
	_, err := svc.Create(context.Background(), janeFields())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), janeFields())

	var conflictErr *employees.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "Email 'jane@example.com' already exists", conflictErr.Fields["email"])
}

func TestServiceCreate_DuplicateEmailCaughtByStorage(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	svc := employees.NewService(&blindRepo{memoryRepo: repo})
	_, err := svc.Create(context.Background(), janeFields())
	require.NoError(t, err)

	// The pre-check sees nothing, the insert hits the unique constraint.
	_, err = svc.Create(context.Background(), janeFields())

	var conflictErr *employees.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "Email 'jane@example.com' already exists", conflictErr.Fields["email"])
}

func TestServiceList(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		fields := janeFields()
		fields.Email = str(email)
		_, err := svc.Create(context.Background(), fields)
		require.NoError(t, err)
	}

	records, count, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Len(t, records, 3)
	assert.Equal(t, int64(1), records[0].ID)

	records, count, err = svc.List(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(2), records[0].ID)
}

func TestServiceList_RejectsNegativePagination(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())

	_, _, err := svc.List(context.Background(), -1, -2)

	var validationErr *employees.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "limit")
	assert.Contains(t, validationErr.Fields, "offset")
}

func TestServiceGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())

	_, err := svc.Get(context.Background(), 42)

	var notFoundErr *employees.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.EqualValues(t, 42, notFoundErr.ID)
	assert.Equal(t, "Employee with id 42 not found", notFoundErr.Error())
}

func TestServiceUpdate_EmptyFieldSetIsNoOp(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	svc := employees.NewService(repo)
	created, err := svc.Create(context.Background(), janeFields())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, employees.FieldSet{})
	require.NoError(t, err)
	assert.Equal(t, created, updated)
	assert.Zero(t, repo.updateCalls)
}

func TestServiceUpdate_PositionOnlySkipsEmailCheck(t *testing.T) {
	t.Parallel()

	repo := newMemoryRepo()
	svc := employees.NewService(repo)
	created, err := svc.Create(context.Background(), janeFields())
	require.NoError(t, err)

	calls := repo.getByEmailCalls
	updated, err := svc.Update(context.Background(), created.ID, employees.FieldSet{Position: str("CTO")})
	require.NoError(t, err)
	assert.Equal(t, "CTO", updated.Position)
	assert.Equal(t, "jane@example.com", updated.Email)
	assert.Equal(t, calls, repo.getByEmailCalls)
}

func TestServiceUpdate_EmailConflict(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())
	_, err := svc.Create(context.Background(), janeFields())
	require.NoError(t, err)

	otherFields := janeFields()
	otherFields.Email = str("john@example.com")
	other, err := svc.Create(context.Background(), otherFields)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), other.ID, employees.FieldSet{Email: str("jane@example.com")})

	var conflictErr *employees.ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestServiceUpdate_OwnEmailAllowed(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())
	created, err := svc.Create(context.Background(), janeFields())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, employees.FieldSet{
		Email:  str("jane@example.com"),
		Salary: num(90000),
	})
	require.NoError(t, err)
	assert.InDelta(t, 90000, updated.Salary, 0.001)
}

func TestServiceUpdate_InvalidSalary(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())
	created, err := svc.Create(context.Background(), janeFields())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, employees.FieldSet{Salary: num(-5)})

	var validationErr *employees.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Salary must be greater than 0", validationErr.Fields["salary"])
}

func TestServiceUpdate_NotFound(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())

	_, err := svc.Update(context.Background(), 42, employees.FieldSet{Position: str("CTO")})

	var notFoundErr *employees.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestServiceDelete(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())
	created, err := svc.Create(context.Background(), janeFields())
	require.NoError(t, err)

	result, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, result.ID)
	assert.Equal(t, "Employee Jane Smith deleted successfully", result.Message)

	_, err = svc.Get(context.Background(), created.ID)
	var notFoundErr *employees.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestServiceDelete_NotFound(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())

	_, err := svc.Delete(context.Background(), 42)

	var notFoundErr *employees.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

// TestServiceScenario walks the documented create, conflict, update, delete
// sequence end to end.
func TestServiceScenario(t *testing.T) {
	t.Parallel()

	svc := employees.NewService(newMemoryRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, janeFields())
	require.NoError(t, err)
	assert.EqualValues(t, 1, created.ID)

	_, err = svc.Create(ctx, janeFields())
	var conflictErr *employees.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "Email 'jane@example.com' already exists", conflictErr.Fields["email"])

	_, err = svc.Update(ctx, created.ID, employees.FieldSet{Salary: num(-5)})
	var validationErr *employees.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Salary must be greater than 0", validationErr.Fields["salary"])

	result, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Employee Jane Smith deleted successfully", result.Message)

	_, err = svc.Get(ctx, created.ID)
	var notFoundErr *employees.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
