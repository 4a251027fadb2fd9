package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactdesk/contacts-api/pkg/model"
)

// newTestStore opens a store on a throwaway database file. The engine is
// embedded, so these tests run against the real thing.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "contacts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string {
	return &s
}

// TestInsertAssignsIdAndTimestamp verifies that the store assigns the id
// and the creation timestamp and that a subsequent read returns the same
// record, stable across repeated reads.
func TestInsertAssignsIdAndTimestamp(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Insert(model.Contact{
		Name:    "Erika Mustermann",
		Phone:   "+49 0815 4711",
		Email:   strPtr("erika@example.com"),
		Address: strPtr("Musterstraße 1"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Id)
	assert.False(t, created.CreatedAt.IsZero())

	first, err := s.FindByID(created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Erika Mustermann", first.Name)
	assert.Equal(t, "+49 0815 4711", first.Phone)
	assert.Equal(t, "erika@example.com", *first.Email)
	assert.Equal(t, "Musterstraße 1", *first.Address)

	second, err := s.FindByID(created.Id)
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
}

// TestInsertWithoutOptionalFields verifies that absent email and address
// are stored as NULL, not as empty strings.
func TestInsertWithoutOptionalFields(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Insert(model.Contact{Name: "Aaron", Phone: "+420 111"})
	require.NoError(t, err)

	found, err := s.FindByID(created.Id)
	require.NoError(t, err)
	assert.Nil(t, found.Email)
	assert.Nil(t, found.Address)
}

// TestIdsAreMonotonic verifies that ids follow insertion order.
func TestIdsAreMonotonic(t *testing.T) {
	s := newTestStore(t)

	var previous int64
	for _, name := range []string{"Aaron", "Berta", "Carla"} {
		created, err := s.Insert(model.Contact{Name: name, Phone: "+420 000"})
		require.NoError(t, err)
		assert.Greater(t, created.Id, previous)
		previous = created.Id
	}
}

// TestFindAllOrdering verifies that after creating A then B then C, FindAll
// returns [C, B, A].
func TestFindAllOrdering(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"Aaron", "Berta", "Carla"} {
		_, err := s.Insert(model.Contact{Name: name, Phone: "+420 000"})
		require.NoError(t, err)
	}

	contacts, err := s.FindAll()
	require.NoError(t, err)
	require.Equal(t, 3, len(contacts))
	assert.Equal(t, "Carla", contacts[0].Name)
	assert.Equal(t, "Berta", contacts[1].Name)
	assert.Equal(t, "Aaron", contacts[2].Name)
}

// TestFindAllEmpty verifies that an empty table yields an empty slice, not
// an error.
func TestFindAllEmpty(t *testing.T) {
	s := newTestStore(t)

	contacts, err := s.FindAll()
	require.NoError(t, err)
	assert.Equal(t, []model.Contact{}, contacts)
}

// TestFindByIDUnknown verifies the not-found sentinel.
func TestFindByIDUnknown(t *testing.T) {
	s := newTestStore(t)

	_, err := s.FindByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestUpdate verifies that an update overwrites the mutable fields, leaves
// id and creation timestamp untouched, and is idempotent.
func TestUpdate(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Insert(model.Contact{Name: "John", Phone: "123"})
	require.NoError(t, err)

	update := model.Contact{
		Id:    created.Id,
		Name:  "Jane",
		Phone: "123",
		Email: strPtr("jane@example.com"),
	}
	require.NoError(t, s.Update(update))
	first, err := s.FindByID(created.Id)
	require.NoError(t, err)

	// Applying the same update again must yield the same stored row.
	require.NoError(t, s.Update(update))
	second, err := s.FindByID(created.Id)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Jane", second.Name)
	assert.Equal(t, "jane@example.com", *second.Email)
	assert.Equal(t, created.Id, second.Id)
	assert.True(t, created.CreatedAt.Equal(second.CreatedAt))
}

// TestUpdateUnknown verifies that updating a nonexistent id reports
// not-found and mutates nothing.
func TestUpdateUnknown(t *testing.T) {
	s := newTestStore(t)

	err := s.Update(model.Contact{Id: 9999, Name: "Nobody", Phone: "0"})
	assert.ErrorIs(t, err, ErrNotFound)

	contacts, err := s.FindAll()
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

// TestDelete verifies that a delete removes exactly one row and that a
// second delete of the same id reports not-found.
func TestDelete(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Insert(model.Contact{Name: "John", Phone: "123"})
	require.NoError(t, err)
	other, err := s.Insert(model.Contact{Name: "Jane", Phone: "456"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(created.Id))
	assert.ErrorIs(t, s.Delete(created.Id), ErrNotFound)

	contacts, err := s.FindAll()
	require.NoError(t, err)
	require.Equal(t, 1, len(contacts))
	assert.Equal(t, other.Id, contacts[0].Id)
}

// TestDuplicateEmail verifies that the schema rejects a duplicate email and
// that the violation is recognizable, while multiple contacts without an
// email remain legal.
func TestDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Insert(model.Contact{Name: "John", Phone: "123", Email: strPtr("john@example.com")})
	require.NoError(t, err)

	_, err = s.Insert(model.Contact{Name: "Johnny", Phone: "456", Email: strPtr("john@example.com")})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	// NULL emails do not collide with each other.
	_, err = s.Insert(model.Contact{Name: "Jane", Phone: "789"})
	require.NoError(t, err)
	_, err = s.Insert(model.Contact{Name: "Joan", Phone: "012"})
	require.NoError(t, err)
}

// TestIsUniqueViolationOtherErrors verifies that ordinary errors are not
// misclassified as uniqueness violations.
func TestIsUniqueViolationOtherErrors(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(ErrNotFound))
}
