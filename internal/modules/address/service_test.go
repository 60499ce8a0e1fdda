package address

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repository that mirrors the transactional
// semantics of the Postgres implementation.
type memRepo struct {
	byUser map[string][]*Address
}

func newMemRepo() *memRepo { return &memRepo{byUser: map[string][]*Address{}} }

func (m *memRepo) ListByUser(ctx context.Context, userID string) ([]*Address, error) {
	return m.byUser[userID], nil
}

func (m *memRepo) GetByID(ctx context.Context, userID, id string) (*Address, error) {
	for _, a := range m.byUser[userID] {
		if a.ID.String() == id {
			return a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memRepo) Create(ctx context.Context, a *Address) error {
	key := a.UserID.String()
	m.byUser[key] = append(m.byUser[key], a)
	return nil
}

func (m *memRepo) Update(ctx context.Context, a *Address) error { return nil }

func (m *memRepo) Delete(ctx context.Context, userID, id string) error {
	list := m.byUser[userID]
	for i, a := range list {
		if a.ID.String() == id {
			m.byUser[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memRepo) SetDefault(ctx context.Context, userID, id string) error {
	found := false
	for _, a := range m.byUser[userID] {
		if a.ID.String() == id {
			found = true
		}
	}
	if !found {
		return sql.ErrNoRows
	}
	for _, a := range m.byUser[userID] {
		a.IsDefault = a.ID.String() == id
	}
	return nil
}

func (m *memRepo) ClearDefaults(ctx context.Context, userID string) error {
	for _, a := range m.byUser[userID] {
		a.IsDefault = false
	}
	return nil
}

func validRequest(label string) SaveAddressRequest {
	return SaveAddressRequest{
		Label:      label,
		FullName:   "Jonas Brekke",
		Street:     "Lagerlaan 8",
		City:       "Eindhoven",
		PostalCode: "5617 BC",
		Country:    "NL",
	}
}

func countDefaults(addresses []*Address) (int, string) {
	n, id := 0, ""
	for _, a := range addresses {
		if a.IsDefault {
			n++
			id = a.ID.String()
		}
	}
	return n, id
}

func TestCreateAddress_FirstBecomesDefault(t *testing.T) {
	svc := NewService(newMemRepo())
	userID := uuid.New().String()

	a, err := svc.CreateAddress(context.Background(), userID, validRequest("home"))
	require.NoError(t, err)
	assert.True(t, a.IsDefault)
}

func TestCreateAddress_SecondIsNotDefault(t *testing.T) {
	svc := NewService(newMemRepo())
	userID := uuid.New().String()
	ctx := context.Background()

	_, err := svc.CreateAddress(ctx, userID, validRequest("home"))
	require.NoError(t, err)
	second, err := svc.CreateAddress(ctx, userID, validRequest("office"))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestSetDefaultAddress_ExactlyOneDefault(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	userID := uuid.New().String()
	ctx := context.Background()

	_, err := svc.CreateAddress(ctx, userID, validRequest("home"))
	require.NoError(t, err)
	office, err := svc.CreateAddress(ctx, userID, validRequest("office"))
	require.NoError(t, err)
	warehouse, err := svc.CreateAddress(ctx, userID, validRequest("warehouse"))
	require.NoError(t, err)

	addresses, err := svc.SetDefaultAddress(ctx, userID, office.ID.String())
	require.NoError(t, err)
	n, id := countDefaults(addresses)
	assert.Equal(t, 1, n)
	assert.Equal(t, office.ID.String(), id)

	// Flipping again moves the single flag, never duplicates it.
	addresses, err = svc.SetDefaultAddress(ctx, userID, warehouse.ID.String())
	require.NoError(t, err)
	n, id = countDefaults(addresses)
	assert.Equal(t, 1, n)
	assert.Equal(t, warehouse.ID.String(), id)
}

func TestSetDefaultAddress_UnknownID(t *testing.T) {
	svc := NewService(newMemRepo())
	userID := uuid.New().String()

	_, err := svc.SetDefaultAddress(context.Background(), userID, uuid.New().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateAddress_Validation(t *testing.T) {
	svc := NewService(newMemRepo())
	userID := uuid.New().String()

	req := validRequest("home")
	req.Street = ""
	_, err := svc.CreateAddress(context.Background(), userID, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestDeleteAddress(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	userID := uuid.New().String()
	ctx := context.Background()

	a, err := svc.CreateAddress(ctx, userID, validRequest("home"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAddress(ctx, userID, a.ID.String()))
	assert.Empty(t, repo.byUser[userID])

	err = svc.DeleteAddress(ctx, userID, a.ID.String())
	require.Error(t, err)
}
