package schema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/niksmo/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/sr"
)

type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) CreateSchema(
	ctx context.Context, subject string, s sr.Schema,
) (sr.SubjectSchema, error) {
	args := m.Called(ctx, subject, s)
	return args.Get(0).(sr.SubjectSchema), args.Error(1)
}

func TestSchemaCreater(t *testing.T) {
	t.Run("ReturnsRegistryID", func(t *testing.T) {
		reg := new(MockRegistry)
		reg.On("CreateSchema", mock.Anything, "orders-value", sr.Schema{
			Schema: schema.OrderPlacedSchemaTextV1,
			Type:   sr.TypeAvro,
		}).Return(sr.SubjectSchema{ID: 17}, nil).Once()

		id, err := schema.NewSchemaCreater(reg).
			DetermineID(t.Context(), "orders-value", schema.OrderPlacedSchemaTextV1)
		require.NoError(t, err)
		assert.Equal(t, 17, id)
		reg.AssertExpectations(t)
	})

	t.Run("RegistryError", func(t *testing.T) {
		reg := new(MockRegistry)
		errIncompatible := errors.New("incompatible schema")
		reg.On("CreateSchema", mock.Anything, mock.Anything, mock.Anything).
			Return(sr.SubjectSchema{}, errIncompatible).Once()

		_, err := schema.NewSchemaCreater(reg).
			DetermineID(t.Context(), "orders-value", "{}")
		assert.ErrorIs(t, err, errIncompatible)
		assert.Contains(t, err.Error(), "orders-value")
	})
}
