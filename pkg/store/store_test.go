package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuaderno/entities"
	"cuaderno/pkg/store"
	"cuaderno/pkg/testutil"
)

func TestFindOrCreate(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	v := entities.Vehicle{Plate: "1234ABC", Type: entities.VehicleVan, Make: "Renault"}
	created, err := store.FindOrCreate(ctx, db, &v, map[string]any{"plate": "1234ABC"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, v.ID)

	again := entities.Vehicle{Plate: "1234ABC", Make: "Other"}
	created, err = store.FindOrCreate(ctx, db, &again, map[string]any{"plate": "1234ABC"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, v.ID, again.ID)
	assert.Equal(t, "Renault", again.Make, "existing row is returned untouched")

	var n int64
	require.NoError(t, db.Model(&entities.Vehicle{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestFirstMissAndOrder(t *testing.T) {
	db := testutil.DB(t)

	var p entities.Person
	ok, err := store.First(db.Where("nif = ?", "X"), &p)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Create(&entities.Person{Name: "Primera", NIF: "X"}).Error)
	require.NoError(t, db.Create(&entities.Person{Name: "Segunda", NIF: "X"}).Error)
	ok, err = store.First(db.Where("nif = ?", "X"), &p)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Primera", p.Name)
}

func TestMainHoldingAndSaveAddress(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	h, err := store.MainHolding(ctx, db)
	require.NoError(t, err)
	assert.Nil(t, h)

	id, err := store.SaveAddress(ctx, db, nil, &entities.Address{Locality: "Lorca"})
	require.NoError(t, err)
	require.NotNil(t, id)

	same, err := store.SaveAddress(ctx, db, id, &entities.Address{Locality: "Totana"})
	require.NoError(t, err)
	assert.Equal(t, *id, *same)

	kept, err := store.SaveAddress(ctx, db, id, nil)
	require.NoError(t, err)
	assert.Equal(t, id, kept)

	require.NoError(t, db.Create(&entities.Holding{Name: "Finca Sol", NIF: "B123", AddressID: id}).Error)
	h, err = store.MainHolding(ctx, db)
	require.NoError(t, err)
	require.NotNil(t, h)
	require.NotNil(t, h.Address)
	assert.Equal(t, "Totana", h.Address.Locality)
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		needle string
		fields []string
		want   bool
	}{
		{"álamo", []string{"ÁLAMO-01"}, true},
		{"JUDÍA", []string{"P1", "judía verde"}, true},
		{" ñora ", []string{"PIMIENTO ÑORA"}, true},
		{"olivo", []string{"ÁLAMO-01", "JUDÍA"}, false},
		{"x", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.needle, func(t *testing.T) {
			assert.Equal(t, tt.want, store.ContainsFold(tt.needle, tt.fields...))
		})
	}
}
