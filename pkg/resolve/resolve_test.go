package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cuaderno/entities"
)

type fakeRepo struct {
	carriers map[string]*entities.Carrier
	persons  map[string]*entities.Person
	plots    []*entities.Plot
}

func (f *fakeRepo) CarrierByNIF(_ context.Context, nif string) (*entities.Carrier, error) {
	return f.carriers[nif], nil
}

func (f *fakeRepo) PersonByNIF(_ context.Context, nif string) (*entities.Person, error) {
	return f.persons[nif], nil
}

func (f *fakeRepo) RecipientTwin(_ context.Context, r *entities.Recipient) (*entities.Person, error) {
	return f.persons[r.Document], nil
}

func (f *fakeRepo) PlotByText(_ context.Context, text string, holdingID uint) (*entities.Plot, error) {
	for _, p := range f.plots {
		if holdingID == 0 || p.HoldingID == holdingID {
			return p, nil
		}
	}
	return nil, nil
}

func newEngine(r *fakeRepo) *Engine { return New(r, zap.NewNop()) }

func TestResolveCarrier(t *testing.T) {
	repo := &fakeRepo{
		carriers: map[string]*entities.Carrier{
			"B111": {Name: "Transportes Sur", NIF: "B111", Phone: "968000111", Address: &entities.Address{Locality: "Murcia"}},
			"B222": {Name: "Sin Teléfono", NIF: "B222"},
		},
		persons: map[string]*entities.Person{
			"B111":      {Name: "Persona Duplicada", NIF: "B111", Phone: "600000000"},
			"12345678Z": {Name: "Juan Pérez", NIF: "12345678Z", Mobile: "611222333", Email: "juan@example.com"},
		},
	}
	tests := []struct {
		name string
		in   CarrierInput
		want Contact
	}{
		{
			name: "carrier wins over person and fallbacks",
			in:   CarrierInput{NIF: "B111", Name: "Otro", Phone: "999", Email: "x@y.es"},
			want: Contact{Name: "Transportes Sur", NIF: "B111", Phone: "968000111", Mobile: Empty, Email: "x@y.es",
				Address: AddressBundle{Locality: "Murcia", PopulationEntity: "Murcia", Country: "España"}, Source: SourceCarrier},
		},
		{
			name: "empty carrier phone keeps fallback",
			in:   CarrierInput{NIF: "B222", Phone: "968123123"},
			want: Contact{Name: "Sin Teléfono", NIF: "B222", Phone: "968123123", Mobile: Empty, Email: Empty, Source: SourceCarrier},
		},
		{
			name: "person by nif uses mobile when no phone",
			in:   CarrierInput{NIF: "12345678Z"},
			want: Contact{Name: "Juan Pérez", NIF: "12345678Z", Phone: "611222333", Mobile: "611222333", Email: "juan@example.com", Source: SourcePerson},
		},
		{
			name: "unknown nif keeps supplied values",
			in:   CarrierInput{NIF: "X0000000T", Name: "Autónomo", Email: "a@b.es"},
			want: Contact{Name: "Autónomo", NIF: "X0000000T", Phone: Empty, Mobile: Empty, Email: "a@b.es", Source: SourceSupplied},
		},
		{
			name: "nothing known renders placeholders",
			in:   CarrierInput{},
			want: Contact{Name: FillIn, NIF: Empty, Phone: Empty, Mobile: Empty, Email: Empty, Source: SourceNone},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newEngine(repo).ResolveCarrier(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAuthorizedPerson(t *testing.T) {
	titular := &entities.Titleholder{Name: "Ana", Surname: "García", Document: "11111111H"}
	repo := &fakeRepo{persons: map[string]*entities.Person{
		"22222222J": {Name: "Luis Gestor", NIF: "22222222J", Phone: "968555555"},
	}}
	rep := &entities.Holding{Representation: entities.RepresentationRepresentative, Titleholder: titular}
	owner := &entities.Holding{Representation: entities.RepresentationOwner, Titleholder: titular}

	tests := []struct {
		name     string
		nif      string
		fallback string
		holding  *entities.Holding
		wantName string
		wantNIF  string
		wantSrc  string
	}{
		{"nif lookup beats representation", "22222222J", "", rep, "Luis Gestor", "22222222J", SourcePerson},
		{"supplied name beats representation", "", "Marta", rep, "Marta", Empty, SourceSupplied},
		{"representative falls back to titleholder", "", "", rep, "Ana García", "11111111H", SourceTitleholder},
		{"owner without data stays to fill in", "", "", owner, FillIn, Empty, SourceNone},
		{"unknown nif keeps nif", "99999999R", "", owner, FillIn, "99999999R", SourceNone},
		{"nil holding", "", "", nil, FillIn, Empty, SourceNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newEngine(repo).ResolveAuthorizedPerson(context.Background(), tt.nif, tt.fallback, tt.holding)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantNIF, got.NIF)
			assert.Equal(t, tt.wantSrc, got.Source)
		})
	}
}

func TestResolveRecipient(t *testing.T) {
	repo := &fakeRepo{persons: map[string]*entities.Person{
		"B999": {Name: "Cliente SL", NIF: "B999", Email: "compras@cliente.es"},
	}}
	r := &entities.Recipient{Name: "Cliente SL", Document: "B999", Address: &entities.Address{Phone: "968777000", Locality: "Cartagena"}}

	got, twin, err := newEngine(repo).ResolveRecipient(context.Background(), r)
	require.NoError(t, err)
	require.NotNil(t, twin)
	assert.Equal(t, "968777000", got.Phone, "falls through empty twin phone to recipient address")
	assert.Equal(t, "compras@cliente.es", got.Email)
	assert.Equal(t, Empty, got.Mobile)
	assert.Equal(t, "Cartagena", got.Address.Locality)

	bare, twin, err := newEngine(repo).ResolveRecipient(context.Background(), &entities.Recipient{Name: "Nadie"})
	require.NoError(t, err)
	assert.Nil(t, twin)
	assert.Equal(t, Empty, bare.NIF)
	assert.Equal(t, Empty, bare.Phone)
	assert.True(t, bare.Address.IsEmpty())
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, AddressBundle{}, FormatAddress(nil))
	assert.Len(t, FormatAddress(nil).Fields(), 8)

	b := FormatAddress(&entities.Address{ViaType: "Calle", StreetName: "Mayor", Number: "5", PostalCode: "30800",
		Locality: "Lorca", Province: "Murcia", Country: "ES"})
	assert.Equal(t, "Lorca", b.PopulationEntity)
	assert.Equal(t, "España", b.Country)
	assert.Equal(t, "Calle Mayor 5, 30800 Lorca (Murcia)", b.Line())
	assert.Equal(t, []string{"Calle", "Mayor", "5", "30800", "Lorca", "Murcia", "Lorca", "España"}, b.Fields())

	pt := FormatAddress(&entities.Address{Locality: "Porto", PopulationEntity: "Foz", Country: "Portugal"})
	assert.Equal(t, "Foz", pt.PopulationEntity)
	assert.Equal(t, "Portugal", pt.Country)

	assert.Equal(t, Empty, AddressBundle{}.Line())
}
