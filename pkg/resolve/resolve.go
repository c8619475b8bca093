// Package resolve finds the best available contact, address and plot data
// for a partial hint, walking the candidate sources in a fixed order.
package resolve

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"cuaderno/entities"
	"cuaderno/pkg/resolve/repository"
)

// Placeholder tokens consumed by downstream document readers. Do not change.
const (
	Empty         = "VACÍO"
	FillIn        = "(Rellenar)"
	NotApplicable = "N/A"
)

// Source names recorded in Contact.Source.
const (
	SourceCarrier     = "transportista"
	SourcePerson      = "persona"
	SourceSupplied    = "datos aportados"
	SourceTitleholder = "titular"
	SourceRecipient   = "destinatario"
	SourceNone        = ""
)

// Contact is the normalized bundle every resolver produces.
type Contact struct {
	Name    string
	NIF     string
	Phone   string
	Mobile  string
	Email   string
	Address AddressBundle
	// Source is where the name came from.
	Source string
}

type candidate struct {
	source  string
	extract func() string
}

// pick walks the chain and returns the first non-empty value.
func pick(chain []candidate) (string, string) {
	for _, c := range chain {
		if v := strings.TrimSpace(c.extract()); v != "" {
			return v, c.source
		}
	}
	return "", SourceNone
}

func or(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}

func supplied(v string) candidate {
	return candidate{SourceSupplied, func() string { return v }}
}

type Engine struct {
	repo repository.Repository
	log  *zap.Logger
}

func New(repo repository.Repository, log *zap.Logger) *Engine {
	return &Engine{repo: repo, log: log.With(zap.String("svc", "resolve"))}
}

// CarrierInput carries what the caller knows about the carrier.
type CarrierInput struct {
	NIF   string
	Name  string
	Phone string
	Email string
}

// ResolveCarrier looks the carrier up by NIF first, then a Person with that
// NIF, then falls back to the supplied values. Stored values only win when
// non-empty.
func (e *Engine) ResolveCarrier(ctx context.Context, in CarrierInput) (Contact, error) {
	carrier, err := e.repo.CarrierByNIF(ctx, in.NIF)
	if err != nil {
		return Contact{}, err
	}
	var person *entities.Person
	if carrier == nil {
		if person, err = e.repo.PersonByNIF(ctx, in.NIF); err != nil {
			return Contact{}, err
		}
	}

	var names, phones, emails []candidate
	var mobile string
	var addr *entities.Address
	switch {
	case carrier != nil:
		names = []candidate{{SourceCarrier, func() string { return carrier.Name }}}
		phones = []candidate{{SourceCarrier, func() string { return carrier.Phone }}}
		emails = []candidate{{SourceCarrier, func() string { return carrier.Email }}}
		addr = carrier.Address
	case person != nil:
		names = []candidate{{SourcePerson, func() string { return person.Name }}}
		phones = []candidate{
			{SourcePerson, func() string { return person.Phone }},
			{SourcePerson, func() string { return person.Mobile }},
		}
		emails = []candidate{{SourcePerson, func() string { return person.Email }}}
		mobile = person.Mobile
		addr = person.Address
	}
	names = append(names, supplied(in.Name))
	phones = append(phones, supplied(in.Phone))
	emails = append(emails, supplied(in.Email))

	name, src := pick(names)
	phone, _ := pick(phones)
	email, _ := pick(emails)
	e.log.Debug("carrier resolved", zap.String("nif", in.NIF), zap.String("source", src))
	return Contact{
		Name:    or(name, FillIn),
		NIF:     or(strings.TrimSpace(in.NIF), Empty),
		Phone:   or(phone, Empty),
		Mobile:  or(mobile, Empty),
		Email:   or(email, Empty),
		Address: FormatAddress(addr),
		Source:  src,
	}, nil
}

// ResolveAuthorizedPerson prefers a Person found by NIF. Only when nothing is
// known (no person, no supplied name) and the holding acts through a
// representative does the titleholder become the authorized party.
func (e *Engine) ResolveAuthorizedPerson(ctx context.Context, nif, fallbackName string, h *entities.Holding) (Contact, error) {
	person, err := e.repo.PersonByNIF(ctx, nif)
	if err != nil {
		return Contact{}, err
	}
	nif = strings.TrimSpace(nif)
	if person != nil {
		return Contact{
			Name:    person.Name,
			NIF:     nif,
			Phone:   or(firstOf(person.Phone, person.Mobile), Empty),
			Mobile:  or(person.Mobile, Empty),
			Email:   or(person.Email, Empty),
			Address: FormatAddress(person.Address),
			Source:  SourcePerson,
		}, nil
	}
	if name := strings.TrimSpace(fallbackName); name != "" {
		return Contact{Name: name, NIF: or(nif, Empty), Phone: Empty, Mobile: Empty, Email: Empty, Source: SourceSupplied}, nil
	}
	if h != nil && h.Representation == entities.RepresentationRepresentative && h.Titleholder != nil {
		t := h.Titleholder
		return Contact{
			Name:    t.FullName(),
			NIF:     or(t.Document, Empty),
			Phone:   Empty,
			Mobile:  Empty,
			Email:   Empty,
			Address: FormatAddress(t.Address),
			Source:  SourceTitleholder,
		}, nil
	}
	return Contact{Name: FillIn, NIF: or(nif, Empty), Phone: Empty, Mobile: Empty, Email: Empty}, nil
}

// ResolveRecipient completes a recipient's contact data from its Person twin
// and its own address.
func (e *Engine) ResolveRecipient(ctx context.Context, r *entities.Recipient) (Contact, *entities.Person, error) {
	twin, err := e.repo.RecipientTwin(ctx, r)
	if err != nil {
		return Contact{}, nil, err
	}
	var phones, mobiles, emails []candidate
	if twin != nil {
		phones = append(phones,
			candidate{SourcePerson, func() string { return twin.Phone }},
			candidate{SourcePerson, func() string { return twin.Mobile }})
		mobiles = append(mobiles, candidate{SourcePerson, func() string { return twin.Mobile }})
		emails = append(emails, candidate{SourcePerson, func() string { return twin.Email }})
	}
	if a := r.Address; a != nil {
		phones = append(phones,
			candidate{SourceRecipient, func() string { return a.Phone }},
			candidate{SourceRecipient, func() string { return a.Mobile }})
		mobiles = append(mobiles, candidate{SourceRecipient, func() string { return a.Mobile }})
		emails = append(emails, candidate{SourceRecipient, func() string { return a.Email }})
	}
	addr := r.Address
	if addr == nil && twin != nil {
		addr = twin.Address
	}
	phone, _ := pick(phones)
	mob, _ := pick(mobiles)
	email, _ := pick(emails)
	return Contact{
		Name:    r.Name,
		NIF:     or(r.Document, Empty),
		Phone:   or(phone, Empty),
		Mobile:  or(mob, Empty),
		Email:   or(email, Empty),
		Address: FormatAddress(addr),
		Source:  SourceRecipient,
	}, twin, nil
}

// ResolvePlot matches text against SIGPAC reference or species, ignoring
// case, within holdingID when non-zero. Returns nil when nothing matches.
func (e *Engine) ResolvePlot(ctx context.Context, text string, holdingID uint) (*entities.Plot, error) {
	return e.repo.PlotByText(ctx, text, holdingID)
}

func firstOf(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
