package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"cuaderno/entities"
	"cuaderno/pkg/masterdata/repository"
	"cuaderno/pkg/store"
)

type masterRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repository { return &masterRepo{db} }

func (r *masterRepo) UpsertTitleholder(ctx context.Context, t *entities.Titleholder, addr *entities.Address) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur entities.Titleholder
		found, err := store.First(tx.Where("document = ?", t.Document), &cur)
		if err != nil {
			return err
		}
		var addrID *uint
		if found {
			addrID = cur.AddressID
		}
		if addrID, err = store.SaveAddress(ctx, tx, addrID, addr); err != nil {
			return err
		}
		t.AddressID = addrID
		if !found {
			created = true
			return tx.Create(t).Error
		}
		t.ID = cur.ID
		t.CreatedAt = cur.CreatedAt
		return tx.Save(t).Error
	})
	return created, err
}

func (r *masterRepo) TitleholderByDocument(ctx context.Context, doc string) (*entities.Titleholder, error) {
	var t entities.Titleholder
	ok, err := store.First(r.db.WithContext(ctx).Where("document = ?", doc), &t)
	if err != nil || !ok {
		return nil, err
	}
	return &t, nil
}

func (r *masterRepo) UpsertHolding(ctx context.Context, h *entities.Holding, addr *entities.Address) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur entities.Holding
		found, err := store.First(tx.Where("nif = ?", h.NIF), &cur)
		if err != nil {
			return err
		}
		var addrID *uint
		if found {
			addrID = cur.AddressID
		}
		if addrID, err = store.SaveAddress(ctx, tx, addrID, addr); err != nil {
			return err
		}
		h.AddressID = addrID
		if !found {
			created = true
			return tx.Create(h).Error
		}
		h.ID = cur.ID
		h.CreatedAt = cur.CreatedAt
		if h.TitleholderID == nil {
			h.TitleholderID = cur.TitleholderID
		}
		return tx.Save(h).Error
	})
	return created, err
}

func (r *masterRepo) MainHolding(ctx context.Context) (*entities.Holding, error) {
	return store.MainHolding(ctx, r.db)
}

func (r *masterRepo) HoldingByNIF(ctx context.Context, nif string) (*entities.Holding, error) {
	var h entities.Holding
	ok, err := store.First(r.db.WithContext(ctx).Where("nif = ?", nif), &h)
	if err != nil || !ok {
		return nil, err
	}
	return &h, nil
}

func (r *masterRepo) CreatePlot(ctx context.Context, p *entities.Plot) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *masterRepo) FindOrCreateVehicle(ctx context.Context, v *entities.Vehicle) (bool, error) {
	return store.FindOrCreate(ctx, r.db, v, map[string]any{"plate": v.Plate})
}

func (r *masterRepo) VehicleByPlate(ctx context.Context, plate string) (*entities.Vehicle, error) {
	var v entities.Vehicle
	ok, err := store.First(r.db.WithContext(ctx).Where("plate = ?", plate), &v)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

func (r *masterRepo) CreateRecipient(ctx context.Context, rc *entities.Recipient, addr *entities.Address) (*entities.Person, bool, error) {
	var twin entities.Person
	var twinCreated bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		addrID, err := store.SaveAddress(ctx, tx, nil, addr)
		if err != nil {
			return err
		}
		rc.AddressID = addrID
		if err := tx.Create(rc).Error; err != nil {
			return err
		}
		twin = entities.Person{Name: rc.Name, NIF: rc.Document, AddressID: addrID}
		key := map[string]any{"nif": rc.Document}
		if rc.Document == "" {
			key["name"] = rc.Name
		}
		twinCreated, err = store.FindOrCreate(ctx, tx, &twin, key)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return &twin, twinCreated, nil
}

func (r *masterRepo) CreateEquipment(ctx context.Context, e *entities.ApplicationEquipment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *masterRepo) UpsertPersonnel(ctx context.Context, p *entities.Personnel) (bool, error) {
	var cur entities.Personnel
	found, err := store.First(r.db.WithContext(ctx).Where("document = ?", p.Document), &cur)
	if err != nil {
		return false, err
	}
	if !found {
		return true, r.db.WithContext(ctx).Create(p).Error
	}
	p.ID = cur.ID
	p.CreatedAt = cur.CreatedAt
	return false, r.db.WithContext(ctx).Save(p).Error
}

func (r *masterRepo) CreateAdvisor(ctx context.Context, p *entities.Person, addr *entities.Address, a *entities.Advisor) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		key := map[string]any{"nif": p.NIF}
		if p.NIF == "" {
			key["name"] = p.Name
		}
		if _, err := store.FindOrCreate(ctx, tx, p, key); err != nil {
			return err
		}
		if p.AddressID == nil {
			addrID, err := store.SaveAddress(ctx, tx, nil, addr)
			if err != nil {
				return err
			}
			if addrID != nil {
				if err := tx.Model(p).Update("address_id", *addrID).Error; err != nil {
					return err
				}
				p.AddressID = addrID
			}
		}
		a.PersonID = p.ID
		want := *a
		c, err := store.FindOrCreate(ctx, tx, a, map[string]any{"person_id": p.ID})
		if err != nil {
			return err
		}
		created = c
		if c {
			return nil
		}
		a.ROPONumber, a.Qualification = want.ROPONumber, want.Qualification
		return tx.Model(a).Select("ROPONumber", "Qualification").Updates(a).Error
	})
	return created, err
}

func (r *masterRepo) FindOrCreateCarrier(ctx context.Context, c *entities.Carrier, addr *entities.Address) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur entities.Carrier
		found, err := store.First(tx.Where("nif = ?", c.NIF), &cur)
		if err != nil {
			return err
		}
		if found && c.NIF != "" {
			*c = cur
			return nil
		}
		addrID, err := store.SaveAddress(ctx, tx, nil, addr)
		if err != nil {
			return err
		}
		c.AddressID = addrID
		created = true
		return tx.Create(c).Error
	})
	return created, err
}
