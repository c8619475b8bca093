package repositoryImp

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"cuaderno/entities"
	"cuaderno/pkg/activity/repository"
	"cuaderno/pkg/dateutil"
	"cuaderno/pkg/store"
)

type activityRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repository { return &activityRepo{db} }

func (r *activityRepo) MainHolding(ctx context.Context) (*entities.Holding, error) {
	return store.MainHolding(ctx, r.db)
}

func (r *activityRepo) PersonByNIF(ctx context.Context, nif string) (*entities.Person, error) {
	var p entities.Person
	ok, err := store.First(r.db.WithContext(ctx).Where("nif = ?", nif), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (r *activityRepo) PersonnelByDocument(ctx context.Context, doc string) (*entities.Personnel, error) {
	var p entities.Personnel
	ok, err := store.First(r.db.WithContext(ctx).Where("document = ?", doc), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (r *activityRepo) PersonForPersonnel(ctx context.Context, staff *entities.Personnel) (*entities.Person, error) {
	p := entities.Person{
		Name:  staff.FullName(),
		NIF:   staff.Document,
		Sex:   staff.Sex,
		Phone: staff.Phone,
		Email: staff.Email,
	}
	if _, err := store.FindOrCreate(ctx, r.db, &p, map[string]any{"nif": staff.Document}); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *activityRepo) EquipmentByText(ctx context.Context, text string, holdingID uint) (*entities.ApplicationEquipment, error) {
	q := r.db.WithContext(ctx).Order("id ASC")
	if holdingID != 0 {
		q = q.Where("holding_id = ?", holdingID)
	}
	var all []entities.ApplicationEquipment
	if err := q.Find(&all).Error; err != nil {
		return nil, err
	}
	for i := range all {
		if store.ContainsFold(text, all[i].Description, all[i].ROMANumber) {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (r *activityRepo) CreateActivity(ctx context.Context, a *entities.Activity) error {
	return r.db.WithContext(ctx).Omit("Plot", "Applicator", "Equipment").Create(a).Error
}

func (r *activityRepo) CreateTreatedSeed(ctx context.Context, s *entities.TreatedSeed) error {
	return r.db.WithContext(ctx).Omit("Plot").Create(s).Error
}

func (r *activityRepo) CreateLabAnalysis(ctx context.Context, a *entities.LabAnalysis) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *activityRepo) CreateMovement(ctx context.Context, m *entities.ProductMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *activityRepo) History(ctx context.Context, f repository.HistoryFilter) (int64, []entities.Activity, error) {
	q := r.db.WithContext(ctx).Preload("Plot").Order("date DESC").Order("id DESC")
	if f.Year != 0 {
		from, to := dateutil.YearRange(f.Year)
		q = q.Where("date BETWEEN ? AND ?", from, to)
	}
	var all []entities.Activity
	if err := q.Find(&all).Error; err != nil {
		return 0, nil, err
	}

	// text filters run in Go; see store.ContainsFold
	matched := all[:0]
	for _, a := range all {
		if matchesHistory(a, f) {
			matched = append(matched, a)
		}
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 5
	}
	rows := matched
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return int64(len(matched)), rows, nil
}

func matchesHistory(a entities.Activity, f repository.HistoryFilter) bool {
	if strings.TrimSpace(f.Product) != "" && !store.ContainsFold(f.Product, a.ProductName) {
		return false
	}
	if strings.TrimSpace(f.Type) != "" && !store.ContainsFold(f.Type, a.Type) {
		return false
	}
	if strings.TrimSpace(f.Plot) != "" && (a.Plot == nil || !store.ContainsFold(f.Plot, a.Plot.SigpacRef, a.Plot.Species)) {
		return false
	}
	if strings.TrimSpace(f.Pest) != "" && !store.ContainsFold(f.Pest, a.Pest) {
		return false
	}
	return true
}
