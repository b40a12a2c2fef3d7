package importer

import (
	"io"

	"github.com/camden-git/photoopsbackend/models"
	"github.com/camden-git/photoopsbackend/repository"
)

// sliceSource feeds canned records to a reconciler.
type sliceSource struct {
	rows []Record
	pos  int
}

func (s *sliceSource) Next() (Record, error) {
	if s.pos >= len(s.rows) {
		return Record{}, io.EOF
	}
	r := s.rows[s.pos]
	s.pos++
	return r, nil
}

func newRecord(cols map[string]string) Record {
	index := make(map[string]int, len(cols))
	fields := make([]string, 0, len(cols))
	for name, value := range cols {
		index[name] = len(fields)
		fields = append(fields, value)
	}
	return Record{index: index, fields: fields}
}

func sourceOf(rows ...Record) *sliceSource {
	return &sliceSource{rows: rows}
}

// fakeFamilyRepo is an in-memory stand-in for the family store gateway.
type fakeFamilyRepo struct {
	families map[string]*models.Family
}

func newFakeFamilyRepo() *fakeFamilyRepo {
	return &fakeFamilyRepo{families: make(map[string]*models.Family)}
}

func (f *fakeFamilyRepo) GetByKey(key string) (*models.Family, error) {
	family, ok := f.families[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *family
	return &clone, nil
}

func (f *fakeFamilyRepo) Create(family *models.Family) error {
	clone := *family
	f.families[family.ID] = &clone
	return nil
}

func (f *fakeFamilyRepo) Merge(key string, fields map[string]interface{}) error {
	family, ok := f.families[key]
	if !ok {
		return repository.ErrNotFound
	}
	for col, val := range fields {
		switch col {
		case "name":
			family.Name = val.(string)
		case "last_name":
			family.LastName = val.(string)
		case "external_contact_id":
			if val == nil {
				family.ExternalContactID = nil
			} else {
				id := val.(int64)
				family.ExternalContactID = &id
			}
		case "delivery_email":
			email := val.(string)
			family.DeliveryEmail = &email
		case "phone":
			phone := val.(string)
			family.Phone = &phone
		case "galleries":
			family.Galleries = val.(models.GalleryList)
		}
	}
	return nil
}

func (f *fakeFamilyRepo) ListAll() ([]models.Family, error) {
	families := make([]models.Family, 0, len(f.families))
	for _, family := range f.families {
		families = append(families, *family)
	}
	return families, nil
}

// fakeOrderRepo is an in-memory stand-in for the order store gateway.
type fakeOrderRepo struct {
	orders map[int64]*models.Order
	links  []models.FamilyOrder
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*models.Order)}
}

func (f *fakeOrderRepo) GetByExternalID(externalOrderID int64) (*models.Order, error) {
	order, ok := f.orders[externalOrderID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (f *fakeOrderRepo) Create(order *models.Order) error {
	f.nextID++
	order.ID = f.nextID
	clone := *order
	f.orders[order.ExternalOrderID] = &clone
	return nil
}

func (f *fakeOrderRepo) ListAll() ([]models.Order, error) {
	orders := make([]models.Order, 0, len(f.orders))
	for _, order := range f.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (f *fakeOrderRepo) ListByFamilyKey(key string) ([]models.Order, error) {
	var orders []models.Order
	for _, link := range f.links {
		if link.FamilyID != key {
			continue
		}
		for _, order := range f.orders {
			if order.ID == link.OrderID {
				orders = append(orders, *order)
			}
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) CreateLink(link *models.FamilyOrder) error {
	f.links = append(f.links, *link)
	return nil
}
