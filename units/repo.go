package units

type Repo interface {
	Create(pos *PointOfSale) error
	Update(pos *PointOfSale) error
	Delete(id int) error
	Get(id int) (*PointOfSale, error)
	ListByOwner(ownerID int) ([]*PointOfSale, error)
	CountByOwner(ownerID int) (int, error)
}
