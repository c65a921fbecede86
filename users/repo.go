package users

// SortField is a column the owners list can be ordered by
type SortField string

const (
	SortByID        SortField = "id"
	SortByLastName  SortField = "last_name"
	SortByCreatedAt SortField = "created_at"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByID, SortByLastName, SortByCreatedAt:
		return true
	}
	return false
}

// OwnerQuery selects a page of owners
type OwnerQuery struct {
	SortBy     SortField
	Descending bool
	Skip       int
	Limit      int
	Active     *bool  // nil matches both
	Search     string // matched against email and names, case-insensitive
}

// OwnerList is one page of owners plus the count of all matches
type OwnerList struct {
	Owners      []*User
	Total       int
	TotalActive int
}

type UserRepo interface {
	Upsert(user *User) error
	Delete(id int) error
	GetByEmail(email string) (*User, error)
	GetByID(id int) (*User, error)
	ListOwners(q OwnerQuery) (OwnerList, error)
}
