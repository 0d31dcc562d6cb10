package domain

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Page bounds a list query.
type Page struct {
	Limit  int
	Offset int
}

func DefaultPage() Page {
	return Page{Limit: DefaultPageLimit}
}

// Validate enforces limit in [1, MaxPageLimit] and offset >= 0.
func (p Page) Validate() error {
	if p.Limit < 1 || p.Limit > MaxPageLimit || p.Offset < 0 {
		return ErrInvalidPagination
	}
	return nil
}
